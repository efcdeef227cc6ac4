package repository

import (
	"os"
	"path/filepath"
)

// ArtifactRepository — файловое хранилище сгенерированных картинок
// Каждый артефакт создаётся транскодером, выдаётся устройству один раз
// и удаляется сразу после выдачи
type ArtifactRepository struct {
	dir string // Каталог с артефактами
}

// NewArtifactRepository создаёт хранилище и каталог для него
func NewArtifactRepository(dir string) (*ArtifactRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ArtifactRepository{dir: dir}, nil
}

// Path возвращает путь к артефакту внутри каталога хранилища
// filepath.Base отрезает попытки выйти из каталога через "../"
func (r *ArtifactRepository) Path(filename string) string {
	return filepath.Join(r.dir, filepath.Base(filename))
}

// Save записывает артефакт на диск
func (r *ArtifactRepository) Save(filename string, data []byte) error {
	return os.WriteFile(r.Path(filename), data, 0o644)
}

// Read читает содержимое артефакта
// Если файла нет — вернётся ошибка os.ErrNotExist
func (r *ArtifactRepository) Read(filename string) ([]byte, error) {
	return os.ReadFile(r.Path(filename))
}

// Remove удаляет артефакт
func (r *ArtifactRepository) Remove(filename string) error {
	return os.Remove(r.Path(filename))
}

// Exists проверяет, лежит ли артефакт на диске
func (r *ArtifactRepository) Exists(filename string) bool {
	_, err := os.Stat(r.Path(filename))
	return err == nil
}
