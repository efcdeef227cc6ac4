package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config — главная структура конфигурации приложения
// Все поля заполняются из переменных окружения
type Config struct {
	Server  ServerConfig  // Настройки HTTP-сервера
	Panel   PanelConfig   // Разрешение панели
	Storage StorageConfig // Хранилище картинок
	Device  DeviceConfig  // Параметры учёта устройств
}

// ServerConfig — настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort int `envconfig:"HTTP_PORT" default:"6969"` // Порт HTTP сервера
}

// PanelConfig — разрешение панели
// Задаётся при деплое и должно совпадать с settings.h прошивки
type PanelConfig struct {
	Width  int `envconfig:"PANEL_WIDTH" default:"320"`  // Ширина панели в пикселях
	Height int `envconfig:"PANEL_HEIGHT" default:"170"` // Высота панели в пикселях
}

// StorageConfig — настройки файлового хранилища
type StorageConfig struct {
	ImageDir string `envconfig:"IMAGE_DIR" default:"images"` // Каталог для сгенерированных картинок
}

// DeviceConfig — параметры учёта устройств
type DeviceConfig struct {
	OnlineWindow time.Duration `envconfig:"ONLINE_WINDOW" default:"30s"` // Окно, в течение которого устройство считается Online
}

// Load загружает конфигурацию из переменных окружения
// Сначала пытается прочитать файл .env, затем читает переменные окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл
	// Если файла нет — не страшно, будем читать из системных переменных
	_ = godotenv.Load()

	var cfg Config

	// Заполняем структуру из переменных окружения
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
