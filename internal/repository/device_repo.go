package repository

import (
	"sync"
	"time"

	"github.com/Darkone83/LoveByte/internal/domain"
)

// DeviceRepository — хранилище устройств и их очередей сообщений
// Всё состояние живёт в памяти: после перезапуска сервера устройства
// регистрируются заново при следующем check-in
//
// Один мьютекс защищает и карту устройств, и очереди. Очереди разных
// устройств независимы, поэтому более тонкая блокировка не нужна
type DeviceRepository struct {
	mu      sync.RWMutex
	devices map[string]*domain.Device
}

// NewDeviceRepository создаёт пустое хранилище
func NewDeviceRepository() *DeviceRepository {
	return &DeviceRepository{
		devices: make(map[string]*domain.Device),
	}
}

// CheckIn регистрирует устройство (если его ещё нет) и обновляет LastSeen
// id должен быть уже нормализован
func (r *DeviceRepository) CheckIn(id string, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dev, ok := r.devices[id]
	if !ok {
		dev = &domain.Device{ID: id}
		r.devices[id] = dev
	}
	dev.LastSeen = now
}

// IsKnown проверяет, регистрировалось ли устройство
func (r *DeviceRepository) IsKnown(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.devices[id]
	return ok
}

// Get возвращает копию записи устройства без очереди
// Если устройство не найдено — ok будет false (это не ошибка)
func (r *DeviceRepository) Get(id string) (domain.Device, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dev, ok := r.devices[id]
	if !ok {
		return domain.Device{}, false
	}
	return domain.Device{ID: dev.ID, LastSeen: dev.LastSeen}, true
}

// List возвращает снимок всех устройств (без очередей)
func (r *DeviceRepository) List() []domain.Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Device, 0, len(r.devices))
	for _, dev := range r.devices {
		out = append(out, domain.Device{ID: dev.ID, LastSeen: dev.LastSeen})
	}
	return out
}

// Enqueue добавляет сообщение в конец очереди устройства
// Возвращает false, если устройство не зарегистрировано
// Длина очереди не ограничена
func (r *DeviceRepository) Enqueue(id string, msg domain.Message) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	dev, ok := r.devices[id]
	if !ok {
		return false
	}
	dev.Queue = append(dev.Queue, msg)
	return true
}

// Drain атомарно забирает все сообщения устройства
// Очередь заменяется пустой за один захват мьютекса, поэтому
// параллельные Drain/Enqueue не теряют и не дублируют сообщения
func (r *DeviceRepository) Drain(id string) ([]domain.Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dev, ok := r.devices[id]
	if !ok {
		return nil, false
	}
	msgs := dev.Queue
	dev.Queue = nil
	return msgs, true
}
