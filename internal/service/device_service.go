package service

import (
	"errors"
	"sort"
	"time"

	"github.com/Darkone83/LoveByte/internal/config"
	"github.com/Darkone83/LoveByte/internal/domain"
	"github.com/Darkone83/LoveByte/internal/repository"
)

// Ошибки сервиса устройств
var (
	ErrInvalidDeviceID = errors.New("пустой идентификатор устройства")
	ErrUnknownDevice   = errors.New("устройство не зарегистрировано")
)

// DeviceService — сервис учёта устройств
type DeviceService struct {
	repo   *repository.DeviceRepository // Хранилище устройств
	config config.DeviceConfig          // Параметры liveness
}

// NewDeviceService создаёт новый сервис
func NewDeviceService(repo *repository.DeviceRepository, cfg config.DeviceConfig) *DeviceService {
	return &DeviceService{
		repo:   repo,
		config: cfg,
	}
}

// CheckIn регистрирует устройство по сырому id из запроса
// Возвращает нормализованный id
func (s *DeviceService) CheckIn(rawID string) (string, error) {
	id := domain.NormalizeDeviceID(rawID)
	if id == "" {
		return "", ErrInvalidDeviceID
	}

	s.repo.CheckIn(id, time.Now())
	GlobalStats.IncrementCheckins()
	return id, nil
}

// Liveness возвращает статус устройства на момент now
// Состояние устройства при этом не меняется
func (s *DeviceService) Liveness(rawID string, now time.Time) (domain.Status, error) {
	id := domain.NormalizeDeviceID(rawID)

	dev, ok := s.repo.Get(id)
	if !ok {
		return "", ErrUnknownDevice
	}
	return dev.StatusAt(now, s.config.OnlineWindow), nil
}

// DeviceStatus — устройство с вычисленным статусом для панели оператора
type DeviceStatus struct {
	ID       string
	Status   domain.Status
	LastSeen time.Time
}

// List возвращает все устройства со статусами, отсортированные по id
func (s *DeviceService) List(now time.Time) []DeviceStatus {
	devices := s.repo.List()

	out := make([]DeviceStatus, 0, len(devices))
	for i := range devices {
		out = append(out, DeviceStatus{
			ID:       devices[i].ID,
			Status:   devices[i].StatusAt(now, s.config.OnlineWindow),
			LastSeen: devices[i].LastSeen,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}
