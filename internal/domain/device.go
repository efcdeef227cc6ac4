package domain

import (
	"strings"
	"time"
)

// Status — состояние устройства с точки зрения liveness
type Status string

const (
	StatusOnline  Status = "Online"
	StatusOffline Status = "Offline"
)

// NormalizeDeviceID приводит идентификатор устройства к каноническому виду
// Прошивки присылают id с разным регистром и лишними пробелами,
// поэтому нормализация выполняется при каждом обращении
func NormalizeDeviceID(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Device — зарегистрированная панель
// Запись создаётся при первом check-in и никогда не удаляется:
// устройство лишь перестаёт считаться Online
type Device struct {
	ID       string    // Нормализованный идентификатор
	LastSeen time.Time // Время последнего check-in
	Queue    []Message // Очередь недоставленных сообщений (FIFO)
}

// StatusAt возвращает Online, если устройство чекинилось менее window назад
// Ровно на границе окна устройство уже считается Offline
func (d *Device) StatusAt(now time.Time, window time.Duration) Status {
	if now.Sub(d.LastSeen) < window {
		return StatusOnline
	}
	return StatusOffline
}
