package service

import (
	"sync"
)

// Stats хранит статистику работы сервиса
type Stats struct {
	mu              sync.RWMutex // Мьютекс для безопасного доступа
	TotalCheckins   int64        // Всего check-in запросов
	TotalMessages   int64        // Всего текстовых сообщений в очереди
	TotalImages     int64        // Всего сконвертированных картинок
	ServedArtifacts int64        // Всего выданных артефактов
}

// GlobalStats — глобальная статистика
var GlobalStats = &Stats{}

// IncrementCheckins увеличивает счётчик check-in
func (s *Stats) IncrementCheckins() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TotalCheckins++
}

// IncrementMessages увеличивает счётчик сообщений
func (s *Stats) IncrementMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TotalMessages++
}

// IncrementImages увеличивает счётчик картинок
func (s *Stats) IncrementImages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TotalImages++
}

// IncrementServed увеличивает счётчик выданных артефактов
func (s *Stats) IncrementServed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ServedArtifacts++
}

// GetStats возвращает копию статистики
func (s *Stats) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		TotalCheckins:   s.TotalCheckins,
		TotalMessages:   s.TotalMessages,
		TotalImages:     s.TotalImages,
		ServedArtifacts: s.ServedArtifacts,
	}
}
