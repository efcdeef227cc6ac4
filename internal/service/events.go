package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Виды событий
const (
	EventMessage = "message" // Отправлено текстовое сообщение
	EventImage   = "image"   // Отправлена картинка
)

// ActivityEvent — событие активности для интерфейса оператора
type ActivityEvent struct {
	ID        string    `json:"id"`        // Уникальный идентификатор события
	Kind      string    `json:"kind"`      // Вид события (message/image)
	Recipient string    `json:"recipient"` // Нормализованный id получателя
	Text      string    `json:"text"`      // Человекочитаемое описание
	Time      time.Time `json:"time"`      // Время события
}

// Bus — шина событий, отвязывающая интерфейс оператора от пути
// обработки запросов устройств
// Publish никогда не блокирует: медленный подписчик теряет события
type Bus struct {
	mu   sync.Mutex
	subs []chan ActivityEvent
}

// NewBus создаёт пустую шину
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe возвращает канал, в который будут приходить события
func (b *Bus) Subscribe() <-chan ActivityEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan ActivityEvent, 16)
	b.subs = append(b.subs, ch)
	return ch
}

// Publish рассылает событие всем подписчикам
func (b *Bus) Publish(kind, recipient, text string) {
	evt := ActivityEvent{
		ID:        uuid.New().String(),
		Kind:      kind,
		Recipient: recipient,
		Text:      text,
		Time:      time.Now(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- evt:
		default:
			// Подписчик не успевает — событие для него пропадает
		}
	}
}
