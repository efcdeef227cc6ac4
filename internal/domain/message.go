package domain

import (
	"fmt"
	"strings"
	"time"
)

// ImagePrefix — маркер в поле text, означающий что сообщение ссылается
// на сгенерированную картинку. Прошивка панели разбирает именно эту
// строку, менять её нельзя
const ImagePrefix = "[IMAGE]"

// Значения полей сообщения по умолчанию
const (
	DefaultSender  = "LoveByte server"
	DefaultCity    = "Modesto"
	DefaultCountry = "US"
)

// MessageTimeLayout — формат серверного времени в сообщениях
const MessageTimeLayout = "2006-01-02 15:04:05"

// Message — сообщение для панели
// Имена JSON-полей зафиксированы протоколом прошивки
// После постановки в очередь сообщение не изменяется
type Message struct {
	Text            string `json:"text"`            // Текст либо ImagePrefix+имя артефакта
	Sender          string `json:"sender"`          // Отправитель
	Time            string `json:"time"`            // Время в формате MessageTimeLayout
	Weather         string `json:"weather"`         // Погода (заполняет оператор)
	City            string `json:"city"`            // Город для экрана погоды
	Country         string `json:"country"`         // Страна для экрана погоды
	TempF           int    `json:"tempF"`           // Температура в Фаренгейтах
	LedColor        string `json:"ledColor"`        // RRGGBB в верхнем регистре или ""
	UseLedColor     bool   `json:"useLedColor"`     // Включить подсветку цветом LedColor
	UseHeartbeat    bool   `json:"useHeartbeat"`    // Включить анимацию сердцебиения
	HeartbeatColor  string `json:"heartbeatColor"`  // RRGGBB в верхнем регистре или ""
	HeartbeatPulses int    `json:"heartbeatPulses"` // Количество пульсаций (>= 0)
}

// NewImageMessage создаёт сообщение-ссылку на артефакт
// Все цветовые поля выключены, время проставляет сервер
func NewImageMessage(artifact string, now time.Time) Message {
	return Message{
		Text:    ImagePrefix + artifact,
		Sender:  DefaultSender,
		Time:    now.Format(MessageTimeLayout),
		City:    DefaultCity,
		Country: DefaultCountry,
	}
}

// IsImage сообщает, является ли сообщение ссылкой на картинку
func (m Message) IsImage() bool {
	return strings.HasPrefix(m.Text, ImagePrefix)
}

// ArtifactRef возвращает имя артефакта из сообщения-картинки
// Для текстовых сообщений возвращает пустую строку
func (m Message) ArtifactRef() string {
	if !m.IsImage() {
		return ""
	}
	return strings.TrimPrefix(m.Text, ImagePrefix)
}

// NormalizeHexColor приводит цвет к формату RRGGBB в верхнем регистре
// Оператор может прислать строку ("#ff00aa" или "ff00aa") либо число
// 0xRRGGBB; всё остальное превращается в пустую строку —
// "без переопределения цвета"
func NormalizeHexColor(val interface{}) string {
	switch v := val.(type) {
	case string:
		return strings.ToUpper(strings.TrimPrefix(v, "#"))
	case float64:
		// encoding/json декодирует числа JSON как float64
		return fmt.Sprintf("%06X", int(v))
	case int:
		return fmt.Sprintf("%06X", v)
	default:
		return ""
	}
}
