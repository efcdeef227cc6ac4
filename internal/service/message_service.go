package service

import (
	"fmt"
	"time"

	"github.com/Darkone83/LoveByte/internal/domain"
	"github.com/Darkone83/LoveByte/internal/repository"
)

// MessageService — сервис очередей сообщений
type MessageService struct {
	repo       *repository.DeviceRepository // Хранилище устройств и очередей
	transcoder *Transcoder                  // Конвертер картинок
	events     *Bus                         // Шина событий для интерфейса оператора
}

// NewMessageService создаёт новый сервис
func NewMessageService(
	repo *repository.DeviceRepository,
	transcoder *Transcoder,
	events *Bus,
) *MessageService {
	return &MessageService{
		repo:       repo,
		transcoder: transcoder,
		events:     events,
	}
}

// PushInput — входные данные текстового сообщения
// Поля цвета объявлены interface{}: оператор может прислать строку
// ("#ff00aa") или число (0xFF00AA), сервер нормализует и то и другое
type PushInput struct {
	Text            string
	Sender          string
	Time            string
	Weather         string
	City            string
	Country         string
	TempF           int
	LedColor        interface{}
	UseLedColor     bool
	UseHeartbeat    bool
	HeartbeatColor  interface{}
	HeartbeatPulses int
}

// Push формирует сообщение и ставит его в очередь получателя
// Все значения по умолчанию и нормализация цветов применяются здесь,
// в очередь попадает уже полностью сформированное сообщение
func (s *MessageService) Push(rawRecipient string, in PushInput) (domain.Message, error) {
	recipient := domain.NormalizeDeviceID(rawRecipient)

	msg := domain.Message{
		Text:            in.Text,
		Sender:          in.Sender,
		Time:            in.Time,
		Weather:         in.Weather,
		City:            in.City,
		Country:         in.Country,
		TempF:           in.TempF,
		LedColor:        domain.NormalizeHexColor(in.LedColor),
		UseLedColor:     in.UseLedColor,
		UseHeartbeat:    in.UseHeartbeat,
		HeartbeatColor:  domain.NormalizeHexColor(in.HeartbeatColor),
		HeartbeatPulses: in.HeartbeatPulses,
	}
	if msg.Sender == "" {
		msg.Sender = domain.DefaultSender
	}
	if msg.City == "" {
		msg.City = domain.DefaultCity
	}
	if msg.Country == "" {
		msg.Country = domain.DefaultCountry
	}
	if msg.HeartbeatPulses < 0 {
		msg.HeartbeatPulses = 0
	}

	// Enqueue сам проверяет регистрацию получателя: проверка и вставка
	// происходят под одним мьютексом
	if !s.repo.Enqueue(recipient, msg) {
		return domain.Message{}, ErrUnknownDevice
	}

	GlobalStats.IncrementMessages()
	s.events.Publish(EventMessage, recipient,
		fmt.Sprintf("Sent to %s: %s (as message)", recipient, msg.Text))
	return msg, nil
}

// Pull атомарно забирает все сообщения устройства в порядке поступления
// Повторный Pull без новых сообщений вернёт пустой список — доставка
// считается состоявшейся в момент выдачи, повторов не бывает
func (s *MessageService) Pull(rawID string) ([]domain.Message, error) {
	id := domain.NormalizeDeviceID(rawID)

	msgs, ok := s.repo.Drain(id)
	if !ok {
		return nil, ErrUnknownDevice
	}
	if msgs == nil {
		// Пустую очередь отдаём как [], а не null
		msgs = []domain.Message{}
	}
	return msgs, nil
}

// PushImage прогоняет загруженный файл через транскодер и ставит
// сообщение-ссылку в очередь получателя
// Возвращает имя артефакта и описание результата конвертации
func (s *MessageService) PushImage(rawRecipient, filename string, data []byte) (string, string, error) {
	recipient := domain.NormalizeDeviceID(rawRecipient)

	// Получателя проверяем до конвертации, чтобы не плодить
	// артефакты, на которые никто не сошлётся
	if !s.repo.IsKnown(recipient) {
		return "", "", ErrUnknownDevice
	}

	artifact, result, err := s.transcoder.Transcode(filename, data)
	if err != nil {
		return "", "", err
	}

	msg := domain.NewImageMessage(artifact, time.Now())
	if !s.repo.Enqueue(recipient, msg) {
		return "", "", ErrUnknownDevice
	}

	GlobalStats.IncrementImages()
	s.events.Publish(EventImage, recipient,
		fmt.Sprintf("Sent to %s: %s (as image)", recipient, artifact))
	return artifact, result, nil
}
