package handler

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/Darkone83/LoveByte/internal/service"
)

// MessageHandler — обработчик запросов оператора (push, upload_image)
type MessageHandler struct {
	service *service.MessageService
}

// NewMessageHandler создаёт новый обработчик
func NewMessageHandler(svc *service.MessageService) *MessageHandler {
	return &MessageHandler{service: svc}
}

// PushRequest — структура запроса на отправку текстового сообщения
// ledColor и heartbeatColor объявлены interface{}: оператор может
// прислать строку ("#ff00aa") либо число (0xFF00AA)
type PushRequest struct {
	Recipient       string      `json:"recipient"` // Идентификатор устройства-получателя
	Text            string      `json:"text"`
	Sender          string      `json:"sender"`
	Time            string      `json:"time"`
	Weather         string      `json:"weather"`
	City            string      `json:"city"`
	Country         string      `json:"country"`
	TempF           int         `json:"tempF"`
	LedColor        interface{} `json:"ledColor"`
	UseLedColor     bool        `json:"useLedColor"`
	UseHeartbeat    bool        `json:"useHeartbeat"`
	HeartbeatColor  interface{} `json:"heartbeatColor"`
	HeartbeatPulses int         `json:"heartbeatPulses"`
}

// Push ставит текстовое сообщение в очередь устройства
// @Summary Отправить сообщение
// @Description Формирует сообщение (значения по умолчанию, нормализация цветов) и ставит его в очередь получателя.
// @Tags operator
// @Accept json
// @Produce json
// @Param request body PushRequest true "Сообщение"
// @Success 200 {object} map[string]string "Статус queued"
// @Failure 400 {object} ErrorResponse "Некорректное тело запроса"
// @Failure 404 {object} ErrorResponse "Получатель не зарегистрирован"
// @Router /api/push [post]
func (h *MessageHandler) Push(c *fiber.Ctx) error {
	var req PushRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	msg, err := h.service.Push(req.Recipient, service.PushInput{
		Text:            req.Text,
		Sender:          req.Sender,
		Time:            req.Time,
		Weather:         req.Weather,
		City:            req.City,
		Country:         req.Country,
		TempF:           req.TempF,
		LedColor:        req.LedColor,
		UseLedColor:     req.UseLedColor,
		UseHeartbeat:    req.UseHeartbeat,
		HeartbeatColor:  req.HeartbeatColor,
		HeartbeatPulses: req.HeartbeatPulses,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnknownDevice) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error: "Unknown recipient",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Internal server error",
		})
	}

	log.Printf("[PUSH] сообщение для '%s': %s", req.Recipient, msg.Text)
	return c.JSON(fiber.Map{"status": "queued"})
}

// UploadImage принимает картинку, конвертирует её под панель
// и ставит сообщение-ссылку в очередь получателя
// @Summary Отправить картинку
// @Description Принимает jpg/jpeg/png/gif, приводит к разрешению панели и ставит в очередь получателя сообщение-ссылку на артефакт.
// @Tags operator
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл изображения"
// @Param recipient formData string true "Идентификатор устройства-получателя"
// @Success 200 {object} map[string]string "Имя артефакта и результат конвертации"
// @Failure 400 {object} ErrorResponse "Нет файла/получателя или формат не поддерживается"
// @Failure 404 {object} ErrorResponse "Получатель не зарегистрирован"
// @Failure 500 {object} ErrorResponse "Ошибка конвертации"
// @Router /api/upload_image [post]
func (h *MessageHandler) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	recipient := c.FormValue("recipient")
	if err != nil || recipient == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing image or recipient",
		})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing image or recipient",
		})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: fmt.Sprintf("Image processing failed: %v", err),
		})
	}

	artifact, result, err := h.service.PushImage(recipient, fileHeader.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownDevice):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error: "Unknown recipient",
			})
		case errors.Is(err, service.ErrUnsupportedFormat):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error: "Unsupported image format",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
				Error: fmt.Sprintf("Image processing failed: %v", err),
			})
		}
	}

	log.Printf("[UPLOAD] артефакт %s для '%s' (%s)", artifact, recipient, result)
	return c.JSON(fiber.Map{
		"status": "uploaded",
		"file":   artifact,
		"result": result,
	})
}
