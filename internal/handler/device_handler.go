package handler

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Darkone83/LoveByte/internal/domain"
	"github.com/Darkone83/LoveByte/internal/service"
)

// DeviceHandler — обработчик запросов устройств (check-in, pull)
type DeviceHandler struct {
	devices  *service.DeviceService
	messages *service.MessageService
}

// NewDeviceHandler создаёт новый обработчик
func NewDeviceHandler(devices *service.DeviceService, messages *service.MessageService) *DeviceHandler {
	return &DeviceHandler{
		devices:  devices,
		messages: messages,
	}
}

// CheckinRequest — структура запроса check-in
type CheckinRequest struct {
	DeviceID string `json:"device_id"` // Идентификатор устройства (регистр и пробелы не важны)
}

// PullRequest — структура запроса на выдачу сообщений
type PullRequest struct {
	DeviceID string `json:"device_id"`
}

// Checkin регистрирует устройство и обновляет liveness
// @Summary Check-in устройства
// @Description Панель периодически отмечается на сервере. Запись устройства создаётся при первом обращении.
// @Tags device
// @Accept json
// @Produce json
// @Param request body CheckinRequest true "Идентификатор устройства"
// @Success 200 {object} map[string]string "Статус ok"
// @Failure 400 {object} ErrorResponse "device_id отсутствует"
// @Router /api/checkin [post]
func (h *DeviceHandler) Checkin(c *fiber.Ctx) error {
	var req CheckinRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing device_id",
		})
	}

	id, err := h.devices.CheckIn(req.DeviceID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing device_id",
		})
	}

	log.Printf("[CHECKIN] device_id='%s' (RAW: '%s')", id, req.DeviceID)
	return c.JSON(fiber.Map{"status": "ok"})
}

// PullResponse — структура ответа с накопленными сообщениями
type PullResponse struct {
	Messages []domain.Message `json:"messages"`
}

// Pull отдаёт устройству все накопленные сообщения и очищает очередь
// @Summary Забрать сообщения
// @Description Возвращает все сообщения устройства в порядке поступления и очищает очередь. Повторный вызов без новых сообщений вернёт пустой список.
// @Tags device
// @Accept json
// @Produce json
// @Param request body PullRequest true "Идентификатор устройства"
// @Success 200 {object} PullResponse "Сообщения в порядке поступления"
// @Failure 404 {object} ErrorResponse "Устройство не зарегистрировано"
// @Router /api/pull [post]
func (h *DeviceHandler) Pull(c *fiber.Ctx) error {
	var req PullRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "Unknown device_id",
		})
	}

	messages, err := h.messages.Pull(req.DeviceID)
	if err != nil {
		if errors.Is(err, service.ErrUnknownDevice) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error: "Unknown device_id",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Internal server error",
		})
	}

	log.Printf("[PULL] отдано %d сообщений для '%s'", len(messages), req.DeviceID)
	return c.JSON(PullResponse{Messages: messages})
}

// DeviceStatusResponse — устройство со статусом для панели оператора
type DeviceStatusResponse struct {
	DeviceID string `json:"device_id"`
	Status   string `json:"status"`    // Online или Offline
	LastSeen string `json:"last_seen"` // RFC3339
}

// List возвращает все известные устройства со статусами
// @Summary Список устройств
// @Description Возвращает все известные устройства и их статус Online/Offline. Используется панелью оператора.
// @Tags device
// @Produce json
// @Success 200 {array} DeviceStatusResponse "Список устройств"
// @Router /api/devices [get]
func (h *DeviceHandler) List(c *fiber.Ctx) error {
	devices := h.devices.List(time.Now())

	response := make([]DeviceStatusResponse, len(devices))
	for i, d := range devices {
		response[i] = DeviceStatusResponse{
			DeviceID: d.ID,
			Status:   string(d.Status),
			LastSeen: d.LastSeen.Format(time.RFC3339),
		}
	}
	return c.JSON(response)
}
