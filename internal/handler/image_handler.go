package handler

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Darkone83/LoveByte/internal/repository"
	"github.com/Darkone83/LoveByte/internal/service"
)

// ImageHandler отдаёт сгенерированные артефакты устройствам
type ImageHandler struct {
	artifacts *repository.ArtifactRepository
}

// NewImageHandler создаёт новый обработчик
func NewImageHandler(artifacts *repository.ArtifactRepository) *ImageHandler {
	return &ImageHandler{artifacts: artifacts}
}

// Fetch отдаёт артефакт и сразу удаляет его с диска
// Каждый артефакт скачивается ровно один раз: повторный запрос
// того же имени вернёт 404
// @Summary Забрать артефакт
// @Description Отдаёт сгенерированную картинку и удаляет её. Повторный запрос вернёт 404.
// @Tags device
// @Produce octet-stream
// @Param filename path string true "Имя артефакта" example("img_20240101_120000.jpg")
// @Success 200 {file} binary "Содержимое артефакта"
// @Failure 404 {object} ErrorResponse "Артефакт не найден или уже выдан"
// @Router /images/{filename} [get]
func (h *ImageHandler) Fetch(c *fiber.Ctx) error {
	filename := c.Params("filename")

	data, err := h.artifacts.Read(filename)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "Not found",
		})
	}

	// Файл удаляем сразу после чтения: повторная выдача исключена,
	// а неудачное удаление не должно ломать уже подготовленный ответ
	if err := h.artifacts.Remove(filename); err != nil {
		log.Printf("[SERVER] не удалось удалить артефакт %s: %v", filename, err)
	} else {
		log.Printf("[SERVER] артефакт %s удалён после выдачи", filename)
	}

	service.GlobalStats.IncrementServed()

	c.Type(strings.TrimPrefix(filepath.Ext(filename), "."))
	return c.Send(data)
}
