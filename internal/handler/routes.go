package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	"github.com/Darkone83/LoveByte/internal/service"
)

// SetupRoutes настраивает все маршруты приложения
func SetupRoutes(
	app *fiber.App,
	deviceHandler *DeviceHandler,
	messageHandler *MessageHandler,
	imageHandler *ImageHandler,
) {
	// Middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API устройств и оператора
	api := app.Group("/api")
	api.Post("/checkin", deviceHandler.Checkin)
	api.Post("/pull", deviceHandler.Pull)
	api.Post("/push", messageHandler.Push)
	api.Post("/upload_image", messageHandler.UploadImage)
	api.Get("/devices", deviceHandler.List)

	// Одноразовая выдача артефактов
	app.Get("/images/:filename", imageHandler.Fetch)

	// Health check
	// @Summary Проверка здоровья
	// @Description Возвращает статус сервера
	// @Tags system
	// @Produce json
	// @Success 200 {object} map[string]string "Статус сервера"
	// @Router /health [get]
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	// Stats
	// @Summary Статистика сервиса
	// @Description Возвращает статистику работы сервиса
	// @Tags system
	// @Produce json
	// @Success 200 {object} map[string]interface{} "Статистика"
	// @Router /stats [get]
	app.Get("/stats", func(c *fiber.Ctx) error {
		stats := service.GlobalStats.GetStats()
		return c.JSON(fiber.Map{
			"total_checkins":   stats.TotalCheckins,
			"total_messages":   stats.TotalMessages,
			"total_images":     stats.TotalImages,
			"served_artifacts": stats.ServedArtifacts,
		})
	})
}
