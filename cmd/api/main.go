package main

// @title LoveByte Server API
// @version 1.0
// @description Почтовый сервис для панелей LoveByte: check-in устройств, очереди сообщений, конвертация и одноразовая выдача картинок

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:6969
// @BasePath /

// @schemes http

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/Darkone83/LoveByte/internal/config"
	"github.com/Darkone83/LoveByte/internal/handler"
	"github.com/Darkone83/LoveByte/internal/repository"
	"github.com/Darkone83/LoveByte/internal/service"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Ошибка загрузки конфигурации:", err)
	}

	fmt.Println("=== LoveByte Server ===")

	// Создаём хранилища
	deviceRepo := repository.NewDeviceRepository()
	artifactRepo, err := repository.NewArtifactRepository(cfg.Storage.ImageDir)
	if err != nil {
		log.Fatal("Ошибка создания каталога картинок:", err)
	}

	// Создаём сервисы
	events := service.NewBus()
	transcoder := service.NewTranscoder(cfg.Panel, artifactRepo)
	deviceService := service.NewDeviceService(deviceRepo, cfg.Device)
	messageService := service.NewMessageService(deviceRepo, transcoder, events)

	// Создаём обработчики
	deviceHandler := handler.NewDeviceHandler(deviceService, messageService)
	messageHandler := handler.NewMessageHandler(messageService)
	imageHandler := handler.NewImageHandler(artifactRepo)

	// Создаём Fiber-приложение
	// BodyLimit увеличен: multipart с картинкой не влезает в 4 МБ по умолчанию
	app := fiber.New(fiber.Config{
		AppName:   "LoveByte Server",
		BodyLimit: 16 * 1024 * 1024,
	})

	// Настраиваем маршруты
	handler.SetupRoutes(app, deviceHandler, messageHandler, imageHandler)

	// Дублируем события активности в лог сервера
	// Внешний интерфейс оператора подписывается на ту же шину
	go func() {
		for evt := range events.Subscribe() {
			log.Printf("[EVENT] %s", evt.Text)
		}
	}()

	// Запускаем HTTP-сервер в отдельной горутине
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
		if err := app.Listen(addr); err != nil {
			log.Printf("HTTP-сервер остановлен: %v", err)
		}
	}()

	fmt.Printf("\nHTTP API: http://localhost:%d\n", cfg.Server.HTTPPort)
	fmt.Printf("Панель: %dx%d, картинки в '%s'\n", cfg.Panel.Width, cfg.Panel.Height, cfg.Storage.ImageDir)
	fmt.Println("\nНажмите Ctrl+C для остановки")

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nОстановка сервера...")
	app.Shutdown()
}
