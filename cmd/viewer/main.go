package main

import (
	"fmt"
	"log"
	"time"

	"sticker-viewer/internal/catalog"
	"sticker-viewer/internal/common/config"
	"sticker-viewer/internal/common/middleware"
	"sticker-viewer/internal/media"
	"sticker-viewer/internal/viewer/handlers"
	"sticker-viewer/internal/viewer/service"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Viewer Service
// ============================================================

func main() {
	cfg := config.Load()

	storeClient := catalog.NewStoreClient(cfg.StoreURL)
	catalogSvc := catalog.NewService(storeClient)
	previews := catalog.NewPreviewCache(storeClient,
		time.Duration(cfg.PreviewDebounceMS)*time.Millisecond)

	mediaStore, err := media.NewStore(cfg.MediaDir)
	if err != nil {
		log.Fatalf("init media store: %v", err)
	}
	defer mediaStore.Close()

	sessions := service.NewSessionManager()
	viewer := handlers.NewViewerHandler(sessions, storeClient, catalogSvc, previews, mediaStore)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Viewer Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.CORS())
	app.Use(middleware.Logger())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Scene Routes
	// ============================================================

	app.Get("/", viewer.Index)
	app.Post("/render", viewer.Render)
	app.Post("/thumbnail", viewer.Thumbnail)
	app.Get("/view", viewer.View)

	// ============================================================
	// Session Routes
	// ============================================================

	app.Post("/session", viewer.NewSession)
	app.Get("/session", viewer.SessionState)
	app.Post("/session/zoom-in", viewer.ZoomIn)
	app.Post("/session/zoom-out", viewer.ZoomOut)
	app.Post("/session/zoom-reset", viewer.ZoomReset)
	app.Post("/session/rotate-left", viewer.RotateLeft)
	app.Post("/session/rotate-right", viewer.RotateRight)
	app.Post("/session/flip-h", viewer.FlipH)
	app.Post("/session/flip-v", viewer.FlipV)
	app.Post("/session/lock", viewer.ToggleLock)
	app.Post("/session/pan", viewer.Pan)
	app.Post("/session/wheel", viewer.Wheel)
	app.Post("/session/clear", viewer.ClearSession)

	// ============================================================
	// Catalog & Publish Routes
	// ============================================================

	app.Get("/api/catalog", viewer.Catalog)
	app.Get("/api/catalog/version", viewer.CatalogVersion)
	app.Post("/api/publish", viewer.PublishVector)
	app.Post("/api/publish-project", viewer.PublishProject)

	// ============================================================
	// Media Routes
	// ============================================================

	app.Post("/media", viewer.UploadMedia)
	app.Get("/media", viewer.ListMedia)
	app.Get("/media/:id", viewer.GetMedia)
	app.Delete("/media", viewer.ResetMedia)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Viewer Service on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Using store at %s", cfg.StoreURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
