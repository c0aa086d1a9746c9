package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"sticker-viewer/internal/common/config"
	"sticker-viewer/internal/common/middleware"
	"sticker-viewer/internal/store/handlers"
	"sticker-viewer/internal/store/repository"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Store Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3004"
	}

	db, err := repository.OpenSQLite(cfg.StoreDBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	migrations := getenv("STORE_MIGRATIONS", "migrations/001_init_store.sql")
	if err := repo.Init(context.Background(), migrations); err != nil {
		log.Fatalf("init db: %v", err)
	}

	storeHandler := handlers.NewStoreHandler(repo, cfg.PublishKey)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Store Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
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
	// Blob Store Routes
	// ============================================================

	app.Get("/api/project", storeHandler.GetProject)
	app.Get("/api/library", storeHandler.ListLibrary)
	app.Post("/api/publish", storeHandler.PublishVector)
	app.Post("/api/publish-project", storeHandler.PublishProject)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Store Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getenv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}
