package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"sticker-viewer/internal/catalog"
	"sticker-viewer/internal/scene"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Publish Handlers
// ============================================================

// PublishVector validates and forwards a vector asset to the store.
func (h *ViewerHandler) PublishVector(c fiber.Ctx) error {
	return h.publish(c, catalog.KindVector)
}

// PublishProject validates and forwards a project to the store.
func (h *ViewerHandler) PublishProject(c fiber.Ctx) error {
	return h.publish(c, catalog.KindProject)
}

// publish validates locally first so an obviously broken payload never
// reaches the store, then forwards it with the caller's publish key.
// Server detail strings are surfaced verbatim.
func (h *ViewerHandler) publish(c fiber.Ctx, kind catalog.Kind) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": "body required"})
	}

	if _, err := scene.Normalize(body); err != nil {
		return c.Status(loadStatus(err)).JSON(fiber.Map{
			"ok": false, "error": "invalid project", "details": []string{err.Error()},
		})
	}

	id, err := h.store.Publish(context.Background(), kind, body, c.Get("x-publish-key"))
	if err != nil {
		var pubErr *catalog.PublishError
		if errors.As(err, &pubErr) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"ok": false, "error": pubErr.Message, "details": pubErr.Details,
			})
		}
		log.Printf("[PUBLISH] forward: %v", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"ok": false, "error": "store unreachable"})
	}
	return c.JSON(fiber.Map{"ok": true, "id": id})
}
