package handlers

import (
	"context"
	"log"
	"net/http"
	"net/url"

	"sticker-viewer/internal/scene"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Render Handlers
// ============================================================

// Render loads the posted project JSON into the caller's session and
// returns the live SVG view. On any load failure the previous scene
// stays untouched.
func (h *ViewerHandler) Render(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "body required"})
	}

	project, err := scene.Normalize(c.Body())
	if err != nil {
		log.Printf("[RENDER] normalize: %v", err)
		return c.Status(loadStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	svg := h.session(c).LoadAndRender(project)
	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}

// Thumbnail renders the compact static preview of the posted project
// without touching any session state.
func (h *ViewerHandler) Thumbnail(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "body required"})
	}

	project, err := scene.Normalize(c.Body())
	if err != nil {
		log.Printf("[THUMB] normalize: %v", err)
		return c.Status(loadStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(scene.ThumbnailSVG(project))
}

// View resolves the inbound load paths in decreasing precedence:
// inline data, store id, arbitrary project URL.
func (h *ViewerHandler) View(c fiber.Ctx) error {
	if data := c.Query("data"); data != "" {
		return h.viewFromData(c, data)
	}
	if id := c.Query("id"); id != "" {
		return h.viewFromFetch(c, func(ctx context.Context) ([]byte, error) {
			return h.store.FetchProject(ctx, id)
		})
	}
	if projectURL := c.Query("project"); projectURL != "" {
		return h.viewFromFetch(c, func(ctx context.Context) ([]byte, error) {
			return h.store.FetchURL(ctx, projectURL)
		})
	}
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "data, id or project required"})
}

// viewFromData tries the URL-decoded payload first and falls back to
// the raw text when decoding (or the decoded parse) fails.
func (h *ViewerHandler) viewFromData(c fiber.Ctx, data string) error {
	var project *scene.Project
	var err error

	if decoded, decErr := url.QueryUnescape(data); decErr == nil {
		project, err = scene.Normalize([]byte(decoded))
	} else {
		err = decErr
	}
	if err != nil {
		project, err = scene.Normalize([]byte(data))
	}
	if err != nil {
		log.Printf("[VIEW] inline data: %v", err)
		return c.Status(loadStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	svg := h.session(c).LoadAndRender(project)
	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}

func (h *ViewerHandler) viewFromFetch(c fiber.Ctx, fetch func(context.Context) ([]byte, error)) error {
	raw, err := fetch(context.Background())
	if err != nil {
		log.Printf("[VIEW] fetch: %v", err)
		return c.Status(loadStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	project, err := scene.Normalize(raw)
	if err != nil {
		log.Printf("[VIEW] normalize: %v", err)
		return c.Status(loadStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	svg := h.session(c).LoadAndRender(project)
	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}
