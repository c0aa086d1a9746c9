package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sticker-viewer/internal/catalog"
	"sticker-viewer/internal/scene"
	"sticker-viewer/internal/store/repository"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// ============================================================
// Store Handler
// ============================================================

const defaultListLimit = 200

type StoreHandler struct {
	repo       *repository.Repository
	publishKey string
}

func NewStoreHandler(repo *repository.Repository, publishKey string) *StoreHandler {
	return &StoreHandler{repo: repo, publishKey: publishKey}
}

// GetProject serves one stored blob body verbatim.
func (h *StoreHandler) GetProject(c fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "id required"})
	}

	blob, err := h.repo.Get(context.Background(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "project not found"})
		}
		log.Printf("[STORE] get %s: %v", id, err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "storage failed"})
	}

	c.Set("Content-Type", "application/json")
	return c.Send(blob.Body)
}

// ListLibrary lists blob metadata for one scope.
func (h *StoreHandler) ListLibrary(c fiber.Ctx) error {
	scope := c.Query("scope")
	if scope == "" {
		scope = catalog.ScopeProjects
	}

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= defaultListLimit {
			limit = n
		}
	}

	blobs, err := h.repo.ListScope(context.Background(), scope, limit)
	if err != nil {
		log.Printf("[STORE] list %s: %v", scope, err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "storage failed"})
	}

	out := make([]fiber.Map, 0, len(blobs))
	for _, b := range blobs {
		out = append(out, fiber.Map{
			"pathname":   b.Pathname,
			"size":       b.Size,
			"uploadedAt": b.UploadedAt,
		})
	}
	return c.JSON(fiber.Map{"blobs": out})
}

// PublishVector stores a vector asset in the library scope.
func (h *StoreHandler) PublishVector(c fiber.Ctx) error {
	return h.publish(c, catalog.ScopeLibrary)
}

// PublishProject stores a project in the projects scope.
func (h *StoreHandler) PublishProject(c fiber.Ctx) error {
	return h.publish(c, catalog.ScopeProjects)
}

// publish validates the payload through the project loader and stores
// the body under <scope>/[folder/]<name>-<uuid>.json. Validation
// failures answer ok:false with per-problem detail strings.
func (h *StoreHandler) publish(c fiber.Ctx, scope string) error {
	if h.publishKey != "" && c.Get("x-publish-key") != h.publishKey {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"ok": false, "error": "invalid publish key",
		})
	}

	body := c.Body()
	if len(body) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"ok": false, "error": "body required",
		})
	}

	project, err := scene.Normalize(body)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"ok": false, "error": "invalid project", "details": []string{err.Error()},
		})
	}

	var details []string
	if project.Name == "" {
		details = append(details, "name is required")
	}
	if len(details) > 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"ok": false, "error": "validation failed", "details": details,
		})
	}

	pathname := scope + "/"
	if project.Folder != "" {
		pathname += slug(project.Folder) + "/"
	}
	pathname += slug(project.Name) + "-" + uuid.NewString() + ".json"

	blob := &repository.Blob{
		Pathname:   pathname,
		Scope:      scope,
		Body:       body,
		Size:       int64(len(body)),
		UploadedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.repo.Put(context.Background(), blob); err != nil {
		log.Printf("[STORE] publish %s: %v", pathname, err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"ok": false, "error": "storage failed",
		})
	}

	log.Printf("[STORE] published %s (%d bytes)", pathname, blob.Size)
	return c.JSON(fiber.Map{"ok": true, "id": pathname})
}

// slug reduces a display name to a safe pathname segment.
func slug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}
