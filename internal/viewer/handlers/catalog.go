package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"sticker-viewer/internal/catalog"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Catalog Handlers
// ============================================================

type catalogEntry struct {
	ID         string                `json:"id"`
	Kind       catalog.Kind          `json:"kind"`
	Size       int64                 `json:"size"`
	UploadedAt string                `json:"uploadedAt,omitempty"`
	Preview    *catalog.PreviewEntry `json:"preview,omitempty"`
}

// Catalog lists the merged remote catalog, filtered by scope and
// search text. Listing triggers lazy preview materialization; entries
// whose preview has not resolved yet come back without one and appear
// in a later poll (see CatalogVersion).
func (h *ViewerHandler) Catalog(c fiber.Ctx) error {
	items, err := h.catalog.ListAll(context.Background())
	if err != nil {
		log.Printf("[CATALOG] list: %v", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "catalog listing failed"})
	}

	for _, item := range items {
		h.previews.Ensure(item)
	}

	kind := catalog.Kind(c.Query("scope"))
	filtered := catalog.Filter(items, c.Query("q"), kind, h.previews.NameOf)

	out := make([]catalogEntry, 0, len(filtered))
	for _, item := range filtered {
		entry := catalogEntry{ID: item.ID, Kind: item.Kind, Size: item.Size}
		if !item.UploadedAt.IsZero() {
			entry.UploadedAt = item.UploadedAt.Format(time.RFC3339)
		}
		if preview, ok := h.previews.Get(item.ID); ok {
			entry.Preview = &preview
		}
		out = append(out, entry)
	}
	return c.JSON(fiber.Map{"items": out, "version": h.previews.Version()})
}

// CatalogVersion exposes the debounced preview version counter so the
// client can coalesce re-renders instead of polling per item.
func (h *ViewerHandler) CatalogVersion(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"version": h.previews.Version()})
}
