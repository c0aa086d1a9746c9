package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"sticker-viewer/internal/media"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Media Inspector Handlers
// ============================================================

// UploadMedia registers a batch of locally supplied files, classifying
// each by kind.
func (h *ViewerHandler) UploadMedia(c fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "multipart form required"})
	}

	var items []media.Item
	for _, files := range form.File {
		for _, fileHeader := range files {
			file, err := fileHeader.Open()
			if err != nil {
				log.Printf("[MEDIA] open %s: %v", fileHeader.Filename, err)
				continue
			}

			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				log.Printf("[MEDIA] read %s: %v", fileHeader.Filename, err)
				continue
			}

			item, err := h.media.Add(fileHeader.Filename, data)
			if err != nil {
				log.Printf("[MEDIA] add %s: %v", fileHeader.Filename, err)
				return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store media"})
			}
			items = append(items, item)
		}
	}

	if len(items) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "no files supplied"})
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"items": items})
}

// ListMedia returns the registered items in upload order.
func (h *ViewerHandler) ListMedia(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"items": h.media.Items()})
}

// GetMedia serves the stored file behind an item's resource handle.
func (h *ViewerHandler) GetMedia(c fiber.Ctx) error {
	path, _, err := h.media.Open(c.Params("id"))
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedKind) {
			return c.Status(http.StatusUnsupportedMediaType).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "media not found"})
	}
	return c.SendFile(path)
}

// ResetMedia clears the media list, releasing every resource handle.
func (h *ViewerHandler) ResetMedia(c fiber.Ctx) error {
	if err := h.media.Reset(); err != nil {
		log.Printf("[MEDIA] reset: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to release media"})
	}
	return c.JSON(fiber.Map{"status": "cleared"})
}
