package handlers

import (
	"encoding/json"
	"net/http"

	"sticker-viewer/internal/scene"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Session & View Transform Handlers
// ============================================================

// NewSession issues a fresh session token.
func (h *ViewerHandler) NewSession(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"token": h.sessions.Issue()})
}

func (h *ViewerHandler) viewCommand(c fiber.Ctx, apply func(*scene.ViewTransform)) error {
	state := h.session(c).UpdateView(apply)
	return c.JSON(fiber.Map{
		"zoom":      state.Zoom,
		"rotateDeg": state.RotateDeg,
		"flipX":     state.FlipX,
		"flipY":     state.FlipY,
		"panX":      state.PanX,
		"panY":      state.PanY,
		"locked":    state.Locked,
		"transform": state.Attr(),
	})
}

func (h *ViewerHandler) ZoomIn(c fiber.Ctx) error {
	return h.viewCommand(c, (*scene.ViewTransform).ZoomIn)
}

func (h *ViewerHandler) ZoomOut(c fiber.Ctx) error {
	return h.viewCommand(c, (*scene.ViewTransform).ZoomOut)
}

func (h *ViewerHandler) ZoomReset(c fiber.Ctx) error {
	return h.viewCommand(c, (*scene.ViewTransform).ZoomReset)
}

func (h *ViewerHandler) RotateLeft(c fiber.Ctx) error {
	return h.viewCommand(c, (*scene.ViewTransform).RotateLeft)
}

func (h *ViewerHandler) RotateRight(c fiber.Ctx) error {
	return h.viewCommand(c, (*scene.ViewTransform).RotateRight)
}

func (h *ViewerHandler) FlipH(c fiber.Ctx) error {
	return h.viewCommand(c, (*scene.ViewTransform).FlipH)
}

func (h *ViewerHandler) FlipV(c fiber.Ctx) error {
	return h.viewCommand(c, (*scene.ViewTransform).FlipV)
}

func (h *ViewerHandler) ToggleLock(c fiber.Ctx) error {
	return h.viewCommand(c, func(v *scene.ViewTransform) { v.ToggleLock() })
}

// Pan sets the camera offset absolutely from a drag delta.
func (h *ViewerHandler) Pan(c fiber.Ctx) error {
	var req struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	return h.viewCommand(c, func(v *scene.ViewTransform) { v.Pan(req.X, req.Y) })
}

// Wheel zooms by scroll direction.
func (h *ViewerHandler) Wheel(c fiber.Ctx) error {
	var req struct {
		DeltaY float64 `json:"deltaY"`
	}
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	return h.viewCommand(c, func(v *scene.ViewTransform) { v.Wheel(req.DeltaY) })
}

// ClearSession resets the scene and camera.
func (h *ViewerHandler) ClearSession(c fiber.Ctx) error {
	h.session(c).Clear()
	return c.JSON(fiber.Map{"status": "cleared"})
}

// SessionState reports the camera and scene size.
func (h *ViewerHandler) SessionState(c fiber.Ctx) error {
	s := h.session(c)
	state := s.ViewState()
	return c.JSON(fiber.Map{
		"zoom":      state.Zoom,
		"rotateDeg": state.RotateDeg,
		"flipX":     state.FlipX,
		"flipY":     state.FlipY,
		"panX":      state.PanX,
		"panY":      state.PanY,
		"locked":    state.Locked,
		"transform": state.Attr(),
		"elements":  s.ElementCount(),
	})
}
