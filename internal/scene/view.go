package scene

import "fmt"

// ============================================================
// View Transform
// ============================================================

const (
	minZoom    = 0.1
	maxZoom    = 5
	zoomStep   = 0.1
	rotateStep = 15
)

// ViewTransform is the interactive camera applied uniformly to the
// rendered scene, independent of its content. While Locked is true,
// pan/zoom/wheel commands are ignored entirely; rotate and flip stay
// available.
type ViewTransform struct {
	Zoom      float64 `json:"zoom"`
	RotateDeg float64 `json:"rotateDeg"`
	FlipX     int     `json:"flipX"`
	FlipY     int     `json:"flipY"`
	PanX      float64 `json:"panX"`
	PanY      float64 `json:"panY"`
	Locked    bool    `json:"locked"`
}

func NewViewTransform() *ViewTransform {
	return &ViewTransform{Zoom: 1, FlipX: 1, FlipY: 1}
}

func (v *ViewTransform) ZoomIn() {
	if v.Locked {
		return
	}
	v.Zoom = clamp(v.Zoom+zoomStep, minZoom, maxZoom)
}

func (v *ViewTransform) ZoomOut() {
	if v.Locked {
		return
	}
	v.Zoom = clamp(v.Zoom-zoomStep, minZoom, maxZoom)
}

func (v *ViewTransform) ZoomReset() {
	if v.Locked {
		return
	}
	v.Zoom = 1
}

// Wheel zooms by scroll direction: positive deltaY zooms out.
func (v *ViewTransform) Wheel(deltaY float64) {
	if v.Locked {
		return
	}
	dir := zoomStep
	if deltaY > 0 {
		dir = -zoomStep
	}
	v.Zoom = clamp(v.Zoom+dir, minZoom, maxZoom)
}

// Rotation accumulates unbounded, 15 degrees per step.
func (v *ViewTransform) RotateLeft()  { v.RotateDeg -= rotateStep }
func (v *ViewTransform) RotateRight() { v.RotateDeg += rotateStep }

func (v *ViewTransform) FlipH() { v.FlipX *= -1 }
func (v *ViewTransform) FlipV() { v.FlipY *= -1 }

// Pan sets the offset absolutely from a drag delta.
func (v *ViewTransform) Pan(x, y float64) {
	if v.Locked {
		return
	}
	v.PanX = x
	v.PanY = y
}

func (v *ViewTransform) ToggleLock() bool {
	v.Locked = !v.Locked
	return v.Locked
}

// Clear resets the camera; the lock state survives, matching the
// clear-view command of the UI.
func (v *ViewTransform) Clear() {
	v.Zoom = 1
	v.RotateDeg = 0
	v.FlipX = 1
	v.FlipY = 1
	v.PanX = 0
	v.PanY = 0
}

// Attr composes the camera in fixed order: translate, scale, rotate,
// then mirror. Flipping after rotation mirrors the rotated frame, not
// the original; the order is significant.
func (v *ViewTransform) Attr() string {
	return fmt.Sprintf("translate(%s %s) scale(%s) rotate(%s) scale(%d %d)",
		formatFloat(v.PanX), formatFloat(v.PanY),
		formatFloat(v.Zoom), formatFloat(v.RotateDeg),
		v.FlipX, v.FlipY)
}
