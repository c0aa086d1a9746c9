package scene

import "math"

// ============================================================
// Bounds
// ============================================================

type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// BoundsOf computes the axis-aligned bounding box of one element.
// Groups have no geometry of their own; their children are bounded
// individually by the walker. A circle with an explicit radius is
// centered on its raw x/y, not on the rect-derived center the renderer
// uses; that asymmetry is intentional and load-bearing for thumbnails.
func BoundsOf(e *Element) (Bounds, bool) {
	switch e.Type {
	case TypeRectangle, TypeImage:
		return Bounds{e.X, e.Y, e.X + e.W, e.Y + e.H}, true
	case TypeCircle:
		if e.HasRadius {
			return Bounds{e.X - e.Radius, e.Y - e.Radius, e.X + e.Radius, e.Y + e.Radius}, true
		}
		r := math.Min(e.W, e.H) / 2
		cx, cy := circleCenter(e, r)
		return Bounds{cx - r, cy - r, cx + r, cy + r}, true
	case TypeLine:
		return Bounds{
			math.Min(e.X, e.X2), math.Min(e.Y, e.Y2),
			math.Max(e.X, e.X2), math.Max(e.Y, e.Y2),
		}, true
	case TypePolygon:
		if len(e.Points) == 0 {
			return Bounds{}, false
		}
		b := Bounds{e.Points[0].X, e.Points[0].Y, e.Points[0].X, e.Points[0].Y}
		for _, p := range e.Points[1:] {
			b.MinX = math.Min(b.MinX, p.X)
			b.MinY = math.Min(b.MinY, p.Y)
			b.MaxX = math.Max(b.MaxX, p.X)
			b.MaxY = math.Max(b.MaxY, p.Y)
		}
		return b, true
	}
	return Bounds{}, false
}

// MergeBounds unions two boxes. nil stands for "no bounds" and is the
// identity; the operation is associative and commutative.
func MergeBounds(a, b *Bounds) *Bounds {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &Bounds{
		MinX: math.Min(a.MinX, b.MinX),
		MinY: math.Min(a.MinY, b.MinY),
		MaxX: math.Max(a.MaxX, b.MaxX),
		MaxY: math.Max(a.MaxY, b.MaxY),
	}
}

// circleCenter resolves the circle center the way the renderer does:
// explicit cx/cy win, otherwise the center of the element rect, with
// the diameter standing in for a missing side.
func circleCenter(e *Element, r float64) (float64, float64) {
	cx := e.CX
	if !e.HasCX {
		w := e.W
		if w == 0 {
			w = r * 2
		}
		cx = e.X + w/2
	}
	cy := e.CY
	if !e.HasCY {
		h := e.H
		if h == 0 {
			h = r * 2
		}
		cy = e.Y + h/2
	}
	return cx, cy
}

func clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
