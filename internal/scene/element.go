package scene

import "strconv"

// ============================================================
// Element Model
// ============================================================

type ElementType string

const (
	TypeRectangle ElementType = "rectangle"
	TypeCircle    ElementType = "circle"
	TypeLine      ElementType = "line"
	TypePolygon   ElementType = "polygon"
	TypeImage     ElementType = "image"
	TypeGroup     ElementType = "group"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type GradientStop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// Gradient axis coordinates are in object-bounding-box units.
type Gradient struct {
	X1    float64        `json:"x1"`
	Y1    float64        `json:"y1"`
	X2    float64        `json:"x2"`
	Y2    float64        `json:"y2"`
	Stops []GradientStop `json:"stops"`
}

// Element is the strict internal form of one sticker node. The wire
// format is loose (width/w, endX/x2, lineWidth/strokeWidth and so on);
// every alias is resolved once, in decodeElement, and never re-derived
// downstream.
type Element struct {
	Type        ElementType
	X, Y        float64
	W, H        float64
	FillColor   string
	Gradient    *Gradient
	StrokeColor string
	LineWidth   float64
	Rotation    float64
	Hidden      bool
	Active      bool
	Speed       float64
	Radius      float64
	HasRadius   bool
	CX, CY      float64
	HasCX       bool
	HasCY       bool
	X2, Y2      float64
	Points      []Point
	ImageSrc    string
	Children    []Element
}

// ============================================================
// Decoding
// ============================================================

// DecodeElements converts a raw JSON element array into the strict
// internal variant set. Records that are not objects are dropped.
func DecodeElements(raw []any) []Element {
	var out []Element
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, decodeElement(obj))
	}
	return out
}

func decodeElement(obj map[string]any) Element {
	e := Element{
		Type:        elementType(obj),
		X:           num(obj, "x"),
		Y:           num(obj, "y"),
		W:           num(obj, "width", "w"),
		H:           num(obj, "height", "h"),
		FillColor:   str(obj, "fillColor"),
		StrokeColor: str(obj, "strokeColor"),
		LineWidth:   numDefault(obj, 2, "lineWidth", "strokeWidth"),
		Rotation:    num(obj, "rotation"),
		Hidden:      boolVal(obj, "hidden"),
		Active:      boolVal(obj, "active"),
		Speed:       num(obj, "speed"),
	}

	switch e.Type {
	case TypeGroup:
		if children, ok := obj["elements"].([]any); ok {
			e.Children = DecodeElements(children)
		}
	case TypeLine:
		// Start point accepts x/y with x1/y1 as the fallback alias.
		e.X = num(obj, "x", "x1")
		e.Y = num(obj, "y", "y1")
		e.X2 = num(obj, "endX", "x2")
		e.Y2 = num(obj, "endY", "y2")
	case TypeCircle:
		e.Radius, e.HasRadius = numOK(obj, "radius")
		e.CX, e.HasCX = numOK(obj, "cx")
		e.CY, e.HasCY = numOK(obj, "cy")
	case TypeRectangle:
		e.Radius, e.HasRadius = numOK(obj, "radius")
	case TypePolygon:
		e.Points = decodePoints(obj["points"])
	case TypeImage:
		e.ImageSrc = str(obj, "imageSrc", "imageData")
	}

	if grad, ok := obj["fillGradient"].(map[string]any); ok {
		e.Gradient = decodeGradient(grad)
	}
	return e
}

func elementType(obj map[string]any) ElementType {
	t, _ := obj["type"].(string)
	if t == "path" {
		return TypePolygon
	}
	return ElementType(t)
}

func decodeGradient(obj map[string]any) *Gradient {
	g := &Gradient{
		X1: numDefault(obj, 0, "x1"),
		Y1: numDefault(obj, 0, "y1"),
		X2: numDefault(obj, 1, "x2"),
		Y2: numDefault(obj, 1, "y2"),
	}
	stops, _ := obj["stops"].([]any)
	for _, s := range stops {
		stop, ok := s.(map[string]any)
		if !ok {
			continue
		}
		g.Stops = append(g.Stops, GradientStop{
			Offset: num(stop, "offset"),
			Color:  str(stop, "color"),
		})
	}
	return g
}

func decodePoints(raw any) []Point {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	var points []Point
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		points = append(points, Point{X: num(obj, "x"), Y: num(obj, "y")})
	}
	return points
}

// ============================================================
// Coercion helpers
// ============================================================

// num resolves the first present key, coercing to a number; absent or
// non-numeric values coerce to 0.
func num(obj map[string]any, keys ...string) float64 {
	return numDefault(obj, 0, keys...)
}

func numDefault(obj map[string]any, def float64, keys ...string) float64 {
	for _, key := range keys {
		if raw, ok := obj[key]; ok {
			if v, ok := coerceNum(raw); ok {
				return v
			}
			return def
		}
	}
	return def
}

func numOK(obj map[string]any, key string) (float64, bool) {
	raw, ok := obj[key]
	if !ok {
		return 0, false
	}
	return coerceNum(raw)
}

func coerceNum(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func str(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := obj[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func boolVal(obj map[string]any, key string) bool {
	v, _ := obj[key].(bool)
	return v
}
