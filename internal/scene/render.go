package scene

import (
	"fmt"
	"math"
	"strings"
)

// ============================================================
// Primitive Renderer
// ============================================================

// Stage size of the live view document. The camera transform moves the
// world inside this fixed viewport.
const (
	stageWidth  = 1280
	stageHeight = 800
)

type Renderer struct {
	paints *PaintRegistry
}

// NewRenderer starts a fresh render pass with its own paint registry.
func NewRenderer() *Renderer {
	return &Renderer{paints: NewPaintRegistry()}
}

// RenderDocument produces the live SVG view: gradient defs plus the
// world group wrapped in the session view transform. Elements append
// in traversal order.
func (r *Renderer) RenderDocument(p *Project, view *ViewTransform) string {
	var body strings.Builder
	if p != nil {
		for i := range p.Elements {
			r.renderElement(&p.Elements[i], &body, "    ")
		}
	}

	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&doc, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		stageWidth, stageHeight, stageWidth, stageHeight)
	doc.WriteString("\n")
	if defs := r.paints.Defs(); defs != "" {
		doc.WriteString("  " + defs + "\n")
	}
	fmt.Fprintf(&doc, `  <g id="world" transform="%s">`, view.Attr())
	doc.WriteString("\n")
	doc.WriteString(body.String())
	doc.WriteString("  </g>\n</svg>")
	return doc.String()
}

// RenderElements renders a bare element list without the document
// envelope; the thumbnail generator reuses it.
func (r *Renderer) RenderElements(elements []*Element, indent string) string {
	var body strings.Builder
	for _, e := range elements {
		r.renderElement(e, &body, indent)
	}
	return body.String()
}

func (r *Renderer) renderElement(e *Element, out *strings.Builder, indent string) {
	if e.Type == TypeGroup {
		// Groups are transparent containers; fill and stroke are not
		// resolved for the group itself.
		out.WriteString(indent + `<g class="sticker">` + "\n")
		for i := range e.Children {
			r.renderElement(&e.Children[i], out, indent+"  ")
		}
		out.WriteString(indent + "</g>\n")
		return
	}

	if e.Hidden {
		return
	}

	fill := r.paints.ResolveFill(e.FillColor, e.Gradient)
	stroke := e.StrokeColor
	if stroke == "" {
		stroke = defaultStrokeColor
	}

	var (
		tag   string
		attrs []string
		child string
	)

	switch e.Type {
	case TypeLine:
		tag = "line"
		attrs = append(attrs,
			attr("x1", e.X), attr("y1", e.Y),
			attr("x2", e.X2), attr("y2", e.Y2),
			`stroke="`+escapeAttr(stroke)+`"`,
			attr("stroke-width", e.LineWidth),
			`stroke-linecap="round"`,
		)
		if e.Active {
			attrs = append(attrs, `stroke-dasharray="8 8"`)
			child = fmt.Sprintf(
				`<animate attributeName="stroke-dashoffset" from="0" to="-16" dur="%ss" repeatCount="indefinite"/>`,
				formatFloat(dashPeriod(e.Speed)))
		}

	case TypeRectangle:
		tag = "rect"
		attrs = append(attrs,
			attr("x", e.X), attr("y", e.Y),
			attr("width", e.W), attr("height", e.H),
			attr("rx", e.Radius),
			`fill="`+escapeAttr(fill)+`"`,
			`stroke="`+escapeAttr(stroke)+`"`,
			attr("stroke-width", e.LineWidth),
		)

	case TypeCircle:
		radius := e.Radius
		if !e.HasRadius {
			radius = math.Min(e.W, e.H) / 2
		}
		cx, cy := circleCenter(e, radius)
		tag = "circle"
		attrs = append(attrs,
			attr("cx", cx), attr("cy", cy), attr("r", radius),
			`fill="`+escapeAttr(fill)+`"`,
			`stroke="`+escapeAttr(stroke)+`"`,
			attr("stroke-width", e.LineWidth),
		)

	case TypePolygon:
		if len(e.Points) == 0 {
			return
		}
		parts := make([]string, len(e.Points))
		for i, p := range e.Points {
			parts[i] = formatFloat(p.X) + "," + formatFloat(p.Y)
		}
		tag = "polygon"
		attrs = append(attrs,
			`points="`+strings.Join(parts, " ")+`"`,
			`fill="`+escapeAttr(fill)+`"`,
			`stroke="`+escapeAttr(stroke)+`"`,
			attr("stroke-width", e.LineWidth),
		)

	case TypeImage:
		if e.ImageSrc == "" {
			return
		}
		tag = "image"
		attrs = append(attrs,
			attr("x", e.X), attr("y", e.Y),
			attr("width", e.W), attr("height", e.H),
			`href="`+escapeAttr(e.ImageSrc)+`"`,
			`preserveAspectRatio="none"`,
		)

	default:
		return
	}

	// Rotation is a local transform about the element's own rect
	// center, composed on top of the world transform.
	if e.Rotation != 0 && !math.IsNaN(e.Rotation) && !math.IsInf(e.Rotation, 0) {
		cx := e.X + e.W/2
		cy := e.Y + e.H/2
		attrs = append(attrs, fmt.Sprintf(`transform="rotate(%s %s %s)"`,
			formatFloat(e.Rotation), formatFloat(cx), formatFloat(cy)))
	}
	attrs = append(attrs, `class="sticker"`)

	out.WriteString(indent + "<" + tag + " " + strings.Join(attrs, " "))
	if child == "" {
		out.WriteString("/>\n")
	} else {
		out.WriteString(">" + child + "</" + tag + ">\n")
	}
}

// dashPeriod is the active-line animation cycle in seconds.
func dashPeriod(speed float64) float64 {
	if speed == 0 {
		speed = 1
	}
	return math.Max(0.2, 2/speed)
}

func attr(name string, val float64) string {
	return name + `="` + formatFloat(val) + `"`
}
