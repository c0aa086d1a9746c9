package scene

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// ============================================================
// Paint Registry
// ============================================================

const (
	defaultFillColor   = "#00bcd4"
	defaultStrokeColor = "#e94560"
)

// gradientCounter is process-unique and monotonic; together with the
// creation timestamp it keeps generated paint ids distinct across
// concurrent render passes.
var gradientCounter atomic.Int64

// PaintRegistry accumulates the gradient definitions of a single
// render pass. A registry never outlives its pass: re-rendering a
// scene discards the old registry and regenerates every gradient.
type PaintRegistry struct {
	defs []string
}

func NewPaintRegistry() *PaintRegistry {
	return &PaintRegistry{}
}

// ResolveFill returns the paint for an element: the solid base color
// (or the default accent when absent), or a reference to a freshly
// registered gradient.
func (p *PaintRegistry) ResolveFill(base string, grad *Gradient) string {
	if grad == nil {
		if base == "" {
			return defaultFillColor
		}
		return base
	}

	id := fmt.Sprintf("g_%d_%d", time.Now().UnixMilli(), gradientCounter.Add(1))

	var b strings.Builder
	fmt.Fprintf(&b, `<linearGradient id="%s" x1="%s" y1="%s" x2="%s" y2="%s" gradientUnits="objectBoundingBox">`,
		id, formatFloat(grad.X1), formatFloat(grad.Y1), formatFloat(grad.X2), formatFloat(grad.Y2))

	if len(grad.Stops) == 0 {
		// Synthesized two-stop ramp from the solid fill to white.
		from := base
		if from == "" {
			from = defaultFillColor
		}
		fmt.Fprintf(&b, `<stop offset="0%%" stop-color="%s"/>`, escapeAttr(from))
		b.WriteString(`<stop offset="100%" stop-color="#ffffff"/>`)
	} else {
		for _, s := range grad.Stops {
			color := s.Color
			if color == "" {
				color = defaultFillColor
			}
			fmt.Fprintf(&b, `<stop offset="%s%%" stop-color="%s"/>`,
				formatFloat(clamp(s.Offset, 0, 1)*100), escapeAttr(color))
		}
	}
	b.WriteString(`</linearGradient>`)

	p.defs = append(p.defs, b.String())
	return "url(#" + id + ")"
}

// Defs renders the accumulated definitions block, empty when no
// gradient was registered.
func (p *PaintRegistry) Defs() string {
	if len(p.defs) == 0 {
		return ""
	}
	return "<defs>" + strings.Join(p.defs, "") + "</defs>"
}

// ============================================================
// Formatting helpers
// ============================================================

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
