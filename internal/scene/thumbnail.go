package scene

import (
	"encoding/base64"
	"fmt"
	"math"
	"strings"
)

// ============================================================
// Thumbnail Generator
// ============================================================

const (
	maxThumbnailSample = 40
	thumbnailPadRatio  = 0.08
	backdropColor      = "#1a1a2e"
)

// ThumbnailSVG synthesizes a compact, self-contained preview of a
// project: the first 40 elements in document order, framed by their
// union bounds padded by 8% of the larger side, over a dark backdrop.
// A project with no boundable element gets the 0,0,100,100 canvas.
func ThumbnailSVG(p *Project) string {
	var sample []*Element
	_ = Walk(p.Elements, func(e *Element) error {
		if len(sample) >= maxThumbnailSample {
			return ErrStopWalk
		}
		sample = append(sample, e)
		return nil
	})

	var union *Bounds
	for _, e := range sample {
		if b, ok := BoundsOf(e); ok {
			union = MergeBounds(union, &b)
		}
	}
	if union == nil {
		union = &Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}
	}

	pad := thumbnailPadRatio * math.Max(union.Width(), union.Height())
	minX := union.MinX - pad
	minY := union.MinY - pad
	width := union.Width() + 2*pad
	height := union.Height() + 2*pad
	if width <= 0 {
		width = 100
	}
	if height <= 0 {
		height = 100
	}

	r := NewRenderer()
	// The walk already expanded groups; draw only the shapes.
	var drawable []*Element
	for _, e := range sample {
		if e.Type != TypeGroup {
			drawable = append(drawable, e)
		}
	}
	body := r.RenderElements(drawable, "  ")

	var doc strings.Builder
	fmt.Fprintf(&doc, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="%s %s %s %s">`,
		formatFloat(width), formatFloat(height),
		formatFloat(minX), formatFloat(minY), formatFloat(width), formatFloat(height))
	doc.WriteString("\n")
	if defs := r.paints.Defs(); defs != "" {
		doc.WriteString("  " + defs + "\n")
	}
	fmt.Fprintf(&doc, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
		formatFloat(minX), formatFloat(minY),
		formatFloat(width), formatFloat(height), backdropColor)
	doc.WriteString("\n")
	doc.WriteString(body)
	doc.WriteString("</svg>")
	return doc.String()
}

// Thumbnail returns the preview as an inlineable data reference.
func Thumbnail(p *Project) string {
	return svgDataURI(ThumbnailSVG(p))
}

// Placeholder is the fixed fallback art shown while a preview is
// pending or after its generation failed. Two variants: "project" and
// everything else (vector).
func Placeholder(kind string) string {
	var body string
	if kind == "project" {
		body = `<rect x="22" y="30" width="76" height="40" rx="4" fill="none" stroke="` + defaultFillColor + `" stroke-width="3"/>` +
			`<rect x="22" y="22" width="30" height="12" rx="3" fill="` + defaultFillColor + `"/>`
	} else {
		body = `<circle cx="60" cy="45" r="22" fill="none" stroke="` + defaultStrokeColor + `" stroke-width="3"/>` +
			`<line x1="42" y1="63" x2="78" y2="27" stroke="` + defaultStrokeColor + `" stroke-width="3" stroke-linecap="round"/>`
	}
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="120" height="90" viewBox="0 0 120 90">` +
		`<rect width="120" height="90" fill="` + backdropColor + `"/>` + body + `</svg>`
	return svgDataURI(svg)
}

func svgDataURI(svg string) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}
