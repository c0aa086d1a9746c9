package scene

import (
	"encoding/json"
	"strings"
)

// ============================================================
// Project Loader
// ============================================================

type Camera struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

type Project struct {
	Name     string
	Folder   string
	Camera   Camera
	Elements []Element
}

// Historically used wrapper keys, probed in order when the top-level
// object has no elements array of its own.
var wrapperKeys = []string{
	"project", "data", "payload", "result", "value",
	"diagram", "flow", "content", "document",
}

// Normalize resolves arbitrary JSON to a Project. Malformed text fails
// with ParseError; valid JSON without a locatable elements array fails
// with InvalidPayload.
func Normalize(raw []byte) (*Project, error) {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &ParseError{Err: err}
	}

	obj, ok := data.(map[string]any)
	if !ok {
		return nil, &InvalidPayload{Reason: "payload is not an object"}
	}

	if _, ok := obj["elements"].([]any); !ok {
		obj, ok = unwrap(obj)
		if !ok {
			return nil, &InvalidPayload{Reason: "missing elements array"}
		}
	}

	elements, _ := obj["elements"].([]any)

	p := &Project{
		Name:     strings.TrimSpace(str(obj, "name")),
		Folder:   strings.TrimSpace(str(obj, "folder")),
		Camera:   Camera{Zoom: 1},
		Elements: DecodeElements(elements),
	}

	if cam, ok := obj["camera"].(map[string]any); ok {
		p.Camera = Camera{
			X:    num(cam, "x"),
			Y:    num(cam, "y"),
			Zoom: numDefault(cam, 1, "zoom"),
		}
	}
	return p, nil
}

// unwrap returns the first wrapped value carrying an elements array.
func unwrap(obj map[string]any) (map[string]any, bool) {
	for _, key := range wrapperKeys {
		inner, ok := obj[key].(map[string]any)
		if !ok {
			continue
		}
		if _, ok := inner["elements"].([]any); ok {
			return inner, true
		}
	}
	return nil, false
}
