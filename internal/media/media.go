package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
)

// ============================================================
// Media Inspector
// ============================================================

type Kind string

const (
	KindImage     Kind = "image"
	KindVideo     Kind = "video"
	KindModelGLTF Kind = "model-gltf"
	KindModelOBJ  Kind = "model-obj"
	KindModelMTL  Kind = "model-mtl"
	KindOther     Kind = "other"
)

// ErrUnsupportedKind marks a locally opened file no viewer handles.
var ErrUnsupportedKind = errors.New("unsupported media kind")

var ErrNotFound = errors.New("media item not found")

type Item struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Kind        Kind              `json:"kind"`
	Ext         string            `json:"ext"`
	Size        int64             `json:"size"`
	URL         string            `json:"url"`
	Thumb       string            `json:"thumb,omitempty"`
	MTLURL      string            `json:"mtlUrl,omitempty"`
	ResourceMap map[string]string `json:"resourceMap,omitempty"`
}

// Store owns the resource handles of locally supplied media files.
// Every handle created by Add has a matching release on every exit
// path: Remove, Reset, or Close at process unload.
type Store struct {
	mu    sync.Mutex
	root  string
	order []string
	items map[string]*Item
	paths map[string]string
}

func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir media dir: %w", err)
	}
	return &Store{
		root:  root,
		items: make(map[string]*Item),
		paths: make(map[string]string),
	}, nil
}

// Classify decides the media kind: 3-D mesh extensions first, then a
// content sniff, then an extension fallback for formats the sniffer
// cannot see (SVG is plain text).
func Classify(name string, data []byte) Kind {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "gltf", "glb":
		return KindModelGLTF
	case "obj":
		return KindModelOBJ
	case "mtl":
		return KindModelMTL
	case "svg":
		return KindImage
	}

	if t, err := filetype.Match(data); err == nil {
		switch t.MIME.Type {
		case "image":
			return KindImage
		case "video":
			return KindVideo
		}
	}

	switch ext {
	case "jpg", "jpeg", "png", "gif", "webp", "bmp":
		return KindImage
	case "mp4", "webm", "mov", "mkv", "avi":
		return KindVideo
	}
	return KindOther
}

// Add registers one locally supplied file, writing it under a fresh
// handle. OBJ meshes are linked to an already-registered sibling .mtl
// by base name, and vice versa.
func (s *Store) Add(name string, data []byte) (Item, error) {
	ext := strings.ToLower(filepath.Ext(name))
	id := uuid.NewString()
	path := filepath.Join(s.root, id+ext)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Item{}, fmt.Errorf("save media file: %w", err)
	}

	item := &Item{
		ID:   id,
		Name: filepath.Base(name),
		Kind: Classify(name, data),
		Ext:  ext,
		Size: int64(len(data)),
		URL:  "/media/" + id,
	}
	if item.Kind == KindImage {
		item.Thumb = item.URL
	}

	s.mu.Lock()
	s.order = append(s.order, id)
	s.items[id] = item
	s.paths[id] = path
	s.linkMaterialsLocked()
	out := *item
	s.mu.Unlock()
	return out, nil
}

// linkMaterialsLocked pairs every OBJ mesh with the MTL sharing its
// base name and records the material in the mesh's resource map.
func (s *Store) linkMaterialsLocked() {
	for _, objID := range s.order {
		obj := s.items[objID]
		if obj.Kind != KindModelOBJ {
			continue
		}
		base := strings.TrimSuffix(obj.Name, obj.Ext)
		for _, mtlID := range s.order {
			mtl := s.items[mtlID]
			if mtl.Kind != KindModelMTL {
				continue
			}
			if strings.TrimSuffix(mtl.Name, mtl.Ext) != base {
				continue
			}
			obj.MTLURL = mtl.URL
			if obj.ResourceMap == nil {
				obj.ResourceMap = make(map[string]string)
			}
			obj.ResourceMap[mtl.Name] = mtl.URL
		}
	}
}

// Items returns a snapshot in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.items[id])
	}
	return out
}

// Open resolves an item to its backing file for serving. Items no
// viewer handles fail with ErrUnsupportedKind.
func (s *Store) Open(id string) (string, Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return "", Item{}, ErrNotFound
	}
	if item.Kind == KindOther {
		return "", *item, fmt.Errorf("%w: %s", ErrUnsupportedKind, item.Name)
	}
	return s.paths[id], *item, nil
}

// Remove releases one handle.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	path, ok := s.paths[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	delete(s.paths, id)
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("release media file: %w", err)
	}
	return nil
}

// Reset clears the media list and releases every handle, continuing
// past individual failures so no file outlives the list.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for id, path := range s.paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("release %s: %w", id, err))
		}
	}
	s.order = nil
	s.items = make(map[string]*Item)
	s.paths = make(map[string]string)
	return errors.Join(errs...)
}

// Close releases everything at process unload.
func (s *Store) Close() error {
	return s.Reset()
}
