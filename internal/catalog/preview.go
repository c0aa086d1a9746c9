package catalog

import (
	"context"
	"log"
	"path"
	"strings"
	"sync"
	"time"

	"sticker-viewer/internal/scene"
)

// ============================================================
// Preview Cache
// ============================================================

const DefaultPreviewDebounce = 90 * time.Millisecond

// PreviewEntry is the derived summary of one catalog item.
type PreviewEntry struct {
	Thumb        string `json:"thumb"`
	Name         string `json:"name"`
	ElementCount int    `json:"elementCount"`
}

// ProjectFetcher is the slice of the store client the cache needs.
type ProjectFetcher interface {
	FetchProject(ctx context.Context, id string) ([]byte, error)
}

// PreviewCache memoizes previews per item id. At most one preview
// request per id is in flight at a time; entries, once set, are never
// invalidated or retried — a failed preview stays a placeholder for
// the rest of the session. Arrivals bump a debounced version counter
// so a burst of near-simultaneous previews coalesces into one
// re-render on the consumer side.
type PreviewCache struct {
	mu       sync.Mutex
	entries  map[string]PreviewEntry
	inflight map[string]struct{}
	fetcher  ProjectFetcher
	debounce time.Duration
	timer    *time.Timer
	version  int64
}

func NewPreviewCache(fetcher ProjectFetcher, debounce time.Duration) *PreviewCache {
	if debounce <= 0 {
		debounce = DefaultPreviewDebounce
	}
	return &PreviewCache{
		entries:  make(map[string]PreviewEntry),
		inflight: make(map[string]struct{}),
		fetcher:  fetcher,
		debounce: debounce,
	}
}

// Ensure lazily materializes the preview for an item. It returns
// immediately; the fetch runs in the background. Calling it again for
// a cached or in-flight id is a no-op.
func (p *PreviewCache) Ensure(item CatalogItem) {
	p.mu.Lock()
	if _, ok := p.entries[item.ID]; ok {
		p.mu.Unlock()
		return
	}
	if _, ok := p.inflight[item.ID]; ok {
		p.mu.Unlock()
		return
	}
	p.inflight[item.ID] = struct{}{}
	p.mu.Unlock()

	go p.materialize(item)
}

func (p *PreviewCache) materialize(item CatalogItem) {
	entry := p.derive(item)

	p.mu.Lock()
	delete(p.inflight, item.ID)
	p.entries[item.ID] = entry
	p.scheduleBumpLocked()
	p.mu.Unlock()
}

// derive builds the preview, degrading to the kind placeholder on any
// failure: network, malformed JSON, or a missing elements array.
func (p *PreviewCache) derive(item CatalogItem) PreviewEntry {
	fallback := PreviewEntry{
		Thumb: scene.Placeholder(string(item.Kind)),
		Name:  simplifyID(item.ID),
	}

	data, err := p.fetcher.FetchProject(context.Background(), item.ID)
	if err != nil {
		log.Printf("[PREVIEW] fetch %s: %v", item.ID, err)
		return fallback
	}

	project, err := scene.Normalize(data)
	if err != nil {
		log.Printf("[PREVIEW] normalize %s: %v", item.ID, err)
		return fallback
	}

	name := project.Name
	if name == "" {
		name = simplifyID(item.ID)
	}

	thumb, ok := scene.FirstImage(project.Elements)
	if !ok {
		thumb = scene.Thumbnail(project)
	}

	return PreviewEntry{
		Thumb:        thumb,
		Name:         name,
		ElementCount: scene.CountElements(project.Elements),
	}
}

// Get returns the cached entry, if any.
func (p *PreviewCache) Get(id string) (PreviewEntry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	entry, ok := p.entries[id]
	return entry, ok
}

// NameOf exposes the resolved display name for catalog filtering.
func (p *PreviewCache) NameOf(id string) (string, bool) {
	entry, ok := p.Get(id)
	return entry.Name, ok
}

// Version increases (debounced) whenever previews arrive; consumers
// poll it to know when a re-render is due.
func (p *PreviewCache) Version() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.version
}

func (p *PreviewCache) scheduleBumpLocked() {
	if p.timer != nil {
		return
	}
	p.timer = time.AfterFunc(p.debounce, func() {
		p.mu.Lock()
		p.timer = nil
		p.version++
		p.mu.Unlock()
	})
}

// simplifyID reduces an opaque blob pathname to a display name.
func simplifyID(id string) string {
	base := path.Base(id)
	return strings.TrimSuffix(base, path.Ext(base))
}
