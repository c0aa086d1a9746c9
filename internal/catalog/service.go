package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// ============================================================
// Catalog Service
// ============================================================

// ScopeLister is the slice of the store client the service needs.
type ScopeLister interface {
	ListScope(ctx context.Context, scope string) ([]CatalogItem, error)
}

type Service struct {
	lister ScopeLister
	scopes []string
}

func NewService(lister ScopeLister) *Service {
	return &Service{
		lister: lister,
		scopes: []string{ScopeProjects, ScopeLibrary},
	}
}

// ListAll fetches every scope concurrently, concatenates the results
// without deduplication and sorts them newest first. Items with no
// usable timestamp sort last. Any scope failure aborts the listing.
func (s *Service) ListAll(ctx context.Context) ([]CatalogItem, error) {
	results := make([][]CatalogItem, len(s.scopes))
	errs := make([]error, len(s.scopes))

	var wg sync.WaitGroup
	for i, scope := range s.scopes {
		wg.Add(1)
		go func(i int, scope string) {
			defer wg.Done()
			results[i], errs[i] = s.lister.ListScope(ctx, scope)
		}(i, scope)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var items []CatalogItem
	for _, chunk := range results {
		items = append(items, chunk...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UploadedAt.After(items[j].UploadedAt)
	})
	return items, nil
}

// Filter applies the scope filter (exact kind match) and the search
// text. The text matches case-insensitively against the resolved
// preview name when one exists, otherwise against the raw id: an item
// whose preview has not loaded yet is only searchable by id.
func Filter(items []CatalogItem, search string, kind Kind, nameOf func(id string) (string, bool)) []CatalogItem {
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]CatalogItem, 0, len(items))
	for _, item := range items {
		if kind != "" && item.Kind != kind {
			continue
		}
		if search != "" {
			subject := item.ID
			if nameOf != nil {
				if name, ok := nameOf(item.ID); ok {
					subject = name
				}
			}
			if !strings.Contains(strings.ToLower(subject), search) {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}
