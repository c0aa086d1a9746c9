package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	byScope map[string][]CatalogItem
	errs    map[string]error
}

func (f *fakeLister) ListScope(_ context.Context, scope string) ([]CatalogItem, error) {
	if err := f.errs[scope]; err != nil {
		return nil, err
	}
	return f.byScope[scope], nil
}

func at(day int) time.Time {
	return time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC)
}

func TestListAllMergesAndSorts(t *testing.T) {
	svc := NewService(&fakeLister{byScope: map[string][]CatalogItem{
		ScopeProjects: {
			{ID: "projects/old.json", Kind: KindProject, UploadedAt: at(1)},
			{ID: "projects/new.json", Kind: KindProject, UploadedAt: at(20)},
		},
		ScopeLibrary: {
			{ID: "library/mid.json", Kind: KindVector, UploadedAt: at(10)},
			{ID: "library/undated.json", Kind: KindVector},
		},
	}})

	items, err := svc.ListAll(context.Background())
	require.NoError(t, err)

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	assert.Equal(t, []string{
		"projects/new.json",
		"library/mid.json",
		"projects/old.json",
		"library/undated.json",
	}, ids)
}

func TestListAllScopeFailureAborts(t *testing.T) {
	boom := errors.New("store down")
	svc := NewService(&fakeLister{
		byScope: map[string][]CatalogItem{ScopeProjects: {{ID: "projects/a.json"}}},
		errs:    map[string]error{ScopeLibrary: boom},
	})

	_, err := svc.ListAll(context.Background())
	assert.ErrorIs(t, err, boom)
}

// Equal timestamps keep their scope order: projects before library.
func TestListAllStableOnTies(t *testing.T) {
	ts := at(5)
	svc := NewService(&fakeLister{byScope: map[string][]CatalogItem{
		ScopeProjects: {{ID: "projects/a.json", UploadedAt: ts}},
		ScopeLibrary:  {{ID: "library/b.json", UploadedAt: ts}},
	}})

	items, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "projects/a.json", items[0].ID)
}

func TestFilterKind(t *testing.T) {
	items := []CatalogItem{
		{ID: "projects/a.json", Kind: KindProject},
		{ID: "library/b.json", Kind: KindVector},
	}

	assert.Len(t, Filter(items, "", "", nil), 2)

	got := Filter(items, "", KindVector, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "library/b.json", got[0].ID)
}

func TestFilterSearchByID(t *testing.T) {
	items := []CatalogItem{
		{ID: "library/Blue-Star.json", Kind: KindVector},
		{ID: "library/arrow.json", Kind: KindVector},
	}

	got := Filter(items, "  STAR ", "", nil)
	require.Len(t, got, 1)
	assert.Equal(t, "library/Blue-Star.json", got[0].ID)
}

// A resolved preview name replaces the id as the search subject; an
// unresolved item keeps matching by id.
func TestFilterSearchByPreviewName(t *testing.T) {
	items := []CatalogItem{
		{ID: "library/x1.json", Kind: KindVector},
		{ID: "library/x2.json", Kind: KindVector},
	}
	names := map[string]string{"library/x1.json": "Morning Star"}
	nameOf := func(id string) (string, bool) {
		name, ok := names[id]
		return name, ok
	}

	got := Filter(items, "star", "", nameOf)
	require.Len(t, got, 1)
	assert.Equal(t, "library/x1.json", got[0].ID)

	// The name shadows the id entirely once resolved.
	assert.Empty(t, Filter(items, "x1", "", nameOf))

	got = Filter(items, "x2", "", nameOf)
	require.Len(t, got, 1)
	assert.Equal(t, "library/x2.json", got[0].ID)
}
