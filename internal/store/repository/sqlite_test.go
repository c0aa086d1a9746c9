package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := New(db)
	require.NoError(t, repo.Init(context.Background(), "../../../migrations/001_init_store.sql"))
	return repo
}

func TestPutAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	blob := &Blob{
		Pathname:   "projects/demo-1.json",
		Scope:      "projects",
		Body:       []byte(`{"elements":[]}`),
		Size:       15,
		UploadedAt: "2026-08-20T10:00:00Z",
	}
	require.NoError(t, repo.Put(ctx, blob))

	got, err := repo.Get(ctx, "projects/demo-1.json")
	require.NoError(t, err)
	assert.Equal(t, blob.Body, got.Body)
	assert.Equal(t, "projects", got.Scope)
	assert.Equal(t, int64(15), got.Size)
}

func TestGetMissing(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Get(context.Background(), "projects/nope.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutReplaces(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, &Blob{Pathname: "a", Scope: "projects", Body: []byte("v1")}))
	require.NoError(t, repo.Put(ctx, &Blob{Pathname: "a", Scope: "projects", Body: []byte("v2")}))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got.Body)

	blobs, err := repo.ListScope(ctx, "projects", 10)
	require.NoError(t, err)
	assert.Len(t, blobs, 1)
}

func TestListScopeOrderAndLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i, ts := range []string{
		"2026-08-01T00:00:00Z",
		"2026-08-03T00:00:00Z",
		"2026-08-02T00:00:00Z",
	} {
		require.NoError(t, repo.Put(ctx, &Blob{
			Pathname:   string(rune('a' + i)),
			Scope:      "library",
			Body:       []byte("x"),
			Size:       1,
			UploadedAt: ts,
		}))
	}
	require.NoError(t, repo.Put(ctx, &Blob{Pathname: "other", Scope: "projects", Body: []byte("x")}))

	blobs, err := repo.ListScope(ctx, "library", 10)
	require.NoError(t, err)
	require.Len(t, blobs, 3)
	assert.Equal(t, "b", blobs[0].Pathname)
	assert.Equal(t, "c", blobs[1].Pathname)
	assert.Equal(t, "a", blobs[2].Pathname)
	// Metadata listing omits bodies.
	assert.Nil(t, blobs[0].Body)

	blobs, err = repo.ListScope(ctx, "library", 2)
	require.NoError(t, err)
	assert.Len(t, blobs, 2)
}
