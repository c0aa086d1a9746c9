package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"sticker-viewer/internal/store/repository"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

func newTestApp(t *testing.T, publishKey string) *fiber.App {
	t.Helper()
	db, err := repository.OpenSQLite(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.New(db)
	require.NoError(t, repo.Init(context.Background(), "../../../migrations/001_init_store.sql"))

	h := NewStoreHandler(repo, publishKey)
	app := fiber.New()
	app.Get("/api/project", h.GetProject)
	app.Get("/api/library", h.ListLibrary)
	app.Post("/api/publish", h.PublishVector)
	app.Post("/api/publish-project", h.PublishProject)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return resp.StatusCode, out
}

func TestPublishListGetRoundtrip(t *testing.T) {
	app := newTestApp(t, "")
	payload := `{"name":"Blue Star","folder":"Icons","elements":[{"type":"circle","radius":5}]}`

	status, out := doJSON(t, app, http.MethodPost, "/api/publish", payload)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, out["ok"])

	id, _ := out["id"].(string)
	require.NotEmpty(t, id)
	assert.True(t, strings.HasPrefix(id, "library/icons/blue-star-"), "got %q", id)
	assert.True(t, strings.HasSuffix(id, ".json"))

	status, out = doJSON(t, app, http.MethodGet, "/api/library?scope=library", "")
	require.Equal(t, http.StatusOK, status)
	blobs, _ := out["blobs"].([]any)
	require.Len(t, blobs, 1)
	blob := blobs[0].(map[string]any)
	assert.Equal(t, id, blob["pathname"])
	assert.Equal(t, float64(len(payload)), blob["size"])

	req := httptest.NewRequest(http.MethodGet, "/api/project?id="+id, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	// The stored body round-trips verbatim.
	assert.Equal(t, payload, string(body))
}

func TestPublishProjectScope(t *testing.T) {
	app := newTestApp(t, "")
	status, out := doJSON(t, app, http.MethodPost, "/api/publish-project",
		`{"name":"Demo","elements":[]}`)
	require.Equal(t, http.StatusOK, status)

	id, _ := out["id"].(string)
	assert.True(t, strings.HasPrefix(id, "projects/demo-"))

	// The default listing scope is projects.
	status, out = doJSON(t, app, http.MethodGet, "/api/library", "")
	require.Equal(t, http.StatusOK, status)
	blobs, _ := out["blobs"].([]any)
	assert.Len(t, blobs, 1)
}

func TestPublishKeyRequired(t *testing.T) {
	app := newTestApp(t, "secret")

	status, out := doJSON(t, app, http.MethodPost, "/api/publish",
		`{"name":"Demo","elements":[]}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, out["ok"])

	req := httptest.NewRequest(http.MethodPost, "/api/publish",
		strings.NewReader(`{"name":"Demo","elements":[]}`))
	req.Header.Set("x-publish-key", "secret")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPublishValidation(t *testing.T) {
	app := newTestApp(t, "")

	status, out := doJSON(t, app, http.MethodPost, "/api/publish", `{"elements":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid project", out["error"])

	status, out = doJSON(t, app, http.MethodPost, "/api/publish", `{"elements":[]}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation failed", out["error"])
	details, _ := out["details"].([]any)
	assert.Contains(t, details, "name is required")
}

func TestPublishEmptyBody(t *testing.T) {
	app := newTestApp(t, "")
	status, out := doJSON(t, app, http.MethodPost, "/api/publish", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "body required", out["error"])
}

func TestGetProjectErrors(t *testing.T) {
	app := newTestApp(t, "")

	status, _ := doJSON(t, app, http.MethodGet, "/api/project", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/project?id=projects/nope.json", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListLibraryLimit(t *testing.T) {
	app := newTestApp(t, "")
	for i := 0; i < 3; i++ {
		status, _ := doJSON(t, app, http.MethodPost, "/api/publish-project",
			`{"name":"Demo","elements":[]}`)
		require.Equal(t, http.StatusOK, status)
	}

	status, out := doJSON(t, app, http.MethodGet, "/api/library?scope=projects&limit=2", "")
	require.Equal(t, http.StatusOK, status)
	blobs, _ := out["blobs"].([]any)
	assert.Len(t, blobs, 2)

	// Out-of-range limits fall back to the default.
	status, out = doJSON(t, app, http.MethodGet, "/api/library?scope=projects&limit=9999", "")
	require.Equal(t, http.StatusOK, status)
	blobs, _ = out["blobs"].([]any)
	assert.Len(t, blobs, 3)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "blue-star", slug("  Blue Star "))
	assert.Equal(t, "a-b_c", slug("A b_C"))
	assert.Equal(t, "untitled", slug("!!!"))
}
