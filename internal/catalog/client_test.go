package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListScope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/library", r.URL.Path)
		assert.Equal(t, "library", r.URL.Query().Get("scope"))
		assert.Equal(t, "expanded", r.URL.Query().Get("mode"))
		assert.Equal(t, "200", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"blobs":[
			{"pathname":"library/star-1.json","size":120,"uploadedAt":"2026-08-20T10:00:00Z"},
			{"pathname":"library/arrow-2.json","size":80,"uploadedAt":"not a time"}
		]}`))
	}))
	defer srv.Close()

	items, err := NewStoreClient(srv.URL).ListScope(context.Background(), ScopeLibrary)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "library/star-1.json", items[0].ID)
	assert.Equal(t, KindVector, items[0].Kind)
	assert.Equal(t, int64(120), items[0].Size)
	assert.Equal(t, time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC), items[0].UploadedAt)

	// Unparseable timestamp stays zero instead of failing the listing.
	assert.True(t, items[1].UploadedAt.IsZero())
}

func TestListScopeKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"blobs":[{"pathname":"projects/demo.json","size":1}]}`))
	}))
	defer srv.Close()

	items, err := NewStoreClient(srv.URL).ListScope(context.Background(), ScopeProjects)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, KindProject, items[0].Kind)
}

func TestListScopeStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewStoreClient(srv.URL).ListScope(context.Background(), ScopeLibrary)
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusBadGateway, fetchErr.Status)
}

func TestFetchProject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/project", r.URL.Path)
		assert.Equal(t, "projects/a b.json", r.URL.Query().Get("id"))
		w.Write([]byte(`{"elements":[]}`))
	}))
	defer srv.Close()

	data, err := NewStoreClient(srv.URL).FetchProject(context.Background(), "projects/a b.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"elements":[]}`, string(data))
}

func TestPublish(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/publish", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-publish-key"))
		w.Write([]byte(`{"ok":true,"id":"library/demo-1.json"}`))
	}))
	defer srv.Close()

	id, err := NewStoreClient(srv.URL).Publish(context.Background(), KindVector, []byte(`{}`), "secret")
	require.NoError(t, err)
	assert.Equal(t, "library/demo-1.json", id)
}

func TestPublishProjectPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/publish-project", r.URL.Path)
		w.Write([]byte(`{"ok":true,"id":"projects/demo-1.json"}`))
	}))
	defer srv.Close()

	_, err := NewStoreClient(srv.URL).Publish(context.Background(), KindProject, []byte(`{}`), "")
	require.NoError(t, err)
}

func TestPublishValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"error":"validation failed","details":["name is required"]}`))
	}))
	defer srv.Close()

	_, err := NewStoreClient(srv.URL).Publish(context.Background(), KindVector, []byte(`{}`), "")
	require.Error(t, err)

	var pubErr *PublishError
	require.True(t, errors.As(err, &pubErr))
	assert.Equal(t, "validation failed", pubErr.Message)
	assert.Equal(t, []string{"name is required"}, pubErr.Details)
	assert.Contains(t, pubErr.Error(), "name is required")
}
