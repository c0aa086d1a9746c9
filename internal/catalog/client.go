package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ============================================================
// Store Client
// ============================================================

const (
	ScopeProjects = "projects"
	ScopeLibrary  = "library"
)

type Kind string

const (
	KindProject Kind = "project"
	KindVector  Kind = "vector"
)

type CatalogItem struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"` // zero when absent or unparseable
}

// FetchError carries the failing URL and HTTP status of a store call.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// PublishError carries the server-provided validation details verbatim.
type PublishError struct {
	Message string
	Details []string
}

func (e *PublishError) Error() string {
	if len(e.Details) == 0 {
		return "publish failed: " + e.Message
	}
	return "publish failed: " + e.Message + " (" + strings.Join(e.Details, "; ") + ")"
}

// StoreClient talks to the remote object store over plain HTTP+JSON.
type StoreClient struct {
	baseURL string
	client  *http.Client
}

func NewStoreClient(baseURL string) *StoreClient {
	return &StoreClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
	}
}

type libraryResponse struct {
	Blobs []struct {
		Pathname   string `json:"pathname"`
		Size       int64  `json:"size"`
		UploadedAt string `json:"uploadedAt"`
	} `json:"blobs"`
}

// ListScope lists one catalog scope. Items in the projects scope carry
// the project kind, everything else is a vector asset.
func (c *StoreClient) ListScope(ctx context.Context, scope string) ([]CatalogItem, error) {
	target := fmt.Sprintf("%s/api/library?scope=%s&mode=expanded&limit=200",
		c.baseURL, url.QueryEscape(scope))

	data, err := c.get(ctx, target)
	if err != nil {
		return nil, err
	}

	var resp libraryResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}

	kind := KindVector
	if scope == ScopeProjects {
		kind = KindProject
	}

	items := make([]CatalogItem, 0, len(resp.Blobs))
	for _, b := range resp.Blobs {
		item := CatalogItem{ID: b.Pathname, Kind: kind, Size: b.Size}
		// Unparseable timestamps stay zero and sort last.
		if t, err := time.Parse(time.RFC3339, b.UploadedAt); err == nil {
			item.UploadedAt = t
		}
		items = append(items, item)
	}
	return items, nil
}

// FetchProject fetches one stored blob by its opaque id.
func (c *StoreClient) FetchProject(ctx context.Context, id string) ([]byte, error) {
	target := fmt.Sprintf("%s/api/project?id=%s", c.baseURL, url.QueryEscape(id))
	return c.get(ctx, target)
}

// FetchURL fetches an arbitrary project URL (the ?project= load path).
func (c *StoreClient) FetchURL(ctx context.Context, rawURL string) ([]byte, error) {
	return c.get(ctx, rawURL)
}

type publishResponse struct {
	OK      bool     `json:"ok"`
	ID      string   `json:"id"`
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

// Publish uploads a normalized project payload and returns the blob id
// assigned by the store. A non-ok response becomes a PublishError
// carrying the server detail strings.
func (c *StoreClient) Publish(ctx context.Context, kind Kind, payload []byte, key string) (string, error) {
	path := "/api/publish"
	if kind == KindProject {
		path = "/api/publish-project"
	}
	target := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return "", &FetchError{URL: target, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("x-publish-key", key)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: target, Err: err}
	}

	var out publishResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", &FetchError{URL: target, Status: resp.StatusCode, Err: err}
	}
	if !out.OK {
		msg := out.Error
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return "", &PublishError{Message: msg, Details: out.Details}
	}
	return out.ID, nil
}

func (c *StoreClient) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: target, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	return data, nil
}
