package handlers

import (
	"errors"
	"net/http"

	"sticker-viewer/internal/catalog"
	"sticker-viewer/internal/media"
	"sticker-viewer/internal/scene"
	"sticker-viewer/internal/viewer/service"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Viewer Handler
// ============================================================

type ViewerHandler struct {
	sessions *service.SessionManager
	store    *catalog.StoreClient
	catalog  *catalog.Service
	previews *catalog.PreviewCache
	media    *media.Store
}

func NewViewerHandler(
	sessions *service.SessionManager,
	store *catalog.StoreClient,
	catalogSvc *catalog.Service,
	previews *catalog.PreviewCache,
	mediaStore *media.Store,
) *ViewerHandler {
	return &ViewerHandler{
		sessions: sessions,
		store:    store,
		catalog:  catalogSvc,
		previews: previews,
		media:    mediaStore,
	}
}

// session resolves the caller's session from the session query param.
func (h *ViewerHandler) session(c fiber.Ctx) *service.Session {
	return h.sessions.GetOrCreate(c.Query("session"))
}

// loadStatus maps the load-path error taxonomy onto HTTP statuses:
// malformed or unusable payloads are the caller's fault, upstream
// fetch failures are a bad gateway.
func loadStatus(err error) int {
	var parseErr *scene.ParseError
	var payloadErr *scene.InvalidPayload
	if errors.As(err, &parseErr) || errors.As(err, &payloadErr) {
		return http.StatusBadRequest
	}
	var fetchErr *catalog.FetchError
	if errors.As(err, &fetchErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
