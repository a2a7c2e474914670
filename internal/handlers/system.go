package handlers

import (
	_ "embed"
	"net/http"

	"github.com/alfagnish/itemsd/internal/items"
	"github.com/go-chi/chi/v5"
)

//go:embed static/index.html
var indexPage []byte

// SystemHandler serves the API info page and the health check.
type SystemHandler struct {
	store *items.Store
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(s *items.Store) *SystemHandler {
	return &SystemHandler{store: s}
}

// Routes registers the system routes on the given chi router.
func (h *SystemHandler) Routes(r chi.Router) {
	r.Get("/", h.Index)
	r.Get("/healthz", h.Health)
}

// Index serves the static API info page.
func (h *SystemHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(indexPage)
}

// Health reports that the service is up along with the current item count.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"items":  h.store.Len(),
	})
}
