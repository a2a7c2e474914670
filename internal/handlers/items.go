package handlers

import (
	"net/http"

	"github.com/alfagnish/itemsd/internal/items"
	"github.com/go-chi/chi/v5"
)

// ItemsHandler exposes the item store over HTTP. Every endpoint performs
// exactly one store operation.
type ItemsHandler struct {
	store *items.Store
}

// NewItemsHandler creates a new ItemsHandler.
func NewItemsHandler(s *items.Store) *ItemsHandler {
	return &ItemsHandler{store: s}
}

// Routes registers all item routes on the given chi router.
func (h *ItemsHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)
	r.Patch("/{id}", h.Update)
}

// List returns every item in insertion order.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.All())
}

// Create adds a new item from the request body.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var d items.Draft
	if err := decodeBody(r, &d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	writeJSON(w, http.StatusCreated, h.store.Create(d))
}

// Get returns a single item.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, ok := h.store.Get(parseID(chi.URLParam(r, "id")))
	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Delete returns the matching item without removing it from the store.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	item, ok := h.store.Get(parseID(chi.URLParam(r, "id")))
	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Update merges the request body onto an existing item.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p items.Patch
	if err := decodeBody(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	item, ok := h.store.Update(parseID(chi.URLParam(r, "id")), p)
	if !ok {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
