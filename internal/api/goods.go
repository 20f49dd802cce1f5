package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/patchmarket/patch/internal/media"
	"github.com/patchmarket/patch/internal/model"
	"github.com/patchmarket/patch/internal/store"
)

// GoodsHandler handles the structured item resource endpoints.
type GoodsHandler struct {
	DB    *sql.DB
	Media *media.Store
}

// List handles GET /api/goods.
func (h *GoodsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list goods", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list goods")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/goods.
func (h *GoodsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form model.ItemForm
	if err := decodeJSON(r, &form); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields, errs := form.Validate()
	if errs != nil {
		jsonFieldErrors(w, errs)
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, nil, fields)
	if err != nil {
		slog.Error("failed to create goods", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create goods")
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/goods/{id}.
func (h *GoodsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid goods id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get goods", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get goods")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "goods not found")
		return
	}

	if err := store.AttachImages(r.Context(), h.DB, item); err != nil {
		slog.Error("failed to attach images", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get goods")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/goods/{id}.
func (h *GoodsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid goods id")
		return
	}

	var form model.ItemForm
	if err := decodeJSON(r, &form); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields, errs := form.Validate()
	if errs != nil {
		jsonFieldErrors(w, errs)
		return
	}

	if err := store.UpdateItem(r.Context(), h.DB, id, fields); err != nil {
		if err == store.ErrNotFound {
			jsonError(w, http.StatusNotFound, "goods not found")
			return
		}
		slog.Error("failed to update goods", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update goods")
		return
	}

	item, _ := store.GetItem(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/goods/{id}.
func (h *GoodsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid goods id")
		return
	}

	paths, err := store.DeleteItem(r.Context(), h.DB, id)
	if err != nil {
		if err == store.ErrNotFound {
			jsonError(w, http.StatusNotFound, "goods not found")
			return
		}
		slog.Error("failed to delete goods", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete goods")
		return
	}

	if h.Media != nil {
		for _, p := range paths {
			if err := h.Media.Remove(p); err != nil {
				slog.Warn("failed to remove media file", "path", p, "error", err)
			}
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
