package api

import (
	"database/sql"
	"net/http"

	"github.com/patchmarket/patch/internal/media"
)

// NewRouter creates the API router with all endpoints registered.
// The goods resource is unauthenticated, matching the web UI's public
// catalog: it exposes reads to anyone and field-validated writes.
func NewRouter(db *sql.DB, mediaStore *media.Store) http.Handler {
	mux := http.NewServeMux()

	goods := &GoodsHandler{DB: db, Media: mediaStore}

	mux.HandleFunc("GET /api/goods", goods.List)
	mux.HandleFunc("POST /api/goods", goods.Create)
	mux.HandleFunc("GET /api/goods/{id}", goods.Get)
	mux.HandleFunc("PUT /api/goods/{id}", goods.Update)
	mux.HandleFunc("DELETE /api/goods/{id}", goods.Delete)

	return mux
}
