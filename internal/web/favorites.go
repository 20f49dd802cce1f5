package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/patchmarket/patch/internal/model"
	"github.com/patchmarket/patch/internal/store"
)

// ToggleFavoriteSubmit handles POST /item/{id}/favorite.
func (s *Server) ToggleFavoriteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.NotFound(w, r)
		return
	}

	added, err := store.ToggleFavorite(r.Context(), s.DB, claims.UserID, item.ID)
	if err != nil {
		slog.Error("failed to toggle favorite", "error", err, "item", item.ID)
		http.Error(w, "failed to toggle favorite", http.StatusInternalServerError)
		return
	}

	if added {
		setFlash(w, "Added to favorites!")
	} else {
		setFlash(w, "Removed from favorites")
	}
	http.Redirect(w, r, fmt.Sprintf("/item/%d", item.ID), http.StatusSeeOther)
}

// FavoritesPage handles GET /favorites.
func (s *Server) FavoritesPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	favorites, err := store.ListUserFavorites(r.Context(), s.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list favorites", "error", err)
	}

	s.Templates.Render(w, "favorites.html", &struct {
		PageData
		Favorites []model.Favorite
	}{
		PageData:  PageData{Title: "My Favorites", User: claims, Success: popFlash(w, r)},
		Favorites: favorites,
	})
}
