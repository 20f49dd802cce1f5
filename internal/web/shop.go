package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/patchmarket/patch/internal/model"
	"github.com/patchmarket/patch/internal/store"
)

// relatedItemsLimit caps the "you may also like" strip on item pages.
const relatedItemsLimit = 4

// HomePage handles GET /.
func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "home.html", &PageData{
		Title:   "Patch",
		User:    GetWebClaims(r.Context()),
		Success: popFlash(w, r),
	})
}

// ShopPage handles GET /shop with optional search, major, and category
// query parameters.
func (s *Server) ShopPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")
	major := r.URL.Query().Get("major")
	category := r.URL.Query().Get("category")

	items, err := store.SearchItems(r.Context(), s.DB, query, major, category)
	if err != nil {
		slog.Error("failed to search items", "error", err)
	}

	s.Templates.Render(w, "shop.html", &struct {
		PageData
		Items          []model.Item
		SearchQuery    string
		MajorFilter    string
		CategoryFilter string
		Majors         []model.Choice
		Categories     []model.Choice
		SelectedTitle  string
	}{
		PageData:       PageData{Title: "Shop", User: GetWebClaims(r.Context()), Success: popFlash(w, r)},
		Items:          items,
		SearchQuery:    query,
		MajorFilter:    major,
		CategoryFilter: category,
		Majors:         model.Majors,
		Categories:     model.Categories,
		SelectedTitle:  shopTitle(query, major, category),
	})
}

// shopTitle builds the heading for the shop page from every active
// predicate, so combined filters are all visible.
func shopTitle(query, major, category string) string {
	var parts []string
	if label := model.MajorLabel(major); label != "" {
		parts = append(parts, label)
	}
	if label := model.CategoryLabel(category); label != "" {
		parts = append(parts, label)
	}
	if query != "" {
		parts = append(parts, `Search: "`+query+`"`)
	}
	if len(parts) == 0 {
		return "All"
	}
	return strings.Join(parts, " · ")
}

// ItemDetailPage handles GET /item/{id}.
func (s *Server) ItemDetailPage(w http.ResponseWriter, r *http.Request) {
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

	if err := store.AttachImages(r.Context(), s.DB, item); err != nil {
		slog.Error("failed to attach images", "error", err)
	}

	related, err := store.ListRelatedItems(r.Context(), s.DB, item, relatedItemsLimit)
	if err != nil {
		slog.Error("failed to list related items", "error", err)
	}

	isFavorited := false
	if claims != nil {
		isFavorited, err = store.IsFavorited(r.Context(), s.DB, claims.UserID, item.ID)
		if err != nil {
			slog.Error("failed to check favorite", "error", err)
		}
	}

	isOwner := claims != nil && (item.SellerID == nil || *item.SellerID == claims.UserID)

	s.Templates.Render(w, "item_detail.html", &struct {
		PageData
		Item        *model.Item
		Related     []model.Item
		IsFavorited bool
		IsOwner     bool
	}{
		PageData:    PageData{Title: item.Name, User: claims, Success: popFlash(w, r)},
		Item:        item,
		Related:     related,
		IsFavorited: isFavorited,
		IsOwner:     isOwner,
	})
}
