package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/patchmarket/patch/internal/model"
	"github.com/patchmarket/patch/internal/store"
)

// MessageThreadPage handles GET /item/{id}/message.
func (s *Server) MessageThreadPage(w http.ResponseWriter, r *http.Request) {
	s.renderThread(w, r, "")
}

// MessageSubmit handles POST /item/{id}/message.
func (s *Server) MessageSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	content := r.FormValue("content")
	_, err = store.CreateMessage(r.Context(), s.DB, id, claims.UserID, content)
	if err != nil {
		var fieldErrs model.FieldErrors
		if errors.As(err, &fieldErrs) {
			s.renderThread(w, r, fieldErrs["content"])
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("failed to send message", "error", err, "item", id)
		http.Error(w, "failed to send message", http.StatusInternalServerError)
		return
	}

	slog.Info("message sent", "user", claims.Username, "item", id)
	setFlash(w, "Message sent!")
	http.Redirect(w, r, fmt.Sprintf("/item/%d/message", id), http.StatusSeeOther)
}

// renderThread shows an item's message thread. When the viewer is the
// seller, incoming messages are marked read.
func (s *Server) renderThread(w http.ResponseWriter, r *http.Request, errMsg string) {
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

	if item.SellerID != nil && *item.SellerID == claims.UserID {
		if err := store.MarkMessagesRead(r.Context(), s.DB, item.ID, claims.UserID); err != nil {
			slog.Error("failed to mark messages read", "error", err, "item", item.ID)
		}
	}

	messages, err := store.ListItemMessages(r.Context(), s.DB, item.ID)
	if err != nil {
		slog.Error("failed to list messages", "error", err, "item", item.ID)
	}

	s.Templates.Render(w, "message_seller.html", &struct {
		PageData
		Item     *model.Item
		Messages []model.Message
	}{
		PageData: PageData{Title: "Message Seller", User: claims, Error: errMsg, Success: popFlash(w, r)},
		Item:     item,
		Messages: messages,
	})
}
