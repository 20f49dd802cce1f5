package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/oklog/ulid/v2"

	"github.com/patchmarket/patch/internal/model"
	"github.com/patchmarket/patch/internal/store"
)

// CheckoutPage handles GET /item/{id}/checkout.
func (s *Server) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	item := s.checkoutItem(w, r)
	if item == nil {
		return
	}

	s.Templates.Render(w, "checkout.html", &struct {
		PageData
		Item           *model.Item
		PaymentOptions []model.Choice
	}{
		PageData:       PageData{Title: "Checkout", User: claims},
		Item:           item,
		PaymentOptions: model.PaymentOptions,
	})
}

// CheckoutSubmit handles POST /item/{id}/checkout. Payment is arranged
// off-platform; this renders the pickup confirmation with a generated
// order number.
func (s *Server) CheckoutSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	item := s.checkoutItem(w, r)
	if item == nil {
		return
	}

	orderNumber := "PATCH-" + ulid.Make().String()
	slog.Info("checkout completed", "user", claims.Username, "item", item.ID, "order", orderNumber)

	s.Templates.Render(w, "payment_complete.html", &struct {
		PageData
		Item           *model.Item
		OrderNumber    string
		FullName       string
		Email          string
		PaymentMethod  string
		PickupLocation string
	}{
		PageData:       PageData{Title: "Order Confirmed", User: claims},
		Item:           item,
		OrderNumber:    orderNumber,
		FullName:       r.FormValue("full_name"),
		Email:          r.FormValue("email"),
		PaymentMethod:  r.FormValue("payment_method"),
		PickupLocation: r.FormValue("pickup_location"),
	})
}

func (s *Server) checkoutItem(w http.ResponseWriter, r *http.Request) *model.Item {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return nil
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil
	}
	if item == nil {
		http.NotFound(w, r)
		return nil
	}
	return item
}
