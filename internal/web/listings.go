package web

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/patchmarket/patch/internal/imaging"
	"github.com/patchmarket/patch/internal/model"
	"github.com/patchmarket/patch/internal/store"
)

// maxUploadBytes bounds a whole item post, images included.
const maxUploadBytes = 32 << 20

// AccountPage handles GET /account.
func (s *Server) AccountPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	items, err := store.ListSellerItems(r.Context(), s.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list seller items", "error", err)
	}

	s.Templates.Render(w, "account.html", &struct {
		PageData
		Items []model.Item
	}{
		PageData: PageData{Title: "My Account", User: claims, Success: popFlash(w, r)},
		Items:    items,
	})
}

// itemFormData is the data for the post/edit item templates.
type itemFormData struct {
	PageData
	Form        model.ItemForm
	FieldErrors model.FieldErrors
	Majors      []model.Choice
	Categories  []model.Choice
	Item        *model.Item
}

func readItemForm(r *http.Request) model.ItemForm {
	return model.ItemForm{
		Name:               r.FormValue("name"),
		Description:        r.FormValue("description"),
		Price:              r.FormValue("price"),
		Major:              r.FormValue("major"),
		Professor:          r.FormValue("professor"),
		Category:           r.FormValue("category"),
		CourseCode:         r.FormValue("course_code"),
		AmountUsage:        r.FormValue("amount_usage"),
		PaymentMethods:     r.FormValue("payment_methods"),
		AdditionalInfo:     r.FormValue("additional_info"),
		OutcomeDescription: r.FormValue("outcome_description"),
	}
}

// PostItemPage handles GET /post.
func (s *Server) PostItemPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "post_item.html", &itemFormData{
		PageData:   PageData{Title: "Post an Item", User: GetWebClaims(r.Context())},
		Majors:     model.Majors,
		Categories: model.Categories,
	})
}

// PostItemSubmit handles POST /post. Uploaded product and outcome
// images beyond the per-item limits are silently dropped.
func (s *Server) PostItemSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "upload too large or invalid form", http.StatusBadRequest)
		return
	}

	form := readItemForm(r)
	renderForm := func(errs model.FieldErrors, msg string) {
		s.Templates.Render(w, "post_item.html", &itemFormData{
			PageData:    PageData{Title: "Post an Item", User: claims, Error: msg},
			Form:        form,
			FieldErrors: errs,
			Majors:      model.Majors,
			Categories:  model.Categories,
		})
	}

	fields, errs := form.Validate()
	if errs != nil {
		renderForm(errs, "Please fix the highlighted fields.")
		return
	}

	primaryPaths, err := s.saveUploads(r.MultipartForm.File["product_images"], "goods_images", model.MaxItemImages)
	if err != nil {
		renderForm(nil, err.Error())
		return
	}
	outcomePaths, err := s.saveUploads(r.MultipartForm.File["outcome_images"], "outcome_images", model.MaxOutcomeImages)
	if err != nil {
		renderForm(nil, err.Error())
		return
	}

	item, err := store.PostItem(r.Context(), s.DB, claims.UserID, fields, primaryPaths, outcomePaths)
	if err != nil {
		slog.Error("failed to post item", "error", err)
		renderForm(nil, "Could not post the item, try again.")
		return
	}

	slog.Info("item posted", "user", claims.Username, "item", item.Name, "id", item.ID)
	setFlash(w, "Item posted successfully!")
	http.Redirect(w, r, "/account", http.StatusSeeOther)
}

// saveUploads processes and stores at most limit uploaded images,
// returning their media paths in upload order.
func (s *Server) saveUploads(files []*multipart.FileHeader, subdir string, limit int) ([]string, error) {
	if len(files) > limit {
		files = files[:limit]
	}

	var paths []string
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("opening upload %s: %w", header.Filename, err)
		}

		data, err := imaging.Process(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", header.Filename, err)
		}

		path, err := s.Media.Save(subdir, data)
		if err != nil {
			return nil, fmt.Errorf("storing upload %s: %w", header.Filename, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// EditItemPage handles GET /item/{id}/edit.
func (s *Server) EditItemPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	item, ok := s.ownedItem(w, r)
	if !ok {
		return
	}

	form := model.ItemForm{
		Name:               item.Name,
		Description:        item.Description,
		Price:              item.Price.String(),
		Major:              item.Major,
		Professor:          item.Professor,
		Category:           item.Category,
		CourseCode:         item.CourseCode,
		AmountUsage:        item.AmountUsage,
		PaymentMethods:     item.PaymentMethods,
		AdditionalInfo:     item.AdditionalInfo,
		OutcomeDescription: item.OutcomeDescription,
	}

	s.Templates.Render(w, "edit_item.html", &itemFormData{
		PageData:   PageData{Title: "Edit " + item.Name, User: claims},
		Form:       form,
		Majors:     model.Majors,
		Categories: model.Categories,
		Item:       item,
	})
}

// EditItemSubmit handles POST /item/{id}/edit.
func (s *Server) EditItemSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	item, ok := s.ownedItem(w, r)
	if !ok {
		return
	}

	form := readItemForm(r)
	fields, errs := form.Validate()
	if errs != nil {
		s.Templates.Render(w, "edit_item.html", &itemFormData{
			PageData:    PageData{Title: "Edit " + item.Name, User: claims, Error: "Please fix the highlighted fields."},
			Form:        form,
			FieldErrors: errs,
			Majors:      model.Majors,
			Categories:  model.Categories,
			Item:        item,
		})
		return
	}

	if err := store.EditItem(r.Context(), s.DB, claims.UserID, item.ID, fields); err != nil {
		slog.Error("failed to edit item", "error", err, "item", item.ID)
		http.Error(w, "failed to update", http.StatusInternalServerError)
		return
	}

	slog.Info("item updated", "user", claims.Username, "item", fields.Name, "id", item.ID)
	setFlash(w, "Item updated successfully!")
	http.Redirect(w, r, "/account", http.StatusSeeOther)
}

// DeleteItemPage handles GET /item/{id}/delete (confirmation step).
func (s *Server) DeleteItemPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	item, ok := s.ownedItem(w, r)
	if !ok {
		return
	}

	s.Templates.Render(w, "delete_confirm.html", &struct {
		PageData
		Item *model.Item
	}{
		PageData: PageData{Title: "Delete " + item.Name, User: claims},
		Item:     item,
	})
}

// DeleteItemSubmit handles POST /item/{id}/delete.
func (s *Server) DeleteItemSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	item, ok := s.ownedItem(w, r)
	if !ok {
		return
	}

	paths, err := store.DeleteOwnedItem(r.Context(), s.DB, claims.UserID, item.ID)
	if err != nil {
		slog.Error("failed to delete item", "error", err, "item", item.ID)
		http.Error(w, "failed to delete", http.StatusInternalServerError)
		return
	}

	for _, p := range paths {
		if err := s.Media.Remove(p); err != nil {
			slog.Warn("failed to remove media file", "path", p, "error", err)
		}
	}

	slog.Info("item deleted", "user", claims.Username, "item", item.Name, "id", item.ID)
	setFlash(w, "Item deleted successfully!")
	http.Redirect(w, r, "/account", http.StatusSeeOther)
}

// ownedItem loads the item from the path and enforces the ownership
// rule, writing the appropriate response on failure. Items without a
// recorded seller are treated as modifiable by any signed-in user.
func (s *Server) ownedItem(w http.ResponseWriter, r *http.Request) (*model.Item, bool) {
	claims := GetWebClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	if item == nil {
		http.NotFound(w, r)
		return nil, false
	}

	if item.SellerID != nil && *item.SellerID != claims.UserID {
		setFlash(w, "You do not have permission to modify this item.")
		http.Redirect(w, r, "/shop", http.StatusSeeOther)
		return nil, false
	}

	return item, true
}
