package web

import (
	"database/sql"
	"net/http"

	"github.com/patchmarket/patch/internal/media"
	webembed "github.com/patchmarket/patch/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, mediaStore *media.Store, jwtSecret string) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
		Media:     mediaStore,
		JWTSecret: jwtSecret,
	}

	mux := http.NewServeMux()
	requireAuth := RequireAuth(jwtSecret, db)
	optionalAuth := OptionalAuth(jwtSecret, db)

	// Static assets and uploaded media.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))
	mux.Handle("GET /media/", http.StripPrefix("/media/", mediaStore.Handler()))

	// Public routes.
	mux.HandleFunc("GET /register", s.RegisterPage)
	mux.HandleFunc("POST /register", s.RegisterSubmit)
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Catalog browsing works anonymously but adapts to a session.
	mux.Handle("GET /{$}", optionalAuth(http.HandlerFunc(s.HomePage)))
	mux.Handle("GET /shop", optionalAuth(http.HandlerFunc(s.ShopPage)))
	mux.Handle("GET /item/{id}", optionalAuth(http.HandlerFunc(s.ItemDetailPage)))

	// Everything below needs a signed-in user.
	mux.Handle("GET /account", requireAuth(http.HandlerFunc(s.AccountPage)))
	mux.Handle("GET /post", requireAuth(http.HandlerFunc(s.PostItemPage)))
	mux.Handle("POST /post", requireAuth(http.HandlerFunc(s.PostItemSubmit)))
	mux.Handle("GET /item/{id}/edit", requireAuth(http.HandlerFunc(s.EditItemPage)))
	mux.Handle("POST /item/{id}/edit", requireAuth(http.HandlerFunc(s.EditItemSubmit)))
	mux.Handle("GET /item/{id}/delete", requireAuth(http.HandlerFunc(s.DeleteItemPage)))
	mux.Handle("POST /item/{id}/delete", requireAuth(http.HandlerFunc(s.DeleteItemSubmit)))
	mux.Handle("GET /item/{id}/message", requireAuth(http.HandlerFunc(s.MessageThreadPage)))
	mux.Handle("POST /item/{id}/message", requireAuth(http.HandlerFunc(s.MessageSubmit)))
	mux.Handle("POST /item/{id}/favorite", requireAuth(http.HandlerFunc(s.ToggleFavoriteSubmit)))
	mux.Handle("GET /favorites", requireAuth(http.HandlerFunc(s.FavoritesPage)))
	mux.Handle("GET /item/{id}/checkout", requireAuth(http.HandlerFunc(s.CheckoutPage)))
	mux.Handle("POST /item/{id}/checkout", requireAuth(http.HandlerFunc(s.CheckoutSubmit)))

	return mux, nil
}
