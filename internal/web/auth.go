package web

import (
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/patchmarket/patch/internal/auth"
	"github.com/patchmarket/patch/internal/store"
)

const minPasswordLength = 8

// RegisterPage handles GET /register.
func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "register.html", &PageData{Title: "Register"})
}

// RegisterSubmit handles POST /register.
func (s *Server) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	confirm := r.FormValue("password_confirm")

	renderError := func(msg string) {
		s.Templates.Render(w, "register.html", &PageData{Title: "Register", Error: msg})
	}

	if username == "" || password == "" {
		renderError("Enter a username and password.")
		return
	}
	if len(password) < minPasswordLength {
		renderError("Password must be at least 8 characters.")
		return
	}
	if password != confirm {
		renderError("Passwords do not match.")
		return
	}

	existing, err := store.GetUserByUsername(r.Context(), s.DB, username)
	if err != nil {
		slog.Error("failed to check username", "error", err)
		renderError("Registration failed, try again.")
		return
	}
	if existing != nil {
		renderError("That username is already taken.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		renderError("Registration failed, try again.")
		return
	}

	user, err := store.CreateUser(r.Context(), s.DB, username, string(hash))
	if err != nil {
		slog.Error("failed to create user", "error", err)
		renderError("Registration failed, try again.")
		return
	}

	slog.Info("user registered", "user", user.Username)
	s.startSession(w, user.ID, user.Username)
	setFlash(w, "Welcome to Patch, "+user.Username+"!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Sign in"})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	renderError := func(msg string) {
		s.Templates.Render(w, "login.html", &PageData{Title: "Sign in", Error: msg})
	}

	if username == "" || password == "" {
		renderError("Enter your username and password.")
		return
	}

	user, err := store.GetUserByUsername(r.Context(), s.DB, username)
	if err != nil || user == nil {
		renderError("Incorrect username or password.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login failed", "username", username, "remote", r.RemoteAddr)
		renderError("Incorrect username or password.")
		return
	}

	slog.Info("user logged in", "user", user.Username)
	s.startSession(w, user.ID, user.Username)
	setFlash(w, "Welcome back, "+user.Username+"!")
	http.Redirect(w, r, "/shop", http.StatusSeeOther)
}

// Logout handles POST /logout. The session token's JTI is revoked so
// the cookie cannot be replayed.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		if claims, err := auth.ValidateToken(s.JWTSecret, cookie.Value); err == nil && claims.ID != "" {
			if err := store.RevokeToken(r.Context(), s.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
				slog.Error("failed to revoke token", "error", err)
			}
		}
	}

	clearAuthCookie(w)
	setFlash(w, "You have been logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// startSession issues a session token and sets the auth cookie.
func (s *Server) startSession(w http.ResponseWriter, userID int64, username string) {
	token, err := auth.GenerateToken(s.JWTSecret, userID, username)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenExpiry.Seconds()),
	})
}
