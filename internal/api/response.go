package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/patchmarket/patch/internal/model"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("error encoding response: %v", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// jsonFieldErrors writes a 400 response with per-field validation messages.
func jsonFieldErrors(w http.ResponseWriter, errs model.FieldErrors) {
	jsonResponse(w, http.StatusBadRequest, map[string]any{"errors": errs})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
