package handlers

import (
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"
	"path/filepath"

	"ecfrontend/backend"
)

// templateDir is relative to the working directory; tests point it at the
// repo's ui/html from their own package directory.
var templateDir = "./ui/html"

func render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.ParseFiles(filepath.Join(templateDir, name))
	if err != nil {
		log.Println("Error loading template:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if err := tmpl.Execute(w, data); err != nil {
		log.Println("Error rendering template:", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		log.Println("Error writing JSON response:", err)
	}
}

// backendErrorMessage maps a backend client failure onto user-facing text:
// the backend's own error string when it sent one, a fixed message for
// unparseable bodies, and a generic one for transport failures.
func backendErrorMessage(err error, fallback string) string {
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	case errors.Is(err, backend.ErrInvalidResponse):
		return "Invalid response from the server."
	default:
		return "Could not reach the server. Please try again."
	}
}
