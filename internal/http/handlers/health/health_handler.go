package health

import (
	"net/http"

	"usersvc/internal/http/responses"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Check GET /health. Bare body on purpose: load balancers and probes
// read it, not envelope-aware clients.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	responses.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Ping GET /ping. Enveloped like the rest of the API surface.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	responses.WriteSuccess(w, http.StatusOK, "OK", map[string]string{
		"message": "pong",
	})
}
