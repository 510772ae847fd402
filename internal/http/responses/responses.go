package responses

import (
	"encoding/json"
	"net/http"
)

// SuccessEnvelope and ErrorEnvelope are the two response variants every
// endpoint emits (except the bare /health probe). Clients branch on the
// `success` boolean to know whether to read `data` or `error`.
type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Data    any    `json:"data"`
}

type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Error   any    `json:"error"`
}

// FieldError describes a single failed constraint on a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess wraps data in a success envelope. The envelope code
// mirrors the HTTP status.
func WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, SuccessEnvelope{
		Success: true,
		Message: message,
		Code:    status,
		Data:    data,
	})
}

// WriteError wraps an error in an error envelope. The envelope code
// mirrors the HTTP status.
func WriteError(w http.ResponseWriter, status int, message string, detail any) {
	WriteJSON(w, status, ErrorEnvelope{
		Success: false,
		Message: message,
		Code:    status,
		Error:   detail,
	})
}

// WriteValidationError reports request-shape failures with the per-field
// breakdown in the error slot.
func WriteValidationError(w http.ResponseWriter, fields []FieldError) {
	WriteError(w, http.StatusUnprocessableEntity, "Validation Error", fields)
}

func WriteNotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, "resource not found", nil)
}
