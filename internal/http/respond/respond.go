package respond

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/quantum-trade/internal/notify"
)

// Envelope is the standard API response wrapper used across handlers.
type Envelope struct {
	Code         int                  `json:"code"`
	Message      string               `json:"message"`
	Data         any                  `json:"data,omitempty"`
	Redirect     string               `json:"redirect,omitempty"`
	Notification *notify.Notification `json:"notification,omitempty"`
}

// JSON writes a success or informational response using the common envelope.
func JSON(w http.ResponseWriter, status int, message string, data any) {
	Write(w, Envelope{Code: status, Message: message, Data: data})
}

// Error writes an error response with the shared envelope structure.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, Envelope{Code: status, Message: message})
}

// Write sends a fully populated envelope; Code doubles as the HTTP status.
func Write(w http.ResponseWriter, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(payload.Code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Warn("respond: encode payload failed", zap.Error(err))
	}
}
