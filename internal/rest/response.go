package rest

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// Response is the envelope wrapping every API reply, success or failure.
// The message is always present; exactly one of Data, Error, or Errors
// accompanies it depending on the outcome.
type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// JSON writes the envelope with the given status code.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

// OK writes a 200 envelope with a message and payload.
func OK(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Response{Message: message, Data: data})
}

// NotFound writes the "does not exist" envelope. The contract uses a
// 400-class code for missing records, not 404.
func NotFound(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, Response{Message: message})
}

// ValidationFailed writes the field-level error list produced by a contract check.
func ValidationFailed(w http.ResponseWriter, errors any) {
	JSON(w, http.StatusBadRequest, Response{Message: "Validation error", Errors: errors})
}

// Internal writes the 500 envelope with the raw underlying message.
func Internal(w http.ResponseWriter, err error) {
	JSON(w, http.StatusInternalServerError, Response{Message: "Internal Server Error", Error: err.Error()})
}
