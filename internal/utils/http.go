package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-bank-cards/models"
)

const internalErrorBody = `{"message":"Internal error","code":500}`

// WriteJSON writes data as a JSON body with statusCode and returns the number
// of body bytes written.
//
// The body is encoded before any header is sent, so a value that cannot be
// encoded turns into the standard 500 error body instead of a truncated reply:
//
//	utils.WriteJSON(w, models.BalanceView{Balance: 100}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(internalErrorBody))
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}

// WriteError writes the standard error body {"message", "code"}.
func WriteError(w http.ResponseWriter, statusCode int, message string) (int, error) {
	return WriteJSON(w, models.ErrorResponse{Message: message, Code: statusCode}, statusCode)
}
