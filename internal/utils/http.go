package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-exam-admin/models"
)

// TraceIDHeader carries the request trace ID in both directions.
const TraceIDHeader = "X-Trace-ID"

// WriteJSON serializes data to JSON and writes it with statusCode.
//
// If marshaling fails, it responds with 500 Internal Server Error and
// returns a wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteSuccess writes a successful envelope carrying data.
func WriteSuccess[T any](w http.ResponseWriter, statusCode int, data T, message string) (int, error) {
	return WriteJSON(w, models.Envelope[T]{
		Success: true,
		Status:  statusCode,
		Data:    data,
		Message: message,
	}, statusCode)
}

// WritePage writes a successful envelope carrying one page of items.
func WritePage[T any](w http.ResponseWriter, items []T, pageable models.Pageable) (int, error) {
	if items == nil {
		items = []T{}
	}

	return WriteJSON(w, models.Envelope[[]T]{
		Success:          true,
		Status:           http.StatusOK,
		Data:             items,
		Message:          "OK",
		PageableResponse: &pageable,
	}, http.StatusOK)
}

// WriteFailure writes an envelope with success=false.
func WriteFailure(w http.ResponseWriter, statusCode int, code, message string, details any) (int, error) {
	return WriteJSON(w, models.Envelope[any]{
		Success: false,
		Status:  statusCode,
		Message: message,
		ErrorData: &models.ErrorData{
			ErrorCode:    code,
			ErrorMessage: message,
			Details:      details,
		},
	}, statusCode)
}
