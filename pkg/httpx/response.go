package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps the size of JSON request bodies.
const MaxBodyBytes = 1 << 20

// DataEnvelope is the success body for responses carrying data.
type DataEnvelope struct {
	Data   any `json:"data"`
	Status int `json:"status"`
}

// StatusEnvelope is the success body for responses without data.
type StatusEnvelope struct {
	Status int `json:"status"`
}

// ErrorEnvelope is the body of every error response. Status holds the
// application error code, not the HTTP status.
type ErrorEnvelope struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// WriteData writes {"data": v, "status": 200}.
func WriteData(w http.ResponseWriter, v any) {
	WriteJSON(w, http.StatusOK, DataEnvelope{Data: v, Status: http.StatusOK})
}

// WriteStatus writes {"status": 200}.
func WriteStatus(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, StatusEnvelope{Status: http.StatusOK})
}

// WriteErrorEnvelope writes {"message": msg, "status": code} with the given
// HTTP status.
func WriteErrorEnvelope(w http.ResponseWriter, httpStatus, code int, msg string) {
	WriteJSON(w, httpStatus, ErrorEnvelope{Message: msg, Status: code})
}

// DecodeJSON reads a single JSON object from the request body into dst.
// Unknown fields are ignored; trailing data is rejected.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("httpx: empty body")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("httpx: decode body: %w", err)
	}
	if dec.More() {
		return errors.New("httpx: unexpected data after JSON body")
	}
	return nil
}
