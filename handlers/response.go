package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"portfolio-backend/logger"
)

const (
	maxJSONBody = 1 << 20

	msgAccessDenied  = "Access denied!"
	msgNotFound      = "Not Found"
	msgServerError   = "Something went wrong..."
	msgInvalidBody   = "Invalid request payload"
	msgBotSuspected  = "reCAPTCHA verification failed"
	msgInvalidCreds  = "Invalid Credentials"
	msgUserExists    = "User already exists"
	msgSlugTaken     = "Portfolio with this slug already exists"
	msgPortfolioNone = "Portfolio not found"
)

// ErrorItem is one entry of the {errors: [...]} list.
type ErrorItem struct {
	Msg      string `json:"msg"`
	Param    string `json:"param,omitempty"`
	Location string `json:"location,omitempty"`
}

type ErrorsResponse struct {
	Errors  []ErrorItem `json:"errors"`
	Success bool        `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warningf("failed to encode response: %v", err)
	}
}

func writeErrors(w http.ResponseWriter, status int, items ...ErrorItem) {
	writeJSON(w, status, ErrorsResponse{Errors: items, Success: false})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeErrors(w, status, ErrorItem{Msg: msg})
}

// Forbidden is reported with 401 for compatibility with existing clients.
func accessDenied(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, msgAccessDenied)
}

func notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, msgNotFound)
}

// serverError logs err and answers with the generic plain text body.
func serverError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(msgServerError))
}

// decodeJSON reads a bounded JSON body into dst, answering 400 itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "empty request body")
			return false
		}
		logger.Debugf("invalid payload on %s: %v", r.URL.Path, err)
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}
