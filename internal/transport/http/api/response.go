package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the uniform response wrapper: every success carries
// {statusCode, data, message, success:true}, every failure carries
// {statusCode, data:null, message, success:false, errors:[...]} with the
// errors array present even when empty.
type Envelope struct {
	StatusCode int     `json:"statusCode"`
	Data       any     `json:"data"`
	Message    string  `json:"message"`
	Success    bool    `json:"success"`
	Errors     []Issue `json:"errors"`
}

type Issue struct {
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

// Successes marshal through a shape without the errors field; failures use
// the full Envelope so a zero-length errors array still reaches the wire.
type successEnvelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, successEnvelope{StatusCode: status, Data: data, Message: message, Success: true})
}

func Fail(w http.ResponseWriter, status int, message string) {
	FailWithIssues(w, status, message, nil)
}

func FailWithIssues(w http.ResponseWriter, status int, message string, issues []Issue) {
	if issues == nil {
		issues = []Issue{}
	}
	writeJSON(w, status, Envelope{StatusCode: status, Data: nil, Message: message, Success: false, Errors: issues})
}
