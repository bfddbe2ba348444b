// Package httpapi exposes the HTTP API layer of budgetable.
package httpapi

import (
	"encoding/json"
	"net/http"
)

// response pairs an HTTP status with its canonical message.
type response struct {
	Status  int
	Message string
}

// The fixed response table. Missing id and invalid payloads are the
// caller's fault (400); everything else, including not-found and auth
// failures, collapses into a 500.
var (
	respInternalError = response{http.StatusInternalServerError, "Internal server error."}
	respMissingID     = response{http.StatusBadRequest, "Missing ID in request."}
	respInvalidData   = response{http.StatusBadRequest, "Invalid data provided."}
	respFailedFetch   = response{http.StatusInternalServerError, "Failed to fetch data."}
	respFailedAdd     = response{http.StatusInternalServerError, "Failed to add data."}
	respFailedUpdate  = response{http.StatusInternalServerError, "Failed to update data."}
	respFailedDelete  = response{http.StatusInternalServerError, "Failed to delete data."}
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// writeError writes the uniform error envelope for the given response
// constant. Internal causes are logged by the caller, never exposed here.
func writeError(w http.ResponseWriter, r response, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.Status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: errorDetail{Message: r.Message, Details: details}})
}

// writeJSON writes a success payload directly, without an envelope.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
