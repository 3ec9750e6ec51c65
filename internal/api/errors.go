// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"net/http"

	xglog "github.com/ManuGH/m3uplus/internal/log"
)

// Error codes of the JSON error body.
const (
	codeMalformedPlaylist = "malformed_playlist"
	codeInvalidParameter  = "invalid_parameter"
	codeBodyTooLarge      = "body_too_large"
	codeBadRequest        = "bad_request"
	codeNotFound          = "not_found"
	codeMethodNotAllowed  = "method_not_allowed"
	codeInternal          = "internal_error"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, detail string) {
	writeJSON(w, status, ErrorResponse{
		Error:     code,
		Detail:    detail,
		RequestID: xglog.RequestIDFromContext(r.Context()),
	})
}
