// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"strings"

	"github.com/ManuGH/m3uplus/internal/log"
)

const maxStackBytes = 8 << 10

// Recoverer turns a handler panic into a logged 500 response. The
// http.ErrAbortHandler sentinel is re-raised so net/http can abort the
// connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			stack := make([]byte, maxStackBytes)
			stack = stack[:runtime.Stack(stack, false)]

			logger := log.WithComponentFromContext(r.Context(), "http")
			logger.Error().
				Str(log.FieldEvent, "http.panic").
				Str(log.FieldMethod, r.Method).
				Str(log.FieldPath, strings.ToValidUTF8(r.URL.Path, "")).
				Str(log.FieldRemoteAddr, r.RemoteAddr).
				Interface("panic", rec).
				Bytes("stack", stack).
				Msg("handler panicked")

			writeJSONError(w, r, http.StatusInternalServerError, "internal_error", "the request could not be completed")
		}()

		next.ServeHTTP(w, r)
	})
}

// writeJSONError writes the service error envelope. Handlers in package api
// use the same shape.
func writeJSONError(w http.ResponseWriter, r *http.Request, status int, code, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Error     string `json:"error"`
		Detail    string `json:"detail,omitempty"`
		RequestID string `json:"request_id,omitempty"`
	}{code, detail, log.RequestIDFromContext(r.Context())})
}
