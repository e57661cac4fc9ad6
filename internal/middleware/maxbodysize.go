package middleware

import (
	"encoding/json"
	"net/http"
)

// NewMaxBodySizeHandler limits request bodies to limit bytes.
//
// A request whose Content-Length already exceeds limit is answered with 413
// and a JSON error without reaching next. Otherwise the body is wrapped in an
// http.MaxBytesReader, so a streamed body that overruns the limit fails the
// handler's read with *http.MaxBytesError.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Connection", "close")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				//nolint:errcheck
				json.NewEncoder(w).Encode(map[string]string{"error": "request body too large"})
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
