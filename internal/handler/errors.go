package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/quilometragem/backend/internal/domain"
)

// errBodyTooLarge is returned when a request body exceeds the configured limit.
var errBodyTooLarge = errors.New("request body too large")

// errorResponse is the body of every error response.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps err to an HTTP status and writes an errorResponse.
// Input and lookup errors get fixed messages; anything else is a store failure
// and is reported with the store's own message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		status int
		msg    string
	)
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		status, msg = http.StatusBadRequest, domain.ErrInvalidID.Error()
	case errors.Is(err, domain.ErrInvalidJSON):
		status, msg = http.StatusBadRequest, domain.ErrInvalidJSON.Error()
	case errors.Is(err, domain.ErrInvalidParam):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, domain.ErrNotFound.Error()
	case errors.Is(err, errBodyTooLarge):
		status, msg = http.StatusRequestEntityTooLarge, errBodyTooLarge.Error()
	default:
		status, msg = http.StatusInternalServerError, rootMessage(err)
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

// rootMessage returns the message of the innermost error in err's chain.
// e.g. "service.RegistroService.Create: repo.RegistroRepo.Create: NOT NULL constraint failed: registros.condutor"
// → "NOT NULL constraint failed: registros.condutor"
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // headers are already sent
	json.NewEncoder(w).Encode(v)
}
