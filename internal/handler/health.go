package handler

import (
	"net/http"
)

// isoMillis is RFC 3339 with millisecond precision, e.g. 2024-01-02T15:04:05.000Z.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type healthResponse struct {
	OK   bool   `json:"ok"`
	Time string `json:"time"`
}

// Hello handles GET /api/hello.
// It returns HTTP 200 with the server's current UTC time when the server is running.
func (s *Server) Hello(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, healthResponse{OK: true, Time: s.now().UTC().Format(isoMillis)})
	return nil
}
