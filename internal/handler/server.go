// Package handler implements the HTTP handlers for the quilometragem API.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, registro.go, export.go) but share the same Server struct so they
// can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/quilometragem/backend/internal/domain"
	"github.com/pkordes/quilometragem/backend/spec"
)

// RegistroServicer defines the business operations the registro handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type RegistroServicer interface {
	List(ctx context.Context, f domain.RegistroFilter) ([]domain.Registro, error)
	Create(ctx context.Context, in domain.RegistroInput) (domain.MutationResult, error)
	GetByID(ctx context.Context, id int64) (domain.Registro, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Historico(ctx context.Context, id int64) ([]domain.HistoricoAlteracao, error)
}

// ExportServicer defines the export operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.Registro, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	log       *slog.Logger
	registros RegistroServicer
	export    ExportServicer
	now       func() time.Time
}

// NewServer constructs the Server with all its dependencies.
func NewServer(log *slog.Logger, registros RegistroServicer, export ExportServicer) *Server {
	return &Server{log: log, registros: registros, export: export, now: time.Now}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler(log *slog.Logger) *Server {
	return NewServer(log, nil, nil)
}

// Routes returns a router serving every API endpoint.
// Mount it on the top-level router after the middleware stack.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/api/hello", s.handle(s.Hello))

	r.Route("/api/registros", func(r chi.Router) {
		r.Get("/", s.handle(s.ListRegistros))
		r.Post("/", s.handle(s.CreateRegistro))
		r.Get("/{id}", s.handle(s.GetRegistro))
		r.Delete("/{id}", s.handle(s.DeleteRegistro))
		r.Get("/{id}/historico", s.handle(s.GetHistorico))
	})

	r.Get("/api/exportar", s.handle(s.ExportRegistros))
	r.Get("/api/exportar/{fmt}", s.handle(s.ExportRegistros))

	r.Get("/openapi.yaml", serveOpenAPI)

	return r
}

// apiFunc is a handler that reports failure by returning an error.
// handle maps that error to a response in one place.
type apiFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Server) handle(fn apiFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			s.writeError(w, r, err)
		}
	}
}

// serveOpenAPI serves the embedded API description.
func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(spec.OpenAPI)
}
