package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/quilometragem/backend/internal/domain"
)

type createResponse struct {
	OK     bool                  `json:"ok"`
	Result domain.MutationResult `json:"result"`
}

type deleteResponse struct {
	OK      bool  `json:"ok"`
	Changes int64 `json:"changes"`
}

// ListRegistros handles GET /api/registros.
// Optional filters: ?condutor=, ?placa= (case-insensitive substrings),
// ?data_inicio= (data_saida lower bound), ?data_fim= (data_chegada upper bound).
func (s *Server) ListRegistros(w http.ResponseWriter, r *http.Request) error {
	f, err := bindRegistroFilter(r)
	if err != nil {
		return err
	}

	registros, err := s.registros.List(r.Context(), f)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, registros)
	return nil
}

// CreateRegistro handles POST /api/registros.
func (s *Server) CreateRegistro(w http.ResponseWriter, r *http.Request) error {
	in, err := decodeRegistroInput(r.Body)
	if err != nil {
		return err
	}

	res, err := s.registros.Create(r.Context(), in)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, createResponse{OK: true, Result: res})
	return nil
}

// GetRegistro handles GET /api/registros/{id}.
func (s *Server) GetRegistro(w http.ResponseWriter, r *http.Request) error {
	id, err := bindID(r)
	if err != nil {
		return err
	}

	reg, err := s.registros.GetByID(r.Context(), id)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, reg)
	return nil
}

// DeleteRegistro handles DELETE /api/registros/{id}.
// A missing registro is not an error: the response reports changes: 0.
func (s *Server) DeleteRegistro(w http.ResponseWriter, r *http.Request) error {
	id, err := bindID(r)
	if err != nil {
		return err
	}

	changes, err := s.registros.Delete(r.Context(), id)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, deleteResponse{OK: true, Changes: changes})
	return nil
}

// GetHistorico handles GET /api/registros/{id}/historico.
func (s *Server) GetHistorico(w http.ResponseWriter, r *http.Request) error {
	id, err := bindID(r)
	if err != nil {
		return err
	}

	historico, err := s.registros.Historico(r.Context(), id)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, historico)
	return nil
}

// --- binding helpers --------------------------------------------------------

// bindID binds the {id} path segment as a base-10 integer.
// Range checks (id >= 1) belong to the service.
func bindID(r *http.Request) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidID, err)
	}
	return id, nil
}

// bindRegistroFilter binds the optional listing filters from the query string.
// Empty values are treated as absent.
func bindRegistroFilter(r *http.Request) (domain.RegistroFilter, error) {
	var f domain.RegistroFilter
	query := r.URL.Query()
	for _, p := range []struct {
		name string
		dest **string
	}{
		{"condutor", &f.Condutor},
		{"placa", &f.Placa},
		{"data_inicio", &f.DataInicio},
		{"data_fim", &f.DataFim},
	} {
		if err := runtime.BindQueryParameter("form", true, false, p.name, query, p.dest); err != nil {
			return domain.RegistroFilter{}, fmt.Errorf("%w %s: %v", domain.ErrInvalidParam, p.name, err)
		}
		if *p.dest != nil && **p.dest == "" {
			*p.dest = nil
		}
	}
	return f, nil
}

// decodeRegistroInput decodes exactly one JSON object of the RegistroInput
// shape. Unknown fields, a null or absent body, and trailing data are rejected.
func decodeRegistroInput(body io.Reader) (domain.RegistroInput, error) {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	var in *domain.RegistroInput
	if err := dec.Decode(&in); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.RegistroInput{}, errBodyTooLarge
		}
		return domain.RegistroInput{}, fmt.Errorf("%w: %v", domain.ErrInvalidJSON, err)
	}
	if in == nil {
		return domain.RegistroInput{}, fmt.Errorf("%w: body is null", domain.ErrInvalidJSON)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.RegistroInput{}, fmt.Errorf("%w: unexpected data after object", domain.ErrInvalidJSON)
	}
	return *in, nil
}
