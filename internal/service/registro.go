// Package service contains the business logic for the quilometragem API.
// Services validate inputs and call exactly one repo operation per request.
// No SQL lives here; services depend on repo interfaces.
package service

import (
	"context"
	"fmt"

	"github.com/pkordes/quilometragem/backend/internal/domain"
	"github.com/pkordes/quilometragem/backend/internal/repo"
)

// RegistroService implements the operations on registros and their history.
type RegistroService struct {
	registros repo.RegistroRepo
	historico repo.HistoricoRepo
}

// NewRegistroService constructs a RegistroService backed by the provided repos.
func NewRegistroService(registros repo.RegistroRepo, historico repo.HistoricoRepo) *RegistroService {
	return &RegistroService{registros: registros, historico: historico}
}

// List returns the registros matching f, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *RegistroService) List(ctx context.Context, f domain.RegistroFilter) ([]domain.Registro, error) {
	registros, err := s.registros.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("service.RegistroService.List: %w", err)
	}
	if registros == nil {
		registros = []domain.Registro{}
	}
	return registros, nil
}

// Create persists a new registro as given. Field presence is not checked
// here: the store's constraints are the only field-level validation.
func (s *RegistroService) Create(ctx context.Context, in domain.RegistroInput) (domain.MutationResult, error) {
	res, err := s.registros.Create(ctx, in)
	if err != nil {
		return domain.MutationResult{}, fmt.Errorf("service.RegistroService.Create: %w", err)
	}
	return res, nil
}

// GetByID returns a single registro.
// Returns domain.ErrInvalidID for ids below 1 and domain.ErrNotFound when absent.
func (s *RegistroService) GetByID(ctx context.Context, id int64) (domain.Registro, error) {
	if err := validateID(id); err != nil {
		return domain.Registro{}, fmt.Errorf("service.RegistroService.GetByID: %w", err)
	}
	reg, err := s.registros.GetByID(ctx, id)
	if err != nil {
		return domain.Registro{}, fmt.Errorf("service.RegistroService.GetByID: %w", err)
	}
	return reg, nil
}

// Delete removes a registro and reports how many rows went away (0 or 1).
// Returns domain.ErrInvalidID for ids below 1.
func (s *RegistroService) Delete(ctx context.Context, id int64) (int64, error) {
	if err := validateID(id); err != nil {
		return 0, fmt.Errorf("service.RegistroService.Delete: %w", err)
	}
	changes, err := s.registros.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("service.RegistroService.Delete: %w", err)
	}
	return changes, nil
}

// Historico returns the change history of a registro, newest first.
// An unknown registro and a registro without changes both yield an empty slice.
func (s *RegistroService) Historico(ctx context.Context, id int64) ([]domain.HistoricoAlteracao, error) {
	if err := validateID(id); err != nil {
		return nil, fmt.Errorf("service.RegistroService.Historico: %w", err)
	}
	historico, err := s.historico.ListByRegistroID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.RegistroService.Historico: %w", err)
	}
	if historico == nil {
		historico = []domain.HistoricoAlteracao{}
	}
	return historico, nil
}

// validateID rejects ids that no stored registro can have.
func validateID(id int64) error {
	if id < 1 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidID, id)
	}
	return nil
}
