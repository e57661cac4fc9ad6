package service

import (
	"context"
	"fmt"

	"github.com/pkordes/quilometragem/backend/internal/domain"
	"github.com/pkordes/quilometragem/backend/internal/repo"
)

// ExportService produces the full registro set for export.
type ExportService struct {
	registros repo.RegistroRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(registros repo.RegistroRepo) *ExportService {
	return &ExportService{registros: registros}
}

// Export returns every registro, newest first: the same rows and order as an
// unfiltered listing. Serialization is the caller's concern.
func (s *ExportService) Export(ctx context.Context) ([]domain.Registro, error) {
	registros, err := s.registros.List(ctx, domain.RegistroFilter{})
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	if registros == nil {
		registros = []domain.Registro{}
	}
	return registros, nil
}
