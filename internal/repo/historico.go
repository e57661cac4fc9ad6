package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/quilometragem/backend/internal/domain"
)

// HistoricoRepo defines the read operations for the change history of registros.
// History rows are produced outside this API, so there is no write method.
type HistoricoRepo interface {
	// ListByRegistroID returns the history of one registro, newest change first.
	// An unknown registro yields an empty, non-nil slice.
	ListByRegistroID(ctx context.Context, registroID int64) ([]domain.HistoricoAlteracao, error)
}

// pgHistoricoRepo is the Postgres implementation of HistoricoRepo.
type pgHistoricoRepo struct {
	db db
}

// NewHistoricoRepo constructs a HistoricoRepo backed by the provided db connection.
func NewHistoricoRepo(db db) HistoricoRepo {
	return &pgHistoricoRepo{db: db}
}

func (r *pgHistoricoRepo) ListByRegistroID(ctx context.Context, registroID int64) ([]domain.HistoricoAlteracao, error) {
	const q = `
		SELECT id, registro_id, campo_alterado, valor_anterior, valor_novo, usuario_alteracao, alterado_em
		FROM historico_alteracoes
		WHERE registro_id = @registro_id
		ORDER BY alterado_em DESC, id DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"registro_id": registroID})
	if err != nil {
		return nil, fmt.Errorf("repo.HistoricoRepo.ListByRegistroID: %w", err)
	}
	defer rows.Close()

	historico := []domain.HistoricoAlteracao{}
	for rows.Next() {
		var h domain.HistoricoAlteracao
		err := rows.Scan(
			&h.ID,
			&h.RegistroID,
			&h.CampoAlterado,
			&h.ValorAnterior,
			&h.ValorNovo,
			&h.UsuarioAlteracao,
			&h.AlteradoEm,
		)
		if err != nil {
			return nil, fmt.Errorf("repo.HistoricoRepo.ListByRegistroID: scan: %w", err)
		}
		historico = append(historico, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.HistoricoRepo.ListByRegistroID: rows: %w", err)
	}

	return historico, nil
}
