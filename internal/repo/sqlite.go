package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pkordes/quilometragem/backend/internal/domain"
)

// sqlDB is the database/sql counterpart of db, satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type sqlDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqliteRegistroRepo is the SQLite implementation of RegistroRepo.
// Parameters are bound positionally to ? placeholders.
type sqliteRegistroRepo struct {
	db sqlDB
}

// NewSQLiteRegistroRepo constructs a RegistroRepo backed by a SQLite database/sql handle.
func NewSQLiteRegistroRepo(db sqlDB) RegistroRepo {
	return &sqliteRegistroRepo{db: db}
}

func (r *sqliteRegistroRepo) Create(ctx context.Context, in domain.RegistroInput) (domain.MutationResult, error) {
	const q = `
		INSERT INTO registros (condutor, placa_veiculo, data_saida, data_chegada, km_inicial, km_final, observacoes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, q,
		nullable(in.Condutor),
		nullable(in.PlacaVeiculo),
		nullable(in.DataSaida),
		nullable(in.DataChegada),
		nullable(in.KmInicial),
		nullable(in.KmFinal),
		nullable(in.Observacoes),
	)
	if err != nil {
		return domain.MutationResult{}, fmt.Errorf("repo.RegistroRepo.Create: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.MutationResult{}, fmt.Errorf("repo.RegistroRepo.Create: last insert id: %w", err)
	}
	changes, err := res.RowsAffected()
	if err != nil {
		return domain.MutationResult{}, fmt.Errorf("repo.RegistroRepo.Create: rows affected: %w", err)
	}
	return domain.MutationResult{ID: id, Changes: changes}, nil
}

func (r *sqliteRegistroRepo) GetByID(ctx context.Context, id int64) (domain.Registro, error) {
	q := registroSelect + ` WHERE id = ?`

	result, err := scanRegistro(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return domain.Registro{}, fmt.Errorf("repo.RegistroRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *sqliteRegistroRepo) List(ctx context.Context, f domain.RegistroFilter) ([]domain.Registro, error) {
	var (
		conds []string
		args  []any
	)
	if f.Condutor != nil {
		conds = append(conds, `LOWER(condutor) LIKE LOWER(?) ESCAPE '\'`)
		args = append(args, containsPattern(*f.Condutor))
	}
	if f.Placa != nil {
		conds = append(conds, `LOWER(placa_veiculo) LIKE LOWER(?) ESCAPE '\'`)
		args = append(args, containsPattern(*f.Placa))
	}
	if f.DataInicio != nil {
		conds = append(conds, `data_saida >= ?`)
		args = append(args, *f.DataInicio)
	}
	if f.DataFim != nil {
		conds = append(conds, `data_chegada <= ?`)
		args = append(args, *f.DataFim)
	}

	q := registroSelect + whereClause(conds) + ` ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("repo.RegistroRepo.List: %w", err)
	}
	defer rows.Close()

	registros := []domain.Registro{}
	for rows.Next() {
		reg, err := scanRegistro(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.RegistroRepo.List: scan: %w", err)
		}
		registros = append(registros, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RegistroRepo.List: rows: %w", err)
	}

	return registros, nil
}

func (r *sqliteRegistroRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM registros WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("repo.RegistroRepo.Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("repo.RegistroRepo.Delete: rows affected: %w", err)
	}
	return n, nil
}

// sqliteHistoricoRepo is the SQLite implementation of HistoricoRepo.
type sqliteHistoricoRepo struct {
	db sqlDB
}

// NewSQLiteHistoricoRepo constructs a HistoricoRepo backed by a SQLite database/sql handle.
func NewSQLiteHistoricoRepo(db sqlDB) HistoricoRepo {
	return &sqliteHistoricoRepo{db: db}
}

func (r *sqliteHistoricoRepo) ListByRegistroID(ctx context.Context, registroID int64) ([]domain.HistoricoAlteracao, error) {
	const q = `
		SELECT id, registro_id, campo_alterado, valor_anterior, valor_novo, usuario_alteracao, alterado_em
		FROM historico_alteracoes
		WHERE registro_id = ?
		ORDER BY alterado_em DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q, registroID)
	if err != nil {
		return nil, fmt.Errorf("repo.HistoricoRepo.ListByRegistroID: %w", err)
	}
	defer rows.Close()

	historico := []domain.HistoricoAlteracao{}
	for rows.Next() {
		var (
			h          domain.HistoricoAlteracao
			alteradoEm string
		)
		err := rows.Scan(
			&h.ID,
			&h.RegistroID,
			&h.CampoAlterado,
			&h.ValorAnterior,
			&h.ValorNovo,
			&h.UsuarioAlteracao,
			&alteradoEm,
		)
		if err != nil {
			return nil, fmt.Errorf("repo.HistoricoRepo.ListByRegistroID: scan: %w", err)
		}
		if h.AlteradoEm, err = parseSQLiteTime(alteradoEm); err != nil {
			return nil, fmt.Errorf("repo.HistoricoRepo.ListByRegistroID: alterado_em: %w", err)
		}
		historico = append(historico, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.HistoricoRepo.ListByRegistroID: rows: %w", err)
	}

	return historico, nil
}

// sqliteTimeLayouts are the text encodings accepted for timestamp columns:
// RFC 3339 as written by the schema default, and zoneless ISO 8601 with a T or
// a space separator (Python isoformat(), SQLite datetime()). Zoneless values are UTC.
var sqliteTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func parseSQLiteTime(s string) (time.Time, error) {
	var err error
	for _, layout := range sqliteTimeLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}

// nullable dereferences p for a database/sql argument, or returns nil (NULL).
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
