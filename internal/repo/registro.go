// Package repo contains all database access logic for the quilometragem API.
// Each resource has its own file with an interface and a Postgres implementation;
// sqlite.go holds the SQLite implementations of the same interfaces.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/quilometragem/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}

// RegistroRepo defines the persistence operations for Registros.
// The service layer depends on this interface, not a concrete store,
// which allows the service to be unit-tested with a mock.
type RegistroRepo interface {
	// Create inserts one registro and returns the assigned id and the number
	// of rows written. Omitted input fields are written as NULL.
	Create(ctx context.Context, in domain.RegistroInput) (domain.MutationResult, error)

	// GetByID retrieves a single registro by primary key.
	// Returns domain.ErrNotFound if no registro with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Registro, error)

	// List returns the registros matching f ordered by id descending.
	// The result is never nil.
	List(ctx context.Context, f domain.RegistroFilter) ([]domain.Registro, error)

	// Delete removes a registro by ID and returns the number of rows removed.
	// A missing ID is not an error: it yields 0.
	Delete(ctx context.Context, id int64) (int64, error)
}

// registroSelect selects every registro column in domain.RegistroColumns order.
var registroSelect = "SELECT " + strings.Join(domain.RegistroColumns, ", ") + " FROM registros"

// pgRegistroRepo is the Postgres implementation of RegistroRepo.
type pgRegistroRepo struct {
	db db
}

// NewRegistroRepo constructs a RegistroRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewRegistroRepo(db db) RegistroRepo {
	return &pgRegistroRepo{db: db}
}

// Create inserts a new registro row and returns its identity.
func (r *pgRegistroRepo) Create(ctx context.Context, in domain.RegistroInput) (domain.MutationResult, error) {
	const q = `
		INSERT INTO registros (condutor, placa_veiculo, data_saida, data_chegada, km_inicial, km_final, observacoes)
		VALUES (@condutor, @placa_veiculo, @data_saida, @data_chegada, @km_inicial, @km_final, @observacoes)
		RETURNING id`

	args := pgx.NamedArgs{
		"condutor":      in.Condutor, // nil becomes NULL
		"placa_veiculo": in.PlacaVeiculo,
		"data_saida":    in.DataSaida,
		"data_chegada":  in.DataChegada,
		"km_inicial":    in.KmInicial,
		"km_final":      in.KmFinal,
		"observacoes":   in.Observacoes,
	}

	var id int64
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return domain.MutationResult{}, fmt.Errorf("repo.RegistroRepo.Create: %w", err)
	}
	return domain.MutationResult{ID: id, Changes: 1}, nil
}

// GetByID retrieves a registro by primary key.
func (r *pgRegistroRepo) GetByID(ctx context.Context, id int64) (domain.Registro, error) {
	q := registroSelect + ` WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanRegistro(row)
	if err != nil {
		return domain.Registro{}, fmt.Errorf("repo.RegistroRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns the matching registros, most recently created first.
func (r *pgRegistroRepo) List(ctx context.Context, f domain.RegistroFilter) ([]domain.Registro, error) {
	var (
		conds []string
		args  = pgx.NamedArgs{}
	)
	if f.Condutor != nil {
		conds = append(conds, `condutor ILIKE @condutor ESCAPE '\'`)
		args["condutor"] = containsPattern(*f.Condutor)
	}
	if f.Placa != nil {
		conds = append(conds, `placa_veiculo ILIKE @placa ESCAPE '\'`)
		args["placa"] = containsPattern(*f.Placa)
	}
	if f.DataInicio != nil {
		conds = append(conds, `data_saida >= @data_inicio`)
		args["data_inicio"] = *f.DataInicio
	}
	if f.DataFim != nil {
		conds = append(conds, `data_chegada <= @data_fim`)
		args["data_fim"] = *f.DataFim
	}

	q := registroSelect + whereClause(conds) + ` ORDER BY id DESC`

	rows, err := r.db.Query(ctx, q, args)
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

// Delete removes a registro by primary key. History rows go with it
// through the ON DELETE CASCADE foreign key.
func (r *pgRegistroRepo) Delete(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM registros WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return 0, fmt.Errorf("repo.RegistroRepo.Delete: %w", err)
	}
	return tag.RowsAffected(), nil
}

// scanner is satisfied by pgx.Row, pgx.Rows, *sql.Row, and *sql.Rows, allowing
// the scan helpers to be reused for single-row and multi-row queries on both stores.
type scanner interface {
	Scan(dest ...any) error
}

// scanRegistro maps a single row selected with registroSelect into a domain.Registro.
func scanRegistro(s scanner) (domain.Registro, error) {
	var reg domain.Registro
	err := s.Scan(
		&reg.ID,
		&reg.Condutor,
		&reg.PlacaVeiculo,
		&reg.DataSaida,
		&reg.DataChegada,
		&reg.KmInicial,
		&reg.KmFinal,
		&reg.Observacoes,
	)
	if err != nil {
		if isNoRows(err) {
			return domain.Registro{}, domain.ErrNotFound
		}
		return domain.Registro{}, err
	}
	return reg, nil
}

// whereClause joins conditions with AND, or returns "" when there are none.
func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// likeEscaper escapes the LIKE metacharacters with the backslash named in
// each query's ESCAPE clause.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns s into a LIKE pattern matching s literally anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}
