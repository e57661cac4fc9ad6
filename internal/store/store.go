// Package store opens the relational store named by DATABASE_URL and exposes
// the repos built on it. Postgres URLs are served by pgxpool; sqlite: URLs by
// the pure-Go modernc driver through database/sql.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver for database/sql

	"github.com/pkordes/quilometragem/backend/internal/repo"
	"github.com/pkordes/quilometragem/backend/migrations"
)

// Dialect names the SQL flavour behind a Store.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// sqlitePrefix introduces a SQLite DSN in DATABASE_URL, e.g.
// "sqlite:quilometragem.db" or "sqlite:file::memory:".
const sqlitePrefix = "sqlite:"

// Store bundles the repos for one open database.
type Store struct {
	Dialect   Dialect
	Registros repo.RegistroRepo
	Historico repo.HistoricoRepo

	// sqlDB is used for goose and pings; for Postgres it shares the pool.
	sqlDB *sql.DB
	pool  *pgxpool.Pool
}

// Open connects to the database named by url and verifies it is reachable.
// The caller must call Close.
func Open(ctx context.Context, url string) (*Store, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return openPostgres(ctx, url)
	case strings.HasPrefix(url, sqlitePrefix):
		return OpenSQLite(ctx, strings.TrimPrefix(url, sqlitePrefix))
	default:
		return nil, fmt.Errorf("store.Open: unsupported database URL scheme (want postgres://, postgresql:// or sqlite:)")
	}
}

func openPostgres(ctx context.Context, url string) (*Store, error) {
	// pgxpool.New connects lazily; the Ping below opens the first connection.
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("store.Open: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store.Open: ping: %w", err)
	}

	return &Store{
		Dialect:   DialectPostgres,
		Registros: repo.NewRegistroRepo(pool),
		Historico: repo.NewHistoricoRepo(pool),
		sqlDB:     stdlib.OpenDBFromPool(pool),
		pool:      pool,
	}, nil
}

// OpenSQLite opens a SQLite database from a modernc DSN (a file path,
// "file:..." URI, or ":memory:").
//
// The handle is limited to one connection: SQLite serializes writers anyway,
// PRAGMA foreign_keys is per connection, and an in-memory database lives only
// as long as its single connection.
func OpenSQLite(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("store.OpenSQLite: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store.OpenSQLite: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store.OpenSQLite: ping: %w", err)
	}
	// Needed for ON DELETE CASCADE from registros to historico_alteracoes.
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store.OpenSQLite: enable foreign keys: %w", err)
	}

	return &Store{
		Dialect:   DialectSQLite,
		Registros: repo.NewSQLiteRegistroRepo(db),
		Historico: repo.NewSQLiteHistoricoRepo(db),
		sqlDB:     db,
	}, nil
}

// Migrate applies every pending migration for the store's dialect and
// returns how many were applied.
func (s *Store) Migrate(ctx context.Context) (int, error) {
	provider, err := NewMigrationProvider(s.Dialect, s.sqlDB)
	if err != nil {
		return 0, fmt.Errorf("store.Migrate: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("store.Migrate: up: %w", err)
	}
	return len(results), nil
}

// DB returns the database/sql handle of the store. For Postgres it shares
// the pool's connections.
func (s *Store) DB() *sql.DB {
	return s.sqlDB
}

// Close releases every connection held by the store.
func (s *Store) Close() {
	s.sqlDB.Close()
	if s.pool != nil {
		s.pool.Close()
	}
}

// NewMigrationProvider returns a goose provider for the embedded migrations
// of dialect, bound to db.
func NewMigrationProvider(dialect Dialect, db *sql.DB) (*goose.Provider, error) {
	var (
		gooseDialect goose.Dialect
		fsys         fs.FS
	)
	switch dialect {
	case DialectPostgres:
		gooseDialect, fsys = goose.DialectPostgres, migrations.Postgres
	case DialectSQLite:
		gooseDialect, fsys = goose.DialectSQLite3, migrations.SQLite
	default:
		return nil, fmt.Errorf("unknown dialect %q", dialect)
	}

	provider, err := goose.NewProvider(gooseDialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("create goose provider: %w", err)
	}
	return provider, nil
}
