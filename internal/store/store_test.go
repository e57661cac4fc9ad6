package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/quilometragem/backend/internal/domain"
	"github.com/pkordes/quilometragem/backend/internal/store"
)

func TestOpen_UnsupportedScheme(t *testing.T) {
	for _, url := range []string{"", "mysql://root@localhost/db", "quilometragem.db"} {
		t.Run(url, func(t *testing.T) {
			_, err := store.Open(context.Background(), url)
			require.ErrorContains(t, err, "unsupported database URL scheme")
		})
	}
}

func TestOpen_SQLiteEmptyDSN(t *testing.T) {
	_, err := store.Open(context.Background(), "sqlite:")
	require.Error(t, err)
}

func TestOpen_SQLiteFile_MigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "quilometragem.db")

	st, err := store.Open(ctx, "sqlite:"+path)
	require.NoError(t, err)
	assert.Equal(t, store.DialectSQLite, st.Dialect)

	applied, err := st.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	applied, err = st.Migrate(ctx)
	require.NoError(t, err)
	assert.Zero(t, applied, "second run has nothing pending")

	res, err := st.Registros.Create(ctx, domain.RegistroInput{
		Condutor:     ptr("Ana"),
		PlacaVeiculo: ptr("ABC1234"),
		DataSaida:    ptr("2024-01-01"),
		DataChegada:  ptr("2024-01-02"),
		KmInicial:    ptr(100.0),
		KmFinal:      ptr(250.0),
	})
	require.NoError(t, err)
	st.Close()

	_, err = os.Stat(path)
	require.NoError(t, err)

	// Data survives a reopen.
	st, err = store.Open(ctx, "sqlite:"+path)
	require.NoError(t, err)
	t.Cleanup(st.Close)

	got, err := st.Registros.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Condutor)
}

func TestNewMigrationProvider_UnknownDialect(t *testing.T) {
	_, err := store.NewMigrationProvider(store.Dialect("oracle"), nil)
	require.Error(t, err)
}

func ptr[T any](v T) *T { return &v }
