package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/phenrril/lojamobile/internal/domain"
)

// Requiere TEST_DB_DSN apuntando a una base descartable.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN no definido")
	}
	db, err := gorm.Open(gormpg.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Exec("DELETE FROM kv_entries WHERE key LIKE 'test:%'")
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestKVRepo_RoundTrip(t *testing.T) {
	repo := NewKVRepo(openTestDB(t))
	require.NoError(t, repo.Migrate())
	ctx := context.Background()

	_, err := repo.Get(ctx, "test:missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Set(ctx, "test:clientes", []byte(`[{"id":"1"}]`)))
	require.NoError(t, repo.Set(ctx, "test:clientes", []byte(`[]`)))
	got, err := repo.Get(ctx, "test:clientes")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, repo.Delete(ctx, "test:clientes"))
	_, err = repo.Get(ctx, "test:clientes")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKVRepo_EmptyKey(t *testing.T) {
	repo := NewKVRepo(nil)
	_, err := repo.Get(context.Background(), " ")
	assert.Error(t, err)
	assert.Error(t, repo.Set(context.Background(), "", nil))
}
