package store

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lossdesk/models"
)

// Postgres tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them
// against a disposable database.
func setupPostgres(t *testing.T) *Postgres {
	t.Helper()
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("postgres tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	db, err := gorm.Open(postgres.Open(os.Getenv("DB_DSN")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Report{}))
	require.NoError(t, db.Exec("DELETE FROM reports").Error)
	return NewPostgres(db, nil)
}

func TestPostgresCreateIsIdempotent(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	first, err := s.Create(ctx, validInput())
	require.NoError(t, err)
	second, err := s.Create(ctx, validInput())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.RequestIdentity, second.RequestIdentity)

	rows, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestPostgresConcurrentCreatesKeepOneRow(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	const n = 16
	ids := make([]uint, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			row, err := s.Create(ctx, validInput())
			assert.NoError(t, err)
			ids[i] = row.ID
		}(i)
	}
	wg.Wait()

	rows, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	for _, id := range ids {
		assert.Equal(t, rows[0].ID, id)
	}
}

func TestPostgresUpdateAndDelete(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	_, err := s.Update(ctx, 424242, validInput())
	assert.ErrorIs(t, err, ErrNotFound)

	row, err := s.Create(ctx, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Amount = "99.9"
	updated, err := s.Update(ctx, row.ID, in)
	require.NoError(t, err)
	assert.Equal(t, int64(100), updated.Amount)
	assert.Equal(t, row.RequestIdentity, updated.RequestIdentity)
	assert.Equal(t, row.CreatedAt, updated.CreatedAt)

	require.NoError(t, s.Delete(ctx, row.ID))
	require.NoError(t, s.Delete(ctx, row.ID))
	rows, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
