package week

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/stafftrack/stafftrack/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithDB()
	defer func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			log.Errorf("failed to terminate container: %s", err)
		}
	}()
	code := m.Run()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, Repository) {
	ctx := context.Background()
	db := openDb()
	repository := NewRepository(db)
	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(ctx)
		require.NoError(t, err)
	})
	return ctx, repository
}

func TestRepositoryImpl_Store(t *testing.T) {
	weekEnding := time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC)

	t.Run("should store a new week reference", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)

		// when
		stored, err := repo.Store(ctx, Reference{WeekEnding: weekEnding, Label: Label(weekEnding)})

		// then
		require.NoError(t, err)
		require.NotEmpty(t, stored.Id)
		assert.Equal(t, "Week ending 19/12/2025", stored.Label)
	})

	t.Run("should keep the same id when storing the same week twice", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)
		first, err := repo.Store(ctx, Reference{WeekEnding: weekEnding, Label: Label(weekEnding)})
		require.NoError(t, err)

		// when
		second, err := repo.Store(ctx, Reference{WeekEnding: weekEnding, Label: Label(weekEnding)})

		// then
		require.NoError(t, err)
		assert.Equal(t, first.Id, second.Id)
	})
}

func TestRepositoryImpl_GetAll(t *testing.T) {
	t.Run("should return references ordered by week ending", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)
		later := time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC)
		earlier := time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC)
		_, err := repo.Store(ctx, Reference{WeekEnding: later, Label: Label(later)})
		require.NoError(t, err)
		_, err = repo.Store(ctx, Reference{WeekEnding: earlier, Label: Label(earlier)})
		require.NoError(t, err)

		// when
		references, err := repo.GetAll(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, references, 2)
		assert.Equal(t, "Week ending 19/12/2025", references[0].Label)
		assert.Equal(t, "Week ending 26/12/2025", references[1].Label)
	})
}

func TestRepositoryImpl_FindByIds(t *testing.T) {
	t.Run("should return only known ids", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)
		weekEnding := time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC)
		stored, err := repo.Store(ctx, Reference{WeekEnding: weekEnding, Label: Label(weekEnding)})
		require.NoError(t, err)

		// when
		references, err := repo.FindByIds(ctx, []int{stored.Id, 9999})

		// then
		require.NoError(t, err)
		require.Len(t, references, 1)
		assert.Equal(t, stored.Id, references[0].Id)
	})
}
