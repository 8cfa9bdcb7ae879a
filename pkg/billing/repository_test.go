package billing

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

func setupTestRepository(t *testing.T) (context.Context, Repository, *pgxpool.Pool) {
	ctx := context.Background()
	db := openDb()
	repository := NewRepository(db)
	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(ctx)
		require.NoError(t, err)
	})
	return ctx, repository, db
}

func TestRepositoryImpl_FindByIds(t *testing.T) {
	t.Run("should resolve assignment with code and project", func(t *testing.T) {
		// given
		ctx, repo, db := setupTestRepository(t)
		_, err := db.Exec(ctx, `INSERT INTO project (id, name, active) VALUES (1, 'Orion', FALSE)`)
		require.NoError(t, err)
		_, err = db.Exec(ctx,
			`INSERT INTO billing_code (id, code, start_date, expiry_date, project_id)
			 VALUES (1, 'ORN-001', '2025-01-01', '2025-12-31', 1)`)
		require.NoError(t, err)
		_, err = db.Exec(ctx, `INSERT INTO billing_assignment (id, description, code_id) VALUES (1, 'Orion development', 1)`)
		require.NoError(t, err)

		// when
		assignments, err := repo.FindByIds(ctx, []int{1})

		// then
		require.NoError(t, err)
		require.Len(t, assignments, 1)
		assignment := assignments[0]
		assert.Equal(t, 1, assignment.Id)
		assert.Equal(t, "Orion development", assignment.Description)
		assert.Equal(t, "ORN-001", assignment.Code.Code)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), assignment.Code.StartDate)
		assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), assignment.Code.ExpiryDate)
		require.NotNil(t, assignment.Code.Project)
		assert.Equal(t, "Orion", assignment.Code.Project.Name)
		assert.False(t, assignment.Code.Project.Active)
	})

	t.Run("should resolve code without project and without dates", func(t *testing.T) {
		// given
		ctx, repo, db := setupTestRepository(t)
		_, err := db.Exec(ctx,
			`INSERT INTO billing_code (id, code, start_date, expiry_date, project_id) VALUES (1, 'INT-OVH', NULL, NULL, NULL)`)
		require.NoError(t, err)
		_, err = db.Exec(ctx, `INSERT INTO billing_assignment (id, description, code_id) VALUES (1, 'Internal overhead', 1)`)
		require.NoError(t, err)

		// when
		assignments, err := repo.FindByIds(ctx, []int{1})

		// then
		require.NoError(t, err)
		require.Len(t, assignments, 1)
		assignment := assignments[0]
		assert.Nil(t, assignment.Code.Project)
		assert.True(t, assignment.Code.StartDate.IsZero())
		assert.True(t, assignment.Code.ExpiryDate.IsZero())
	})

	t.Run("should silently skip unknown ids", func(t *testing.T) {
		// given
		ctx, repo, db := setupTestRepository(t)
		_, err := db.Exec(ctx,
			`INSERT INTO billing_code (id, code, start_date, expiry_date, project_id) VALUES (1, 'INT-OVH', NULL, NULL, NULL)`)
		require.NoError(t, err)
		_, err = db.Exec(ctx, `INSERT INTO billing_assignment (id, description, code_id) VALUES (1, 'Internal overhead', 1)`)
		require.NoError(t, err)

		// when
		assignments, err := repo.FindByIds(ctx, []int{1, 42})

		// then
		require.NoError(t, err)
		require.Len(t, assignments, 1)
	})

	t.Run("should return nothing for empty id list without querying", func(t *testing.T) {
		// given
		ctx, repo, _ := setupTestRepository(t)

		// when
		assignments, err := repo.FindByIds(ctx, nil)

		// then
		require.NoError(t, err)
		assert.Empty(t, assignments)
	})
}
