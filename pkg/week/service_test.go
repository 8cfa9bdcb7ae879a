package week

import (
	"context"
	"testing"
	"time"

	"github.com/stafftrack/stafftrack/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceImpl_EnsureHorizon(t *testing.T) {
	t.Run("creates references for every Friday of the horizon", func(t *testing.T) {
		repo := NewRepositoryStub()
		clock := &utils.MockClock{FixedNow: time.Date(2025, 12, 17, 10, 0, 0, 0, time.UTC)} // a Wednesday
		service := NewService(repo, clock)

		err := service.EnsureHorizon(context.Background(), 3)
		require.NoError(t, err)

		refs, err := repo.GetAll(context.Background())
		require.NoError(t, err)
		require.Len(t, refs, 3)

		endings := map[string]bool{}
		for _, ref := range refs {
			endings[ref.WeekEnding.Format("2006-01-02")] = true
			assert.Equal(t, Label(ref.WeekEnding), ref.Label)
		}
		assert.True(t, endings["2025-12-19"])
		assert.True(t, endings["2025-12-26"])
		assert.True(t, endings["2026-01-02"])
	})

	t.Run("running twice does not duplicate references", func(t *testing.T) {
		repo := NewRepositoryStub()
		clock := &utils.MockClock{FixedNow: time.Date(2025, 12, 19, 8, 0, 0, 0, time.UTC)} // a Friday
		service := NewService(repo, clock)

		require.NoError(t, service.EnsureHorizon(context.Background(), 4))
		require.NoError(t, service.EnsureHorizon(context.Background(), 4))

		refs, err := repo.GetAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, refs, 4)
	})
}
