package forecast

import (
	"testing"

	"github.com/stafftrack/stafftrack/pkg/validation"
	"github.com/stafftrack/stafftrack/pkg/week"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var weekRefs = []week.Reference{
	{Id: 5, Label: "Week ending 05/12/2025"},
	{Id: 6, Label: "Week ending 12/12/2025"},
	{Id: 7, Label: "Week ending 19/12/2025"},
}

func TestBalanceValidator_ValidateWeeklyHours(t *testing.T) {
	validator := NewBalanceValidator()

	t.Run("proposal completing a week to exactly 40h is valid", func(t *testing.T) {
		existing := []Allocation{
			{Id: 1, WeeklyHours: map[int]float64{5: 32}},
		}
		proposed := map[int]float64{5: 8}

		result := validator.ValidateWeeklyHours(existing, proposed, weekRefs, 0)

		assert.True(t, result.IsValid())
		assert.Empty(t, result.Errors)
	})

	t.Run("proposal leaving a week short produces one balance error", func(t *testing.T) {
		existing := []Allocation{
			{Id: 1, WeeklyHours: map[int]float64{5: 32}},
		}
		proposed := map[int]float64{5: 5}

		result := validator.ValidateWeeklyHours(existing, proposed, weekRefs, 0)

		require.Len(t, result.Errors, 1)
		balanceErr, ok := result.Errors[0].(validation.WeeklyBalanceError)
		require.True(t, ok)
		assert.Equal(t, 5, balanceErr.WeekId)
		assert.Equal(t, "Week ending 05/12/2025", balanceErr.WeekLabel)
		assert.Equal(t, 32.0, balanceErr.CurrentTotal)
		assert.Equal(t, 5.0, balanceErr.NewHours)
		assert.Equal(t, 37.0, balanceErr.FinalTotal)
	})

	t.Run("proposal overshooting a week produces one balance error", func(t *testing.T) {
		existing := []Allocation{
			{Id: 1, WeeklyHours: map[int]float64{5: 32}},
		}
		proposed := map[int]float64{5: 16}

		result := validator.ValidateWeeklyHours(existing, proposed, weekRefs, 0)

		require.Len(t, result.Errors, 1)
		balanceErr := result.Errors[0].(validation.WeeklyBalanceError)
		assert.Equal(t, 48.0, balanceErr.FinalTotal)
	})

	t.Run("untouched week with broken total is surfaced with zero new hours", func(t *testing.T) {
		existing := []Allocation{
			{Id: 1, WeeklyHours: map[int]float64{5: 32, 6: 25}},
		}
		proposed := map[int]float64{5: 8}

		result := validator.ValidateWeeklyHours(existing, proposed, weekRefs, 0)

		require.Len(t, result.Errors, 1)
		balanceErr := result.Errors[0].(validation.WeeklyBalanceError)
		assert.Equal(t, 6, balanceErr.WeekId)
		assert.Equal(t, 0.0, balanceErr.NewHours)
		assert.Equal(t, 25.0, balanceErr.CurrentTotal)
		assert.Equal(t, 25.0, balanceErr.FinalTotal)
	})

	t.Run("untouched balanced and empty weeks produce no errors", func(t *testing.T) {
		existing := []Allocation{
			{Id: 1, WeeklyHours: map[int]float64{6: 40, 7: 0}},
		}
		proposed := map[int]float64{5: 40}

		result := validator.ValidateWeeklyHours(existing, proposed, weekRefs, 0)

		assert.True(t, result.IsValid())
	})

	t.Run("week touched with zero hours is exempt from both passes", func(t *testing.T) {
		existing := []Allocation{
			{Id: 1, WeeklyHours: map[int]float64{5: 25}},
		}
		// Week 5 stays broken (25h), but the proposal contributes 0h to it,
		// so it counts as touched and pass two skips it too.
		proposed := map[int]float64{5: 0, 6: 40}

		result := validator.ValidateWeeklyHours(existing, proposed, weekRefs, 0)

		assert.True(t, result.IsValid())
	})

	t.Run("editing excludes the edited allocation from current totals", func(t *testing.T) {
		existing := []Allocation{
			{Id: 1, WeeklyHours: map[int]float64{5: 32}},
			{Id: 2, WeeklyHours: map[int]float64{5: 8}},
		}
		// Replacing allocation 2's 8h with a new 8h keeps week 5 at 40h.
		proposed := map[int]float64{5: 8}

		result := validator.ValidateWeeklyHours(existing, proposed, weekRefs, 2)

		assert.True(t, result.IsValid())
	})

	t.Run("creating does not exclude any allocation", func(t *testing.T) {
		existing := []Allocation{
			{Id: 1, WeeklyHours: map[int]float64{5: 32}},
			{Id: 2, WeeklyHours: map[int]float64{5: 8}},
		}
		proposed := map[int]float64{5: 8}

		result := validator.ValidateWeeklyHours(existing, proposed, weekRefs, 0)

		require.Len(t, result.Errors, 1)
		balanceErr := result.Errors[0].(validation.WeeklyBalanceError)
		assert.Equal(t, 48.0, balanceErr.FinalTotal)
	})

	t.Run("each broken week produces exactly one error", func(t *testing.T) {
		existing := []Allocation{
			{Id: 1, WeeklyHours: map[int]float64{5: 10, 6: 12}},
			{Id: 2, WeeklyHours: map[int]float64{5: 10, 7: 18}},
		}
		proposed := map[int]float64{5: 10, 6: 10}

		result := validator.ValidateWeeklyHours(existing, proposed, weekRefs, 0)

		require.Len(t, result.Errors, 3)
		weekIds := make([]int, 0, 3)
		for _, e := range result.Errors {
			weekIds = append(weekIds, e.(validation.WeeklyBalanceError).WeekId)
		}
		assert.Equal(t, []int{5, 6, 7}, weekIds)
	})

	t.Run("validation is idempotent", func(t *testing.T) {
		existing := []Allocation{
			{Id: 1, WeeklyHours: map[int]float64{5: 32, 6: 25}},
		}
		proposed := map[int]float64{5: 5}

		first := validator.ValidateWeeklyHours(existing, proposed, weekRefs, 0)
		second := validator.ValidateWeeklyHours(existing, proposed, weekRefs, 0)

		assert.Equal(t, first, second)
	})

	t.Run("no existing allocations and no proposal is valid", func(t *testing.T) {
		result := validator.ValidateWeeklyHours(nil, map[int]float64{}, weekRefs, 0)

		assert.True(t, result.IsValid())
	})
}
