package forecast

import (
	"sort"

	"github.com/stafftrack/stafftrack/pkg/validation"
	"github.com/stafftrack/stafftrack/pkg/week"
)

// BalanceValidator checks that every week touched by a proposed allocation edit
// still sums to exactly StandardWeekHours across all of a person's allocations.
// It is stateless; a validator value can be shared freely.
type BalanceValidator struct{}

func NewBalanceValidator() *BalanceValidator {
	return &BalanceValidator{}
}

// ValidateWeeklyHours evaluates a proposed set of weekly hours against all
// existing allocations for the same person.
//
// When editing an existing allocation, editingId identifies it so its current
// hours are excluded from the totals (the proposal replaces them). An
// editingId of 0 means a new allocation is being created and nothing is
// excluded.
//
// Two passes run:
//  1. every proposed week with hours > 0 must land on exactly 40h in total;
//  2. every untouched week whose existing total is non-zero and not 40h is
//     reported as well, so an edit never silently masks an unrelated week
//     that is already out of balance.
//
// Weeks proposed with 0 hours are exempt from both passes: a zero contribution
// cannot newly break a week, and the week counts as touched.
func (v *BalanceValidator) ValidateWeeklyHours(
	existing []Allocation,
	proposed map[int]float64,
	weekRefs []week.Reference,
	editingId int,
) validation.Result {
	currentTotals := map[int]float64{}
	for _, allocation := range existing {
		if editingId != 0 && allocation.Id == editingId {
			continue
		}
		for weekId, hours := range allocation.WeeklyHours {
			currentTotals[weekId] += hours
		}
	}

	labels := map[int]string{}
	for _, ref := range weekRefs {
		labels[ref.Id] = ref.Label
	}

	var errs []validation.Error
	for _, weekId := range sortedKeys(proposed) {
		newHours := proposed[weekId]
		if newHours <= 0 {
			continue
		}
		finalTotal := currentTotals[weekId] + newHours
		if finalTotal != StandardWeekHours {
			errs = append(errs, validation.WeeklyBalanceError{
				WeekId:       weekId,
				WeekLabel:    labels[weekId],
				CurrentTotal: currentTotals[weekId],
				NewHours:     newHours,
				FinalTotal:   finalTotal,
			})
		}
	}

	for _, weekId := range sortedKeys(currentTotals) {
		if _, touched := proposed[weekId]; touched {
			continue
		}
		total := currentTotals[weekId]
		if total != 0 && total != StandardWeekHours {
			errs = append(errs, validation.WeeklyBalanceError{
				WeekId:       weekId,
				WeekLabel:    labels[weekId],
				CurrentTotal: total,
				NewHours:     0,
				FinalTotal:   total,
			})
		}
	}

	return validation.Result{Errors: errs}
}

func sortedKeys(m map[int]float64) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
