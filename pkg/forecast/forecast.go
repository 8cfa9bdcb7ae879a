package forecast

// StandardWeekHours is the exact number of hours a fully allocated work week
// must sum to. Forecasts model full-time allocation, so the total is neither
// "at least" nor "at most" 40 but exactly 40.
const StandardWeekHours = 40.0

// Allocation is a person's planned hours against a billing assignment,
// expressed as per-week totals keyed by week reference id.
type Allocation struct {
	Id                  int
	BillingAssignmentId int
	// WeeklyHours maps week reference id to planned hours. Hours are never
	// negative; a missing week contributes nothing.
	WeeklyHours map[int]float64
}

// HoursForWeek returns the allocation's contribution to the given week.
func (a Allocation) HoursForWeek(weekId int) float64 {
	return a.WeeklyHours[weekId]
}
