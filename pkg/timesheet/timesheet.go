package timesheet

import "time"

// DailyHours holds the hours logged per weekday of a Monday-to-Friday week.
type DailyHours struct {
	Mon float64
	Tue float64
	Wed float64
	Thu float64
	Fri float64
}

// ByOffset returns the hours indexed by weekday offset (0 = Monday .. 4 = Friday).
func (d DailyHours) ByOffset() [5]float64 {
	return [5]float64{d.Mon, d.Tue, d.Wed, d.Thu, d.Fri}
}

func (d DailyHours) Total() float64 {
	return d.Mon + d.Tue + d.Wed + d.Thu + d.Fri
}

// Entry is one week's logged hours against a single billing assignment.
type Entry struct {
	BillingAssignmentId int
	Hours               DailyHours
}

// Submission is a full week of entries as stored after a successful validation.
type Submission struct {
	Id          int
	WeekEnding  time.Time
	Entries     []Entry
	SubmittedAt time.Time
}
