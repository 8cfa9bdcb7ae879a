package week

import (
	"fmt"
	"time"
)

// Reference identifies a calendar week for display purposes. The label is what
// users see in validation messages, e.g. "Week ending 19/12/2025".
type Reference struct {
	Id         int
	WeekEnding time.Time
	Label      string
}

// Label renders the display label for a week-ending date.
func Label(weekEnding time.Time) string {
	return fmt.Sprintf("Week ending %s", weekEnding.Format("02/01/2006"))
}

// StartOfWeek returns the Monday that starts the week ending on the given date.
// Timesheet weeks run Monday to Friday, so the Monday is always four days back.
func StartOfWeek(weekEnding time.Time) time.Time {
	return truncateToDate(weekEnding).AddDate(0, 0, -4)
}

// Window returns the inclusive [monday, friday] span of the week ending on the
// given date.
func Window(weekEnding time.Time) (monday time.Time, friday time.Time) {
	friday = truncateToDate(weekEnding)
	monday = friday.AddDate(0, 0, -4)
	return monday, friday
}

// DayDate resolves a weekday offset (0 = Monday .. 4 = Friday) within the week
// ending on the given date to its calendar date.
func DayDate(weekEnding time.Time, offset int) time.Time {
	return StartOfWeek(weekEnding).AddDate(0, 0, offset)
}

// truncateToDate drops the time-of-day component so that week arithmetic is
// date-only and independent of when during the day a submission happens.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
