package billing

import "time"

// Project is the client engagement a billing code belongs to. Inactive projects
// no longer accept logged hours.
type Project struct {
	Id     int
	Name   string
	Active bool
}

// Code is the validity-windowed billing entity. A zero StartDate or ExpiryDate
// means the window is open on that side.
type Code struct {
	Id         int
	Code       string
	StartDate  time.Time
	ExpiryDate time.Time
	// Project is nil for codes not tied to a project (e.g. internal codes).
	Project *Project
}

// Assignment is a billable line item timesheet entries and forecast allocations
// reference. It always resolves to a Code and, through it, optionally a Project.
type Assignment struct {
	Id          int
	Description string
	Code        Code
}

// AllowsDate reports whether hours may be logged against the code on the given
// calendar date.
func (c Code) AllowsDate(date time.Time) bool {
	if !c.StartDate.IsZero() && date.Before(c.StartDate) {
		return false
	}
	if !c.ExpiryDate.IsZero() && date.After(c.ExpiryDate) {
		return false
	}
	return true
}
