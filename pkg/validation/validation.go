package validation

import (
	"fmt"
	"time"
)

// ErrorCode identifies a violation kind so clients can map it to their own messaging.
type ErrorCode string

const (
	CodeEmptySubmission ErrorCode = "EMPTY_SUBMISSION"
	CodeWeeklyBalance   ErrorCode = "WEEKLY_BALANCE"
	CodeProjectInactive ErrorCode = "PROJECT_INACTIVE"
	CodeBeforeStartDate ErrorCode = "BEFORE_START_DATE"
	CodeExpiredCode     ErrorCode = "CODE_EXPIRED"
	CodeDuplicateEntry  ErrorCode = "DUPLICATE_ENTRY"
)

// Error is one business-rule violation found during a validation pass.
// It is a closed set: only the types in this package implement it.
type Error interface {
	Code() ErrorCode
	Message() string

	sealed()
}

// Result aggregates every violation found during a single validation call.
// A Result with no errors means the proposal may be committed.
type Result struct {
	Errors []Error
}

func (r Result) IsValid() bool {
	return len(r.Errors) == 0
}

// Invalid builds a Result from the given violations.
func Invalid(errs ...Error) Result {
	return Result{Errors: errs}
}

// Valid is a Result without violations.
func Valid() Result {
	return Result{}
}

// EmptySubmissionError means no entry in the submission had any hours logged.
type EmptySubmissionError struct{}

func (e EmptySubmissionError) Code() ErrorCode { return CodeEmptySubmission }
func (e EmptySubmissionError) Message() string {
	return "timesheet must contain at least one entry with logged hours"
}
func (e EmptySubmissionError) sealed() {}

// WeeklyBalanceError means the grand total of forecast hours for a week does not
// equal the standard work week.
type WeeklyBalanceError struct {
	WeekId       int
	WeekLabel    string
	CurrentTotal float64
	NewHours     float64
	FinalTotal   float64
}

func (e WeeklyBalanceError) Code() ErrorCode { return CodeWeeklyBalance }
func (e WeeklyBalanceError) Message() string {
	return fmt.Sprintf("%s is allocated %gh in total, expected 40h", e.WeekLabel, e.FinalTotal)
}
func (e WeeklyBalanceError) sealed() {}

// ProjectInactiveError means hours were logged against a billing assignment whose
// project is no longer active.
type ProjectInactiveError struct {
	AssignmentId int
	ProjectName  string
}

func (e ProjectInactiveError) Code() ErrorCode { return CodeProjectInactive }
func (e ProjectInactiveError) Message() string {
	return fmt.Sprintf("project %q is not active", e.ProjectName)
}
func (e ProjectInactiveError) sealed() {}

// BeforeStartDateError means hours were logged on a date before the billing code
// becomes valid.
type BeforeStartDateError struct {
	AssignmentId int
	Date         time.Time
	StartDate    time.Time
}

func (e BeforeStartDateError) Code() ErrorCode { return CodeBeforeStartDate }
func (e BeforeStartDateError) Message() string {
	return fmt.Sprintf("hours logged on %s are before the code start date %s",
		e.Date.Format("02/01/2006"), e.StartDate.Format("02/01/2006"))
}
func (e BeforeStartDateError) sealed() {}

// ExpiredCodeError means hours were logged on a date after the billing code expired.
type ExpiredCodeError struct {
	AssignmentId int
	Date         time.Time
	ExpiryDate   time.Time
}

func (e ExpiredCodeError) Code() ErrorCode { return CodeExpiredCode }
func (e ExpiredCodeError) Message() string {
	return fmt.Sprintf("hours logged on %s are after the code expiry date %s",
		e.Date.Format("02/01/2006"), e.ExpiryDate.Format("02/01/2006"))
}
func (e ExpiredCodeError) sealed() {}

// DuplicateEntryError means more than one logged day resolved to the same calendar
// date for a single billing assignment.
type DuplicateEntryError struct {
	AssignmentId int
	Date         time.Time
}

func (e DuplicateEntryError) Code() ErrorCode { return CodeDuplicateEntry }
func (e DuplicateEntryError) Message() string {
	return fmt.Sprintf("multiple entries logged on %s", e.Date.Format("02/01/2006"))
}
func (e DuplicateEntryError) sealed() {}
