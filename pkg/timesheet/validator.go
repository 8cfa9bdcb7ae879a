package timesheet

import (
	"context"
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stafftrack/stafftrack/pkg/billing"
	"github.com/stafftrack/stafftrack/pkg/validation"
	"github.com/stafftrack/stafftrack/pkg/week"
)

// AssignmentLookup is the single I/O dependency of the submission validator:
// a batched resolve of billing assignments to their code/project metadata.
type AssignmentLookup interface {
	FindByIds(ctx context.Context, ids []int) ([]billing.Assignment, error)
}

// SubmissionValidator decides whether a week's set of timesheet entries may be
// submitted. All business-rule violations are returned inside the Result; the
// returned error is reserved for infrastructure failure of the lookup, which
// callers must not confuse with "invalid" (let alone "valid").
type SubmissionValidator struct {
	lookup AssignmentLookup
}

func NewSubmissionValidator(lookup AssignmentLookup) *SubmissionValidator {
	return &SubmissionValidator{lookup: lookup}
}

// Validate runs every submission check and aggregates all violations found,
// rather than stopping at the first. The only short-circuit is an entirely
// empty submission, which makes every downstream check meaningless.
func (v *SubmissionValidator) Validate(ctx context.Context, entries []Entry, weekEnding time.Time) (validation.Result, error) {
	if !hasLoggedHours(entries) {
		return validation.Invalid(validation.EmptySubmissionError{}), nil
	}

	ids := distinctAssignmentIds(entries)
	assignments, err := v.lookup.FindByIds(ctx, ids)
	if err != nil {
		log.Errorf("failed to resolve billing assignments: %v", err)
		return validation.Result{}, fmt.Errorf("failed to resolve billing assignments: %w", err)
	}
	byId := map[int]billing.Assignment{}
	for _, a := range assignments {
		byId[a.Id] = a
	}

	monday := week.StartOfWeek(weekEnding)

	var errs []validation.Error
	for _, entry := range entries {
		if entry.Hours.Total() <= 0 {
			continue
		}
		assignment, ok := byId[entry.BillingAssignmentId]
		if !ok {
			// No code context to validate against; ids that do not resolve are
			// skipped rather than flagged.
			log.Debugf("billing assignment %d not found, skipping date checks", entry.BillingAssignmentId)
			continue
		}
		errs = append(errs, v.validateEntry(entry, assignment, monday)...)
	}

	return validation.Result{Errors: errs}, nil
}

func (v *SubmissionValidator) validateEntry(entry Entry, assignment billing.Assignment, monday time.Time) []validation.Error {
	var errs []validation.Error

	// Fires once per assignment, independent of which days carry hours.
	if project := assignment.Code.Project; project != nil && !project.Active {
		errs = append(errs, validation.ProjectInactiveError{
			AssignmentId: assignment.Id,
			ProjectName:  project.Name,
		})
	}

	dateCounts := map[time.Time]int{}
	for offset, hours := range entry.Hours.ByOffset() {
		if hours <= 0 {
			continue
		}
		dateCounts[monday.AddDate(0, 0, offset)]++
	}

	for _, date := range sortedDates(dateCounts) {
		if dateCounts[date] > 1 {
			errs = append(errs, validation.DuplicateEntryError{
				AssignmentId: assignment.Id,
				Date:         date,
			})
		}
		if !assignment.Code.StartDate.IsZero() && date.Before(assignment.Code.StartDate) {
			errs = append(errs, validation.BeforeStartDateError{
				AssignmentId: assignment.Id,
				Date:         date,
				StartDate:    assignment.Code.StartDate,
			})
		}
		if !assignment.Code.ExpiryDate.IsZero() && date.After(assignment.Code.ExpiryDate) {
			errs = append(errs, validation.ExpiredCodeError{
				AssignmentId: assignment.Id,
				Date:         date,
				ExpiryDate:   assignment.Code.ExpiryDate,
			})
		}
	}

	return errs
}

func hasLoggedHours(entries []Entry) bool {
	for _, entry := range entries {
		if entry.Hours.Total() > 0 {
			return true
		}
	}
	return false
}

func distinctAssignmentIds(entries []Entry) []int {
	seen := map[int]bool{}
	var ids []int
	for _, entry := range entries {
		if entry.Hours.Total() <= 0 || seen[entry.BillingAssignmentId] {
			continue
		}
		seen[entry.BillingAssignmentId] = true
		ids = append(ids, entry.BillingAssignmentId)
	}
	sort.Ints(ids)
	return ids
}

func sortedDates(counts map[time.Time]int) []time.Time {
	dates := make([]time.Time, 0, len(counts))
	for date := range counts {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
