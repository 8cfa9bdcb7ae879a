package timesheet

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stafftrack/stafftrack/internal/utils"
	"github.com/stafftrack/stafftrack/pkg/user"
	"github.com/stafftrack/stafftrack/pkg/validation"
)

type Service interface {
	// Submit validates a week's entries and persists them only when every check
	// passes. An invalid result is returned with a zero Submission and no error;
	// errors are reserved for infrastructure failure.
	Submit(ctx context.Context, entries []Entry, weekEnding time.Time) (Submission, validation.Result, error)
	// Validate runs the submission checks without persisting anything.
	Validate(ctx context.Context, entries []Entry, weekEnding time.Time) (validation.Result, error)
	GetSubmission(ctx context.Context, weekEnding time.Time) (Submission, error)
}

type ServiceImpl struct {
	repo      Repository
	validator *SubmissionValidator
	clock     utils.Clock
}

func NewService(repo Repository, validator *SubmissionValidator, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, validator: validator, clock: clock}
}

func (s *ServiceImpl) Submit(ctx context.Context, entries []Entry, weekEnding time.Time) (Submission, validation.Result, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Submission{}, validation.Result{}, fmt.Errorf("failed to get current user: %w", err)
	}

	result, err := s.validator.Validate(ctx, entries, weekEnding)
	if err != nil {
		return Submission{}, validation.Result{}, err
	}
	if !result.IsValid() {
		log.Debugf("timesheet for user %d week %s rejected with %d errors",
			userId, weekEnding.Format("2006-01-02"), len(result.Errors))
		return Submission{}, result, nil
	}

	submission := Submission{
		WeekEnding:  weekEnding,
		Entries:     entries,
		SubmittedAt: s.clock.Now(),
	}
	stored, err := s.repo.StoreSubmission(ctx, userId, submission)
	if err != nil {
		return Submission{}, validation.Result{}, err
	}
	return stored, result, nil
}

func (s *ServiceImpl) Validate(ctx context.Context, entries []Entry, weekEnding time.Time) (validation.Result, error) {
	return s.validator.Validate(ctx, entries, weekEnding)
}

func (s *ServiceImpl) GetSubmission(ctx context.Context, weekEnding time.Time) (Submission, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Submission{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetByWeek(ctx, userId, weekEnding)
}
