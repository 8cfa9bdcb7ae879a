package forecast

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/stafftrack/stafftrack/pkg/user"
	"github.com/stafftrack/stafftrack/pkg/validation"
	"github.com/stafftrack/stafftrack/pkg/week"
)

type Service interface {
	GetAllocations(ctx context.Context) ([]Allocation, error)
	// CreateAllocation validates the proposed weekly hours against the user's
	// existing allocations and persists the allocation only when the result is
	// valid. An invalid result is returned with a zero Allocation and no error.
	CreateAllocation(ctx context.Context, billingAssignmentId int, weeklyHours map[int]float64) (Allocation, validation.Result, error)
	UpdateAllocation(ctx context.Context, id int, weeklyHours map[int]float64) (Allocation, validation.Result, error)
	DeleteAllocation(ctx context.Context, id int) (bool, error)
	// ValidateProposal runs the weekly balance check without persisting anything,
	// so clients can validate as the user types. An editingId of 0 means a new
	// allocation.
	ValidateProposal(ctx context.Context, editingId int, weeklyHours map[int]float64) (validation.Result, error)
}

// WeekReader supplies week references for labelling balance errors.
type WeekReader interface {
	GetAll(ctx context.Context) ([]week.Reference, error)
}

type ServiceImpl struct {
	repo      Repository
	weeks     WeekReader
	validator *BalanceValidator
}

func NewService(repo Repository, weeks WeekReader) *ServiceImpl {
	return &ServiceImpl{repo: repo, weeks: weeks, validator: NewBalanceValidator()}
}

func (s *ServiceImpl) GetAllocations(ctx context.Context) ([]Allocation, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAllForUser(ctx, userId)
}

func (s *ServiceImpl) CreateAllocation(
	ctx context.Context,
	billingAssignmentId int,
	weeklyHours map[int]float64,
) (Allocation, validation.Result, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Allocation{}, validation.Result{}, fmt.Errorf("failed to get current user: %w", err)
	}

	result, err := s.ValidateProposal(ctx, 0, weeklyHours)
	if err != nil {
		return Allocation{}, validation.Result{}, err
	}
	if !result.IsValid() {
		log.Debugf("forecast allocation for user %d rejected with %d errors", userId, len(result.Errors))
		return Allocation{}, result, nil
	}

	allocation := Allocation{BillingAssignmentId: billingAssignmentId, WeeklyHours: weeklyHours}
	var created Allocation
	err = s.repo.WithTransaction(ctx, func(repo Repository) error {
		var txErr error
		created, txErr = repo.Store(ctx, userId, allocation)
		return txErr
	})
	if err != nil {
		return Allocation{}, validation.Result{}, fmt.Errorf("failed to store forecast allocation: %w", err)
	}
	return created, result, nil
}

func (s *ServiceImpl) UpdateAllocation(
	ctx context.Context,
	id int,
	weeklyHours map[int]float64,
) (Allocation, validation.Result, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Allocation{}, validation.Result{}, fmt.Errorf("failed to get current user: %w", err)
	}

	existing, err := s.repo.GetById(ctx, userId, id)
	if err != nil {
		return Allocation{}, validation.Result{}, err
	}

	result, err := s.ValidateProposal(ctx, id, weeklyHours)
	if err != nil {
		return Allocation{}, validation.Result{}, err
	}
	if !result.IsValid() {
		log.Debugf("forecast allocation %d update rejected with %d errors", id, len(result.Errors))
		return Allocation{}, result, nil
	}

	existing.WeeklyHours = weeklyHours
	var updated Allocation
	err = s.repo.WithTransaction(ctx, func(repo Repository) error {
		var txErr error
		updated, txErr = repo.Update(ctx, userId, existing)
		return txErr
	})
	if err != nil {
		return Allocation{}, validation.Result{}, fmt.Errorf("failed to update forecast allocation: %w", err)
	}
	return updated, result, nil
}

func (s *ServiceImpl) DeleteAllocation(ctx context.Context, id int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("forecast allocation not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", id, userId)
	}
	return deleted, nil
}

func (s *ServiceImpl) ValidateProposal(ctx context.Context, editingId int, weeklyHours map[int]float64) (validation.Result, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to get current user: %w", err)
	}
	existing, err := s.repo.GetAllForUser(ctx, userId)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to get forecast allocations: %w", err)
	}
	weekRefs, err := s.weeks.GetAll(ctx)
	if err != nil {
		return validation.Result{}, fmt.Errorf("failed to get week references: %w", err)
	}
	return s.validator.ValidateWeeklyHours(existing, weeklyHours, weekRefs, editingId), nil
}
