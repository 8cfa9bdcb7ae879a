package forecast

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrAllocationNotFound = errors.New("forecast allocation not found")

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	GetAllForUser(ctx context.Context, userId int) ([]Allocation, error)
	GetById(ctx context.Context, userId int, id int) (Allocation, error)
	Store(ctx context.Context, userId int, allocation Allocation) (Allocation, error)
	// Update replaces the allocation's weekly hours with the given set.
	Update(ctx context.Context, userId int, allocation Allocation) (Allocation, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
}

type repositoryImpl struct {
	db *pgxpool.Pool
	tx pgx.Tx
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repositoryImpl{db: db}
}

// getQueryer returns the appropriate database interface for queries (either tx or pool)
func (r *repositoryImpl) getQueryer() interface {
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// The Rollback will be a no-op if the transaction was already committed
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	txRepo := &repositoryImpl{db: r.db, tx: tx}
	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *repositoryImpl) GetAllForUser(ctx context.Context, userId int) ([]Allocation, error) {
	query := `SELECT a.id, a.billing_assignment_id, w.week_id, w.hours
			  FROM forecast_allocation a
			  LEFT JOIN forecast_allocation_week w ON w.allocation_id = a.id
			  WHERE a.user_id = $1
			  ORDER BY a.id`
	rows, err := r.getQueryer().Query(ctx, query, userId)
	if err != nil {
		log.Errorf("failed to query forecast allocations: %v", err)
		return nil, err
	}
	defer rows.Close()

	byId := map[int]*Allocation{}
	var order []int
	for rows.Next() {
		var id, billingAssignmentId int
		var weekId *int
		var hours *float64
		if err := rows.Scan(&id, &billingAssignmentId, &weekId, &hours); err != nil {
			log.Errorf("failed to scan forecast allocation: %v", err)
			return nil, err
		}
		allocation, ok := byId[id]
		if !ok {
			allocation = &Allocation{
				Id:                  id,
				BillingAssignmentId: billingAssignmentId,
				WeeklyHours:         map[int]float64{},
			}
			byId[id] = allocation
			order = append(order, id)
		}
		if weekId != nil && hours != nil {
			allocation.WeeklyHours[*weekId] = *hours
		}
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, err
	}

	allocations := make([]Allocation, 0, len(order))
	for _, id := range order {
		allocations = append(allocations, *byId[id])
	}
	return allocations, nil
}

func (r *repositoryImpl) GetById(ctx context.Context, userId int, id int) (Allocation, error) {
	query := `SELECT a.id, a.billing_assignment_id, w.week_id, w.hours
			  FROM forecast_allocation a
			  LEFT JOIN forecast_allocation_week w ON w.allocation_id = a.id
			  WHERE a.user_id = $1 AND a.id = $2`
	rows, err := r.getQueryer().Query(ctx, query, userId, id)
	if err != nil {
		log.Errorf("failed to query forecast allocation: %v", err)
		return Allocation{}, err
	}
	defer rows.Close()

	allocation := Allocation{WeeklyHours: map[int]float64{}}
	found := false
	for rows.Next() {
		var weekId *int
		var hours *float64
		if err := rows.Scan(&allocation.Id, &allocation.BillingAssignmentId, &weekId, &hours); err != nil {
			log.Errorf("failed to scan forecast allocation: %v", err)
			return Allocation{}, err
		}
		found = true
		if weekId != nil && hours != nil {
			allocation.WeeklyHours[*weekId] = *hours
		}
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return Allocation{}, err
	}
	if !found {
		return Allocation{}, ErrAllocationNotFound
	}
	return allocation, nil
}

func (r *repositoryImpl) Store(ctx context.Context, userId int, allocation Allocation) (Allocation, error) {
	query := `INSERT INTO forecast_allocation (user_id, billing_assignment_id) VALUES ($1, $2) RETURNING id`
	var id int
	if err := r.getQueryer().QueryRow(ctx, query, userId, allocation.BillingAssignmentId).Scan(&id); err != nil {
		log.Errorf("failed to store forecast allocation: %v", err)
		return Allocation{}, err
	}
	allocation.Id = id
	if err := r.storeWeeklyHours(ctx, allocation); err != nil {
		return Allocation{}, err
	}
	return allocation, nil
}

func (r *repositoryImpl) Update(ctx context.Context, userId int, allocation Allocation) (Allocation, error) {
	tag, err := r.getQueryer().Exec(ctx,
		`UPDATE forecast_allocation SET billing_assignment_id = $1 WHERE id = $2 AND user_id = $3`,
		allocation.BillingAssignmentId, allocation.Id, userId)
	if err != nil {
		log.Errorf("failed to update forecast allocation: %v", err)
		return Allocation{}, err
	}
	if tag.RowsAffected() == 0 {
		return Allocation{}, ErrAllocationNotFound
	}
	if _, err := r.getQueryer().Exec(ctx,
		`DELETE FROM forecast_allocation_week WHERE allocation_id = $1`, allocation.Id); err != nil {
		log.Errorf("failed to clear forecast allocation weeks: %v", err)
		return Allocation{}, err
	}
	if err := r.storeWeeklyHours(ctx, allocation); err != nil {
		return Allocation{}, err
	}
	return allocation, nil
}

func (r *repositoryImpl) storeWeeklyHours(ctx context.Context, allocation Allocation) error {
	for weekId, hours := range allocation.WeeklyHours {
		if hours == 0 {
			continue
		}
		_, err := r.getQueryer().Exec(ctx,
			`INSERT INTO forecast_allocation_week (allocation_id, week_id, hours) VALUES ($1, $2, $3)`,
			allocation.Id, weekId, hours)
		if err != nil {
			log.Errorf("failed to store forecast allocation week: %v", err)
			return err
		}
	}
	return nil
}

func (r *repositoryImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	tag, err := r.getQueryer().Exec(ctx,
		`DELETE FROM forecast_allocation WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		log.Errorf("failed to delete forecast allocation: %v", err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
