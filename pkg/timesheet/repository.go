package timesheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrSubmissionNotFound = errors.New("timesheet submission not found")
var ErrAlreadySubmitted = errors.New("timesheet already submitted for week")

type Repository interface {
	// StoreSubmission persists a validated week of entries atomically.
	StoreSubmission(ctx context.Context, userId int, submission Submission) (Submission, error)
	GetByWeek(ctx context.Context, userId int, weekEnding time.Time) (Submission, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreSubmission(ctx context.Context, userId int, submission Submission) (Submission, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Submission{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	var existing int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM timesheet WHERE user_id = $1 AND week_ending = $2`,
		userId, submission.WeekEnding).Scan(&existing)
	if err != nil {
		log.Errorf("failed to check existing submission: %v", err)
		return Submission{}, err
	}
	if existing > 0 {
		return Submission{}, ErrAlreadySubmitted
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO timesheet (user_id, week_ending, submitted_at) VALUES ($1, $2, $3) RETURNING id`,
		userId, submission.WeekEnding, submission.SubmittedAt).Scan(&submission.Id)
	if err != nil {
		log.Errorf("failed to store timesheet: %v", err)
		return Submission{}, err
	}

	for _, entry := range submission.Entries {
		_, err := tx.Exec(ctx,
			`INSERT INTO timesheet_entry (timesheet_id, billing_assignment_id, mon, tue, wed, thu, fri)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			submission.Id,
			entry.BillingAssignmentId,
			entry.Hours.Mon,
			entry.Hours.Tue,
			entry.Hours.Wed,
			entry.Hours.Thu,
			entry.Hours.Fri,
		)
		if err != nil {
			log.Errorf("failed to store timesheet entry: %v", err)
			return Submission{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Submission{}, fmt.Errorf("commit transaction: %w", err)
	}
	return submission, nil
}

func (r *RepositoryImpl) GetByWeek(ctx context.Context, userId int, weekEnding time.Time) (Submission, error) {
	var submission Submission
	err := r.db.QueryRow(ctx,
		`SELECT id, week_ending, submitted_at FROM timesheet WHERE user_id = $1 AND week_ending = $2`,
		userId, weekEnding).Scan(&submission.Id, &submission.WeekEnding, &submission.SubmittedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Submission{}, ErrSubmissionNotFound
	} else if err != nil {
		log.Errorf("failed to get timesheet: %v", err)
		return Submission{}, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT billing_assignment_id, mon, tue, wed, thu, fri
		 FROM timesheet_entry WHERE timesheet_id = $1 ORDER BY billing_assignment_id`,
		submission.Id)
	if err != nil {
		log.Errorf("failed to query timesheet entries: %v", err)
		return Submission{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry Entry
		if err := rows.Scan(
			&entry.BillingAssignmentId,
			&entry.Hours.Mon,
			&entry.Hours.Tue,
			&entry.Hours.Wed,
			&entry.Hours.Thu,
			&entry.Hours.Fri,
		); err != nil {
			log.Errorf("failed to scan timesheet entry: %v", err)
			return Submission{}, err
		}
		submission.Entries = append(submission.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return Submission{}, err
	}
	return submission, nil
}
