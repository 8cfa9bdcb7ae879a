package week

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// GetAll returns every known week reference ordered by week-ending date.
	GetAll(ctx context.Context) ([]Reference, error)
	FindByIds(ctx context.Context, ids []int) ([]Reference, error)
	// Store inserts a week reference, updating the label when the week-ending
	// date already exists.
	Store(ctx context.Context, ref Reference) (Reference, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Reference, error) {
	query := `SELECT id, week_ending, label FROM week_reference ORDER BY week_ending`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		log.Errorf("failed to query week references: %v", err)
		return nil, err
	}
	defer rows.Close()

	var refs []Reference
	for rows.Next() {
		var ref Reference
		var weekEnding time.Time
		if err := rows.Scan(&ref.Id, &weekEnding, &ref.Label); err != nil {
			log.Errorf("failed to scan week reference: %v", err)
			return nil, err
		}
		ref.WeekEnding = weekEnding
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, err
	}
	return refs, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, ref Reference) (Reference, error) {
	query := `INSERT INTO week_reference (week_ending, label) VALUES ($1, $2)
			  ON CONFLICT (week_ending) DO UPDATE SET label = EXCLUDED.label
			  RETURNING id`
	if err := r.db.QueryRow(ctx, query, ref.WeekEnding, ref.Label).Scan(&ref.Id); err != nil {
		log.Errorf("failed to store week reference: %v", err)
		return Reference{}, err
	}
	return ref, nil
}

func (r *RepositoryImpl) FindByIds(ctx context.Context, ids []int) ([]Reference, error) {
	query := `SELECT id, week_ending, label FROM week_reference WHERE id = ANY($1) ORDER BY week_ending`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		log.Errorf("failed to query week references: %v", err)
		return nil, err
	}
	defer rows.Close()

	var refs []Reference
	for rows.Next() {
		var ref Reference
		if err := rows.Scan(&ref.Id, &ref.WeekEnding, &ref.Label); err != nil {
			log.Errorf("failed to scan week reference: %v", err)
			return nil, err
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, err
	}
	return refs, nil
}
