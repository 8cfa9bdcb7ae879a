package billing

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// FindByIds resolves billing assignments together with their code and project
	// metadata in a single query. Ids without a matching row are simply absent
	// from the result.
	FindByIds(ctx context.Context, ids []int) ([]Assignment, error)
	GetAll(ctx context.Context) ([]Assignment, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const assignmentQuery = `
	SELECT
		ba.id,
		ba.description,
		bc.id,
		bc.code,
		bc.start_date,
		bc.expiry_date,
		p.id,
		p.name,
		p.active
	FROM billing_assignment ba
	JOIN billing_code bc ON bc.id = ba.code_id
	LEFT JOIN project p ON p.id = bc.project_id`

func (r *RepositoryImpl) FindByIds(ctx context.Context, ids []int) ([]Assignment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, assignmentQuery+" WHERE ba.id = ANY($1) ORDER BY ba.id", ids)
	if err != nil {
		log.Errorf("failed to query billing assignments: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Assignment, error) {
	rows, err := r.db.Query(ctx, assignmentQuery+" ORDER BY ba.id")
	if err != nil {
		log.Errorf("failed to query billing assignments: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func scanAssignments(rows pgx.Rows) ([]Assignment, error) {
	var assignments []Assignment
	for rows.Next() {
		var a Assignment
		var startDate, expiryDate sql.NullTime
		var projectId sql.NullInt64
		var projectName sql.NullString
		var projectActive sql.NullBool
		if err := rows.Scan(
			&a.Id,
			&a.Description,
			&a.Code.Id,
			&a.Code.Code,
			&startDate,
			&expiryDate,
			&projectId,
			&projectName,
			&projectActive,
		); err != nil {
			log.Errorf("failed to scan billing assignment: %v", err)
			return nil, err
		}
		if startDate.Valid {
			a.Code.StartDate = dateOnly(startDate.Time)
		}
		if expiryDate.Valid {
			a.Code.ExpiryDate = dateOnly(expiryDate.Time)
		}
		if projectId.Valid {
			a.Code.Project = &Project{
				Id:     int(projectId.Int64),
				Name:   projectName.String,
				Active: projectActive.Bool,
			}
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, err
	}
	return assignments, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
