package repository

import (
	"context"
	"errors"
	"time"

	"github.com/guidanceoffice/discipline-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OffenseRepository handles offense record data access.
type OffenseRepository struct {
	pool *pgxpool.Pool
}

// NewOffenseRepository creates a new OffenseRepository.
func NewOffenseRepository(pool *pgxpool.Pool) *OffenseRepository {
	return &OffenseRepository{pool: pool}
}

// GetByID retrieves an offense by ID.
func (r *OffenseRepository) GetByID(ctx context.Context, id int) (*model.Offense, error) {
	o := &model.Offense{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, offense_type, category, COALESCE(subtype, ''), date, COALESCE(description, ''), created_at
		 FROM offenses WHERE id = $1`, id,
	).Scan(&o.ID, &o.StudentID, &o.OffenseType, &o.Category, &o.Subtype, &o.Date.Time, &o.Description, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

// ListByStudent retrieves all offenses for one student in insertion (id) order.
func (r *OffenseRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Offense, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, offense_type, category, COALESCE(subtype, ''), date, COALESCE(description, ''), created_at
		 FROM offenses WHERE student_id = $1 ORDER BY id`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOffenses(rows)
}

// ListByStudentBetween retrieves a student's offenses with dates inside
// [from, to] inclusive, ordered by date ascending. Used by the calendar view.
func (r *OffenseRepository) ListByStudentBetween(ctx context.Context, studentID int, from, to time.Time) ([]model.Offense, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, offense_type, category, COALESCE(subtype, ''), date, COALESCE(description, ''), created_at
		 FROM offenses
		 WHERE student_id = $1 AND date >= $2 AND date <= $3
		 ORDER BY date, id`, studentID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOffenses(rows)
}

// Create inserts a new offense. A foreign-key violation on student_id maps
// to ErrStudentMissing so callers can surface it as a 404.
func (r *OffenseRepository) Create(ctx context.Context, o *model.Offense) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO offenses (student_id, offense_type, category, subtype, date, description)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''))
		 RETURNING id, created_at`,
		o.StudentID, o.OffenseType, o.Category, o.Subtype, o.Date.Time, o.Description,
	).Scan(&o.ID, &o.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrStudentMissing
		}
		return err
	}
	return nil
}

// Delete removes an offense by ID.
func (r *OffenseRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM offenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOffenses(rows pgx.Rows) ([]model.Offense, error) {
	var offenses []model.Offense
	for rows.Next() {
		var o model.Offense
		if err := rows.Scan(&o.ID, &o.StudentID, &o.OffenseType, &o.Category, &o.Subtype, &o.Date.Time, &o.Description, &o.CreatedAt); err != nil {
			return nil, err
		}
		offenses = append(offenses, o)
	}
	return offenses, rows.Err()
}
