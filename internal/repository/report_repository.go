package repository

import (
	"context"

	"github.com/guidanceoffice/discipline-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportRepository handles the grouped-count and search queries behind the
// chart and browse views.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// TypeGradeCount is one row of the offenses-by-type-and-grade grouping.
type TypeGradeCount struct {
	GradeLevel  model.GradeLevel
	OffenseType model.OffenseType
	Count       int
}

// CountByTypeAndGrade groups all offenses by the owning student's grade
// level and the offense type.
func (r *ReportRepository) CountByTypeAndGrade(ctx context.Context) ([]TypeGradeCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.grade_level, o.offense_type, COUNT(o.id)
		 FROM offenses o
		 JOIN students s ON s.id = o.student_id
		 GROUP BY s.grade_level, o.offense_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []TypeGradeCount
	for rows.Next() {
		var c TypeGradeCount
		if err := rows.Scan(&c.GradeLevel, &c.OffenseType, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// GenderGradeCount is one row of the offenses-by-gender-and-grade grouping.
type GenderGradeCount struct {
	GradeLevel model.GradeLevel
	Gender     model.Gender
	Count      int
}

// CountByGenderAndGrade groups all offenses by the owning student's grade
// level and gender.
func (r *ReportRepository) CountByGenderAndGrade(ctx context.Context) ([]GenderGradeCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.grade_level, s.gender, COUNT(o.id)
		 FROM offenses o
		 JOIN students s ON s.id = o.student_id
		 GROUP BY s.grade_level, s.gender`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []GenderGradeCount
	for rows.Next() {
		var c GenderGradeCount
		if err := rows.Scan(&c.GradeLevel, &c.Gender, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// SearchOffenses retrieves offenses joined to their students, newest date
// first. A non-empty term filters to rows where the student name, offense
// description, or offense type contains the term case-insensitively.
// Returns the page of rows plus the total match count.
func (r *ReportRepository) SearchOffenses(ctx context.Context, term string, limit, offset int) ([]model.OffenseWithStudent, int, error) {
	const filter = ` WHERE s.name ILIKE '%' || $1 || '%'
		OR o.description ILIKE '%' || $1 || '%'
		OR o.offense_type ILIKE '%' || $1 || '%'`

	countQuery := `SELECT COUNT(*) FROM offenses o JOIN students s ON s.id = o.student_id`
	dataQuery := `SELECT o.id, o.student_id, o.offense_type, o.category, COALESCE(o.subtype, ''),
			o.date, COALESCE(o.description, ''), o.created_at,
			s.name, s.grade_level, s.section
		 FROM offenses o
		 JOIN students s ON s.id = o.student_id`

	var countArgs, dataArgs []interface{}
	if term != "" {
		countQuery += filter
		dataQuery += filter
		countArgs = append(countArgs, term)
		dataArgs = append(dataArgs, term, limit, offset)
		dataQuery += ` ORDER BY o.date DESC, o.id DESC LIMIT $2 OFFSET $3`
	} else {
		dataArgs = append(dataArgs, limit, offset)
		dataQuery += ` ORDER BY o.date DESC, o.id DESC LIMIT $1 OFFSET $2`
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, dataQuery, dataArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var results []model.OffenseWithStudent
	for rows.Next() {
		var o model.OffenseWithStudent
		if err := rows.Scan(&o.ID, &o.StudentID, &o.OffenseType, &o.Category, &o.Subtype,
			&o.Date.Time, &o.Description, &o.CreatedAt,
			&o.StudentName, &o.GradeLevel, &o.Section); err != nil {
			return nil, 0, err
		}
		results = append(results, o)
	}
	return results, total, rows.Err()
}
