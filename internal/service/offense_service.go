package service

import (
	"context"
	"fmt"
	"time"

	"github.com/guidanceoffice/discipline-backend/internal/model"
)

// OffenseStore is the persistence surface for offense records.
// *repository.OffenseRepository satisfies it.
type OffenseStore interface {
	GetByID(ctx context.Context, id int) (*model.Offense, error)
	ListByStudent(ctx context.Context, studentID int) ([]model.Offense, error)
	ListByStudentBetween(ctx context.Context, studentID int, from, to time.Time) ([]model.Offense, error)
	Create(ctx context.Context, o *model.Offense) error
	Delete(ctx context.Context, id int) error
}

// OffenseService handles offense record business logic.
type OffenseService struct {
	offenses OffenseStore
	students StudentStore
}

// NewOffenseService creates a new OffenseService.
func NewOffenseService(offenses OffenseStore, students StudentStore) *OffenseService {
	return &OffenseService{offenses: offenses, students: students}
}

// ListForStudent retrieves all offenses for one student. The student must
// exist; repository.ErrNotFound propagates if it does not.
func (s *OffenseService) ListForStudent(ctx context.Context, studentID int) (*model.Student, []model.Offense, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}

	offenses, err := s.offenses.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}
	if offenses == nil {
		offenses = []model.Offense{}
	}
	return student, offenses, nil
}

// Create validates and records an offense against a student. The student
// reference is fixed at creation; offenses are never edited afterwards.
func (s *OffenseService) Create(ctx context.Context, studentID int, offense *model.Offense) error {
	if !offense.OffenseType.Valid() {
		return fmt.Errorf("%w: offense_type %q", ErrInvalidField, offense.OffenseType)
	}
	if !offense.Category.Valid() {
		return fmt.Errorf("%w: category %q", ErrInvalidField, offense.Category)
	}
	if offense.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidField)
	}

	offense.StudentID = studentID
	return s.offenses.Create(ctx, offense)
}

// Delete removes a single offense. Deleting the same id twice reports
// repository.ErrNotFound on the second call.
func (s *OffenseService) Delete(ctx context.Context, id int) error {
	return s.offenses.Delete(ctx, id)
}
