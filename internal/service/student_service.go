package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/guidanceoffice/discipline-backend/internal/model"
)

// ErrInvalidField signals a value outside one of the closed enums. The
// request DTOs reject these at bind time already; this check guards the
// storage boundary for non-HTTP callers.
var ErrInvalidField = errors.New("invalid field value")

// StudentStore is the persistence surface the student service needs.
// *repository.StudentRepository satisfies it.
type StudentStore interface {
	GetByID(ctx context.Context, id int) (*model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	Create(ctx context.Context, s *model.Student) error
	Update(ctx context.Context, s *model.Student) error
	Delete(ctx context.Context, id int) error
}

// StudentService handles student roster business logic.
type StudentService struct {
	students StudentStore
}

// NewStudentService creates a new StudentService.
func NewStudentService(students StudentStore) *StudentService {
	return &StudentService{students: students}
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return s.students.GetByID(ctx, id)
}

// List retrieves the full roster in insertion order.
func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

// Create validates and persists a new student.
func (s *StudentService) Create(ctx context.Context, student *model.Student) error {
	if err := validateStudent(student); err != nil {
		return err
	}
	return s.students.Create(ctx, student)
}

// Update validates and replaces all mutable fields of an existing student.
func (s *StudentService) Update(ctx context.Context, student *model.Student) error {
	if err := validateStudent(student); err != nil {
		return err
	}
	return s.students.Update(ctx, student)
}

// Delete removes a student and every offense owned by it as one unit.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	return s.students.Delete(ctx, id)
}

func validateStudent(student *model.Student) error {
	if student.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidField)
	}
	if !student.Gender.Valid() {
		return fmt.Errorf("%w: gender %q", ErrInvalidField, student.Gender)
	}
	if !student.GradeLevel.Valid() {
		return fmt.Errorf("%w: grade_level %q", ErrInvalidField, student.GradeLevel)
	}
	if !student.Section.Valid() {
		return fmt.Errorf("%w: section %q", ErrInvalidField, student.Section)
	}
	if !student.Strand.Valid() {
		return fmt.Errorf("%w: strand %q", ErrInvalidField, student.Strand)
	}
	return nil
}
