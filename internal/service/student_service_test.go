package service

import (
	"context"
	"testing"
	"time"

	"github.com/guidanceoffice/discipline-backend/internal/model"
	"github.com/guidanceoffice/discipline-backend/internal/repository"
	"github.com/guidanceoffice/discipline-backend/internal/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentCreate_RejectsInvalidEnums(t *testing.T) {
	db := storetest.NewMemDB()
	svc := NewStudentService(db.Students())
	ctx := context.Background()

	cases := []struct {
		name    string
		student model.Student
	}{
		{"empty name", model.Student{Age: 17, Gender: model.GenderMale, GradeLevel: model.Grade11, Section: model.SectionA, Strand: model.StrandSTEM}},
		{"bad gender", model.Student{Name: "X", Age: 17, Gender: "Other", GradeLevel: model.Grade11, Section: model.SectionA, Strand: model.StrandSTEM}},
		{"bad grade", model.Student{Name: "X", Age: 17, Gender: model.GenderMale, GradeLevel: "10", Section: model.SectionA, Strand: model.StrandSTEM}},
		{"bad section", model.Student{Name: "X", Age: 17, Gender: model.GenderMale, GradeLevel: model.Grade11, Section: "G", Strand: model.StrandSTEM}},
		{"bad strand", model.Student{Name: "X", Age: 17, Gender: model.GenderMale, GradeLevel: model.Grade11, Section: model.SectionA, Strand: "GAS"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			student := tc.student
			err := svc.Create(ctx, &student)
			assert.ErrorIs(t, err, ErrInvalidField)
		})
	}

	students, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestStudentList_InsertionOrder(t *testing.T) {
	db := storetest.NewMemDB()
	svc := NewStudentService(db.Students())
	ctx := context.Background()

	for _, name := range []string{"Zoe", "Ana", "Mia"} {
		err := svc.Create(ctx, &model.Student{
			Name: name, Age: 17,
			Gender: model.GenderFemale, GradeLevel: model.Grade11,
			Section: model.SectionB, Strand: model.StrandHUMSS,
		})
		require.NoError(t, err)
	}

	students, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 3)
	assert.Equal(t, "Zoe", students[0].Name)
	assert.Equal(t, "Ana", students[1].Name)
	assert.Equal(t, "Mia", students[2].Name)
}

func TestStudentUpdate_NotFound(t *testing.T) {
	db := storetest.NewMemDB()
	svc := NewStudentService(db.Students())

	err := svc.Update(context.Background(), &model.Student{
		ID: 99, Name: "Ghost", Age: 17,
		Gender: model.GenderMale, GradeLevel: model.Grade12,
		Section: model.SectionC, Strand: model.StrandABM,
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStudentDelete_CascadesToOffenses(t *testing.T) {
	db := storetest.NewMemDB()
	studentSvc := NewStudentService(db.Students())
	offenseSvc := NewOffenseService(db.Offenses(), db.Students())
	ctx := context.Background()

	student := &model.Student{
		Name: "Ana Cruz", Age: 17,
		Gender: model.GenderFemale, GradeLevel: model.Grade11,
		Section: model.SectionA, Strand: model.StrandSTEM,
	}
	require.NoError(t, studentSvc.Create(ctx, student))

	var offenseIDs []int
	for day := 1; day <= 3; day++ {
		o := &model.Offense{
			OffenseType: model.OffenseWarning,
			Category:    model.CategoryAttendance,
			Date:        model.NewDate(2025, time.June, day),
		}
		require.NoError(t, offenseSvc.Create(ctx, student.ID, o))
		offenseIDs = append(offenseIDs, o.ID)
	}

	require.NoError(t, studentSvc.Delete(ctx, student.ID))

	// No offense referencing the student survives.
	for _, id := range offenseIDs {
		_, err := db.Offenses().GetByID(ctx, id)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	}

	// A second delete reports not found.
	assert.ErrorIs(t, studentSvc.Delete(ctx, student.ID), repository.ErrNotFound)
}
