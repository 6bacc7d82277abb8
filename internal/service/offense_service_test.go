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

func newOffenseFixture(t *testing.T) (*storetest.MemDB, *OffenseService, *model.Student) {
	t.Helper()
	db := storetest.NewMemDB()
	svc := NewOffenseService(db.Offenses(), db.Students())

	student := &model.Student{
		Name: "Ana Cruz", Age: 17,
		Gender: model.GenderFemale, GradeLevel: model.Grade11,
		Section: model.SectionA, Strand: model.StrandSTEM,
	}
	require.NoError(t, db.Students().Create(context.Background(), student))
	return db, svc, student
}

func TestOffenseCreate(t *testing.T) {
	_, svc, student := newOffenseFixture(t)
	ctx := context.Background()

	o := &model.Offense{
		OffenseType: model.OffenseMinor,
		Category:    model.CategoryUniform,
		Subtype:     "No ID lace",
		Date:        model.NewDate(2025, time.June, 9),
	}
	require.NoError(t, svc.Create(ctx, student.ID, o))
	assert.NotZero(t, o.ID)
	assert.Equal(t, student.ID, o.StudentID)
}

func TestOffenseCreate_MissingStudent(t *testing.T) {
	_, svc, _ := newOffenseFixture(t)

	o := &model.Offense{
		OffenseType: model.OffenseMinor,
		Category:    model.CategoryUniform,
		Date:        model.NewDate(2025, time.June, 9),
	}
	err := svc.Create(context.Background(), 404, o)
	assert.ErrorIs(t, err, repository.ErrStudentMissing)
}

func TestOffenseCreate_Validation(t *testing.T) {
	_, svc, student := newOffenseFixture(t)
	ctx := context.Background()

	err := svc.Create(ctx, student.ID, &model.Offense{
		OffenseType: "severe",
		Category:    model.CategoryOther,
		Date:        model.NewDate(2025, time.June, 9),
	})
	assert.ErrorIs(t, err, ErrInvalidField)

	err = svc.Create(ctx, student.ID, &model.Offense{
		OffenseType: model.OffenseMajor,
		Category:    "Cafeteria",
		Date:        model.NewDate(2025, time.June, 9),
	})
	assert.ErrorIs(t, err, ErrInvalidField)

	err = svc.Create(ctx, student.ID, &model.Offense{
		OffenseType: model.OffenseMajor,
		Category:    model.CategoryOther,
	})
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestOffenseListForStudent(t *testing.T) {
	_, svc, student := newOffenseFixture(t)
	ctx := context.Background()

	got, offenses, err := svc.ListForStudent(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, got.ID)
	assert.NotNil(t, offenses)
	assert.Empty(t, offenses)

	require.NoError(t, svc.Create(ctx, student.ID, &model.Offense{
		OffenseType: model.OffenseWarning,
		Category:    model.CategoryAcademic,
		Date:        model.NewDate(2025, time.June, 9),
	}))

	_, offenses, err = svc.ListForStudent(ctx, student.ID)
	require.NoError(t, err)
	assert.Len(t, offenses, 1)

	_, _, err = svc.ListForStudent(ctx, 404)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestOffenseDelete_Idempotence(t *testing.T) {
	_, svc, student := newOffenseFixture(t)
	ctx := context.Background()

	o := &model.Offense{
		OffenseType: model.OffenseWarning,
		Category:    model.CategoryAcademic,
		Date:        model.NewDate(2025, time.June, 9),
	}
	require.NoError(t, svc.Create(ctx, student.ID, o))

	require.NoError(t, svc.Delete(ctx, o.ID))
	assert.ErrorIs(t, svc.Delete(ctx, o.ID), repository.ErrNotFound)
}
