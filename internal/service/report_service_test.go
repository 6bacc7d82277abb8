package service

import (
	"context"
	"testing"
	"time"

	"github.com/guidanceoffice/discipline-backend/internal/model"
	"github.com/guidanceoffice/discipline-backend/internal/repository"
	"github.com/guidanceoffice/discipline-backend/internal/storetest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportFixture(t *testing.T) (*storetest.MemDB, *ReportService) {
	t.Helper()
	db := storetest.NewMemDB()
	svc := NewReportService(db.Reports(), db.Offenses(), db.Students(), nil, 0, zerolog.Nop())
	return db, svc
}

func seedStudent(t *testing.T, db *storetest.MemDB, name string, gender model.Gender, grade model.GradeLevel) *model.Student {
	t.Helper()
	s := &model.Student{
		Name:       name,
		Age:        17,
		Gender:     gender,
		GradeLevel: grade,
		Section:    model.SectionA,
		Strand:     model.StrandSTEM,
	}
	require.NoError(t, db.Students().Create(context.Background(), s))
	return s
}

func seedOffense(t *testing.T, db *storetest.MemDB, studentID int, typ model.OffenseType, date model.Date, desc string) *model.Offense {
	t.Helper()
	o := &model.Offense{
		StudentID:   studentID,
		OffenseType: typ,
		Category:    model.CategoryBehavioral,
		Date:        date,
		Description: desc,
	}
	require.NoError(t, db.Offenses().Create(context.Background(), o))
	return o
}

func TestOffensesByTypeAndGrade_ZeroFill(t *testing.T) {
	db, svc := newReportFixture(t)
	ctx := context.Background()

	g11 := seedStudent(t, db, "Ana Cruz", model.GenderFemale, model.Grade11)
	g12 := seedStudent(t, db, "Ben Reyes", model.GenderMale, model.Grade12)

	d := model.NewDate(2025, time.June, 5)
	seedOffense(t, db, g11.ID, model.OffenseWarning, d, "")
	seedOffense(t, db, g11.ID, model.OffenseWarning, d, "")
	seedOffense(t, db, g11.ID, model.OffenseMajor, d, "")
	seedOffense(t, db, g12.ID, model.OffenseMinor, d, "")

	data, err := svc.OffensesByTypeAndGrade(ctx)
	require.NoError(t, err)

	assert.Equal(t, map[string]map[string]int{
		"11": {"warning": 2, "minor": 0, "major": 1},
		"12": {"warning": 0, "minor": 1, "major": 0},
	}, data)
}

func TestOffensesByTypeAndGrade_Empty(t *testing.T) {
	_, svc := newReportFixture(t)

	data, err := svc.OffensesByTypeAndGrade(context.Background())
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestOffensesByGenderAndGrade_ZeroFill(t *testing.T) {
	db, svc := newReportFixture(t)

	boy := seedStudent(t, db, "Ben Reyes", model.GenderMale, model.Grade11)
	girl := seedStudent(t, db, "Ana Cruz", model.GenderFemale, model.Grade12)

	d := model.NewDate(2025, time.June, 5)
	seedOffense(t, db, boy.ID, model.OffenseWarning, d, "")
	seedOffense(t, db, boy.ID, model.OffenseMinor, d, "")
	seedOffense(t, db, girl.ID, model.OffenseMajor, d, "")

	data, err := svc.OffensesByGenderAndGrade(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]map[string]int{
		"11": {"Male": 2, "Female": 0},
		"12": {"Male": 0, "Female": 1},
	}, data)
}

func TestCalendar_GroupsByDay(t *testing.T) {
	db, svc := newReportFixture(t)
	student := seedStudent(t, db, "Ana Cruz", model.GenderFemale, model.Grade11)

	seedOffense(t, db, student.ID, model.OffenseWarning, model.NewDate(2025, time.June, 9), "Late for flag ceremony")
	seedOffense(t, db, student.ID, model.OffenseMajor, model.NewDate(2025, time.June, 9), "")
	seedOffense(t, db, student.ID, model.OffenseMinor, model.NewDate(2025, time.June, 20), "No ID")
	// Outside the month; must not show up.
	seedOffense(t, db, student.ID, model.OffenseMinor, model.NewDate(2025, time.July, 1), "")

	cal, err := svc.Calendar(context.Background(), student.ID, 2025, 6)
	require.NoError(t, err)

	assert.Equal(t, 2025, cal.Year)
	assert.Equal(t, 6, cal.Month)
	assert.Equal(t, "June", cal.MonthName)
	require.Len(t, cal.Days, 2)
	assert.Equal(t, []string{
		"Warning - Late for flag ceremony (2025-06-09)",
		"Major - No description (2025-06-09)",
	}, cal.Days[9])
	assert.Equal(t, []string{"Minor - No ID (2025-06-20)"}, cal.Days[20])
}

func TestCalendar_OutOfRangeMonthFallsBack(t *testing.T) {
	db, svc := newReportFixture(t)
	svc.now = func() time.Time { return time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC) }
	student := seedStudent(t, db, "Ana Cruz", model.GenderFemale, model.Grade11)

	for _, month := range []int{0, 13, -4} {
		cal, err := svc.Calendar(context.Background(), student.ID, 2025, month)
		require.NoError(t, err)
		assert.Equal(t, 3, cal.Month)
	}
}

func TestCalendar_Navigation(t *testing.T) {
	db, svc := newReportFixture(t)
	student := seedStudent(t, db, "Ana Cruz", model.GenderFemale, model.Grade11)
	ctx := context.Background()

	jan, err := svc.Calendar(ctx, student.ID, 2025, 1)
	require.NoError(t, err)
	assert.Equal(t, MonthRef{Year: 2024, Month: 12}, jan.Prev)
	assert.Equal(t, MonthRef{Year: 2025, Month: 2}, jan.Next)

	dec, err := svc.Calendar(ctx, student.ID, 2025, 12)
	require.NoError(t, err)
	assert.Equal(t, MonthRef{Year: 2025, Month: 11}, dec.Prev)
	assert.Equal(t, MonthRef{Year: 2026, Month: 1}, dec.Next)
}

func TestCalendar_StudentNotFound(t *testing.T) {
	_, svc := newReportFixture(t)

	_, err := svc.Calendar(context.Background(), 42, 2025, 6)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSearch_FiltersAndPaginates(t *testing.T) {
	db, svc := newReportFixture(t)
	ctx := context.Background()

	smith := seedStudent(t, db, "John Smith", model.GenderMale, model.Grade11)
	cruz := seedStudent(t, db, "Ana Cruz", model.GenderFemale, model.Grade12)

	seedOffense(t, db, smith.ID, model.OffenseWarning, model.NewDate(2025, time.June, 1), "Loitering")
	seedOffense(t, db, cruz.ID, model.OffenseMinor, model.NewDate(2025, time.June, 2), "Talked to Smith during exam")
	seedOffense(t, db, cruz.ID, model.OffenseMajor, model.NewDate(2025, time.June, 3), "Vandalism")

	// Matches student name and description, case-insensitively.
	results, pagination, err := svc.Search(ctx, "smith", 1)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 2, pagination.TotalItems)
	// Newest date first.
	assert.Equal(t, "Talked to Smith during exam", results[0].Description)
	assert.Equal(t, "John Smith", results[1].StudentName)

	// Matches offense type.
	results, _, err = svc.Search(ctx, "MAJOR", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Vandalism", results[0].Description)

	// Whitespace-only term means no filter.
	results, pagination, err = svc.Search(ctx, "   ", 1)
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, 1, pagination.TotalPages)

	// A page past the end is empty, not an error.
	results, pagination, err = svc.Search(ctx, "", 99)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 3, pagination.TotalItems)

	// Page below 1 clamps to the first page.
	results, pagination, err = svc.Search(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, 1, pagination.Page)
}

func TestSearch_PageSizeLimit(t *testing.T) {
	db, svc := newReportFixture(t)
	student := seedStudent(t, db, "Ana Cruz", model.GenderFemale, model.Grade11)

	for day := 1; day <= 25; day++ {
		seedOffense(t, db, student.ID, model.OffenseWarning, model.NewDate(2025, time.June, day%28+1), "")
	}

	results, pagination, err := svc.Search(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Len(t, results, SearchPageSize)
	assert.Equal(t, 25, pagination.TotalItems)
	assert.Equal(t, 2, pagination.TotalPages)

	results, _, err = svc.Search(context.Background(), "", 2)
	require.NoError(t, err)
	assert.Len(t, results, 5)
}
