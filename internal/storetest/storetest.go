// Package storetest provides an in-memory implementation of the service
// layer's store interfaces, with the same contract as the pgx repositories
// (sentinel errors, ordering, cascade delete). Used by unit tests.
package storetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/guidanceoffice/discipline-backend/internal/model"
	"github.com/guidanceoffice/discipline-backend/internal/repository"
)

// MemDB is an in-memory stand-in for the PostgreSQL repositories.
type MemDB struct {
	mu       sync.Mutex
	users    map[int]*model.User
	students map[int]*model.Student
	offenses map[int]*model.Offense
	nextID   int
}

// NewMemDB creates an empty MemDB.
func NewMemDB() *MemDB {
	return &MemDB{
		users:    make(map[int]*model.User),
		students: make(map[int]*model.Student),
		offenses: make(map[int]*model.Offense),
	}
}

func (db *MemDB) nextSeq() int {
	db.nextID++
	return db.nextID
}

// ─── UserStore ──────────────────────────────────────────────────────────

func (db *MemDB) GetByEmail(_ context.Context, email string) (*model.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (db *MemDB) GetByID(_ context.Context, id int) (*model.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (db *MemDB) Create(_ context.Context, u *model.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, existing := range db.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.ID = db.nextSeq()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	copied := *u
	db.users[u.ID] = &copied
	return nil
}

// UserCount reports the number of stored accounts.
func (db *MemDB) UserCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users)
}

// ─── StudentStore ───────────────────────────────────────────────────────

// Students adapts MemDB to the student store interface; the method set
// clashes with the user store (GetByID, Create), so each store is exposed
// through a view type.
func (db *MemDB) Students() *StudentView { return &StudentView{db} }

// StudentView exposes MemDB as a student store.
type StudentView struct{ db *MemDB }

func (v *StudentView) GetByID(_ context.Context, id int) (*model.Student, error) {
	v.db.mu.Lock()
	defer v.db.mu.Unlock()
	s, ok := v.db.students[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (v *StudentView) List(_ context.Context) ([]model.Student, error) {
	v.db.mu.Lock()
	defer v.db.mu.Unlock()
	var students []model.Student
	for _, s := range v.db.students {
		students = append(students, *s)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

func (v *StudentView) Create(_ context.Context, s *model.Student) error {
	v.db.mu.Lock()
	defer v.db.mu.Unlock()
	s.ID = v.db.nextSeq()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	copied := *s
	v.db.students[s.ID] = &copied
	return nil
}

func (v *StudentView) Update(_ context.Context, s *model.Student) error {
	v.db.mu.Lock()
	defer v.db.mu.Unlock()
	if _, ok := v.db.students[s.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *s
	copied.UpdatedAt = time.Now()
	v.db.students[s.ID] = &copied
	return nil
}

func (v *StudentView) Delete(_ context.Context, id int) error {
	v.db.mu.Lock()
	defer v.db.mu.Unlock()
	if _, ok := v.db.students[id]; !ok {
		return repository.ErrNotFound
	}
	for oid, o := range v.db.offenses {
		if o.StudentID == id {
			delete(v.db.offenses, oid)
		}
	}
	delete(v.db.students, id)
	return nil
}

// ─── OffenseStore ───────────────────────────────────────────────────────

// Offenses exposes MemDB as an offense store.
func (db *MemDB) Offenses() *OffenseView { return &OffenseView{db} }

// OffenseView exposes MemDB as an offense store.
type OffenseView struct{ db *MemDB }

func (v *OffenseView) GetByID(_ context.Context, id int) (*model.Offense, error) {
	v.db.mu.Lock()
	defer v.db.mu.Unlock()
	o, ok := v.db.offenses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (v *OffenseView) ListByStudent(_ context.Context, studentID int) ([]model.Offense, error) {
	v.db.mu.Lock()
	defer v.db.mu.Unlock()
	var offenses []model.Offense
	for _, o := range v.db.offenses {
		if o.StudentID == studentID {
			offenses = append(offenses, *o)
		}
	}
	sort.Slice(offenses, func(i, j int) bool { return offenses[i].ID < offenses[j].ID })
	return offenses, nil
}

func (v *OffenseView) ListByStudentBetween(_ context.Context, studentID int, from, to time.Time) ([]model.Offense, error) {
	v.db.mu.Lock()
	defer v.db.mu.Unlock()
	var offenses []model.Offense
	for _, o := range v.db.offenses {
		if o.StudentID == studentID && !o.Date.Before(from) && !o.Date.After(to) {
			offenses = append(offenses, *o)
		}
	}
	sort.Slice(offenses, func(i, j int) bool {
		if !offenses[i].Date.Equal(offenses[j].Date.Time) {
			return offenses[i].Date.Before(offenses[j].Date.Time)
		}
		return offenses[i].ID < offenses[j].ID
	})
	return offenses, nil
}

func (v *OffenseView) Create(_ context.Context, o *model.Offense) error {
	v.db.mu.Lock()
	defer v.db.mu.Unlock()
	if _, ok := v.db.students[o.StudentID]; !ok {
		return repository.ErrStudentMissing
	}
	o.ID = v.db.nextSeq()
	o.CreatedAt = time.Now()
	copied := *o
	v.db.offenses[o.ID] = &copied
	return nil
}

func (v *OffenseView) Delete(_ context.Context, id int) error {
	v.db.mu.Lock()
	defer v.db.mu.Unlock()
	if _, ok := v.db.offenses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(v.db.offenses, id)
	return nil
}

// ─── ReportStore ────────────────────────────────────────────────────────

// Reports exposes MemDB as a report store.
func (db *MemDB) Reports() *ReportView { return &ReportView{db} }

// ReportView exposes MemDB as a report store.
type ReportView struct{ db *MemDB }

func (v *ReportView) CountByTypeAndGrade(_ context.Context) ([]repository.TypeGradeCount, error) {
	v.db.mu.Lock()
	defer v.db.mu.Unlock()
	type key struct {
		grade model.GradeLevel
		typ   model.OffenseType
	}
	counts := make(map[key]int)
	for _, o := range v.db.offenses {
		s, ok := v.db.students[o.StudentID]
		if !ok {
			continue
		}
		counts[key{s.GradeLevel, o.OffenseType}]++
	}
	var rows []repository.TypeGradeCount
	for k, n := range counts {
		rows = append(rows, repository.TypeGradeCount{GradeLevel: k.grade, OffenseType: k.typ, Count: n})
	}
	return rows, nil
}

func (v *ReportView) CountByGenderAndGrade(_ context.Context) ([]repository.GenderGradeCount, error) {
	v.db.mu.Lock()
	defer v.db.mu.Unlock()
	type key struct {
		grade  model.GradeLevel
		gender model.Gender
	}
	counts := make(map[key]int)
	for _, o := range v.db.offenses {
		s, ok := v.db.students[o.StudentID]
		if !ok {
			continue
		}
		counts[key{s.GradeLevel, s.Gender}]++
	}
	var rows []repository.GenderGradeCount
	for k, n := range counts {
		rows = append(rows, repository.GenderGradeCount{GradeLevel: k.grade, Gender: k.gender, Count: n})
	}
	return rows, nil
}

func (v *ReportView) SearchOffenses(_ context.Context, term string, limit, offset int) ([]model.OffenseWithStudent, int, error) {
	v.db.mu.Lock()
	defer v.db.mu.Unlock()

	lower := strings.ToLower(term)
	var all []model.OffenseWithStudent
	for _, o := range v.db.offenses {
		s, ok := v.db.students[o.StudentID]
		if !ok {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(s.Name), lower) &&
			!strings.Contains(strings.ToLower(o.Description), lower) &&
			!strings.Contains(strings.ToLower(string(o.OffenseType)), lower) {
			continue
		}
		all = append(all, model.OffenseWithStudent{
			Offense:     *o,
			StudentName: s.Name,
			GradeLevel:  s.GradeLevel,
			Section:     s.Section,
		})
	}

	sort.Slice(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date.Time) {
			return all[i].Date.After(all[j].Date.Time)
		}
		return all[i].ID > all[j].ID
	})

	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}
