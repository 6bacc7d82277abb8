package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/guidanceoffice/discipline-backend/internal/config"
	"github.com/guidanceoffice/discipline-backend/internal/model"
	"github.com/guidanceoffice/discipline-backend/internal/repository"
	"github.com/guidanceoffice/discipline-backend/internal/response"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// SearchPageSize is the fixed page size of the offense browse view.
const SearchPageSize = 20

// ReportStore is the persistence surface for the grouped-count and search
// queries. *repository.ReportRepository satisfies it.
type ReportStore interface {
	CountByTypeAndGrade(ctx context.Context) ([]repository.TypeGradeCount, error)
	CountByGenderAndGrade(ctx context.Context) ([]repository.GenderGradeCount, error)
	SearchOffenses(ctx context.Context, term string, limit, offset int) ([]model.OffenseWithStudent, int, error)
}

// MonthRef is a (year, month) pair used for calendar navigation.
type MonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// CalendarMonth is one student's offenses for a month, grouped by
// day-of-month into display strings, with prev/next navigation targets.
type CalendarMonth struct {
	Student   *model.Student   `json:"student"`
	Year      int              `json:"year"`
	Month     int              `json:"month"`
	MonthName string           `json:"month_name"`
	Days      map[int][]string `json:"days"`
	Prev      MonthRef         `json:"prev"`
	Next      MonthRef         `json:"next"`
}

// ReportService produces the chart aggregates, the calendar view, and the
// paginated search over all offenses. Chart payloads are cached in Redis
// for a short TTL; the charts tolerate slightly stale counts.
type ReportService struct {
	reports  ReportStore
	offenses OffenseStore
	students StudentStore
	rdb      *redis.Client
	ttl      time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

// NewReportService creates a new ReportService.
func NewReportService(reports ReportStore, offenses OffenseStore, students StudentStore, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *ReportService {
	return &ReportService{
		reports:  reports,
		offenses: offenses,
		students: students,
		rdb:      rdb,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
	}
}

// OffensesByTypeAndGrade returns grade_level -> {warning, minor, major}
// counts. Every grade present in the result reports all three types,
// zero-filled where the grouping produced no row.
func (s *ReportService) OffensesByTypeAndGrade(ctx context.Context) (map[string]map[string]int, error) {
	key := config.CacheKey.ChartTypeGradeKey()
	if cached := s.cachedChart(ctx, key); cached != nil {
		return cached, nil
	}

	counts, err := s.reports.CountByTypeAndGrade(ctx)
	if err != nil {
		return nil, err
	}

	data := make(map[string]map[string]int)
	for _, c := range counts {
		grade := string(c.GradeLevel)
		if _, ok := data[grade]; !ok {
			data[grade] = map[string]int{
				string(model.OffenseWarning): 0,
				string(model.OffenseMinor):   0,
				string(model.OffenseMajor):   0,
			}
		}
		data[grade][string(c.OffenseType)] = c.Count
	}

	s.storeChart(ctx, key, data)
	return data, nil
}

// OffensesByGenderAndGrade returns grade_level -> {Male, Female} counts,
// zero-filled per grade.
func (s *ReportService) OffensesByGenderAndGrade(ctx context.Context) (map[string]map[string]int, error) {
	key := config.CacheKey.ChartGenderGradeKey()
	if cached := s.cachedChart(ctx, key); cached != nil {
		return cached, nil
	}

	counts, err := s.reports.CountByGenderAndGrade(ctx)
	if err != nil {
		return nil, err
	}

	data := make(map[string]map[string]int)
	for _, c := range counts {
		grade := string(c.GradeLevel)
		if _, ok := data[grade]; !ok {
			data[grade] = map[string]int{
				string(model.GenderMale):   0,
				string(model.GenderFemale): 0,
			}
		}
		data[grade][string(c.Gender)] = c.Count
	}

	s.storeChart(ctx, key, data)
	return data, nil
}

// Calendar builds the month view for one student. A month outside 1..12
// falls back to the current calendar month. The student must exist;
// repository.ErrNotFound propagates if it does not.
func (s *ReportService) Calendar(ctx context.Context, studentID, year, month int) (*CalendarMonth, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if month < 1 || month > 12 {
		month = int(s.now().Month())
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	offenses, err := s.offenses.ListByStudentBetween(ctx, studentID, first, last)
	if err != nil {
		return nil, err
	}

	days := make(map[int][]string)
	for _, o := range offenses {
		day := o.Date.Day()
		days[day] = append(days[day], offenseDetail(o))
	}

	prev := MonthRef{Year: year, Month: month - 1}
	if month == 1 {
		prev = MonthRef{Year: year - 1, Month: 12}
	}
	next := MonthRef{Year: year, Month: month + 1}
	if month == 12 {
		next = MonthRef{Year: year + 1, Month: 1}
	}

	return &CalendarMonth{
		Student:   student,
		Year:      year,
		Month:     month,
		MonthName: time.Month(month).String(),
		Days:      days,
		Prev:      prev,
		Next:      next,
	}, nil
}

// Search retrieves a page of offenses joined to students, newest first,
// optionally filtered by a case-insensitive substring over student name,
// description, and offense type. Pages are 1-indexed; a page past the end
// comes back empty rather than erroring.
func (s *ReportService) Search(ctx context.Context, term string, page int) ([]model.OffenseWithStudent, *response.Pagination, error) {
	term = strings.TrimSpace(term)
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * SearchPageSize
	results, total, err := s.reports.SearchOffenses(ctx, term, SearchPageSize, offset)
	if err != nil {
		return nil, nil, err
	}
	if results == nil {
		results = []model.OffenseWithStudent{}
	}

	return results, response.NewPagination(page, SearchPageSize, total), nil
}

// offenseDetail renders one offense as the calendar's display string,
// e.g. "Warning - Late for flag ceremony (2025-06-09)".
func offenseDetail(o model.Offense) string {
	desc := o.Description
	if desc == "" {
		desc = "No description"
	}
	t := string(o.OffenseType)
	if t != "" {
		t = strings.ToUpper(t[:1]) + t[1:]
	}
	return t + " - " + desc + " (" + o.Date.String() + ")"
}

func (s *ReportService) cachedChart(ctx context.Context, key string) map[string]map[string]int {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var data map[string]map[string]int
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil
	}
	return data
}

func (s *ReportService) storeChart(ctx context.Context, key string, data map[string]map[string]int) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("chart cache write failed")
	}
}
