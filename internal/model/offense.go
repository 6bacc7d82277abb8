package model

import (
	"fmt"
	"time"
)

// OffenseType represents the severity classification of an offense.
type OffenseType string

const (
	OffenseWarning OffenseType = "warning"
	OffenseMinor   OffenseType = "minor"
	OffenseMajor   OffenseType = "major"
)

func (t OffenseType) Valid() bool {
	return t == OffenseWarning || t == OffenseMinor || t == OffenseMajor
}

// OffenseCategory represents the area of school life the offense falls under.
type OffenseCategory string

const (
	CategoryAcademic   OffenseCategory = "Academic"
	CategoryBehavioral OffenseCategory = "Behavioral"
	CategoryAttendance OffenseCategory = "Attendance"
	CategoryUniform    OffenseCategory = "Uniform"
	CategoryProperty   OffenseCategory = "Property"
	CategorySafety     OffenseCategory = "Safety"
	CategoryOther      OffenseCategory = "Other"
)

func (c OffenseCategory) Valid() bool {
	switch c {
	case CategoryAcademic, CategoryBehavioral, CategoryAttendance,
		CategoryUniform, CategoryProperty, CategorySafety, CategoryOther:
		return true
	}
	return false
}

// Date is a calendar date (no time component) serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate builds a Date pinned to midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date: %w", err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Offense is a disciplinary incident record tied to exactly one student.
// The student reference is immutable once created; offenses are never
// edited in place, only added and deleted.
type Offense struct {
	ID          int             `json:"id"`
	StudentID   int             `json:"student_id"`
	OffenseType OffenseType     `json:"offense_type"`
	Category    OffenseCategory `json:"category"`
	Subtype     string          `json:"subtype,omitempty"`
	Date        Date            `json:"date"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OffenseWithStudent is an offense joined to its owning student,
// used by the search/browse view.
type OffenseWithStudent struct {
	Offense
	StudentName string     `json:"student_name"`
	GradeLevel  GradeLevel `json:"grade_level"`
	Section     Section    `json:"section"`
}

// OffenseRequest is the payload for recording an offense against a student.
type OffenseRequest struct {
	OffenseType OffenseType     `json:"offense_type" binding:"required,oneof=warning minor major"`
	Category    OffenseCategory `json:"category" binding:"required,oneof=Academic Behavioral Attendance Uniform Property Safety Other"`
	Subtype     string          `json:"subtype" binding:"omitempty,max=100"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	Description string          `json:"description" binding:"omitempty,max=2000"`
}
