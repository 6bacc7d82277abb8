package model

import "time"

// Gender represents the student's gender.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Valid reports whether the value is a member of the closed enum.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// GradeLevel represents the senior-high grade level.
type GradeLevel string

const (
	Grade11 GradeLevel = "11"
	Grade12 GradeLevel = "12"
)

func (g GradeLevel) Valid() bool {
	return g == Grade11 || g == Grade12
}

// Section represents the class section within a grade level.
type Section string

const (
	SectionA Section = "A"
	SectionB Section = "B"
	SectionC Section = "C"
	SectionD Section = "D"
	SectionE Section = "E"
	SectionF Section = "F"
)

func (s Section) Valid() bool {
	switch s {
	case SectionA, SectionB, SectionC, SectionD, SectionE, SectionF:
		return true
	}
	return false
}

// Strand represents the academic track classification.
type Strand string

const (
	StrandSTEM  Strand = "STEM"
	StrandHUMSS Strand = "HUMSS"
	StrandABM   Strand = "ABM"
)

func (s Strand) Valid() bool {
	return s == StrandSTEM || s == StrandHUMSS || s == StrandABM
}

// Student represents an enrolled student. A student owns zero or more
// offense records; deleting the student removes those records with it.
type Student struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Age        int        `json:"age"`
	Gender     Gender     `json:"gender"`
	GradeLevel GradeLevel `json:"grade_level"`
	Section    Section    `json:"section"`
	Strand     Strand     `json:"strand"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// StudentRequest is the payload for creating or updating a student.
type StudentRequest struct {
	Name       string     `json:"name" binding:"required,min=1,max=100"`
	Age        int        `json:"age" binding:"required,min=1,max=100"`
	Gender     Gender     `json:"gender" binding:"required,oneof=Male Female"`
	GradeLevel GradeLevel `json:"grade_level" binding:"required,oneof=11 12"`
	Section    Section    `json:"section" binding:"required,oneof=A B C D E F"`
	Strand     Strand     `json:"strand" binding:"required,oneof=STEM HUMSS ABM"`
}
