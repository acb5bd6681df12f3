package models

import (
	"math"
	"time"
)

type Term string

const (
	Term1 Term = "TERM1"
	Term2 Term = "TERM2"
	Term3 Term = "TERM3"
)

// Terms lists the grading periods of an academic year in calendar order.
var Terms = []Term{Term1, Term2, Term3}

// Previous returns the term before t in the same academic year.
func (t Term) Previous() (Term, bool) {
	switch t {
	case Term2:
		return Term1, true
	case Term3:
		return Term2, true
	default:
		return "", false
	}
}

func (t Term) Label() string {
	switch t {
	case Term1:
		return "Term 1"
	case Term2:
		return "Term 2"
	case Term3:
		return "Term 3"
	default:
		return string(t)
	}
}

type AssessmentType string

const (
	AssessmentExam       AssessmentType = "EXAM"
	AssessmentTest       AssessmentType = "TEST"
	AssessmentQuiz       AssessmentType = "QUIZ"
	AssessmentAssignment AssessmentType = "ASSIGNMENT"
	AssessmentProject    AssessmentType = "PROJECT"
)

var AssessmentTypes = []AssessmentType{
	AssessmentExam,
	AssessmentTest,
	AssessmentQuiz,
	AssessmentAssignment,
	AssessmentProject,
}

const DefaultMaxScore = 100.0

type Grade struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	StudentID      uint           `json:"student_id" gorm:"not null;index:idx_grades_student_term"`
	SubjectID      uint           `json:"subject_id" gorm:"not null;index:idx_grades_subject_term"`
	AssessmentName string         `json:"assessment_name" gorm:"not null;size:100"`
	AssessmentType AssessmentType `json:"assessment_type" gorm:"not null;size:20"`
	Score          float64        `json:"score" gorm:"type:numeric(6,2);not null"`
	MaxScore       float64        `json:"max_score" gorm:"type:numeric(6,2);not null;default:100"`
	Percentage     float64        `json:"percentage" gorm:"type:numeric(6,2);not null"`
	Term           Term           `json:"term" gorm:"not null;size:10;index:idx_grades_student_term;index:idx_grades_subject_term"`
	Date           time.Time      `json:"date" gorm:"type:date;not null;index"`
	Comments       string         `json:"comments" gorm:"type:text"`
	CreatedBy      *string        `json:"created_by" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Subject *Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE"`
}

// RecomputePercentage derives Percentage from Score and MaxScore. Callers
// must have rejected a non-positive MaxScore before calling it.
func (g *Grade) RecomputePercentage() {
	g.Percentage = Round2(g.Score / g.MaxScore * 100)
}

// Round2 rounds v to two fractional digits, the precision of every
// percentage, average and rate the service emits.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
