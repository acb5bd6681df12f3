package repositories

import (
	"errors"
	"time"

	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
)

// ErrRecordNotFound is returned by lookups that match no row.
var ErrRecordNotFound = errors.New("record not found")

// Repository groups the per-entity repositories behind one handle.
type Repository interface {
	Grade() GradeRepository
	Student() StudentRepository
	Subject() SubjectRepository
	Class() ClassRepository
	AcademicYear() AcademicYearRepository
	Analytics() AnalyticsRepository
	Report() ReportRepository
}

// ===== SHARED FILTER STRUCTS =====

type GradeFilters struct {
	StudentID      *uint                  `json:"student_id"`
	SubjectID      *uint                  `json:"subject_id"`
	Term           *models.Term           `json:"term"`
	AssessmentType *models.AssessmentType `json:"assessment_type"`
	DateFrom       *time.Time             `json:"date_from"` // inclusive
	DateTo         *time.Time             `json:"date_to"`   // inclusive
	Limit          int                    `json:"limit"`
	Offset         int                    `json:"offset"`
	SortBy         string                 `json:"sort_by"`    // "date", "percentage", "created_at"
	SortOrder      string                 `json:"sort_order"` // "asc", "desc"

	// Search matches the assessment name, student names and subject name.
	Search       string     `json:"search"`
	CreatedFrom  *time.Time `json:"created_from"`
	WithStudents bool       `json:"-"`
}

type StudentFilters struct {
	ClassID     *uint      `json:"class_id"`
	IsActive    *bool      `json:"is_active"`
	Search      string     `json:"search"` // names, student number, email
	CreatedFrom *time.Time `json:"created_from"`
	Limit       int        `json:"limit"`
	Offset      int        `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

// GroupAverage is one row of a grouped average over grades.
type GroupAverage struct {
	Key     string  `json:"key"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
