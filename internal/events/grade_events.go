package events

import (
	"time"

	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
	"github.com/google/uuid"
)

// EventType represents different types of analytics events
type EventType string

const (
	// Grade store events
	EventGradeRecorded EventType = "grade.recorded"
	EventGradeUpdated  EventType = "grade.updated"
	EventGradeDeleted  EventType = "grade.deleted"

	// Derived cell events
	EventDistributionCalculated EventType = "analytics.distribution_calculated"
	EventPerformanceCalculated  EventType = "analytics.performance_calculated"

	// Reporting events
	EventReportGenerated EventType = "report.generated"
)

const (
	eventSource  = "grade-analytics-service"
	eventVersion = "1.0"
)

// Event is the envelope for everything published on the analytics topic
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewEvent wraps data in an envelope with a fresh id
func NewEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// Event payloads

type GradeChangedEvent struct {
	GradeID    uint        `json:"grade_id"`
	StudentID  uint        `json:"student_id"`
	SubjectID  uint        `json:"subject_id"`
	Term       models.Term `json:"term"`
	Percentage float64     `json:"percentage"`
	ChangedBy  string      `json:"changed_by,omitempty"`
}

type DistributionCalculatedEvent struct {
	SubjectID     uint        `json:"subject_id"`
	AcademicYear  string      `json:"academic_year"`
	Term          models.Term `json:"term"`
	TotalStudents int         `json:"total_students"`
	AverageScore  float64     `json:"average_score"`
	PassRate      float64     `json:"pass_rate"`
}

type PerformanceCalculatedEvent struct {
	StudentID    uint                    `json:"student_id"`
	AcademicYear string                  `json:"academic_year"`
	Term         models.Term             `json:"term"`
	AverageGrade float64                 `json:"average_grade"`
	Trend        models.PerformanceTrend `json:"trend"`
}

type ReportGeneratedEvent struct {
	ReportID    uint              `json:"report_id"`
	ReportType  models.ReportType `json:"report_type"`
	Format      string            `json:"format"`
	GeneratedBy string            `json:"generated_by"`
}
