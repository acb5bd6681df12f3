package services

import (
	"time"

	"github.com/SAP-F-2025/grade-analytics-service/internal/analytics"
	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
	"github.com/SAP-F-2025/grade-analytics-service/internal/repositories"
)

const dateLayout = "2006-01-02"

// ===== GRADE REQUESTS =====

// GradeRequest is the input for recording or editing a grade. Percentage is
// always derived and cannot be supplied.
type GradeRequest struct {
	StudentID      uint                  `json:"student_id" validate:"required"`
	SubjectID      uint                  `json:"subject_id" validate:"required"`
	AssessmentName string                `json:"assessment_name" validate:"required,max=100"`
	AssessmentType models.AssessmentType `json:"assessment_type" validate:"required,assessment_type"`
	Score          float64               `json:"score"`
	MaxScore       *float64              `json:"max_score,omitempty"` // defaults to 100
	Term           models.Term           `json:"term" validate:"required,term"`
	Date           string                `json:"date" validate:"required,datetime=2006-01-02"`
	Comments       string                `json:"comments" validate:"max=2000"`
}

func (r *GradeRequest) maxScore() float64 {
	if r.MaxScore == nil {
		return models.DefaultMaxScore
	}
	return *r.MaxScore
}

type GradeListResponse struct {
	Grades []*models.Grade `json:"grades"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// BulkGradeResult reports the outcome of one bulk row independently.
type BulkGradeResult struct {
	Row     int    `json:"row"`
	Success bool   `json:"success"`
	Created bool   `json:"created"`
	GradeID uint   `json:"grade_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

type BulkGradeResponse struct {
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Created   int               `json:"created"`
	Updated   int               `json:"updated"`
	Failed    int               `json:"failed"`
	Results   []BulkGradeResult `json:"results"`
}

// ===== GRADE STATISTICS =====

type GradeStatisticsFilters struct {
	Term           *models.Term           `json:"term,omitempty"`
	SubjectID      *uint                  `json:"subject_id,omitempty"`
	AssessmentType *models.AssessmentType `json:"assessment_type,omitempty"`
}

type GradeStatistics struct {
	TotalGrades       int                         `json:"total_grades"`
	AverageScore      float64                     `json:"average_score"`
	HighestScore      float64                     `json:"highest_score"`
	LowestScore       float64                     `json:"lowest_score"`
	StandardDeviation float64                     `json:"standard_deviation"`
	PassRate          float64                     `json:"pass_rate"`
	GradeDistribution map[string]int              `json:"grade_distribution"`
	SubjectAverages   []repositories.GroupAverage `json:"subject_averages"`
	TermAverages      []repositories.GroupAverage `json:"term_averages"`
}

// ===== CHARTS =====

type ChartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
}

// ChartData is shaped for a charting front end. Pie charts carry Data and
// BackgroundColors directly; bar and line charts carry Datasets.
type ChartData struct {
	Labels           []string       `json:"labels"`
	Data             []float64      `json:"data,omitempty"`
	BackgroundColors []string       `json:"backgroundColor,omitempty"`
	Datasets         []ChartDataset `json:"datasets,omitempty"`
}

// ===== REPORTS =====

type ReportGrade struct {
	ID             uint                  `json:"id"`
	SubjectID      uint                  `json:"subject_id"`
	Subject        string                `json:"subject"`
	AssessmentName string                `json:"assessment_name"`
	AssessmentType models.AssessmentType `json:"assessment_type"`
	Score          float64               `json:"score"`
	MaxScore       float64               `json:"max_score"`
	Percentage     float64               `json:"percentage"`
	Band           analytics.Band        `json:"band"`
	Date           string                `json:"date"`
}

type StudentSummary struct {
	ID            uint   `json:"id"`
	StudentNumber string `json:"student_number"`
	Name          string `json:"name"`
	ClassName     string `json:"class_name,omitempty"`
}

type StudentReport struct {
	Student          StudentSummary               `json:"student"`
	AcademicYear     string                       `json:"academic_year"`
	Term             models.Term                  `json:"term"`
	Grades           []ReportGrade                `json:"grades"`
	AverageGrade     float64                      `json:"average_grade"`
	TotalSubjects    int                          `json:"total_subjects"`
	Band             analytics.Band               `json:"band"`
	SubjectBreakdown []analytics.SubjectBreakdown `json:"subject_breakdown"`
	GeneratedAt      time.Time                    `json:"generated_at"`
}

type RankedStudent struct {
	Rank          int                     `json:"rank"`
	StudentID     uint                    `json:"student_id"`
	StudentNumber string                  `json:"student_number"`
	Name          string                  `json:"name"`
	AverageGrade  float64                 `json:"average_grade"`
	TotalSubjects int                     `json:"total_subjects"`
	Trend         models.PerformanceTrend `json:"trend"`
}

type ClassReport struct {
	ClassID            uint            `json:"class_id"`
	ClassName          string          `json:"class_name"`
	AcademicYear       string          `json:"academic_year"`
	Term               models.Term     `json:"term"`
	StudentCount       int             `json:"student_count"`
	GradedStudentCount int             `json:"graded_student_count"`
	ClassAverage       float64         `json:"class_average"`
	Rankings           []RankedStudent `json:"rankings"`
	GeneratedAt        time.Time       `json:"generated_at"`
}

type SchoolTotals struct {
	Students       int64 `json:"students"`
	ActiveStudents int64 `json:"active_students"`
	Subjects       int64 `json:"subjects"`
	Grades         int   `json:"grades"`
}

type SchoolReport struct {
	AcademicYear      string                        `json:"academic_year"`
	Term              models.Term                   `json:"term"`
	Totals            SchoolTotals                  `json:"totals"`
	OverallAverage    float64                       `json:"overall_average"`
	OverallPassRate   float64                       `json:"overall_pass_rate"`
	GradeDistribution map[string]int                `json:"grade_distribution"`
	SubjectComparison []analytics.SubjectComparison `json:"subject_comparison"`
	GeneratedAt       time.Time                     `json:"generated_at"`
}

// ReportRequest selects the scope and output of a generated report.
type ReportRequest struct {
	ReportType   models.ReportType   `json:"report_type" validate:"required,oneof=STUDENT CLASS SCHOOL"`
	StudentID    uint                `json:"student_id" validate:"required_if=ReportType STUDENT"`
	ClassID      uint                `json:"class_id" validate:"required_if=ReportType CLASS"`
	AcademicYear string              `json:"academic_year" validate:"required,academic_year"`
	Term         models.Term         `json:"term" validate:"required,term"`
	Format       models.ReportFormat `json:"format" validate:"omitempty,report_format"`
}

// ReportParameters is what gets stored alongside a generated report.
type ReportParameters struct {
	StudentID    uint        `json:"student_id,omitempty"`
	ClassID      uint        `json:"class_id,omitempty"`
	AcademicYear string      `json:"academic_year"`
	Term         models.Term `json:"term"`
}

// ReportOutput is a generated report. Content is set for file formats;
// JSON output carries the payload only.
type ReportOutput struct {
	Record      *models.GeneratedReport `json:"record"`
	Payload     interface{}             `json:"payload"`
	Content     []byte                  `json:"-"`
	ContentType string                  `json:"-"`
	Filename    string                  `json:"-"`
}

type ReportHistoryResponse struct {
	Reports []*models.GeneratedReport `json:"reports"`
	Total   int64                     `json:"total"`
	Limit   int                       `json:"limit"`
	Offset  int                       `json:"offset"`
}

// ===== DIRECTORY =====

type StudentListResponse struct {
	Students []*models.Student `json:"students"`
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// SearchScope narrows a search to one kind of record.
type SearchScope string

const (
	SearchAll      SearchScope = "all"
	SearchStudents SearchScope = "students"
	SearchGrades   SearchScope = "grades"
	SearchSubjects SearchScope = "subjects"
)

// GradeSummary is the one-line view of a grade used by search and the
// dashboard feed.
type GradeSummary struct {
	ID             uint           `json:"id"`
	StudentName    string         `json:"student_name"`
	SubjectName    string         `json:"subject_name"`
	AssessmentName string         `json:"assessment_name"`
	Percentage     float64        `json:"percentage"`
	Band           analytics.Band `json:"band"`
	CreatedAt      time.Time      `json:"created_at"`
}

type SearchResults struct {
	Query    string            `json:"query"`
	Students []*models.Student `json:"students,omitempty"`
	Grades   []GradeSummary    `json:"grades,omitempty"`
	Subjects []*models.Subject `json:"subjects,omitempty"`
}

type DashboardStats struct {
	TotalStudents     int64            `json:"total_students"`
	ActiveStudents    int64            `json:"active_students"`
	TotalSubjects     int64            `json:"total_subjects"`
	TotalClasses      int              `json:"total_classes"`
	TotalGrades       int64            `json:"total_grades"`
	TodayGrades       int64            `json:"today_grades"`
	TodayStudents     int64            `json:"today_students"`
	RecentGrades      []GradeSummary   `json:"recent_grades"`
	GradeDistribution map[string]int64 `json:"grade_distribution"`
	GeneratedAt       time.Time        `json:"generated_at"`
}
