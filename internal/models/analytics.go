package models

import "time"

type PerformanceTrend string

const (
	TrendImproving PerformanceTrend = "IMPROVING"
	TrendStable    PerformanceTrend = "STABLE"
	TrendDeclining PerformanceTrend = "DECLINING"
)

// GradeDistribution is the cached band breakdown for one
// (subject, academic year, term) cell.
type GradeDistribution struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	SubjectID    uint   `json:"subject_id" gorm:"not null;uniqueIndex:uq_grade_distribution_cell"`
	AcademicYear string `json:"academic_year" gorm:"not null;size:50;uniqueIndex:uq_grade_distribution_cell"`
	Term         Term   `json:"term" gorm:"not null;size:10;uniqueIndex:uq_grade_distribution_cell"`

	// Band counts
	ACount int `json:"a_count"`
	BCount int `json:"b_count"`
	CCount int `json:"c_count"`
	DCount int `json:"d_count"`
	FCount int `json:"f_count"`

	TotalStudents int     `json:"total_students"`
	AverageScore  float64 `json:"average_score" gorm:"type:numeric(5,2)"`
	PassRate      float64 `json:"pass_rate" gorm:"type:numeric(5,2)"`

	CalculatedAt time.Time `json:"calculated_at"`

	Subject *Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE"`
}

// BandCounts returns the counts keyed by band letter.
func (d *GradeDistribution) BandCounts() map[string]int {
	return map[string]int{
		"A": d.ACount,
		"B": d.BCount,
		"C": d.CCount,
		"D": d.DCount,
		"F": d.FCount,
	}
}

// StudentPerformance is the per-student rollup for one
// (student, academic year, term) cell.
type StudentPerformance struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	StudentID    uint   `json:"student_id" gorm:"not null;uniqueIndex:uq_student_performance_cell"`
	AcademicYear string `json:"academic_year" gorm:"not null;size:50;uniqueIndex:uq_student_performance_cell"`
	Term         Term   `json:"term" gorm:"not null;size:10;uniqueIndex:uq_student_performance_cell"`

	TotalSubjects    int              `json:"total_subjects"`
	AverageGrade     float64          `json:"average_grade" gorm:"type:numeric(5,2)"`
	RankInClass      *int             `json:"rank_in_class"`
	PerformanceTrend PerformanceTrend `json:"performance_trend" gorm:"size:10;default:STABLE"`

	CalculatedAt time.Time `json:"calculated_at"`

	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}
