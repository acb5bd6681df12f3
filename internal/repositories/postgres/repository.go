package postgres

import (
	"github.com/SAP-F-2025/grade-analytics-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	grade        repositories.GradeRepository
	student      repositories.StudentRepository
	subject      repositories.SubjectRepository
	class        repositories.ClassRepository
	academicYear repositories.AcademicYearRepository
	analytics    repositories.AnalyticsRepository
	report       repositories.ReportRepository
}

// NewRepository builds every gorm-backed repository over one connection.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		grade:        NewGradePostgreSQL(db),
		student:      NewStudentPostgreSQL(db),
		subject:      NewSubjectPostgreSQL(db),
		class:        NewClassPostgreSQL(db),
		academicYear: NewAcademicYearPostgreSQL(db),
		analytics:    NewAnalyticsPostgreSQL(db),
		report:       NewReportPostgreSQL(db),
	}
}

func (r *repository) Grade() repositories.GradeRepository               { return r.grade }
func (r *repository) Student() repositories.StudentRepository           { return r.student }
func (r *repository) Subject() repositories.SubjectRepository           { return r.subject }
func (r *repository) Class() repositories.ClassRepository               { return r.class }
func (r *repository) AcademicYear() repositories.AcademicYearRepository { return r.academicYear }
func (r *repository) Analytics() repositories.AnalyticsRepository       { return r.analytics }
func (r *repository) Report() repositories.ReportRepository             { return r.report }
