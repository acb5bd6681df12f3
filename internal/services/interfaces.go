package services

import (
	"context"
	"io"

	"github.com/SAP-F-2025/grade-analytics-service/internal/analytics"
	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
	"github.com/SAP-F-2025/grade-analytics-service/internal/repositories"
)

// GradeService is the write side: grade entry, edits and bulk import.
type GradeService interface {
	Record(ctx context.Context, req *GradeRequest, createdBy string) (*models.Grade, error)
	Update(ctx context.Context, id uint, req *GradeRequest, updatedBy string) (*models.Grade, error)
	Delete(ctx context.Context, id uint, deletedBy string) error
	GetByID(ctx context.Context, id uint) (*models.Grade, error)
	List(ctx context.Context, filters repositories.GradeFilters) (*GradeListResponse, error)

	BulkUpsert(ctx context.Context, rows []GradeRequest, createdBy string) (*BulkGradeResponse, error)
	ImportFromFile(ctx context.Context, reader io.Reader, filename, createdBy string) (*BulkGradeResponse, error)

	GetStatistics(ctx context.Context, filters GradeStatisticsFilters) (*GradeStatistics, error)
}

// AnalyticsService computes, stores and charts the derived cells.
type AnalyticsService interface {
	ResolveYearWindow(ctx context.Context, academicYear string) (analytics.YearWindow, error)

	ComputeDistribution(ctx context.Context, subjectID uint, academicYear string, term models.Term) (*models.GradeDistribution, error)
	ListDistributions(ctx context.Context, academicYear string, term models.Term) ([]*models.GradeDistribution, error)
	ComputeStudentPerformance(ctx context.Context, studentID uint, academicYear string, term models.Term) (*models.StudentPerformance, error)
	RankClassPerformance(ctx context.Context, classID uint, academicYear string, term models.Term) ([]*models.StudentPerformance, error)
	CompareSubjects(ctx context.Context, academicYear string, term models.Term) ([]analytics.SubjectComparison, error)

	GradeDistributionChart(ctx context.Context, subjectID uint, academicYear string, term models.Term) (*ChartData, error)
	SubjectComparisonChart(ctx context.Context, academicYear string, term models.Term) (*ChartData, error)
	PerformanceTrendChart(ctx context.Context, studentID uint, academicYear string) (*ChartData, error)
}

// DirectoryService lists the reference entities and serves search and the
// dashboard summary.
type DirectoryService interface {
	ListStudents(ctx context.Context, filters repositories.StudentFilters) (*StudentListResponse, error)
	ListSubjects(ctx context.Context) ([]*models.Subject, error)
	ListClasses(ctx context.Context) ([]*models.Class, error)
	Search(ctx context.Context, query string, scope SearchScope) (*SearchResults, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

// ReportService assembles report payloads and keeps the generation history.
type ReportService interface {
	AssembleStudentReport(ctx context.Context, studentID uint, academicYear string, term models.Term) (*StudentReport, error)
	AssembleClassReport(ctx context.Context, classID uint, academicYear string, term models.Term) (*ClassReport, error)
	AssembleSchoolReport(ctx context.Context, academicYear string, term models.Term) (*SchoolReport, error)

	// Generate assembles the requested report, renders it and records it.
	Generate(ctx context.Context, req *ReportRequest, userID string) (*ReportOutput, error)
	RecordGeneratedReport(ctx context.Context, reportType models.ReportType, title string, params ReportParameters, format models.ReportFormat, userID string) (*models.GeneratedReport, error)
	ListReportHistory(ctx context.Context, userID string, limit, offset int) (*ReportHistoryResponse, error)
}
