package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/grade-analytics-service/internal/analytics"
	"github.com/SAP-F-2025/grade-analytics-service/internal/export"
	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
	"github.com/SAP-F-2025/grade-analytics-service/internal/repositories"
	"github.com/SAP-F-2025/grade-analytics-service/internal/validator"
	"gorm.io/datatypes"
)

const (
	defaultHistoryPageSize = 20
	maxHistoryPageSize     = 100
	systemUser             = "system"
)

type reportService struct {
	repo      repositories.Repository
	analytics AnalyticsService
	events    AnalyticsEventService
	logger    *ServiceLogger
	validator *validator.Validator
	now       func() time.Time
}

func NewReportService(
	repo repositories.Repository,
	analyticsService AnalyticsService,
	eventService AnalyticsEventService,
	logger *slog.Logger,
	validator *validator.Validator,
) ReportService {
	return &reportService{
		repo:      repo,
		analytics: analyticsService,
		events:    eventService,
		logger:    NewServiceLogger(logger, LogConfig{Service: "grade-analytics", Component: "reports"}),
		validator: validator,
		now:       time.Now,
	}
}

// ===== ASSEMBLY =====

// AssembleStudentReport lists the student's grades for the term inside the
// year window. A student without grades gets a report of zeros.
func (s *reportService) AssembleStudentReport(ctx context.Context, studentID uint, academicYear string, term models.Term) (*StudentReport, error) {
	if err := validateScope(academicYear, term); err != nil {
		return nil, err
	}

	student, err := s.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		return nil, notFoundOr(err, ErrStudentNotFound, "failed to get student")
	}

	window, err := s.analytics.ResolveYearWindow(ctx, academicYear)
	if err != nil {
		return nil, err
	}

	grades, _, err := s.repo.Grade().List(ctx, repositories.GradeFilters{
		StudentID: &student.ID,
		Term:      &term,
		DateFrom:  &window.Start,
		DateTo:    &window.End,
		SortBy:    "date",
		SortOrder: "asc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load student grades: %w", err)
	}

	report := &StudentReport{
		Student:          summarizeStudent(student),
		AcademicYear:     academicYear,
		Term:             term,
		Grades:           make([]ReportGrade, 0, len(grades)),
		AverageGrade:     analytics.Mean(analytics.Percentages(grades)),
		TotalSubjects:    analytics.DistinctSubjects(grades),
		SubjectBreakdown: analytics.BreakdownBySubject(grades),
		GeneratedAt:      s.now(),
	}
	report.Band = analytics.BandFor(report.AverageGrade)

	for _, g := range grades {
		report.Grades = append(report.Grades, toReportGrade(g))
	}
	return report, nil
}

func (s *reportService) AssembleClassReport(ctx context.Context, classID uint, academicYear string, term models.Term) (*ClassReport, error) {
	if err := validateScope(academicYear, term); err != nil {
		return nil, err
	}

	class, err := s.repo.Class().GetByID(ctx, classID)
	if err != nil {
		return nil, notFoundOr(err, ErrClassNotFound, "failed to get class")
	}

	students, err := s.repo.Student().GetByClass(ctx, class.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get class students: %w", err)
	}

	ranked, err := s.analytics.RankClassPerformance(ctx, class.ID, academicYear, term)
	if err != nil {
		return nil, err
	}

	report := &ClassReport{
		ClassID:            class.ID,
		ClassName:          class.Name,
		AcademicYear:       academicYear,
		Term:               term,
		StudentCount:       len(students),
		GradedStudentCount: len(ranked),
		Rankings:           make([]RankedStudent, 0, len(ranked)),
		GeneratedAt:        s.now(),
	}

	averages := make([]float64, 0, len(ranked))
	for _, p := range ranked {
		averages = append(averages, p.AverageGrade)
		report.Rankings = append(report.Rankings, toRankedStudent(p))
	}
	report.ClassAverage = analytics.Mean(averages)

	return report, nil
}

func (s *reportService) AssembleSchoolReport(ctx context.Context, academicYear string, term models.Term) (*SchoolReport, error) {
	if err := validateScope(academicYear, term); err != nil {
		return nil, err
	}

	window, err := s.analytics.ResolveYearWindow(ctx, academicYear)
	if err != nil {
		return nil, err
	}

	var totals SchoolTotals
	if totals.Students, err = s.repo.Student().Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	if totals.ActiveStudents, err = s.repo.Student().CountActive(ctx); err != nil {
		return nil, fmt.Errorf("failed to count active students: %w", err)
	}
	if totals.Subjects, err = s.repo.Subject().Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count subjects: %w", err)
	}

	grades, _, err := s.repo.Grade().List(ctx, repositories.GradeFilters{
		Term:     &term,
		DateFrom: &window.Start,
		DateTo:   &window.End,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load grades: %w", err)
	}
	totals.Grades = len(grades)

	comparison, err := s.analytics.CompareSubjects(ctx, academicYear, term)
	if err != nil {
		return nil, err
	}

	cell, _ := analytics.Distribute(analytics.Percentages(grades))
	return &SchoolReport{
		AcademicYear:      academicYear,
		Term:              term,
		Totals:            totals,
		OverallAverage:    cell.AverageScore,
		OverallPassRate:   cell.PassRate,
		GradeDistribution: bandCountsByLetter(cell.Counts),
		SubjectComparison: comparison,
		GeneratedAt:       s.now(),
	}, nil
}

// ===== GENERATION & HISTORY =====

func (s *reportService) Generate(ctx context.Context, req *ReportRequest, userID string) (output *ReportOutput, err error) {
	op := s.logger.WithOperation(ctx, "generate_report", userID)
	defer func() {
		var id uint
		if output != nil && output.Record != nil {
			id = output.Record.ID
		}
		op.LogResult(id, "generated_report", err)
	}()

	if err = s.validator.Validate(req); err != nil {
		return nil, err
	}
	format := req.Format
	if format == "" {
		format = models.FormatJSON
	}

	var (
		payload export.Tabular
		title   string
		params  = ReportParameters{AcademicYear: req.AcademicYear, Term: req.Term}
	)

	switch req.ReportType {
	case models.ReportStudent:
		report, err := s.AssembleStudentReport(ctx, req.StudentID, req.AcademicYear, req.Term)
		if err != nil {
			return nil, err
		}
		payload = report
		params.StudentID = req.StudentID
		title = fmt.Sprintf("%s - %s", req.ReportType.DefaultTemplateName(), report.Student.Name)
	case models.ReportClass:
		report, err := s.AssembleClassReport(ctx, req.ClassID, req.AcademicYear, req.Term)
		if err != nil {
			return nil, err
		}
		payload = report
		params.ClassID = req.ClassID
		title = fmt.Sprintf("%s - %s", req.ReportType.DefaultTemplateName(), report.ClassName)
	default:
		report, err := s.AssembleSchoolReport(ctx, req.AcademicYear, req.Term)
		if err != nil {
			return nil, err
		}
		payload = report
		title = req.ReportType.DefaultTemplateName()
	}
	title = fmt.Sprintf("%s (%s %s)", title, req.AcademicYear, req.Term.Label())

	output = &ReportOutput{Payload: payload}
	if format != models.FormatJSON {
		formatter, err := export.NewFormatter(format)
		if err != nil {
			return nil, err
		}
		if output.Content, err = formatter.Format(payload); err != nil {
			return nil, fmt.Errorf("failed to render %s report: %w", format, err)
		}
		output.ContentType = formatter.ContentType()
		output.Filename = reportFilename(req, formatter.Extension())
	}

	output.Record, err = s.RecordGeneratedReport(ctx, req.ReportType, title, params, format, userID)
	if err != nil {
		return nil, err
	}
	return output, nil
}

// RecordGeneratedReport stores a history row, creating the report type's
// template on first use.
func (s *reportService) RecordGeneratedReport(ctx context.Context, reportType models.ReportType, title string, params ReportParameters, format models.ReportFormat, userID string) (*models.GeneratedReport, error) {
	if userID == "" {
		userID = systemUser
	}

	template, err := s.repo.Report().GetOrCreateTemplate(ctx, reportType)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report parameters: %w", err)
	}

	record := &models.GeneratedReport{
		TemplateID:  template.ID,
		Title:       title,
		GeneratedBy: userID,
		Parameters:  datatypes.JSON(encoded),
		Format:      format,
	}
	if err := s.repo.Report().CreateGeneratedReport(ctx, record); err != nil {
		return nil, err
	}
	record.Template = template

	s.events.NotifyReportGenerated(ctx, record, reportType)
	return record, nil
}

func (s *reportService) ListReportHistory(ctx context.Context, userID string, limit, offset int) (*ReportHistoryResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryPageSize
	}
	if limit > maxHistoryPageSize {
		limit = maxHistoryPageSize
	}
	if offset < 0 {
		offset = 0
	}

	reports, total, err := s.repo.Report().ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list report history: %w", err)
	}

	return &ReportHistoryResponse{
		Reports: reports,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

// ===== HELPER METHODS =====

func summarizeStudent(student *models.Student) StudentSummary {
	summary := StudentSummary{
		ID:            student.ID,
		StudentNumber: student.StudentNumber,
		Name:          student.FullName(),
	}
	if student.CurrentClass != nil {
		summary.ClassName = student.CurrentClass.Name
	}
	return summary
}

func toReportGrade(g *models.Grade) ReportGrade {
	rg := ReportGrade{
		ID:             g.ID,
		SubjectID:      g.SubjectID,
		AssessmentName: g.AssessmentName,
		AssessmentType: g.AssessmentType,
		Score:          g.Score,
		MaxScore:       g.MaxScore,
		Percentage:     g.Percentage,
		Band:           analytics.BandFor(g.Percentage),
		Date:           g.Date.Format(dateLayout),
	}
	if g.Subject != nil {
		rg.Subject = g.Subject.Name
	}
	return rg
}

func toRankedStudent(p *models.StudentPerformance) RankedStudent {
	rs := RankedStudent{
		StudentID:     p.StudentID,
		AverageGrade:  p.AverageGrade,
		TotalSubjects: p.TotalSubjects,
		Trend:         p.PerformanceTrend,
	}
	if p.RankInClass != nil {
		rs.Rank = *p.RankInClass
	}
	if p.Student != nil {
		rs.StudentNumber = p.Student.StudentNumber
		rs.Name = p.Student.FullName()
	}
	return rs
}

func reportFilename(req *ReportRequest, extension string) string {
	scope := "school"
	switch req.ReportType {
	case models.ReportStudent:
		scope = fmt.Sprintf("student-%d", req.StudentID)
	case models.ReportClass:
		scope = fmt.Sprintf("class-%d", req.ClassID)
	}
	return fmt.Sprintf("%s-report-%s-%s.%s", scope, req.AcademicYear, req.Term, extension)
}
