package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/grade-analytics-service/internal/analytics"
	"github.com/SAP-F-2025/grade-analytics-service/internal/cache"
	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
	"github.com/SAP-F-2025/grade-analytics-service/internal/repositories"
)

type analyticsService struct {
	repo     repositories.Repository
	events   AnalyticsEventService
	cache    cache.CacheService
	chartTTL time.Duration
	logger   *ServiceLogger
	now      func() time.Time
}

func NewAnalyticsService(
	repo repositories.Repository,
	eventService AnalyticsEventService,
	cacheService cache.CacheService,
	chartTTL time.Duration,
	logger *slog.Logger,
) AnalyticsService {
	return newAnalyticsService(repo, eventService, cacheService, chartTTL, logger)
}

func newAnalyticsService(
	repo repositories.Repository,
	eventService AnalyticsEventService,
	cacheService cache.CacheService,
	chartTTL time.Duration,
	logger *slog.Logger,
) *analyticsService {
	return &analyticsService{
		repo:     repo,
		events:   eventService,
		cache:    cacheService,
		chartTTL: chartTTL,
		logger:   NewServiceLogger(logger, LogConfig{Service: "grade-analytics", Component: "analytics"}),
		now:      time.Now,
	}
}

// ===== ACADEMIC YEAR SCOPE =====

// ResolveYearWindow prefers the dates of a registered academic year and
// falls back to the calendar year named by the label. An empty label
// resolves to the current academic year.
func (s *analyticsService) ResolveYearWindow(ctx context.Context, academicYear string) (analytics.YearWindow, error) {
	if academicYear == "" {
		return s.currentYearWindow(ctx)
	}
	if _, err := analytics.ParseAcademicYear(academicYear); err != nil {
		return analytics.YearWindow{}, academicYearError(academicYear)
	}

	year, err := s.repo.AcademicYear().GetByName(ctx, academicYear)
	if err != nil {
		return analytics.YearWindow{}, fmt.Errorf("failed to get academic year: %w", err)
	}
	if year != nil {
		return analytics.DateWindow(academicYear, year.StartDate, year.EndDate), nil
	}
	return analytics.CalendarYearWindow(academicYear)
}

func (s *analyticsService) currentYearWindow(ctx context.Context) (analytics.YearWindow, error) {
	year, err := s.repo.AcademicYear().GetCurrent(ctx)
	if err != nil {
		return analytics.YearWindow{}, notFoundOr(err, ErrAcademicYearNotFound, "failed to get current academic year")
	}
	return analytics.DateWindow(year.Name, year.StartDate, year.EndDate), nil
}

// ===== DISTRIBUTION =====

func (s *analyticsService) ComputeDistribution(ctx context.Context, subjectID uint, academicYear string, term models.Term) (distribution *models.GradeDistribution, err error) {
	op := s.logger.WithOperation(ctx, "compute_distribution", "")
	defer func() { op.LogResult(subjectID, "grade_distribution", err) }()

	window, err := s.resolveScope(ctx, academicYear, term)
	if err != nil {
		return nil, err
	}

	subject, err := s.repo.Subject().GetByID(ctx, subjectID)
	if err != nil {
		return nil, notFoundOr(err, ErrSubjectNotFound, "failed to get subject")
	}

	return s.computeDistribution(ctx, subject, window, term)
}

func (s *analyticsService) computeDistribution(ctx context.Context, subject *models.Subject, window analytics.YearWindow, term models.Term) (*models.GradeDistribution, error) {
	grades, err := s.gradesInScope(ctx, repositories.GradeFilters{SubjectID: &subject.ID}, window, term)
	if err != nil {
		return nil, err
	}

	cell, ok := analytics.Distribute(analytics.Percentages(grades))
	if !ok {
		return nil, fmt.Errorf("subject %d, %s %s: %w", subject.ID, window.Label, term, ErrEmptyResultSet)
	}

	row := &models.GradeDistribution{
		SubjectID:    subject.ID,
		AcademicYear: window.Label,
		Term:         term,
		CalculatedAt: s.now(),
	}
	cell.ApplyTo(row)

	if err := s.repo.Analytics().UpsertDistribution(ctx, row); err != nil {
		return nil, err
	}
	s.dropCharts(ctx, cache.DistributionChartKey(subject.ID, window.Label, string(term)))
	row.Subject = subject

	s.events.NotifyDistributionCalculated(ctx, row)
	return row, nil
}

// ListDistributions returns the stored cells of a scope without
// recomputing them.
func (s *analyticsService) ListDistributions(ctx context.Context, academicYear string, term models.Term) ([]*models.GradeDistribution, error) {
	if err := validateScope(academicYear, term); err != nil {
		return nil, err
	}

	distributions, err := s.repo.Analytics().ListDistributions(ctx, academicYear, term)
	if err != nil {
		return nil, fmt.Errorf("failed to list grade distributions: %w", err)
	}
	return distributions, nil
}

// ===== STUDENT PERFORMANCE =====

func (s *analyticsService) ComputeStudentPerformance(ctx context.Context, studentID uint, academicYear string, term models.Term) (performance *models.StudentPerformance, err error) {
	op := s.logger.WithOperation(ctx, "compute_student_performance", "")
	defer func() { op.LogResult(studentID, "student_performance", err) }()

	window, err := s.resolveScope(ctx, academicYear, term)
	if err != nil {
		return nil, err
	}

	student, err := s.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		return nil, notFoundOr(err, ErrStudentNotFound, "failed to get student")
	}

	performance, err = s.buildPerformance(ctx, student.ID, window, term)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Analytics().UpsertPerformance(ctx, performance); err != nil {
		return nil, err
	}
	s.dropCharts(ctx, cache.PerformanceTrendChartKey(student.ID, window.Label))

	// The upsert keeps a rank set by an earlier ranking pass; surface it.
	if stored, err := s.repo.Analytics().GetPerformance(ctx, student.ID, window.Label, term); err == nil {
		performance.RankInClass = stored.RankInClass
	}
	performance.Student = student

	s.events.NotifyPerformanceCalculated(ctx, performance)
	return performance, nil
}

// buildPerformance computes a performance row without persisting it.
func (s *analyticsService) buildPerformance(ctx context.Context, studentID uint, window analytics.YearWindow, term models.Term) (*models.StudentPerformance, error) {
	filters := repositories.GradeFilters{StudentID: &studentID}

	grades, err := s.gradesInScope(ctx, filters, window, term)
	if err != nil {
		return nil, err
	}
	if len(grades) == 0 {
		return nil, fmt.Errorf("student %d, %s %s: %w", studentID, window.Label, term, ErrEmptyResultSet)
	}

	var previous *float64
	if prevTerm, ok := term.Previous(); ok {
		prevGrades, err := s.gradesInScope(ctx, filters, window, prevTerm)
		if err != nil {
			return nil, err
		}
		if len(prevGrades) > 0 {
			avg := analytics.Mean(analytics.Percentages(prevGrades))
			previous = &avg
		}
	}

	cell, _ := analytics.Perform(grades, previous)
	row := &models.StudentPerformance{
		StudentID:    studentID,
		AcademicYear: window.Label,
		Term:         term,
		CalculatedAt: s.now(),
	}
	cell.ApplyTo(row)
	return row, nil
}

// ===== RANKING & COMPARISON =====

func (s *analyticsService) RankClassPerformance(ctx context.Context, classID uint, academicYear string, term models.Term) (ranked []*models.StudentPerformance, err error) {
	op := s.logger.WithOperation(ctx, "rank_class_performance", "")
	defer func() { op.LogResult(classID, "class", err) }()

	window, err := s.resolveScope(ctx, academicYear, term)
	if err != nil {
		return nil, err
	}

	class, err := s.repo.Class().GetByID(ctx, classID)
	if err != nil {
		return nil, notFoundOr(err, ErrClassNotFound, "failed to get class")
	}

	ranked, _, err = s.rankClass(ctx, class, window, term)
	return ranked, err
}

// rankClass computes, ranks and stores the performance of every graded
// student in the class. It also returns the number of enrolled students.
func (s *analyticsService) rankClass(ctx context.Context, class *models.Class, window analytics.YearWindow, term models.Term) ([]*models.StudentPerformance, int, error) {
	students, err := s.repo.Student().GetByClass(ctx, class.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get class students: %w", err)
	}

	byID := make(map[uint]*models.Student, len(students))
	cells := make([]*models.StudentPerformance, 0, len(students))
	for _, student := range students {
		cell, err := s.buildPerformance(ctx, student.ID, window, term)
		if err != nil {
			if IsEmptyResult(err) {
				continue
			}
			return nil, 0, err
		}
		byID[student.ID] = student
		cells = append(cells, cell)
	}

	analytics.RankPerformances(cells)

	if len(cells) > 0 {
		if err := s.repo.Analytics().UpsertPerformances(ctx, cells); err != nil {
			return nil, 0, err
		}
	}

	for _, cell := range cells {
		s.dropCharts(ctx, cache.PerformanceTrendChartKey(cell.StudentID, window.Label))
		cell.Student = byID[cell.StudentID]
		s.events.NotifyPerformanceCalculated(ctx, cell)
	}
	return cells, len(students), nil
}

func (s *analyticsService) CompareSubjects(ctx context.Context, academicYear string, term models.Term) (rows []analytics.SubjectComparison, err error) {
	op := s.logger.WithOperation(ctx, "compare_subjects", "")
	defer func() { op.LogResult(0, "subject_comparison", err) }()

	window, err := s.resolveScope(ctx, academicYear, term)
	if err != nil {
		return nil, err
	}
	return s.compareSubjects(ctx, window, term)
}

func (s *analyticsService) compareSubjects(ctx context.Context, window analytics.YearWindow, term models.Term) ([]analytics.SubjectComparison, error) {
	subjects, err := s.repo.Subject().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}

	rows := make([]analytics.SubjectComparison, 0, len(subjects))
	for _, subject := range subjects {
		distribution, err := s.computeDistribution(ctx, subject, window, term)
		if err != nil {
			if IsEmptyResult(err) {
				continue
			}
			return nil, err
		}
		rows = append(rows, analytics.SubjectComparison{
			SubjectID:         subject.ID,
			Subject:           subject.Name,
			AverageScore:      distribution.AverageScore,
			PassRate:          distribution.PassRate,
			TotalStudents:     distribution.TotalStudents,
			GradeDistribution: distribution.BandCounts(),
		})
	}

	return analytics.SortSubjectComparisons(rows), nil
}

// ===== CHARTS =====

const (
	comparisonChartColor = "#007bff"
	trendChartColor      = "#6f42c1"
	trendChartTension    = 0.1
)

// GradeDistributionChart charts the stored cell; it does not recompute.
func (s *analyticsService) GradeDistributionChart(ctx context.Context, subjectID uint, academicYear string, term models.Term) (*ChartData, error) {
	if err := validateScope(academicYear, term); err != nil {
		return nil, err
	}

	key := cache.DistributionChartKey(subjectID, academicYear, string(term))
	return s.cachedChart(ctx, key, func() (*ChartData, error) {
		distribution, err := s.repo.Analytics().GetDistribution(ctx, subjectID, academicYear, term)
		if err != nil {
			return nil, notFoundOr(err, ErrDistributionNotFound, "failed to get grade distribution")
		}

		counts := distribution.BandCounts()
		chart := &ChartData{
			Labels:           make([]string, 0, len(analytics.Bands)),
			Data:             make([]float64, 0, len(analytics.Bands)),
			BackgroundColors: make([]string, 0, len(analytics.Bands)),
		}
		for _, band := range analytics.Bands {
			chart.Labels = append(chart.Labels, band.ChartLabel())
			chart.Data = append(chart.Data, float64(counts[string(band)]))
			chart.BackgroundColors = append(chart.BackgroundColors, band.ChartColor())
		}
		return chart, nil
	})
}

func (s *analyticsService) SubjectComparisonChart(ctx context.Context, academicYear string, term models.Term) (*ChartData, error) {
	if err := validateScope(academicYear, term); err != nil {
		return nil, err
	}

	key := cache.SubjectComparisonChartKey(academicYear, string(term))
	return s.cachedChart(ctx, key, func() (*ChartData, error) {
		rows, err := s.CompareSubjects(ctx, academicYear, term)
		if err != nil {
			return nil, err
		}

		dataset := ChartDataset{
			Label:           "Average Score",
			Data:            make([]float64, 0, len(rows)),
			BackgroundColor: comparisonChartColor,
		}
		labels := make([]string, 0, len(rows))
		for _, row := range rows {
			labels = append(labels, row.Subject)
			dataset.Data = append(dataset.Data, row.AverageScore)
		}
		return &ChartData{Labels: labels, Datasets: []ChartDataset{dataset}}, nil
	})
}

// PerformanceTrendChart plots the stored term averages; a term without a
// stored cell plots as 0.
func (s *analyticsService) PerformanceTrendChart(ctx context.Context, studentID uint, academicYear string) (*ChartData, error) {
	if _, err := analytics.ParseAcademicYear(academicYear); err != nil {
		return nil, academicYearError(academicYear)
	}

	key := cache.PerformanceTrendChartKey(studentID, academicYear)
	return s.cachedChart(ctx, key, func() (*ChartData, error) {
		if _, err := s.repo.Student().GetByID(ctx, studentID); err != nil {
			return nil, notFoundOr(err, ErrStudentNotFound, "failed to get student")
		}

		performances, err := s.repo.Analytics().ListStudentPerformances(ctx, studentID, academicYear)
		if err != nil {
			return nil, fmt.Errorf("failed to list student performances: %w", err)
		}
		byTerm := make(map[models.Term]float64, len(performances))
		for _, p := range performances {
			byTerm[p.Term] = p.AverageGrade
		}

		dataset := ChartDataset{
			Label:       fmt.Sprintf("%s Performance", academicYear),
			Data:        make([]float64, 0, len(models.Terms)),
			BorderColor: trendChartColor,
			Tension:     trendChartTension,
		}
		labels := make([]string, 0, len(models.Terms))
		for _, term := range models.Terms {
			labels = append(labels, term.Label())
			dataset.Data = append(dataset.Data, byTerm[term])
		}
		return &ChartData{Labels: labels, Datasets: []ChartDataset{dataset}}, nil
	})
}

// cachedChart serves a chart from cache, building and storing it on a miss.
// Cache failures degrade to building the chart.
func (s *analyticsService) cachedChart(ctx context.Context, key string, build func() (*ChartData, error)) (*ChartData, error) {
	var cached ChartData
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.logger.Warn("Chart cache read failed", "key", key, "error", err)
	}

	chart, err := build()
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, chart, s.chartTTL); err != nil {
		s.logger.logger.Warn("Chart cache write failed", "key", key, "error", err)
	}
	return chart, nil
}

// dropCharts evicts charts built from a cell that was just overwritten.
func (s *analyticsService) dropCharts(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.logger.Warn("Failed to invalidate chart cache", "key", key, "error", err)
		}
	}
}

// ===== HELPER METHODS =====

func (s *analyticsService) resolveScope(ctx context.Context, academicYear string, term models.Term) (analytics.YearWindow, error) {
	if err := validateScope(academicYear, term); err != nil {
		return analytics.YearWindow{}, err
	}
	return s.ResolveYearWindow(ctx, academicYear)
}

// gradesInScope loads every grade matching filters for the term inside the
// year window.
func (s *analyticsService) gradesInScope(ctx context.Context, filters repositories.GradeFilters, window analytics.YearWindow, term models.Term) ([]*models.Grade, error) {
	filters.Term = &term
	filters.DateFrom = &window.Start
	filters.DateTo = &window.End
	filters.Limit = 0
	filters.Offset = 0

	grades, _, err := s.repo.Grade().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to load grades: %w", err)
	}
	return grades, nil
}

func validateScope(academicYear string, term models.Term) error {
	var errs ValidationErrors
	if _, err := analytics.ParseAcademicYear(academicYear); err != nil {
		errs = append(errs, *NewValidationError("academic_year", "must be an academic year in YYYY-YYYY form", academicYear))
	}
	if !isValidTerm(term) {
		errs = append(errs, *NewValidationError("term", "must be a valid term (TERM1, TERM2, TERM3)", term))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func academicYearError(academicYear string) error {
	return ValidationErrors{*NewValidationError("academic_year", "must be an academic year in YYYY-YYYY form", academicYear)}
}

func isValidTerm(term models.Term) bool {
	for _, t := range models.Terms {
		if t == term {
			return true
		}
	}
	return false
}

// notFoundOr maps a repository miss onto the given domain error and wraps
// anything else.
func notFoundOr(err, notFound error, msg string) error {
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
