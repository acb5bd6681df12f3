package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/grade-analytics-service/internal/analytics"
	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
	"github.com/SAP-F-2025/grade-analytics-service/internal/repositories"
)

const (
	defaultStudentPageSize = 50
	maxStudentPageSize     = 500
	searchResultLimit      = 10
	recentGradesLimit      = 5
)

type directoryService struct {
	repo   repositories.Repository
	logger *ServiceLogger
	now    func() time.Time
}

func NewDirectoryService(repo repositories.Repository, logger *slog.Logger) DirectoryService {
	return &directoryService{
		repo:   repo,
		logger: NewServiceLogger(logger, LogConfig{Service: "grade-analytics", Component: "directory"}),
		now:    time.Now,
	}
}

func (s *directoryService) ListStudents(ctx context.Context, filters repositories.StudentFilters) (*StudentListResponse, error) {
	if filters.Limit <= 0 {
		filters.Limit = defaultStudentPageSize
	}
	if filters.Limit > maxStudentPageSize {
		filters.Limit = maxStudentPageSize
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}
	filters.Search = strings.TrimSpace(filters.Search)

	students, total, err := s.repo.Student().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return &StudentListResponse{
		Students: students,
		Total:    total,
		Limit:    filters.Limit,
		Offset:   filters.Offset,
	}, nil
}

func (s *directoryService) ListSubjects(ctx context.Context) ([]*models.Subject, error) {
	subjects, err := s.repo.Subject().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

func (s *directoryService) ListClasses(ctx context.Context) ([]*models.Class, error) {
	classes, err := s.repo.Class().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	return classes, nil
}

// Search returns at most ten matches of each kind in scope.
func (s *directoryService) Search(ctx context.Context, query string, scope SearchScope) (*SearchResults, error) {
	query = strings.TrimSpace(query)
	if scope == "" {
		scope = SearchAll
	}

	var errs ValidationErrors
	if query == "" {
		errs = append(errs, *NewValidationError("q", "is required", query))
	}
	switch scope {
	case SearchAll, SearchStudents, SearchGrades, SearchSubjects:
	default:
		errs = append(errs, *NewValidationError("type", "must be one of: all students grades subjects", scope))
	}
	if len(errs) > 0 {
		return nil, errs
	}

	results := &SearchResults{Query: query}

	if scope == SearchAll || scope == SearchStudents {
		students, _, err := s.repo.Student().List(ctx, repositories.StudentFilters{Search: query, Limit: searchResultLimit})
		if err != nil {
			return nil, fmt.Errorf("failed to search students: %w", err)
		}
		results.Students = students
	}

	if scope == SearchAll || scope == SearchGrades {
		grades, _, err := s.repo.Grade().List(ctx, repositories.GradeFilters{
			Search:       query,
			WithStudents: true,
			SortBy:       "created_at",
			Limit:        searchResultLimit,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to search grades: %w", err)
		}
		results.Grades = summarizeGrades(grades)
	}

	if scope == SearchAll || scope == SearchSubjects {
		subjects, err := s.repo.Subject().Search(ctx, query, searchResultLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to search subjects: %w", err)
		}
		results.Subjects = subjects
	}

	return results, nil
}

// DashboardStats counts "today" from midnight UTC.
func (s *directoryService) DashboardStats(ctx context.Context) (stats *DashboardStats, err error) {
	op := s.logger.WithOperation(ctx, "dashboard_stats", "")
	defer func() { op.LogResult(0, "dashboard", err) }()

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	stats = &DashboardStats{GeneratedAt: now}

	if stats.TotalStudents, err = s.repo.Student().Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	if stats.ActiveStudents, err = s.repo.Student().CountActive(ctx); err != nil {
		return nil, fmt.Errorf("failed to count active students: %w", err)
	}
	if stats.TotalSubjects, err = s.repo.Subject().Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count subjects: %w", err)
	}
	if _, stats.TodayStudents, err = s.repo.Student().List(ctx, repositories.StudentFilters{CreatedFrom: &today, Limit: 1}); err != nil {
		return nil, fmt.Errorf("failed to count new students: %w", err)
	}

	classes, err := s.repo.Class().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	stats.TotalClasses = len(classes)

	recent, total, err := s.repo.Grade().List(ctx, repositories.GradeFilters{
		WithStudents: true,
		SortBy:       "created_at",
		SortOrder:    "desc",
		Limit:        recentGradesLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load recent grades: %w", err)
	}
	stats.TotalGrades = total
	stats.RecentGrades = summarizeGrades(recent)

	if _, stats.TodayGrades, err = s.repo.Grade().List(ctx, repositories.GradeFilters{CreatedFrom: &today, Limit: 1}); err != nil {
		return nil, fmt.Errorf("failed to count today's grades: %w", err)
	}

	bands, err := s.repo.Grade().CountByBand(ctx, repositories.GradeFilters{})
	if err != nil {
		return nil, err
	}
	stats.GradeDistribution = make(map[string]int64, len(analytics.Bands))
	for _, band := range analytics.Bands {
		stats.GradeDistribution[string(band)] = bands[string(band)]
	}

	return stats, nil
}

func summarizeGrades(grades []*models.Grade) []GradeSummary {
	out := make([]GradeSummary, 0, len(grades))
	for _, g := range grades {
		summary := GradeSummary{
			ID:             g.ID,
			AssessmentName: g.AssessmentName,
			Percentage:     g.Percentage,
			Band:           analytics.BandFor(g.Percentage),
			CreatedAt:      g.CreatedAt,
		}
		if g.Student != nil {
			summary.StudentName = g.Student.FullName()
		}
		if g.Subject != nil {
			summary.SubjectName = g.Subject.Name
		}
		out = append(out, summary)
	}
	return out
}
