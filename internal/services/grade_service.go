package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/grade-analytics-service/internal/analytics"
	"github.com/SAP-F-2025/grade-analytics-service/internal/cache"
	"github.com/SAP-F-2025/grade-analytics-service/internal/events"
	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
	"github.com/SAP-F-2025/grade-analytics-service/internal/repositories"
	"github.com/SAP-F-2025/grade-analytics-service/internal/validator"
)

const (
	defaultGradePageSize = 50
	maxGradePageSize     = 500
)

type gradeService struct {
	repo      repositories.Repository
	events    AnalyticsEventService
	cache     cache.CacheService
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewGradeService(
	repo repositories.Repository,
	eventService AnalyticsEventService,
	cacheService cache.CacheService,
	logger *slog.Logger,
	validator *validator.Validator,
) GradeService {
	return &gradeService{
		repo:      repo,
		events:    eventService,
		cache:     cacheService,
		logger:    NewServiceLogger(logger, LogConfig{Service: "grade-analytics", Component: "grades"}),
		validator: validator,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *gradeService) Record(ctx context.Context, req *GradeRequest, createdBy string) (grade *models.Grade, err error) {
	op := s.logger.WithOperation(ctx, "record_grade", createdBy)
	defer func() { op.LogResult(gradeID(grade), "grade", err) }()

	grade, err = s.buildGrade(req)
	if err != nil {
		return nil, err
	}
	if err = s.checkReferences(ctx, grade); err != nil {
		return nil, err
	}
	if createdBy != "" {
		grade.CreatedBy = &createdBy
	}

	if err = s.repo.Grade().Create(ctx, grade); err != nil {
		return nil, fmt.Errorf("failed to record grade: %w", err)
	}

	op.LogAudit(AuditEventCreate, grade.ID, "grade", nil, grade.Percentage)
	s.afterWrite(ctx, events.EventGradeRecorded, grade, createdBy)
	return grade, nil
}

func (s *gradeService) Update(ctx context.Context, id uint, req *GradeRequest, updatedBy string) (grade *models.Grade, err error) {
	op := s.logger.WithOperation(ctx, "update_grade", updatedBy)
	defer func() { op.LogResult(id, "grade", err) }()

	existing, err := s.repo.Grade().GetByID(ctx, id)
	if err != nil {
		return nil, s.translateGradeError(err)
	}

	grade, err = s.buildGrade(req)
	if err != nil {
		return nil, err
	}
	if err = s.checkReferences(ctx, grade); err != nil {
		return nil, err
	}
	grade.ID = existing.ID
	grade.CreatedBy = existing.CreatedBy
	grade.CreatedAt = existing.CreatedAt

	if err = s.repo.Grade().Update(ctx, grade); err != nil {
		return nil, s.translateGradeError(err)
	}

	op.LogAudit(AuditEventUpdate, grade.ID, "grade", existing.Percentage, grade.Percentage)
	s.afterWrite(ctx, events.EventGradeUpdated, grade, updatedBy)
	return grade, nil
}

func (s *gradeService) Delete(ctx context.Context, id uint, deletedBy string) (err error) {
	op := s.logger.WithOperation(ctx, "delete_grade", deletedBy)
	defer func() { op.LogResult(id, "grade", err) }()

	existing, err := s.repo.Grade().GetByID(ctx, id)
	if err != nil {
		return s.translateGradeError(err)
	}

	if err = s.repo.Grade().Delete(ctx, id); err != nil {
		return s.translateGradeError(err)
	}

	op.LogAudit(AuditEventDelete, id, "grade", existing.Percentage, nil)
	s.afterWrite(ctx, events.EventGradeDeleted, existing, deletedBy)
	return nil
}

func (s *gradeService) GetByID(ctx context.Context, id uint) (*models.Grade, error) {
	grade, err := s.repo.Grade().GetByIDWithDetails(ctx, id)
	if err != nil {
		return nil, s.translateGradeError(err)
	}
	return grade, nil
}

func (s *gradeService) List(ctx context.Context, filters repositories.GradeFilters) (*GradeListResponse, error) {
	if filters.Limit <= 0 {
		filters.Limit = defaultGradePageSize
	}
	if filters.Limit > maxGradePageSize {
		filters.Limit = maxGradePageSize
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}
	filters.Search = strings.TrimSpace(filters.Search)

	grades, total, err := s.repo.Grade().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list grades: %w", err)
	}

	return &GradeListResponse{
		Grades: grades,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}, nil
}

// ===== BULK OPERATIONS =====

// BulkUpsert writes each row independently, keyed on student, subject,
// assessment name and term. A failing row never aborts the others.
func (s *gradeService) BulkUpsert(ctx context.Context, rows []GradeRequest, createdBy string) (*BulkGradeResponse, error) {
	if len(rows) == 0 {
		return nil, ValidationErrors{*NewValidationError("grades", "must contain at least one row", 0)}
	}

	response := &BulkGradeResponse{
		Total:   len(rows),
		Results: make([]BulkGradeResult, 0, len(rows)),
	}

	for i := range rows {
		result := s.upsertRow(ctx, &rows[i], createdBy)
		result.Row = i + 1

		switch {
		case !result.Success:
			response.Failed++
		case result.Created:
			response.Succeeded++
			response.Created++
		default:
			response.Succeeded++
			response.Updated++
		}
		response.Results = append(response.Results, result)
	}

	s.logger.logger.Info("Bulk grade upload completed",
		"total", response.Total,
		"created", response.Created,
		"updated", response.Updated,
		"failed", response.Failed,
		"user_id", createdBy)

	return response, nil
}

func (s *gradeService) upsertRow(ctx context.Context, req *GradeRequest, createdBy string) BulkGradeResult {
	applyBulkDefaults(req)

	grade, err := s.buildGrade(req)
	if err != nil {
		return BulkGradeResult{Error: err.Error()}
	}
	if err := s.checkReferences(ctx, grade); err != nil {
		return BulkGradeResult{Error: err.Error()}
	}

	existing, err := s.repo.Grade().FindByAssessment(ctx, grade.StudentID, grade.SubjectID, grade.AssessmentName, grade.Term)
	switch {
	case errors.Is(err, repositories.ErrRecordNotFound):
		if createdBy != "" {
			grade.CreatedBy = &createdBy
		}
		if err := s.repo.Grade().Create(ctx, grade); err != nil {
			return BulkGradeResult{Error: fmt.Sprintf("failed to create grade: %v", err)}
		}
		s.afterWrite(ctx, events.EventGradeRecorded, grade, createdBy)
		return BulkGradeResult{Success: true, Created: true, GradeID: grade.ID}

	case err != nil:
		return BulkGradeResult{Error: fmt.Sprintf("failed to look up grade: %v", err)}
	}

	grade.ID = existing.ID
	grade.CreatedBy = existing.CreatedBy
	grade.CreatedAt = existing.CreatedAt
	if err := s.repo.Grade().Update(ctx, grade); err != nil {
		return BulkGradeResult{Error: fmt.Sprintf("failed to update grade: %v", err)}
	}
	s.afterWrite(ctx, events.EventGradeUpdated, grade, createdBy)
	return BulkGradeResult{Success: true, GradeID: grade.ID}
}

// applyBulkDefaults fills the fields a bulk row may omit.
func applyBulkDefaults(req *GradeRequest) {
	if req.AssessmentType == "" {
		req.AssessmentType = models.AssessmentTest
	}
	if req.Date == "" {
		req.Date = time.Now().Format(dateLayout)
	}
}

// ===== STATISTICS =====

func (s *gradeService) GetStatistics(ctx context.Context, filters GradeStatisticsFilters) (*GradeStatistics, error) {
	gradeFilters := repositories.GradeFilters{
		Term:           filters.Term,
		SubjectID:      filters.SubjectID,
		AssessmentType: filters.AssessmentType,
	}

	grades, _, err := s.repo.Grade().List(ctx, gradeFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to load grades: %w", err)
	}

	percentages := analytics.Percentages(grades)
	summary := analytics.Summarize(percentages)
	cell, _ := analytics.Distribute(percentages)

	subjectAverages, err := s.repo.Grade().GetSubjectAverages(ctx, gradeFilters)
	if err != nil {
		return nil, err
	}
	termAverages, err := s.repo.Grade().GetTermAverages(ctx, gradeFilters)
	if err != nil {
		return nil, err
	}

	return &GradeStatistics{
		TotalGrades:       summary.Count,
		AverageScore:      summary.Mean,
		HighestScore:      summary.Max,
		LowestScore:       summary.Min,
		StandardDeviation: summary.StandardDeviation,
		PassRate:          cell.PassRate,
		GradeDistribution: bandCountsByLetter(cell.Counts),
		SubjectAverages:   subjectAverages,
		TermAverages:      termAverages,
	}, nil
}

// ===== HELPER METHODS =====

// buildGrade validates a request and turns it into a grade with its
// percentage derived.
func (s *gradeService) buildGrade(req *GradeRequest) (*models.Grade, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ValidationErrors{*NewValidationError("date", "must be a date in YYYY-MM-DD form", req.Date)}
	}

	grade := &models.Grade{
		StudentID:      req.StudentID,
		SubjectID:      req.SubjectID,
		AssessmentName: req.AssessmentName,
		AssessmentType: req.AssessmentType,
		Score:          req.Score,
		MaxScore:       req.maxScore(),
		Term:           req.Term,
		Date:           date,
		Comments:       req.Comments,
	}

	if errs := s.validator.Grade().ValidateGrade(grade); len(errs) > 0 {
		return nil, errs
	}

	grade.RecomputePercentage()
	return grade, nil
}

func (s *gradeService) checkReferences(ctx context.Context, grade *models.Grade) error {
	if _, err := s.repo.Student().GetByID(ctx, grade.StudentID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("failed to get student: %w", err)
	}
	if _, err := s.repo.Subject().GetByID(ctx, grade.SubjectID); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		return fmt.Errorf("failed to get subject: %w", err)
	}
	return nil
}

// afterWrite drops cached charts and announces the change.
func (s *gradeService) afterWrite(ctx context.Context, eventType events.EventType, grade *models.Grade, userID string) {
	if err := s.cache.DeletePattern(ctx, cache.ChartKeyPattern); err != nil {
		s.logger.logger.Warn("Failed to invalidate chart cache", "error", err)
	}
	s.events.NotifyGradeChanged(ctx, eventType, grade, userID)
}

func (s *gradeService) translateGradeError(err error) error {
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return ErrGradeNotFound
	}
	return fmt.Errorf("grade store error: %w", err)
}

func gradeID(grade *models.Grade) uint {
	if grade == nil {
		return 0
	}
	return grade.ID
}

func bandCountsByLetter(counts map[analytics.Band]int) map[string]int {
	out := make(map[string]int, len(analytics.Bands))
	for _, band := range analytics.Bands {
		out[string(band)] = counts[band]
	}
	return out
}
