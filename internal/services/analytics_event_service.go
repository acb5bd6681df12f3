package services

import (
	"context"
	"log/slog"

	"github.com/SAP-F-2025/grade-analytics-service/internal/events"
	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
)

// AnalyticsEventService publishes grade and analytics notifications for
// downstream consumers. Publishing is best effort: a broker failure is
// logged and never fails the operation that triggered it.
type AnalyticsEventService interface {
	NotifyGradeChanged(ctx context.Context, eventType events.EventType, grade *models.Grade, changedBy string)
	NotifyDistributionCalculated(ctx context.Context, distribution *models.GradeDistribution)
	NotifyPerformanceCalculated(ctx context.Context, performance *models.StudentPerformance)
	NotifyReportGenerated(ctx context.Context, report *models.GeneratedReport, reportType models.ReportType)
}

type analyticsEventService struct {
	eventPublisher events.EventPublisher
	logger         *slog.Logger
}

func NewAnalyticsEventService(eventPublisher events.EventPublisher, logger *slog.Logger) AnalyticsEventService {
	return &analyticsEventService{
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (s *analyticsEventService) NotifyGradeChanged(ctx context.Context, eventType events.EventType, grade *models.Grade, changedBy string) {
	s.publish(ctx, events.NewEvent(eventType, events.GradeChangedEvent{
		GradeID:    grade.ID,
		StudentID:  grade.StudentID,
		SubjectID:  grade.SubjectID,
		Term:       grade.Term,
		Percentage: grade.Percentage,
		ChangedBy:  changedBy,
	}))
}

func (s *analyticsEventService) NotifyDistributionCalculated(ctx context.Context, distribution *models.GradeDistribution) {
	s.publish(ctx, events.NewEvent(events.EventDistributionCalculated, events.DistributionCalculatedEvent{
		SubjectID:     distribution.SubjectID,
		AcademicYear:  distribution.AcademicYear,
		Term:          distribution.Term,
		TotalStudents: distribution.TotalStudents,
		AverageScore:  distribution.AverageScore,
		PassRate:      distribution.PassRate,
	}))
}

func (s *analyticsEventService) NotifyPerformanceCalculated(ctx context.Context, performance *models.StudentPerformance) {
	s.publish(ctx, events.NewEvent(events.EventPerformanceCalculated, events.PerformanceCalculatedEvent{
		StudentID:    performance.StudentID,
		AcademicYear: performance.AcademicYear,
		Term:         performance.Term,
		AverageGrade: performance.AverageGrade,
		Trend:        performance.PerformanceTrend,
	}))
}

func (s *analyticsEventService) NotifyReportGenerated(ctx context.Context, report *models.GeneratedReport, reportType models.ReportType) {
	s.publish(ctx, events.NewEvent(events.EventReportGenerated, events.ReportGeneratedEvent{
		ReportID:    report.ID,
		ReportType:  reportType,
		Format:      string(report.Format),
		GeneratedBy: report.GeneratedBy,
	}))
}

func (s *analyticsEventService) publish(ctx context.Context, event *events.Event) {
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
	}
}
