package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/grade-analytics-service/internal/cache"
	"github.com/SAP-F-2025/grade-analytics-service/internal/events"
	"github.com/SAP-F-2025/grade-analytics-service/internal/repositories"
	"github.com/SAP-F-2025/grade-analytics-service/internal/validator"
)

// ServiceManager gives the HTTP layer one handle on every service.
type ServiceManager interface {
	Grade() GradeService
	Analytics() AnalyticsService
	Report() ReportService
	Directory() DirectoryService
}

type serviceManager struct {
	grade     GradeService
	analytics AnalyticsService
	report    ReportService
	directory DirectoryService
}

func NewServiceManager(
	repo repositories.Repository,
	eventPublisher events.EventPublisher,
	cacheService cache.CacheService,
	chartTTL time.Duration,
	logger *slog.Logger,
	validator *validator.Validator,
) ServiceManager {
	eventService := NewAnalyticsEventService(eventPublisher, logger)
	analyticsService := NewAnalyticsService(repo, eventService, cacheService, chartTTL, logger)

	return &serviceManager{
		grade:     NewGradeService(repo, eventService, cacheService, logger, validator),
		analytics: analyticsService,
		report:    NewReportService(repo, analyticsService, eventService, logger, validator),
		directory: NewDirectoryService(repo, logger),
	}
}

func (m *serviceManager) Grade() GradeService         { return m.grade }
func (m *serviceManager) Analytics() AnalyticsService { return m.analytics }
func (m *serviceManager) Report() ReportService       { return m.report }
func (m *serviceManager) Directory() DirectoryService { return m.directory }
