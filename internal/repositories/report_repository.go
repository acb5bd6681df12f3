package repositories

import (
	"context"

	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
)

type ReportRepository interface {
	GetOrCreateTemplate(ctx context.Context, reportType models.ReportType) (*models.ReportTemplate, error)
	CreateGeneratedReport(ctx context.Context, report *models.GeneratedReport) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.GeneratedReport, int64, error)
}
