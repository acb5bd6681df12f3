package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
	"github.com/SAP-F-2025/grade-analytics-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportPostgreSQL struct {
	db *gorm.DB
}

func NewReportPostgreSQL(db *gorm.DB) repositories.ReportRepository {
	return &ReportPostgreSQL{db: db}
}

// GetOrCreateTemplate returns the template for the report type, creating the
// default one on first use. Concurrent first uses converge on one row.
func (r *ReportPostgreSQL) GetOrCreateTemplate(ctx context.Context, reportType models.ReportType) (*models.ReportTemplate, error) {
	template := &models.ReportTemplate{
		Name:       reportType.DefaultTemplateName(),
		ReportType: reportType,
		IsActive:   true,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "report_type"}},
			DoNothing: true,
		}).Create(template).Error; err != nil {
			return err
		}
		return tx.Where("report_type = ?", reportType).First(template).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s report template: %w", reportType, err)
	}
	return template, nil
}

func (r *ReportPostgreSQL) CreateGeneratedReport(ctx context.Context, report *models.GeneratedReport) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to record generated report: %w", err)
	}
	return nil
}

// ListByUser returns the user's reports, newest first.
func (r *ReportPostgreSQL) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.GeneratedReport, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.GeneratedReport{}).Where("generated_by = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var reports []*models.GeneratedReport
	err := query.
		Preload("Template").
		Order("generated_at DESC, id DESC").
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}
