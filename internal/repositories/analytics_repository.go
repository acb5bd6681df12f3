package repositories

import (
	"context"

	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
)

// AnalyticsRepository stores the derived cells. Upserts are atomic per key:
// concurrent recomputes of the same cell never produce two rows.
type AnalyticsRepository interface {
	UpsertDistribution(ctx context.Context, distribution *models.GradeDistribution) error
	GetDistribution(ctx context.Context, subjectID uint, academicYear string, term models.Term) (*models.GradeDistribution, error)
	ListDistributions(ctx context.Context, academicYear string, term models.Term) ([]*models.GradeDistribution, error)

	// UpsertPerformance leaves rank_in_class untouched when the row has no rank.
	UpsertPerformance(ctx context.Context, performance *models.StudentPerformance) error
	UpsertPerformances(ctx context.Context, performances []*models.StudentPerformance) error
	GetPerformance(ctx context.Context, studentID uint, academicYear string, term models.Term) (*models.StudentPerformance, error)
	ListStudentPerformances(ctx context.Context, studentID uint, academicYear string) ([]*models.StudentPerformance, error)
}
