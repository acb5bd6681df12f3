package repositories

import (
	"context"

	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
)

// GradeRepository is the grade store
type GradeRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, grade *models.Grade) error
	GetByID(ctx context.Context, id uint) (*models.Grade, error)
	GetByIDWithDetails(ctx context.Context, id uint) (*models.Grade, error) // Include student, subject
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, id uint) error

	// Query operations
	List(ctx context.Context, filters GradeFilters) ([]*models.Grade, int64, error)
	FindByAssessment(ctx context.Context, studentID, subjectID uint, assessmentName string, term models.Term) (*models.Grade, error)

	// Aggregations
	GetSubjectAverages(ctx context.Context, filters GradeFilters) ([]GroupAverage, error)
	GetTermAverages(ctx context.Context, filters GradeFilters) ([]GroupAverage, error)
	// CountByBand counts the filtered grades per letter band. Bands
	// without grades are absent.
	CountByBand(ctx context.Context, filters GradeFilters) (map[string]int64, error)
}
