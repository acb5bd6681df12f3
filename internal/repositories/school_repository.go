package repositories

import (
	"context"

	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
)

// StudentRepository is read-mostly; enrolment is managed elsewhere.
type StudentRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	List(ctx context.Context, filters StudentFilters) ([]*models.Student, int64, error)
	GetByClass(ctx context.Context, classID uint) ([]*models.Student, error) // ordered by last, first name
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type SubjectRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Subject, error)
	List(ctx context.Context) ([]*models.Subject, error) // ordered by id
	Search(ctx context.Context, query string, limit int) ([]*models.Subject, error)
	Count(ctx context.Context) (int64, error)
}

type ClassRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Class, error)
	List(ctx context.Context) ([]*models.Class, error) // ordered by name, with academic year
}

type AcademicYearRepository interface {
	// GetByName returns nil, nil when no academic year carries the label.
	GetByName(ctx context.Context, name string) (*models.AcademicYear, error)
	// GetCurrent returns the latest year flagged current.
	GetCurrent(ctx context.Context) (*models.AcademicYear, error)
}
