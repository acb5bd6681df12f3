package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
	"github.com/SAP-F-2025/grade-analytics-service/internal/repositories"
	"gorm.io/gorm"
)

type GradePostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewGradePostgreSQL(db *gorm.DB) repositories.GradeRepository {
	return &GradePostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

// Create inserts a grade; the caller has already derived its percentage.
func (g *GradePostgreSQL) Create(ctx context.Context, grade *models.Grade) error {
	if err := g.db.WithContext(ctx).Create(grade).Error; err != nil {
		return fmt.Errorf("failed to create grade: %w", err)
	}
	return nil
}

func (g *GradePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Grade, error) {
	var grade models.Grade
	if err := g.db.WithContext(ctx).First(&grade, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &grade, nil
}

// GetByIDWithDetails retrieves a grade with its student and subject
func (g *GradePostgreSQL) GetByIDWithDetails(ctx context.Context, id uint) (*models.Grade, error) {
	var grade models.Grade
	err := g.db.WithContext(ctx).
		Preload("Student").
		Preload("Subject").
		First(&grade, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &grade, nil
}

func (g *GradePostgreSQL) Update(ctx context.Context, grade *models.Grade) error {
	result := g.db.WithContext(ctx).
		Model(&models.Grade{ID: grade.ID}).
		Select("student_id", "subject_id", "assessment_name", "assessment_type",
			"score", "max_score", "percentage", "term", "date", "comments").
		Updates(grade)
	if result.Error != nil {
		return fmt.Errorf("failed to update grade: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

func (g *GradePostgreSQL) Delete(ctx context.Context, id uint) error {
	result := g.db.WithContext(ctx).Delete(&models.Grade{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete grade: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

// List returns the filtered grades and the unpaged total.
func (g *GradePostgreSQL) List(ctx context.Context, filters repositories.GradeFilters) ([]*models.Grade, int64, error) {
	query := g.helpers.ApplyGradeFilters(g.db.WithContext(ctx).Model(&models.Grade{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = g.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	query = query.Preload("Subject")
	if filters.WithStudents {
		query = query.Preload("Student")
	}

	var grades []*models.Grade
	if err := query.Find(&grades).Error; err != nil {
		return nil, 0, err
	}
	return grades, total, nil
}

// FindByAssessment looks up the grade a bulk import row would overwrite.
func (g *GradePostgreSQL) FindByAssessment(ctx context.Context, studentID, subjectID uint, assessmentName string, term models.Term) (*models.Grade, error) {
	var grade models.Grade
	err := g.db.WithContext(ctx).
		Where("student_id = ? AND subject_id = ? AND assessment_name = ? AND term = ?",
			studentID, subjectID, assessmentName, term).
		Order("id ASC").
		First(&grade).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &grade, nil
}

// GetSubjectAverages groups the filtered grades by subject, ordered by name.
func (g *GradePostgreSQL) GetSubjectAverages(ctx context.Context, filters repositories.GradeFilters) ([]repositories.GroupAverage, error) {
	query := g.db.WithContext(ctx).
		Model(&models.Grade{}).
		Joins("JOIN subjects ON subjects.id = grades.subject_id")
	query = g.helpers.ApplyGradeFilters(query, filters)

	var rows []repositories.GroupAverage
	err := query.
		Select("subjects.name AS key, AVG(grades.percentage) AS average, COUNT(*) AS count").
		Group("subjects.id, subjects.name").
		Order("subjects.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate subject averages: %w", err)
	}
	return roundAverages(rows), nil
}

// GetTermAverages groups the filtered grades by term.
func (g *GradePostgreSQL) GetTermAverages(ctx context.Context, filters repositories.GradeFilters) ([]repositories.GroupAverage, error) {
	query := g.helpers.ApplyGradeFilters(g.db.WithContext(ctx).Model(&models.Grade{}), filters)

	var rows []repositories.GroupAverage
	err := query.
		Select("grades.term AS key, AVG(grades.percentage) AS average, COUNT(*) AS count").
		Group("grades.term").
		Order("grades.term ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate term averages: %w", err)
	}
	return roundAverages(rows), nil
}

// CountByBand buckets on the same lower-inclusive thresholds as
// analytics.BandFor.
func (g *GradePostgreSQL) CountByBand(ctx context.Context, filters repositories.GradeFilters) (map[string]int64, error) {
	query := g.helpers.ApplyGradeFilters(g.db.WithContext(ctx).Model(&models.Grade{}), filters)

	var rows []struct {
		Band  string
		Count int64
	}
	err := query.
		Select(`CASE
			WHEN grades.percentage >= 90 THEN 'A'
			WHEN grades.percentage >= 80 THEN 'B'
			WHEN grades.percentage >= 70 THEN 'C'
			WHEN grades.percentage >= 60 THEN 'D'
			ELSE 'F' END AS band, COUNT(*) AS count`).
		Group("band").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count grades by band: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Band] = row.Count
	}
	return counts, nil
}

func roundAverages(rows []repositories.GroupAverage) []repositories.GroupAverage {
	for i := range rows {
		rows[i].Average = models.Round2(rows[i].Average)
	}
	return rows
}
