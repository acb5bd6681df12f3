package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
	"github.com/SAP-F-2025/grade-analytics-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnalyticsPostgreSQL struct {
	db *gorm.DB
}

func NewAnalyticsPostgreSQL(db *gorm.DB) repositories.AnalyticsRepository {
	return &AnalyticsPostgreSQL{db: db}
}

var distributionCellColumns = []clause.Column{{Name: "subject_id"}, {Name: "academic_year"}, {Name: "term"}}

var performanceCellColumns = []clause.Column{{Name: "student_id"}, {Name: "academic_year"}, {Name: "term"}}

// UpsertDistribution inserts or overwrites the cell in a single statement.
func (a *AnalyticsPostgreSQL) UpsertDistribution(ctx context.Context, distribution *models.GradeDistribution) error {
	err := a.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: distributionCellColumns,
			DoUpdates: clause.AssignmentColumns([]string{
				"a_count", "b_count", "c_count", "d_count", "f_count",
				"total_students", "average_score", "pass_rate", "calculated_at",
			}),
		}).
		Create(distribution).Error
	if err != nil {
		return fmt.Errorf("failed to upsert grade distribution: %w", err)
	}
	return nil
}

func (a *AnalyticsPostgreSQL) GetDistribution(ctx context.Context, subjectID uint, academicYear string, term models.Term) (*models.GradeDistribution, error) {
	var distribution models.GradeDistribution
	err := a.db.WithContext(ctx).
		Preload("Subject").
		Where("subject_id = ? AND academic_year = ? AND term = ?", subjectID, academicYear, term).
		First(&distribution).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &distribution, nil
}

func (a *AnalyticsPostgreSQL) ListDistributions(ctx context.Context, academicYear string, term models.Term) ([]*models.GradeDistribution, error) {
	var distributions []*models.GradeDistribution
	err := a.db.WithContext(ctx).
		Preload("Subject").
		Where("academic_year = ? AND term = ?", academicYear, term).
		Order("subject_id ASC").
		Find(&distributions).Error
	if err != nil {
		return nil, err
	}
	return distributions, nil
}

func (a *AnalyticsPostgreSQL) UpsertPerformance(ctx context.Context, performance *models.StudentPerformance) error {
	if err := upsertPerformance(a.db.WithContext(ctx), performance); err != nil {
		return fmt.Errorf("failed to upsert student performance: %w", err)
	}
	return nil
}

// UpsertPerformances writes a ranked batch in one transaction.
func (a *AnalyticsPostgreSQL) UpsertPerformances(ctx context.Context, performances []*models.StudentPerformance) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, performance := range performances {
			if err := upsertPerformance(tx, performance); err != nil {
				return fmt.Errorf("failed to upsert performance for student %d: %w", performance.StudentID, err)
			}
		}
		return nil
	})
}

func upsertPerformance(db *gorm.DB, performance *models.StudentPerformance) error {
	columns := []string{"total_subjects", "average_grade", "performance_trend", "calculated_at"}
	if performance.RankInClass != nil {
		columns = append(columns, "rank_in_class")
	}
	return db.Clauses(clause.OnConflict{
		Columns:   performanceCellColumns,
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(performance).Error
}

func (a *AnalyticsPostgreSQL) GetPerformance(ctx context.Context, studentID uint, academicYear string, term models.Term) (*models.StudentPerformance, error) {
	var performance models.StudentPerformance
	err := a.db.WithContext(ctx).
		Where("student_id = ? AND academic_year = ? AND term = ?", studentID, academicYear, term).
		First(&performance).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &performance, nil
}

// ListStudentPerformances returns the student's cells for a year in term order.
func (a *AnalyticsPostgreSQL) ListStudentPerformances(ctx context.Context, studentID uint, academicYear string) ([]*models.StudentPerformance, error) {
	var performances []*models.StudentPerformance
	err := a.db.WithContext(ctx).
		Where("student_id = ? AND academic_year = ?", studentID, academicYear).
		Order("term ASC").
		Find(&performances).Error
	if err != nil {
		return nil, err
	}
	return performances, nil
}
