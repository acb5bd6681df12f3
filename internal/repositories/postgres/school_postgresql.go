package postgres

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
	"github.com/SAP-F-2025/grade-analytics-service/internal/repositories"
	"gorm.io/gorm"
)

// ===== STUDENTS =====

type StudentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{db: db}
}

func (s *StudentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).Preload("CurrentClass").First(&student, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &student, nil
}

func (s *StudentPostgreSQL) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Student{})
	if filters.ClassID != nil {
		query = query.Where("current_class_id = ?", *filters.ClassID)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}
	if filters.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filters.CreatedFrom)
	}
	if filters.Search != "" {
		pattern := likePattern(filters.Search)
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR student_number ILIKE ? OR email ILIKE ?",
			pattern, pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("last_name ASC, first_name ASC, id ASC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var students []*models.Student
	if err := query.Find(&students).Error; err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

func (s *StudentPostgreSQL) GetByClass(ctx context.Context, classID uint) ([]*models.Student, error) {
	var students []*models.Student
	err := s.db.WithContext(ctx).
		Where("current_class_id = ?", classID).
		Order("last_name ASC, first_name ASC, id ASC").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

func (s *StudentPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Student{}).Count(&count).Error
	return count, err
}

func (s *StudentPostgreSQL) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Student{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// ===== SUBJECTS =====

type SubjectPostgreSQL struct {
	db *gorm.DB
}

func NewSubjectPostgreSQL(db *gorm.DB) repositories.SubjectRepository {
	return &SubjectPostgreSQL{db: db}
}

func (s *SubjectPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Subject, error) {
	var subject models.Subject
	if err := s.db.WithContext(ctx).First(&subject, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &subject, nil
}

func (s *SubjectPostgreSQL) List(ctx context.Context) ([]*models.Subject, error) {
	var subjects []*models.Subject
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (s *SubjectPostgreSQL) Search(ctx context.Context, query string, limit int) ([]*models.Subject, error) {
	pattern := likePattern(query)
	db := s.db.WithContext(ctx).
		Where("name ILIKE ? OR code ILIKE ?", pattern, pattern).
		Order("name ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}

	var subjects []*models.Subject
	if err := db.Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (s *SubjectPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Subject{}).Count(&count).Error
	return count, err
}

// ===== CLASSES =====

type ClassPostgreSQL struct {
	db *gorm.DB
}

func NewClassPostgreSQL(db *gorm.DB) repositories.ClassRepository {
	return &ClassPostgreSQL{db: db}
}

func (c *ClassPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Class, error) {
	var class models.Class
	if err := c.db.WithContext(ctx).Preload("AcademicYear").First(&class, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &class, nil
}

func (c *ClassPostgreSQL) List(ctx context.Context) ([]*models.Class, error) {
	var classes []*models.Class
	if err := c.db.WithContext(ctx).Preload("AcademicYear").Order("name ASC, id ASC").Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

// ===== ACADEMIC YEARS =====

type AcademicYearPostgreSQL struct {
	db *gorm.DB
}

func NewAcademicYearPostgreSQL(db *gorm.DB) repositories.AcademicYearRepository {
	return &AcademicYearPostgreSQL{db: db}
}

// GetByName returns nil, nil when the label is not registered
func (a *AcademicYearPostgreSQL) GetByName(ctx context.Context, name string) (*models.AcademicYear, error) {
	var year models.AcademicYear
	err := a.db.WithContext(ctx).Where("name = ?", name).First(&year).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &year, nil
}

func (a *AcademicYearPostgreSQL) GetCurrent(ctx context.Context) (*models.AcademicYear, error) {
	var year models.AcademicYear
	err := a.db.WithContext(ctx).Where("is_current = ?", true).Order("start_date DESC").First(&year).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &year, nil
}
