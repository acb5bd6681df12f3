package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/grade-analytics-service/internal/repositories"
	"gorm.io/gorm"
)

// SharedHelpers holds query-building helpers used by several repositories.
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// ApplyGradeFilters narrows a grades query. Date bounds are inclusive.
func (h *SharedHelpers) ApplyGradeFilters(query *gorm.DB, filters repositories.GradeFilters) *gorm.DB {
	if filters.StudentID != nil {
		query = query.Where("grades.student_id = ?", *filters.StudentID)
	}
	if filters.SubjectID != nil {
		query = query.Where("grades.subject_id = ?", *filters.SubjectID)
	}
	if filters.Term != nil {
		query = query.Where("grades.term = ?", *filters.Term)
	}
	if filters.AssessmentType != nil {
		query = query.Where("grades.assessment_type = ?", *filters.AssessmentType)
	}
	if filters.DateFrom != nil {
		query = query.Where("grades.date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("grades.date <= ?", *filters.DateTo)
	}
	if filters.CreatedFrom != nil {
		query = query.Where("grades.created_at >= ?", *filters.CreatedFrom)
	}
	if filters.Search != "" {
		pattern := likePattern(filters.Search)
		query = query.
			Joins("JOIN students AS search_students ON search_students.id = grades.student_id").
			Joins("JOIN subjects AS search_subjects ON search_subjects.id = grades.subject_id").
			Where("grades.assessment_name ILIKE ? OR search_students.first_name ILIKE ? OR search_students.last_name ILIKE ? OR search_subjects.name ILIKE ?",
				pattern, pattern, pattern, pattern)
	}
	return query
}

// likePattern wraps a user search term for ILIKE, escaping its wildcards.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

var gradeSortColumns = map[string]string{
	"date":       "grades.date",
	"percentage": "grades.percentage",
	"score":      "grades.score",
	"created_at": "grades.created_at",
}

// ApplyPaginationAndSort orders by a whitelisted column and pages the result.
// A zero limit returns every row.
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	column, ok := gradeSortColumns[sortBy]
	if !ok {
		column = "grades.date"
	}
	direction := "DESC"
	if sortOrder == "asc" {
		direction = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", column, direction)).Order("grades.id ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}

// translateError maps gorm's not-found sentinel onto the repository one.
func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrRecordNotFound
	}
	return err
}
