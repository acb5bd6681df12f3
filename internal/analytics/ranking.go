package analytics

import (
	"slices"

	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
)

// RankPerformances sorts cells by average grade, highest first, keeping the
// input order among equal averages, and assigns competition ranks (1, 2, 2, 4).
// The slice is sorted in place and returned.
func RankPerformances(cells []*models.StudentPerformance) []*models.StudentPerformance {
	slices.SortStableFunc(cells, func(a, b *models.StudentPerformance) int {
		return compareDesc(a.AverageGrade, b.AverageGrade)
	})

	for i, cell := range cells {
		rank := i + 1
		if i > 0 && cells[i-1].AverageGrade == cell.AverageGrade {
			rank = *cells[i-1].RankInClass
		}
		r := rank
		cell.RankInClass = &r
	}
	return cells
}

// SubjectComparison is one row of the subject comparison view.
type SubjectComparison struct {
	SubjectID         uint           `json:"subject_id"`
	Subject           string         `json:"subject"`
	AverageScore      float64        `json:"average_score"`
	PassRate          float64        `json:"pass_rate"`
	TotalStudents     int            `json:"total_students"`
	GradeDistribution map[string]int `json:"grade_distribution"`
}

// SortSubjectComparisons orders rows by average score, highest first,
// keeping enumeration order among ties.
func SortSubjectComparisons(rows []SubjectComparison) []SubjectComparison {
	slices.SortStableFunc(rows, func(a, b SubjectComparison) int {
		return compareDesc(a.AverageScore, b.AverageScore)
	})
	return rows
}

func compareDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}
