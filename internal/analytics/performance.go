package analytics

import "github.com/SAP-F-2025/grade-analytics-service/internal/models"

// TrendThreshold is the minimum change in average, in percentage points,
// between consecutive terms that counts as improving or declining.
const TrendThreshold = 2.0

// PerformanceCell is the computed content of a StudentPerformance row.
type PerformanceCell struct {
	SubjectCount int                     `json:"subject_count"`
	AverageGrade float64                 `json:"average_grade"`
	Trend        models.PerformanceTrend `json:"trend"`
}

// Perform rolls up one student's grades for a term. previousAverage is the
// student's average for the preceding term, nil when there is none. ok is
// false when grades is empty.
func Perform(grades []*models.Grade, previousAverage *float64) (cell PerformanceCell, ok bool) {
	if len(grades) == 0 {
		return PerformanceCell{}, false
	}

	average := Mean(Percentages(grades))
	return PerformanceCell{
		SubjectCount: DistinctSubjects(grades),
		AverageGrade: average,
		Trend:        Trend(average, previousAverage),
	}, true
}

// DistinctSubjects counts the subjects represented in grades.
func DistinctSubjects(grades []*models.Grade) int {
	seen := make(map[uint]struct{}, len(grades))
	for _, g := range grades {
		seen[g.SubjectID] = struct{}{}
	}
	return len(seen)
}

func Trend(current float64, previous *float64) models.PerformanceTrend {
	if previous == nil {
		return models.TrendStable
	}
	diff := current - *previous
	switch {
	case diff >= TrendThreshold:
		return models.TrendImproving
	case diff <= -TrendThreshold:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

// ApplyTo copies the computed values onto a storage row. RankInClass is not
// touched; it belongs to the ranking pass.
func (c PerformanceCell) ApplyTo(row *models.StudentPerformance) {
	row.TotalSubjects = c.SubjectCount
	row.AverageGrade = c.AverageGrade
	row.PerformanceTrend = c.Trend
}

// SubjectBreakdown is one student's standing in one subject.
type SubjectBreakdown struct {
	SubjectID    uint    `json:"subject_id"`
	SubjectName  string  `json:"subject_name"`
	GradeCount   int     `json:"grade_count"`
	AverageScore float64 `json:"average_score"`
	Band         Band    `json:"band"`
}

// BreakdownBySubject groups grades per subject in order of first appearance.
// Subject names come from the preloaded relation when present.
func BreakdownBySubject(grades []*models.Grade) []SubjectBreakdown {
	index := make(map[uint]int)
	values := make([][]float64, 0)
	out := make([]SubjectBreakdown, 0)

	for _, g := range grades {
		i, ok := index[g.SubjectID]
		if !ok {
			i = len(out)
			index[g.SubjectID] = i
			entry := SubjectBreakdown{SubjectID: g.SubjectID}
			if g.Subject != nil {
				entry.SubjectName = g.Subject.Name
			}
			out = append(out, entry)
			values = append(values, nil)
		}
		values[i] = append(values[i], g.Percentage)
	}

	for i := range out {
		out[i].GradeCount = len(values[i])
		out[i].AverageScore = Mean(values[i])
		out[i].Band = BandFor(out[i].AverageScore)
	}
	return out
}
