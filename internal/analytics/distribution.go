package analytics

import "github.com/SAP-F-2025/grade-analytics-service/internal/models"

// DistributionCell is the computed content of a GradeDistribution row.
type DistributionCell struct {
	Counts       map[Band]int `json:"counts"`
	Total        int          `json:"total"`
	AverageScore float64      `json:"average_score"`
	PassRate     float64      `json:"pass_rate"`
}

// NewBandCounts returns a count map with every band present.
func NewBandCounts() map[Band]int {
	counts := make(map[Band]int, len(Bands))
	for _, b := range Bands {
		counts[b] = 0
	}
	return counts
}

// Distribute buckets percentages into bands. ok is false when the input is
// empty, in which case no cell should be written.
func Distribute(percentages []float64) (cell DistributionCell, ok bool) {
	if len(percentages) == 0 {
		return DistributionCell{}, false
	}

	counts := NewBandCounts()
	passing := 0
	for _, p := range percentages {
		band := BandFor(p)
		counts[band]++
		if band.Passing() {
			passing++
		}
	}

	total := len(percentages)
	return DistributionCell{
		Counts:       counts,
		Total:        total,
		AverageScore: Mean(percentages),
		PassRate:     models.Round2(float64(passing) / float64(total) * 100),
	}, true
}

// ApplyTo copies the computed values onto a storage row, leaving its key alone.
func (c DistributionCell) ApplyTo(row *models.GradeDistribution) {
	row.ACount = c.Counts[BandA]
	row.BCount = c.Counts[BandB]
	row.CCount = c.Counts[BandC]
	row.DCount = c.Counts[BandD]
	row.FCount = c.Counts[BandF]
	row.TotalStudents = c.Total
	row.AverageScore = c.AverageScore
	row.PassRate = c.PassRate
}
