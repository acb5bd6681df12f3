package analytics

import (
	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
	"github.com/montanaflynn/stats"
)

// Summary describes a set of percentages. Every field is zero for an empty set.
type Summary struct {
	Count             int     `json:"count"`
	Mean              float64 `json:"mean"`
	Min               float64 `json:"min"`
	Max               float64 `json:"max"`
	StandardDeviation float64 `json:"standard_deviation"`
}

// Mean returns the arithmetic mean rounded to two digits, or 0 for no input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, err := stats.Mean(stats.Float64Data(values))
	if err != nil {
		return 0
	}
	return models.Round2(mean)
}

func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	data := stats.Float64Data(values)
	lo, _ := data.Min()
	hi, _ := data.Max()
	sd, _ := data.StandardDeviation()
	return Summary{
		Count:             len(values),
		Mean:              Mean(values),
		Min:               models.Round2(lo),
		Max:               models.Round2(hi),
		StandardDeviation: models.Round2(sd),
	}
}

// Percentages extracts the percentage of every grade, preserving order.
func Percentages(grades []*models.Grade) []float64 {
	out := make([]float64, 0, len(grades))
	for _, g := range grades {
		out = append(out, g.Percentage)
	}
	return out
}
