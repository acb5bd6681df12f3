// Package analytics holds the side-effect free aggregation rules: letter
// bands, distribution and performance cells, trends and rankings. Nothing in
// here touches storage; services feed it grades and persist the results.
package analytics

type Band string

const (
	BandA Band = "A"
	BandB Band = "B"
	BandC Band = "C"
	BandD Band = "D"
	BandF Band = "F"
)

// Bands in descending order of achievement.
var Bands = []Band{BandA, BandB, BandC, BandD, BandF}

// Lower bounds are inclusive: 80.0 is a B, 79.99 is a C.
const (
	thresholdA = 90.0
	thresholdB = 80.0
	thresholdC = 70.0
	thresholdD = 60.0
)

// BandFor classifies a percentage.
func BandFor(percentage float64) Band {
	switch {
	case percentage >= thresholdA:
		return BandA
	case percentage >= thresholdB:
		return BandB
	case percentage >= thresholdC:
		return BandC
	case percentage >= thresholdD:
		return BandD
	default:
		return BandF
	}
}

// Passing reports whether the band counts towards the pass rate.
func (b Band) Passing() bool {
	return b != BandF
}

// ChartLabel is the legend text used by chart payloads.
func (b Band) ChartLabel() string {
	switch b {
	case BandA:
		return "A (90-100%)"
	case BandB:
		return "B (80-89%)"
	case BandC:
		return "C (70-79%)"
	case BandD:
		return "D (60-69%)"
	default:
		return "F (<60%)"
	}
}

func (b Band) ChartColor() string {
	switch b {
	case BandA:
		return "#28a745"
	case BandB:
		return "#20c997"
	case BandC:
		return "#ffc107"
	case BandD:
		return "#fd7e14"
	default:
		return "#dc3545"
	}
}
