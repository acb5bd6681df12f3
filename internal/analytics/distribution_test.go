package analytics

import (
	"testing"

	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistribute_MathematicsExample(t *testing.T) {
	cell, ok := Distribute([]float64{95, 82, 71, 65, 40})
	require.True(t, ok)

	assert.Equal(t, map[Band]int{BandA: 1, BandB: 1, BandC: 1, BandD: 1, BandF: 1}, cell.Counts)
	assert.Equal(t, 5, cell.Total)
	assert.Equal(t, 70.6, cell.AverageScore)
	assert.Equal(t, 80.0, cell.PassRate)
}

func TestDistribute_Empty(t *testing.T) {
	_, ok := Distribute(nil)
	assert.False(t, ok)
}

func TestDistribute_CountsSumToTotal(t *testing.T) {
	inputs := [][]float64{
		{100},
		{59.99, 60, 60.01},
		{90, 90, 90, 10, 85.5, 72.25, 61},
		{0, 0, 0},
	}

	for _, in := range inputs {
		cell, ok := Distribute(in)
		require.True(t, ok)

		sum := 0
		for _, c := range cell.Counts {
			sum += c
		}
		assert.Equal(t, cell.Total, sum)
		assert.Equal(t, len(in), cell.Total)
	}
}

func TestDistribute_PassRate(t *testing.T) {
	cell, ok := Distribute([]float64{95, 55, 45})
	require.True(t, ok)

	passing := cell.Counts[BandA] + cell.Counts[BandB] + cell.Counts[BandC] + cell.Counts[BandD]
	assert.InDelta(t, float64(passing)/float64(cell.Total)*100, cell.PassRate, 0.005)
	assert.Equal(t, 33.33, cell.PassRate)
}

func TestDistribute_Idempotent(t *testing.T) {
	in := []float64{91.5, 88, 73.33, 64, 12}
	first, _ := Distribute(in)
	second, _ := Distribute(in)
	assert.Equal(t, first, second)

	a, b := &models.GradeDistribution{SubjectID: 1}, &models.GradeDistribution{SubjectID: 1}
	first.ApplyTo(a)
	second.ApplyTo(b)
	assert.Equal(t, a, b)
}

func TestDistributionCell_ApplyTo(t *testing.T) {
	cell, _ := Distribute([]float64{95, 82, 71, 65, 40})
	row := &models.GradeDistribution{SubjectID: 7, AcademicYear: "2024-2025", Term: models.Term1}

	cell.ApplyTo(row)

	assert.Equal(t, uint(7), row.SubjectID)
	assert.Equal(t, 1, row.ACount)
	assert.Equal(t, 1, row.FCount)
	assert.Equal(t, 5, row.TotalStudents)
	assert.Equal(t, 70.6, row.AverageScore)
	assert.Equal(t, 80.0, row.PassRate)
	assert.Equal(t, map[string]int{"A": 1, "B": 1, "C": 1, "D": 1, "F": 1}, row.BandCounts())
}
