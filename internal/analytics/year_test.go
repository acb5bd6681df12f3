package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAcademicYear(t *testing.T) {
	year, err := ParseAcademicYear("2024-2025")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)

	for _, bad := range []string{"", "2024", "24-25", "2024/2025", "2025-2024", "abcd-efgh"} {
		_, err := ParseAcademicYear(bad)
		assert.Error(t, err, "label %q", bad)
	}
}

func TestCalendarYearWindow(t *testing.T) {
	w, err := CalendarYearWindow("2024-2025")
	require.NoError(t, err)

	assert.True(t, w.Contains(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, w.Contains(time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC)))
	// The later calendar year of the academic year is outside the fallback window.
	assert.False(t, w.Contains(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDateWindow(t *testing.T) {
	w := DateWindow("2024-2025",
		time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC))

	assert.True(t, w.Contains(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, w.Contains(time.Date(2025, time.July, 31, 12, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, time.August, 31, 0, 0, 0, 0, time.UTC)))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{95, 82, 71, 65, 40})
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 70.6, s.Mean)
	assert.Equal(t, 40.0, s.Min)
	assert.Equal(t, 95.0, s.Max)
	assert.Greater(t, s.StandardDeviation, 0.0)

	assert.Equal(t, Summary{}, Summarize(nil))
}
