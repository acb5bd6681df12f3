package analytics

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var academicYearPattern = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

// YearWindow is the inclusive date range an academic year label covers.
type YearWindow struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the calendar date of t lies in the window.
func (w YearWindow) Contains(t time.Time) bool {
	d := truncateDate(t)
	return !d.Before(truncateDate(w.Start)) && !d.After(truncateDate(w.End))
}

// ParseAcademicYear validates a "YYYY-YYYY" label and returns its first year.
func ParseAcademicYear(label string) (int, error) {
	m := academicYearPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, fmt.Errorf("academic year %q is not in YYYY-YYYY form", label)
	}
	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[2])
	if second < first {
		return 0, fmt.Errorf("academic year %q ends before it starts", label)
	}
	return first, nil
}

// CalendarYearWindow is the fallback scope for a label with no AcademicYear
// record: the whole calendar year named by the label's first four digits.
// Grades dated in the later calendar year of the academic year fall outside it.
func CalendarYearWindow(label string) (YearWindow, error) {
	year, err := ParseAcademicYear(label)
	if err != nil {
		return YearWindow{}, err
	}
	return YearWindow{
		Label: label,
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}, nil
}

// DateWindow builds a window from explicit academic year dates.
func DateWindow(label string, start, end time.Time) YearWindow {
	return YearWindow{Label: label, Start: truncateDate(start), End: truncateDate(end)}
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
