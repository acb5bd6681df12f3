package cache

import "fmt"

const chartPrefix = "grade-analytics:chart:"

// ChartKeyPattern matches every cached chart payload.
const ChartKeyPattern = chartPrefix + "*"

func DistributionChartKey(subjectID uint, academicYear, term string) string {
	return fmt.Sprintf("%sdistribution:%d:%s:%s", chartPrefix, subjectID, academicYear, term)
}

func SubjectComparisonChartKey(academicYear, term string) string {
	return fmt.Sprintf("%scomparison:%s:%s", chartPrefix, academicYear, term)
}

func PerformanceTrendChartKey(studentID uint, academicYear string) string {
	return fmt.Sprintf("%strend:%d:%s", chartPrefix, studentID, academicYear)
}
