package services

import (
	"github.com/SAP-F-2025/grade-analytics-service/internal/analytics"
	"github.com/SAP-F-2025/grade-analytics-service/internal/export"
)

const generatedAtLayout = "2006-01-02 15:04:05"

func (r *StudentReport) Document() export.Document {
	summary := export.Sheet{
		Name:    "Summary",
		Headers: []string{"Field", "Value"},
		Rows: [][]interface{}{
			{"Student", r.Student.Name},
			{"Student Number", r.Student.StudentNumber},
			{"Class", r.Student.ClassName},
			{"Academic Year", r.AcademicYear},
			{"Term", r.Term.Label()},
			{"Average Grade", r.AverageGrade},
			{"Band", string(r.Band)},
			{"Total Subjects", r.TotalSubjects},
			{"Generated At", r.GeneratedAt.Format(generatedAtLayout)},
		},
	}

	grades := export.Sheet{
		Name:    "Grades",
		Headers: []string{"Date", "Subject", "Assessment", "Type", "Score", "Max Score", "Percentage", "Band"},
	}
	for _, g := range r.Grades {
		grades.Rows = append(grades.Rows, []interface{}{
			g.Date, g.Subject, g.AssessmentName, string(g.AssessmentType),
			g.Score, g.MaxScore, g.Percentage, string(g.Band),
		})
	}

	subjects := export.Sheet{
		Name:    "Subjects",
		Headers: []string{"Subject", "Grades", "Average", "Band"},
	}
	for _, b := range r.SubjectBreakdown {
		subjects.Rows = append(subjects.Rows, []interface{}{
			b.SubjectName, b.GradeCount, b.AverageScore, string(b.Band),
		})
	}

	return export.Document{
		Title:  "Student Report Card",
		Sheets: []export.Sheet{summary, grades, subjects},
	}
}

func (r *ClassReport) Document() export.Document {
	summary := export.Sheet{
		Name:    "Summary",
		Headers: []string{"Field", "Value"},
		Rows: [][]interface{}{
			{"Class", r.ClassName},
			{"Academic Year", r.AcademicYear},
			{"Term", r.Term.Label()},
			{"Students", r.StudentCount},
			{"Graded Students", r.GradedStudentCount},
			{"Class Average", r.ClassAverage},
			{"Generated At", r.GeneratedAt.Format(generatedAtLayout)},
		},
	}

	rankings := export.Sheet{
		Name:    "Rankings",
		Headers: []string{"Rank", "Student Number", "Student", "Average", "Subjects", "Trend"},
	}
	for _, s := range r.Rankings {
		rankings.Rows = append(rankings.Rows, []interface{}{
			s.Rank, s.StudentNumber, s.Name, s.AverageGrade, s.TotalSubjects, string(s.Trend),
		})
	}

	return export.Document{
		Title:  "Class Summary Report",
		Sheets: []export.Sheet{summary, rankings},
	}
}

func (r *SchoolReport) Document() export.Document {
	summary := export.Sheet{
		Name:    "Summary",
		Headers: []string{"Field", "Value"},
		Rows: [][]interface{}{
			{"Academic Year", r.AcademicYear},
			{"Term", r.Term.Label()},
			{"Students", r.Totals.Students},
			{"Active Students", r.Totals.ActiveStudents},
			{"Subjects", r.Totals.Subjects},
			{"Grades", r.Totals.Grades},
			{"Overall Average", r.OverallAverage},
			{"Overall Pass Rate", r.OverallPassRate},
		},
	}
	for _, band := range analytics.Bands {
		summary.Rows = append(summary.Rows, []interface{}{band.ChartLabel(), r.GradeDistribution[string(band)]})
	}
	summary.Rows = append(summary.Rows, []interface{}{"Generated At", r.GeneratedAt.Format(generatedAtLayout)})

	subjects := export.Sheet{
		Name:    "Subjects",
		Headers: []string{"Subject", "Students", "Average", "Pass Rate", "A", "B", "C", "D", "F"},
	}
	for _, c := range r.SubjectComparison {
		row := []interface{}{c.Subject, c.TotalStudents, c.AverageScore, c.PassRate}
		for _, band := range analytics.Bands {
			row = append(row, c.GradeDistribution[string(band)])
		}
		subjects.Rows = append(subjects.Rows, row)
	}

	return export.Document{
		Title:  "School Summary Report",
		Sheets: []export.Sheet{summary, subjects},
	}
}
