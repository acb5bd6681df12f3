// Package export renders assembled reports into downloadable files.
package export

import (
	"fmt"

	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
)

// Sheet is one table of a report: a header row followed by data rows.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// Document is the tabular form of a report.
type Document struct {
	Title  string
	Sheets []Sheet
}

// Tabular is implemented by reports that can be rendered as tables.
type Tabular interface {
	Document() Document
}

// ReportFormatter turns a report into file content.
type ReportFormatter interface {
	Format(report Tabular) ([]byte, error)
	ContentType() string
	Extension() string
}

// NewFormatter returns the formatter for a file format. JSON is served
// directly by the HTTP layer and has no formatter.
func NewFormatter(format models.ReportFormat) (ReportFormatter, error) {
	switch format {
	case models.FormatExcel:
		return &ExcelFormatter{}, nil
	case models.FormatCSV:
		return &CSVFormatter{}, nil
	default:
		return nil, fmt.Errorf("no file formatter for report format %q", format)
	}
}
