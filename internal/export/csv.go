package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"
)

// CSVFormatter writes every sheet into one file. Each sheet starts with a
// row holding its name and sheets are separated by an empty line.
type CSVFormatter struct{}

func (c *CSVFormatter) ContentType() string { return "text/csv" }

func (c *CSVFormatter) Extension() string { return "csv" }

func (c *CSVFormatter) Format(report Tabular) ([]byte, error) {
	doc := report.Document()

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	for i, sheet := range doc.Sheets {
		if i > 0 {
			if err := writer.Write([]string{}); err != nil {
				return nil, fmt.Errorf("failed to write CSV separator: %w", err)
			}
		}
		if len(doc.Sheets) > 1 {
			if err := writer.Write([]string{sheet.Name}); err != nil {
				return nil, fmt.Errorf("failed to write CSV section: %w", err)
			}
		}
		if err := writer.Write(sheet.Headers); err != nil {
			return nil, fmt.Errorf("failed to write CSV header: %w", err)
		}
		for _, row := range sheet.Rows {
			if err := writer.Write(toStrings(row)); err != nil {
				return nil, fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, value := range row {
		switch v := value.(type) {
		case nil:
			out[i] = ""
		case string:
			out[i] = v
		case float64:
			out[i] = fmt.Sprintf("%.2f", v)
		case time.Time:
			out[i] = v.Format("2006-01-02")
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}
