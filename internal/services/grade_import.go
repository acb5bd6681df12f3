package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
	"github.com/xuri/excelize/v2"
)

var requiredImportColumns = []string{"student_id", "subject_id", "assessment_name", "score", "term"}

// ImportFromFile bulk upserts grades from an uploaded CSV or XLSX sheet.
// The first row is a header; column names match the JSON field names.
func (s *gradeService) ImportFromFile(ctx context.Context, reader io.Reader, filename, createdBy string) (*BulkGradeResponse, error) {
	s.logger.logger.Info("Starting grade import", "filename", filename, "user_id", createdBy)

	var (
		records [][]string
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		records, err = readCSVRecords(reader)
	case ".xlsx":
		records, err = readExcelRecords(reader)
	default:
		return nil, ValidationErrors{*NewValidationError("file", "unsupported file format", ext)}
	}
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return nil, ValidationErrors{*NewValidationError("file", "must have a header row and at least one data row", len(records))}
	}

	headerMap := make(map[string]int)
	for i, header := range records[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range requiredImportColumns {
		if _, exists := headerMap[col]; !exists {
			return nil, ValidationErrors{*NewValidationError("headers", fmt.Sprintf("missing required column: %s", col), col)}
		}
	}

	response := &BulkGradeResponse{
		Total:   len(records) - 1,
		Results: make([]BulkGradeResult, 0, len(records)-1),
	}

	for rowIndex, record := range records[1:] {
		var result BulkGradeResult
		req, err := parseGradeRecord(record, headerMap)
		if err != nil {
			result = BulkGradeResult{Error: err.Error()}
		} else {
			result = s.upsertRow(ctx, req, createdBy)
		}
		result.Row = rowIndex + 2

		switch {
		case !result.Success:
			response.Failed++
		case result.Created:
			response.Succeeded++
			response.Created++
		default:
			response.Succeeded++
			response.Updated++
		}
		response.Results = append(response.Results, result)
	}

	s.logger.logger.Info("Grade import completed",
		"filename", filename,
		"total_rows", response.Total,
		"created", response.Created,
		"updated", response.Updated,
		"failed", response.Failed)

	return response, nil
}

func readCSVRecords(reader io.Reader) ([][]string, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, ValidationErrors{*NewValidationError("file", fmt.Sprintf("unreadable CSV: %v", err), nil)}
	}
	return records, nil
}

func readExcelRecords(reader io.Reader) ([][]string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, ValidationErrors{*NewValidationError("file", fmt.Sprintf("unreadable Excel file: %v", err), nil)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ValidationErrors{*NewValidationError("file", "Excel file has no sheets", nil)}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	return rows, nil
}

// parseGradeRecord converts one sheet row. Optional columns left blank take
// the bulk defaults.
func parseGradeRecord(record []string, headerMap map[string]int) (*GradeRequest, error) {
	column := func(name string) string {
		if index, exists := headerMap[name]; exists && index < len(record) {
			return strings.TrimSpace(record[index])
		}
		return ""
	}

	studentID, err := strconv.ParseUint(column("student_id"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("student_id: not a valid id %q", column("student_id"))
	}
	subjectID, err := strconv.ParseUint(column("subject_id"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("subject_id: not a valid id %q", column("subject_id"))
	}
	score, err := strconv.ParseFloat(column("score"), 64)
	if err != nil {
		return nil, fmt.Errorf("score: not a number %q", column("score"))
	}

	req := &GradeRequest{
		StudentID:      uint(studentID),
		SubjectID:      uint(subjectID),
		AssessmentName: column("assessment_name"),
		AssessmentType: models.AssessmentType(strings.ToUpper(column("assessment_type"))),
		Score:          score,
		Term:           models.Term(strings.ToUpper(column("term"))),
		Date:           column("date"),
		Comments:       column("comments"),
	}

	if raw := column("max_score"); raw != "" {
		maxScore, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("max_score: not a number %q", raw)
		}
		req.MaxScore = &maxScore
	}
	return req, nil
}
