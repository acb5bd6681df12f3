package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/grade-analytics-service/internal/services"
	"github.com/SAP-F-2025/grade-analytics-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	BaseHandler
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   NewBaseHandler(logger),
		reportService: reportService,
	}
}

// StudentReport assembles a student's report card payload
// @Summary Student report
// @Description Assembles a student's report card payload
// @Tags reports
// @Produce json
// @Param student_id path uint true "Student ID"
// @Param academic_year query string true "YYYY-YYYY"
// @Param term query string true "TERM1, TERM2 or TERM3"
// @Success 200 {object} services.StudentReport
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/students/{student_id} [get]
func (h *ReportHandler) StudentReport(c *gin.Context) {
	studentID := parseIDParam(c, "student_id")
	if studentID == 0 {
		return
	}
	academicYear, term := scopeQuery(c)

	report, err := h.reportService.AssembleStudentReport(c.Request.Context(), studentID, academicYear, term)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ClassReport assembles a ranked class report payload
// @Summary Class report
// @Description Assembles a ranked class report payload
// @Tags reports
// @Produce json
// @Param class_id path uint true "Class ID"
// @Param academic_year query string true "YYYY-YYYY"
// @Param term query string true "TERM1, TERM2 or TERM3"
// @Success 200 {object} services.ClassReport
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/classes/{class_id} [get]
func (h *ReportHandler) ClassReport(c *gin.Context) {
	classID := parseIDParam(c, "class_id")
	if classID == 0 {
		return
	}
	academicYear, term := scopeQuery(c)

	report, err := h.reportService.AssembleClassReport(c.Request.Context(), classID, academicYear, term)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// SchoolReport assembles the school-wide summary payload
// @Summary School report
// @Description Assembles the school-wide summary payload
// @Tags reports
// @Produce json
// @Param academic_year query string true "YYYY-YYYY"
// @Param term query string true "TERM1, TERM2 or TERM3"
// @Success 200 {object} services.SchoolReport
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/school [get]
func (h *ReportHandler) SchoolReport(c *gin.Context) {
	academicYear, term := scopeQuery(c)

	report, err := h.reportService.AssembleSchoolReport(c.Request.Context(), academicYear, term)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GenerateReport assembles, renders and records a report. File formats are
// returned as a download; JSON returns the payload with its history record.
// @Summary Generate report
// @Description Assembles, renders and records a report; CSV and XLSX are returned as a download, JSON returns the payload with its history record
// @Tags reports
// @Accept json
// @Produce json,text/csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param request body services.ReportRequest true "Report scope and format"
// @Success 200 {object} services.ReportOutput
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/generate [post]
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	var req services.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	h.LogRequest(c, "Generating report", "report_type", req.ReportType, "format", req.Format)

	output, err := h.reportService.Generate(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if output.Content != nil {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
		c.Data(http.StatusOK, output.ContentType, output.Content)
		return
	}

	c.JSON(http.StatusOK, output)
}

// ReportHistory lists the caller's generated reports, newest first
// @Summary Report history
// @Description Lists the caller's generated reports, newest first
// @Tags reports
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} services.ReportHistoryResponse
// @Failure 500 {object} ErrorResponse
// @Router /reports/history [get]
func (h *ReportHandler) ReportHistory(c *gin.Context) {
	resp, err := h.reportService.ListReportHistory(
		c.Request.Context(),
		currentUserID(c),
		queryInt(c, "limit", 0),
		queryInt(c, "offset", 0),
	)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
