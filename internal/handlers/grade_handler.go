package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/grade-analytics-service/internal/repositories"
	"github.com/SAP-F-2025/grade-analytics-service/internal/services"
	"github.com/SAP-F-2025/grade-analytics-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type GradeHandler struct {
	BaseHandler
	gradeService services.GradeService
}

type BulkGradeRequest struct {
	Grades []services.GradeRequest `json:"grades"`
}

func NewGradeHandler(gradeService services.GradeService, logger utils.Logger) *GradeHandler {
	return &GradeHandler{
		BaseHandler:  NewBaseHandler(logger),
		gradeService: gradeService,
	}
}

// RecordGrade records a single assessment result
// @Summary Record grade
// @Description Records a single assessment result
// @Tags grades
// @Accept json
// @Produce json
// @Param grade body services.GradeRequest true "Grade data"
// @Success 201 {object} models.Grade
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /grades [post]
func (h *GradeHandler) RecordGrade(c *gin.Context) {
	var req services.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	h.LogRequest(c, "Recording grade", "student_id", req.StudentID, "subject_id", req.SubjectID)

	grade, err := h.gradeService.Record(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, grade)
}

// GetGrade returns one grade
// @Summary Get grade
// @Description Returns one grade
// @Tags grades
// @Produce json
// @Param id path uint true "Grade ID"
// @Success 200 {object} models.Grade
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /grades/{id} [get]
func (h *GradeHandler) GetGrade(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	grade, err := h.gradeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, grade)
}

// ListGrades lists grades with optional filters
// @Summary List grades
// @Description Lists grades with optional filters
// @Tags grades
// @Produce json
// @Param student_id query uint false "Student"
// @Param subject_id query uint false "Subject"
// @Param term query string false "TERM1, TERM2 or TERM3"
// @Param assessment_type query string false "Assessment type"
// @Param date_from query string false "YYYY-MM-DD"
// @Param date_to query string false "YYYY-MM-DD"
// @Param search query string false "Assessment, student or subject name"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} services.GradeListResponse
// @Failure 500 {object} ErrorResponse
// @Router /grades [get]
func (h *GradeHandler) ListGrades(c *gin.Context) {
	filters := repositories.GradeFilters{
		StudentID:      queryUint(c, "student_id"),
		SubjectID:      queryUint(c, "subject_id"),
		Term:           queryTerm(c),
		AssessmentType: queryAssessmentType(c),
		DateFrom:       queryDate(c, "date_from"),
		DateTo:         queryDate(c, "date_to"),
		Search:         c.Query("search"),
		Limit:          queryInt(c, "limit", 0),
		Offset:         queryInt(c, "offset", 0),
		SortBy:         c.Query("sort_by"),
		SortOrder:      c.Query("sort_order"),
	}

	resp, err := h.gradeService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateGrade replaces a grade's fields and recomputes its percentage
// @Summary Update grade
// @Description Replaces a grade's fields and recomputes its percentage
// @Tags grades
// @Accept json
// @Produce json
// @Param id path uint true "Grade ID"
// @Param grade body services.GradeRequest true "Grade data"
// @Success 200 {object} models.Grade
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /grades/{id} [put]
func (h *GradeHandler) UpdateGrade(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	h.LogRequest(c, "Updating grade", "grade_id", id)

	grade, err := h.gradeService.Update(c.Request.Context(), id, &req, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, grade)
}

// DeleteGrade removes a grade
// @Summary Delete grade
// @Description Removes a grade
// @Tags grades
// @Param id path uint true "Grade ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /grades/{id} [delete]
func (h *GradeHandler) DeleteGrade(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting grade", "grade_id", id)

	if err := h.gradeService.Delete(c.Request.Context(), id, currentUserID(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// BulkUpsertGrades creates or updates many grades; each row reports its own outcome
// @Summary Bulk upsert grades
// @Description Creates or updates many grades; each row reports its own outcome
// @Tags grades
// @Accept json
// @Produce json
// @Param grades body BulkGradeRequest true "Rows"
// @Success 200 {object} services.BulkGradeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /grades/bulk [post]
func (h *GradeHandler) BulkUpsertGrades(c *gin.Context) {
	var req BulkGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	h.LogRequest(c, "Bulk upserting grades", "rows", len(req.Grades))

	resp, err := h.gradeService.BulkUpsert(c.Request.Context(), req.Grades, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ImportGrades bulk upserts grades from an uploaded CSV or XLSX file
// @Summary Import grades
// @Description Bulk upserts grades from an uploaded CSV or XLSX file
// @Tags grades
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX sheet"
// @Success 200 {object} services.BulkGradeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /grades/import [post]
func (h *GradeHandler) ImportGrades(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Missing upload", nil, "expected a multipart file field named 'file'")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Unreadable upload", err)
		return
	}
	defer file.Close()

	h.LogRequest(c, "Importing grades", "filename", fileHeader.Filename, "size", fileHeader.Size)

	resp, err := h.gradeService.ImportFromFile(c.Request.Context(), file, fileHeader.Filename, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetStatistics summarises the filtered grades
// @Summary Grade statistics
// @Description Summarises the filtered grades
// @Tags grades
// @Produce json
// @Param term query string false "TERM1, TERM2 or TERM3"
// @Param subject_id query uint false "Subject"
// @Param assessment_type query string false "Assessment type"
// @Success 200 {object} services.GradeStatistics
// @Failure 500 {object} ErrorResponse
// @Router /grades/statistics [get]
func (h *GradeHandler) GetStatistics(c *gin.Context) {
	filters := services.GradeStatisticsFilters{
		Term:           queryTerm(c),
		SubjectID:      queryUint(c, "subject_id"),
		AssessmentType: queryAssessmentType(c),
	}

	stats, err := h.gradeService.GetStatistics(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
