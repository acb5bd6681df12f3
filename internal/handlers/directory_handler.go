package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/grade-analytics-service/internal/repositories"
	"github.com/SAP-F-2025/grade-analytics-service/internal/services"
	"github.com/SAP-F-2025/grade-analytics-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// DirectoryHandler serves the reference lists, cross-entity search and the
// dashboard summary.
type DirectoryHandler struct {
	BaseHandler
	directoryService services.DirectoryService
}

func NewDirectoryHandler(directoryService services.DirectoryService, logger utils.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		BaseHandler:      NewBaseHandler(logger),
		directoryService: directoryService,
	}
}

// ListStudents lists students with optional filters
// @Summary List students
// @Description Lists students ordered by name, filtered by class, status or a name search
// @Tags directory
// @Produce json
// @Param class_id query uint false "Class"
// @Param is_active query bool false "Active flag"
// @Param search query string false "Name, student number or email"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} services.StudentListResponse
// @Failure 500 {object} ErrorResponse
// @Router /students [get]
func (h *DirectoryHandler) ListStudents(c *gin.Context) {
	filters := repositories.StudentFilters{
		ClassID:  queryUint(c, "class_id"),
		IsActive: queryBool(c, "is_active"),
		Search:   c.Query("search"),
		Limit:    queryInt(c, "limit", 0),
		Offset:   queryInt(c, "offset", 0),
	}

	resp, err := h.directoryService.ListStudents(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListSubjects lists every subject
// @Summary List subjects
// @Description Lists every subject ordered by name
// @Tags directory
// @Produce json
// @Success 200 {array} models.Subject
// @Failure 500 {object} ErrorResponse
// @Router /subjects [get]
func (h *DirectoryHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.directoryService.ListSubjects(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subjects)
}

// ListClasses lists every class with its academic year
// @Summary List classes
// @Description Lists every class ordered by name, with its academic year
// @Tags directory
// @Produce json
// @Success 200 {array} models.Class
// @Failure 500 {object} ErrorResponse
// @Router /classes [get]
func (h *DirectoryHandler) ListClasses(c *gin.Context) {
	classes, err := h.directoryService.ListClasses(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, classes)
}

// Search matches a query against students, grades and subjects
// @Summary Search
// @Description Searches students, grades and subjects; type narrows the search to one kind
// @Tags directory
// @Produce json
// @Param q query string true "Search text"
// @Param type query string false "all, students, grades or subjects"
// @Success 200 {object} services.SearchResults
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /search [get]
func (h *DirectoryHandler) Search(c *gin.Context) {
	scope := services.SearchScope(c.DefaultQuery("type", string(services.SearchAll)))

	results, err := h.directoryService.Search(c.Request.Context(), c.Query("q"), scope)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// DashboardStats returns the headline counts for the dashboard
// @Summary Dashboard statistics
// @Description Returns student, subject, class and grade counts, today's activity, recent grades and the overall band distribution
// @Tags directory
// @Produce json
// @Success 200 {object} services.DashboardStats
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/stats [get]
func (h *DirectoryHandler) DashboardStats(c *gin.Context) {
	stats, err := h.directoryService.DashboardStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
