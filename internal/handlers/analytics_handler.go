package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/grade-analytics-service/internal/services"
	"github.com/SAP-F-2025/grade-analytics-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// AnalyticsHandler exposes the derived cells, rankings and chart payloads.
// Every endpoint is scoped by the academic_year and term query parameters.
type AnalyticsHandler struct {
	BaseHandler
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService, logger utils.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      NewBaseHandler(logger),
		analyticsService: analyticsService,
	}
}

// GetYearWindow resolves the date range of an academic year
// @Summary Resolve academic year window
// @Description Resolves the date range of an academic year
// @Tags analytics
// @Produce json
// @Param academic_year query string false "YYYY-YYYY, the current year when omitted"
// @Success 200 {object} analytics.YearWindow
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/year-window [get]
func (h *AnalyticsHandler) GetYearWindow(c *gin.Context) {
	academicYear := strings.TrimSpace(c.Query("academic_year"))

	window, err := h.analyticsService.ResolveYearWindow(c.Request.Context(), academicYear)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, window)
}

// ComputeDistribution recomputes and stores a subject's band distribution
// @Summary Compute grade distribution
// @Description Recomputes and stores a subject's band distribution
// @Tags analytics
// @Produce json
// @Param subject_id path uint true "Subject ID"
// @Param academic_year query string true "YYYY-YYYY"
// @Param term query string true "TERM1, TERM2 or TERM3"
// @Success 200 {object} models.GradeDistribution
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/subjects/{subject_id}/distribution [post]
func (h *AnalyticsHandler) ComputeDistribution(c *gin.Context) {
	subjectID := parseIDParam(c, "subject_id")
	if subjectID == 0 {
		return
	}
	academicYear, term := scopeQuery(c)

	h.LogRequest(c, "Computing grade distribution", "subject_id", subjectID, "academic_year", academicYear, "term", term)

	distribution, err := h.analyticsService.ComputeDistribution(c.Request.Context(), subjectID, academicYear, term)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, distribution)
}

// ListDistributions returns the stored distributions of a scope
// @Summary List grade distributions
// @Description Returns the stored distributions of a scope
// @Tags analytics
// @Produce json
// @Param academic_year query string true "YYYY-YYYY"
// @Param term query string true "TERM1, TERM2 or TERM3"
// @Success 200 {array} models.GradeDistribution
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/distributions [get]
func (h *AnalyticsHandler) ListDistributions(c *gin.Context) {
	academicYear, term := scopeQuery(c)

	distributions, err := h.analyticsService.ListDistributions(c.Request.Context(), academicYear, term)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"distributions": distributions, "total": len(distributions)})
}

// ComputeStudentPerformance recomputes and stores a student's term rollup
// @Summary Compute student performance
// @Description Recomputes and stores a student's term rollup
// @Tags analytics
// @Produce json
// @Param student_id path uint true "Student ID"
// @Param academic_year query string true "YYYY-YYYY"
// @Param term query string true "TERM1, TERM2 or TERM3"
// @Success 200 {object} models.StudentPerformance
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/students/{student_id}/performance [post]
func (h *AnalyticsHandler) ComputeStudentPerformance(c *gin.Context) {
	studentID := parseIDParam(c, "student_id")
	if studentID == 0 {
		return
	}
	academicYear, term := scopeQuery(c)

	h.LogRequest(c, "Computing student performance", "student_id", studentID, "academic_year", academicYear, "term", term)

	performance, err := h.analyticsService.ComputeStudentPerformance(c.Request.Context(), studentID, academicYear, term)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, performance)
}

// RankClass ranks the graded students of a class and stores their ranks
// @Summary Rank class
// @Description Ranks the graded students of a class and stores their ranks
// @Tags analytics
// @Produce json
// @Param class_id path uint true "Class ID"
// @Param academic_year query string true "YYYY-YYYY"
// @Param term query string true "TERM1, TERM2 or TERM3"
// @Success 200 {array} models.StudentPerformance
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/classes/{class_id}/rankings [post]
func (h *AnalyticsHandler) RankClass(c *gin.Context) {
	classID := parseIDParam(c, "class_id")
	if classID == 0 {
		return
	}
	academicYear, term := scopeQuery(c)

	h.LogRequest(c, "Ranking class", "class_id", classID, "academic_year", academicYear, "term", term)

	ranked, err := h.analyticsService.RankClassPerformance(c.Request.Context(), classID, academicYear, term)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rankings": ranked, "total": len(ranked)})
}

// CompareSubjects orders subjects by average score
// @Summary Compare subjects
// @Description Orders subjects by average score
// @Tags analytics
// @Produce json
// @Param academic_year query string true "YYYY-YYYY"
// @Param term query string true "TERM1, TERM2 or TERM3"
// @Success 200 {array} analytics.SubjectComparison
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/subject-comparison [get]
func (h *AnalyticsHandler) CompareSubjects(c *gin.Context) {
	academicYear, term := scopeQuery(c)

	rows, err := h.analyticsService.CompareSubjects(c.Request.Context(), academicYear, term)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subjects": rows, "total": len(rows)})
}

// ===== CHARTS =====

// GradeDistributionChart charts a stored distribution
// @Summary Grade distribution chart
// @Description Charts a stored distribution
// @Tags charts
// @Produce json
// @Param subject_id path uint true "Subject ID"
// @Param academic_year query string true "YYYY-YYYY"
// @Param term query string true "TERM1, TERM2 or TERM3"
// @Success 200 {object} services.ChartData
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/charts/grade-distribution/{subject_id} [get]
func (h *AnalyticsHandler) GradeDistributionChart(c *gin.Context) {
	subjectID := parseIDParam(c, "subject_id")
	if subjectID == 0 {
		return
	}
	academicYear, term := scopeQuery(c)

	chart, err := h.analyticsService.GradeDistributionChart(c.Request.Context(), subjectID, academicYear, term)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, chart)
}

// SubjectComparisonChart charts subject averages
// @Summary Subject comparison chart
// @Description Charts subject averages
// @Tags charts
// @Produce json
// @Param academic_year query string true "YYYY-YYYY"
// @Param term query string true "TERM1, TERM2 or TERM3"
// @Success 200 {object} services.ChartData
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/charts/subject-comparison [get]
func (h *AnalyticsHandler) SubjectComparisonChart(c *gin.Context) {
	academicYear, term := scopeQuery(c)

	chart, err := h.analyticsService.SubjectComparisonChart(c.Request.Context(), academicYear, term)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, chart)
}

// PerformanceTrendChart plots a student's stored term averages
// @Summary Performance trend chart
// @Description Plots a student's stored term averages
// @Tags charts
// @Produce json
// @Param student_id path uint true "Student ID"
// @Param academic_year query string true "YYYY-YYYY"
// @Success 200 {object} services.ChartData
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/charts/performance-trend/{student_id} [get]
func (h *AnalyticsHandler) PerformanceTrendChart(c *gin.Context) {
	studentID := parseIDParam(c, "student_id")
	if studentID == 0 {
		return
	}
	academicYear := strings.TrimSpace(c.Query("academic_year"))

	chart, err := h.analyticsService.PerformanceTrendChart(c.Request.Context(), studentID, academicYear)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, chart)
}
