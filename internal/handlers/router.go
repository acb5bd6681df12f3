package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/grade-analytics-service/internal/services"
	"github.com/SAP-F-2025/grade-analytics-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const serviceName = "grade-analytics-service"

type HandlerManager struct {
	gradeHandler     *GradeHandler
	analyticsHandler *AnalyticsHandler
	reportHandler    *ReportHandler
	directoryHandler *DirectoryHandler
	auth             *Authenticator
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	auth *Authenticator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		gradeHandler:     NewGradeHandler(serviceManager.Grade(), logger),
		analyticsHandler: NewAnalyticsHandler(serviceManager.Analytics(), logger),
		reportHandler:    NewReportHandler(serviceManager.Report(), logger),
		directoryHandler: NewDirectoryHandler(serviceManager.Directory(), logger),
		auth:             auth,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(hm.auth.Middleware())
	{
		grades := v1.Group("/grades")
		{
			grades.GET("", hm.gradeHandler.ListGrades)
			grades.GET("/statistics", hm.gradeHandler.GetStatistics)
			grades.GET("/:id", hm.gradeHandler.GetGrade)

			// Writes
			editors := grades.Group("", RequireGradeEditor())
			editors.POST("", hm.gradeHandler.RecordGrade)
			editors.POST("/bulk", hm.gradeHandler.BulkUpsertGrades)
			editors.POST("/import", hm.gradeHandler.ImportGrades)
			editors.PUT("/:id", hm.gradeHandler.UpdateGrade)
			editors.DELETE("/:id", hm.gradeHandler.DeleteGrade)
		}

		analytics := v1.Group("/analytics")
		{
			analytics.GET("/year-window", hm.analyticsHandler.GetYearWindow)
			analytics.GET("/distributions", hm.analyticsHandler.ListDistributions)
			analytics.POST("/subjects/:subject_id/distribution", hm.analyticsHandler.ComputeDistribution)
			analytics.POST("/students/:student_id/performance", hm.analyticsHandler.ComputeStudentPerformance)
			analytics.POST("/classes/:class_id/rankings", hm.analyticsHandler.RankClass)
			analytics.GET("/subject-comparison", hm.analyticsHandler.CompareSubjects)

			charts := analytics.Group("/charts")
			charts.GET("/grade-distribution/:subject_id", hm.analyticsHandler.GradeDistributionChart)
			charts.GET("/subject-comparison", hm.analyticsHandler.SubjectComparisonChart)
			charts.GET("/performance-trend/:student_id", hm.analyticsHandler.PerformanceTrendChart)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/students/:student_id", hm.reportHandler.StudentReport)
			reports.GET("/classes/:class_id", hm.reportHandler.ClassReport)
			reports.GET("/school", hm.reportHandler.SchoolReport)
			reports.POST("/generate", hm.reportHandler.GenerateReport)
			reports.GET("/history", hm.reportHandler.ReportHistory)
		}

		v1.GET("/students", hm.directoryHandler.ListStudents)
		v1.GET("/subjects", hm.directoryHandler.ListSubjects)
		v1.GET("/classes", hm.directoryHandler.ListClasses)
		v1.GET("/search", hm.directoryHandler.Search)
		v1.GET("/dashboard/stats", hm.directoryHandler.DashboardStats)
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
	})
}
