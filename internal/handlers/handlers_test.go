package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SAP-F-2025/grade-analytics-service/internal/analytics"
	"github.com/SAP-F-2025/grade-analytics-service/internal/config"
	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
	"github.com/SAP-F-2025/grade-analytics-service/internal/repositories"
	"github.com/SAP-F-2025/grade-analytics-service/internal/services"
	"github.com/SAP-F-2025/grade-analytics-service/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===== SERVICE MOCKS =====

type mockGradeService struct{ mock.Mock }

func (m *mockGradeService) Record(ctx context.Context, req *services.GradeRequest, createdBy string) (*models.Grade, error) {
	args := m.Called(ctx, req, createdBy)
	if g := args.Get(0); g != nil {
		return g.(*models.Grade), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGradeService) Update(ctx context.Context, id uint, req *services.GradeRequest, updatedBy string) (*models.Grade, error) {
	args := m.Called(ctx, id, req, updatedBy)
	if g := args.Get(0); g != nil {
		return g.(*models.Grade), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGradeService) Delete(ctx context.Context, id uint, deletedBy string) error {
	return m.Called(ctx, id, deletedBy).Error(0)
}

func (m *mockGradeService) GetByID(ctx context.Context, id uint) (*models.Grade, error) {
	args := m.Called(ctx, id)
	if g := args.Get(0); g != nil {
		return g.(*models.Grade), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGradeService) List(ctx context.Context, filters repositories.GradeFilters) (*services.GradeListResponse, error) {
	args := m.Called(ctx, filters)
	if r := args.Get(0); r != nil {
		return r.(*services.GradeListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGradeService) BulkUpsert(ctx context.Context, rows []services.GradeRequest, createdBy string) (*services.BulkGradeResponse, error) {
	args := m.Called(ctx, rows, createdBy)
	if r := args.Get(0); r != nil {
		return r.(*services.BulkGradeResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGradeService) ImportFromFile(ctx context.Context, reader io.Reader, filename, createdBy string) (*services.BulkGradeResponse, error) {
	args := m.Called(ctx, reader, filename, createdBy)
	if r := args.Get(0); r != nil {
		return r.(*services.BulkGradeResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGradeService) GetStatistics(ctx context.Context, filters services.GradeStatisticsFilters) (*services.GradeStatistics, error) {
	args := m.Called(ctx, filters)
	if r := args.Get(0); r != nil {
		return r.(*services.GradeStatistics), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAnalyticsService struct{ mock.Mock }

func (m *mockAnalyticsService) ResolveYearWindow(ctx context.Context, academicYear string) (analytics.YearWindow, error) {
	args := m.Called(ctx, academicYear)
	return args.Get(0).(analytics.YearWindow), args.Error(1)
}

func (m *mockAnalyticsService) ComputeDistribution(ctx context.Context, subjectID uint, academicYear string, term models.Term) (*models.GradeDistribution, error) {
	args := m.Called(ctx, subjectID, academicYear, term)
	if d := args.Get(0); d != nil {
		return d.(*models.GradeDistribution), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAnalyticsService) ListDistributions(ctx context.Context, academicYear string, term models.Term) ([]*models.GradeDistribution, error) {
	args := m.Called(ctx, academicYear, term)
	return args.Get(0).([]*models.GradeDistribution), args.Error(1)
}

func (m *mockAnalyticsService) ComputeStudentPerformance(ctx context.Context, studentID uint, academicYear string, term models.Term) (*models.StudentPerformance, error) {
	args := m.Called(ctx, studentID, academicYear, term)
	if p := args.Get(0); p != nil {
		return p.(*models.StudentPerformance), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAnalyticsService) RankClassPerformance(ctx context.Context, classID uint, academicYear string, term models.Term) ([]*models.StudentPerformance, error) {
	args := m.Called(ctx, classID, academicYear, term)
	return args.Get(0).([]*models.StudentPerformance), args.Error(1)
}

func (m *mockAnalyticsService) CompareSubjects(ctx context.Context, academicYear string, term models.Term) ([]analytics.SubjectComparison, error) {
	args := m.Called(ctx, academicYear, term)
	return args.Get(0).([]analytics.SubjectComparison), args.Error(1)
}

func (m *mockAnalyticsService) GradeDistributionChart(ctx context.Context, subjectID uint, academicYear string, term models.Term) (*services.ChartData, error) {
	args := m.Called(ctx, subjectID, academicYear, term)
	if c := args.Get(0); c != nil {
		return c.(*services.ChartData), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAnalyticsService) SubjectComparisonChart(ctx context.Context, academicYear string, term models.Term) (*services.ChartData, error) {
	args := m.Called(ctx, academicYear, term)
	if c := args.Get(0); c != nil {
		return c.(*services.ChartData), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAnalyticsService) PerformanceTrendChart(ctx context.Context, studentID uint, academicYear string) (*services.ChartData, error) {
	args := m.Called(ctx, studentID, academicYear)
	if c := args.Get(0); c != nil {
		return c.(*services.ChartData), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockReportService struct{ mock.Mock }

func (m *mockReportService) AssembleStudentReport(ctx context.Context, studentID uint, academicYear string, term models.Term) (*services.StudentReport, error) {
	args := m.Called(ctx, studentID, academicYear, term)
	if r := args.Get(0); r != nil {
		return r.(*services.StudentReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportService) AssembleClassReport(ctx context.Context, classID uint, academicYear string, term models.Term) (*services.ClassReport, error) {
	args := m.Called(ctx, classID, academicYear, term)
	if r := args.Get(0); r != nil {
		return r.(*services.ClassReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportService) AssembleSchoolReport(ctx context.Context, academicYear string, term models.Term) (*services.SchoolReport, error) {
	args := m.Called(ctx, academicYear, term)
	if r := args.Get(0); r != nil {
		return r.(*services.SchoolReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportService) Generate(ctx context.Context, req *services.ReportRequest, userID string) (*services.ReportOutput, error) {
	args := m.Called(ctx, req, userID)
	if r := args.Get(0); r != nil {
		return r.(*services.ReportOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportService) RecordGeneratedReport(ctx context.Context, reportType models.ReportType, title string, params services.ReportParameters, format models.ReportFormat, userID string) (*models.GeneratedReport, error) {
	args := m.Called(ctx, reportType, title, params, format, userID)
	if r := args.Get(0); r != nil {
		return r.(*models.GeneratedReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportService) ListReportHistory(ctx context.Context, userID string, limit, offset int) (*services.ReportHistoryResponse, error) {
	args := m.Called(ctx, userID, limit, offset)
	if r := args.Get(0); r != nil {
		return r.(*services.ReportHistoryResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockDirectoryService struct{ mock.Mock }

func (m *mockDirectoryService) ListStudents(ctx context.Context, filters repositories.StudentFilters) (*services.StudentListResponse, error) {
	args := m.Called(ctx, filters)
	if r := args.Get(0); r != nil {
		return r.(*services.StudentListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDirectoryService) ListSubjects(ctx context.Context) ([]*models.Subject, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.([]*models.Subject), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDirectoryService) ListClasses(ctx context.Context) ([]*models.Class, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.([]*models.Class), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDirectoryService) Search(ctx context.Context, query string, scope services.SearchScope) (*services.SearchResults, error) {
	args := m.Called(ctx, query, scope)
	if r := args.Get(0); r != nil {
		return r.(*services.SearchResults), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDirectoryService) DashboardStats(ctx context.Context) (*services.DashboardStats, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.(*services.DashboardStats), args.Error(1)
	}
	return nil, args.Error(1)
}

type stubServiceManager struct {
	grades    *mockGradeService
	analytics *mockAnalyticsService
	reports   *mockReportService
	directory *mockDirectoryService
}

func (s *stubServiceManager) Grade() services.GradeService         { return s.grades }
func (s *stubServiceManager) Analytics() services.AnalyticsService { return s.analytics }
func (s *stubServiceManager) Report() services.ReportService       { return s.reports }
func (s *stubServiceManager) Directory() services.DirectoryService { return s.directory }

// ===== HARNESS =====

func newTestRouter(t *testing.T) (*gin.Engine, *stubServiceManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	sm := &stubServiceManager{
		grades:    &mockGradeService{},
		analytics: &mockAnalyticsService{},
		reports:   &mockReportService{},
		directory: &mockDirectoryService{},
	}

	router := gin.New()
	router.Use(utils.RequestID(), utils.ContextLogger(logger))
	NewHandlerManager(sm, NewAuthenticator(config.AuthConfig{}, logger), logger).SetupRoutes(router)
	return router, sm
}

func doRequest(router *gin.Engine, method, path string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var teacher = map[string]string{headerUserID: "teacher-1", headerUserRole: "teacher"}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// ===== TESTS =====

func TestHealthCheck(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), serviceName)
	assert.NotEmpty(t, w.Header().Get(utils.RequestIDHeader))
}

func TestAPIRequiresUser(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/grades", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecordGrade(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		router, sm := newTestRouter(t)
		sm.grades.On("Record", mock.Anything, mock.MatchedBy(func(r *services.GradeRequest) bool {
			return r.StudentID == 1 && r.Score == 45
		}), "teacher-1").Return(&models.Grade{ID: 11, Percentage: 90}, nil)

		body := `{"student_id":1,"subject_id":2,"assessment_name":"Midterm","assessment_type":"EXAM","score":45,"max_score":50,"term":"TERM1","date":"2024-03-10"}`
		w := doRequest(router, http.MethodPost, "/api/v1/grades", bytes.NewBufferString(body), teacher)

		require.Equal(t, http.StatusCreated, w.Code)
		var grade models.Grade
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grade))
		assert.Equal(t, 90.0, grade.Percentage)
	})

	t.Run("validation failure is 400", func(t *testing.T) {
		router, sm := newTestRouter(t)
		sm.grades.On("Record", mock.Anything, mock.Anything, "teacher-1").
			Return(nil, services.ValidationErrors{*services.NewValidationError("max_score", "must be greater than 0", 0)})

		w := doRequest(router, http.MethodPost, "/api/v1/grades", bytes.NewBufferString(`{"max_score":0}`), teacher)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, CodeValidation, decodeError(t, w).Code)
	})

	t.Run("staff cannot write grades", func(t *testing.T) {
		router, sm := newTestRouter(t)

		w := doRequest(router, http.MethodPost, "/api/v1/grades", bytes.NewBufferString(`{}`),
			map[string]string{headerUserID: "clerk", headerUserRole: "staff"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		sm.grades.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed json", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := doRequest(router, http.MethodPost, "/api/v1/grades", bytes.NewBufferString(`{`), teacher)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetGrade(t *testing.T) {
	router, sm := newTestRouter(t)
	sm.grades.On("GetByID", mock.Anything, uint(404)).Return(nil, services.ErrGradeNotFound)

	w := doRequest(router, http.MethodGet, "/api/v1/grades/404", nil, teacher)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, CodeNotFound, decodeError(t, w).Code)

	w = doRequest(router, http.MethodGet, "/api/v1/grades/abc", nil, teacher)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListGradesParsesFilters(t *testing.T) {
	router, sm := newTestRouter(t)
	sm.grades.On("List", mock.Anything, mock.MatchedBy(func(f repositories.GradeFilters) bool {
		return f.StudentID != nil && *f.StudentID == 3 &&
			f.Term != nil && *f.Term == models.Term2 &&
			f.DateFrom != nil && f.DateFrom.Format("2006-01-02") == "2024-01-15" &&
			f.Limit == 10
	})).Return(&services.GradeListResponse{Grades: []*models.Grade{}, Total: 0, Limit: 10}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/grades?student_id=3&term=term2&date_from=2024-01-15&limit=10", nil, teacher)
	assert.Equal(t, http.StatusOK, w.Code)
	sm.grades.AssertExpectations(t)
}

func TestImportGrades(t *testing.T) {
	router, sm := newTestRouter(t)
	sm.grades.On("ImportFromFile", mock.Anything, mock.Anything, "grades.csv", "teacher-1").
		Return(&services.BulkGradeResponse{Total: 1, Succeeded: 1, Created: 1}, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "grades.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("student_id,subject_id,assessment_name,score,term\n1,2,Quiz,8,TERM1\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/grades/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(headerUserID, "teacher-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	sm.grades.AssertExpectations(t)
}

func TestComputeDistribution_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"empty scope", fmt.Errorf("subject 1: %w", services.ErrEmptyResultSet), http.StatusNotFound, CodeEmptyResultSet},
		{"unknown subject", services.ErrSubjectNotFound, http.StatusNotFound, CodeNotFound},
		{"bad scope", services.ValidationErrors{*services.NewValidationError("term", "must be a valid term", "TERM9")}, http.StatusBadRequest, CodeValidation},
		{"storage failure", fmt.Errorf("failed to load grades: %w", io.ErrUnexpectedEOF), http.StatusInternalServerError, CodeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, sm := newTestRouter(t)
			sm.analytics.On("ComputeDistribution", mock.Anything, uint(1), "2024-2025", models.Term1).Return(nil, tc.err)

			w := doRequest(router, http.MethodPost, "/api/v1/analytics/subjects/1/distribution?academic_year=2024-2025&term=TERM1", nil, teacher)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, decodeError(t, w).Code)
		})
	}
}

func TestListDistributions(t *testing.T) {
	router, sm := newTestRouter(t)
	sm.analytics.On("ListDistributions", mock.Anything, "2024-2025", models.Term2).Return([]*models.GradeDistribution{
		{SubjectID: 1, AcademicYear: "2024-2025", Term: models.Term2, TotalStudents: 5},
	}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/analytics/distributions?academic_year=2024-2025&term=term2", nil, teacher)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Distributions []*models.GradeDistribution `json:"distributions"`
		Total         int                         `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 5, resp.Distributions[0].TotalStudents)
}

func TestYearWindowDefaultsToCurrent(t *testing.T) {
	router, sm := newTestRouter(t)
	sm.analytics.On("ResolveYearWindow", mock.Anything, "").Return(analytics.YearWindow{}, services.ErrAcademicYearNotFound)

	w := doRequest(router, http.MethodGet, "/api/v1/analytics/year-window", nil, teacher)
	assert.Equal(t, http.StatusNotFound, w.Code)
	sm.analytics.AssertExpectations(t)
}

func TestPerformanceTrendChart(t *testing.T) {
	router, sm := newTestRouter(t)
	sm.analytics.On("PerformanceTrendChart", mock.Anything, uint(5), "2024-2025").Return(&services.ChartData{
		Labels:   []string{"Term 1", "Term 2", "Term 3"},
		Datasets: []services.ChartDataset{{Label: "2024-2025 Performance", Data: []float64{80, 0, 70}}},
	}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/analytics/charts/performance-trend/5?academic_year=2024-2025", nil, teacher)
	require.Equal(t, http.StatusOK, w.Code)

	var chart services.ChartData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chart))
	assert.Equal(t, []float64{80, 0, 70}, chart.Datasets[0].Data)
}

func TestGenerateReport(t *testing.T) {
	t.Run("file download", func(t *testing.T) {
		router, sm := newTestRouter(t)
		sm.reports.On("Generate", mock.Anything, mock.MatchedBy(func(r *services.ReportRequest) bool {
			return r.ReportType == models.ReportClass && r.Format == models.FormatCSV
		}), "teacher-1").Return(&services.ReportOutput{
			Record:      &models.GeneratedReport{ID: 9},
			Content:     []byte("Field,Value\n"),
			ContentType: "text/csv",
			Filename:    "class-7-report-2024-2025-TERM1.csv",
		}, nil)

		body := `{"report_type":"CLASS","class_id":7,"academic_year":"2024-2025","term":"TERM1","format":"csv"}`
		w := doRequest(router, http.MethodPost, "/api/v1/reports/generate", bytes.NewBufferString(body), teacher)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="class-7-report-2024-2025-TERM1.csv"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "Field,Value\n", w.Body.String())
	})

	t.Run("json payload", func(t *testing.T) {
		router, sm := newTestRouter(t)
		sm.reports.On("Generate", mock.Anything, mock.Anything, "teacher-1").Return(&services.ReportOutput{
			Record:  &models.GeneratedReport{ID: 10, Format: models.FormatJSON},
			Payload: &services.SchoolReport{AcademicYear: "2024-2025"},
		}, nil)

		body := `{"report_type":"SCHOOL","academic_year":"2024-2025","term":"TERM1"}`
		w := doRequest(router, http.MethodPost, "/api/v1/reports/generate", bytes.NewBufferString(body), teacher)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"academic_year":"2024-2025"`)
	})
}

func TestReportHistoryUsesCaller(t *testing.T) {
	router, sm := newTestRouter(t)
	sm.reports.On("ListReportHistory", mock.Anything, "teacher-1", 5, 10).
		Return(&services.ReportHistoryResponse{Reports: []*models.GeneratedReport{}, Limit: 5, Offset: 10}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/reports/history?limit=5&offset=10", nil, teacher)
	assert.Equal(t, http.StatusOK, w.Code)
	sm.reports.AssertExpectations(t)
}

func TestListStudentsParsesFilters(t *testing.T) {
	router, sm := newTestRouter(t)
	sm.directory.On("ListStudents", mock.Anything, mock.MatchedBy(func(f repositories.StudentFilters) bool {
		return f.ClassID != nil && *f.ClassID == 4 &&
			f.IsActive != nil && !*f.IsActive &&
			f.Search == "ada" && f.Limit == 20
	})).Return(&services.StudentListResponse{Students: []*models.Student{{ID: 1, FirstName: "Ada"}}, Total: 1, Limit: 20}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/students?class_id=4&is_active=false&search=ada&limit=20", nil, teacher)
	assert.Equal(t, http.StatusOK, w.Code)
	sm.directory.AssertExpectations(t)
}

func TestSearch(t *testing.T) {
	t.Run("defaults to all kinds", func(t *testing.T) {
		router, sm := newTestRouter(t)
		sm.directory.On("Search", mock.Anything, "math", services.SearchAll).Return(&services.SearchResults{
			Query:    "math",
			Subjects: []*models.Subject{{ID: 2, Name: "Mathematics"}},
		}, nil)

		w := doRequest(router, http.MethodGet, "/api/v1/search?q=math", nil, teacher)
		require.Equal(t, http.StatusOK, w.Code)

		var resp services.SearchResults
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Subjects, 1)
		assert.Equal(t, "Mathematics", resp.Subjects[0].Name)
	})

	t.Run("validation failure is 400", func(t *testing.T) {
		router, sm := newTestRouter(t)
		sm.directory.On("Search", mock.Anything, "", services.SearchScope("teachers")).
			Return(nil, services.ValidationErrors{*services.NewValidationError("q", "is required", "")})

		w := doRequest(router, http.MethodGet, "/api/v1/search?type=teachers", nil, teacher)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, CodeValidation, decodeError(t, w).Code)
	})
}

func TestDashboardStats(t *testing.T) {
	router, sm := newTestRouter(t)
	sm.directory.On("DashboardStats", mock.Anything).Return(&services.DashboardStats{
		TotalStudents:     12,
		TotalGrades:       40,
		GradeDistribution: map[string]int64{"A": 10, "B": 10, "C": 10, "D": 5, "F": 5},
	}, nil)

	w := doRequest(router, http.MethodGet, "/api/v1/dashboard/stats", nil, teacher)
	require.Equal(t, http.StatusOK, w.Code)

	var resp services.DashboardStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(12), resp.TotalStudents)
	assert.Equal(t, int64(5), resp.GradeDistribution["F"])
}
