package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/grade-analytics-service/internal/cache"
	"github.com/SAP-F-2025/grade-analytics-service/internal/events"
	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
	"github.com/SAP-F-2025/grade-analytics-service/internal/repositories"
	"github.com/SAP-F-2025/grade-analytics-service/internal/validator"
	"github.com/stretchr/testify/mock"
)

// MockRepository wires the per-entity mocks behind repositories.Repository
type MockRepository struct {
	grades        *MockGradeRepository
	students      *MockStudentRepository
	subjects      *MockSubjectRepository
	classes       *MockClassRepository
	academicYears *MockAcademicYearRepository
	analytics     *MockAnalyticsRepository
	reports       *MockReportRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		grades:        &MockGradeRepository{},
		students:      &MockStudentRepository{},
		subjects:      &MockSubjectRepository{},
		classes:       &MockClassRepository{},
		academicYears: &MockAcademicYearRepository{},
		analytics:     &MockAnalyticsRepository{},
		reports:       &MockReportRepository{},
	}
}

func (m *MockRepository) Grade() repositories.GradeRepository               { return m.grades }
func (m *MockRepository) Student() repositories.StudentRepository           { return m.students }
func (m *MockRepository) Subject() repositories.SubjectRepository           { return m.subjects }
func (m *MockRepository) Class() repositories.ClassRepository               { return m.classes }
func (m *MockRepository) AcademicYear() repositories.AcademicYearRepository { return m.academicYears }
func (m *MockRepository) Analytics() repositories.AnalyticsRepository       { return m.analytics }
func (m *MockRepository) Report() repositories.ReportRepository             { return m.reports }

// ===== GRADES =====

type MockGradeRepository struct {
	mock.Mock
}

func (m *MockGradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	args := m.Called(ctx, grade)
	return args.Error(0)
}

func (m *MockGradeRepository) GetByID(ctx context.Context, id uint) (*models.Grade, error) {
	args := m.Called(ctx, id)
	if g := args.Get(0); g != nil {
		return g.(*models.Grade), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGradeRepository) GetByIDWithDetails(ctx context.Context, id uint) (*models.Grade, error) {
	args := m.Called(ctx, id)
	if g := args.Get(0); g != nil {
		return g.(*models.Grade), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	args := m.Called(ctx, grade)
	return args.Error(0)
}

func (m *MockGradeRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGradeRepository) List(ctx context.Context, filters repositories.GradeFilters) ([]*models.Grade, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Grade), args.Get(1).(int64), args.Error(2)
}

func (m *MockGradeRepository) FindByAssessment(ctx context.Context, studentID, subjectID uint, assessmentName string, term models.Term) (*models.Grade, error) {
	args := m.Called(ctx, studentID, subjectID, assessmentName, term)
	if g := args.Get(0); g != nil {
		return g.(*models.Grade), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGradeRepository) CountByBand(ctx context.Context, filters repositories.GradeFilters) (map[string]int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockGradeRepository) GetSubjectAverages(ctx context.Context, filters repositories.GradeFilters) ([]repositories.GroupAverage, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]repositories.GroupAverage), args.Error(1)
}

func (m *MockGradeRepository) GetTermAverages(ctx context.Context, filters repositories.GradeFilters) ([]repositories.GroupAverage, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]repositories.GroupAverage), args.Error(1)
}

// ===== SCHOOL ENTITIES =====

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*models.Student), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudentRepository) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Student), args.Get(1).(int64), args.Error(2)
}

func (m *MockStudentRepository) GetByClass(ctx context.Context, classID uint) ([]*models.Student, error) {
	args := m.Called(ctx, classID)
	return args.Get(0).([]*models.Student), args.Error(1)
}

func (m *MockStudentRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStudentRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockSubjectRepository struct {
	mock.Mock
}

func (m *MockSubjectRepository) GetByID(ctx context.Context, id uint) (*models.Subject, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*models.Subject), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSubjectRepository) List(ctx context.Context) ([]*models.Subject, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Subject), args.Error(1)
}

func (m *MockSubjectRepository) Search(ctx context.Context, query string, limit int) ([]*models.Subject, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]*models.Subject), args.Error(1)
}

func (m *MockSubjectRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockClassRepository struct {
	mock.Mock
}

func (m *MockClassRepository) GetByID(ctx context.Context, id uint) (*models.Class, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*models.Class), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClassRepository) List(ctx context.Context) ([]*models.Class, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Class), args.Error(1)
}

type MockAcademicYearRepository struct {
	mock.Mock
}

func (m *MockAcademicYearRepository) GetByName(ctx context.Context, name string) (*models.AcademicYear, error) {
	args := m.Called(ctx, name)
	if y := args.Get(0); y != nil {
		return y.(*models.AcademicYear), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAcademicYearRepository) GetCurrent(ctx context.Context) (*models.AcademicYear, error) {
	args := m.Called(ctx)
	if y := args.Get(0); y != nil {
		return y.(*models.AcademicYear), args.Error(1)
	}
	return nil, args.Error(1)
}

// ===== ANALYTICS & REPORTS =====

type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) UpsertDistribution(ctx context.Context, distribution *models.GradeDistribution) error {
	args := m.Called(ctx, distribution)
	return args.Error(0)
}

func (m *MockAnalyticsRepository) GetDistribution(ctx context.Context, subjectID uint, academicYear string, term models.Term) (*models.GradeDistribution, error) {
	args := m.Called(ctx, subjectID, academicYear, term)
	if d := args.Get(0); d != nil {
		return d.(*models.GradeDistribution), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAnalyticsRepository) ListDistributions(ctx context.Context, academicYear string, term models.Term) ([]*models.GradeDistribution, error) {
	args := m.Called(ctx, academicYear, term)
	return args.Get(0).([]*models.GradeDistribution), args.Error(1)
}

func (m *MockAnalyticsRepository) UpsertPerformance(ctx context.Context, performance *models.StudentPerformance) error {
	args := m.Called(ctx, performance)
	return args.Error(0)
}

func (m *MockAnalyticsRepository) UpsertPerformances(ctx context.Context, performances []*models.StudentPerformance) error {
	args := m.Called(ctx, performances)
	return args.Error(0)
}

func (m *MockAnalyticsRepository) GetPerformance(ctx context.Context, studentID uint, academicYear string, term models.Term) (*models.StudentPerformance, error) {
	args := m.Called(ctx, studentID, academicYear, term)
	if p := args.Get(0); p != nil {
		return p.(*models.StudentPerformance), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAnalyticsRepository) ListStudentPerformances(ctx context.Context, studentID uint, academicYear string) ([]*models.StudentPerformance, error) {
	args := m.Called(ctx, studentID, academicYear)
	return args.Get(0).([]*models.StudentPerformance), args.Error(1)
}

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) GetOrCreateTemplate(ctx context.Context, reportType models.ReportType) (*models.ReportTemplate, error) {
	args := m.Called(ctx, reportType)
	if t := args.Get(0); t != nil {
		return t.(*models.ReportTemplate), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportRepository) CreateGeneratedReport(ctx context.Context, report *models.GeneratedReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.GeneratedReport, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]*models.GeneratedReport), args.Get(1).(int64), args.Error(2)
}

// ===== SHARED FIXTURES =====

// recordingCache is an in-memory cache that remembers pattern deletes.
type recordingCache struct {
	mu       sync.Mutex
	entries  map[string]interface{}
	patterns []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: make(map[string]interface{})}
}

func (c *recordingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *recordingCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	if chart, ok := value.(*ChartData); ok {
		if out, ok := dest.(*ChartData); ok {
			*out = *chart
			return nil
		}
	}
	return cache.ErrCacheMiss
}

func (c *recordingCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *recordingCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.patterns = append(c.patterns, pattern)
	c.entries = make(map[string]interface{})
	return nil
}

type testEnv struct {
	repo      *MockRepository
	publisher *events.MockEventPublisher
	cache     *recordingCache
	logger    *slog.Logger
	validator *validator.Validator
}

func newTestEnv() *testEnv {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testEnv{
		repo:      NewMockRepository(),
		publisher: events.NewMockEventPublisher(logger),
		cache:     newRecordingCache(),
		logger:    logger,
		validator: validator.New(),
	}
}

var fixedNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func (e *testEnv) analyticsService() *analyticsService {
	svc := newAnalyticsService(e.repo, NewAnalyticsEventService(e.publisher, e.logger), e.cache, time.Minute, e.logger)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func (e *testEnv) gradeService() GradeService {
	return NewGradeService(e.repo, NewAnalyticsEventService(e.publisher, e.logger), e.cache, e.logger, e.validator)
}

func (e *testEnv) reportService() *reportService {
	svc := NewReportService(e.repo, e.analyticsService(), NewAnalyticsEventService(e.publisher, e.logger), e.logger, e.validator).(*reportService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func (e *testEnv) directoryService() *directoryService {
	svc := NewDirectoryService(e.repo, e.logger).(*directoryService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

// noAcademicYear makes every label fall back to its calendar year.
func (e *testEnv) noAcademicYear() {
	e.repo.academicYears.On("GetByName", mock.Anything, mock.Anything).Return(nil, nil)
}

func termFilter(term models.Term) interface{} {
	return mock.MatchedBy(func(f repositories.GradeFilters) bool {
		return f.Term != nil && *f.Term == term
	})
}

func pct(subjectID uint, percentage float64) *models.Grade {
	return &models.Grade{
		SubjectID:  subjectID,
		Score:      percentage,
		MaxScore:   100,
		Percentage: percentage,
		Term:       models.Term1,
		Date:       time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
	}
}
