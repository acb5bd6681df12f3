package services

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/grade-analytics-service/internal/analytics"
	"github.com/SAP-F-2025/grade-analytics-service/internal/models"
	"github.com/SAP-F-2025/grade-analytics-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDirectoryService_ListStudents(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	classID := uint(7)
	env.repo.students.On("List", ctx, mock.MatchedBy(func(f repositories.StudentFilters) bool {
		return f.ClassID != nil && *f.ClassID == 7 && f.Search == "ada" && f.Limit == maxStudentPageSize
	})).Return([]*models.Student{{ID: 1, FirstName: "Ada"}}, int64(1), nil)

	resp, err := env.directoryService().ListStudents(ctx, repositories.StudentFilters{
		ClassID: &classID,
		Search:  "  ada ",
		Limit:   10000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, maxStudentPageSize, resp.Limit)
	assert.Len(t, resp.Students, 1)
}

func TestDirectoryService_ListSubjectsAndClasses(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.repo.subjects.On("List", ctx).Return([]*models.Subject{{ID: 1, Name: "Mathematics"}, {ID: 2, Name: "Physics"}}, nil)
	env.repo.classes.On("List", ctx).Return([]*models.Class{{ID: 3, Name: "10A"}}, nil)
	svc := env.directoryService()

	subjects, err := svc.ListSubjects(ctx)
	require.NoError(t, err)
	assert.Len(t, subjects, 2)

	classes, err := svc.ListClasses(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10A", classes[0].Name)
}

func TestDirectoryService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("all kinds", func(t *testing.T) {
		env := newTestEnv()
		env.repo.students.On("List", ctx, repositories.StudentFilters{Search: "math", Limit: searchResultLimit}).
			Return([]*models.Student{}, int64(0), nil)
		env.repo.grades.On("List", ctx, mock.MatchedBy(func(f repositories.GradeFilters) bool {
			return f.Search == "math" && f.WithStudents && f.Limit == searchResultLimit
		})).Return([]*models.Grade{{
			ID:             4,
			AssessmentName: "Algebra quiz",
			Percentage:     91,
			Student:        &models.Student{FirstName: "Ada", LastName: "Lovelace"},
			Subject:        &models.Subject{Name: "Mathematics"},
		}}, int64(1), nil)
		env.repo.subjects.On("Search", ctx, "math", searchResultLimit).
			Return([]*models.Subject{{ID: 1, Name: "Mathematics", Code: "MATH"}}, nil)

		results, err := env.directoryService().Search(ctx, " math ", "")
		require.NoError(t, err)
		assert.Equal(t, "math", results.Query)
		require.Len(t, results.Grades, 1)
		assert.Equal(t, "Ada Lovelace", results.Grades[0].StudentName)
		assert.Equal(t, "Mathematics", results.Grades[0].SubjectName)
		assert.Equal(t, analytics.BandA, results.Grades[0].Band)
		assert.Len(t, results.Subjects, 1)
	})

	t.Run("single scope", func(t *testing.T) {
		env := newTestEnv()
		env.repo.subjects.On("Search", ctx, "phy", searchResultLimit).Return([]*models.Subject{}, nil)

		_, err := env.directoryService().Search(ctx, "phy", SearchSubjects)
		require.NoError(t, err)
		env.repo.students.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		env.repo.grades.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("rejects empty query and unknown scope", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.directoryService().Search(ctx, "  ", SearchScope("teachers"))
		require.Error(t, err)
		errs, ok := err.(ValidationErrors)
		require.True(t, ok)
		assert.Len(t, errs, 2)
	})
}

func TestDirectoryService_DashboardStats(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	midnight := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	sinceMidnight := func(from *time.Time) bool { return from != nil && from.Equal(midnight) }

	env.repo.students.On("Count", ctx).Return(int64(120), nil)
	env.repo.students.On("CountActive", ctx).Return(int64(110), nil)
	env.repo.subjects.On("Count", ctx).Return(int64(8), nil)
	env.repo.students.On("List", ctx, mock.MatchedBy(func(f repositories.StudentFilters) bool {
		return sinceMidnight(f.CreatedFrom)
	})).Return([]*models.Student{}, int64(2), nil)
	env.repo.classes.On("List", ctx).Return([]*models.Class{{ID: 1}, {ID: 2}, {ID: 3}}, nil)

	env.repo.grades.On("List", ctx, mock.MatchedBy(func(f repositories.GradeFilters) bool {
		return sinceMidnight(f.CreatedFrom)
	})).Return([]*models.Grade{}, int64(6), nil)
	env.repo.grades.On("List", ctx, mock.MatchedBy(func(f repositories.GradeFilters) bool {
		return f.CreatedFrom == nil && f.SortBy == "created_at" && f.Limit == recentGradesLimit
	})).Return([]*models.Grade{{ID: 9, Percentage: 72.5}}, int64(340), nil)
	env.repo.grades.On("CountByBand", ctx, repositories.GradeFilters{}).
		Return(map[string]int64{"A": 40, "C": 200, "F": 100}, nil)

	stats, err := env.directoryService().DashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(120), stats.TotalStudents)
	assert.Equal(t, int64(110), stats.ActiveStudents)
	assert.Equal(t, int64(8), stats.TotalSubjects)
	assert.Equal(t, 3, stats.TotalClasses)
	assert.Equal(t, int64(340), stats.TotalGrades)
	assert.Equal(t, int64(6), stats.TodayGrades)
	assert.Equal(t, int64(2), stats.TodayStudents)
	require.Len(t, stats.RecentGrades, 1)
	assert.Equal(t, analytics.BandC, stats.RecentGrades[0].Band)
	assert.Equal(t, map[string]int64{"A": 40, "B": 0, "C": 200, "D": 0, "F": 100}, stats.GradeDistribution)
}
