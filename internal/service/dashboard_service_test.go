package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citc-dev/registrar-api/internal/models"
)

type fakeDashboardRepo struct {
	students         int
	studentsErr      error
	requests         map[models.RequestStatus]int
	requestsErr      error
	registrations    map[models.RegistrationStatus]int
	registrationsErr error
	genders          map[string]int
	gendersErr       error
	yearLevels       map[string]int
	yearLevelsErr    error
	semesters        map[string]int
	semestersErr     error
}

func (f *fakeDashboardRepo) CountStudents(context.Context) (int, error) {
	return f.students, f.studentsErr
}

func (f *fakeDashboardRepo) RequestCountsByStatus(context.Context) (map[models.RequestStatus]int, error) {
	return f.requests, f.requestsErr
}

func (f *fakeDashboardRepo) RegistrationCountsByStatus(context.Context) (map[models.RegistrationStatus]int, error) {
	return f.registrations, f.registrationsErr
}

func (f *fakeDashboardRepo) GenderCounts(context.Context) (map[string]int, error) {
	return f.genders, f.gendersErr
}

func (f *fakeDashboardRepo) YearLevelCounts(context.Context) (map[string]int, error) {
	return f.yearLevels, f.yearLevelsErr
}

func (f *fakeDashboardRepo) SemesterCounts(context.Context) (map[string]int, error) {
	return f.semesters, f.semestersErr
}

type fakeCourseCounter struct {
	count int
	err   error
}

func (f *fakeCourseCounter) CountDistinctCourses(context.Context) (int, error) {
	return f.count, f.err
}

type fakeTrend struct {
	months []models.MonthlyEnrollmentCount
	err    error
}

func (f *fakeTrend) MonthlyCounts(context.Context, time.Time) ([]models.MonthlyEnrollmentCount, error) {
	return f.months, f.err
}

func healthyDashboardRepo() *fakeDashboardRepo {
	return &fakeDashboardRepo{
		students: 420,
		requests: map[models.RequestStatus]int{
			models.RequestStatusPending:  7,
			models.RequestStatusReleased: 30,
		},
		registrations: map[models.RegistrationStatus]int{
			models.RegistrationStatusPending:  12,
			models.RegistrationStatusApproved: 350,
		},
		genders: map[string]int{"Male": 200, "female": 180, "F": 40},
		yearLevels: map[string]int{
			"1st":        100,
			"1st year":   20,
			"First Year": 5,
			"2nd":        90,
			"unknown":    3,
		},
		semesters: map[string]int{"1st": 250, "2nd": 140, "summer": 30},
	}
}

func TestDashboardStatisticsAssemblesAllSections(t *testing.T) {
	svc := NewDashboardService(healthyDashboardRepo(), &fakeCourseCounter{count: 56},
		&fakeTrend{months: []models.MonthlyEnrollmentCount{{Month: "2026-07", Count: 88}}},
		nil, nil, 0)
	svc.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }

	stats, cacheHit, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)

	assert.Equal(t, 420, stats.TotalStudents)
	assert.Equal(t, 56, stats.TotalCourses)
	assert.Equal(t, 7, stats.Requests.Pending)
	assert.Equal(t, 30, stats.Requests.Released)
	assert.Equal(t, 12, stats.Registrations.Pending)
	assert.Equal(t, 200, stats.Gender.Male)
	assert.Equal(t, 220, stats.Gender.Female)
	// Synonym spellings of the same year level fold into one bucket; spellings
	// outside the synonym table are dropped.
	assert.Equal(t, 125, stats.YearLevels.FirstYear)
	assert.Equal(t, 90, stats.YearLevels.SecondYear)
	assert.Equal(t, 250, stats.Semesters.First)
	assert.Equal(t, 30, stats.Semesters.Summer)
	require.Len(t, stats.EnrollmentsByMonth, 1)
	assert.Equal(t, "2026-07", stats.EnrollmentsByMonth[0].Month)
	assert.Equal(t, time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC), stats.GeneratedAt)
}

func TestDashboardStatisticsIsolatesFailedMetrics(t *testing.T) {
	repo := healthyDashboardRepo()
	repo.gendersErr = errors.New("relation does not exist")

	svc := NewDashboardService(repo, &fakeCourseCounter{count: 56}, &fakeTrend{}, nil, nil, 0)

	stats, _, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	// The broken gender sub-query zeroes only its own section.
	assert.Equal(t, 0, stats.Gender.Male)
	assert.Equal(t, 0, stats.Gender.Female)
	assert.Equal(t, 420, stats.TotalStudents)
	assert.Equal(t, 56, stats.TotalCourses)
	assert.Equal(t, 125, stats.YearLevels.FirstYear)
	assert.Equal(t, 250, stats.Semesters.First)
}

func TestDashboardStatisticsSurvivesTotalFailure(t *testing.T) {
	boom := errors.New("connection refused")
	repo := &fakeDashboardRepo{
		studentsErr:      boom,
		requestsErr:      boom,
		registrationsErr: boom,
		gendersErr:       boom,
		yearLevelsErr:    boom,
		semestersErr:     boom,
	}
	svc := NewDashboardService(repo, &fakeCourseCounter{err: boom}, &fakeTrend{err: boom}, nil, nil, 0)

	stats, _, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalStudents)
	assert.Equal(t, 0, stats.TotalCourses)
	assert.NotNil(t, stats.EnrollmentsByMonth)
	assert.Empty(t, stats.EnrollmentsByMonth)
	assert.False(t, stats.GeneratedAt.IsZero())
}
