package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/citc-dev/registrar-api/internal/models"
)

func TestEnrollmentRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewEnrollmentRepository(db)
	columns := []string{
		"id", "student_id", "schedule_id", "enrolled_at", "status", "grade", "remarks",
		"course_code", "course_description", "units", "day_of_week", "start_time", "end_time", "room",
	}
	rows := sqlmock.NewRows(columns).
		AddRow("enr-1", "stud-1", "sched-1", time.Now(), "ENROLLED", nil, nil,
			"CS101", "Intro to Computing", 3, "Mon", "08:00", "10:00", "R201")
	mock.ExpectQuery(regexp.QuoteMeta("e.student_id = $1")).
		WithArgs("stud-1", "ENROLLED").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("stud-1", "ENROLLED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	enrollments, total, err := repo.List(context.Background(), models.EnrollmentFilter{
		StudentID: "stud-1",
		Status:    models.EnrollmentStatusEnrolled,
	})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, enrollments, 1)
	require.Equal(t, "CS101", enrollments[0].CourseCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryListClampsOversizedPage(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewEnrollmentRepository(db)
	// An explicit size above the cap is clamped to it, never reset to the
	// default page size.
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT 100 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, _, err := repo.List(context.Background(), models.EnrollmentFilter{PageSize: 10000})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryListAllHasNoLimit(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewEnrollmentRepository(db)
	columns := []string{
		"id", "student_id", "schedule_id", "enrolled_at", "status", "grade", "remarks",
		"course_code", "course_description", "units", "day_of_week", "start_time", "end_time", "room",
	}
	rows := sqlmock.NewRows(columns)
	for i := 0; i < 150; i++ {
		rows.AddRow("enr", "stud-1", "sched-1", time.Now(), "ENROLLED", nil, nil,
			"CS101", "Intro to Computing", 3, "Mon", "08:00", "10:00", "R201")
	}
	mock.ExpectQuery(`ORDER BY e\.enrolled_at DESC$`).
		WithArgs("stud-1").
		WillReturnRows(rows)

	enrollments, err := repo.ListAll(context.Background(), models.EnrollmentFilter{StudentID: "stud-1"})
	require.NoError(t, err)
	require.Len(t, enrollments, 150)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryExistsActive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewEnrollmentRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("status <> $3")).
		WithArgs("stud-1", "sched-1", "DROPPED").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsActive(context.Background(), "stud-1", "sched-1")
	require.NoError(t, err)
	require.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("status <> $3")).
		WithArgs("stud-2", "sched-1", "DROPPED").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err = repo.ExistsActive(context.Background(), "stud-2", "sched-1")
	require.NoError(t, err)
	require.False(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryCreateAssignsDefaults(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewEnrollmentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO enrollments")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	enrollment := &models.Enrollment{StudentID: "stud-1", ScheduleID: "sched-1"}
	require.NoError(t, repo.Create(context.Background(), enrollment))
	require.NotEmpty(t, enrollment.ID)
	require.False(t, enrollment.EnrolledAt.IsZero())
	require.Equal(t, models.EnrollmentStatusEnrolled, enrollment.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryMonthlyCounts(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewEnrollmentRepository(db)
	since := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"month", "count"}).
		AddRow("2026-06", 10).
		AddRow("2026-07", 25)
	mock.ExpectQuery(regexp.QuoteMeta("date_trunc('month', enrolled_at)")).
		WithArgs(since).
		WillReturnRows(rows)

	counts, err := repo.MonthlyCounts(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	require.Equal(t, "2026-06", counts[0].Month)
	require.Equal(t, 25, counts[1].Count)
	require.NoError(t, mock.ExpectationsWereMet())
}
