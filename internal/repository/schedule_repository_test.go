package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestScheduleRepositoryListBySubject(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleRepository(db)
	columns := []string{
		"id", "subject_id", "school_year", "day_of_week", "start_time", "end_time",
		"room", "capacity", "enrolled_count", "active", "course_type", "created_at",
	}
	rows := sqlmock.NewRows(columns).
		AddRow("sched-1", "sub-1", "2025-2026", "Mon", "08:00", "10:00", "R201", 40, 12, true, "Lecture", time.Now()).
		AddRow("sched-2", "sub-1", "2025-2026", "Wed", "13:00", "16:00", "Lab A", 20, 5, true, "Laboratory", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("WHERE ss.subject_id = $1 AND ss.school_year = $2")).
		WithArgs("sub-1", "2025-2026").
		WillReturnRows(rows)

	slots, err := repo.ListBySubject(context.Background(), "sub-1", "2025-2026")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	require.Equal(t, "Wed", slots[1].DayOfWeek)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryAdjustEnrolledCount(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("GREATEST(enrolled_count + $2, 0)")).
		WithArgs("sched-1", -1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AdjustEnrolledCount(context.Background(), "sched-1", -1))
	require.NoError(t, mock.ExpectationsWereMet())
}
