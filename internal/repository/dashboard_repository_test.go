package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/citc-dev/registrar-api/internal/models"
)

func TestDashboardRepositoryRequestCountsByStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewDashboardRepository(db)
	rows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow("PENDING", 7).
		AddRow("RELEASED", 30)
	mock.ExpectQuery(regexp.QuoteMeta("FROM document_requests GROUP BY status")).
		WillReturnRows(rows)

	counts, err := repo.RequestCountsByStatus(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, counts[models.RequestStatusPending])
	require.Equal(t, 30, counts[models.RequestStatusReleased])
	require.Zero(t, counts[models.RequestStatusReady])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepositoryYearLevelCountsKeepRawSpellings(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewDashboardRepository(db)
	rows := sqlmock.NewRows([]string{"value", "count"}).
		AddRow("1st", 100).
		AddRow("First Year", 5)
	mock.ExpectQuery(regexp.QuoteMeta("FROM registrations GROUP BY year_level")).
		WillReturnRows(rows)

	counts, err := repo.YearLevelCounts(context.Background())
	require.NoError(t, err)
	// Raw spellings pass through untouched; canonicalization happens above.
	require.Equal(t, 100, counts["1st"])
	require.Equal(t, 5, counts["First Year"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepositoryCountStudents(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewDashboardRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(420))

	total, err := repo.CountStudents(context.Background())
	require.NoError(t, err)
	require.Equal(t, 420, total)
	require.NoError(t, mock.ExpectationsWereMet())
}
