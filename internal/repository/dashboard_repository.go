package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/citc-dev/registrar-api/internal/models"
)

// DashboardRepository runs the independent aggregate queries behind the
// registrar dashboard. Each method is a single aggregate; callers decide how
// to combine them and how to degrade when one fails.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs the repository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// CountStudents counts all student profiles.
func (r *DashboardRepository) CountStudents(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM students`); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return total, nil
}

type statusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

// RequestCountsByStatus groups document requests by status.
func (r *DashboardRepository) RequestCountsByStatus(ctx context.Context) (map[models.RequestStatus]int, error) {
	const query = `SELECT status, COUNT(*) AS count FROM document_requests GROUP BY status`
	var rows []statusCount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("request counts: %w", err)
	}
	counts := make(map[models.RequestStatus]int, len(rows))
	for _, row := range rows {
		counts[models.RequestStatus(row.Status)] = row.Count
	}
	return counts, nil
}

// RegistrationCountsByStatus groups registrations by review status.
func (r *DashboardRepository) RegistrationCountsByStatus(ctx context.Context) (map[models.RegistrationStatus]int, error) {
	const query = `SELECT status, COUNT(*) AS count FROM registrations GROUP BY status`
	var rows []statusCount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("registration counts: %w", err)
	}
	counts := make(map[models.RegistrationStatus]int, len(rows))
	for _, row := range rows {
		counts[models.RegistrationStatus(row.Status)] = row.Count
	}
	return counts, nil
}

type valueCount struct {
	Value string `db:"value"`
	Count int    `db:"count"`
}

// GenderCounts groups students by gender.
func (r *DashboardRepository) GenderCounts(ctx context.Context) (map[string]int, error) {
	const query = `SELECT gender AS value, COUNT(*) AS count FROM students GROUP BY gender`
	return r.valueCounts(ctx, query, "gender counts")
}

// YearLevelCounts groups registrations by their raw year_level spelling. The
// column holds free-form text from several eras of the system, so callers
// must canonicalize the keys before bucketing.
func (r *DashboardRepository) YearLevelCounts(ctx context.Context) (map[string]int, error) {
	const query = `SELECT year_level AS value, COUNT(*) AS count FROM registrations GROUP BY year_level`
	return r.valueCounts(ctx, query, "year level counts")
}

// SemesterCounts groups registrations by their raw semester spelling.
func (r *DashboardRepository) SemesterCounts(ctx context.Context) (map[string]int, error) {
	const query = `SELECT semester AS value, COUNT(*) AS count FROM registrations GROUP BY semester`
	return r.valueCounts(ctx, query, "semester counts")
}

func (r *DashboardRepository) valueCounts(ctx context.Context, query, label string) (map[string]int, error) {
	var rows []valueCount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Value] = row.Count
	}
	return counts, nil
}
