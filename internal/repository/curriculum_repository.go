package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/citc-dev/registrar-api/internal/models"
)

// CurriculumRepository reads curriculum subjects and their schedules.
type CurriculumRepository struct {
	db *sqlx.DB
}

// NewCurriculumRepository constructs the repository.
func NewCurriculumRepository(db *sqlx.DB) *CurriculumRepository {
	return &CurriculumRepository{db: db}
}

// Rows returns one flat row per subject × schedule pair for the requested
// year level and semester, schedules scoped to the school year. Subjects
// without a schedule appear once with nil schedule columns. Ordering by
// course code is part of the response contract; the grouping pass keeps
// first-seen order and must not re-sort.
func (r *CurriculumRepository) Rows(ctx context.Context, filter models.CurriculumFilter) ([]models.CurriculumRow, error) {
	const query = `SELECT cs.id AS subject_id, cs.course_code, cs.course_description, cs.units,
        cs.course_type, cs.prerequisites,
        ss.id AS schedule_id, ss.day_of_week, ss.start_time, ss.end_time, ss.room,
        ss.capacity, ss.enrolled_count, ss.active AS schedule_active
        FROM curriculum_subjects cs
        LEFT JOIN schedule_slots ss ON ss.subject_id = cs.id AND ss.school_year = $3
        WHERE cs.year_level = $1 AND cs.semester = $2 AND cs.active = TRUE
        ORDER BY cs.course_code ASC, cs.course_type ASC, ss.day_of_week ASC`
	var rows []models.CurriculumRow
	if err := r.db.SelectContext(ctx, &rows, query, filter.YearLevel, filter.Semester, filter.SchoolYear); err != nil {
		return nil, fmt.Errorf("fetch curriculum rows: %w", err)
	}
	return rows, nil
}

// ListSubjects returns active curriculum subjects for administration views.
func (r *CurriculumRepository) ListSubjects(ctx context.Context, yearLevel, semester string) ([]models.CurriculumSubject, error) {
	const query = `SELECT id, course_code, course_description, units, course_type, year_level,
        semester, prerequisites, active, created_at
        FROM curriculum_subjects
        WHERE year_level = $1 AND semester = $2 AND active = TRUE
        ORDER BY course_code ASC`
	var subjects []models.CurriculumSubject
	if err := r.db.SelectContext(ctx, &subjects, query, yearLevel, semester); err != nil {
		return nil, fmt.Errorf("list curriculum subjects: %w", err)
	}
	return subjects, nil
}

// CountDistinctCourses counts unique course codes across the curriculum.
func (r *CurriculumRepository) CountDistinctCourses(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(DISTINCT course_code) FROM curriculum_subjects WHERE active = TRUE`
	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return total, nil
}
