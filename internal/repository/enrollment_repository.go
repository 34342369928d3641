package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/citc-dev/registrar-api/internal/models"
)

// maxPageSize caps explicit page sizes on list queries. Exports bypass
// pagination through ListAll instead of inflating a page.
const maxPageSize = 100

// EnrollmentRepository handles persistence of enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

const enrollmentJoin = `FROM enrollments e
JOIN schedule_slots ss ON ss.id = e.schedule_id
JOIN curriculum_subjects cs ON cs.id = ss.subject_id`

const enrollmentColumns = `e.id, e.student_id, e.schedule_id, e.enrolled_at, e.status, e.grade, e.remarks,
        cs.course_code, cs.course_description, cs.units,
        ss.day_of_week, ss.start_time, ss.end_time, ss.room`

func enrollmentWhere(filter models.EnrollmentFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("e.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.ScheduleID != "" {
		conditions = append(conditions, fmt.Sprintf("e.schedule_id = $%d", len(args)+1))
		args = append(args, filter.ScheduleID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// List returns enrollments filtered by the provided criteria.
func (r *EnrollmentRepository) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, int, error) {
	clause, args := enrollmentWhere(filter)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s
        %s ORDER BY e.enrolled_at DESC LIMIT %d OFFSET %d`, enrollmentColumns, enrollmentJoin+clause, size, offset)

	var enrollments []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &enrollments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list enrollments: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", enrollmentJoin+clause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count enrollments: %w", err)
	}
	return enrollments, total, nil
}

// ListAll returns every enrollment matching the filter, without pagination.
// Reports depend on this: a LIMIT here would silently truncate them.
func (r *EnrollmentRepository) ListAll(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, error) {
	clause, args := enrollmentWhere(filter)
	query := fmt.Sprintf(`SELECT %s
        %s ORDER BY e.enrolled_at DESC`, enrollmentColumns, enrollmentJoin+clause)

	var enrollments []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &enrollments, query, args...); err != nil {
		return nil, fmt.Errorf("list all enrollments: %w", err)
	}
	return enrollments, nil
}

// FindByID returns an enrollment by its ID.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id string) (*models.Enrollment, error) {
	const query = `SELECT id, student_id, schedule_id, enrolled_at, status, grade, remarks FROM enrollments WHERE id = $1`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// CountByStudent counts enrollment rows for a student across all statuses.
func (r *EnrollmentRepository) CountByStudent(ctx context.Context, studentID string) (int, error) {
	const query = `SELECT COUNT(*) FROM enrollments WHERE student_id = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, query, studentID); err != nil {
		return 0, fmt.Errorf("count student enrollments: %w", err)
	}
	return total, nil
}

// ListDetailByStudent returns a student's current enrollments with subject and
// slot context, newest first.
func (r *EnrollmentRepository) ListDetailByStudent(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error) {
	const query = `SELECT e.id, e.student_id, e.schedule_id, e.enrolled_at, e.status, e.grade, e.remarks,
        cs.course_code, cs.course_description, cs.units,
        ss.day_of_week, ss.start_time, ss.end_time, ss.room
        FROM enrollments e
        JOIN schedule_slots ss ON ss.id = e.schedule_id
        JOIN curriculum_subjects cs ON cs.id = ss.subject_id
        WHERE e.student_id = $1 AND e.status = $2
        ORDER BY cs.course_code ASC`
	var enrollments []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &enrollments, query, studentID, models.EnrollmentStatusEnrolled); err != nil {
		return nil, fmt.Errorf("list student enrollments: %w", err)
	}
	return enrollments, nil
}

// ExistsActive checks for a non-dropped enrollment on the same slot.
func (r *EnrollmentRepository) ExistsActive(ctx context.Context, studentID, scheduleID string) (bool, error) {
	const query = `SELECT 1 FROM enrollments WHERE student_id = $1 AND schedule_id = $2 AND status <> $3 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, studentID, scheduleID, models.EnrollmentStatusDropped); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check active enrollment: %w", err)
	}
	return true, nil
}

// Create persists a new enrollment record.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now().UTC()
	}
	if enrollment.Status == "" {
		enrollment.Status = models.EnrollmentStatusEnrolled
	}
	const query = `INSERT INTO enrollments (id, student_id, schedule_id, enrolled_at, status, grade, remarks)
        VALUES (:id, :student_id, :schedule_id, :enrolled_at, :status, :grade, :remarks)`
	if _, err := r.db.NamedExecContext(ctx, query, enrollment); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// UpdateStatus updates status and remarks for an enrollment.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id string, status models.EnrollmentStatus, remarks *string) error {
	const query = `UPDATE enrollments SET status = $2, remarks = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, remarks); err != nil {
		return fmt.Errorf("update enrollment status: %w", err)
	}
	return nil
}

// MonthlyCounts buckets enrollments per month since the given cutoff.
func (r *EnrollmentRepository) MonthlyCounts(ctx context.Context, since time.Time) ([]models.MonthlyEnrollmentCount, error) {
	const query = `SELECT to_char(date_trunc('month', enrolled_at), 'YYYY-MM') AS month, COUNT(*) AS count
        FROM enrollments WHERE enrolled_at >= $1
        GROUP BY 1 ORDER BY 1 ASC`
	var counts []models.MonthlyEnrollmentCount
	if err := r.db.SelectContext(ctx, &counts, query, since); err != nil {
		return nil, fmt.Errorf("monthly enrollment counts: %w", err)
	}
	return counts, nil
}
