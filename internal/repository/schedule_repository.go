package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/citc-dev/registrar-api/internal/models"
)

// ScheduleRepository handles persistence of schedule slots.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs the repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// FindByID returns a schedule slot by its ID.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.ScheduleSlot, error) {
	const query = `SELECT ss.id, ss.subject_id, ss.school_year, ss.day_of_week, ss.start_time,
        ss.end_time, ss.room, ss.capacity, ss.enrolled_count, ss.active, cs.course_type, ss.created_at
        FROM schedule_slots ss
        JOIN curriculum_subjects cs ON cs.id = ss.subject_id
        WHERE ss.id = $1`
	var slot models.ScheduleSlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	return &slot, nil
}

// ListBySubject returns slots for a subject within a school year.
func (r *ScheduleRepository) ListBySubject(ctx context.Context, subjectID, schoolYear string) ([]models.ScheduleSlot, error) {
	const query = `SELECT ss.id, ss.subject_id, ss.school_year, ss.day_of_week, ss.start_time,
        ss.end_time, ss.room, ss.capacity, ss.enrolled_count, ss.active, cs.course_type, ss.created_at
        FROM schedule_slots ss
        JOIN curriculum_subjects cs ON cs.id = ss.subject_id
        WHERE ss.subject_id = $1 AND ss.school_year = $2
        ORDER BY ss.day_of_week ASC, ss.start_time ASC`
	var slots []models.ScheduleSlot
	if err := r.db.SelectContext(ctx, &slots, query, subjectID, schoolYear); err != nil {
		return nil, fmt.Errorf("list schedule slots: %w", err)
	}
	return slots, nil
}

// AdjustEnrolledCount shifts a slot's enrolled count by delta, clamped at zero.
func (r *ScheduleRepository) AdjustEnrolledCount(ctx context.Context, id string, delta int) error {
	const query = `UPDATE schedule_slots SET enrolled_count = GREATEST(enrolled_count + $2, 0) WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, delta); err != nil {
		return fmt.Errorf("adjust enrolled count: %w", err)
	}
	return nil
}
