package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/citc-dev/registrar-api/internal/models"
	appErrors "github.com/citc-dev/registrar-api/pkg/errors"
)

type enrollmentRepository interface {
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.Enrollment, error)
	ExistsActive(ctx context.Context, studentID, scheduleID string) (bool, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	UpdateStatus(ctx context.Context, id string, status models.EnrollmentStatus, remarks *string) error
}

type slotReader interface {
	FindByID(ctx context.Context, id string) (*models.ScheduleSlot, error)
	AdjustEnrolledCount(ctx context.Context, id string, delta int) error
}

type studentByIDReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type notificationWriter interface {
	Create(ctx context.Context, notification *models.Notification) error
}

// EnrollStudentRequest describes enrollment creation payload.
type EnrollStudentRequest struct {
	StudentID  string `json:"studentId" validate:"required"`
	ScheduleID string `json:"scheduleId" validate:"required"`
}

// EnrollmentService orchestrates enrollment workflows.
type EnrollmentService struct {
	repo          enrollmentRepository
	slots         slotReader
	students      studentByIDReader
	notifications notificationWriter
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, slots slotReader, students studentByIDReader, notifications notificationWriter, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, slots: slots, students: students, notifications: notifications, validator: validate, logger: logger}
}

// List returns enrollments with pagination metadata.
func (s *EnrollmentService) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, *models.Pagination, error) {
	enrollments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return enrollments, pagination, nil
}

// Enroll registers a student into a schedule slot.
func (s *EnrollmentService) Enroll(ctx context.Context, req EnrollStudentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	student, err := s.students.FindByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	slot, err := s.slots.FindByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule slot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule slot")
	}
	if !slot.Active {
		return nil, appErrors.Clone(appErrors.ErrConflict, "schedule slot is closed")
	}
	if slot.Capacity > 0 && slot.EnrolledCount >= slot.Capacity {
		return nil, appErrors.ErrSlotFull
	}
	exists, err := s.repo.ExistsActive(ctx, req.StudentID, req.ScheduleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate enrollment")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student already enrolled in this schedule")
	}

	enrollment := &models.Enrollment{
		StudentID:  req.StudentID,
		ScheduleID: req.ScheduleID,
		Status:     models.EnrollmentStatusEnrolled,
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment")
	}
	if err := s.slots.AdjustEnrolledCount(ctx, slot.ID, 1); err != nil {
		s.logger.Warn("enrolled count update failed", zap.String("schedule_id", slot.ID), zap.Error(err))
	}
	s.notify(ctx, student.UserID, "Enrollment confirmed",
		fmt.Sprintf("You are enrolled in %s %s-%s (%s).", slot.DayOfWeek, slot.StartTime, slot.EndTime, slot.Room))
	return enrollment, nil
}

// Drop marks an enrollment as dropped and frees its slot.
func (s *EnrollmentService) Drop(ctx context.Context, id string, remarks *string) (*models.Enrollment, error) {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	if enrollment.Status == models.EnrollmentStatusDropped {
		return nil, appErrors.Clone(appErrors.ErrConflict, "enrollment already dropped")
	}
	if err := s.repo.UpdateStatus(ctx, id, models.EnrollmentStatusDropped, remarks); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to drop enrollment")
	}
	if err := s.slots.AdjustEnrolledCount(ctx, enrollment.ScheduleID, -1); err != nil {
		s.logger.Warn("enrolled count update failed", zap.String("schedule_id", enrollment.ScheduleID), zap.Error(err))
	}
	enrollment.Status = models.EnrollmentStatusDropped
	enrollment.Remarks = remarks
	return enrollment, nil
}

func (s *EnrollmentService) notify(ctx context.Context, userID, title, body string) {
	if s.notifications == nil || userID == "" {
		return
	}
	notification := &models.Notification{UserID: userID, Title: title, Body: body}
	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Warn("enrollment notification failed", zap.String("user_id", userID), zap.Error(err))
	}
}
