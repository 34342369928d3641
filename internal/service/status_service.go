package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/citc-dev/registrar-api/internal/dto"
	"github.com/citc-dev/registrar-api/internal/models"
	"github.com/citc-dev/registrar-api/pkg/config"
	appErrors "github.com/citc-dev/registrar-api/pkg/errors"
)

type accountReader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type latestRegistrationReader interface {
	LatestByUser(ctx context.Context, userID string) (*models.Registration, error)
}

type profileReader interface {
	FindByUserID(ctx context.Context, userID string) (*models.Student, error)
}

type enrollmentStatusReader interface {
	CountByStudent(ctx context.Context, studentID string) (int, error)
	ListDetailByStudent(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error)
}

// standing is a student's resolved year level, semester and school year
// together with the source that supplied it.
type standing struct {
	Source     string
	YearLevel  string
	Semester   string
	SchoolYear string
}

// StatusService reconciles a student's standing from whichever data source
// actually has it. The status page must never fail for a known student:
// missing data degrades to the next source and finally to configured
// defaults.
type StatusService struct {
	users         accountReader
	registrations latestRegistrationReader
	students      profileReader
	enrollments   enrollmentStatusReader
	defaults      config.RegistrarConfig
	logger        *zap.Logger
}

// NewStatusService constructs the service.
func NewStatusService(users accountReader, registrations latestRegistrationReader, students profileReader, enrollments enrollmentStatusReader, defaults config.RegistrarConfig, logger *zap.Logger) *StatusService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaults.DefaultYearLevel == "" {
		defaults.DefaultYearLevel = "1st"
	}
	if defaults.DefaultSemester == "" {
		defaults.DefaultSemester = "1st"
	}
	if defaults.DefaultSchoolYear == "" {
		defaults.DefaultSchoolYear = "2025-2026"
	}
	return &StatusService{
		users:         users,
		registrations: registrations,
		students:      students,
		enrollments:   enrollments,
		defaults:      defaults,
		logger:        logger,
	}
}

// StudentStatus returns the best-effort standing for a user. The only hard
// failure is an unknown user ID.
func (s *StatusService) StudentStatus(ctx context.Context, userID string) (*dto.StudentStatusResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	resolved := s.resolveStanding(ctx, userID)

	resp := &dto.StudentStatusResponse{
		UserID:             user.ID,
		FullName:           user.FullName,
		RegistrationSource: resolved.Source,
		YearLevel:          resolved.YearLevel,
		Semester:           resolved.Semester,
		SchoolYear:         resolved.SchoolYear,
		Subjects:           []dto.EnrolledSubjectView{},
	}

	// Enrollments hang off the student profile. No profile means no
	// enrollments, which is a perfectly valid status.
	profile, err := s.students.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("student profile lookup failed", zap.String("user_id", userID), zap.Error(err))
		}
		return resp, nil
	}

	if count, err := s.enrollments.CountByStudent(ctx, profile.ID); err != nil {
		s.logger.Warn("enrollment count failed", zap.String("student_id", profile.ID), zap.Error(err))
	} else {
		resp.EnrollmentCount = count
	}

	details, err := s.enrollments.ListDetailByStudent(ctx, profile.ID)
	if err != nil {
		s.logger.Warn("enrollment detail lookup failed", zap.String("student_id", profile.ID), zap.Error(err))
		return resp, nil
	}
	for _, detail := range details {
		resp.Subjects = append(resp.Subjects, dto.EnrolledSubjectView{
			CourseCode:        detail.CourseCode,
			CourseDescription: detail.CourseDescription,
			Units:             detail.Units,
			DayOfWeek:         detail.DayOfWeek,
			StartTime:         detail.StartTime,
			EndTime:           detail.EndTime,
			Room:              detail.Room,
			Status:            string(detail.Status),
		})
	}
	return resp, nil
}

// resolveStanding walks the candidate sources in priority order and returns
// the first hit. A lookup error counts as a miss for that source so the walk
// can continue; total misses fall through to configured defaults.
func (s *StatusService) resolveStanding(ctx context.Context, userID string) standing {
	sources := []struct {
		name   string
		lookup func(context.Context, string) (*standing, error)
	}{
		{"registrations", s.standingFromRegistration},
		{"students", s.standingFromProfile},
	}

	for _, source := range sources {
		resolved, err := source.lookup(ctx, userID)
		if err != nil {
			s.logger.Warn("standing lookup failed",
				zap.String("source", source.name),
				zap.String("user_id", userID),
				zap.Error(err))
			continue
		}
		if resolved != nil {
			resolved.Source = source.name
			return *resolved
		}
	}

	return standing{
		Source:     "none",
		YearLevel:  s.defaults.DefaultYearLevel,
		Semester:   s.defaults.DefaultSemester,
		SchoolYear: s.defaults.DefaultSchoolYear,
	}
}

func (s *StatusService) standingFromRegistration(ctx context.Context, userID string) (*standing, error) {
	registration, err := s.registrations.LatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &standing{
		YearLevel:  registration.YearLevel,
		Semester:   registration.Semester,
		SchoolYear: registration.SchoolYear,
	}, nil
}

func (s *StatusService) standingFromProfile(ctx context.Context, userID string) (*standing, error) {
	profile, err := s.students.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	// The legacy status page appended a literal "st" to whichever number it
	// had, so second-years read "2st". Clients match on those exact strings;
	// do not ordinal-correct here without a coordinated frontend change.
	return &standing{
		YearLevel:  strconv.Itoa(profile.CurrentYearLevel) + "st",
		Semester:   strconv.Itoa(profile.CurrentSemester) + "st",
		SchoolYear: fmt.Sprintf("%d-%d", profile.YearOfEntry, profile.YearOfEntry+1),
	}, nil
}
