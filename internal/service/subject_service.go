package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/citc-dev/registrar-api/internal/models"
	"github.com/citc-dev/registrar-api/pkg/config"
	appErrors "github.com/citc-dev/registrar-api/pkg/errors"
)

type subjectCatalogReader interface {
	ListSubjects(ctx context.Context, yearLevel, semester string) ([]models.CurriculumSubject, error)
}

type subjectSlotReader interface {
	ListBySubject(ctx context.Context, subjectID, schoolYear string) ([]models.ScheduleSlot, error)
}

// SubjectService serves the raw subject catalog and per-subject schedule
// slots, the administration view behind the grouped curriculum endpoint.
type SubjectService struct {
	subjects subjectCatalogReader
	slots    subjectSlotReader
	defaults config.RegistrarConfig
	logger   *zap.Logger
}

// NewSubjectService constructs SubjectService.
func NewSubjectService(subjects subjectCatalogReader, slots subjectSlotReader, defaults config.RegistrarConfig, logger *zap.Logger) *SubjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{subjects: subjects, slots: slots, defaults: defaults, logger: logger}
}

// List returns the active subjects for a year level and semester. Lecture and
// laboratory rows are returned as stored, without curriculum grouping.
func (s *SubjectService) List(ctx context.Context, yearLevel, semester string) ([]models.CurriculumSubject, error) {
	yearLevel = strings.TrimSpace(yearLevel)
	semester = strings.TrimSpace(semester)
	if yearLevel == "" {
		yearLevel = s.defaults.DefaultYearLevel
	}
	if semester == "" {
		semester = s.defaults.DefaultSemester
	}
	if yearLevel == "" || semester == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "yearLevel and semester are required")
	}

	subjects, err := s.subjects.ListSubjects(ctx, yearLevel, semester)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, nil
}

// Schedules returns the schedule slots of one subject for a school year,
// defaulting to the configured current year.
func (s *SubjectService) Schedules(ctx context.Context, subjectID, schoolYear string) ([]models.ScheduleSlot, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject id is required")
	}
	schoolYear = strings.TrimSpace(schoolYear)
	if schoolYear == "" {
		schoolYear = s.defaults.DefaultSchoolYear
	}

	slots, err := s.slots.ListBySubject(ctx, subjectID, schoolYear)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule slots")
	}
	return slots, nil
}
