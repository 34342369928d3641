package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citc-dev/registrar-api/internal/models"
	"github.com/citc-dev/registrar-api/pkg/config"
	appErrors "github.com/citc-dev/registrar-api/pkg/errors"
)

type fakeSubjectCatalog struct {
	subjects      []models.CurriculumSubject
	lastYearLevel string
	lastSemester  string
}

func (f *fakeSubjectCatalog) ListSubjects(_ context.Context, yearLevel, semester string) ([]models.CurriculumSubject, error) {
	f.lastYearLevel = yearLevel
	f.lastSemester = semester
	return f.subjects, nil
}

type fakeSubjectSlots struct {
	slots          []models.ScheduleSlot
	lastSubjectID  string
	lastSchoolYear string
}

func (f *fakeSubjectSlots) ListBySubject(_ context.Context, subjectID, schoolYear string) ([]models.ScheduleSlot, error) {
	f.lastSubjectID = subjectID
	f.lastSchoolYear = schoolYear
	return f.slots, nil
}

func subjectDefaults() config.RegistrarConfig {
	return config.RegistrarConfig{
		DefaultYearLevel:  "1st",
		DefaultSemester:   "1st",
		DefaultSchoolYear: "2025-2026",
	}
}

func TestSubjectListFallsBackToDefaults(t *testing.T) {
	catalog := &fakeSubjectCatalog{subjects: []models.CurriculumSubject{{CourseCode: "CS101"}}}
	svc := NewSubjectService(catalog, &fakeSubjectSlots{}, subjectDefaults(), nil)

	subjects, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "1st", catalog.lastYearLevel)
	assert.Equal(t, "1st", catalog.lastSemester)
}

func TestSubjectListPassesExplicitFilters(t *testing.T) {
	catalog := &fakeSubjectCatalog{}
	svc := NewSubjectService(catalog, &fakeSubjectSlots{}, subjectDefaults(), nil)

	_, err := svc.List(context.Background(), " 2nd ", "2nd")
	require.NoError(t, err)
	assert.Equal(t, "2nd", catalog.lastYearLevel)
	assert.Equal(t, "2nd", catalog.lastSemester)
}

func TestSubjectSchedulesDefaultsSchoolYear(t *testing.T) {
	slots := &fakeSubjectSlots{slots: []models.ScheduleSlot{{ID: "sched-1"}}}
	svc := NewSubjectService(&fakeSubjectCatalog{}, slots, subjectDefaults(), nil)

	result, err := svc.Schedules(context.Background(), "subj-1", "")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "subj-1", slots.lastSubjectID)
	assert.Equal(t, "2025-2026", slots.lastSchoolYear)
}

func TestSubjectSchedulesRequiresSubjectID(t *testing.T) {
	svc := NewSubjectService(&fakeSubjectCatalog{}, &fakeSubjectSlots{}, subjectDefaults(), nil)

	_, err := svc.Schedules(context.Background(), "  ", "2025-2026")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
