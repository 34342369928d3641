package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citc-dev/registrar-api/internal/models"
	appErrors "github.com/citc-dev/registrar-api/pkg/errors"
)

type fakeCurriculumRows struct {
	rows []models.CurriculumRow
	err  error
}

func (f *fakeCurriculumRows) Rows(context.Context, models.CurriculumFilter) ([]models.CurriculumRow, error) {
	return f.rows, f.err
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }

func scheduledRow(subjectID, code, desc string, units int, courseType models.CourseType, scheduleID, day, start, end, room string) models.CurriculumRow {
	return models.CurriculumRow{
		SubjectID:         subjectID,
		CourseCode:        code,
		CourseDescription: desc,
		Units:             units,
		CourseType:        courseType,
		ScheduleID:        strPtr(scheduleID),
		DayOfWeek:         strPtr(day),
		StartTime:         strPtr(start),
		EndTime:           strPtr(end),
		Room:              strPtr(room),
		Capacity:          intPtr(40),
		EnrolledCount:     intPtr(12),
		ScheduleActive:    boolPtr(true),
	}
}

func TestGroupCurriculumRowsMergesLectureAndLab(t *testing.T) {
	rows := []models.CurriculumRow{
		scheduledRow("sub-1", "CS101", "Intro to Computing - Lec", 2, models.CourseTypeLecture, "sched-1", "Mon", "08:00", "10:00", "R201"),
		scheduledRow("sub-2", "CS101", "Intro to Computing - Lab", 1, models.CourseTypeLaboratory, "sched-2", "Wed", "13:00", "16:00", "Lab A"),
	}

	subjects, err := GroupCurriculumRows(rows)
	require.NoError(t, err)
	require.Len(t, subjects, 1)

	subject := subjects[0]
	assert.Equal(t, "CS101", subject.CourseCode)
	assert.Equal(t, "Intro to Computing", subject.CourseDescription)
	assert.Equal(t, 3, subject.Units)
	assert.Equal(t, []string{"Lecture", "Laboratory"}, subject.CourseTypes)
	assert.Len(t, subject.Schedules, 2)
	assert.True(t, subject.HasSchedule)
}

func TestGroupCurriculumRowsIsIdempotentPerSubject(t *testing.T) {
	// The prerequisite join fans every slot out into several identical rows;
	// units and schedules must not multiply with the fan-out.
	base := scheduledRow("sub-1", "MATH201", "Calculus II", 3, models.CourseTypeLecture, "sched-9", "Tue", "10:00", "12:00", "R105")
	rows := []models.CurriculumRow{base, base, base}

	subjects, err := GroupCurriculumRows(rows)
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, 3, subjects[0].Units)
	assert.Equal(t, []string{"Lecture"}, subjects[0].CourseTypes)
	assert.Len(t, subjects[0].Schedules, 1)
}

func TestGroupCurriculumRowsDeduplicatesOnFullTuple(t *testing.T) {
	// Same slot under two IDs: still one entry. A slot differing in any tuple
	// column is kept.
	first := scheduledRow("sub-1", "PHYS10", "Physics", 4, models.CourseTypeLecture, "sched-1", "Fri", "08:00", "11:00", "R301")
	duplicate := scheduledRow("sub-1", "PHYS10", "Physics", 4, models.CourseTypeLecture, "sched-1b", "Fri", "08:00", "11:00", "R301")
	differentRoom := scheduledRow("sub-1", "PHYS10", "Physics", 4, models.CourseTypeLecture, "sched-2", "Fri", "08:00", "11:00", "R302")

	subjects, err := GroupCurriculumRows([]models.CurriculumRow{first, duplicate, differentRoom})
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	require.Len(t, subjects[0].Schedules, 2)
	assert.Equal(t, "sched-1", subjects[0].Schedules[0].ID)
	assert.Equal(t, "R302", subjects[0].Schedules[1].Room)
}

func TestGroupCurriculumRowsSkipsInactiveAndMissingSchedules(t *testing.T) {
	unscheduled := models.CurriculumRow{
		SubjectID:         "sub-3",
		CourseCode:        "PE101",
		CourseDescription: "Physical Education",
		Units:             2,
		CourseType:        models.CourseTypeLecture,
	}
	inactive := scheduledRow("sub-4", "NSTP1", "NSTP 1", 3, models.CourseTypeLecture, "sched-5", "Sat", "08:00", "11:00", "Field")
	inactive.ScheduleActive = boolPtr(false)

	subjects, err := GroupCurriculumRows([]models.CurriculumRow{unscheduled, inactive})
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	for _, subject := range subjects {
		assert.False(t, subject.HasSchedule)
		assert.Empty(t, subject.Schedules)
		assert.Equal(t, "Not yet scheduled", subject.ScheduleSummary)
	}
}

func TestGroupCurriculumRowsPreservesFirstSeenOrder(t *testing.T) {
	rows := []models.CurriculumRow{
		scheduledRow("sub-1", "CS101", "Intro to Computing", 3, models.CourseTypeLecture, "s1", "Mon", "08:00", "10:00", "R1"),
		scheduledRow("sub-2", "CS102", "Programming 1", 3, models.CourseTypeLecture, "s2", "Tue", "08:00", "10:00", "R2"),
		scheduledRow("sub-3", "CS101", "Intro to Computing", 1, models.CourseTypeLaboratory, "s3", "Wed", "08:00", "10:00", "R3"),
	}

	subjects, err := GroupCurriculumRows(rows)
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "CS101", subjects[0].CourseCode)
	assert.Equal(t, "CS102", subjects[1].CourseCode)
}

func TestGroupCurriculumRowsRejectsMissingCourseCode(t *testing.T) {
	rows := []models.CurriculumRow{{SubjectID: "sub-1", CourseCode: "   ", Units: 3}}

	_, err := GroupCurriculumRows(rows)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrDataIntegrity.Code, appErr.Code)
}

func TestCurriculumRequiresFilters(t *testing.T) {
	svc := NewCurriculumService(&fakeCurriculumRows{}, nil, nil, 0)

	_, _, err := svc.Curriculum(context.Background(), models.CurriculumFilter{YearLevel: "1st"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCurriculumAssemblesTotals(t *testing.T) {
	// Three subjects: one split Lec+Lab with two slots, one lecture-only with
	// one slot, one with no schedule at all.
	rows := []models.CurriculumRow{
		scheduledRow("sub-1", "CS101", "Intro to Computing - Lec", 2, models.CourseTypeLecture, "s1", "Mon", "08:00", "10:00", "R201"),
		scheduledRow("sub-2", "CS101", "Intro to Computing - Lab", 1, models.CourseTypeLaboratory, "s2", "Wed", "13:00", "16:00", "Lab A"),
		scheduledRow("sub-3", "GE01", "Understanding the Self", 3, models.CourseTypeLecture, "s3", "Thu", "09:00", "12:00", "R105"),
		{
			SubjectID:         "sub-4",
			CourseCode:        "GE02",
			CourseDescription: "Readings in History",
			Units:             3,
			CourseType:        models.CourseTypeLecture,
		},
	}
	svc := NewCurriculumService(&fakeCurriculumRows{rows: rows}, nil, nil, 0)

	resp, cacheHit, err := svc.Curriculum(context.Background(), models.CurriculumFilter{
		YearLevel: "1st", Semester: "1st", SchoolYear: "2025-2026",
	})
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, 3, resp.TotalSubjects)
	assert.Equal(t, 2, resp.ScheduledSubjects)
	assert.Equal(t, 9, resp.TotalUnits)
	require.Len(t, resp.Subjects, 3)

	merged := resp.Subjects[0]
	assert.Equal(t, "CS101", merged.CourseCode)
	assert.Equal(t, 3, merged.Units)
	assert.Len(t, merged.Schedules, 2)
	assert.Equal(t, "Mon 08:00-10:00 R201; Wed 13:00-16:00 Lab A", merged.ScheduleSummary)

	unscheduled := resp.Subjects[2]
	assert.False(t, unscheduled.HasSchedule)
	assert.Equal(t, "Not yet scheduled", unscheduled.ScheduleSummary)
}
