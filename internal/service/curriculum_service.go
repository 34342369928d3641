package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/citc-dev/registrar-api/internal/dto"
	"github.com/citc-dev/registrar-api/internal/models"
	appErrors "github.com/citc-dev/registrar-api/pkg/errors"
)

type curriculumRowSource interface {
	Rows(ctx context.Context, filter models.CurriculumFilter) ([]models.CurriculumRow, error)
}

// CurriculumService turns flat curriculum/schedule join rows into the grouped
// subject tree served by the curriculum endpoint.
type CurriculumService struct {
	repo   curriculumRowSource
	cache  *CacheService
	logger *zap.Logger
	ttl    time.Duration
}

// NewCurriculumService constructs the service.
func NewCurriculumService(repo curriculumRowSource, cache *CacheService, logger *zap.Logger, ttl time.Duration) *CurriculumService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CurriculumService{repo: repo, cache: cache, logger: logger, ttl: ttl}
}

// Curriculum returns the grouped curriculum for a year level, semester and
// school year, along with a cache-hit indicator.
func (s *CurriculumService) Curriculum(ctx context.Context, filter models.CurriculumFilter) (*dto.CurriculumResponse, bool, error) {
	if filter.YearLevel == "" || filter.Semester == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "yearLevel and semester are required")
	}

	cacheKey := fmt.Sprintf("curriculum:%s:%s:%s", filter.YearLevel, filter.Semester, filter.SchoolYear)
	if s.cache != nil {
		var cached dto.CurriculumResponse
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	rows, err := s.repo.Rows(ctx, filter)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch curriculum")
	}

	subjects, err := GroupCurriculumRows(rows)
	if err != nil {
		return nil, false, err
	}

	resp := &dto.CurriculumResponse{
		YearLevel:  filter.YearLevel,
		Semester:   filter.Semester,
		SchoolYear: filter.SchoolYear,
		Subjects:   subjects,
	}
	for _, subject := range subjects {
		resp.TotalUnits += subject.Units
		if subject.HasSchedule {
			resp.ScheduledSubjects++
		}
	}
	resp.TotalSubjects = len(subjects)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, resp, s.ttl); err != nil {
			s.logger.Warn("curriculum cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return resp, false, nil
}

// GroupCurriculumRows collapses flat join rows into one view per course code.
// Lecture and laboratory rows of the same code merge into a single subject:
// units are added once per distinct subject ID, and schedule entries that
// agree on day, times, room and course type are kept only once. Output order
// follows first appearance, which the query fixes as course-code ascending.
func GroupCurriculumRows(rows []models.CurriculumRow) ([]dto.SubjectView, error) {
	type group struct {
		view         dto.SubjectView
		seenSubjects map[string]struct{}
	}
	groups := make(map[string]*group)
	var order []string

	for i, row := range rows {
		code := strings.TrimSpace(row.CourseCode)
		if code == "" {
			return nil, appErrors.Clone(appErrors.ErrDataIntegrity,
				fmt.Sprintf("curriculum row %d carries no course code", i))
		}

		g, ok := groups[code]
		if !ok {
			g = &group{
				view: dto.SubjectView{
					CourseCode:        code,
					CourseDescription: stripComponentSuffix(row.CourseDescription),
					CourseTypes:       []string{},
					Prerequisites:     derefString(row.Prerequisites),
					Schedules:         []dto.ScheduleEntry{},
				},
				seenSubjects: make(map[string]struct{}),
			}
			groups[code] = g
			order = append(order, code)
		}

		// One curriculum row per component: count its units and course type
		// only the first time its subject ID shows up, however many schedule
		// rows the join fans it out into.
		if _, counted := g.seenSubjects[row.SubjectID]; !counted {
			g.seenSubjects[row.SubjectID] = struct{}{}
			g.view.Units += row.Units
			g.view.CourseTypes = append(g.view.CourseTypes, string(row.CourseType))
		}

		if row.ScheduleID == nil || row.ScheduleActive == nil || !*row.ScheduleActive {
			continue
		}
		entry := dto.ScheduleEntry{
			ID:            *row.ScheduleID,
			DayOfWeek:     derefString(row.DayOfWeek),
			StartTime:     derefString(row.StartTime),
			EndTime:       derefString(row.EndTime),
			Room:          derefString(row.Room),
			CourseType:    string(row.CourseType),
			Capacity:      derefInt(row.Capacity),
			EnrolledCount: derefInt(row.EnrolledCount),
		}
		if !containsScheduleEntry(g.view.Schedules, entry) {
			g.view.Schedules = append(g.view.Schedules, entry)
		}
	}

	subjects := make([]dto.SubjectView, 0, len(order))
	for _, code := range order {
		view := groups[code].view
		view.HasSchedule = len(view.Schedules) > 0
		view.ScheduleSummary = summarizeSchedules(view.Schedules)
		subjects = append(subjects, view)
	}
	return subjects, nil
}

// containsScheduleEntry matches on the full slot tuple, not the slot ID: the
// upstream join repeats a slot once per prerequisite row, and those repeats
// differ only in columns that are not part of the slot.
func containsScheduleEntry(entries []dto.ScheduleEntry, candidate dto.ScheduleEntry) bool {
	for _, entry := range entries {
		if entry.DayOfWeek == candidate.DayOfWeek &&
			entry.StartTime == candidate.StartTime &&
			entry.EndTime == candidate.EndTime &&
			entry.Room == candidate.Room &&
			entry.CourseType == candidate.CourseType {
			return true
		}
	}
	return false
}

// stripComponentSuffix removes the " - Lec"/" - Lab" marker that curriculum
// encoders append to split subjects, so the merged view reads naturally.
func stripComponentSuffix(description string) string {
	for _, suffix := range []string{" - Lec", " - Lab"} {
		if strings.HasSuffix(description, suffix) {
			return strings.TrimSuffix(description, suffix)
		}
	}
	return description
}

func summarizeSchedules(entries []dto.ScheduleEntry) string {
	if len(entries) == 0 {
		return "Not yet scheduled"
	}
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, fmt.Sprintf("%s %s-%s %s", entry.DayOfWeek, entry.StartTime, entry.EndTime, entry.Room))
	}
	return strings.Join(parts, "; ")
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
