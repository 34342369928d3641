package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/citc-dev/registrar-api/internal/dto"
	"github.com/citc-dev/registrar-api/internal/models"
)

type dashboardAggregates interface {
	CountStudents(ctx context.Context) (int, error)
	RequestCountsByStatus(ctx context.Context) (map[models.RequestStatus]int, error)
	RegistrationCountsByStatus(ctx context.Context) (map[models.RegistrationStatus]int, error)
	GenderCounts(ctx context.Context) (map[string]int, error)
	YearLevelCounts(ctx context.Context) (map[string]int, error)
	SemesterCounts(ctx context.Context) (map[string]int, error)
}

type courseCounter interface {
	CountDistinctCourses(ctx context.Context) (int, error)
}

type enrollmentTrendReader interface {
	MonthlyCounts(ctx context.Context, since time.Time) ([]models.MonthlyEnrollmentCount, error)
}

// DashboardService assembles the registrar dashboard from independent
// aggregates. A failed sub-query zeroes its own section and never takes the
// rest of the dashboard down with it.
type DashboardService struct {
	repo        dashboardAggregates
	courses     courseCounter
	enrollments enrollmentTrendReader
	cache       *CacheService
	logger      *zap.Logger
	now         func() time.Time
	cacheTTL    time.Duration
}

// NewDashboardService constructs the service.
func NewDashboardService(repo dashboardAggregates, courses courseCounter, enrollments enrollmentTrendReader, cache *CacheService, logger *zap.Logger, cacheTTL time.Duration) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &DashboardService{
		repo:        repo,
		courses:     courses,
		enrollments: enrollments,
		cache:       cache,
		logger:      logger,
		now:         time.Now,
		cacheTTL:    cacheTTL,
	}
}

const dashboardCacheKey = "dash:statistics"

// Statistics returns the assembled dashboard and a cache-hit indicator.
func (s *DashboardService) Statistics(ctx context.Context) (*dto.DashboardStatistics, bool, error) {
	if s.cache != nil {
		var cached dto.DashboardStatistics
		if hit, err := s.cache.Get(ctx, dashboardCacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	stats := &dto.DashboardStatistics{GeneratedAt: s.now().UTC()}

	stats.TotalStudents = s.intMetric(ctx, "total_students", s.repo.CountStudents)
	stats.TotalCourses = s.intMetric(ctx, "total_courses", s.courses.CountDistinctCourses)

	if counts, err := s.repo.RequestCountsByStatus(ctx); err != nil {
		s.warnMetric("request_counts", err)
	} else {
		stats.Requests = dto.RequestStatusCounts{
			Pending:  counts[models.RequestStatusPending],
			Approved: counts[models.RequestStatusApproved],
			Ready:    counts[models.RequestStatusReady],
			Released: counts[models.RequestStatusReleased],
			Rejected: counts[models.RequestStatusRejected],
		}
	}

	if counts, err := s.repo.RegistrationCountsByStatus(ctx); err != nil {
		s.warnMetric("registration_counts", err)
	} else {
		stats.Registrations = dto.RegistrationStatusCounts{
			Pending:  counts[models.RegistrationStatusPending],
			Approved: counts[models.RegistrationStatusApproved],
			Rejected: counts[models.RegistrationStatusRejected],
		}
	}

	if counts, err := s.repo.GenderCounts(ctx); err != nil {
		s.warnMetric("gender_counts", err)
	} else {
		stats.Gender = bucketGenders(counts)
	}

	if counts, err := s.repo.YearLevelCounts(ctx); err != nil {
		s.warnMetric("year_level_counts", err)
	} else {
		stats.YearLevels = bucketYearLevels(counts)
	}

	if counts, err := s.repo.SemesterCounts(ctx); err != nil {
		s.warnMetric("semester_counts", err)
	} else {
		stats.Semesters = bucketSemesters(counts)
	}

	since := s.now().UTC().AddDate(0, -12, 0)
	if months, err := s.enrollments.MonthlyCounts(ctx, since); err != nil {
		s.warnMetric("enrollment_trend", err)
		stats.EnrollmentsByMonth = []models.MonthlyEnrollmentCount{}
	} else {
		stats.EnrollmentsByMonth = months
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardCacheKey, stats, s.cacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return stats, false, nil
}

func (s *DashboardService) intMetric(ctx context.Context, name string, fn func(context.Context) (int, error)) int {
	value, err := fn(ctx)
	if err != nil {
		s.warnMetric(name, err)
		return 0
	}
	return value
}

func (s *DashboardService) warnMetric(name string, err error) {
	s.logger.Warn("dashboard metric failed", zap.String("metric", name), zap.Error(err))
}

// bucketYearLevels folds raw year-level spellings into canonical buckets.
// Rows whose spelling is not in the synonym table are dropped rather than
// guessed at.
func bucketYearLevels(raw map[string]int) dto.YearLevelCounts {
	var counts dto.YearLevelCounts
	for value, n := range raw {
		level, ok := models.CanonicalYearLevel(value)
		if !ok {
			continue
		}
		switch level {
		case models.YearLevelFirst:
			counts.FirstYear += n
		case models.YearLevelSecond:
			counts.SecondYear += n
		case models.YearLevelThird:
			counts.ThirdYear += n
		case models.YearLevelFourth:
			counts.FourthYear += n
		}
	}
	return counts
}

func bucketSemesters(raw map[string]int) dto.SemesterCounts {
	var counts dto.SemesterCounts
	for value, n := range raw {
		semester, ok := models.CanonicalSemester(value)
		if !ok {
			continue
		}
		switch semester {
		case models.SemesterFirst:
			counts.First += n
		case models.SemesterSecond:
			counts.Second += n
		case models.SemesterSummer:
			counts.Summer += n
		}
	}
	return counts
}

func bucketGenders(raw map[string]int) dto.GenderCounts {
	var counts dto.GenderCounts
	for value, n := range raw {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "male", "m":
			counts.Male += n
		case "female", "f":
			counts.Female += n
		}
	}
	return counts
}
