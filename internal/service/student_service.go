package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/citc-dev/registrar-api/internal/models"
	appErrors "github.com/citc-dev/registrar-api/pkg/errors"
)

type studentDirectoryReader interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
}

// StudentListQuery carries the directory search parameters as received from
// the API, year level in any of its historical spellings.
type StudentListQuery struct {
	Search    string
	YearLevel string
	Page      int
	PageSize  int
}

// StudentService serves the student directory.
type StudentService struct {
	repo   studentDirectoryReader
	logger *zap.Logger
}

// NewStudentService constructs StudentService.
func NewStudentService(repo studentDirectoryReader, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, logger: logger}
}

// List returns student profiles matching the query, with pagination metadata.
func (s *StudentService) List(ctx context.Context, query StudentListQuery) ([]models.Student, *models.Pagination, error) {
	filter := models.StudentFilter{
		Search:   strings.TrimSpace(query.Search),
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if raw := strings.TrimSpace(query.YearLevel); raw != "" {
		level, ok := models.CanonicalYearLevel(raw)
		if !ok {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, "unrecognized year level")
		}
		filter.YearLevel = level.Ordinal()
	}

	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return students, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}
