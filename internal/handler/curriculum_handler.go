package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/citc-dev/registrar-api/internal/dto"
	"github.com/citc-dev/registrar-api/internal/middleware"
	"github.com/citc-dev/registrar-api/internal/models"
	appErrors "github.com/citc-dev/registrar-api/pkg/errors"
	"github.com/citc-dev/registrar-api/pkg/response"
)

type curriculumService interface {
	Curriculum(ctx context.Context, filter models.CurriculumFilter) (*dto.CurriculumResponse, bool, error)
}

// CurriculumHandler wires the curriculum service to HTTP endpoints.
type CurriculumHandler struct {
	service curriculumService
}

// NewCurriculumHandler constructs the handler.
func NewCurriculumHandler(service curriculumService) *CurriculumHandler {
	return &CurriculumHandler{service: service}
}

// Curriculum godoc
// @Summary Curriculum with merged schedules for a year level and semester
// @Tags Curriculum
// @Produce json
// @Param yearLevel query string true "Year level (1st..4th, synonyms accepted)"
// @Param semester query string true "Semester (1st, 2nd, summer)"
// @Param schoolYear query string false "School year (YYYY-YYYY). Defaults to the active year"
// @Success 200 {object} response.Envelope
// @Router /curriculum [get]
func (h *CurriculumHandler) Curriculum(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	filter := models.CurriculumFilter{
		YearLevel:  strings.TrimSpace(c.Query("yearLevel")),
		Semester:   strings.TrimSpace(c.Query("semester")),
		SchoolYear: strings.TrimSpace(c.Query("schoolYear")),
	}
	start := time.Now()
	curriculum, cacheHit, err := h.service.Curriculum(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, curriculum, nil, meta)
}
