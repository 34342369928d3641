package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/citc-dev/registrar-api/internal/models"
	appErrors "github.com/citc-dev/registrar-api/pkg/errors"
	"github.com/citc-dev/registrar-api/pkg/response"
)

type subjectService interface {
	List(ctx context.Context, yearLevel, semester string) ([]models.CurriculumSubject, error)
	Schedules(ctx context.Context, subjectID, schoolYear string) ([]models.ScheduleSlot, error)
}

// SubjectHandler wires the subject catalog to HTTP endpoints.
type SubjectHandler struct {
	service subjectService
}

// NewSubjectHandler constructs the handler.
func NewSubjectHandler(service subjectService) *SubjectHandler {
	return &SubjectHandler{service: service}
}

// List godoc
// @Summary List curriculum subjects as stored, without grouping
// @Tags Subjects
// @Produce json
// @Param yearLevel query string false "Year level. Defaults to the configured year"
// @Param semester query string false "Semester. Defaults to the configured semester"
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	subjects, err := h.service.List(c.Request.Context(), c.Query("yearLevel"), c.Query("semester"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// Schedules godoc
// @Summary Schedule slots of one subject for a school year
// @Tags Subjects
// @Produce json
// @Param id path string true "Subject ID"
// @Param schoolYear query string false "School year (YYYY-YYYY). Defaults to the active year"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id}/schedules [get]
func (h *SubjectHandler) Schedules(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	slots, err := h.service.Schedules(c.Request.Context(), strings.TrimSpace(c.Param("id")), c.Query("schoolYear"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}
