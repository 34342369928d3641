package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/citc-dev/registrar-api/internal/dto"
	"github.com/citc-dev/registrar-api/internal/middleware"
	appErrors "github.com/citc-dev/registrar-api/pkg/errors"
	"github.com/citc-dev/registrar-api/pkg/response"
)

type statusService interface {
	StudentStatus(ctx context.Context, userID string) (*dto.StudentStatusResponse, error)
}

// StatusHandler exposes the student standing endpoint.
type StatusHandler struct {
	service statusService
}

// NewStatusHandler constructs the handler.
func NewStatusHandler(service statusService) *StatusHandler {
	return &StatusHandler{service: service}
}

// Status godoc
// @Summary Current standing of a student account
// @Tags Students
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/status [get]
func (h *StatusHandler) Status(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	userID := strings.TrimSpace(c.Param("id"))
	if userID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id is required"))
		return
	}
	start := time.Now()
	status, err := h.service.StudentStatus(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, status, nil, meta)
}
