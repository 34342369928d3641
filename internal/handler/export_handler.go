package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/citc-dev/registrar-api/internal/models"
	appErrors "github.com/citc-dev/registrar-api/pkg/errors"
	"github.com/citc-dev/registrar-api/pkg/response"
)

type exportService interface {
	EnrollmentReport(ctx context.Context, filter models.EnrollmentFilter, format string) ([]byte, string, string, error)
}

// ExportHandler serves downloadable registrar reports.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Enrollments godoc
// @Summary Export the enrollment list
// @Tags Exports
// @Produce text/csv
// @Param format query string false "csv or pdf (default csv)"
// @Param studentId query string false "Student profile ID"
// @Param status query string false "Enrollment status"
// @Success 200 {file} binary
// @Router /exports/enrollments [get]
func (h *ExportHandler) Enrollments(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	if format == "" {
		format = "csv"
	}
	filter := models.EnrollmentFilter{
		StudentID: strings.TrimSpace(c.Query("studentId")),
		Status:    models.EnrollmentStatus(strings.TrimSpace(c.Query("status"))),
	}
	out, filename, contentType, err := h.service.EnrollmentReport(c.Request.Context(), filter, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, out)
}
