package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/citc-dev/registrar-api/internal/models"
	"github.com/citc-dev/registrar-api/internal/service"
	appErrors "github.com/citc-dev/registrar-api/pkg/errors"
	"github.com/citc-dev/registrar-api/pkg/response"
)

type studentService interface {
	List(ctx context.Context, query service.StudentListQuery) ([]models.Student, *models.Pagination, error)
}

// StudentHandler wires the student directory to HTTP endpoints.
type StudentHandler struct {
	service studentService
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(service studentService) *StudentHandler {
	return &StudentHandler{service: service}
}

// List godoc
// @Summary Student directory with name/number search
// @Tags Students
// @Produce json
// @Param search query string false "Match against full name or student number"
// @Param yearLevel query string false "Year level (synonyms accepted)"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	query := service.StudentListQuery{
		Search:    c.Query("search"),
		YearLevel: c.Query("yearLevel"),
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "pageSize", 20),
	}
	students, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, pagination)
}
