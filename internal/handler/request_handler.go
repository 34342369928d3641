package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/citc-dev/registrar-api/internal/dto"
	"github.com/citc-dev/registrar-api/internal/models"
	"github.com/citc-dev/registrar-api/internal/service"
	appErrors "github.com/citc-dev/registrar-api/pkg/errors"
	"github.com/citc-dev/registrar-api/pkg/response"
)

type requestService interface {
	Create(ctx context.Context, payload service.CreateRequestPayload) (*models.DocumentRequest, error)
	List(ctx context.Context, filter models.DocumentRequestFilter) ([]models.DocumentRequest, *models.Pagination, error)
	UpdateStatus(ctx context.Context, id string, status models.RequestStatus, remarks *string) (*models.DocumentRequest, error)
	IssueDownloadLink(ctx context.Context, id string) (*dto.DownloadLinkResponse, error)
	Download(ctx context.Context, id, rawToken string) ([]byte, string, error)
}

// RequestHandler wires document request operations to HTTP endpoints.
type RequestHandler struct {
	service requestService
}

// NewRequestHandler constructs the handler.
func NewRequestHandler(service requestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// Create godoc
// @Summary File a document request
// @Tags Requests
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var payload service.CreateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	request, err := h.service.Create(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, request)
}

// List godoc
// @Summary List document requests
// @Tags Requests
// @Produce json
// @Param studentId query string false "Student profile ID"
// @Param status query string false "Request status"
// @Param documentType query string false "Document type"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	filter := models.DocumentRequestFilter{
		StudentID:    strings.TrimSpace(c.Query("studentId")),
		Status:       models.RequestStatus(strings.TrimSpace(c.Query("status"))),
		DocumentType: models.DocumentType(strings.TrimSpace(c.Query("documentType"))),
		Page:         queryInt(c, "page", 1),
		PageSize:     queryInt(c, "pageSize", 20),
	}
	requests, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests, pagination)
}

// UpdateStatus godoc
// @Summary Advance a document request through its lifecycle
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /requests/{id}/status [patch]
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var body struct {
		Status  string  `json:"status"`
		Remarks *string `json:"remarks"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	request, err := h.service.UpdateStatus(c.Request.Context(), strings.TrimSpace(c.Param("id")), models.RequestStatus(strings.ToUpper(strings.TrimSpace(body.Status))), body.Remarks)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, request, nil)
}

// DownloadLink godoc
// @Summary Issue a short-lived download link for a ready document
// @Tags Requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /requests/{id}/download-link [post]
func (h *RequestHandler) DownloadLink(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	link, err := h.service.IssueDownloadLink(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, link, nil)
}

// Download godoc
// @Summary Download a rendered document
// @Tags Requests
// @Produce application/pdf
// @Param id path string true "Request ID"
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Router /requests/{id}/download [get]
func (h *RequestHandler) Download(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	rawToken := strings.TrimSpace(c.Query("token"))
	if rawToken == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	pdf, filename, err := h.service.Download(c.Request.Context(), strings.TrimSpace(c.Param("id")), rawToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
