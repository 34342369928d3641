package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citc-dev/registrar-api/internal/dto"
	"github.com/citc-dev/registrar-api/internal/models"
	"github.com/citc-dev/registrar-api/internal/service"
	appErrors "github.com/citc-dev/registrar-api/pkg/errors"
)

type fakeRequestSrv struct {
	request    *models.DocumentRequest
	link       *dto.DownloadLinkResponse
	pdf        []byte
	filename   string
	err        error
	lastStatus models.RequestStatus
}

func (f *fakeRequestSrv) Create(context.Context, service.CreateRequestPayload) (*models.DocumentRequest, error) {
	return f.request, f.err
}

func (f *fakeRequestSrv) List(context.Context, models.DocumentRequestFilter) ([]models.DocumentRequest, *models.Pagination, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return []models.DocumentRequest{*f.request}, &models.Pagination{Page: 1, PageSize: 20, TotalCount: 1}, nil
}

func (f *fakeRequestSrv) UpdateStatus(_ context.Context, _ string, status models.RequestStatus, _ *string) (*models.DocumentRequest, error) {
	f.lastStatus = status
	return f.request, f.err
}

func (f *fakeRequestSrv) IssueDownloadLink(context.Context, string) (*dto.DownloadLinkResponse, error) {
	return f.link, f.err
}

func (f *fakeRequestSrv) Download(context.Context, string, string) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.pdf, f.filename, nil
}

func TestRequestHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRequestHandler(&fakeRequestSrv{request: &models.DocumentRequest{
		ID: "req-1", Status: models.RequestStatusPending,
	}})

	body, _ := json.Marshal(map[string]string{
		"studentId":    "stud-1",
		"documentType": "CERT_OF_ENROLLMENT",
		"purpose":      "Scholarship",
	})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/requests", bytes.NewReader(body))

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRequestHandlerUpdateStatusUppercases(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeRequestSrv{request: &models.DocumentRequest{ID: "req-1"}}
	handler := NewRequestHandler(service)

	body, _ := json.Marshal(map[string]string{"status": "approved"})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Params = gin.Params{{Key: "id", Value: "req-1"}}
	c.Request = httptest.NewRequest(http.MethodPatch, "/requests/req-1/status", bytes.NewReader(body))

	handler.UpdateStatus(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.RequestStatusApproved, service.lastStatus)
}

func TestRequestHandlerDownloadRequiresToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRequestHandler(&fakeRequestSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Params = gin.Params{{Key: "id", Value: "req-1"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/requests/req-1/download", nil)

	handler.Download(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestHandlerDownloadServesPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRequestHandler(&fakeRequestSrv{
		pdf:      []byte("%PDF-1.4 stub"),
		filename: "CERT_OF_ENROLLMENT-2023-00123.pdf",
	})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Params = gin.Params{{Key: "id", Value: "req-1"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/requests/req-1/download?token=signed", nil)

	handler.Download(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "CERT_OF_ENROLLMENT-2023-00123.pdf")
}

func TestRequestHandlerConflictPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRequestHandler(&fakeRequestSrv{
		err: appErrors.Clone(appErrors.ErrConflict, "request fee has not been paid"),
	})

	body, _ := json.Marshal(map[string]string{"status": "READY"})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Params = gin.Params{{Key: "id", Value: "req-1"}}
	c.Request = httptest.NewRequest(http.MethodPatch, "/requests/req-1/status", bytes.NewReader(body))

	handler.UpdateStatus(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
