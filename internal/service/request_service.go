package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/citc-dev/registrar-api/internal/dto"
	"github.com/citc-dev/registrar-api/internal/models"
	appErrors "github.com/citc-dev/registrar-api/pkg/errors"
	"github.com/citc-dev/registrar-api/pkg/export"
	"github.com/citc-dev/registrar-api/pkg/token"
)

type requestRepository interface {
	FindByID(ctx context.Context, id string) (*models.DocumentRequest, error)
	List(ctx context.Context, filter models.DocumentRequestFilter) ([]models.DocumentRequest, int, error)
	Create(ctx context.Context, request *models.DocumentRequest) error
	UpdateStatus(ctx context.Context, id string, status models.RequestStatus, remarks *string) error
	MarkPaid(ctx context.Context, id string) error
}

type enrollmentListReader interface {
	ListDetailByStudent(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error)
}

type documentRenderer interface {
	Render(doc export.Document) ([]byte, error)
}

// CreateRequestPayload describes a new document request.
type CreateRequestPayload struct {
	StudentID    string `json:"studentId" validate:"required"`
	DocumentType string `json:"documentType" validate:"required,oneof=CERT_OF_ENROLLMENT CERT_OF_GRADES GOOD_MORAL TRANSCRIPT"`
	Purpose      string `json:"purpose" validate:"required"`
}

// Document fees by type, in pesos. Seeded out of band in the original system;
// kept here until a fee table is warranted.
var documentFees = map[models.DocumentType]float64{
	models.DocumentTypeEnrollmentCert: 50,
	models.DocumentTypeGrades:         75,
	models.DocumentTypeGoodMoral:      50,
	models.DocumentTypeTranscript:     200,
}

var requestTransitions = map[models.RequestStatus][]models.RequestStatus{
	models.RequestStatusPending:  {models.RequestStatusApproved, models.RequestStatusRejected},
	models.RequestStatusApproved: {models.RequestStatusReady, models.RequestStatusRejected},
	models.RequestStatusReady:    {models.RequestStatusReleased},
}

// RequestService orchestrates the document request lifecycle and renders the
// documents themselves on demand.
type RequestService struct {
	repo          requestRepository
	students      studentByIDReader
	enrollments   enrollmentListReader
	notifications notificationWriter
	renderer      documentRenderer
	signer        *token.Signer
	validator     *validator.Validate
	logger        *zap.Logger
	now           func() time.Time
}

// NewRequestService constructs RequestService.
func NewRequestService(repo requestRepository, students studentByIDReader, enrollments enrollmentListReader, notifications notificationWriter, renderer documentRenderer, signer *token.Signer, validate *validator.Validate, logger *zap.Logger) *RequestService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestService{
		repo:          repo,
		students:      students,
		enrollments:   enrollments,
		notifications: notifications,
		renderer:      renderer,
		signer:        signer,
		validator:     validate,
		logger:        logger,
		now:           time.Now,
	}
}

// Create files a document request for a student.
func (s *RequestService) Create(ctx context.Context, payload CreateRequestPayload) (*models.DocumentRequest, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request payload")
	}
	if _, err := s.students.FindByID(ctx, payload.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	documentType := models.DocumentType(payload.DocumentType)
	request := &models.DocumentRequest{
		StudentID:    payload.StudentID,
		DocumentType: documentType,
		Purpose:      payload.Purpose,
		Status:       models.RequestStatusPending,
		Fee:          documentFees[documentType],
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create request")
	}
	return request, nil
}

// List returns document requests with pagination metadata.
func (s *RequestService) List(ctx context.Context, filter models.DocumentRequestFilter) ([]models.DocumentRequest, *models.Pagination, error) {
	requests, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list requests")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return requests, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// UpdateStatus advances a request through its lifecycle.
func (s *RequestService) UpdateStatus(ctx context.Context, id string, status models.RequestStatus, remarks *string) (*models.DocumentRequest, error) {
	request, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(request.Status, status) {
		return nil, appErrors.Clone(appErrors.ErrConflict,
			fmt.Sprintf("cannot move request from %s to %s", request.Status, status))
	}
	if status == models.RequestStatusReady && !request.Paid {
		return nil, appErrors.Clone(appErrors.ErrConflict, "request fee has not been paid")
	}
	if err := s.repo.UpdateStatus(ctx, id, status, remarks); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update request")
	}
	request.Status = status
	request.Remarks = remarks

	if student, err := s.students.FindByID(ctx, request.StudentID); err == nil && s.notifications != nil {
		notification := &models.Notification{
			UserID: student.UserID,
			Title:  "Document request update",
			Body:   fmt.Sprintf("Your %s request is now %s.", request.DocumentType, request.Status),
		}
		if err := s.notifications.Create(ctx, notification); err != nil {
			s.logger.Warn("request notification failed", zap.String("request_id", id), zap.Error(err))
		}
	}
	return request, nil
}

// IssueDownloadLink signs a short-lived token for a ready document.
func (s *RequestService) IssueDownloadLink(ctx context.Context, id string) (*dto.DownloadLinkResponse, error) {
	request, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status != models.RequestStatusReady && request.Status != models.RequestStatusReleased {
		return nil, appErrors.Clone(appErrors.ErrConflict, "document is not ready for download")
	}
	signed, expiresAt, err := s.signer.Sign(request.ID, string(request.DocumentType), s.now().UTC())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download link")
	}
	return &dto.DownloadLinkResponse{
		RequestID: request.ID,
		Token:     signed,
		URL:       fmt.Sprintf("/api/v1/requests/%s/download?token=%s", request.ID, signed),
		ExpiresAt: expiresAt,
	}, nil
}

// Download verifies the token and renders the requested document.
func (s *RequestService) Download(ctx context.Context, id, rawToken string) ([]byte, string, error) {
	claims, err := s.signer.Verify(rawToken)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrExpiredToken.Code, appErrors.ErrExpiredToken.Status, "invalid or expired download token")
	}
	if claims.RequestID != id {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "token does not match request")
	}
	request, err := s.find(ctx, id)
	if err != nil {
		return nil, "", err
	}
	student, err := s.students.FindByID(ctx, request.StudentID)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	pdf, err := s.renderer.Render(s.buildDocument(ctx, request, student))
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render document")
	}
	filename := fmt.Sprintf("%s-%s.pdf", request.DocumentType, student.StudentNo)
	return pdf, filename, nil
}

func (s *RequestService) find(ctx context.Context, id string) (*models.DocumentRequest, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "document request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load request")
	}
	return request, nil
}

func (s *RequestService) buildDocument(ctx context.Context, request *models.DocumentRequest, student *models.Student) export.Document {
	doc := export.Document{
		Title:    documentTitle(request.DocumentType),
		Subtitle: "Office of the Registrar",
		Fields: []export.Field{
			{Label: "Student No.", Value: student.StudentNo},
			{Label: "Name", Value: student.FullName},
			{Label: "Purpose", Value: request.Purpose},
			{Label: "Date Issued", Value: s.now().UTC().Format("January 2, 2006")},
		},
		Footer: fmt.Sprintf("Request %s. Not valid without the registrar's seal.", request.ID),
	}

	if request.DocumentType == models.DocumentTypeEnrollmentCert || request.DocumentType == models.DocumentTypeGrades {
		enrollments, err := s.enrollments.ListDetailByStudent(ctx, student.ID)
		if err != nil {
			s.logger.Warn("document enrollment lookup failed", zap.String("student_id", student.ID), zap.Error(err))
			return doc
		}
		table := &export.Dataset{Headers: []string{"Course Code", "Description", "Units", "Schedule"}}
		for _, enrollment := range enrollments {
			row := map[string]string{
				"Course Code": enrollment.CourseCode,
				"Description": enrollment.CourseDescription,
				"Units":       strconv.Itoa(enrollment.Units),
				"Schedule":    fmt.Sprintf("%s %s-%s %s", enrollment.DayOfWeek, enrollment.StartTime, enrollment.EndTime, enrollment.Room),
			}
			if request.DocumentType == models.DocumentTypeGrades {
				grade := ""
				if enrollment.Grade != nil {
					grade = *enrollment.Grade
				}
				row["Grade"] = grade
			}
			table.Rows = append(table.Rows, row)
		}
		if request.DocumentType == models.DocumentTypeGrades {
			table.Headers = append(table.Headers, "Grade")
		}
		doc.Table = table
	}
	return doc
}

func transitionAllowed(from, to models.RequestStatus) bool {
	for _, allowed := range requestTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func documentTitle(documentType models.DocumentType) string {
	switch documentType {
	case models.DocumentTypeEnrollmentCert:
		return "Certificate of Enrollment"
	case models.DocumentTypeGrades:
		return "Certification of Grades"
	case models.DocumentTypeGoodMoral:
		return "Certificate of Good Moral Character"
	case models.DocumentTypeTranscript:
		return "Transcript of Records"
	default:
		return string(documentType)
	}
}
