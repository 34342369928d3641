package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/citc-dev/registrar-api/internal/models"
	appErrors "github.com/citc-dev/registrar-api/pkg/errors"
)

type paymentRepository interface {
	List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, int, error)
	Create(ctx context.Context, payment *models.Payment) error
}

type paidRequestReader interface {
	FindByID(ctx context.Context, id string) (*models.DocumentRequest, error)
	MarkPaid(ctx context.Context, id string) error
}

// RecordPaymentRequest describes a fee settlement against a document request.
type RecordPaymentRequest struct {
	RequestID   string  `json:"requestId" validate:"required"`
	Method      string  `json:"method" validate:"required,oneof=CASH GCASH BANK_TRANSFER ONLINE"`
	ReferenceNo *string `json:"referenceNo"`
}

// PaymentService records fee payments and marks document requests paid.
type PaymentService struct {
	repo      paymentRepository
	requests  paidRequestReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService constructs PaymentService.
func NewPaymentService(repo paymentRepository, requests paidRequestReader, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{repo: repo, requests: requests, validator: validate, logger: logger}
}

// Record settles the fee on a document request. The amount is always the
// request's fee; partial payments are not accepted.
func (s *PaymentService) Record(ctx context.Context, req RecordPaymentRequest) (*models.Payment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	request, err := s.requests.FindByID(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "document request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load request")
	}
	if request.Paid {
		return nil, appErrors.Clone(appErrors.ErrConflict, "request is already paid")
	}
	if request.Status == models.RequestStatusRejected {
		return nil, appErrors.Clone(appErrors.ErrConflict, "cannot pay for a rejected request")
	}

	payment := &models.Payment{
		StudentID:   request.StudentID,
		RequestID:   request.ID,
		Amount:      request.Fee,
		Method:      models.PaymentMethod(req.Method),
		ReferenceNo: req.ReferenceNo,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record payment")
	}
	if err := s.requests.MarkPaid(ctx, request.ID); err != nil {
		// The payment row exists; the paid flag is reconciled by the next
		// status review if this update is lost.
		s.logger.Warn("failed to flag request as paid", zap.String("request_id", request.ID), zap.Error(err))
	}
	return payment, nil
}

// List returns payments with pagination metadata.
func (s *PaymentService) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, *models.Pagination, error) {
	payments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list payments")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return payments, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}
