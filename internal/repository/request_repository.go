package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/citc-dev/registrar-api/internal/models"
)

// RequestRepository handles persistence of document requests.
type RequestRepository struct {
	db *sqlx.DB
}

// NewRequestRepository constructs the repository.
func NewRequestRepository(db *sqlx.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// FindByID returns a document request by its ID.
func (r *RequestRepository) FindByID(ctx context.Context, id string) (*models.DocumentRequest, error) {
	const query = `SELECT id, student_id, document_type, purpose, status, fee, paid, remarks,
        requested_at, updated_at
        FROM document_requests WHERE id = $1`
	var request models.DocumentRequest
	if err := r.db.GetContext(ctx, &request, query, id); err != nil {
		return nil, err
	}
	return &request, nil
}

// List returns document requests filtered by the provided criteria.
func (r *RequestRepository) List(ctx context.Context, filter models.DocumentRequestFilter) ([]models.DocumentRequest, int, error) {
	base := `FROM document_requests`
	var conditions []string
	var args []interface{}

	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.DocumentType != "" {
		conditions = append(conditions, fmt.Sprintf("document_type = $%d", len(args)+1))
		args = append(args, filter.DocumentType)
	}

	clause := ""
	if len(conditions) > 0 {
		clause = " WHERE " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, student_id, document_type, purpose, status, fee, paid, remarks,
        requested_at, updated_at
        %s ORDER BY requested_at DESC LIMIT %d OFFSET %d`, base+clause, size, offset)

	var requests []models.DocumentRequest
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list document requests: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base+clause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count document requests: %w", err)
	}
	return requests, total, nil
}

// Create persists a new document request.
func (r *RequestRepository) Create(ctx context.Context, request *models.DocumentRequest) error {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if request.RequestedAt.IsZero() {
		request.RequestedAt = now
	}
	request.UpdatedAt = now
	if request.Status == "" {
		request.Status = models.RequestStatusPending
	}
	const query = `INSERT INTO document_requests (id, student_id, document_type, purpose, status,
        fee, paid, remarks, requested_at, updated_at)
        VALUES (:id, :student_id, :document_type, :purpose, :status, :fee, :paid, :remarks, :requested_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, request); err != nil {
		return fmt.Errorf("create document request: %w", err)
	}
	return nil
}

// UpdateStatus updates the processing status of a request.
func (r *RequestRepository) UpdateStatus(ctx context.Context, id string, status models.RequestStatus, remarks *string) error {
	const query = `UPDATE document_requests SET status = $2, remarks = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, remarks, time.Now().UTC()); err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	return nil
}

// MarkPaid flags a request as paid.
func (r *RequestRepository) MarkPaid(ctx context.Context, id string) error {
	const query = `UPDATE document_requests SET paid = TRUE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("mark request paid: %w", err)
	}
	return nil
}
