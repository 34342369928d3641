package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citc-dev/registrar-api/internal/models"
	appErrors "github.com/citc-dev/registrar-api/pkg/errors"
	"github.com/citc-dev/registrar-api/pkg/export"
	"github.com/citc-dev/registrar-api/pkg/token"
)

type fakeRequestRepo struct {
	request    *models.DocumentRequest
	findErr    error
	created    *models.DocumentRequest
	updated    models.RequestStatus
	markedPaid bool
}

func (f *fakeRequestRepo) FindByID(context.Context, string) (*models.DocumentRequest, error) {
	return f.request, f.findErr
}

func (f *fakeRequestRepo) List(context.Context, models.DocumentRequestFilter) ([]models.DocumentRequest, int, error) {
	return nil, 0, nil
}

func (f *fakeRequestRepo) Create(_ context.Context, request *models.DocumentRequest) error {
	request.ID = "req-1"
	f.created = request
	return nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, _ string, status models.RequestStatus, _ *string) error {
	f.updated = status
	return nil
}

func (f *fakeRequestRepo) MarkPaid(context.Context, string) error {
	f.markedPaid = true
	return nil
}

type fakeDetailReader struct {
	details []models.EnrollmentDetail
	err     error
}

func (f *fakeDetailReader) ListDetailByStudent(context.Context, string) ([]models.EnrollmentDetail, error) {
	return f.details, f.err
}

type fakeRenderer struct {
	lastDoc export.Document
}

func (f *fakeRenderer) Render(doc export.Document) ([]byte, error) {
	f.lastDoc = doc
	return []byte("%PDF-1.4 stub"), nil
}

func testStudent() *models.Student {
	return &models.Student{ID: "stud-1", UserID: "user-1", StudentNo: "2023-00123", FullName: "Ana Reyes"}
}

func newRequestServiceForTest(repo *fakeRequestRepo, renderer *fakeRenderer, details []models.EnrollmentDetail) (*RequestService, *fakeNotifier) {
	notifier := &fakeNotifier{}
	svc := NewRequestService(repo, &fakeStudents{student: testStudent()},
		&fakeDetailReader{details: details}, notifier, renderer,
		token.NewSigner("test-secret", 30*time.Minute), nil, nil)
	return svc, notifier
}

func TestCreateRequestAppliesFee(t *testing.T) {
	repo := &fakeRequestRepo{}
	svc, _ := newRequestServiceForTest(repo, &fakeRenderer{}, nil)

	request, err := svc.Create(context.Background(), CreateRequestPayload{
		StudentID:    "stud-1",
		DocumentType: "TRANSCRIPT",
		Purpose:      "Employment",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.Equal(t, float64(200), request.Fee)
	assert.False(t, request.Paid)
}

func TestCreateRequestRejectsUnknownType(t *testing.T) {
	svc, _ := newRequestServiceForTest(&fakeRequestRepo{}, &fakeRenderer{}, nil)

	_, err := svc.Create(context.Background(), CreateRequestPayload{
		StudentID:    "stud-1",
		DocumentType: "DIPLOMA",
		Purpose:      "Framing",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUpdateStatusEnforcesTransitions(t *testing.T) {
	cases := []struct {
		name string
		from models.RequestStatus
		to   models.RequestStatus
		paid bool
		ok   bool
	}{
		{"pending to approved", models.RequestStatusPending, models.RequestStatusApproved, false, true},
		{"pending to rejected", models.RequestStatusPending, models.RequestStatusRejected, false, true},
		{"pending to ready", models.RequestStatusPending, models.RequestStatusReady, true, false},
		{"approved to ready paid", models.RequestStatusApproved, models.RequestStatusReady, true, true},
		{"approved to ready unpaid", models.RequestStatusApproved, models.RequestStatusReady, false, false},
		{"ready to released", models.RequestStatusReady, models.RequestStatusReleased, true, true},
		{"released is terminal", models.RequestStatusReleased, models.RequestStatusPending, true, false},
		{"rejected is terminal", models.RequestStatusRejected, models.RequestStatusApproved, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRequestRepo{request: &models.DocumentRequest{
				ID: "req-1", StudentID: "stud-1", DocumentType: models.DocumentTypeTranscript,
				Status: tc.from, Paid: tc.paid,
			}}
			svc, _ := newRequestServiceForTest(repo, &fakeRenderer{}, nil)

			_, err := svc.UpdateStatus(context.Background(), "req-1", tc.to, nil)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.to, repo.updated)
			} else {
				require.Error(t, err)
				assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
			}
		})
	}
}

func TestUpdateStatusNotifiesStudent(t *testing.T) {
	repo := &fakeRequestRepo{request: &models.DocumentRequest{
		ID: "req-1", StudentID: "stud-1", DocumentType: models.DocumentTypeGoodMoral,
		Status: models.RequestStatusPending,
	}}
	svc, notifier := newRequestServiceForTest(repo, &fakeRenderer{}, nil)

	_, err := svc.UpdateStatus(context.Background(), "req-1", models.RequestStatusApproved, nil)
	require.NoError(t, err)
	require.Len(t, notifier.created, 1)
	assert.Equal(t, "user-1", notifier.created[0].UserID)
}

func TestIssueDownloadLinkRequiresReadyDocument(t *testing.T) {
	repo := &fakeRequestRepo{request: &models.DocumentRequest{
		ID: "req-1", Status: models.RequestStatusApproved,
	}}
	svc, _ := newRequestServiceForTest(repo, &fakeRenderer{}, nil)

	_, err := svc.IssueDownloadLink(context.Background(), "req-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestDownloadRoundTrip(t *testing.T) {
	repo := &fakeRequestRepo{request: &models.DocumentRequest{
		ID: "req-1", StudentID: "stud-1", DocumentType: models.DocumentTypeEnrollmentCert,
		Purpose: "Scholarship", Status: models.RequestStatusReady, Paid: true,
	}}
	renderer := &fakeRenderer{}
	details := []models.EnrollmentDetail{{
		CourseCode:        "CS101",
		CourseDescription: "Intro to Computing",
		Units:             3,
		DayOfWeek:         "Mon",
		StartTime:         "08:00",
		EndTime:           "10:00",
		Room:              "R201",
	}}
	svc, _ := newRequestServiceForTest(repo, renderer, details)

	link, err := svc.IssueDownloadLink(context.Background(), "req-1")
	require.NoError(t, err)
	require.NotEmpty(t, link.Token)
	assert.Contains(t, link.URL, link.Token)

	pdf, filename, err := svc.Download(context.Background(), "req-1", link.Token)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "CERT_OF_ENROLLMENT-2023-00123.pdf", filename)
	assert.Equal(t, "Certificate of Enrollment", renderer.lastDoc.Title)
	require.NotNil(t, renderer.lastDoc.Table)
	require.Len(t, renderer.lastDoc.Table.Rows, 1)
	assert.Equal(t, "CS101", renderer.lastDoc.Table.Rows[0]["Course Code"])
}

func TestDownloadRejectsMismatchedToken(t *testing.T) {
	repo := &fakeRequestRepo{request: &models.DocumentRequest{
		ID: "req-2", StudentID: "stud-1", Status: models.RequestStatusReady,
	}}
	svc, _ := newRequestServiceForTest(repo, &fakeRenderer{}, nil)

	signer := token.NewSigner("test-secret", 30*time.Minute)
	signed, _, err := signer.Sign("other-request", "TRANSCRIPT", time.Now().UTC())
	require.NoError(t, err)

	_, _, err = svc.Download(context.Background(), "req-2", signed)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestDownloadRejectsExpiredToken(t *testing.T) {
	repo := &fakeRequestRepo{request: &models.DocumentRequest{
		ID: "req-1", StudentID: "stud-1", Status: models.RequestStatusReady,
	}}
	svc, _ := newRequestServiceForTest(repo, &fakeRenderer{}, nil)

	signer := token.NewSigner("test-secret", time.Minute)
	signed, _, err := signer.Sign("req-1", "TRANSCRIPT", time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)

	_, _, err = svc.Download(context.Background(), "req-1", signed)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrExpiredToken.Code, appErrors.FromError(err).Code)
}

func TestRequestFindNotFound(t *testing.T) {
	svc, _ := newRequestServiceForTest(&fakeRequestRepo{findErr: sql.ErrNoRows}, &fakeRenderer{}, nil)

	_, err := svc.UpdateStatus(context.Background(), "missing", models.RequestStatusApproved, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
