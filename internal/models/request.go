package models

import "time"

// DocumentType identifies a requestable registrar document.
type DocumentType string

const (
	DocumentTypeEnrollmentCert DocumentType = "CERT_OF_ENROLLMENT"
	DocumentTypeGrades         DocumentType = "CERT_OF_GRADES"
	DocumentTypeGoodMoral      DocumentType = "GOOD_MORAL"
	DocumentTypeTranscript     DocumentType = "TRANSCRIPT"
)

// RequestStatus tracks the processing state of a document request.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusReady    RequestStatus = "READY"
	RequestStatusReleased RequestStatus = "RELEASED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// DocumentRequest is a student's request for a registrar document.
type DocumentRequest struct {
	ID           string        `db:"id" json:"id"`
	StudentID    string        `db:"student_id" json:"studentId"`
	DocumentType DocumentType  `db:"document_type" json:"documentType"`
	Purpose      string        `db:"purpose" json:"purpose"`
	Status       RequestStatus `db:"status" json:"status"`
	Fee          float64       `db:"fee" json:"fee"`
	Paid         bool          `db:"paid" json:"paid"`
	Remarks      *string       `db:"remarks" json:"remarks,omitempty"`
	RequestedAt  time.Time     `db:"requested_at" json:"requestedAt"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updatedAt"`
}

// DocumentRequestFilter provides filters for listing document requests.
type DocumentRequestFilter struct {
	StudentID    string
	Status       RequestStatus
	DocumentType DocumentType
	Page         int
	PageSize     int
}
