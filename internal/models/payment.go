package models

import "time"

// PaymentMethod identifies how a payment was made.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodGCash  PaymentMethod = "GCASH"
	PaymentMethodBank   PaymentMethod = "BANK_TRANSFER"
	PaymentMethodOnline PaymentMethod = "ONLINE"
)

// Payment records a settled fee against a document request.
type Payment struct {
	ID          string        `db:"id" json:"id"`
	StudentID   string        `db:"student_id" json:"studentId"`
	RequestID   string        `db:"request_id" json:"requestId"`
	Amount      float64       `db:"amount" json:"amount"`
	Method      PaymentMethod `db:"method" json:"method"`
	ReferenceNo *string       `db:"reference_no" json:"referenceNo,omitempty"`
	PaidAt      time.Time     `db:"paid_at" json:"paidAt"`
}

// PaymentFilter provides filters for listing payments.
type PaymentFilter struct {
	StudentID string
	RequestID string
	Page      int
	PageSize  int
}
