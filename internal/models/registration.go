package models

import "time"

// RegistrationStatus tracks the review state of a registration.
type RegistrationStatus string

const (
	RegistrationStatusPending  RegistrationStatus = "PENDING"
	RegistrationStatusApproved RegistrationStatus = "APPROVED"
	RegistrationStatusRejected RegistrationStatus = "REJECTED"
)

// Registration is a student's declared standing for an academic cycle and the
// preferred source of year level, semester and school year.
type Registration struct {
	ID              string             `db:"id" json:"id"`
	UserID          string             `db:"user_id" json:"userId"`
	YearLevel       string             `db:"year_level" json:"yearLevel"`
	Semester        string             `db:"semester" json:"semester"`
	SchoolYear      string             `db:"school_year" json:"schoolYear"`
	ApplicationType string             `db:"application_type" json:"applicationType"`
	StudentType     string             `db:"student_type" json:"studentType"`
	Status          RegistrationStatus `db:"status" json:"status"`
	CreatedAt       time.Time          `db:"created_at" json:"createdAt"`
}

// RegistrationFilter provides filters for listing registrations.
type RegistrationFilter struct {
	UserID     string
	SchoolYear string
	Status     RegistrationStatus
	Page       int
	PageSize   int
}
