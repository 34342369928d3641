package models

import "time"

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusEnrolled  EnrollmentStatus = "ENROLLED"
	EnrollmentStatusDropped   EnrollmentStatus = "DROPPED"
	EnrollmentStatusCompleted EnrollmentStatus = "COMPLETED"
)

// Enrollment links a student to one schedule slot. At most one
// non-dropped enrollment may exist per (student, schedule) pair.
type Enrollment struct {
	ID         string           `db:"id" json:"id"`
	StudentID  string           `db:"student_id" json:"studentId"`
	ScheduleID string           `db:"schedule_id" json:"scheduleId"`
	EnrolledAt time.Time        `db:"enrolled_at" json:"enrolledAt"`
	Status     EnrollmentStatus `db:"status" json:"status"`
	Grade      *string          `db:"grade" json:"grade,omitempty"`
	Remarks    *string          `db:"remarks" json:"remarks,omitempty"`
}

// EnrollmentDetail enriches an enrollment with subject and slot info.
type EnrollmentDetail struct {
	Enrollment
	CourseCode        string `db:"course_code" json:"courseCode"`
	CourseDescription string `db:"course_description" json:"courseDescription"`
	Units             int    `db:"units" json:"units"`
	DayOfWeek         string `db:"day_of_week" json:"dayOfWeek"`
	StartTime         string `db:"start_time" json:"startTime"`
	EndTime           string `db:"end_time" json:"endTime"`
	Room              string `db:"room" json:"room"`
}

// EnrollmentFilter provides filters for listing enrollments.
type EnrollmentFilter struct {
	StudentID  string
	ScheduleID string
	Status     EnrollmentStatus
	Page       int
	PageSize   int
}

// MonthlyEnrollmentCount is one month bucket of the trailing enrollment trend.
type MonthlyEnrollmentCount struct {
	Month string `db:"month" json:"month"`
	Count int    `db:"count" json:"count"`
}
