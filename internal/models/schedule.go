package models

import "time"

// ScheduleSlot is one bookable meeting time for a subject in a school year.
type ScheduleSlot struct {
	ID            string     `db:"id" json:"id"`
	SubjectID     string     `db:"subject_id" json:"subjectId"`
	SchoolYear    string     `db:"school_year" json:"schoolYear"`
	DayOfWeek     string     `db:"day_of_week" json:"dayOfWeek"`
	StartTime     string     `db:"start_time" json:"startTime"`
	EndTime       string     `db:"end_time" json:"endTime"`
	Room          string     `db:"room" json:"room"`
	Capacity      int        `db:"capacity" json:"capacity"`
	EnrolledCount int        `db:"enrolled_count" json:"enrolledCount"`
	Active        bool       `db:"active" json:"active"`
	CourseType    CourseType `db:"course_type" json:"courseType"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
}

// ScheduleSlotDetail enriches a slot with its subject for list endpoints.
type ScheduleSlotDetail struct {
	ScheduleSlot
	CourseCode        string `db:"course_code" json:"courseCode"`
	CourseDescription string `db:"course_description" json:"courseDescription"`
	Units             int    `db:"units" json:"units"`
}
