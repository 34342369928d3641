package models

import "time"

// CourseType distinguishes lecture and laboratory components of a subject.
type CourseType string

const (
	CourseTypeLecture    CourseType = "Lecture"
	CourseTypeLaboratory CourseType = "Laboratory"
	CourseTypeBoth       CourseType = "Both"
)

// CurriculumSubject is one curriculum row: a course code may appear once as
// Lecture and once as Laboratory for the same year level and semester.
type CurriculumSubject struct {
	ID                string     `db:"id" json:"id"`
	CourseCode        string     `db:"course_code" json:"courseCode"`
	CourseDescription string     `db:"course_description" json:"courseDescription"`
	Units             int        `db:"units" json:"units"`
	CourseType        CourseType `db:"course_type" json:"courseType"`
	YearLevel         string     `db:"year_level" json:"yearLevel"`
	Semester          string     `db:"semester" json:"semester"`
	Prerequisites     *string    `db:"prerequisites" json:"prerequisites,omitempty"`
	Active            bool       `db:"active" json:"active"`
	CreatedAt         time.Time  `db:"created_at" json:"createdAt"`
}

// CurriculumRow is one flat row of the curriculum/schedule left join. Schedule
// columns are nil when the subject has no schedule for the school year.
type CurriculumRow struct {
	SubjectID         string     `db:"subject_id"`
	CourseCode        string     `db:"course_code"`
	CourseDescription string     `db:"course_description"`
	Units             int        `db:"units"`
	CourseType        CourseType `db:"course_type"`
	Prerequisites     *string    `db:"prerequisites"`
	ScheduleID        *string    `db:"schedule_id"`
	DayOfWeek         *string    `db:"day_of_week"`
	StartTime         *string    `db:"start_time"`
	EndTime           *string    `db:"end_time"`
	Room              *string    `db:"room"`
	Capacity          *int       `db:"capacity"`
	EnrolledCount     *int       `db:"enrolled_count"`
	ScheduleActive    *bool      `db:"schedule_active"`
}

// CurriculumFilter selects the curriculum slice to aggregate.
type CurriculumFilter struct {
	YearLevel  string
	Semester   string
	SchoolYear string
}
