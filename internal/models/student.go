package models

import "time"

// Student is the student profile row. Its current_* columns are a coarser,
// legacy source of standing consulted only when no registration exists.
type Student struct {
	ID               string    `db:"id" json:"id"`
	UserID           string    `db:"user_id" json:"userId"`
	StudentNo        string    `db:"student_no" json:"studentNo"`
	FullName         string    `db:"full_name" json:"fullName"`
	Gender           string    `db:"gender" json:"gender"`
	BirthDate        *string   `db:"birth_date" json:"birthDate,omitempty"`
	CurrentYearLevel int       `db:"current_year_level" json:"currentYearLevel"`
	CurrentSemester  int       `db:"current_semester" json:"currentSemester"`
	YearOfEntry      int       `db:"year_of_entry" json:"yearOfEntry"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// StudentFilter provides filters for listing students. YearLevel is the
// numeric level (1-4); zero means no filter.
type StudentFilter struct {
	Search    string
	YearLevel int
	Page      int
	PageSize  int
}
