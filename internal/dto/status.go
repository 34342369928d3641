package dto

// EnrolledSubjectView is one currently enrolled subject on the status page.
type EnrolledSubjectView struct {
	CourseCode        string `json:"courseCode"`
	CourseDescription string `json:"courseDescription"`
	Units             int    `json:"units"`
	DayOfWeek         string `json:"dayOfWeek"`
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	Room              string `json:"room"`
	Status            string `json:"status"`
}

// StudentStatusResponse is the best-effort standing of one student. It is
// always populated: when no registration or profile data exists the academic
// fields carry configured defaults and registrationSource is "none".
type StudentStatusResponse struct {
	UserID             string                `json:"userId"`
	FullName           string                `json:"fullName"`
	RegistrationSource string                `json:"registrationSource"`
	YearLevel          string                `json:"yearLevel"`
	Semester           string                `json:"semester"`
	SchoolYear         string                `json:"schoolYear"`
	EnrollmentCount    int                   `json:"enrollmentCount"`
	Subjects           []EnrolledSubjectView `json:"subjects"`
}
