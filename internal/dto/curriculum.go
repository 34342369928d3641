package dto

// ScheduleEntry is one deduplicated meeting time attached to a grouped
// subject. Two join rows that agree on day, times, room and course type are
// the same entry regardless of which prerequisite row produced them.
type ScheduleEntry struct {
	ID            string `json:"id"`
	DayOfWeek     string `json:"dayOfWeek"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Room          string `json:"room"`
	CourseType    string `json:"courseType"`
	Capacity      int    `json:"capacity"`
	EnrolledCount int    `json:"enrolledCount"`
}

// SubjectView is the grouped representation of one course code: lecture and
// laboratory rows merged, units summed, schedules deduplicated.
type SubjectView struct {
	CourseCode        string          `json:"courseCode"`
	CourseDescription string          `json:"courseDescription"`
	Units             int             `json:"units"`
	CourseTypes       []string        `json:"courseTypes"`
	Prerequisites     string          `json:"prerequisites"`
	HasSchedule       bool            `json:"hasSchedule"`
	ScheduleSummary   string          `json:"scheduleSummary"`
	Schedules         []ScheduleEntry `json:"schedules"`
}

// CurriculumResponse is the curriculum endpoint envelope body.
type CurriculumResponse struct {
	YearLevel         string        `json:"yearLevel"`
	Semester          string        `json:"semester"`
	SchoolYear        string        `json:"schoolYear"`
	Subjects          []SubjectView `json:"subjects"`
	TotalUnits        int           `json:"totalUnits"`
	TotalSubjects     int           `json:"totalSubjects"`
	ScheduledSubjects int           `json:"scheduledSubjects"`
}
