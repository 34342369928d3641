package dto

import (
	"time"

	"github.com/citc-dev/registrar-api/internal/models"
)

// RequestStatusCounts breaks down document requests by processing state.
type RequestStatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Ready    int `json:"ready"`
	Released int `json:"released"`
	Rejected int `json:"rejected"`
}

// RegistrationStatusCounts breaks down registrations by review state.
type RegistrationStatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// GenderCounts breaks down students by gender.
type GenderCounts struct {
	Male   int `json:"male"`
	Female int `json:"female"`
}

// YearLevelCounts buckets students by canonical year level.
type YearLevelCounts struct {
	FirstYear  int `json:"firstYear"`
	SecondYear int `json:"secondYear"`
	ThirdYear  int `json:"thirdYear"`
	FourthYear int `json:"fourthYear"`
}

// SemesterCounts buckets registrations by canonical semester.
type SemesterCounts struct {
	First  int `json:"first"`
	Second int `json:"second"`
	Summer int `json:"summer"`
}

// DashboardStatistics is the assembled dashboard payload. Every figure comes
// from an independent aggregate; a failed sub-query leaves its section zeroed.
type DashboardStatistics struct {
	TotalStudents      int                             `json:"totalStudents"`
	TotalCourses       int                             `json:"totalCourses"`
	Requests           RequestStatusCounts             `json:"requests"`
	Registrations      RegistrationStatusCounts        `json:"registrations"`
	Gender             GenderCounts                    `json:"gender"`
	YearLevels         YearLevelCounts                 `json:"yearLevels"`
	Semesters          SemesterCounts                  `json:"semesters"`
	EnrollmentsByMonth []models.MonthlyEnrollmentCount `json:"enrollmentsByMonth"`
	GeneratedAt        time.Time                       `json:"generatedAt"`
}
