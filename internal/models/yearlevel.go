package models

import "strings"

// YearLevel is the canonical year-level value used across the API.
type YearLevel string

const (
	YearLevelFirst  YearLevel = "1st"
	YearLevelSecond YearLevel = "2nd"
	YearLevelThird  YearLevel = "3rd"
	YearLevelFourth YearLevel = "4th"
)

// Year level has been stored as free-form text across different features and
// eras of the system ("2nd", "2nd Year", "Second Year", "2"). This table is
// the single place those spellings are reconciled.
var yearLevelSynonyms = map[string]YearLevel{
	"1st":         YearLevelFirst,
	"1st year":    YearLevelFirst,
	"first year":  YearLevelFirst,
	"first":       YearLevelFirst,
	"1":           YearLevelFirst,
	"2nd":         YearLevelSecond,
	"2nd year":    YearLevelSecond,
	"second year": YearLevelSecond,
	"second":      YearLevelSecond,
	"2":           YearLevelSecond,
	"3rd":         YearLevelThird,
	"3rd year":    YearLevelThird,
	"third year":  YearLevelThird,
	"third":       YearLevelThird,
	"3":           YearLevelThird,
	"4th":         YearLevelFourth,
	"4th year":    YearLevelFourth,
	"fourth year": YearLevelFourth,
	"fourth":      YearLevelFourth,
	"4":           YearLevelFourth,
}

// CanonicalYearLevel maps a stored year-level spelling to its canonical value.
func CanonicalYearLevel(raw string) (YearLevel, bool) {
	level, ok := yearLevelSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return level, ok
}

// Ordinal returns the numeric year level (1-4), or zero for unknown values.
func (y YearLevel) Ordinal() int {
	switch y {
	case YearLevelFirst:
		return 1
	case YearLevelSecond:
		return 2
	case YearLevelThird:
		return 3
	case YearLevelFourth:
		return 4
	}
	return 0
}

// Semester is the canonical semester value used across the API.
type Semester string

const (
	SemesterFirst  Semester = "1st"
	SemesterSecond Semester = "2nd"
	SemesterSummer Semester = "Summer"
)

var semesterSynonyms = map[string]Semester{
	"1st":          SemesterFirst,
	"1st semester": SemesterFirst,
	"first":        SemesterFirst,
	"1":            SemesterFirst,
	"2nd":          SemesterSecond,
	"2nd semester": SemesterSecond,
	"second":       SemesterSecond,
	"2":            SemesterSecond,
	"summer":       SemesterSummer,
	"midyear":      SemesterSummer,
}

// CanonicalSemester maps a stored semester spelling to its canonical value.
func CanonicalSemester(raw string) (Semester, bool) {
	semester, ok := semesterSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return semester, ok
}
