package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citc-dev/registrar-api/internal/models"
	appErrors "github.com/citc-dev/registrar-api/pkg/errors"
	"github.com/citc-dev/registrar-api/pkg/export"
)

type fakeExportReader struct {
	enrollments []models.EnrollmentDetail
	lastFilter  models.EnrollmentFilter
	err         error
}

func (f *fakeExportReader) ListAll(_ context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, error) {
	f.lastFilter = filter
	return f.enrollments, f.err
}

type fakeTabular struct {
	lastData export.Dataset
}

func (f *fakeTabular) Render(data export.Dataset) ([]byte, error) {
	f.lastData = data
	return []byte("csv"), nil
}

func exportRows(n int) []models.EnrollmentDetail {
	rows := make([]models.EnrollmentDetail, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, models.EnrollmentDetail{
			Enrollment:        models.Enrollment{StudentID: fmt.Sprintf("stud-%d", i), Status: models.EnrollmentStatusEnrolled},
			CourseCode:        "CS101",
			CourseDescription: "Intro to Computing",
			Units:             3,
			DayOfWeek:         "Mon",
			StartTime:         "08:00",
			EndTime:           "10:00",
			Room:              "R201",
		})
	}
	return rows
}

func TestEnrollmentReportRendersEveryRow(t *testing.T) {
	// Reports must never be cut at a page boundary; 150 rows is beyond any
	// listing page size.
	reader := &fakeExportReader{enrollments: exportRows(150)}
	csv := &fakeTabular{}
	svc := NewExportService(reader, csv, &fakeRenderer{}, nil)

	_, filename, contentType, err := svc.EnrollmentReport(context.Background(), models.EnrollmentFilter{}, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.True(t, strings.HasPrefix(filename, "enrollments-"))
	assert.Len(t, csv.lastData.Rows, 150)
}

func TestEnrollmentReportTotalMatchesTableLength(t *testing.T) {
	reader := &fakeExportReader{enrollments: exportRows(42)}
	renderer := &fakeRenderer{}
	svc := NewExportService(reader, &fakeTabular{}, renderer, nil)

	_, _, contentType, err := svc.EnrollmentReport(context.Background(), models.EnrollmentFilter{}, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)

	var totalField string
	for _, field := range renderer.lastDoc.Fields {
		if field.Label == "Total Records" {
			totalField = field.Value
		}
	}
	require.NotNil(t, renderer.lastDoc.Table)
	assert.Equal(t, strconv.Itoa(len(renderer.lastDoc.Table.Rows)), totalField)
	assert.Equal(t, "42", totalField)
}

func TestEnrollmentReportPassesFilterThrough(t *testing.T) {
	reader := &fakeExportReader{}
	svc := NewExportService(reader, &fakeTabular{}, &fakeRenderer{}, nil)

	_, _, _, err := svc.EnrollmentReport(context.Background(), models.EnrollmentFilter{
		Status: models.EnrollmentStatusEnrolled,
	}, "csv")
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusEnrolled, reader.lastFilter.Status)
}

func TestEnrollmentReportRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(&fakeExportReader{}, &fakeTabular{}, &fakeRenderer{}, nil)

	_, _, _, err := svc.EnrollmentReport(context.Background(), models.EnrollmentFilter{}, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
