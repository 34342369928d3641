package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderKeepsHeaderOrder(t *testing.T) {
	exporter := NewCSVExporter()
	out, err := exporter.Render(Dataset{
		Headers: []string{"Course Code", "Units"},
		Rows: []map[string]string{
			{"Units": "3", "Course Code": "CS101"},
			{"Course Code": "GE01"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Course Code,Units\nCS101,3\nGE01,\n", string(out))
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}
