package timetree

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixtureReport(t *testing.T) Report {
	data, err := os.ReadFile("testdata/reports/nested.json")
	require.NoError(t, err)

	report, err := ParseReport(data)
	require.NoError(t, err)
	return report
}

func TestWriteReport(t *testing.T) {
	report := loadFixtureReport(t)

	tests := []struct {
		name    string
		format  string
		check   func(t *testing.T, out string)
		wantErr bool
	}{
		{
			name:   "text",
			format: FormatText,
			check: func(t *testing.T, out string) {
				assert.Equal(t, report.String(), out)
			},
		},
		{
			name:   "default",
			format: "",
			check: func(t *testing.T, out string) {
				assert.Equal(t, report.String(), out)
			},
		},
		{
			name:   "json",
			format: FormatJSON,
			check: func(t *testing.T, out string) {
				parsed, err := ParseReport([]byte(out))
				require.NoError(t, err)
				assert.Equal(t, report, parsed)
			},
		},
		{
			name:   "yaml",
			format: FormatYAML,
			check: func(t *testing.T, out string) {
				parsed, err := ParseReport([]byte(out))
				require.NoError(t, err)
				assert.Equal(t, report, parsed)
			},
		},
		{
			name:   "table",
			format: FormatTable,
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "(total)")
				assert.Contains(t, out, "long")
				assert.Contains(t, out, " x ")
				assert.Contains(t, out, "2.000000")
				assert.Contains(t, out, "25.0%")
			},
		},
		{
			name:    "unknown",
			format:  "xml",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := WriteReport(&buf, report, tt.format, false)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.check(t, buf.String())
		})
	}
}

func TestRenderTable_Color(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, loadFixtureReport(t), true)

	out := buf.String()
	assert.Contains(t, out, "long")
	assert.Equal(t, 1, strings.Count(out, "(total)"))
}

func Test_countRegions(t *testing.T) {
	assert.Equal(t, 3, countRegions(loadFixtureReport(t)))
	assert.Equal(t, 0, countRegions(Report{}))
}
