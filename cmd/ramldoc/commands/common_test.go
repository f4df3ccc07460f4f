package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput points Stdout and Stderr at buffers for the test.
func captureOutput(t *testing.T) (stdout, stderr *bytes.Buffer) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	oldOut, oldErr := Stdout, Stderr
	Stdout, Stderr = stdout, stderr
	t.Cleanup(func() { Stdout, Stderr = oldOut, oldErr })
	return stdout, stderr
}

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{FormatText, false},
		{FormatJSON, false},
		{FormatYAML, false},
		{"xml", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateScope(t *testing.T) {
	assert.NoError(t, ValidateScope(""))
	assert.NoError(t, ValidateScope("public"))
	assert.NoError(t, ValidateScope("private"))
	err := ValidateScope("internal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scope 'internal'")
}

func TestOutputStructured(t *testing.T) {
	data := map[string]any{"title": "Orders API", "count": 2}

	var buf bytes.Buffer
	require.NoError(t, OutputStructured(&buf, data, FormatJSON))
	assert.Equal(t, "{\n  \"count\": 2,\n  \"title\": \"Orders API\"\n}\n", buf.String())

	buf.Reset()
	require.NoError(t, OutputStructured(&buf, data, FormatYAML))
	assert.Contains(t, buf.String(), "title: Orders API")

	assert.Error(t, OutputStructured(&buf, data, FormatText))
}

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "api.raml", FormatSpecPath("api.raml"))
}

func TestNewLogger(t *testing.T) {
	_, stderr := captureOutput(t)

	NewLogger(false).Debug("hidden")
	NewLogger(false).Warn("shown")
	assert.NotContains(t, stderr.String(), "hidden")
	assert.Contains(t, stderr.String(), "shown")

	stderr.Reset()
	NewLogger(true).Debug("verbose")
	assert.Contains(t, stderr.String(), "verbose")
}

func TestRenderSummaryTable(t *testing.T) {
	rows := [][]string{{"/orders", "3"}, {"/customers", "1"}}

	var buf bytes.Buffer
	RenderSummaryTable(&buf, []string{"URL", "METHODS"}, rows, false)
	assert.Equal(t, "URL         METHODS\n/orders     3\n/customers  1\n", buf.String())

	buf.Reset()
	RenderSummaryTable(&buf, []string{"URL", "METHODS"}, rows, true)
	assert.Equal(t, "/orders\t3\n/customers\t1\n", buf.String())

	buf.Reset()
	RenderSummaryTable(&buf, []string{"URL"}, nil, false)
	assert.Empty(t, buf.String())
}

func TestRenderSummaryStructured(t *testing.T) {
	var buf bytes.Buffer
	err := RenderSummaryStructured(&buf, []string{"URL", "ID"}, [][]string{{"/orders"}}, FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"url": "/orders", "id": ""}]`, buf.String())
}

func TestRenderDetail(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderDetail(&buf, map[string]any{"a": 1}, FormatText))
	assert.Equal(t, "a: 1\n", buf.String())

	assert.Error(t, RenderDetail(&buf, nil, "xml"))
}
