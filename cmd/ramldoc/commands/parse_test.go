package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/ramldoc/internal/testutil"
)

func TestHandleParseText(t *testing.T) {
	stdout, stderr := captureOutput(t)
	path := testutil.WriteTempRAML(t, testutil.OrdersRAML)

	require.NoError(t, HandleParse([]string{path}))

	out := stdout.String()
	assert.Contains(t, out, "Title: Orders API")
	assert.Contains(t, out, "Version: v1")
	assert.Contains(t, out, "Base URI: https://api.example.com/{version}/shop")
	assert.Contains(t, out, "RESOURCE")
	assert.Contains(t, out, "/admin")
	assert.Less(t, strings.Index(out, "/orders"), strings.Index(out, "/customers"))

	diag := stderr.String()
	assert.Contains(t, diag, "RAML Document Parser")
	assert.Contains(t, diag, "Resources: 7")
	assert.Contains(t, diag, "Methods: 8")
}

func TestHandleParseQuiet(t *testing.T) {
	stdout, stderr := captureOutput(t)
	path := testutil.WriteTempRAML(t, testutil.MinimalRAML)

	require.NoError(t, HandleParse([]string{"-q", path}))
	assert.Empty(t, stderr.String())
	assert.Contains(t, stdout.String(), "/ping\t/ping\t1\t0")
}

func TestHandleParseJSON(t *testing.T) {
	stdout, _ := captureOutput(t)
	path := testutil.WriteTempRAML(t, testutil.OrdersRAML)

	require.NoError(t, HandleParse([]string{"-format", "json", "-full", path}))

	var got parseSummary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, "Orders API", got.Title)
	assert.Equal(t, 7, got.ResourceCount)
	assert.Equal(t, 8, got.MethodCount)
	assert.Equal(t, 1, got.TraitCount)
	tree, ok := got.Tree.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Orders API", tree["title"])
}

func TestHandleParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no file", nil, "requires exactly one file path"},
		{"bad format", []string{"-format", "xml", "api.raml"}, "invalid format"},
		{"missing file", []string{"does-not-exist.raml"}, "parsing does-not-exist.raml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureOutput(t)
			err := HandleParse(tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHandleParseHelp(t *testing.T) {
	_, stderr := captureOutput(t)
	assert.NoError(t, HandleParse([]string{"-h"}))
	assert.Contains(t, stderr.String(), "Usage: ramldoc parse")
}
