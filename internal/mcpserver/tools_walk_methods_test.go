package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/ramldoc/internal/testutil"
)

const locksRAML = `#%RAML 0.8
title: Locks
traits:
  - paged:
      description: Paged.
/a:
  get:
    securedBy: oauth
  post:
    is: [paged]
    securedBy: [null]
  put:
    securedBy: [null, oauth]
  delete:
    is: [private, paged]
`

func walkMethods(t *testing.T, input walkMethodsInput) walkMethodsOutput {
	t.Helper()
	if input.Spec == (specInput{}) {
		input.Spec = specInput{Content: locksRAML}
	}
	res, out, err := handleWalkMethods(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, res, "unexpected error result")
	output, ok := out.(walkMethodsOutput)
	require.True(t, ok)
	return output
}

func TestWalkMethodsTool_Summaries(t *testing.T) {
	output := walkMethods(t, walkMethodsInput{})
	assert.Equal(t, 3, output.Total)
	assert.Equal(t, 1, output.Filtered, "private delete removed")

	require.Len(t, output.Summaries, 3)
	assert.Equal(t, methodSummary{URL: "/a", Method: "get", Lock: lockInternal, SecuredBy: nil}, output.Summaries[0])
	assert.Equal(t, methodSummary{URL: "/a", Method: "post", Lock: lockNone, Traits: []string{"paged"}, Description: "Paged."}, output.Summaries[1])
	assert.Equal(t, methodSummary{URL: "/a", Method: "put", Lock: lockExternal, SecuredBy: []string{"oauth"}}, output.Summaries[2])
}

func TestWalkMethodsTool_PrivateScope(t *testing.T) {
	output := walkMethods(t, walkMethodsInput{Scope: "private", Method: "delete"})
	require.Len(t, output.Summaries, 1)
	assert.True(t, output.Summaries[0].IsPrivate)
	assert.Equal(t, lockNone, output.Summaries[0].Lock)
}

func TestWalkMethodsTool_InheritedSecurity(t *testing.T) {
	output := walkMethods(t, walkMethodsInput{Spec: specInput{Content: testutil.OrdersRAML}})
	assert.Equal(t, 5, output.Total)
	for _, s := range output.Summaries {
		assert.Equal(t, lockExternal, s.Lock, s.URL+" "+s.Method)
	}
}

func TestWalkMethodsTool_Filters(t *testing.T) {
	tests := []struct {
		name  string
		input walkMethodsInput
		want  []string
	}{
		{"method", walkMethodsInput{Method: "PUT"}, []string{"put"}},
		{"trait", walkMethodsInput{Trait: "paged"}, []string{"post"}},
		{"trait private scope", walkMethodsInput{Trait: "paged", Scope: "private"}, []string{"post", "delete"}},
		{"lock", walkMethodsInput{Lock: "external"}, []string{"put"}},
		{"lock none", walkMethodsInput{Lock: "None"}, []string{"post"}},
		{"path", walkMethodsInput{Path: "/b"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := walkMethods(t, tt.input)
			var got []string
			for _, s := range output.Summaries {
				got = append(got, s.Method)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWalkMethodsTool_Detail(t *testing.T) {
	output := walkMethods(t, walkMethodsInput{Method: "get", Detail: true})
	require.Len(t, output.Methods, 1)
	d := output.Methods[0]
	assert.Equal(t, "/a", d.URL)
	assert.Equal(t, "resources[0].methods[0]", d.Path)
	node, ok := d.Method.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "oauth", node["securedBy"])
	assert.Equal(t, false, node["isPrivate"])
}

func TestWalkMethodsTool_GroupBy(t *testing.T) {
	output := walkMethods(t, walkMethodsInput{GroupBy: "lock"})
	assert.Equal(t, []groupCount{
		{Key: "external", Count: 1},
		{Key: "internal", Count: 1},
		{Key: "none", Count: 1},
	}, output.Groups)

	output = walkMethods(t, walkMethodsInput{GroupBy: "trait", Scope: "private"})
	assert.Equal(t, []groupCount{{Key: "paged", Count: 2}, {Key: "private", Count: 1}}, output.Groups)
}

func TestWalkMethodsTool_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input walkMethodsInput
		want  string
	}{
		{"bad lock", walkMethodsInput{Spec: specInput{Content: locksRAML}, Lock: "red"}, "invalid lock"},
		{"bad group", walkMethodsInput{Spec: specInput{Content: locksRAML}, GroupBy: "depth"}, "invalid group_by"},
		{"bad scope", walkMethodsInput{Spec: specInput{Content: locksRAML}, Scope: "secret"}, "invalid scope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _, err := handleWalkMethods(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.True(t, res.IsError)
			text, ok := res.Content[0].(*mcp.TextContent)
			require.True(t, ok)
			assert.Contains(t, text.Text, tt.want)
		})
	}
}
