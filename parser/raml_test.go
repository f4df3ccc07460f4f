package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resourceTypesRAML = `#%RAML 0.8
title: Types
resourceTypes:
  - collection:
      description: Collection of <<resourcePathName>>
      get:
        description: List all <<resourcePathName | !uppercamelcase>>.
      post?:
        description: Create a <<resourcePathName | !singularize>>.
  - labelled:
      type: collection
      displayName: <<label>>
traits:
  - searchable:
      queryParameters:
        <<field>>:
          description: Search <<methodName>> by <<field>> on <<resourcePath>>.
/users:
  type: collection
  get:
    is: [{searchable: {field: email}}]
/line-items:
  type: collection
  description: Own description wins.
  post:
/tags:
  type: {labelled: {label: All tags}}
`

func TestResourceTypes(t *testing.T) {
	result := parseString(t, resourceTypesRAML)
	require.Empty(t, result.Warnings)
	resources := result.Document.Resources()
	require.Len(t, resources, 3)

	t.Run("type fills missing properties", func(t *testing.T) {
		users := resources[0]
		assert.Equal(t, "Collection of users", users.Description())
		assert.Equal(t, "collection", users.Type())
		assert.Equal(t, []string{"get"}, methodVerbs(users.Methods()), "optional post is not added")

		get := users.Methods()[0]
		assert.Equal(t, "List all Users.", get.Description())
		param := get.QueryParameters().Get("email")
		require.NotNil(t, param, "trait parameter in key is substituted")
		assert.Equal(t, "Search get by email on /users.", param.Get("description").Str())
	})

	t.Run("own properties win and null methods are filled", func(t *testing.T) {
		items := resources[1]
		assert.Equal(t, "Own description wins.", items.Description())
		assert.Equal(t, []string{"post", "get"}, methodVerbs(items.Methods()))
		post := items.Methods()[0]
		assert.Equal(t, "post", post.Verb())
		assert.Equal(t, "Create a line-item.", post.Description())
	})

	t.Run("nested types with parameters", func(t *testing.T) {
		tags := resources[2]
		assert.Equal(t, "All tags", tags.DisplayName())
		assert.Equal(t, "Collection of tags", tags.Description())
		assert.Equal(t, "labelled", tags.Type())
	})
}

func TestTraitPrecedence(t *testing.T) {
	result := parseString(t, `#%RAML 0.8
title: Traits
traits:
  - a:
      description: from a
      headers: {X-A: {type: string}}
  - b:
      description: from b
      headers: {X-B: {type: string}}
/r:
  is: [b]
  get:
    is: [a]
  put:
    description: own
    is: [a]
`)
	methods := result.Document.Resources()[0].Methods()
	require.Len(t, methods, 2)

	get := methods[0]
	assert.Equal(t, "from a", get.Description(), "method traits win over resource traits")
	assert.Equal(t, []string{"X-A", "X-B"}, get.Headers().Keys())
	assert.Equal(t, []string{"a"}, get.Traits(), "resource traits are not copied into the method's is list")

	assert.Equal(t, "own", methods[1].Description())
}

func TestUndeclaredDefinitionsWarn(t *testing.T) {
	result := parseString(t, `#%RAML 0.8
title: Warn
/r:
  type: ghost
  is: [private]
  get:
    is: [phantom]
`)
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], "resource type is not declared type=ghost")
	assert.Contains(t, result.Warnings[1], "trait is not declared trait=phantom")
}

func TestSecuredByDefaults(t *testing.T) {
	result := parseString(t, `#%RAML 0.8
title: Security
securedBy: [basic]
/open:
  securedBy: [null]
  get:
/closed:
  get:
  post:
    securedBy: [oauth]
`)
	resources := result.Document.Resources()
	assert.Equal(t, []any{nil}, resources[0].Methods()[0].SecuredBy().Interface(), "resource securedBy beats root")
	assert.Equal(t, []any{"basic"}, resources[1].Methods()[0].SecuredBy().Interface())
	assert.Equal(t, []any{"oauth"}, resources[1].Methods()[1].SecuredBy().Interface())
}

func TestHTTPMethodsOnly(t *testing.T) {
	result := parseString(t, `#%RAML 0.8
title: Keys
/r:
  displayName: R
  custom: value
  get:
  patch:
  options:
`)
	r := result.Document.Resources()[0]
	assert.Equal(t, []string{"get", "patch", "options"}, methodVerbs(r.Methods()))
	assert.Equal(t, "value", r.Node().Get("custom").Str())
	assert.Equal(t, []string{"relativeUri", "displayName", "custom", "methods"}, r.Node().Keys())
}

func TestResourcePathName(t *testing.T) {
	tests := map[string]string{
		"/orders":                   "orders",
		"/orders/{id}":              "orders",
		"/orders/{id}/items/{item}": "items",
		"/{id}":                     "",
	}
	for in, want := range tests {
		assert.Equal(t, want, resourcePathName(in), in)
	}
}

func TestParamFunctions(t *testing.T) {
	tests := []struct {
		fn, in, want string
	}{
		{"", "users", "users"},
		{"singularize", "users", "user"},
		{"singularize", "categories", "category"},
		{"singularize", "boxes", "box"},
		{"singularize", "status", "statu"},
		{"singularize", "address", "address"},
		{"pluralize", "user", "users"},
		{"pluralize", "category", "categories"},
		{"pluralize", "day", "days"},
		{"pluralize", "box", "boxes"},
		{"uppercase", "users", "USERS"},
		{"lowercase", "USERS", "users"},
		{"uppercamelcase", "line-items", "LineItems"},
		{"lowercamelcase", "line_items", "lineItems"},
		{"lowercamelcase", "Line items", "lineItems"},
		{"unknown", "users", "users"},
	}
	for _, tt := range tests {
		t.Run(tt.fn+"/"+tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, applyParamFunction(tt.fn, tt.in))
		})
	}
}

func TestExpandParamsLeavesUnknown(t *testing.T) {
	params := map[string]string{"resourcePathName": "users"}
	assert.Equal(t, "users and <<missing>>", expandParams("<<resourcePathName>> and <<missing>>", params))
	assert.Equal(t, "plain", expandParams("plain", params))
}
