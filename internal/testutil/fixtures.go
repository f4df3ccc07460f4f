// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"
)

// MinimalRAML is the smallest document the parser accepts with resources.
const MinimalRAML = `#%RAML 0.8
title: Minimal API
/ping:
  get:
    description: Health check.
`

// OrdersRAML declares its top-level resources out of alphabetical order and
// exercises uri parameters, privacy markers, traits, and securedBy.
const OrdersRAML = `#%RAML 0.8
title: Orders API
version: v1
baseUri: https://api.example.com/{version}/shop
securitySchemes:
  - oauth_2_0:
      type: OAuth 2.0
securedBy: [null, oauth_2_0]
traits:
  - paged:
      queryParameters:
        page:
          type: integer
          description: Page number. Starts at 1.
/orders:
  displayName: Orders
  description: Orders placed by customers. Supports **paging**.
  is: [paged]
  get:
    description: List orders
  post:
    is: [private]
    description: Create an order. Internal only.
  /{orderId}:
    uriParameters:
      orderId:
        type: string
        description: Order identifier.
    get:
      description: Fetch one order.
    /items:
      get:
        description: Items of the order.
      /{itemId}:
        uriParameters:
          itemId:
            type: integer
        delete:
          description: Remove an item.
/admin:
  is: [private]
  description: Administration.
  get:
    description: Admin dashboard.
  /users:
    get:
      description: List users.
/customers:
  description: Customer accounts
  get:
    securedBy: [oauth_2_0]
`

// WriteTempRAML writes content to api.raml in a fresh temporary directory
// and returns the file path.
func WriteTempRAML(t *testing.T, content string) string {
	t.Helper()
	return WriteTree(t, map[string]string{"api.raml": content})["api.raml"]
}

// WriteTree writes files (relative path to content) below a fresh temporary
// directory and returns the absolute path of each file, keyed like files.
// The directory itself is available as filepath.Dir of any entry at the top
// level, or via the "" key.
func WriteTree(t *testing.T, files map[string]string) map[string]string {
	t.Helper()
	dir := t.TempDir()
	out := map[string]string{"": dir}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("Failed to write %s: %v", rel, err)
		}
		out[rel] = path
	}
	return out
}

// WriteTempYAML marshals doc to YAML and writes it to a temporary file
// with the given name, returning the path.
func WriteTempYAML(t *testing.T, name string, doc any) string {
	t.Helper()
	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal YAML: %v", err)
	}
	return WriteTree(t, map[string]string{name: string(data)})[name]
}
