package pathutil

import (
	"regexp"
	"strings"
)

var (
	nonWordRun       = regexp.MustCompile(`[^A-Za-z0-9_]+`)
	underscoreRun    = regexp.MustCompile(`_+`)
	nonAnchorCharRun = regexp.MustCompile(`[^A-Za-z0-9.]+`)
)

// UniqueID derives an anchor-safe identifier from a full resource URL.
// Every non-word character becomes an underscore, underscore runs collapse
// to one, and a leading or trailing underscore is dropped:
//
//	UniqueID("/orders/{orderId}/items") == "orders_orderId_items"
func UniqueID(fullURL string) string {
	id := nonWordRun.ReplaceAllString(fullURL, "_")
	id = underscoreRun.ReplaceAllString(id, "_")
	return strings.Trim(id, "_")
}

// Anchor turns the path part of an api:// link into a fragment identifier.
// Runs of characters other than ASCII letters, digits, and dots become a
// single underscore; surrounding underscores are trimmed.
func Anchor(s string) string {
	return strings.Trim(nonAnchorCharRun.ReplaceAllString(s, "_"), "_")
}
