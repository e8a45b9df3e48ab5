// Package idgen provides ID generation utilities for the application.
// It encapsulates the ID generation implementation, making it easy to change
// the underlying ID generation strategy in the future.
//
// Block identifiers are assigned when content is appended to a section, not
// at render time, so that rendering the same report twice produces
// byte-identical output.
package idgen

import (
	"github.com/rs/xid"
)

// NewID generates a new globally unique, sortable identifier.
// Returns a 20-character string using xid format.
// The generated ID is:
// - Globally unique
// - Sortable by creation time
// - URL-safe (base32 encoded)
// - 20 characters long
func NewID() string {
	return xid.New().String()
}

// NewTableID generates a unique DOM id for a table element.
// The "tbl-" prefix keeps ids readable when inspecting rendered documents.
func NewTableID() string {
	return "tbl-" + NewID()
}

// NewChartID generates a unique DOM id for a chart container element.
func NewChartID() string {
	return "cht-" + NewID()
}

// NewBlockID generates a unique id for a content block.
func NewBlockID() string {
	return "blk-" + NewID()
}

// NewSectionID generates a unique DOM id for a section region.
func NewSectionID() string {
	return "sec-" + NewID()
}
