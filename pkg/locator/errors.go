// Package locator defines the element descriptors uicheck validates.
// This file defines the typed errors the loader reports.
package locator

import "fmt"

// NotFoundError reports a locator file path that does not exist on disk.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("locator file '%s' does not exist", e.Path)
}

// ParseError reports a locator file that exists but cannot be decoded into
// a well-formed element list.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed locator file '%s': %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
