package ramlerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates a RAML document could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrInclude indicates an !include target could not be loaded.
	ErrInclude = errors.New("include error")

	// ErrPathTraversal indicates an !include escaped the source root.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrRender indicates a template engine failure.
	ErrRender = errors.New("render error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to parse a RAML document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// IncludeError represents a failure to resolve an !include tag.
type IncludeError struct {
	// Target is the include target as written in the document
	Target string
	// IsPathTraversal is true if the target resolved outside the source root
	IsPathTraversal bool
	// IsCircular is true if the target includes itself, directly or not
	IsCircular bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *IncludeError) Error() string {
	msg := "include error"
	if e.IsPathTraversal {
		msg = "path traversal detected"
	} else if e.IsCircular {
		msg = "circular include"
	}
	if e.Target != "" {
		msg += ": " + e.Target
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *IncludeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrInclude, and ErrPathTraversal when IsPathTraversal is set.
func (e *IncludeError) Is(target error) bool {
	if target == ErrInclude {
		return true
	}
	return target == ErrPathTraversal && e.IsPathTraversal
}

// RenderError represents a template engine failure for one document.
type RenderError struct {
	// Engine is the template engine identifier (e.g., "html", "mustache")
	Engine string
	// Template is the template file that was being rendered
	Template string
	// Document is the logical name of the API document being rendered
	Document string
	// Cause is the underlying engine error
	Cause error
}

// Error returns a human-readable error message.
func (e *RenderError) Error() string {
	msg := "render error"
	if e.Document != "" {
		msg += " for " + e.Document
	}
	if e.Template != "" {
		msg += " with " + e.Template
	}
	if e.Engine != "" {
		msg += " (" + e.Engine + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
