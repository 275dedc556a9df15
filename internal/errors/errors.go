// Package errors provides centralized error definitions and error handling
// utilities for the hueify codebase. It defines domain-specific errors,
// error constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// The package provides two domain-specific error types:
//
//   - ConfigError: invalid filter rule patterns, unknown matcher kinds or
//     actions, and malformed level-to-color mappings. These surface at
//     configuration/rule-set construction time, never lazily during a render.
//   - TraceError: malformed trace input detected while walking a captured
//     exception chain (cycles beyond the depth bound, frames missing
//     required fields). These are recovered locally by truncating and
//     inserting a placeholder line; they never fail an entire render.
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewConfigError("invalid filter pattern", errors.ErrInvalidPattern).
//	    WithRule(3).WithPattern("[bad")
//
//	err := errors.NewTraceError("cause chain exceeds depth bound", errors.ErrChainTooDeep).
//	    WithDepth(32)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrInvalidPattern) { ... }
//
//	var cfgErr *errors.ConfigError
//	if errors.As(err, &cfgErr) { ... }
//
//	if errors.IsMalformedTrace(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Configuration-related sentinel errors
var (
	// ErrInvalidPattern indicates that a filter rule pattern failed to compile.
	ErrInvalidPattern = New("invalid filter pattern")
	// ErrUnknownMatcher indicates an unrecognized matcher kind in a rule spec.
	ErrUnknownMatcher = New("unknown matcher kind")
	// ErrUnknownAction indicates a rule action other than keep or drop.
	ErrUnknownAction = New("unknown rule action")
	// ErrUnknownLevel indicates a level name in the color mapping that is not
	// a recognized log level.
	ErrUnknownLevel = New("unknown log level")
	// ErrUnknownTag indicates a color tag name that the renderer does not define.
	ErrUnknownTag = New("unknown color tag")
)

// Trace-related sentinel errors
var (
	// ErrChainTooDeep indicates that a cause chain exceeded the configured
	// depth bound, which usually means the chain is cyclic.
	ErrChainTooDeep = New("exception chain exceeds depth bound")
	// ErrMalformedFrame indicates a frame record missing required fields.
	ErrMalformedFrame = New("malformed stack frame")
	// ErrEmptyRecord indicates an exception record with no type name.
	ErrEmptyRecord = New("exception record has no type")
)

// -----------------------------------------------------------------------------
// ConfigError
// -----------------------------------------------------------------------------

// ConfigError represents an invalid engine configuration: a bad rule pattern,
// an unknown matcher kind or action, or a malformed level-color mapping.
// It is fatal to configuration loading and must never be silently swallowed.
//
// Example:
//
//	err := errors.NewConfigError("pattern does not compile", errors.ErrInvalidPattern)
//	err = err.WithRule(2).WithPattern("pkg.[")
type ConfigError struct {
	message string
	cause   error

	// Rule is the zero-based index of the offending rule, or -1 when the
	// error is not tied to a specific rule.
	Rule    int
	Pattern string
	Field   string
}

// NewConfigError creates a new ConfigError.
func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{
		message: message,
		cause:   cause,
		Rule:    -1,
	}
}

// WithRule records the index of the rule that failed to compile.
func (e *ConfigError) WithRule(index int) *ConfigError {
	e.Rule = index
	return e
}

// WithPattern records the offending pattern text.
func (e *ConfigError) WithPattern(pattern string) *ConfigError {
	e.Pattern = pattern
	return e
}

// WithField records the config field path (e.g. "colors.error").
func (e *ConfigError) WithField(field string) *ConfigError {
	e.Field = field
	return e
}

// Error returns the formatted error message.
func (e *ConfigError) Error() string {
	var parts []string
	if e.Rule >= 0 {
		parts = append(parts, fmt.Sprintf("rule=%d", e.Rule))
	}
	if e.Pattern != "" {
		parts = append(parts, fmt.Sprintf("pattern=%s", e.Pattern))
	}
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}

	prefix := "config error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("config error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *ConfigError) Is(target error) bool {
	if _, ok := target.(*ConfigError); ok {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// -----------------------------------------------------------------------------
// TraceError
// -----------------------------------------------------------------------------

// TraceError represents malformed trace input: a cause chain that exceeds the
// depth bound, or a frame record missing required fields. Callers recover
// locally by truncating the chain or frame list and inserting a placeholder
// line; a broken trace must still produce partial, useful output.
//
// Example:
//
//	err := errors.NewTraceError("cycle suspected", errors.ErrChainTooDeep).WithDepth(32)
type TraceError struct {
	message string
	cause   error

	// Depth is the traversal depth at which the problem was detected,
	// or -1 when not applicable.
	Depth int
	// FrameIndex is the index of the malformed frame, or -1.
	FrameIndex int
}

// NewTraceError creates a new TraceError.
func NewTraceError(message string, cause error) *TraceError {
	return &TraceError{
		message:    message,
		cause:      cause,
		Depth:      -1,
		FrameIndex: -1,
	}
}

// WithDepth records the chain depth at which traversal stopped.
func (e *TraceError) WithDepth(depth int) *TraceError {
	e.Depth = depth
	return e
}

// WithFrameIndex records the index of the malformed frame.
func (e *TraceError) WithFrameIndex(index int) *TraceError {
	e.FrameIndex = index
	return e
}

// Error returns the formatted error message.
func (e *TraceError) Error() string {
	var parts []string
	if e.Depth >= 0 {
		parts = append(parts, fmt.Sprintf("depth=%d", e.Depth))
	}
	if e.FrameIndex >= 0 {
		parts = append(parts, fmt.Sprintf("frame=%d", e.FrameIndex))
	}

	prefix := "trace error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("trace error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Unwrap returns the underlying error.
func (e *TraceError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *TraceError) Is(target error) bool {
	if _, ok := target.(*TraceError); ok {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsConfig returns true if the error is (or wraps) a ConfigError.
// Configuration errors are fatal to loading and should abort startup.
func IsConfig(err error) bool {
	if err == nil {
		return false
	}
	var cfgErr *ConfigError
	return As(err, &cfgErr)
}

// IsMalformedTrace returns true if the error is (or wraps) a TraceError.
// Malformed-trace errors are recoverable: the renderer truncates and
// continues rather than dropping the whole log record.
func IsMalformedTrace(err error) bool {
	if err == nil {
		return false
	}
	var traceErr *TraceError
	return As(err, &traceErr)
}

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to compile rule set")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
