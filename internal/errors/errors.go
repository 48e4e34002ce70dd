// Package errors holds CraftUI's sentinel errors, its typed errors and the
// helpers that classify them.
//
// Typed errors carry context for one subsystem:
//   - CatalogError: resolving component docs
//   - MotionError: parsing animation kinds and easing curves
//   - ClipboardError: clipboard writes, which are always transient
//   - NotFoundError and ValidationError: generic lookups and bad input
//
// Each typed error wraps a sentinel, so callers match with Is:
//
//	if errors.Is(err, errors.ErrDocNotFound) { ... }
//
// The package re-exports the standard library helpers so callers need only
// one errors import.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity ranks how loudly an error should be reported.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

var severityNames = [...]string{"debug", "info", "warning", "error"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// Catalog
var (
	ErrDocNotFound      = New("component doc not found")
	ErrCatalogEmpty     = New("catalog has no published components")
	ErrCatalogCorrupted = New("catalog data corrupted")
)

// Motion
var (
	ErrUnknownAnimation = New("unknown animation")
	ErrInvalidEasing    = New("invalid easing")
)

// Environment and input
var (
	// ErrClipboardUnavailable means no clipboard backend accepted the write.
	ErrClipboardUnavailable = New("clipboard unavailable")
	ErrInvalidInput         = New("invalid input")
	// ErrNotTerminal means an interactive command was run without a TTY.
	ErrNotTerminal = New("not a terminal")
)

// CraftError is implemented by every typed error in this package.
type CraftError interface {
	error
	Unwrap() error
	Severity() Severity
	// IsTransient reports a failure of the environment that the caller
	// recovers from locally.
	IsTransient() bool
	// IsUserFacing reports whether the message reads well on its own.
	IsUserFacing() bool
}

type baseError struct {
	message    string
	cause      error
	severity   Severity
	transient  bool
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *baseError) Unwrap() error      { return e.cause }
func (e *baseError) Severity() Severity { return e.severity }
func (e *baseError) IsTransient() bool  { return e.transient }
func (e *baseError) IsUserFacing() bool { return e.userFacing }

// CatalogError reports a failed catalog lookup or load.
type CatalogError struct {
	baseError
	Slug string
	Mode string
}

// NewCatalogError wraps cause, usually one of the catalog sentinels.
func NewCatalogError(message string, cause error) *CatalogError {
	return &CatalogError{baseError: baseError{
		message:    message,
		cause:      cause,
		severity:   SeverityError,
		userFacing: true,
	}}
}

func (e *CatalogError) WithSlug(slug string) *CatalogError {
	e.Slug = slug
	return e
}

func (e *CatalogError) WithMode(mode string) *CatalogError {
	e.Mode = mode
	return e
}

// Error renders as "catalog error [slug=x, mode=y]: message: cause".
func (e *CatalogError) Error() string {
	var ctx []string
	if e.Slug != "" {
		ctx = append(ctx, "slug="+e.Slug)
	}
	if e.Mode != "" {
		ctx = append(ctx, "mode="+e.Mode)
	}
	prefix := "catalog error"
	if len(ctx) > 0 {
		prefix += " [" + strings.Join(ctx, ", ") + "]"
	}
	return prefix + ": " + e.baseError.Error()
}

func (e *CatalogError) Is(target error) bool {
	_, ok := target.(*CatalogError)
	return ok
}

// MotionError reports an animation or easing string that did not parse.
type MotionError struct {
	baseError
	Input string
}

func NewMotionError(input string, cause error) *MotionError {
	return &MotionError{
		baseError: baseError{
			message:    fmt.Sprintf("cannot parse %q", input),
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
		Input: input,
	}
}

func (e *MotionError) Is(target error) bool {
	_, ok := target.(*MotionError)
	return ok
}

// ClipboardError reports a failed clipboard write. Callers fall back to
// their unconfirmed state rather than surfacing it.
type ClipboardError struct {
	baseError
	Backend string
}

func NewClipboardError(backend string, cause error) *ClipboardError {
	return &ClipboardError{
		baseError: baseError{
			message:   backend + " clipboard write failed",
			cause:     cause,
			severity:  SeverityWarning,
			transient: true,
		},
		Backend: backend,
	}
}

// Is matches any ClipboardError and ErrClipboardUnavailable, whatever the
// underlying cause.
func (e *ClipboardError) Is(target error) bool {
	if _, ok := target.(*ClipboardError); ok {
		return true
	}
	return target == ErrClipboardUnavailable
}

// NotFoundError reports a missing resource, e.g. "component 'popover' not found".
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// ValidationError reports bad input. It always wraps ErrInvalidInput.
type ValidationError struct {
	baseError
	Field string
	Value any
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{baseError: baseError{
		message:    message,
		cause:      ErrInvalidInput,
		severity:   SeverityWarning,
		userFacing: true,
	}}
}

func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s (got: %v)", e.Field, e.message, e.Value)
	}
	return "validation failed: " + e.message
}

func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// IsTransient reports whether err is an environment failure the caller
// should recover from locally, such as a denied clipboard write.
func IsTransient(err error) bool {
	var ce CraftError
	if As(err, &ce) {
		return ce.IsTransient()
	}
	return err != nil && Is(err, ErrClipboardUnavailable)
}

// IsUserFacing reports whether err's message can be shown as is.
func IsUserFacing(err error) bool {
	var ce CraftError
	return As(err, &ce) && ce.IsUserFacing()
}

// GetSeverity returns err's severity. Foreign errors count as SeverityError
// and nil as SeverityDebug.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var ce CraftError
	if As(err, &ce) {
		return ce.Severity()
	}
	return SeverityError
}
