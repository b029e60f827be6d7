package storage

import (
	"errors"
	"fmt"
)

// Common storage errors. The container/object variants wrap the generic
// sentinel so errors.Is matches both the specific and the generic form.
var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = errors.New("storage: resource not found")

	// ErrContainerNotFound indicates the named container does not exist
	ErrContainerNotFound = fmt.Errorf("container not found: %w", ErrNotFound)

	// ErrObjectNotFound indicates the named object does not exist
	ErrObjectNotFound = fmt.Errorf("object not found: %w", ErrNotFound)

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("storage: resource already exists")

	// ErrContainerAlreadyExists indicates a container name collision on creation
	ErrContainerAlreadyExists = fmt.Errorf("container already exists: %w", ErrAlreadyExists)

	// ErrAccessDenied indicates the request was unauthorized or forbidden
	ErrAccessDenied = errors.New("storage: access denied")

	// ErrMalformedResponse indicates a provider record was missing a
	// required field. This is a contract violation, not a recoverable
	// condition.
	ErrMalformedResponse = errors.New("storage: malformed provider response")
)

// Error carries the operation, resource path and provider alongside the
// underlying failure.
type Error struct {
	Op       string
	Path     string
	Provider string
	Err      error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("storage %s: %s failed for %s: %v", e.Provider, e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("storage %s: %s failed: %v", e.Provider, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewError wraps err with operation context.
func NewError(op, path, provider string, err error) error {
	return &Error{
		Op:       op,
		Path:     path,
		Provider: provider,
		Err:      err,
	}
}

// IsNotFound reports whether err indicates a missing container or object.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists reports whether err indicates a name collision.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsAccessDenied reports whether err indicates an authorization failure.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsMalformedResponse reports whether err indicates a provider record
// missing a required field.
func IsMalformedResponse(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}
