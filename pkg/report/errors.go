package report

import (
	"errors"
	"fmt"
)

// Kind classifies a failure of the agile core.
type Kind string

const (
	KindStructureMissing   Kind = "STRUCTURE_MISSING"
	KindEntityNotFound     Kind = "ENTITY_NOT_FOUND"
	KindDuplicateEntity    Kind = "DUPLICATE_ENTITY"
	KindMalformedDirective Kind = "MALFORMED_DIRECTIVE"
	KindIOFailure          Kind = "IO_FAILURE"
	KindInvalidName        Kind = "INVALID_NAME"
)

// Error is a structured failure carrying its kind and the vault path involved.
type Error struct {
	Kind    Kind
	Message string
	Path    string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewStructureMissing reports an absent root, epic, story or tasks folder.
func NewStructureMissing(path, what string) *Error {
	return &Error{
		Kind:    KindStructureMissing,
		Message: fmt.Sprintf("%s '%s' not found", what, path),
		Path:    path,
	}
}

// NewEntityNotFound reports a named entity that does not resolve to a file.
func NewEntityNotFound(kind, name, path string) *Error {
	return &Error{
		Kind:    KindEntityNotFound,
		Message: fmt.Sprintf("%s '%s' does not exist", kind, name),
		Path:    path,
	}
}

// NewDuplicateEntity reports a creation whose target already exists.
func NewDuplicateEntity(kind, name, path string) *Error {
	return &Error{
		Kind:    KindDuplicateEntity,
		Message: fmt.Sprintf("%s '%s' already exists", kind, name),
		Path:    path,
	}
}

// NewMalformed reports a directive line or content field that failed its pattern.
func NewMalformed(path, format string, args ...any) *Error {
	return &Error{
		Kind:    KindMalformedDirective,
		Message: fmt.Sprintf(format, args...),
		Path:    path,
	}
}

// NewIOFailure wraps an error returned by the vault.
func NewIOFailure(op, path string, err error) *Error {
	return &Error{
		Kind:    KindIOFailure,
		Message: op,
		Path:    path,
		Err:     err,
	}
}

// NewInvalidName reports an entity name that cannot be used as a file name.
func NewInvalidName(kind, name, reason string) *Error {
	return &Error{
		Kind:    KindInvalidName,
		Message: fmt.Sprintf("invalid %s name %q: %s", kind, name, reason),
	}
}

// Is checks if err is, or wraps, an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var rErr *Error
	if errors.As(err, &rErr) {
		return rErr.Kind == kind
	}
	return false
}
