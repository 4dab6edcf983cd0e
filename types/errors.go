// Package types holds the core data model shared across the replay
// engine: challenges, stages, per-tick player state, and the error
// taxonomy every other package reports through.
package types

import "fmt"

// Kind classifies an Error so callers can branch on category without
// string matching.
type Kind int

const (
	KindEnvironment Kind = iota
	KindInvalidField
	KindIncompleteData
	KindInvalidArgument
	KindFailedPrecondition
	KindDependency
	KindConfig
	KindDataRepository
	KindIo
	KindSql
)

func (k Kind) String() string {
	switch k {
	case KindEnvironment:
		return "environment"
	case KindInvalidField:
		return "invalid_field"
	case KindIncompleteData:
		return "incomplete_data"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindFailedPrecondition:
		return "failed_precondition"
	case KindDependency:
		return "dependency"
	case KindConfig:
		return "config"
	case KindDataRepository:
		return "data_repository"
	case KindIo:
		return "io"
	case KindSql:
		return "sql"
	default:
		return "unknown"
	}
}

// Error is the error type returned throughout the engine. Detail
// carries the kind-specific payload (a field name, a dependency name,
// a precondition description, ...); it may be empty.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, allowing
// errors.Is(err, &types.Error{Kind: types.KindIncompleteData}) checks.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func NewError(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func WrapError(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// InvalidField builds the common "on-disk value out of range" error.
func InvalidField(field string) *Error {
	return NewError(KindInvalidField, field)
}

// IncompleteData signals that expected structure is missing at
// analysis time; analyzers return this to mean "I cannot proceed".
func IncompleteData(detail string) *Error {
	return NewError(KindIncompleteData, detail)
}

// FailedPrecondition signals the engine or a dependency is not in a
// state that permits the requested operation.
func FailedPrecondition(detail string) *Error {
	return NewError(KindFailedPrecondition, detail)
}

// Dependency signals an analyzer required an output its definition
// did not declare as a dependency.
func Dependency(name string) *Error {
	return NewError(KindDependency, name)
}

// Config signals a program-file parse or resolution error.
func Config(detail string) *Error {
	return NewError(KindConfig, detail)
}

// NotFound signals a lookup against a data repository (filesystem,
// object store, relational store) found no matching row or object.
func NotFound(detail string) *Error {
	return NewError(KindDataRepository, detail)
}
