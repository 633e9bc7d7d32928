// File: /errs/errs.go

// Package errs defines the error kinds the handlers distinguish between.
//
// A validation error is the caller's fault and maps to 400. Business rule
// and infrastructure errors both map to 500 but keep separate kinds so logs
// and metrics can tell a bad load_capacity apart from a dead database.
package errs

import (
	"errors"
	"net/http"
)

// Kind classifies an error for status mapping and reporting.
type Kind uint8

const (
	KindValidation Kind = iota + 1
	KindBusinessRule
	KindInfrastructure
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindBusinessRule:
		return "business_rule"
	case KindInfrastructure:
		return "infrastructure"
	default:
		return "unknown"
	}
}

// Error is a tagged error carrying its Kind and, when relevant, the payload
// field it relates to.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError reports a missing body or a missing/null field.
func NewValidationError(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// NewBusinessRuleError reports a value that is present but not acceptable,
// such as a negative load_capacity.
func NewBusinessRuleError(field, message string) *Error {
	return &Error{Kind: KindBusinessRule, Field: field, Message: message}
}

// WrapBusinessRule tags err as a business rule failure (e.g. not found).
func WrapBusinessRule(err error) *Error {
	return &Error{Kind: KindBusinessRule, Err: err}
}

// WrapInfrastructure tags err as a database or runtime failure.
func WrapInfrastructure(err error) *Error {
	return &Error{Kind: KindInfrastructure, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain. Untagged
// errors count as infrastructure failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInfrastructure
}

// StatusCode maps err to the status code sent back to the caller.
func StatusCode(err error) int {
	if KindOf(err) == KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
