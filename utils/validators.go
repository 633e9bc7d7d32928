// File: /utils/validators.go
package utils

import (
	"encoding/json"
	"fmt"
	"tricycle-api/errs"
)

// FieldMessages holds the fmt patterns used when a required field is
// missing or null. Each pattern takes the field name.
type FieldMessages struct {
	Missing string
	Null    string
}

var (
	// AttributeMessages is the wording of the save and update handlers.
	AttributeMessages = FieldMessages{
		Missing: "The %s attribute is required",
		Null:    "The %s attribute cannot be null",
	}

	// BareMessages is the wording of the delete handler.
	BareMessages = FieldMessages{
		Missing: "%s is required",
		Null:    "%s cannot be null",
	}
)

// ValidateRequired checks that the payload exists and that every field is
// present and not null. The first failure wins.
func ValidateRequired(payload Payload, fields ...string) error {
	return ValidateRequiredWith(AttributeMessages, payload, fields...)
}

// ValidateRequiredWith is ValidateRequired with caller supplied wording.
func ValidateRequiredWith(messages FieldMessages, payload Payload, fields ...string) error {
	if payload == nil {
		return errs.NewValidationError("", "Request does not contain a body")
	}

	for _, field := range fields {
		value, ok := payload[field]
		if !ok {
			return errs.NewValidationError(field, fmt.Sprintf(messages.Missing, field))
		}
		if value == nil {
			return errs.NewValidationError(field, fmt.Sprintf(messages.Null, field))
		}
	}

	return nil
}

// NonNegativeInt returns field as an int64. A value that is not a JSON
// integer, or is negative, is a business rule violation rather than a
// validation error. Zero is accepted.
func NonNegativeInt(payload Payload, field string) (int64, error) {
	number, ok := payload[field].(json.Number)
	if !ok {
		return 0, errs.NewBusinessRuleError(field, field+" must be an integer")
	}

	value, err := number.Int64()
	if err != nil {
		return 0, errs.NewBusinessRuleError(field, field+" must be an integer")
	}

	if value < 0 {
		return 0, errs.NewBusinessRuleError(field, field+" must be a positive number")
	}

	return value, nil
}

// String returns field as a string. Any other JSON type is a business rule
// violation.
func String(payload Payload, field string) (string, error) {
	value, ok := payload[field].(string)
	if !ok {
		return "", errs.NewBusinessRuleError(field, field+" must be a string")
	}
	return value, nil
}
