// File: /utils/payload.go
package utils

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"tricycle-api/errs"
)

// Payload is a decoded request body. Numbers are kept as json.Number so
// integers can be told apart from floats.
type Payload map[string]interface{}

// DecodePayload decodes a request body. An empty body or a literal null
// yields a nil Payload, which the validators report as a missing body.
func DecodePayload(body string) (Payload, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}

	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, errs.NewValidationError("", "Request body is not valid JSON")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errs.NewValidationError("", "Request body is not valid JSON")
	}

	switch v := raw.(type) {
	case nil:
		return nil, nil
	case map[string]interface{}:
		return Payload(v), nil
	default:
		return nil, errs.NewValidationError("", "Request body must be a JSON object")
	}
}
