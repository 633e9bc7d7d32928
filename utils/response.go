// File: /utils/response.go
package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"tricycle-api/errs"

	"github.com/aws/aws-lambda-go/events"
)

const (
	HeaderAllowHeaders = "Access-Control-Allow-Headers"
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
)

// CORSHeaders returns the headers attached to every response. A fresh map is
// returned each call so callers may add to it.
func CORSHeaders() map[string]string {
	return map[string]string{
		HeaderAllowHeaders: "*",
		HeaderAllowOrigin:  "*",
		HeaderAllowMethods: "OPTIONS,POST,GET,PUT,DELETE",
	}
}

// SendJSON serializes data as the response body.
func SendJSON(status int, data interface{}) events.APIGatewayProxyResponse {
	body, err := encode(data)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = encode("An error occurred while encoding the response: " + err.Error())
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    CORSHeaders(),
		Body:       body,
	}
}

// SendMessage returns a response whose body is a JSON string.
func SendMessage(status int, message string) events.APIGatewayProxyResponse {
	return SendJSON(status, message)
}

// SendError formats err according to its kind. action completes the
// sentence "An error occurred while ...", e.g. "deleting the tricycle".
func SendError(err error, action string) events.APIGatewayProxyResponse {
	status := errs.StatusCode(err)
	if status == http.StatusBadRequest {
		return SendMessage(status, "A validation error occurred: "+err.Error())
	}
	return SendMessage(status, fmt.Sprintf("An error occurred while %s: %s", action, err.Error()))
}

func encode(data interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
