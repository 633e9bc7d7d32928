// File: /routes/gateway.go
package routes

import (
	"context"
	"io"
	"net/http"
	"strings"
	"tricycle-api/middleware"
	"tricycle-api/utils"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
)

// LambdaHandler is the signature shared by the tricycle handlers.
type LambdaHandler func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Gateway serves a Lambda handler over gin the way API Gateway's proxy
// integration would invoke it.
func Gateway(handler LambdaHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorResponse{
				Error:   "Bad request",
				Message: "Request body could not be read",
				Code:    http.StatusBadRequest,
			})
			return
		}

		resp, err := handler(c.Request.Context(), toProxyRequest(c, string(body)))
		if err != nil {
			_ = c.Error(err)
			return
		}

		contentType := "application/json"
		for key, value := range resp.Headers {
			if strings.EqualFold(key, "Content-Type") {
				contentType = value
				continue
			}
			c.Header(key, value)
		}
		for key, values := range resp.MultiValueHeaders {
			for _, value := range values {
				c.Writer.Header().Add(key, value)
			}
		}

		c.Data(resp.StatusCode, contentType, []byte(resp.Body))
	}
}

func toProxyRequest(c *gin.Context, body string) events.APIGatewayProxyRequest {
	headers := make(map[string]string, len(c.Request.Header))
	for key, values := range c.Request.Header {
		if len(values) > 0 {
			headers[key] = values[0]
		}
	}

	query := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			query[key] = values[0]
		}
	}

	return events.APIGatewayProxyRequest{
		Resource:                        c.FullPath(),
		Path:                            c.Request.URL.Path,
		HTTPMethod:                      c.Request.Method,
		Headers:                         headers,
		MultiValueHeaders:               c.Request.Header.Clone(),
		QueryStringParameters:           query,
		MultiValueQueryStringParameters: c.Request.URL.Query(),
		Body:                            body,
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:  c.GetString(middleware.ContextRequestID),
			Stage:      "local",
			HTTPMethod: c.Request.Method,
			Path:       c.Request.URL.Path,
			Identity: events.APIGatewayRequestIdentity{
				SourceIP:  c.ClientIP(),
				UserAgent: c.Request.UserAgent(),
			},
		},
	}
}

// SetupCORS attaches the fixed cross-origin headers to every response and
// answers preflight requests directly.
func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		for key, value := range utils.CORSHeaders() {
			c.Header(key, value)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
