package serializer

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response wraps non-error payloads that are not plain resources.
type Response struct {
	Code int         `json:"code"`
	Data interface{} `json:"data,omitempty"`
	Msg  string      `json:"msg"`
}

const (
	CodeAuthRequired  = "AUTH_REQUIRED"
	CodeAuthForbidden = "AUTH_FORBIDDEN"
	CodeNotFound      = "RESOURCE_NOT_FOUND"
	CodeValidation    = "VALIDATION_FAILED"
	CodeConflict      = "CONFLICT"
	CodeRateLimited   = "RATE_LIMITED"
	CodeServerError   = "SERVER_ERROR"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// Abort writes the error body and stops the handler chain.
func Abort(c *gin.Context, status int, body ErrorResponse) {
	c.AbortWithStatusJSON(status, body)
}

func AuthRequired() ErrorResponse {
	return ErrorResponse{Code: CodeAuthRequired, Message: "Authentication required"}
}

func AuthForbidden() ErrorResponse {
	return ErrorResponse{Code: CodeAuthForbidden, Message: "You do not have permission to access this resource"}
}

func NotFound(msg string) ErrorResponse {
	if msg == "" {
		msg = "Resource not found"
	}
	return ErrorResponse{Code: CodeNotFound, Message: msg}
}

func ValidationErr(details []string) ErrorResponse {
	return ErrorResponse{Code: CodeValidation, Message: "Validation failed", Details: details}
}

// ParamErr reports a malformed request, such as an unreadable body.
func ParamErr(msg string) ErrorResponse {
	if msg == "" {
		msg = "Invalid request"
	}
	return ErrorResponse{Code: CodeValidation, Message: msg}
}

func Conflict(msg string) ErrorResponse {
	return ErrorResponse{Code: CodeConflict, Message: msg}
}

func RateLimited() ErrorResponse {
	return ErrorResponse{Code: CodeRateLimited, Message: "Too many requests"}
}

// ServerErr never exposes err to the caller; the handler logs it instead.
func ServerErr(msg string) ErrorResponse {
	if msg == "" {
		msg = "Internal server error"
	}
	return ErrorResponse{Code: CodeServerError, Message: msg}
}

// Health is the body of the liveness probe.
func Health() Response {
	return Response{Code: http.StatusOK, Msg: "ok"}
}
