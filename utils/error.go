package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies a domain error for transport mapping.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "not_found"
	KindForbidden         ErrorKind = "forbidden"
	KindInvalidState      ErrorKind = "invalid_state"
	KindConflict          ErrorKind = "conflict"
	KindValidation        ErrorKind = "validation"
	KindLimitExceeded     ErrorKind = "limit_exceeded"
	KindDependencyFailure ErrorKind = "dependency_failure"
)

// AppError carries an error kind alongside a caller-facing message.
type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func NotFoundError(msg string) error {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func ForbiddenError(msg string) error {
	return &AppError{Kind: KindForbidden, Message: msg}
}

func InvalidStateError(msg string) error {
	return &AppError{Kind: KindInvalidState, Message: msg}
}

func ConflictError(msg string) error {
	return &AppError{Kind: KindConflict, Message: msg}
}

func ValidationError(msg string) error {
	return &AppError{Kind: KindValidation, Message: msg}
}

func LimitExceededError(msg string) error {
	return &AppError{Kind: KindLimitExceeded, Message: msg}
}

func DependencyError(msg string) error {
	return &AppError{Kind: KindDependencyFailure, Message: msg}
}

// KindOf extracts the kind from err, or empty when err is not an AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// HTTPStatus maps an error kind to its HTTP status code. The public API
// reports every request-shaped failure as 400, so duplicates, races and the
// proposal cap land there together with validation and state errors.
func HTTPStatus(kind ErrorKind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidState, KindValidation, KindConflict, KindLimitExceeded:
		return http.StatusBadRequest
	case KindDependencyFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes a JSON error response based on the error's kind.
// Non-AppError errors are logged and returned as 500s without leaking details.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(HTTPStatus(appErr.Kind), gin.H{"error": appErr.Message})
		return
	}
	GetLogger().Error("Unhandled service error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// ErrorHandler is a middleware to catch panics and return structured errors.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				c.Abort()
			}
		}()
		c.Next()
	}
}
