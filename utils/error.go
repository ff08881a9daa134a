package utils

import (
	"errors"
	"net/http"

	"motoslot/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// HTTPStatus maps a domain error to its HTTP status code.
func HTTPStatus(err error) int {
	var de *models.DomainError
	if !errors.As(err, &de) {
		return http.StatusInternalServerError
	}
	switch de.Code {
	case "unauthenticated":
		return http.StatusUnauthorized
	case "permission-denied":
		return http.StatusForbidden
	case "invalid-argument":
		return http.StatusBadRequest
	case "not-found":
		return http.StatusNotFound
	case "failed-precondition", "already-settled":
		return http.StatusConflict
	case "gateway-error":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// JSONDomainError renders a domain error with its mapped status code.
func JSONDomainError(c *gin.Context, err error) {
	var de *models.DomainError
	if errors.As(err, &de) {
		JSONError(c, HTTPStatus(err), de.Message, err.Error())
		return
	}
	JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
}
