package handlers

import (
	"github.com/gin-gonic/gin"

	apperrors "investmate/internal/errors"
	"investmate/internal/middleware"
	"investmate/internal/uuid"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// SuccessResponse is returned by operations that have no body of their own.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID, ok := middleware.UserID(c)
	if !ok || userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// parsePathID validates a UUID path parameter.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}
