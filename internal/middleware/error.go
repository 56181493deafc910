package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "investmate/internal/errors"
	"investmate/internal/logger"
)

// ErrorHandler renders the last error a handler attached with c.Error, as
// long as nothing has been written yet.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		WriteError(c, c.Errors.Last().Err)
	}
}

// WriteError answers with {"error":{"code","message"}}. AppErrors keep their
// status and code; anything else is logged and becomes a generic 500.
func WriteError(c *gin.Context, err error) {
	log := logger.Named("http")

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		log.Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil {
		log.Errorw("app error",
			"code", appErr.Code,
			"internal", appErr.Internal.Error(),
			"path", c.Request.URL.Path,
		)
	}

	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
