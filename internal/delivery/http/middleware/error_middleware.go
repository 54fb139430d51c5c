package middleware

import (
	"errors"
	"net/http"

	"go-autofiller-backend/internal/delivery/http/response"
	"go-autofiller-backend/pkg/apperror"
	"go-autofiller-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors appended to the gin context into the
// failure envelope. Coded errors keep their status; anything else becomes
// a 500 whose detail carries the underlying error text, matching the
// contract the extension expects from this internal tool.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError && logger.Log != nil {
				logger.Log.Error("Request failed", "error", appErr.Message, "path", c.FullPath())
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		if logger.Log != nil {
			logger.Log.Error("Unhandled error", "error", err.Error(), "path", c.FullPath())
		}
		response.Error(c, http.StatusInternalServerError, "Error saving profile", err.Error())
	}
}
