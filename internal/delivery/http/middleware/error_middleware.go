package middleware

import (
	"errors"
	"net/http"

	"go-forms-gateway/internal/delivery/http/response"
	"go-forms-gateway/pkg/apperror"
	"go-forms-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors collected on the context into the standard
// response envelope. Internal error details are logged server-side and never
// sent to the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		logger.Log.Error("unhandled request error", "error", err, "path", c.FullPath())
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
