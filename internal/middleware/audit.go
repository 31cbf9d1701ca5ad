package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	appErrors "github.com/campusworks/tuition-api/pkg/errors"
)

// FailureRecorder persists handled request failures.
type FailureRecorder interface {
	Record(ctx context.Context, message, statusCode string)
}

// Audit returns middleware that writes every handled client failure
// (NOT_FOUND, CONFLICT, validation) to the exception log after the response
// has been sent. Server errors are logged too; recording is best-effort and
// never alters the response.
func Audit(recorder FailureRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if recorder == nil || len(c.Errors) == 0 {
			return
		}

		// the request context may already be canceled once the response is
		// out; the log write must survive a client disconnect
		ctx := context.WithoutCancel(c.Request.Context())
		for _, ginErr := range c.Errors {
			var appErr *appErrors.Error
			if !errors.As(ginErr.Err, &appErr) {
				continue
			}
			recorder.Record(ctx, appErr.Message, appErr.StatusText())
		}
	}
}
