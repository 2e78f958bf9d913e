package middleware

import (
	"log/slog"
	"net/http"

	"ghar-ko-sathi/internal/handler/httperr"
	"ghar-ko-sathi/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders errors that handlers attached without writing a body.
// Public errors carry their response; anything else is classified.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		last := c.Errors.Last()
		if last.IsType(gin.ErrorTypePublic) {
			if resp, ok := last.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}

		cl := httperr.Classify(last.Err)
		if cl.Status >= http.StatusInternalServerError {
			slog.Error("unhandled request error",
				"error", last.Err.Error(),
				"path", c.Request.URL.Path,
				"request_id", GetRequestID(c),
				"stack", errs.ExtractStackLines(last.Err, 12))
		}
		resp := httperr.Response{Status: cl.Status, Detail: gin.H{"code": cl.Code}}
		resp.Error.Message = cl.Message
		c.JSON(resp.Status, resp)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic",
					"error", err,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c))

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"

				c.JSON(http.StatusInternalServerError, resp)
				c.Abort()
			}
		}()
		c.Next()
	}
}
