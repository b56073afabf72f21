package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/court-scheduler/internal/httperr"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger anexa ao contexto da requisição um logger com request_id,
// que use cases e handlers recuperam com zerolog.Ctx.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Writer.Header().Set(RequestIDHeader, reqID)

		l := log.Logger.With().
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Logger()
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		ev := l.Info()
		if status >= http.StatusInternalServerError {
			ev = l.Error()
		} else if status >= http.StatusBadRequest {
			ev = l.Warn()
		}

		userID, role := CurrentUser(c)
		ev.Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Uint("user_id", userID).
			Str("role", role).
			Msg("request")
	}
}

// ErrorLogger recupera panics e loga os erros anexados com c.Error.
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			l := zerolog.Ctx(c.Request.Context())

			if recovered := recover(); recovered != nil {
				l.Error().
					Err(fmt.Errorf("%v", recovered)).
					Bytes("stack", debug.Stack()).
					Msg("panic")

				httperr.Internal(c, "internal_error", "Erro interno.")
				c.Abort()
				return
			}

			for _, err := range c.Errors {
				l.Error().Err(err.Err).Str("type", fmt.Sprintf("%v", err.Type)).Msg("request error")
			}
		}()

		c.Next()
	}
}
