package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/court-scheduler/internal/httperr"
)

// RequireMode libera a rota só quando o modelo de agenda ativo é o
// exigido. Agendamentos exclusivos e reservas compartilhadas não se
// enxergam, então apenas um deles pode ocupar horários por vez.
func RequireMode(active, required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if active != required {
			httperr.Write(c, http.StatusNotFound,
				"scheduling_mode_disabled",
				"Operação indisponível no modo de agenda "+active+".",
			)
			c.Abort()
			return
		}
		c.Next()
	}
}
