package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/court-scheduler/internal/httperr"
	"github.com/BruksfildServices01/court-scheduler/internal/middleware"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
	"github.com/BruksfildServices01/court-scheduler/internal/validators"
)

// paramID lê um id numérico da rota. Em caso de erro já responde 400.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// queryID lê um id opcional da query string.
func queryID(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Parâmetro inválido: "+name+".")
		return nil, false
	}
	v := uint(id)
	return &v, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "invalid_request",
			"message":    "Dados inválidos.",
			"fields":     validators.FieldErrors(err),
		})
		return false
	}
	return true
}

func actor(c *gin.Context) *uint {
	id, _ := middleware.CurrentUser(c)
	if id == 0 {
		return nil
	}
	return &id
}

func isAdmin(c *gin.Context) bool {
	_, role := middleware.CurrentUser(c)
	return role == models.RoleAdmin
}

// ownerOrAdmin libera o acesso a dados de outro usuário só para admin.
func ownerOrAdmin(c *gin.Context, ownerID uint) bool {
	id, _ := middleware.CurrentUser(c)
	if id == ownerID || isAdmin(c) {
		return true
	}
	httperr.Forbidden(c, "forbidden", "Acesso negado.")
	return false
}
