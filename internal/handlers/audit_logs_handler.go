package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/court-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/court-scheduler/internal/httperr"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List pagina a trilha de auditoria. Filtros: action, entity,
// entity_id, user_id, from e to (YYYY-MM-DD, inclusivos).
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	entityID, ok := queryID(c, "entity_id")
	if !ok {
		return
	}
	if entityID != nil {
		q = q.Where("entity_id = ?", *entityID)
	}

	userID, ok := queryID(c, "user_id")
	if !ok {
		return
	}
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	if from := c.Query("from"); from != "" {
		d, err := domain.ParseDate(from)
		if err != nil {
			httperr.Respond(c, domain.ErrInvalidDate)
			return
		}
		q = q.Where("created_at >= ?", d)
	}

	if to := c.Query("to"); to != "" {
		d, err := domain.ParseDate(to)
		if err != nil {
			httperr.Respond(c, domain.ErrInvalidDate)
			return
		}
		q = q.Where("created_at < ?", d.AddDate(0, 0, 1))
	}

	// --------------------------------------------------
	// Total + listagem
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
