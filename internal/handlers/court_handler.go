package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-scheduler/internal/audit"
	"github.com/BruksfildServices01/court-scheduler/internal/httperr"
	"github.com/BruksfildServices01/court-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
)

var (
	errCourtNotFound   = httperr.ErrNotFound("court_not_found", "Quadra não encontrada.")
	errNoActiveCourt   = httperr.ErrNotFound("no_active_court", "Nenhuma quadra ativa.")
	errInvalidPrice    = httperr.ErrValidation("invalid_price", "Preço por hora deve ser positivo.")
	errInvalidPriceArg = httperr.ErrValidation("invalid_price_filter", "Filtro de preço inválido.")
)

type CourtHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCourtHandler(db *gorm.DB, audit *audit.Dispatcher) *CourtHandler {
	return &CourtHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateCourtRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	PricePerHour float64 `json:"price_per_hour" binding:"required,gt=0"`
}

type UpdateCourtRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	PricePerHour *float64 `json:"price_per_hour,omitempty"`
	Active       *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

// List aceita os filtros active, name, min_price, max_price e sort
// (price ou name).
func (h *CourtHandler) List(c *gin.Context) {
	q, err := h.filtered(c, strings.TrimSpace(c.Query("active")))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var courts []models.Court
	if err := q.Find(&courts).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, courts)
}

// ListActive é a vitrine pública: só quadras ativas.
func (h *CourtHandler) ListActive(c *gin.Context) {
	q, err := h.filtered(c, "true")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var courts []models.Court
	if err := q.Find(&courts).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, courts)
}

func (h *CourtHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	court, err := h.find(c, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, court)
}

func (h *CourtHandler) Create(c *gin.Context) {
	var req CreateCourtRequest
	if !bindJSON(c, &req) {
		return
	}

	court := models.Court{
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		PricePerHour: req.PricePerHour,
		Active:       true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&court).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actor(c),
		Action:   "court_created",
		Entity:   "court",
		EntityID: &court.ID,
		Metadata: map[string]any{"name": court.Name, "price_per_hour": court.PricePerHour},
	})

	httpresp.Created(c, court)
}

func (h *CourtHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateCourtRequest
	if !bindJSON(c, &req) {
		return
	}

	court, err := h.find(c, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if req.Name != nil {
		court.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		court.Description = *req.Description
	}
	if req.PricePerHour != nil {
		if *req.PricePerHour <= 0 {
			httperr.Respond(c, errInvalidPrice)
			return
		}
		court.PricePerHour = *req.PricePerHour
	}
	if req.Active != nil {
		court.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(court).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actor(c),
		Action:   "court_updated",
		Entity:   "court",
		EntityID: &court.ID,
	})

	httpresp.OK(c, court)
}

func (h *CourtHandler) ToggleActive(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	court, err := h.find(c, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	court.Active = !court.Active
	if err := h.db.WithContext(c.Request.Context()).Save(court).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actor(c),
		Action:   "court_toggled",
		Entity:   "court",
		EntityID: &court.ID,
		Metadata: map[string]any{"active": court.Active},
	})

	httpresp.OK(c, court)
}

func (h *CourtHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Court{}, id)
	if res.Error != nil {
		httperr.Respond(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.Respond(c, errCourtNotFound)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actor(c),
		Action:   "court_deleted",
		Entity:   "court",
		EntityID: &id,
	})

	httpresp.NoContent(c)
}

// Cheapest devolve a quadra ativa de menor preço por hora.
func (h *CourtHandler) Cheapest(c *gin.Context) {
	var court models.Court
	err := h.db.WithContext(c.Request.Context()).
		Where("active = ?", true).
		Order("price_per_hour ASC, id ASC").
		First(&court).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, errNoActiveCourt)
			return
		}
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, court)
}

func (h *CourtHandler) CountActive(c *gin.Context) {
	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Court{}).
		Where("active = ?", true).
		Count(&count).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// --------- helpers ---------

func (h *CourtHandler) find(c *gin.Context, id uint) (*models.Court, error) {
	var court models.Court
	if err := h.db.WithContext(c.Request.Context()).First(&court, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCourtNotFound
		}
		return nil, err
	}
	return &court, nil
}

func (h *CourtHandler) filtered(c *gin.Context, active string) (*gorm.DB, error) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.Court{})

	switch active {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if name := strings.ToLower(strings.TrimSpace(c.Query("name"))); name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+name+"%")
	}

	if raw := c.Query("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errInvalidPriceArg
		}
		q = q.Where("price_per_hour >= ?", v)
	}
	if raw := c.Query("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errInvalidPriceArg
		}
		q = q.Where("price_per_hour <= ?", v)
	}

	switch c.Query("sort") {
	case "price":
		q = q.Order("price_per_hour ASC, id ASC")
	case "name":
		q = q.Order("name ASC")
	default:
		q = q.Order("id ASC")
	}

	return q, nil
}
