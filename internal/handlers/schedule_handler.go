package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/court-scheduler/internal/httperr"
	"github.com/BruksfildServices01/court-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/court-scheduler/internal/middleware"
	"github.com/BruksfildServices01/court-scheduler/internal/usecase/scheduling"
)

// ScheduleHandler expõe o modelo de agenda configurado no clube
// (exclusivo ou compartilhado) com o mesmo contrato HTTP.
type ScheduleHandler struct {
	core scheduling.Core
}

func NewScheduleHandler(core scheduling.Core) *ScheduleHandler {
	return &ScheduleHandler{core: core}
}

type ScheduleRequest struct {
	CourtID   uint   `json:"court_id" binding:"required"`
	Date      string `json:"date" binding:"required,isodate"`
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"omitempty,hhmm"`
	Notes     string `json:"notes" binding:"max=500"`
}

func (h *ScheduleHandler) request(c *gin.Context) (scheduling.Request, bool) {
	var req ScheduleRequest
	if !bindJSON(c, &req) {
		return scheduling.Request{}, false
	}

	// no modo exclusivo o fim é obrigatório
	if h.core.Mode() == scheduling.ModeExclusive && req.EndTime == "" {
		httperr.BadRequest(c, "invalid_request", "Horário final obrigatório.")
		return scheduling.Request{}, false
	}

	userID, _ := middleware.CurrentUser(c)
	return scheduling.Request{
		CourtID:   req.CourtID,
		UserID:    userID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
	}, true
}

func (h *ScheduleHandler) Book(c *gin.Context) {
	req, ok := h.request(c)
	if !ok {
		return
	}

	out, err := h.core.Book(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, out)
}

func (h *ScheduleHandler) Check(c *gin.Context) {
	req, ok := h.request(c)
	if !ok {
		return
	}

	available, err := h.core.Check(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mode":      h.core.Mode(),
		"available": available,
	})
}

// Cancel é rota de admin: o id pode ser de agendamento ou de reserva,
// conforme o modo.
func (h *ScheduleHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.core.Cancel(c.Request.Context(), id, actor(c)); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mode":     h.core.Mode(),
		"id":       id,
		"canceled": true,
	})
}
