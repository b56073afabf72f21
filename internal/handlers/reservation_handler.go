package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	bookingDomain "github.com/BruksfildServices01/court-scheduler/internal/domain/booking"
	domain "github.com/BruksfildServices01/court-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/court-scheduler/internal/dto"
	"github.com/BruksfildServices01/court-scheduler/internal/httperr"
	"github.com/BruksfildServices01/court-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/court-scheduler/internal/middleware"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
	ucReservation "github.com/BruksfildServices01/court-scheduler/internal/usecase/reservation"
)

type ReservationHandler struct {
	reserve *ucReservation.ReserveSlot
	cancel  *ucReservation.CancelReservation
	list    *ucReservation.ListReservations
	loc     *time.Location
}

func NewReservationHandler(
	reserve *ucReservation.ReserveSlot,
	cancel *ucReservation.CancelReservation,
	list *ucReservation.ListReservations,
	loc *time.Location,
) *ReservationHandler {
	return &ReservationHandler{
		reserve: reserve,
		cancel:  cancel,
		list:    list,
		loc:     loc,
	}
}

// Date e StartTime são lidos no fuso do clube.
type ReserveSlotRequest struct {
	CourtID   uint   `json:"court_id" binding:"required"`
	UserID    uint   `json:"user_id"`
	Date      string `json:"date" binding:"required,isodate"`
	StartTime string `json:"start_time" binding:"required,hhmm"`
}

func (h *ReservationHandler) Reserve(c *gin.Context) {
	var req ReserveSlotRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, _ := middleware.CurrentUser(c)
	if req.UserID != 0 && req.UserID != userID {
		if !isAdmin(c) {
			httperr.Forbidden(c, "forbidden", "Acesso negado.")
			return
		}
		userID = req.UserID
	}

	at, err := h.slotAt(req.Date, req.StartTime)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	r, err := h.reserve.Execute(c.Request.Context(), ucReservation.ReserveSlotInput{
		CourtID: req.CourtID,
		UserID:  userID,
		SlotAt:  at,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewReservationDTO(r, h.loc))
}

// Cancel: admin cancela a reserva inteira; jogador só sai dela.
func (h *ReservationHandler) Cancel(c *gin.Context) {
	r, ok := h.visible(c)
	if !ok {
		return
	}

	var (
		canceled *models.Reservation
		err      error
	)
	if isAdmin(c) {
		canceled, err = h.cancel.Execute(c.Request.Context(), r.ID, actor(c))
	} else {
		userID, _ := middleware.CurrentUser(c)
		canceled, err = h.cancel.Leave(c.Request.Context(), r.ID, userID)
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewReservationDTO(canceled, h.loc))
}

func (h *ReservationHandler) Get(c *gin.Context) {
	r, ok := h.visible(c)
	if !ok {
		return
	}
	httpresp.OK(c, dto.NewReservationDTO(r, h.loc))
}

// List: admin vê todas as reservas, cliente só aquelas em que joga.
func (h *ReservationHandler) List(c *gin.Context) {
	if isAdmin(c) {
		h.respondList(c)(h.list.All(c.Request.Context()))
		return
	}

	userID, _ := middleware.CurrentUser(c)
	h.respondList(c)(h.list.ByPlayer(c.Request.Context(), userID))
}

func (h *ReservationHandler) ByCourt(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	h.respondList(c)(h.list.ByCourt(c.Request.Context(), id))
}

func (h *ReservationHandler) ByPlayer(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok || !ownerOrAdmin(c, id) {
		return
	}
	h.respondList(c)(h.list.ByPlayer(c.Request.Context(), id))
}

// Occupancy responde quantos jogadores há em quadra/data/hora.
func (h *ReservationHandler) Occupancy(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	date, start := c.Query("date"), c.Query("time")
	if date == "" || start == "" {
		httperr.BadRequest(c, "missing_params", "Data e hora obrigatórias.")
		return
	}

	at, err := h.slotAt(date, start)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	occ, err := h.list.Occupancy(c.Request.Context(), id, at)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	occ.SlotAt = occ.SlotAt.In(h.loc)
	httpresp.OK(c, occ)
}

// ======================================================
// HELPERS
// ======================================================

func (h *ReservationHandler) slotAt(date, start string) (time.Time, error) {
	t, err := time.ParseInLocation(
		bookingDomain.DateLayout+" "+bookingDomain.ClockLayout,
		date+" "+start,
		h.loc,
	)
	if err != nil {
		return time.Time{}, bookingDomain.ErrInvalidHour
	}
	return t, nil
}

func (h *ReservationHandler) visible(c *gin.Context) (*models.Reservation, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}

	r, err := h.list.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return nil, false
	}

	userID, _ := middleware.CurrentUser(c)
	if !isAdmin(c) && !domain.HasPlayer(r, userID) {
		httperr.Forbidden(c, "forbidden", "Acesso negado.")
		return nil, false
	}
	return r, true
}

func (h *ReservationHandler) respondList(c *gin.Context) func([]models.Reservation, error) {
	return func(rs []models.Reservation, err error) {
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.List(c, dto.NewReservationDTOs(rs, h.loc))
	}
}
