package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/court-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/court-scheduler/internal/dto"
	"github.com/BruksfildServices01/court-scheduler/internal/httperr"
	"github.com/BruksfildServices01/court-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/court-scheduler/internal/middleware"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
	ucBooking "github.com/BruksfildServices01/court-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create       *ucBooking.CreateBooking
	update       *ucBooking.UpdateBooking
	status       *ucBooking.ChangeBookingStatus
	remove       *ucBooking.DeleteBooking
	list         *ucBooking.ListBookings
	availability *ucBooking.GetAvailability
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	update *ucBooking.UpdateBooking,
	status *ucBooking.ChangeBookingStatus,
	remove *ucBooking.DeleteBooking,
	list *ucBooking.ListBookings,
	availability *ucBooking.GetAvailability,
) *BookingHandler {
	return &BookingHandler{
		create:       create,
		update:       update,
		status:       status,
		remove:       remove,
		list:         list,
		availability: availability,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	CourtID   uint   `json:"court_id" binding:"required"`
	UserID    uint   `json:"user_id"`
	Date      string `json:"booking_date" binding:"required,isodate"`
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"required,hhmm"`
	Notes     string `json:"notes" binding:"max=500"`
}

type UpdateBookingRequest struct {
	Date      string `json:"booking_date" binding:"required,isodate"`
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"required,hhmm"`
	Notes     string `json:"notes" binding:"max=500"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// WRITE
// ======================================================

// Create agenda para o próprio usuário. Só admin escolhe outro user_id.
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
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

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		CourtID:   req.CourtID,
		UserID:    userID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewBookingDTO(b))
}

func (h *BookingHandler) Update(c *gin.Context) {
	b, ok := h.owned(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.update.Execute(c.Request.Context(), ucBooking.UpdateBookingInput{
		ID:        b.ID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewBookingDTO(updated))
}

func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	b, err := h.status.Execute(c.Request.Context(), id, status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewBookingDTO(b))
}

// Cancel pode ser feito pelo dono do agendamento.
func (h *BookingHandler) Cancel(c *gin.Context) {
	b, ok := h.owned(c)
	if !ok {
		return
	}

	canceled, err := h.status.Cancel(c.Request.Context(), b.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewBookingDTO(canceled))
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	b, err := h.status.Confirm(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewBookingDTO(b))
}

func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id, actor(c)); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// READ
// ======================================================

func (h *BookingHandler) Get(c *gin.Context) {
	b, ok := h.owned(c)
	if !ok {
		return
	}
	httpresp.OK(c, dto.NewBookingDTO(b))
}

// List: admin vê tudo (com filtros date, status, court_id, user_id);
// cliente vê só os próprios agendamentos.
func (h *BookingHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if !isAdmin(c) {
		userID, _ := middleware.CurrentUser(c)
		h.respondList(c)(h.list.ByUser(ctx, userID))
		return
	}

	courtID, ok := queryID(c, "court_id")
	if !ok {
		return
	}
	userID, ok := queryID(c, "user_id")
	if !ok {
		return
	}

	switch {
	case c.Query("date") != "":
		h.respondList(c)(h.list.ByDate(ctx, c.Query("date")))
	case c.Query("status") != "":
		status, err := domain.ParseStatus(c.Query("status"))
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		h.respondList(c)(h.list.ByStatus(ctx, status))
	case courtID != nil:
		h.respondList(c)(h.list.ByCourt(ctx, *courtID))
	case userID != nil:
		h.respondList(c)(h.list.ByUser(ctx, *userID))
	default:
		h.respondList(c)(h.list.All(ctx))
	}
}

func (h *BookingHandler) Today(c *gin.Context) {
	h.respondList(c)(h.list.Today(c.Request.Context()))
}

func (h *BookingHandler) Count(c *gin.Context) {
	status, err := domain.ParseStatus(c.Query("status"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	n, err := h.list.CountByStatus(c.Request.Context(), status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status, "count": n})
}

func (h *BookingHandler) ByUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok || !ownerOrAdmin(c, id) {
		return
	}
	h.respondList(c)(h.list.ByUser(c.Request.Context(), id))
}

func (h *BookingHandler) FutureByUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok || !ownerOrAdmin(c, id) {
		return
	}
	h.respondList(c)(h.list.FutureForUser(c.Request.Context(), id))
}

func (h *BookingHandler) ByCourt(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	h.respondList(c)(h.list.ByCourt(c.Request.Context(), id))
}

// Availability devolve a grade de horários de uma quadra no dia.
func (h *BookingHandler) Availability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), id, date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"court_id": id,
		"date":     date,
		"slots":    slots,
	})
}

// ======================================================
// HELPERS
// ======================================================

// owned carrega o agendamento da rota e confere se o usuário pode vê-lo.
func (h *BookingHandler) owned(c *gin.Context) (*models.Booking, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}

	b, err := h.list.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return nil, false
	}

	if !ownerOrAdmin(c, b.UserID) {
		return nil, false
	}
	return b, true
}

func (h *BookingHandler) respondList(c *gin.Context) func([]models.Booking, error) {
	return func(bookings []models.Booking, err error) {
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.List(c, dto.NewBookingDTOs(bookings))
	}
}
