package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/court-scheduler/internal/config"
	domain "github.com/BruksfildServices01/court-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/court-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/court-scheduler/internal/timezone"
)

type ClubInfo struct {
	Name              string `json:"name"`
	Timezone          string `json:"timezone"`
	Today             string `json:"today"`
	OpeningTime       string `json:"opening_time"`
	ClosingTime       string `json:"closing_time"`
	SlotMinutes       int    `json:"slot_minutes"`
	MinBookingMinutes int    `json:"min_booking_minutes"`
	SchedulingMode    string `json:"scheduling_mode"`
	Capacity          int    `json:"capacity,omitempty"`
}

type ClubHandler struct {
	info ClubInfo
	now  timezone.Clock
}

func NewClubHandler(cfg *config.Config, hours domain.BusinessHours, now timezone.Clock) *ClubHandler {
	info := ClubInfo{
		Name:              cfg.ClubName,
		Timezone:          cfg.ClubTimezone,
		OpeningTime:       hours.Opening.String(),
		ClosingTime:       hours.Closing.String(),
		SlotMinutes:       int(hours.SlotWidth.Minutes()),
		MinBookingMinutes: int(hours.MinDuration.Minutes()),
		SchedulingMode:    cfg.SchedulingMode,
	}
	if cfg.SchedulingMode == config.ModeShared {
		info.Capacity = cfg.ReservationCapacity
	}
	return &ClubHandler{info: info, now: now}
}

func (h *ClubHandler) Get(c *gin.Context) {
	info := h.info
	info.Today = h.now.Today()
	httpresp.OK(c, info)
}
