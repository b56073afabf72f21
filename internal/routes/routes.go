package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-scheduler/internal/audit"
	"github.com/BruksfildServices01/court-scheduler/internal/cache"
	"github.com/BruksfildServices01/court-scheduler/internal/config"
	"github.com/BruksfildServices01/court-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/court-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/court-scheduler/internal/middleware"
	"github.com/BruksfildServices01/court-scheduler/internal/timezone"
	ucBooking "github.com/BruksfildServices01/court-scheduler/internal/usecase/booking"
	ucReservation "github.com/BruksfildServices01/court-scheduler/internal/usecase/reservation"
	"github.com/BruksfildServices01/court-scheduler/internal/usecase/scheduling"
	"github.com/BruksfildServices01/court-scheduler/internal/validators"
)

// Deps reúne a infraestrutura já aberta pelo main (ou pelos testes).
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Cache  cache.Availability
	Audit  *audit.Dispatcher
	Now    timezone.Clock
}

func RegisterRoutes(r *gin.Engine, d Deps) error {
	cfg := d.Config

	hours, err := cfg.BusinessHours()
	if err != nil {
		return fmt.Errorf("routes: %w", err)
	}
	if d.Cache == nil {
		d.Cache = cache.Noop{}
	}
	if d.Now == nil {
		d.Now = timezone.ClubClock(cfg.ClubTimezone)
	}
	loc := timezone.Location(cfg.ClubTimezone)

	validators.Register()

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestLogger(),
		middleware.ErrorLogger(),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	reservationRepo := infraRepo.NewReservationGormRepository(d.DB)

	// ======================================================
	// 🧠 USE CASES: BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, hours, d.Now, d.Cache, d.Audit)
	updateBookingUC := ucBooking.NewUpdateBooking(bookingRepo, hours, d.Now, d.Cache, d.Audit)
	changeStatusUC := ucBooking.NewChangeBookingStatus(bookingRepo, d.Now, d.Cache, d.Audit)
	deleteBookingUC := ucBooking.NewDeleteBooking(bookingRepo, d.Cache, d.Audit)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo, d.Now)
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo, hours, d.Cache)

	// ======================================================
	// 🧠 USE CASES: RESERVATIONS
	// ======================================================
	reserveSlotUC := ucReservation.NewReserveSlot(reservationRepo, cfg.ReservationCapacity, d.Audit)
	cancelReservationUC := ucReservation.NewCancelReservation(reservationRepo, d.Audit)
	listReservationsUC := ucReservation.NewListReservations(reservationRepo, reserveSlotUC.Capacity())

	var core scheduling.Core
	switch cfg.SchedulingMode {
	case config.ModeShared:
		core = scheduling.NewShared(
			loc,
			cfg.ReservationDuration(),
			reserveSlotUC,
			cancelReservationUC,
			listReservationsUC,
		)
	default:
		core = scheduling.NewExclusive(bookingRepo, hours, d.Now, createBookingUC, changeStatusUC)
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg, d.Audit)
	userHandler := handlers.NewUserHandler(d.DB, cfg, d.Audit, d.Cache)
	courtHandler := handlers.NewCourtHandler(d.DB, d.Audit)
	clubHandler := handlers.NewClubHandler(cfg, hours, d.Now)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		updateBookingUC,
		changeStatusUC,
		deleteBookingUC,
		listBookingsUC,
		availabilityUC,
	)

	reservationHandler := handlers.NewReservationHandler(
		reserveSlotUC,
		cancelReservationUC,
		listReservationsUC,
		loc,
	)

	scheduleHandler := handlers.NewScheduleHandler(core)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/club", clubHandler.Get)
			publicAPI.GET("/courts", courtHandler.ListActive)
			publicAPI.GET("/courts/:id/availability", bookingHandler.Availability)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))

		// só o modelo ativo ocupa horários; leitura e liberação seguem
		// abertas nos dois modos
		exclusiveOnly := middleware.RequireMode(cfg.SchedulingMode, config.ModeExclusive)
		sharedOnly := middleware.RequireMode(cfg.SchedulingMode, config.ModeShared)
		{
			secured.GET("/me", userHandler.GetMe)
			secured.PATCH("/me", userHandler.UpdateMe)

			// COURTS
			secured.GET("/courts", courtHandler.List)
			secured.GET("/courts/cheapest", courtHandler.Cheapest)
			secured.GET("/courts/count", courtHandler.CountActive)
			secured.GET("/courts/:id", courtHandler.Get)
			secured.GET("/courts/:id/availability", bookingHandler.Availability)
			secured.GET("/courts/:id/occupancy", reservationHandler.Occupancy)

			// USERS (dono ou admin)
			secured.GET("/users/:id", userHandler.Get)
			secured.GET("/users/:id/bookings", bookingHandler.ByUser)
			secured.GET("/users/:id/bookings/future", bookingHandler.FutureByUser)
			secured.GET("/users/:id/reservations", reservationHandler.ByPlayer)

			// BOOKINGS
			secured.POST("/bookings", exclusiveOnly, bookingHandler.Create)
			secured.GET("/bookings", bookingHandler.List)
			secured.GET("/bookings/:id", bookingHandler.Get)
			secured.PUT("/bookings/:id", exclusiveOnly, bookingHandler.Update)
			secured.POST("/bookings/:id/cancel", bookingHandler.Cancel)

			// RESERVATIONS
			secured.POST("/reservations", sharedOnly, reservationHandler.Reserve)
			secured.GET("/reservations", reservationHandler.List)
			secured.GET("/reservations/:id", reservationHandler.Get)
			secured.POST("/reservations/:id/cancel", reservationHandler.Cancel)

			// SCHEDULE (modo configurado)
			secured.POST("/schedule/book", scheduleHandler.Book)
			secured.POST("/schedule/check", scheduleHandler.Check)

			// ------------------------------
			// 🛡️ ADMIN
			// ------------------------------
			admin := secured.Group("", middleware.AdminOnly())
			{
				admin.POST("/courts", courtHandler.Create)
				admin.PUT("/courts/:id", courtHandler.Update)
				admin.PATCH("/courts/:id/toggle", courtHandler.ToggleActive)
				admin.DELETE("/courts/:id", courtHandler.Delete)
				admin.GET("/courts/:id/bookings", bookingHandler.ByCourt)
				admin.GET("/courts/:id/reservations", reservationHandler.ByCourt)

				admin.GET("/users", userHandler.List)
				admin.POST("/users", userHandler.Create)
				admin.PUT("/users/:id", userHandler.Update)
				admin.PATCH("/users/:id/toggle", userHandler.ToggleActive)
				admin.DELETE("/users/:id", userHandler.Delete)

				admin.GET("/bookings/today", bookingHandler.Today)
				admin.GET("/bookings/count", bookingHandler.Count)
				admin.PATCH("/bookings/:id/status", exclusiveOnly, bookingHandler.ChangeStatus)
				admin.POST("/bookings/:id/confirm", exclusiveOnly, bookingHandler.Confirm)
				admin.DELETE("/bookings/:id", bookingHandler.Delete)

				admin.POST("/schedule/:id/cancel", scheduleHandler.Cancel)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}

	return nil
}
