package reservation

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/court-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/court-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
	"github.com/BruksfildServices01/court-scheduler/internal/obs"
)

// ======================================================
// INPUT
// ======================================================

type ReserveSlotInput struct {
	CourtID uint
	UserID  uint
	SlotAt  time.Time
}

// ======================================================
// USE CASE
// ======================================================

type ReserveSlot struct {
	repo     domain.Repository
	capacity int
	audit    *audit.Dispatcher
}

func NewReserveSlot(
	repo domain.Repository,
	capacity int,
	audit *audit.Dispatcher,
) *ReserveSlot {
	if capacity <= 0 {
		capacity = domain.DefaultCapacity
	}
	return &ReserveSlot{
		repo:     repo,
		capacity: capacity,
		audit:    audit,
	}
}

func (uc *ReserveSlot) Capacity() int {
	return uc.capacity
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ReserveSlot) Execute(
	ctx context.Context,
	in ReserveSlotInput,
) (*models.Reservation, error) {

	slotAt := domain.NormalizeSlot(in.SlotAt)

	ctx, span := obs.Start(ctx, "reservation.reserve",
		attribute.Int("court_id", int(in.CourtID)),
		attribute.String("slot_at", slotAt.Format(time.RFC3339)),
	)
	defer span.End()

	var (
		result *models.Reservation
		joined bool
	)

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// 1️⃣ Quadra (travada) e jogador
		// --------------------------------------------------
		court, err := tx.GetCourtForUpdate(ctx, in.CourtID)
		if err != nil {
			return err
		}

		user, err := tx.GetUser(ctx, in.UserID)
		if err != nil {
			return err
		}

		if !court.Active {
			return domain.ErrCourtUnavailable
		}

		// --------------------------------------------------
		// 2️⃣ Reserva existente no horário exato
		// --------------------------------------------------
		existing, err := tx.FindConfirmed(ctx, court.ID, slotAt)
		if err != nil {
			return err
		}

		if existing != nil {
			if domain.HasPlayer(existing, user.ID) {
				return domain.ErrAlreadyReserved
			}
			if domain.IsFull(existing, uc.capacity) {
				return domain.ErrCapacityExceeded
			}
			if err := tx.AddPlayer(ctx, existing, user); err != nil {
				return err
			}
			result, joined = existing, true
			return nil
		}

		// --------------------------------------------------
		// 3️⃣ Primeira reserva do horário
		// --------------------------------------------------
		r := &models.Reservation{
			CourtID: court.ID,
			SlotAt:  slotAt,
			Status:  string(domain.InitialStatus()),
		}
		if err := tx.CreateReservation(ctx, r, user); err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		obs.Fail(span, err)
		return nil, err
	}

	action := "reservation_created"
	if joined {
		action = "reservation_joined"
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   action,
		Entity:   "reservation",
		EntityID: &result.ID,
		Metadata: map[string]any{
			"court_id": result.CourtID,
			"slot_at":  slotAt,
			"players":  len(result.Players),
		},
	})

	return result, nil
}
