package booking

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/court-scheduler/internal/httperr"
)

// BusinessHours define a janela em que as quadras podem ser reservadas.
type BusinessHours struct {
	Opening     Clock
	Closing     Clock
	SlotWidth   time.Duration
	MinDuration time.Duration
}

func DefaultBusinessHours() BusinessHours {
	return BusinessHours{
		Opening:     6 * 60,
		Closing:     22 * 60,
		SlotWidth:   time.Hour,
		MinDuration: time.Hour,
	}
}

func NewBusinessHours(opening, closing string, slotMinutes, minMinutes int) (BusinessHours, error) {
	open, err := ParseClock(opening)
	if err != nil {
		return BusinessHours{}, fmt.Errorf("invalid opening time %q", opening)
	}
	shut, err := ParseClock(closing)
	if err != nil {
		return BusinessHours{}, fmt.Errorf("invalid closing time %q", closing)
	}
	if open >= shut {
		return BusinessHours{}, fmt.Errorf("opening %s must be before closing %s", open, shut)
	}
	if slotMinutes <= 0 || minMinutes <= 0 {
		return BusinessHours{}, fmt.Errorf("slot and minimum durations must be positive")
	}

	return BusinessHours{
		Opening:     open,
		Closing:     shut,
		SlotWidth:   time.Duration(slotMinutes) * time.Minute,
		MinDuration: time.Duration(minMinutes) * time.Minute,
	}, nil
}

func (h BusinessHours) Contains(i Interval) bool {
	return i.Start >= h.Opening && i.End <= h.Closing
}

// Validate aplica as regras de horário na ordem: data passada, início
// depois do fim, fora do expediente, duração mínima.
func (h BusinessHours) Validate(today, date time.Time, i Interval) error {
	if date.Format(DateLayout) < today.Format(DateLayout) {
		return invalidTime("Não é possível agendar para datas passadas.")
	}

	if i.Start >= i.End {
		return invalidTime("O horário de início deve ser anterior ao horário de término.")
	}

	if !h.Contains(i) {
		return invalidTime(fmt.Sprintf(
			"Agendamentos são permitidos apenas entre %s e %s.", h.Opening, h.Closing,
		))
	}

	if i.Duration() < h.MinDuration {
		return invalidTime(fmt.Sprintf(
			"A duração mínima do agendamento é de %d minutos.", int(h.MinDuration/time.Minute),
		))
	}

	return nil
}

func invalidTime(msg string) error {
	return httperr.ErrValidation("invalid_time", msg)
}
