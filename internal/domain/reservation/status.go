package reservation

type Status string

const (
	StatusPending   Status = "PENDENTE"
	StatusConfirmed Status = "CONFIRMADA"
	StatusCanceled  Status = "CANCELADA"
)

// InitialStatus: a reserva já nasce confirmada com o primeiro jogador.
func InitialStatus() Status {
	return StatusConfirmed
}
