package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/court-scheduler/internal/events"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Dispatcher grava a trilha de auditoria e publica o evento de domínio
// fora do caminho da requisição.
type Dispatcher struct {
	logger    *Logger
	publisher events.Publisher
	queue     chan Event
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewDispatcher(logger *Logger, publisher events.Publisher) *Dispatcher {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	d := &Dispatcher{
		logger:    logger,
		publisher: publisher,
		queue:     make(chan Event, 100), // buffer seguro
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		if d.logger != nil {
			if err := d.logger.Log(ctx, ev); err != nil {
				log.Error().Err(err).Str("action", ev.Action).Msg("audit error")
			}
		}

		msg := events.NewMessage(ev.Action, ev.Entity, ev.EntityID, ev.UserID, ev.Metadata, time.Now())
		if err := d.publisher.Publish(ctx, msg); err != nil {
			log.Error().Err(err).Str("type", msg.Type).Msg("event publish error")
		}

		cancel()
	}
}

// Dispatch nunca bloqueia: com a fila cheia o evento é descartado.
// Um Dispatcher nil ignora os eventos.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
	default:
		log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close drena a fila e espera o worker terminar.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}
