package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/court-scheduler/internal/domain/booking"
)

// Availability guarda a grade de horários de uma quadra em um dia.
// Falhas de cache nunca quebram a requisição: Get devolve miss e
// Set/Invalidate apenas logam.
//
// Cada quadra/dia tem uma geração. Get devolve a geração lida antes da
// consulta ao banco e Set só grava se nenhuma invalidação aconteceu
// desde então, para que uma leitura lenta não grave uma grade antiga.
type Availability interface {
	Get(ctx context.Context, courtID uint, date string) (slots []booking.TimeSlot, gen int64, ok bool)
	Set(ctx context.Context, courtID uint, date string, gen int64, slots []booking.TimeSlot)
	Invalidate(ctx context.Context, courtID uint, dates ...string)
}

// NoGeneration indica que a geração não pôde ser lida; Set ignora.
const NoGeneration int64 = -1

// a geração precisa sobreviver bem mais que a grade em cache
const generationTTL = 24 * time.Hour

var errStaleGeneration = errors.New("availability: stale generation")

func availabilityKey(courtID uint, date string) string {
	return fmt.Sprintf("availability:%d:%s", courtID, date)
}

func generationKey(courtID uint, date string) string {
	return fmt.Sprintf("availability:%d:%s:gen", courtID, date)
}

// ======================================================
// REDIS
// ======================================================

type RedisAvailability struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAvailability(ctx context.Context, url string, ttl time.Duration) (*RedisAvailability, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewRedisAvailabilityFromClient(client, ttl), nil
}

func NewRedisAvailabilityFromClient(client *redis.Client, ttl time.Duration) *RedisAvailability {
	return &RedisAvailability{client: client, ttl: ttl}
}

func (r *RedisAvailability) Get(ctx context.Context, courtID uint, date string) ([]booking.TimeSlot, int64, bool) {
	vals, err := r.client.MGet(ctx, availabilityKey(courtID, date), generationKey(courtID, date)).Result()
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("availability cache get")
		return nil, NoGeneration, false
	}

	gen := int64(0)
	if raw, ok := vals[1].(string); ok {
		if gen, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, NoGeneration, false
		}
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, gen, false
	}

	var slots []booking.TimeSlot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, gen, false
	}
	return slots, gen, true
}

// Set usa WATCH na chave de geração: se uma invalidação chegar entre a
// leitura da geração e o EXEC, a transação falha e nada é gravado.
func (r *RedisAvailability) Set(ctx context.Context, courtID uint, date string, gen int64, slots []booking.TimeSlot) {
	if gen < 0 {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	genKey := generationKey(courtID, date)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if current != gen {
			return errStaleGeneration
		}

		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, availabilityKey(courtID, date), raw, r.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil, errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
	default:
		zerolog.Ctx(ctx).Warn().Err(err).Msg("availability cache set")
	}
}

// Invalidate avança a geração e apaga a grade na mesma transação.
func (r *RedisAvailability) Invalidate(ctx context.Context, courtID uint, dates ...string) {
	if len(dates) == 0 {
		return
	}

	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, d := range dates {
			genKey := generationKey(courtID, d)
			p.Incr(ctx, genKey)
			p.Expire(ctx, genKey, generationTTL)
			p.Del(ctx, availabilityKey(courtID, d))
		}
		return nil
	})
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("availability cache invalidate")
	}
}

func (r *RedisAvailability) Close() error {
	return r.client.Close()
}

// ======================================================
// NOOP
// ======================================================

type Noop struct{}

func (Noop) Get(context.Context, uint, string) ([]booking.TimeSlot, int64, bool) {
	return nil, NoGeneration, false
}
func (Noop) Set(context.Context, uint, string, int64, []booking.TimeSlot) {}
func (Noop) Invalidate(context.Context, uint, ...string)                 {}

var (
	_ Availability = (*RedisAvailability)(nil)
	_ Availability = Noop{}
)
