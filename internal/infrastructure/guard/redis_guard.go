package guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/mtaabiz/internal/application/ports"
	"github.com/jhoicas/mtaabiz/internal/domain"
	"github.com/jhoicas/mtaabiz/pkg/logger"
)

var _ ports.SubmissionGuard = (*RedisGuard)(nil)

// RedisGuard guardia compartida entre réplicas de la API usando redislock.
type RedisGuard struct {
	locker *redislock.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisGuard construye la guardia sobre un cliente Redis ya conectado.
// ttl acota cuánto vive un lock si el proceso muere sin liberarlo.
func NewRedisGuard(rdb redis.UniversalClient, ttl time.Duration, log *logger.Logger) *RedisGuard {
	if log == nil {
		log = logger.Nop()
	}
	return &RedisGuard{locker: redislock.New(rdb), ttl: ttl, log: log}
}

// Acquire obtiene el lock sin reintentos. ErrNotObtained se traduce a domain.ErrSubmissionPending.
func (g *RedisGuard) Acquire(ctx context.Context, key string) (func(), error) {
	lock, err := g.locker.Obtain(ctx, key, g.ttl, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, domain.ErrSubmissionPending
		}
		return nil, fmt.Errorf("redis lock %s: %w", key, err)
	}
	return func() {
		// contexto propio: el del request puede estar cancelado al liberar
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := lock.Release(rctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			g.log.Warn().Err(err).Str("key", key).Msg("no se pudo liberar el lock")
		}
	}, nil
}

// NewRedisClient crea el cliente y verifica la conexión.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}
