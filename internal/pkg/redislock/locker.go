package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/engine"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// снимаем блокировку только если она всё ещё наша
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

var ErrLockLost = errors.New("lock expired or taken by another owner")

// Locker распределённая блокировка на SET NX PX. Гарантирует, что заказ
// обрабатывает не больше одного процесса сервиса.
type Locker struct {
	client Client
}

func New(client Client) *Locker {
	return &Locker{client: client}
}

func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (engine.Release, error) {
	token := uuid.NewString()

	acquired, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis setnx %s: %w", key, err)
	}
	if !acquired {
		return nil, fmt.Errorf("%w: lock %s is held", engine.ErrAlreadyStarted, key)
	}

	return func(ctx context.Context) error {
		deleted, err := l.client.Eval(ctx, releaseScript, []string{key}, token).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("redis release %s: %w", key, err)
		}
		if deleted == 0 {
			return fmt.Errorf("%w: %s", ErrLockLost, key)
		}
		return nil
	}, nil
}

// NewClient клиент по адресу из конфигурации; соединение проверяется PING.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}
