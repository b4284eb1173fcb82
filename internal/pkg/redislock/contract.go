//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=redislock_test
package redislock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client подмножество redis.UniversalClient, нужное блокировке.
type Client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}
