package health

import (
	"context"

	"github.com/avatarctic/qrcode-service/go/internal/core/ports"
	"github.com/go-redis/redis/v8"
)

// redisHealthChecker wraps one redis connection pool for health checks.
type redisHealthChecker struct {
	name   string
	client redis.Cmdable
}

func (r *redisHealthChecker) Name() string                    { return r.name }
func (r *redisHealthChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }

// NewRedisHealthChecker creates a health checker for a Redis connection.
// name distinguishes the binary and text cache pools in the health report.
func NewRedisHealthChecker(name string, client redis.Cmdable) ports.HealthChecker {
	return &redisHealthChecker{name: name, client: client}
}
