package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/avatarctic/qrcode-service/go/internal/core/ports"
)

// DefaultOpTimeout bounds every cache round trip so a hung Redis degrades to a miss.
const DefaultOpTimeout = 2 * time.Second

// DualChannelCache implements ports.DualChannelStore on two Redis connection pools
// to the same instance: one for raw image bytes and one for serialized text.
// Each channel writes under its own key segment so a text entry is never read
// back as image bytes.
type DualChannelCache struct {
	binary *channel[[]byte]
	text   *channel[string]
}

var _ ports.DualChannelStore = (*DualChannelCache)(nil)

// NewDualChannelCache creates the store. prefix optionally namespaces all keys;
// timeout <= 0 uses DefaultOpTimeout. The caller owns both clients.
func NewDualChannelCache(binary, text redis.Cmdable, prefix string, timeout time.Duration) *DualChannelCache {
	if timeout <= 0 {
		timeout = DefaultOpTimeout
	}
	return &DualChannelCache{
		binary: &channel[[]byte]{r: binary, prefix: join(prefix, "binary"), timeout: timeout},
		text:   &channel[string]{r: text, prefix: join(prefix, "text"), timeout: timeout},
	}
}

func (c *DualChannelCache) Binary() ports.Channel[[]byte] { return c.binary }
func (c *DualChannelCache) Text() ports.Channel[string]   { return c.text }
func (c *DualChannelCache) Name() string                  { return "redis" }

func join(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + ":" + segment
}

type channel[V []byte | string] struct {
	r       redis.Cmdable
	prefix  string
	timeout time.Duration
}

func (c *channel[V]) namespaced(key string) string {
	return c.prefix + ":" + key
}

func (c *channel[V]) queryCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, c.timeout)
}

// Get implements Channel.Get.
func (c *channel[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	qctx, cancel := c.queryCtx(ctx)
	defer cancel()
	val, err := c.r.Get(qctx, c.namespaced(key)).Result()
	if err == redis.Nil {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	return V(val), true, nil
}

// SetWithTTL implements Channel.SetWithTTL using SET with EX.
func (c *channel[V]) SetWithTTL(ctx context.Context, key string, value V, ttl time.Duration) error {
	qctx, cancel := c.queryCtx(ctx)
	defer cancel()
	return c.r.Set(qctx, c.namespaced(key), []byte(value), ttl).Err()
}
