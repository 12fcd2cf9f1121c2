package ports

import (
	"context"
	"time"
)

// Channel is one logical sub-store of a DualChannelStore.
// Implementations must be safe for concurrent use; any returned error is treated
// by callers as the backend being unavailable.
type Channel[V any] interface {
	// Get returns the stored value for key. ok=false if absent or expired.
	Get(ctx context.Context, key string) (value V, ok bool, err error)
	// SetWithTTL stores value for key; it is no longer retrievable once ttl elapses.
	SetWithTTL(ctx context.Context, key string, value V, ttl time.Duration) error
}

// DualChannelStore exposes a raw byte channel and a text channel sharing one key namespace.
type DualChannelStore interface {
	Binary() Channel[[]byte]
	Text() Channel[string]
}

// Serializer converts values to and from the text channel representation.
// It is also the canonical encoder used for key derivation, so Marshal must be deterministic.
type Serializer interface {
	Marshal(v any) (string, error)
	Unmarshal(data string, dst any) error
}

// CacheRecorder observes memoizer outcomes. All methods must be cheap and non-blocking.
type CacheRecorder interface {
	Hit(channel string)
	Miss()
	BackendError(op string)
	ProducerCall(function string)
}

// DigestFunc maps encoded bytes to a fixed-length hex fingerprint.
type DigestFunc func(b []byte) string
