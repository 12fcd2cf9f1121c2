package mocks

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/avatarctic/qrcode-service/go/internal/core/domain/qrcode"
	"github.com/avatarctic/qrcode-service/go/internal/core/ports"
)

// ErrConnectionRefused stands in for a dropped Redis connection.
var ErrConnectionRefused = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

// ChannelMock is a lightweight mock for ports.Channel
type ChannelMock[V any] struct {
	GetFn        func(ctx context.Context, key string) (V, bool, error)
	SetWithTTLFn func(ctx context.Context, key string, value V, ttl time.Duration) error
}

func (m *ChannelMock[V]) Get(ctx context.Context, key string) (V, bool, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	var zero V
	return zero, false, nil
}

func (m *ChannelMock[V]) SetWithTTL(ctx context.Context, key string, value V, ttl time.Duration) error {
	if m.SetWithTTLFn != nil {
		return m.SetWithTTLFn(ctx, key, value, ttl)
	}
	return nil
}

// DualChannelStoreMock pairs two channel mocks. Zero-valued channels always miss.
type DualChannelStoreMock struct {
	BinaryChannel ChannelMock[[]byte]
	TextChannel   ChannelMock[string]
}

func (m *DualChannelStoreMock) Binary() ports.Channel[[]byte] { return &m.BinaryChannel }
func (m *DualChannelStoreMock) Text() ports.Channel[string]   { return &m.TextChannel }

// UnreachableStore returns a store whose every call fails like a dead Redis server.
func UnreachableStore() *DualChannelStoreMock {
	return &DualChannelStoreMock{
		BinaryChannel: ChannelMock[[]byte]{
			GetFn: func(context.Context, string) ([]byte, bool, error) { return nil, false, ErrConnectionRefused },
			SetWithTTLFn: func(context.Context, string, []byte, time.Duration) error {
				return ErrConnectionRefused
			},
		},
		TextChannel: ChannelMock[string]{
			GetFn: func(context.Context, string) (string, bool, error) { return "", false, ErrConnectionRefused },
			SetWithTTLFn: func(context.Context, string, string, time.Duration) error {
				return ErrConnectionRefused
			},
		},
	}
}

// RendererMock counts Render calls and delegates to RenderFn when set.
type RendererMock struct {
	RenderFn func(ctx context.Context, req qrcode.Request) ([]byte, error)
	calls    atomic.Int64
}

func (m *RendererMock) Render(ctx context.Context, req qrcode.Request) ([]byte, error) {
	m.calls.Add(1)
	if m.RenderFn != nil {
		return m.RenderFn(ctx, req)
	}
	return []byte("\x89PNG\r\n\x1a\n" + req.Data), nil
}

func (m *RendererMock) Calls() int { return int(m.calls.Load()) }

type QRCodeServiceMock struct {
	GenerateFn func(ctx context.Context, req qrcode.Request) ([]byte, error)
}

func (m *QRCodeServiceMock) Generate(ctx context.Context, req qrcode.Request) ([]byte, error) {
	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, req)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return []byte("\x89PNG\r\n\x1a\n"), nil
}

type RateLimiterServiceMock struct {
	AllowFn func(ctx context.Context, client string) (bool, int, int, time.Time, error)
}

func (m *RateLimiterServiceMock) Allow(ctx context.Context, client string) (bool, int, int, time.Time, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, client)
	}
	return true, 1, 1, time.Now().Add(time.Minute), nil
}

// RateLimitRepositoryMock keeps per-client counters in memory.
type RateLimitRepositoryMock struct {
	IncrementWindowFn func(ctx context.Context, client string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error)

	mu     sync.Mutex
	counts map[string]int
}

func (m *RateLimitRepositoryMock) IncrementWindow(ctx context.Context, client string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	if m.IncrementWindowFn != nil {
		return m.IncrementWindowFn(ctx, client, window, keyPrefix, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = map[string]int{}
	}
	m.counts[client]++
	return m.counts[client], time.Now().Truncate(window), nil
}

type HealthCheckerMock struct {
	NameValue string
	CheckFn   func(ctx context.Context) error
}

func (m *HealthCheckerMock) Name() string { return m.NameValue }
func (m *HealthCheckerMock) Check(ctx context.Context) error {
	if m.CheckFn != nil {
		return m.CheckFn(ctx)
	}
	return nil
}

// RecorderMock tallies cache events.
type RecorderMock struct {
	mu            sync.Mutex
	Hits          map[string]int
	Misses        int
	BackendErrors map[string]int
	ProducerCalls map[string]int
}

func NewRecorderMock() *RecorderMock {
	return &RecorderMock{Hits: map[string]int{}, BackendErrors: map[string]int{}, ProducerCalls: map[string]int{}}
}

func (m *RecorderMock) Hit(channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Hits[channel]++
}

func (m *RecorderMock) Miss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Misses++
}

func (m *RecorderMock) BackendError(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BackendErrors[op]++
}

func (m *RecorderMock) ProducerCall(function string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProducerCalls[function]++
}
