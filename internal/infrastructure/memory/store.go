// Package memory provides an in-process DualChannelStore with per-entry expiry.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/avatarctic/qrcode-service/go/internal/core/ports"
)

type Store struct {
	binary *channel[[]byte]
	text   *channel[string]
}

var _ ports.DualChannelStore = (*Store)(nil)

// Option configures a Store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, letting tests move time forward.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func New(opts ...Option) *Store {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store{
		binary: newChannel[[]byte](o.now, cloneBytes),
		text:   newChannel[string](o.now, func(s string) string { return s }),
	}
}

func (s *Store) Binary() ports.Channel[[]byte] { return s.binary }
func (s *Store) Text() ports.Channel[string]   { return s.text }
func (s *Store) Name() string                  { return "memory" }

// Len returns the number of live entries in both channels.
func (s *Store) Len() int {
	return s.binary.len() + s.text.len()
}

type entry[V any] struct {
	value   V
	expires time.Time
}

type channel[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	now     func() time.Time
	clone   func(V) V
}

func newChannel[V any](now func() time.Time, clone func(V) V) *channel[V] {
	return &channel[V]{entries: make(map[string]entry[V]), now: now, clone: clone}
}

func (c *channel[V]) Get(_ context.Context, key string) (V, bool, error) {
	var zero V
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return zero, false, nil
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		delete(c.entries, key)
		return zero, false, nil
	}
	return c.clone(e.value), true, nil
}

// SetWithTTL stores value; ttl <= 0 keeps it until overwritten.
func (c *channel[V]) SetWithTTL(_ context.Context, key string, value V, ttl time.Duration) error {
	e := entry[V]{value: c.clone(value)}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

func (c *channel[V]) len() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		if e.expires.IsZero() || now.Before(e.expires) {
			n++
		}
	}
	return n
}

func cloneBytes(b []byte) []byte {
	return append([]byte(nil), b...)
}
