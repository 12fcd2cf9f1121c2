package services

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/qrcode-service/go/internal/core/domain/memo"
	"github.com/avatarctic/qrcode-service/go/internal/core/ports"
)

// DefaultTTL matches the one hour the service has always cached images for.
const DefaultTTL = time.Hour

// Producer is a deterministic, possibly slow function whose results can be memoized.
type Producer[A any] func(ctx context.Context, args A) (memo.Payload, error)

// MemoizerConfig groups the injectable parts of a Memoizer. Serializer and Digest
// are required; the rest have defaults.
type MemoizerConfig struct {
	TTL        time.Duration
	Serializer ports.Serializer
	Digest     ports.DigestFunc
	Logger     *logrus.Logger
	Recorder   ports.CacheRecorder
}

// Memoizer is a cache-aside wrapper around producers backed by a DualChannelStore.
//
// It does not coalesce concurrent identical calls: two callers that miss at the
// same time both run the producer and both write, last write wins. Store calls
// block the calling goroutine for one network round trip each (at most two
// reads and one write per call).
type Memoizer struct {
	store      ports.DualChannelStore
	keys       *KeyGenerator
	serializer ports.Serializer
	policy     *FailOpenPolicy
	ttl        time.Duration
	logger     *logrus.Logger
	recorder   ports.CacheRecorder
}

// NewMemoizer builds a Memoizer. A nil store disables caching; producers are then
// called directly.
func NewMemoizer(store ports.DualChannelStore, cfg MemoizerConfig) *Memoizer {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Recorder == nil {
		cfg.Recorder = noopRecorder{}
	}
	return &Memoizer{
		store:      store,
		keys:       NewKeyGenerator(cfg.Serializer, cfg.Digest),
		serializer: cfg.Serializer,
		policy:     NewFailOpenPolicy(cfg.Logger, cfg.Recorder),
		ttl:        cfg.TTL,
		logger:     cfg.Logger,
		recorder:   cfg.Recorder,
	}
}

// Keys exposes the key generator used by m.
func (m *Memoizer) Keys() *KeyGenerator { return m.keys }

// Do serves sig from the cache or runs produce and stores its result.
//
// Key derivation errors and producer errors are returned unchanged. Cache backend
// errors never are: a failed lookup counts as a miss and a failed write is dropped.
// On a miss the producer's own payload is returned, not a round-tripped copy, so a
// Text value may differ in Go type between the first call and later hits.
func (m *Memoizer) Do(ctx context.Context, sig memo.Signature, produce func(ctx context.Context) (memo.Payload, error)) (memo.Payload, error) {
	key, err := m.keys.Derive(sig)
	if err != nil {
		return memo.Payload{}, err
	}

	if m.store != nil {
		cached, hit, err := LookupDual(ctx, m.store, m.serializer, key)
		switch {
		case err != nil:
			if !m.policy.Absorb(key, err) {
				return memo.Payload{}, err
			}
		case hit:
			m.recorder.Hit(cached.Kind().String())
			if m.logger != nil {
				m.logger.WithFields(logrus.Fields{"key": key.String(), "channel": cached.Kind().String()}).Debug("cache hit")
			}
			return cached, nil
		default:
			m.recorder.Miss()
			if m.logger != nil {
				m.logger.WithField("key", key.String()).Debug("cache miss")
			}
		}
	}

	m.recorder.ProducerCall(sig.Function)
	result, err := produce(ctx)
	if err != nil {
		return memo.Payload{}, err
	}
	if m.store != nil {
		m.populate(ctx, key, result)
	}
	return result, nil
}

func (m *Memoizer) populate(ctx context.Context, key memo.Key, p memo.Payload) {
	var err error
	if p.IsBinary() {
		if err = m.store.Binary().SetWithTTL(ctx, key.String(), p.Bytes(), m.ttl); err != nil {
			err = m.policy.Classify(opSetBinary, err)
		}
	} else {
		encoded, encErr := m.serializer.Marshal(p.Value())
		if encErr != nil {
			if m.logger != nil {
				m.logger.WithField("key", key.String()).WithError(encErr).Warn("result not serializable; skipping cache write")
			}
			return
		}
		if err = m.store.Text().SetWithTTL(ctx, key.String(), encoded, m.ttl); err != nil {
			err = m.policy.Classify(opSetText, err)
		}
	}
	if err != nil {
		m.policy.Absorb(key, err)
	}
}

// DecodeInto normalizes a Text payload into dst regardless of whether it came from
// the producer or from the cache. Binary payloads decode only into *[]byte.
func (m *Memoizer) DecodeInto(p memo.Payload, dst any) error {
	if p.IsBinary() {
		b, ok := dst.(*[]byte)
		if !ok {
			return errors.Newf("cannot decode binary payload into %T", dst)
		}
		*b = p.Bytes()
		return nil
	}
	if s, ok := p.Value().(string); ok {
		if err := m.serializer.Unmarshal(s, dst); err == nil {
			return nil
		}
	}
	encoded, err := m.serializer.Marshal(p.Value())
	if err != nil {
		return errors.Wrap(err, "re-encode text payload")
	}
	return m.serializer.Unmarshal(encoded, dst)
}

// Wrap returns a Producer with the same signature as fn whose results are memoized
// under the given function name.
func Wrap[A memo.Arguments](m *Memoizer, function string, fn Producer[A]) Producer[A] {
	return func(ctx context.Context, args A) (memo.Payload, error) {
		return m.Do(ctx, memo.SignatureOf(function, args), func(ctx context.Context) (memo.Payload, error) {
			return fn(ctx, args)
		})
	}
}

type noopRecorder struct{}

func (noopRecorder) Hit(string)          {}
func (noopRecorder) Miss()               {}
func (noopRecorder) BackendError(string) {}
func (noopRecorder) ProducerCall(string) {}
