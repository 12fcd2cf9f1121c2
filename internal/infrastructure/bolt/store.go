// Package bolt provides a file-backed DualChannelStore for single-node deployments
// without Redis. Each channel is a bbolt bucket; values carry their expiry.
package bolt

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/cockroachdb/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/avatarctic/qrcode-service/go/internal/core/ports"
)

var (
	binaryBucket = []byte("binary")
	textBucket   = []byte("text")
)

type Store struct {
	db     *bolt.DB
	binary *channel[[]byte]
	text   *channel[string]
	now    func() time.Time
}

var _ ports.DualChannelStore = (*Store)(nil)

// Open initializes or opens a Store at the given path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt cache %s", path)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{binaryBucket, textBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create cache buckets")
	}
	s := &Store{db: db, now: time.Now}
	s.binary = &channel[[]byte]{store: s, bucket: binaryBucket}
	s.text = &channel[string]{store: s, bucket: textBucket}
	return s, nil
}

func (s *Store) Binary() ports.Channel[[]byte] { return s.binary }
func (s *Store) Text() ports.Channel[string]   { return s.text }
func (s *Store) Name() string                  { return "bolt" }

// Check reports whether the database is still usable.
func (s *Store) Check(_ context.Context) error {
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(binaryBucket) == nil || tx.Bucket(textBucket) == nil {
			return errors.New("cache buckets missing")
		}
		return nil
	})
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

type channel[V []byte | string] struct {
	store  *Store
	bucket []byte
}

// SetWithTTL stores value with an absolute expiration computed as now+ttl.
// If ttl <= 0 the item never expires.
func (c *channel[V]) SetWithTTL(_ context.Context, key string, value V, ttl time.Duration) error {
	expiresAt := int64(0)
	if ttl > 0 {
		expiresAt = c.store.now().Add(ttl).UnixNano()
	}
	// Layout: 8 bytes big endian expiresAt || raw value
	buf := make([]byte, 8+len(value))
	binary.BigEndian.PutUint64(buf[:8], uint64(expiresAt))
	copy(buf[8:], value)

	return c.store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(c.bucket).Put([]byte(key), buf)
	})
}

// Get returns the value if present and not expired. Expired entries stay on disk
// until overwritten.
func (c *channel[V]) Get(_ context.Context, key string) (V, bool, error) {
	var zero V
	var out []byte
	found := false
	err := c.store.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(c.bucket).Get([]byte(key))
		if len(v) < 8 {
			return nil
		}
		expiresAt := int64(binary.BigEndian.Uint64(v[:8]))
		if expiresAt > 0 && c.store.now().UnixNano() >= expiresAt {
			return nil
		}
		out = append([]byte(nil), v[8:]...)
		found = true
		return nil
	})
	if err != nil {
		return zero, false, err
	}
	if !found {
		return zero, false, nil
	}
	return V(out), true, nil
}
