package serializer

import (
	"bytes"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/avatarctic/qrcode-service/go/internal/core/ports"
)

// Msgpack stores values as msgpack. Map keys are sorted on encode so the output
// stays deterministic.
type Msgpack struct{}

var _ ports.Serializer = Msgpack{}

func NewMsgpack() Msgpack { return Msgpack{} }

func (Msgpack) Marshal(v any) (string, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Unmarshal rejects input with bytes left over after the first value, so plain
// text that happens to start with a valid msgpack prefix is not mistaken for a value.
func (Msgpack) Unmarshal(data string, dst any) error {
	r := strings.NewReader(data)
	if err := msgpack.NewDecoder(r).Decode(dst); err != nil {
		return err
	}
	if r.Len() != 0 {
		return errors.Newf("msgpack: %d trailing bytes after value", r.Len())
	}
	return nil
}
