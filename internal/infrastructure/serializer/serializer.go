// Package serializer provides the codecs used for cache keys and the text cache channel.
package serializer

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/avatarctic/qrcode-service/go/internal/core/ports"
)

// ByName returns the serializer registered under name ("json" or "msgpack").
func ByName(name string) (ports.Serializer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return NewJSON(), nil
	case "msgpack":
		return NewMsgpack(), nil
	default:
		return nil, errors.Newf("unknown serializer %q", name)
	}
}
