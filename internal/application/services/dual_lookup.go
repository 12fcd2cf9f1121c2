package services

import (
	"context"

	"github.com/avatarctic/qrcode-service/go/internal/core/domain/memo"
	"github.com/avatarctic/qrcode-service/go/internal/core/ports"
)

// LookupDual reads key from store: a binary hit is authoritative; otherwise the
// text channel is decoded with serializer, falling back to the raw string when
// the stored text was not produced by serializer. Channel errors are returned
// marked memo.ErrBackendUnavailable.
func LookupDual(ctx context.Context, store ports.DualChannelStore, serializer ports.Serializer, key memo.Key) (memo.Payload, bool, error) {
	raw, ok, err := store.Binary().Get(ctx, key.String())
	if err != nil {
		return memo.Payload{}, false, memo.BackendUnavailable(err, opGetBinary)
	}
	if ok {
		return memo.Binary(raw), true, nil
	}

	text, ok, err := store.Text().Get(ctx, key.String())
	if err != nil {
		return memo.Payload{}, false, memo.BackendUnavailable(err, opGetText)
	}
	if !ok {
		return memo.Payload{}, false, nil
	}
	var decoded any
	if err := serializer.Unmarshal(text, &decoded); err != nil {
		return memo.Text(text), true, nil
	}
	return memo.Text(decoded), true, nil
}
