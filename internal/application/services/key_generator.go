package services

import (
	"github.com/cockroachdb/errors"

	"github.com/avatarctic/qrcode-service/go/internal/core/domain/memo"
	"github.com/avatarctic/qrcode-service/go/internal/core/ports"
)

// KeyGenerator derives cache keys from call signatures. It has no side effects
// and is safe for concurrent use.
type KeyGenerator struct {
	serializer ports.Serializer
	digest     ports.DigestFunc
}

func NewKeyGenerator(serializer ports.Serializer, digest ports.DigestFunc) *KeyGenerator {
	return &KeyGenerator{serializer: serializer, digest: digest}
}

// Derive encodes the canonical record of sig and returns "<function>:<digest>".
// Arguments the serializer cannot encode yield an error marked memo.ErrKeyDerivation.
func (g *KeyGenerator) Derive(sig memo.Signature) (memo.Key, error) {
	encoded, err := g.serializer.Marshal(sig.Canonical())
	if err != nil {
		return "", errors.Mark(errors.Wrapf(err, "encode call to %s", sig.Function), memo.ErrKeyDerivation)
	}
	return memo.Key(sig.Function + ":" + g.digest([]byte(encoded))), nil
}
