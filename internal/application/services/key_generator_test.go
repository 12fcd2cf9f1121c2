package services_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	impl "github.com/avatarctic/qrcode-service/go/internal/application/services"
	"github.com/avatarctic/qrcode-service/go/internal/core/domain/memo"
	"github.com/avatarctic/qrcode-service/go/internal/infrastructure/digest"
	"github.com/avatarctic/qrcode-service/go/internal/infrastructure/serializer"
)

func newKeyGenerator() *impl.KeyGenerator {
	return impl.NewKeyGenerator(serializer.NewJSON(), digest.MD5)
}

func TestDerive_Format(t *testing.T) {
	key, err := newKeyGenerator().Derive(memo.Signature{Function: "f", Args: []any{1}})
	require.NoError(t, err)
	require.Equal(t, "f:"+digest.MD5([]byte(`{"func":"f","args":[1],"kwargs":[]}`)), key.String())
}

func TestDerive_KwargOrderDoesNotMatter(t *testing.T) {
	g := newKeyGenerator()
	a, err := g.Derive(memo.Signature{Function: "f", Kwargs: map[string]any{"a": 1, "b": 2}})
	require.NoError(t, err)
	b, err := g.Derive(memo.Signature{Function: "f", Kwargs: map[string]any{"b": 2, "a": 1}})
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestDerive_KwargOrderDoesNotMatter_Msgpack(t *testing.T) {
	g := impl.NewKeyGenerator(serializer.NewMsgpack(), digest.XXHash)
	a, err := g.Derive(memo.Signature{Function: "f", Kwargs: map[string]any{"x": "1", "y": "2", "z": "3"}})
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		b, err := g.Derive(memo.Signature{Function: "f", Kwargs: map[string]any{"z": "3", "y": "2", "x": "1"}})
		require.NoError(t, err)
		require.Equal(t, a, b)
	}
}

func TestDerive_DistinguishesCalls(t *testing.T) {
	g := newKeyGenerator()
	derive := func(sig memo.Signature) memo.Key {
		k, err := g.Derive(sig)
		require.NoError(t, err)
		return k
	}

	base := derive(memo.Signature{Function: "f", Args: []any{1, 2}})
	require.NotEqual(t, base, derive(memo.Signature{Function: "f", Args: []any{2, 1}}))
	require.NotEqual(t, base, derive(memo.Signature{Function: "g", Args: []any{1, 2}}))
	require.NotEqual(t, base, derive(memo.Signature{Function: "f", Args: []any{1}, Kwargs: map[string]any{"b": 2}}))
	require.Equal(t, base, derive(memo.Signature{Function: "f", Args: []any{1, 2}}))
}

func TestDerive_NilAndEmptyArgsAgree(t *testing.T) {
	g := newKeyGenerator()
	a, err := g.Derive(memo.Signature{Function: "f"})
	require.NoError(t, err)
	b, err := g.Derive(memo.Signature{Function: "f", Args: []any{}, Kwargs: map[string]any{}})
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestDerive_UnencodableArgument(t *testing.T) {
	_, err := newKeyGenerator().Derive(memo.Signature{Function: "f", Args: []any{make(chan int)}})
	require.Error(t, err)
	require.True(t, errors.Is(err, memo.ErrKeyDerivation))
	require.False(t, memo.IsBackendUnavailable(err))
}
