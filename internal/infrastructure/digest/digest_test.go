package digest_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avatarctic/qrcode-service/go/internal/infrastructure/digest"
)

func TestKnownDigests(t *testing.T) {
	require.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", digest.MD5(nil))
	require.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", digest.SHA256(nil))
	require.Equal(t, "ef46db3751d8e999", digest.XXHash(nil))
}

func TestLengths(t *testing.T) {
	in := []byte(`{"func":"generate_qr_code","args":["hello",10,4,"black","white"],"kwargs":[]}`)
	require.Len(t, digest.MD5(in), 32)
	require.Len(t, digest.SHA256(in), 64)
	require.Len(t, digest.XXHash(in), 16)
}

func TestByName(t *testing.T) {
	f, err := digest.ByName("")
	require.NoError(t, err)
	require.Equal(t, digest.MD5([]byte("x")), f([]byte("x")))

	f, err = digest.ByName("SHA256")
	require.NoError(t, err)
	require.Len(t, f([]byte("x")), 64)

	f, err = digest.ByName("xxhash")
	require.NoError(t, err)
	require.Len(t, f([]byte("x")), 16)

	_, err = digest.ByName("crc32")
	require.Error(t, err)
}
