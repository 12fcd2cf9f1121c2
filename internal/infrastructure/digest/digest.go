// Package digest provides the fixed-length fingerprints used in cache keys.
package digest

import (
	"crypto/md5" //nolint:gosec // fingerprint only, not a security boundary
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"

	"github.com/avatarctic/qrcode-service/go/internal/core/ports"
)

// MD5 yields 32 hex characters.
func MD5(b []byte) string {
	sum := md5.Sum(b) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// SHA256 yields 64 hex characters.
func SHA256(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// XXHash yields 16 hex characters. Not collision resistant against adversaries.
func XXHash(b []byte) string {
	s := strconv.FormatUint(xxhash.Sum64(b), 16)
	return strings.Repeat("0", 16-len(s)) + s
}

// ByName resolves "md5" (default), "sha256" or "xxhash".
func ByName(name string) (ports.DigestFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "md5":
		return MD5, nil
	case "sha256":
		return SHA256, nil
	case "xxhash":
		return XXHash, nil
	default:
		return nil, errors.Newf("unknown key digest %q", name)
	}
}
