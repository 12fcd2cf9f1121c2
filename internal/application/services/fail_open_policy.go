package services

import (
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/qrcode-service/go/internal/core/domain/memo"
	"github.com/avatarctic/qrcode-service/go/internal/core/ports"
)

// Cache operations reported to the policy and the recorder.
const (
	opGetBinary = "get_binary"
	opGetText   = "get_text"
	opSetBinary = "set_binary"
	opSetText   = "set_text"
)

// FailOpenPolicy decides which cache errors the memoizer may swallow.
// Only errors marked memo.ErrBackendUnavailable qualify.
type FailOpenPolicy struct {
	logger   *logrus.Logger
	recorder ports.CacheRecorder
}

func NewFailOpenPolicy(logger *logrus.Logger, recorder ports.CacheRecorder) *FailOpenPolicy {
	return &FailOpenPolicy{logger: logger, recorder: recorder}
}

// Classify marks any error raised by a channel operation as backend-unavailable.
func (p *FailOpenPolicy) Classify(op string, err error) error {
	return memo.BackendUnavailable(err, op)
}

// Absorb reports whether err can be recovered from by bypassing the cache.
// Recovered errors are logged and counted; everything else must propagate.
func (p *FailOpenPolicy) Absorb(key memo.Key, err error) bool {
	if !memo.IsBackendUnavailable(err) {
		return false
	}
	op := memo.BackendOp(err)
	if p.recorder != nil {
		p.recorder.BackendError(op)
	}
	if p.logger != nil {
		p.logger.WithFields(logrus.Fields{"op": op, "key": key.String()}).WithError(err).Warn("cache backend unavailable; bypassing cache (fail-open)")
	}
	return true
}
