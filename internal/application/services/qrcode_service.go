package services

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/qrcode-service/go/internal/core/domain/memo"
	"github.com/avatarctic/qrcode-service/go/internal/core/domain/qrcode"
	"github.com/avatarctic/qrcode-service/go/internal/core/ports"
)

// GenerateFunction is the producer name QR images are cached under.
const GenerateFunction = "generate_qr_code"

// SignatureFor is the memoized call signature of rendering req.
func SignatureFor(req qrcode.Request) memo.Signature {
	return memo.SignatureOf(GenerateFunction, req)
}

type QRCodeService struct {
	generate Producer[qrcode.Request]
	logger   *logrus.Logger
}

// NewQRCodeService wires renderer behind memoizer. A nil memoizer renders every call.
func NewQRCodeService(renderer ports.QRRenderer, memoizer *Memoizer, logger *logrus.Logger) ports.QRCodeService {
	var generate Producer[qrcode.Request] = func(ctx context.Context, req qrcode.Request) (memo.Payload, error) {
		png, err := renderer.Render(ctx, req)
		if err != nil {
			return memo.Payload{}, err
		}
		return memo.Binary(png), nil
	}
	if memoizer != nil {
		generate = Wrap(memoizer, GenerateFunction, generate)
	}
	return &QRCodeService{generate: generate, logger: logger}
}

func (s *QRCodeService) Generate(ctx context.Context, req qrcode.Request) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	payload, err := s.generate(ctx, req)
	if err != nil {
		if s.logger != nil && !errors.Is(err, qrcode.ErrInvalidRequest) {
			s.logger.WithFields(logrus.Fields{"size": req.Size, "border": req.Border}).WithError(err).Error("failed to generate qr code")
		}
		return nil, err
	}
	if !payload.IsBinary() {
		return nil, errors.Newf("%s: expected binary payload, got %s", GenerateFunction, payload.Kind())
	}
	return payload.Bytes(), nil
}
