package ports

import (
	"context"

	"github.com/avatarctic/qrcode-service/go/internal/core/domain/qrcode"
)

// QRRenderer turns a validated request into PNG bytes.
type QRRenderer interface {
	Render(ctx context.Context, req qrcode.Request) ([]byte, error)
}

// QRCodeService validates requests and serves PNG images, memoized when possible.
type QRCodeService interface {
	Generate(ctx context.Context, req qrcode.Request) ([]byte, error)
}
