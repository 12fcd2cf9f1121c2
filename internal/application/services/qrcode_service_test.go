package services_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	impl "github.com/avatarctic/qrcode-service/go/internal/application/services"
	"github.com/avatarctic/qrcode-service/go/internal/core/domain/qrcode"
	"github.com/avatarctic/qrcode-service/go/internal/infrastructure/memory"
	"github.com/avatarctic/qrcode-service/go/internal/mocks"
)

func defaultRequest(data string) qrcode.Request {
	return qrcode.GenerateRequest{Data: data}.ToRequest()
}

func TestQRCodeService_CachesRenderedImage(t *testing.T) {
	ctx := context.Background()
	renderer := &mocks.RendererMock{}
	rec := mocks.NewRecorderMock()
	svc := impl.NewQRCodeService(renderer, newMemoizer(memory.New(), rec), logrus.New())

	first, err := svc.Generate(ctx, defaultRequest("hello"))
	require.NoError(t, err)
	second, err := svc.Generate(ctx, defaultRequest("hello"))
	require.NoError(t, err)

	require.Equal(t, 1, renderer.Calls())
	require.Equal(t, first, second)
	require.Equal(t, 1, rec.ProducerCalls[impl.GenerateFunction])

	other := defaultRequest("hello")
	other.FillColor = "navy"
	_, err = svc.Generate(ctx, other)
	require.NoError(t, err)
	require.Equal(t, 2, renderer.Calls())
}

func TestQRCodeService_InvalidRequestSkipsCacheAndRenderer(t *testing.T) {
	renderer := &mocks.RendererMock{}
	rec := mocks.NewRecorderMock()
	svc := impl.NewQRCodeService(renderer, newMemoizer(memory.New(), rec), nil)

	req := defaultRequest("hello")
	req.Size = 0
	_, err := svc.Generate(context.Background(), req)
	require.True(t, errors.Is(err, qrcode.ErrInvalidSize))
	require.Equal(t, 0, renderer.Calls())
	require.Equal(t, 0, rec.Misses)
}

func TestQRCodeService_EmptyDataRejected(t *testing.T) {
	renderer := &mocks.RendererMock{}
	rec := mocks.NewRecorderMock()
	svc := impl.NewQRCodeService(renderer, newMemoizer(memory.New(), rec), nil)

	_, err := svc.Generate(context.Background(), defaultRequest(""))
	require.True(t, errors.Is(err, qrcode.ErrEmptyData))
	require.True(t, errors.Is(err, qrcode.ErrInvalidRequest))
	require.Equal(t, 0, renderer.Calls())
	require.Equal(t, 0, rec.Misses)
}

func TestQRCodeService_RendererErrorsPropagate(t *testing.T) {
	renderer := &mocks.RendererMock{RenderFn: func(context.Context, qrcode.Request) ([]byte, error) {
		return nil, errors.Wrap(qrcode.ErrDataOverflow, "version 40 exceeded")
	}}
	svc := impl.NewQRCodeService(renderer, newMemoizer(memory.New(), nil), logrus.New())

	for i := 0; i < 2; i++ {
		_, err := svc.Generate(context.Background(), defaultRequest("x"))
		require.True(t, errors.Is(err, qrcode.ErrDataOverflow))
		require.True(t, errors.Is(err, qrcode.ErrInvalidRequest))
	}
	require.Equal(t, 2, renderer.Calls())
}

func TestQRCodeService_ServesThroughOutage(t *testing.T) {
	renderer := &mocks.RendererMock{}
	svc := impl.NewQRCodeService(renderer, newMemoizer(mocks.UnreachableStore(), nil), logrus.New())

	for i := 0; i < 2; i++ {
		png, err := svc.Generate(context.Background(), defaultRequest("down"))
		require.NoError(t, err)
		require.NotEmpty(t, png)
	}
	require.Equal(t, 2, renderer.Calls())
}

func TestQRCodeService_WithoutMemoizer(t *testing.T) {
	renderer := &mocks.RendererMock{}
	svc := impl.NewQRCodeService(renderer, nil, nil)
	for i := 0; i < 2; i++ {
		_, err := svc.Generate(context.Background(), defaultRequest("x"))
		require.NoError(t, err)
	}
	require.Equal(t, 2, renderer.Calls())
}
