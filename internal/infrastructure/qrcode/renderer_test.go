package qrcode_test

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/qrcode-service/go/internal/core/domain/qrcode"
	renderer "github.com/avatarctic/qrcode-service/go/internal/infrastructure/qrcode"
)

func request(data string) qrcode.Request {
	return qrcode.GenerateRequest{Data: data}.ToRequest()
}

func TestRender_ProducesDecodablePNG(t *testing.T) {
	out, err := renderer.NewRenderer().Render(context.Background(), request("hello"))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("\x89PNG\r\n\x1a\n")))

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	// "hello" fits version 1 (21 modules) plus a 4 module quiet zone each side.
	b := img.Bounds()
	require.Equal(t, 29*10, b.Dx())
	require.Equal(t, b.Dx(), b.Dy())

	dark := func(x, y int) bool {
		r, g, bl, _ := img.At(x, y).RGBA()
		return r == 0 && g == 0 && bl == 0
	}
	assert.False(t, dark(0, 0), "quiet zone must be background")
	assert.True(t, dark(40, 40), "finder pattern corner must be dark")
}

func TestRender_IsDeterministic(t *testing.T) {
	r := renderer.NewRenderer()
	a, err := r.Render(context.Background(), request("same"))
	require.NoError(t, err)
	b, err := r.Render(context.Background(), request("same"))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestRender_Colors(t *testing.T) {
	req := request("hello")
	req.Size, req.Border = 1, 0
	req.FillColor, req.BackColor = "#f00", "navy"

	out, err := renderer.NewRenderer().Render(context.Background(), req)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 21, img.Bounds().Dx())

	r, g, b, _ := img.At(0, 0).RGBA()
	require.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b})
	r, g, b, _ = img.At(7, 0).RGBA()
	require.Equal(t, [3]uint32{0, 0, 0x8080}, [3]uint32{r, g, b})
}

func TestRender_Errors(t *testing.T) {
	r := renderer.NewRenderer()
	cases := map[string]struct {
		mutate func(*qrcode.Request)
		want   error
	}{
		"empty":      {func(q *qrcode.Request) { q.Data = "" }, qrcode.ErrEmptyData},
		"size":       {func(q *qrcode.Request) { q.Size = 0 }, qrcode.ErrInvalidSize},
		"color":      {func(q *qrcode.Request) { q.FillColor = "not-a-color" }, qrcode.ErrInvalidColor},
		"overflow":   {func(q *qrcode.Request) { q.Data = strings.Repeat("a", 5000) }, qrcode.ErrDataOverflow},
		"too large":  {func(q *qrcode.Request) { q.Size = 1000 }, qrcode.ErrImageTooLarge},
		"bad border": {func(q *qrcode.Request) { q.Border = -2 }, qrcode.ErrInvalidBorder},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := request("hello")
			tc.mutate(&req)
			_, err := r.Render(context.Background(), req)
			require.True(t, errors.Is(err, tc.want), "got %v", err)
			require.True(t, errors.Is(err, qrcode.ErrInvalidRequest))
		})
	}
}

func TestRender_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := renderer.NewRenderer().Render(ctx, request("x"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseColor(t *testing.T) {
	c, err := renderer.ParseColor("Black")
	require.NoError(t, err)
	require.Equal(t, color.RGBA{0, 0, 0, 0xff}, c)

	c, err = renderer.ParseColor("#0a0B0c")
	require.NoError(t, err)
	require.Equal(t, color.RGBA{0x0a, 0x0b, 0x0c, 0xff}, c)

	c, err = renderer.ParseColor(" #fff ")
	require.NoError(t, err)
	require.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, c)

	for _, bad := range []string{"", "#12", "#ggg", "#12345", "blurple"} {
		_, err := renderer.ParseColor(bad)
		require.True(t, errors.Is(err, qrcode.ErrInvalidColor), bad)
	}
}
