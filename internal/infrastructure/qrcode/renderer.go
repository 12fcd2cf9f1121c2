// Package qrcode renders QR code PNG images.
package qrcode

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	goqrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/colornames"

	"github.com/avatarctic/qrcode-service/go/internal/core/domain/qrcode"
	"github.com/avatarctic/qrcode-service/go/internal/core/ports"
)

// MaxDimension caps the edge length of a rendered image in pixels.
const MaxDimension = 8192

// Renderer draws QR codes at low error correction using the smallest version
// that fits the data. Size is pixels per module and Border is the quiet zone
// width in modules.
type Renderer struct{}

var _ ports.QRRenderer = Renderer{}

func NewRenderer() Renderer { return Renderer{} }

func (Renderer) Render(ctx context.Context, req qrcode.Request) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	fill, err := ParseColor(req.FillColor)
	if err != nil {
		return nil, err
	}
	back, err := ParseColor(req.BackColor)
	if err != nil {
		return nil, err
	}

	q, err := goqrcode.New(req.Data, goqrcode.Low)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "encode data"), qrcode.ErrDataOverflow)
	}
	q.DisableBorder = true
	bitmap := q.Bitmap()

	modules := len(bitmap) + 2*req.Border
	if modules > MaxDimension/req.Size {
		return nil, qrcode.ErrImageTooLarge
	}
	dim := modules * req.Size

	img := image.NewPaletted(image.Rect(0, 0, dim, dim), color.Palette{back, fill})
	offset := req.Border * req.Size
	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			x0, y0 := offset+x*req.Size, offset+y*req.Size
			for py := y0; py < y0+req.Size; py++ {
				for px := x0; px < x0+req.Size; px++ {
					img.SetColorIndex(px, py, 1)
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "encode png")
	}
	return buf.Bytes(), nil
}

// ParseColor accepts CSS color names and #rgb / #rrggbb hex notation.
func ParseColor(s string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	if !strings.HasPrefix(name, "#") {
		return nil, errors.Wrapf(qrcode.ErrInvalidColor, "%q", s)
	}
	hex := name[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, errors.Wrapf(qrcode.ErrInvalidColor, "%q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, errors.Wrapf(qrcode.ErrInvalidColor, "%q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
