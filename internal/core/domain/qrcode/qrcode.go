package qrcode

import (
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	DefaultSize      = 10
	DefaultBorder    = 4
	DefaultFillColor = "black"
	DefaultBackColor = "white"
)

// ErrInvalidRequest is the parent mark of every input error a caller can fix.
var ErrInvalidRequest = errors.New("invalid qr code request")

var (
	ErrEmptyData     = errors.Mark(errors.New("data must not be empty"), ErrInvalidRequest)
	ErrInvalidSize   = errors.Mark(errors.New("size must be a positive integer"), ErrInvalidRequest)
	ErrInvalidBorder = errors.Mark(errors.New("border must be a non-negative integer"), ErrInvalidRequest)
	ErrInvalidColor  = errors.Mark(errors.New("invalid color"), ErrInvalidRequest)
	ErrDataOverflow  = errors.Mark(errors.New("data too long to encode in a qr code"), ErrInvalidRequest)
	ErrImageTooLarge = errors.Mark(errors.New("requested image is too large"), ErrInvalidRequest)
)

// Request describes one QR code image.
type Request struct {
	Data      string `json:"data"`
	Size      int    `json:"size"`
	Border    int    `json:"border"`
	FillColor string `json:"fill_color"`
	BackColor string `json:"back_color"`
}

// Positional lists the request fields in producer argument order.
func (r Request) Positional() []any {
	return []any{r.Data, r.Size, r.Border, r.FillColor, r.BackColor}
}

func (r Request) Keyword() map[string]any { return nil }

// Validate checks the numeric and text bounds. Color syntax is checked by the renderer.
func (r Request) Validate() error {
	if r.Data == "" {
		return ErrEmptyData
	}
	if r.Size <= 0 {
		return ErrInvalidSize
	}
	if r.Border < 0 {
		return ErrInvalidBorder
	}
	if strings.TrimSpace(r.FillColor) == "" || strings.TrimSpace(r.BackColor) == "" {
		return ErrInvalidColor
	}
	return nil
}

// GenerateRequest is the wire form of Request; omitted fields take defaults.
type GenerateRequest struct {
	Data      string  `json:"data"`
	Size      *int    `json:"size,omitempty"`
	Border    *int    `json:"border,omitempty"`
	FillColor *string `json:"fill_color,omitempty"`
	BackColor *string `json:"back_color,omitempty"`
}

// ToRequest fills defaults for omitted fields.
func (g GenerateRequest) ToRequest() Request {
	r := Request{
		Data:      g.Data,
		Size:      DefaultSize,
		Border:    DefaultBorder,
		FillColor: DefaultFillColor,
		BackColor: DefaultBackColor,
	}
	if g.Size != nil {
		r.Size = *g.Size
	}
	if g.Border != nil {
		r.Border = *g.Border
	}
	if g.FillColor != nil {
		r.FillColor = *g.FillColor
	}
	if g.BackColor != nil {
		r.BackColor = *g.BackColor
	}
	return r
}
