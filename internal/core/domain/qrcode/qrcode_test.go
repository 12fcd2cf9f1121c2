package qrcode_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/qrcode-service/go/internal/core/domain/qrcode"
)

func valid() qrcode.Request {
	return qrcode.GenerateRequest{Data: "hello"}.ToRequest()
}

func TestToRequest_AppliesDefaults(t *testing.T) {
	r := valid()
	assert.Equal(t, qrcode.Request{Data: "hello", Size: 10, Border: 4, FillColor: "black", BackColor: "white"}, r)

	size, fill := 3, "red"
	r = qrcode.GenerateRequest{Data: "x", Size: &size, FillColor: &fill}.ToRequest()
	assert.Equal(t, 3, r.Size)
	assert.Equal(t, "red", r.FillColor)
	assert.Equal(t, qrcode.DefaultBorder, r.Border)
}

func TestValidate(t *testing.T) {
	require.NoError(t, valid().Validate())

	zeroBorder := valid()
	zeroBorder.Border = 0
	require.NoError(t, zeroBorder.Validate())

	cases := map[string]struct {
		mutate func(*qrcode.Request)
		want   error
	}{
		"empty data":      {func(r *qrcode.Request) { r.Data = "" }, qrcode.ErrEmptyData},
		"zero size":       {func(r *qrcode.Request) { r.Size = 0 }, qrcode.ErrInvalidSize},
		"negative size":   {func(r *qrcode.Request) { r.Size = -1 }, qrcode.ErrInvalidSize},
		"negative border": {func(r *qrcode.Request) { r.Border = -1 }, qrcode.ErrInvalidBorder},
		"blank fill":      {func(r *qrcode.Request) { r.FillColor = " " }, qrcode.ErrInvalidColor},
		"blank back":      {func(r *qrcode.Request) { r.BackColor = "" }, qrcode.ErrInvalidColor},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := valid()
			tc.mutate(&r)
			err := r.Validate()
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.want))
			require.True(t, errors.Is(err, qrcode.ErrInvalidRequest))
		})
	}
}

func TestPositional_Order(t *testing.T) {
	r := valid()
	require.Equal(t, []any{"hello", 10, 4, "black", "white"}, r.Positional())
	require.Nil(t, r.Keyword())
}
