package serializer

import (
	"encoding/json"

	"github.com/avatarctic/qrcode-service/go/internal/core/ports"
)

// JSON is the default codec. encoding/json emits map keys in sorted order,
// which makes its output canonical for key derivation.
type JSON struct{}

var _ ports.Serializer = JSON{}

func NewJSON() JSON { return JSON{} }

func (JSON) Marshal(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (JSON) Unmarshal(data string, dst any) error {
	return json.Unmarshal([]byte(data), dst)
}
