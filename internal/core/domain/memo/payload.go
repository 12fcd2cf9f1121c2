package memo

import (
	"bytes"
	"io"
)

// Kind tags which cache channel a payload belongs to.
type Kind uint8

const (
	KindText Kind = iota
	KindBinary
)

func (k Kind) String() string {
	switch k {
	case KindBinary:
		return "binary"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Payload is the result of a memoized producer. It is either Binary (raw bytes,
// stored verbatim) or Text (a value stored through the configured serializer).
type Payload struct {
	kind  Kind
	data  []byte
	value any
}

// Binary wraps raw bytes such as an encoded image.
func Binary(b []byte) Payload {
	return Payload{kind: KindBinary, data: b}
}

// Text wraps a serializer-compatible value.
func Text(v any) Payload {
	return Payload{kind: KindText, value: v}
}

func (p Payload) Kind() Kind     { return p.kind }
func (p Payload) IsBinary() bool { return p.kind == KindBinary }

// Bytes returns the raw bytes of a Binary payload, nil otherwise.
func (p Payload) Bytes() []byte {
	if p.kind != KindBinary {
		return nil
	}
	return p.data
}

// Reader exposes a Binary payload as a fresh byte stream positioned at the start.
// Text payloads yield an empty reader.
func (p Payload) Reader() io.Reader {
	return bytes.NewReader(p.Bytes())
}

// Value returns the held value: the decoded (or raw string) value for Text,
// the byte slice for Binary.
func (p Payload) Value() any {
	if p.kind == KindBinary {
		return p.data
	}
	return p.value
}
