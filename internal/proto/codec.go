// Package proto is the wire contract between the OTPKeeper client and
// server: request and response messages, the gRPC service description, and
// the codec the messages travel in.
//
// Messages are plain Go structs that encode themselves in the protobuf
// binary format (field numbers are fixed per message, timestamps are
// google.protobuf.Timestamp), so no generated code is needed. The client
// stub selects the codec on every call; the server picks it up from the
// request content type.
package proto

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype carrying OTPKeeper messages.
const CodecName = "otpkeeper-proto"

var ErrNotMessage = errors.New("not an otpkeeper message")

// message is implemented by every request and response type.
type message interface {
	appendWire(b []byte) []byte
	setField(f field) error
}

type wireCodec struct{}

func (wireCodec) Marshal(v any) ([]byte, error) {
	m, ok := v.(message)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotMessage, v)
	}
	return m.appendWire(nil), nil
}

func (wireCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(message)
	if !ok {
		return fmt.Errorf("%w: %T", ErrNotMessage, v)
	}
	return unmarshal(data, m)
}

func (wireCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(wireCodec{})
}
