package api

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// jsonCodec marshals plain Go structs. It replaces connect's default "json"
// codec, which only accepts protobuf messages.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	return nil
}

// WithJSON is the codec option every handler and client in this package uses.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
