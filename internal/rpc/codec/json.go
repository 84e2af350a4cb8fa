// Package codec registers a JSON wire codec for the gRPC server. Per
// SPEC_FULL.md §4.5, protoc code generation is out of scope; method
// signatures, interceptor chaining, and status-code mapping stay fully
// idiomatic gRPC-Go while message encoding uses encoding/json in place of a
// generated protobuf codec.
package codec

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

func init() {
	encoding.RegisterCodec(Codec{})
}

// Name is registered with grpc.CallContentSubtype / grpc.ForceServerCodec.
const Name = "json"

// Codec implements google.golang.org/grpc/encoding.Codec over encoding/json.
type Codec struct{}

// Marshal implements encoding.Codec.
func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal implements encoding.Codec.
func (Codec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Name implements encoding.Codec.
func (Codec) Name() string {
	return Name
}
