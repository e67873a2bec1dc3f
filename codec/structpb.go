package codec

import (
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/wippyai/ledger-types/errors"
)

// FromStruct converts a protobuf Value into the untyped form decoders take.
// A nil Value is null.
func FromStruct(v *structpb.Value) any {
	if v == nil {
		return nil
	}
	return v.AsInterface()
}

// ToStruct converts an untyped value, such as the output of Encode, into a
// protobuf Value.
func ToStruct(raw any) (*structpb.Value, error) {
	v, err := structpb.NewValue(raw)
	if err != nil {
		return nil, errors.New(errors.PhaseEncode, errors.KindShapeMismatch).
			Expected("protobuf value").
			Actual(errors.ShapeOf(raw)).
			Cause(err).
			Build()
	}
	return v, nil
}

// DecodeStruct decodes a protobuf Value with s.
func DecodeStruct[T any](s Serializable[T], v *structpb.Value) (T, error) {
	return s.Decode(FromStruct(v))
}

// EncodeStruct encodes v with s into a protobuf Value.
func EncodeStruct[T any](s Serializable[T], v T) (*structpb.Value, error) {
	return ToStruct(s.Encode(v))
}
