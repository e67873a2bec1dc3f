package codec

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/ledger-types/errors"
	"github.com/wippyai/ledger-types/schema"
)

// Object checks that raw is a record and returns its fields.
func Object(raw any) (map[string]any, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.ShapeMismatch(errors.PhaseDecode, "record", raw)
	}
	return obj, nil
}

// Field decodes the named field of obj. A missing field is decoded as null,
// so optional fields may be omitted; when s rejects null the error is a
// field_missing error. Any other failure is wrapped with the field name.
func Field[T any](obj map[string]any, name string, s Serializable[T]) (T, error) {
	raw, ok := obj[name]
	if !ok {
		v, err := s.Decode(nil)
		if err != nil {
			return v, errors.FieldMissing(errors.PhaseDecode, name)
		}
		return v, nil
	}
	v, err := s.Decode(raw)
	if err != nil {
		return v, errors.Element(errors.PhaseDecode, name, err)
	}
	return v, nil
}

type enumCodec[T ~string] struct {
	name   string
	values []T
	index  map[string]struct{}
}

// Enum returns the codec for an enumeration whose constructors are encoded
// as their names. name is used in errors and schema output.
func Enum[T ~string](name string, values ...T) Serializable[T] {
	idx := make(map[string]struct{}, len(values))
	for _, v := range values {
		idx[string(v)] = struct{}{}
	}
	return enumCodec[T]{name: name, values: values, index: idx}
}

func (c enumCodec[T]) Decode(raw any) (T, error) {
	s, ok := raw.(string)
	if !ok {
		return "", errors.ShapeMismatch(errors.PhaseDecode, c.name, raw)
	}
	if _, ok := c.index[s]; !ok {
		return "", errors.UnknownVariant(errors.PhaseDecode, c.name, s)
	}
	return T(s), nil
}

func (c enumCodec[T]) Encode(v T) any { return string(v) }

func (c enumCodec[T]) WitType() wit.Type {
	cases := make([]string, len(c.values))
	for i, v := range c.values {
		cases[i] = string(v)
	}
	return schema.Enum(c.name, cases...)
}
