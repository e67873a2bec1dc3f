package codec

import (
	"fmt"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/ledger-types/errors"
	"github.com/wippyai/ledger-types/schema"
)

// Optional holds a value of T or nothing. The zero value is absent.
type Optional[T any] struct {
	value   T
	present bool
}

// Some returns a present optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None returns an absent optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// IsPresent reports whether o holds a value.
func (o Optional[T]) IsPresent() bool {
	return o.present
}

// OrElse returns the value, or def when absent.
func (o Optional[T]) OrElse(def T) T {
	if o.present {
		return o.value
	}
	return def
}

// String formats o as Some(value) or None.
func (o Optional[T]) String() string {
	if !o.present {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// nested is implemented by optional codecs. An outer optional whose element
// codec implements nested[T] encodes its present value through it, using
// the list form instead of null for the inner level.
type nested[T any] interface {
	decodeNested(raw any) (T, error)
	encodeNested(v T) any
}

type optionalCodec[T any] struct {
	elem   Serializable[T]
	nested nested[T]
}

// OptionalOf returns the codec for optional values of elem.
//
// null decodes to None. Any other value is the present payload: decoded by
// elem directly, or, when elem is itself an optional codec, taken from a
// list of zero or one elements ([] is the absent inner value, [x] the
// present one).
func OptionalOf[T any](elem Serializable[T]) Serializable[Optional[T]] {
	c := &optionalCodec[T]{elem: elem}
	if n, ok := elem.(nested[T]); ok {
		c.nested = n
	}
	return c
}

func (c *optionalCodec[T]) Decode(raw any) (Optional[T], error) {
	if raw == nil {
		return None[T](), nil
	}
	v, err := c.decodePayload(raw)
	if err != nil {
		return None[T](), err
	}
	return Some(v), nil
}

func (c *optionalCodec[T]) Encode(v Optional[T]) any {
	if !v.present {
		return nil
	}
	return c.encodePayload(v.value)
}

func (c *optionalCodec[T]) decodePayload(raw any) (T, error) {
	if c.nested != nil {
		return c.nested.decodeNested(raw)
	}
	return c.elem.Decode(raw)
}

func (c *optionalCodec[T]) encodePayload(v T) any {
	if c.nested != nil {
		return c.nested.encodeNested(v)
	}
	return c.elem.Encode(v)
}

// decodeNested decodes this optional when it sits inside another optional.
func (c *optionalCodec[T]) decodeNested(raw any) (Optional[T], error) {
	arr, ok := raw.([]any)
	if !ok {
		return None[T](), errors.ShapeMismatch(errors.PhaseDecode, "nested optional ([] or [value])", raw)
	}
	switch len(arr) {
	case 0:
		return None[T](), nil
	case 1:
		v, err := c.decodePayload(arr[0])
		if err != nil {
			return None[T](), errors.Element(errors.PhaseDecode, "0", err)
		}
		return Some(v), nil
	default:
		return None[T](), errors.New(errors.PhaseDecode, errors.KindShapeMismatch).
			Expected("nested optional ([] or [value])").
			Actual("array").
			Value(raw).
			Detail("%d elements", len(arr)).
			Build()
	}
}

func (c *optionalCodec[T]) encodeNested(v Optional[T]) any {
	if !v.present {
		return []any{}
	}
	return []any{c.encodePayload(v.value)}
}

func (c *optionalCodec[T]) WitType() wit.Type {
	return schema.Option(schema.Describe(c.elem))
}
