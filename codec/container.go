package codec

import (
	"sort"
	"strconv"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/ledger-types/errors"
	"github.com/wippyai/ledger-types/schema"
)

type listCodec[T any] struct {
	elem Serializable[T]
}

// ListOf returns the codec for lists whose elements are decoded by elem.
// Decoding stops at the first failing element; the error is an element
// error whose path starts with the element's index.
func ListOf[T any](elem Serializable[T]) Serializable[[]T] {
	return listCodec[T]{elem: elem}
}

func (c listCodec[T]) Decode(raw any) ([]T, error) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, errors.ShapeMismatch(errors.PhaseDecode, "list", raw)
	}
	out := make([]T, len(arr))
	for i, v := range arr {
		d, err := c.elem.Decode(v)
		if err != nil {
			return nil, errors.Element(errors.PhaseDecode, strconv.Itoa(i), err)
		}
		out[i] = d
	}
	return out, nil
}

func (c listCodec[T]) Encode(v []T) any {
	out := make([]any, len(v))
	for i, e := range v {
		out[i] = c.elem.Encode(e)
	}
	return out
}

func (c listCodec[T]) WitType() wit.Type {
	return schema.List(schema.Describe(c.elem))
}

// TextMap is a string-keyed map.
type TextMap[T any] map[string]T

type textMapCodec[T any] struct {
	elem Serializable[T]
}

// TextMapOf returns the codec for string-keyed maps whose values are
// decoded by elem. Values are decoded in key order, so the reported failure
// is the one with the smallest key.
func TextMapOf[T any](elem Serializable[T]) Serializable[TextMap[T]] {
	return textMapCodec[T]{elem: elem}
}

func (c textMapCodec[T]) Decode(raw any) (TextMap[T], error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.ShapeMismatch(errors.PhaseDecode, "text map", raw)
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(TextMap[T], len(obj))
	for _, k := range keys {
		d, err := c.elem.Decode(obj[k])
		if err != nil {
			return nil, errors.Element(errors.PhaseDecode, k, err)
		}
		out[k] = d
	}
	return out, nil
}

func (c textMapCodec[T]) Encode(v TextMap[T]) any {
	out := make(map[string]any, len(v))
	for k, e := range v {
		out[k] = c.elem.Encode(e)
	}
	return out
}

func (c textMapCodec[T]) WitType() wit.Type {
	return schema.List(schema.Tuple(wit.String{}, schema.Describe(c.elem)))
}
