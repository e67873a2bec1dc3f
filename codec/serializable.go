package codec

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/ledger-types/schema"
)

// Serializable converts between untyped ledger values and T.
type Serializable[T any] interface {
	// Decode validates raw and converts it to T.
	Decode(raw any) (T, error)
	// Encode converts v to its untyped ledger representation.
	Encode(v T) any
}

// Decode runs s over raw.
func Decode[T any](s Serializable[T], raw any) (T, error) {
	return s.Decode(raw)
}

// Encode runs s over v.
func Encode[T any](s Serializable[T], v T) any {
	return s.Encode(v)
}

type funcCodec[T any] struct {
	decode func(raw any) (T, error)
	encode func(v T) any
}

// Func builds a Serializable from a decode and an encode function. The two
// must be inverses of each other.
func Func[T any](decode func(raw any) (T, error), encode func(v T) any) Serializable[T] {
	return funcCodec[T]{decode: decode, encode: encode}
}

func (c funcCodec[T]) Decode(raw any) (T, error) { return c.decode(raw) }
func (c funcCodec[T]) Encode(v T) any            { return c.encode(v) }

type describedCodec[T any] struct {
	Serializable[T]
	witType func() wit.Type
}

// WithType attaches a WIT description to s for schema output. The function
// is called on demand, so it may describe types that refer to s itself.
func WithType[T any](s Serializable[T], witType func() wit.Type) Serializable[T] {
	return describedCodec[T]{Serializable: s, witType: witType}
}

func (c describedCodec[T]) WitType() wit.Type { return c.witType() }

var _ schema.Describer = describedCodec[int]{}
