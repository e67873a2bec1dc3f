package codec

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/ledger-types/errors"
	"github.com/wippyai/ledger-types/schema"
)

// ContractID identifies a contract of template T. The identifier text is
// owned by the ledger; T only brands it, so identifiers of different
// templates cannot be mixed up even though both are plain text at runtime.
//
// A ContractID is obtained by decoding with ContractIDOf; there is no
// conversion from a bare string or from another template's identifier.
type ContractID[T any] struct {
	id string
}

// String returns the identifier text.
func (c ContractID[T]) String() string { return c.id }

// IsZero reports whether c is the zero identifier.
func (c ContractID[T]) IsZero() bool { return c.id == "" }

// MarshalText implements encoding.TextMarshaler.
func (c ContractID[T]) MarshalText() ([]byte, error) { return []byte(c.id), nil }

type contractIDCodec[T any] struct{}

// ContractIDOf returns the codec for identifiers of contracts of t. The
// argument only fixes T; its decoder is never called.
func ContractIDOf[T any](_ Serializable[T]) Serializable[ContractID[T]] {
	return contractIDCodec[T]{}
}

func (contractIDCodec[T]) Decode(raw any) (ContractID[T], error) {
	s, ok := raw.(string)
	if !ok {
		return ContractID[T]{}, errors.ShapeMismatch(errors.PhaseDecode, "contract id", raw)
	}
	return ContractID[T]{id: s}, nil
}

func (contractIDCodec[T]) Encode(v ContractID[T]) any { return v.id }

func (contractIDCodec[T]) WitType() wit.Type { return schema.Alias("contract-id", wit.String{}) }
