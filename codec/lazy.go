package codec

import "github.com/wippyai/ledger-types/memo"

type lazyCodec[A any] struct {
	get func() Serializable[A]
}

// LazyMemo defers building a codec until its first Decode or Encode and
// reuses the built codec afterwards. It is how codecs of self-referential
// types are declared:
//
//	var TreeCodec codec.Serializable[Tree]
//
//	func init() {
//		TreeCodec = codec.LazyMemo(func() codec.Serializable[Tree] {
//			return treeCodec(codec.ListOf(TreeCodec))
//		})
//	}
//
// An optional codec wrapped in LazyMemo is not recognised as optional by an
// enclosing OptionalOf; wrap the inner element instead.
func LazyMemo[A any](mk func() Serializable[A]) Serializable[A] {
	return lazyCodec[A]{get: memo.Memo(mk)}
}

func (c lazyCodec[A]) Decode(raw any) (A, error) { return c.get().Decode(raw) }
func (c lazyCodec[A]) Encode(v A) any            { return c.get().Encode(v) }
