// Package codec decodes untyped ledger values into typed Go values and
// encodes them back.
//
// Ledger values arrive as the generic shapes produced by encoding/json:
// map[string]any, []any, string, bool, json.Number or float64, and nil. A
// Serializable[T] validates such a value and converts it to T, or fails
// with a structured *errors.Error naming the path and the kind of mismatch.
// Encode is the exact inverse: decoding an encoded value yields the value
// that was encoded.
//
// # Primitives
//
//	UnitCodec      {}                     Unit
//	BoolCodec      true / false           bool
//	IntCodec       "42" (or 42)           Int
//	NumericCodec(n) "-1.25e3"             Numeric
//	DecimalCodec   NumericCodec(10)       Decimal
//	TextCodec      any text               string
//	TimeCodec      "2024-05-01T10:00:00Z" Time
//	DateCodec      "2024-05-01"           Date
//	PartyCodec     "Alice::1220"          Party
//
// Int and Numeric are carried as text so no precision is lost. Patterns are
// checked, calendars are not.
//
// # Containers
//
//	ListOf(t)        [x, y]           []T
//	OptionalOf(t)    null | x         Optional[T]
//	TextMapOf(t)     {"k": x}         TextMap[T]
//	ContractIDOf(t)  "00ab..."        ContractID[T]
//
// An optional whose element is itself optional uses a list for the inner
// level, so every combination of present and absent has one encoding:
//
//	Optional[Optional[Int]]   null -> None    [] -> Some(None)    ["5"] -> Some(Some("5"))
//
// # Records
//
// Record codecs are written with Func, Object and Field:
//
//	var InvoiceCodec = codec.Func(
//		func(raw any) (Invoice, error) {
//			obj, err := codec.Object(raw)
//			if err != nil {
//				return Invoice{}, err
//			}
//			var inv Invoice
//			if inv.Seller, err = codec.Field(obj, "seller", codec.PartyCodec); err != nil {
//				return Invoice{}, err
//			}
//			...
//		},
//		func(v Invoice) any {
//			return map[string]any{"seller": codec.PartyCodec.Encode(v.Seller), ...}
//		},
//	)
//
// Types that refer to themselves are built with LazyMemo, which defers
// construction of the codec until the first Decode or Encode.
//
// # Thread Safety
//
// All codecs are immutable after construction and safe for concurrent use.
package codec
