// Package schema describes ledger value codecs as WIT types.
//
// Codecs that know their shape implement Describer. Describe returns that
// description, or a plain string for codecs that do not describe themselves
// (hand-written Func codecs, lazily built recursive codecs). Format renders a
// compact signature such as
//
//	record invoice { seller: party, amount: numeric(10), due: option<date> }
//
// which the inspect command prints for payloads, keys and choices.
//
// Ledger primitives map onto WIT as follows:
//
//	Unit            unit (alias of tuple<>)
//	Bool            bool
//	Int             int (alias of s64)
//	Text            string
//	Numeric(n)      numeric(n) (alias of string)
//	Time/Date/Party named aliases of string
//	List[T]         list<T>
//	Optional[T]     option<T>
//	TextMap[T]      list<tuple<string, T>>
//	ContractID[T]   contract-id (alias of string)
package schema
