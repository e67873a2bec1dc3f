// Package errors provides structured error types for ledger value decoding
// and template metadata lookup.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the path from the root value, the expected and actual
// shapes, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindShapeMismatch).
//		Path("invoice", "amount").
//		Expected("numeric").
//		Actual("boolean").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err = errors.PatternMismatch(errors.PhaseDecode, "party", "bad!party")
//	err = errors.Element(errors.PhaseDecode, "3", cause)
//
// Container decoders wrap element failures with Element, so the outermost
// error has the full path and Innermost returns the actual mismatch:
//
//	[decode] element at items.1 (caused by: [decode] pattern_mismatch: expected int - "x" does not match)
//
// All errors implement the standard error interface and support errors.Is/As.
// errors.Is matches on Phase and Kind anywhere in the cause chain.
package errors
