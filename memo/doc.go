// Package memo provides compute-once accessors and deferred references.
//
// Memo turns a zero-argument computation into an accessor that evaluates it
// at most once, even under concurrent first calls:
//
//	index := memo.Memo(func() map[string]int { return buildIndex() })
//	m := index() // builds
//	m = index()  // cached
//
// Cell is a reference filled in after the value it points to has finished
// constructing. It breaks initialization cycles between values that must
// refer to each other, such as a template and the choices defined on it:
// the choice is built holding an empty cell, the template is built holding
// the choice, and only then is the cell set.
//
// # Reentrancy
//
// Once the first evaluation has returned, every call returns the cached
// value, including calls made while some consumer of that value is still
// running (a recursive decoder calling its own accessor). A thunk that calls
// its own accessor during the first evaluation has no value to see: that
// call panics with a not_initialized error and the accessor keeps panicking.
// Defer such self-references behind another accessor instead.
package memo
