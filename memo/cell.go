package memo

import (
	"sync/atomic"

	"github.com/wippyai/ledger-types/errors"
)

// Cell is a write-once reference. The zero value is an empty cell ready for use.
type Cell[T any] struct {
	v    atomic.Pointer[T]
	name string
}

// NewCell creates an empty cell. The name is used in the panic raised when
// the cell is read before it is set.
func NewCell[T any](name string) *Cell[T] {
	return &Cell[T]{name: name}
}

// Set stores v if the cell is empty and reports whether it did. A cell is
// never overwritten.
func (c *Cell[T]) Set(v T) bool {
	return c.v.CompareAndSwap(nil, &v)
}

// Get returns the stored value and whether the cell has been set.
func (c *Cell[T]) Get() (T, bool) {
	p := c.v.Load()
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// MustGet returns the stored value. Reading an empty cell is a construction
// order bug and panics with a not_initialized error.
func (c *Cell[T]) MustGet() T {
	v, ok := c.Get()
	if !ok {
		name := c.name
		if name == "" {
			name = "cell"
		}
		panic(errors.NotInitialized(errors.PhaseRegistry, name))
	}
	return v
}

// Accessor returns a zero-argument function resolving the cell on demand.
func (c *Cell[T]) Accessor() func() T {
	return c.MustGet
}
