package memo

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/wippyai/ledger-types/errors"
)

// Memo returns an accessor that runs thunk on its first invocation and
// returns the cached result on every later one. Concurrent first calls block
// until the single evaluation finishes. If thunk panics, every call re-panics
// with the same value.
//
// A thunk that calls its own accessor before returning has no value to
// observe; the inner call panics with a not_initialized error, which then
// sticks like any other panic of thunk.
func Memo[A any](thunk func() A) func() A {
	var (
		once  sync.Once
		owner atomic.Uint64
		value A
		p     any
		ok    bool
	)
	return func() A {
		if id := owner.Load(); id != 0 && id == goroutineID() {
			panic(errors.NotInitialized(errors.PhaseRegistry, "memoized value (accessor called during its own evaluation)"))
		}
		once.Do(func() {
			owner.Store(goroutineID())
			defer func() {
				owner.Store(0)
				if !ok {
					p = recover()
				}
			}()
			value = thunk()
			ok = true
			thunk = nil
		})
		if !ok {
			panic(p)
		}
		return value
	}
}

// goroutineID parses the id from the header line of the current
// goroutine's stack, "goroutine N [...]". It is read only while a first
// evaluation is in progress.
func goroutineID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseUint(string(b), 10, 64)
	return id
}

// Memo2 is Memo for computations that can fail. The error is cached along
// with the value; a failed computation is not retried.
func Memo2[A any](thunk func() (A, error)) func() (A, error) {
	type result struct {
		value A
		err   error
	}
	get := Memo(func() result {
		v, err := thunk()
		return result{value: v, err: err}
	})
	return func() (A, error) {
		r := get()
		return r.value, r.err
	}
}
