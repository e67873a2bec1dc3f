package template

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/ledger-types/codec"
	"github.com/wippyai/ledger-types/errors"
)

type counter struct{ N codec.Int }

func TestRegistry_LookupMissing(t *testing.T) {
	r := NewRegistry()
	_, err := r.Lookup("pkg:Mod:Missing")
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseRegistry, Kind: errors.KindTemplateNotFound})
	assert.Panics(t, func() { r.MustLookup("pkg:Mod:Missing") })
}

func TestRegistry_LastWriteWins(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := NewRegistry(WithLogger(zap.New(core)))

	a := New("pkg:Mod:Counter", codec.Func(
		func(raw any) (counter, error) { return counter{N: "1"}, nil },
		func(counter) any { return nil },
	), codec.NoKey())
	b := New("pkg:Mod:Counter", codec.Func(
		func(raw any) (counter, error) {
			n, err := codec.IntCodec.Decode(raw)
			return counter{N: n}, err
		},
		func(c counter) any { return string(c.N) },
	), codec.NoKey())

	r.Register(a)
	r.Register(b)

	d, err := r.Lookup("pkg:Mod:Counter")
	require.NoError(t, err)
	assert.Same(t, b, d)

	v, err := d.DecodePayload("42")
	require.NoError(t, err)
	assert.Equal(t, counter{N: "42"}, v)

	assert.Equal(t, 1, r.Len())
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, zapcore.DebugLevel, logs.All()[0].Level)
	warn := logs.All()[1]
	assert.Equal(t, zapcore.WarnLevel, warn.Level)
	assert.Equal(t, "template replaced", warn.Message)
}

func TestRegistry_IDs(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"b:M:T", "a:M:T", "c:M:T"} {
		r.Register(New(id, codec.TextCodec, codec.NoKey()))
	}
	assert.Equal(t, []string{"a:M:T", "b:M:T", "c:M:T"}, r.IDs())
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("pkg:Mod:T%d", i%4)
			r.Register(New(id, codec.TextCodec, codec.NoKey()))
			d, err := r.Lookup(id)
			if assert.NoError(t, err) {
				assert.Equal(t, id, d.ID())
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 4, r.Len())
}

func TestDefaultRegistry(t *testing.T) {
	tpl := New("test:Default:Registered", codec.TextCodec, codec.NoKey())
	Register(tpl)

	d, err := Lookup(tpl.ID())
	require.NoError(t, err)
	assert.Same(t, tpl, d)
	assert.Same(t, tpl, MustLookup(tpl.ID()))
	assert.Contains(t, Default().IDs(), tpl.ID())
}

func TestSetLogger_ConcurrentWithRegister(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	core, logs := observer.New(zapcore.DebugLevel)
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetLogger(zap.New(core))
		}()
		go func(i int) {
			defer wg.Done()
			r.Register(New(fmt.Sprintf("pkg:Log:T%d", i), codec.TextCodec, codec.NoKey()))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 8, r.Len())

	r.Register(New("pkg:Log:After", codec.TextCodec, codec.NoKey()))
	assert.Equal(t, 1, logs.FilterField(zap.String("template", "pkg:Log:After")).Len())
}
