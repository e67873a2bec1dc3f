package codec

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/ledger-types/errors"
)

func TestList_ElementErrorAtIndex(t *testing.T) {
	_, err := ListOf(IntCodec).Decode([]any{1.0, "x", 3.0})
	require.Error(t, err)

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errors.KindElement, e.Kind)
	assert.Equal(t, []string{"1"}, e.Path)
	assert.Equal(t, errors.KindPatternMismatch, e.Innermost().Kind)
}

func TestList_NestedPath(t *testing.T) {
	_, err := ListOf(ListOf(BoolCodec)).Decode([]any{[]any{true}, []any{false, "no"}})
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []string{"1", "1"}, e.Path)
}

func TestList_RoundTrip(t *testing.T) {
	s := ListOf(TextCodec)
	v, err := s.Decode([]any{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)
	assert.Equal(t, []any{"a", "b"}, s.Encode(v))

	empty, err := s.Decode([]any{})
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = s.Decode(map[string]any{})
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindShapeMismatch})
}

func TestTextMap_Decode(t *testing.T) {
	s := TextMapOf(IntCodec)
	v, err := s.Decode(map[string]any{"a": "1", "b": 2.0})
	require.NoError(t, err)
	assert.Equal(t, TextMap[Int]{"a": "1", "b": "2"}, v)
	assert.Equal(t, map[string]any{"a": "1", "b": "2"}, s.Encode(v))
}

func TestTextMap_FirstFailureBySortedKey(t *testing.T) {
	raw := map[string]any{"z": "bad", "m": "bad", "a": "1"}
	for i := 0; i < 10; i++ {
		_, err := TextMapOf(IntCodec).Decode(raw)
		var e *errors.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, []string{"m"}, e.Path)
	}
}

func TestOptional_Flat(t *testing.T) {
	s := OptionalOf(IntCodec)

	v, err := s.Decode(nil)
	require.NoError(t, err)
	assert.False(t, v.IsPresent())
	assert.Nil(t, s.Encode(v))

	v, err = s.Decode("5")
	require.NoError(t, err)
	got, ok := v.Get()
	assert.True(t, ok)
	assert.Equal(t, Int("5"), got)
	assert.Equal(t, "5", s.Encode(v))
}

func TestOptional_Nested(t *testing.T) {
	s := OptionalOf(OptionalOf(IntCodec))

	t.Run("null is absent", func(t *testing.T) {
		v, err := s.Decode(nil)
		require.NoError(t, err)
		assert.False(t, v.IsPresent())
		assert.Nil(t, s.Encode(v))
	})

	t.Run("empty list is present absent", func(t *testing.T) {
		v, err := s.Decode([]any{})
		require.NoError(t, err)
		inner, ok := v.Get()
		require.True(t, ok)
		assert.False(t, inner.IsPresent())
		assert.Equal(t, []any{}, s.Encode(v))
	})

	t.Run("singleton is present", func(t *testing.T) {
		v, err := s.Decode([]any{"5"})
		require.NoError(t, err)
		inner, ok := v.Get()
		require.True(t, ok)
		assert.Equal(t, Int("5"), inner.OrElse("0"))
		assert.Equal(t, []any{"5"}, s.Encode(v))
	})

	t.Run("two elements fail", func(t *testing.T) {
		_, err := s.Decode([]any{"1", "2"})
		assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindShapeMismatch})
	})

	t.Run("bare value fails", func(t *testing.T) {
		_, err := s.Decode("5")
		assert.Error(t, err)
	})

	t.Run("inner error carries index", func(t *testing.T) {
		_, err := s.Decode([]any{"x"})
		var e *errors.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, []string{"0"}, e.Path)
	})
}

func TestOptional_TripleNested(t *testing.T) {
	s := OptionalOf(OptionalOf(OptionalOf(TextCodec)))

	v, err := s.Decode([]any{[]any{}})
	require.NoError(t, err)
	mid, ok := v.Get()
	require.True(t, ok)
	inner, ok := mid.Get()
	require.True(t, ok)
	assert.False(t, inner.IsPresent())
	assert.Equal(t, []any{[]any{}}, s.Encode(v))

	v, err = s.Decode([]any{[]any{"x"}})
	require.NoError(t, err)
	assert.Equal(t, Some(Some(Some("x"))), v)
}

func TestOptional_ListElement(t *testing.T) {
	s := ListOf(OptionalOf(TextCodec))
	v, err := s.Decode([]any{nil, "a"})
	require.NoError(t, err)
	assert.Equal(t, []Optional[string]{None[string](), Some("a")}, v)
}

type fooPayload struct{ N int }
type barPayload struct{ N int }

var (
	fooCodec = Func(func(any) (fooPayload, error) { return fooPayload{}, nil }, func(fooPayload) any { return nil })
	barCodec = Func(func(any) (barPayload, error) { return barPayload{}, nil }, func(barPayload) any { return nil })
)

func TestContractID_Branding(t *testing.T) {
	foo, err := ContractIDOf(fooCodec).Decode("#1:0")
	require.NoError(t, err)
	bar, err := ContractIDOf(barCodec).Decode("#1:0")
	require.NoError(t, err)

	assert.Equal(t, foo.String(), bar.String())
	assert.NotEqual(t, reflect.TypeOf(foo), reflect.TypeOf(bar))

	var boxed any = foo
	_, isBar := boxed.(ContractID[barPayload])
	assert.False(t, isBar)
	_, isFoo := boxed.(ContractID[fooPayload])
	assert.True(t, isFoo)
}

func TestContractID_RoundTrip(t *testing.T) {
	s := ContractIDOf(fooCodec)
	id, err := s.Decode("00abc::xyz")
	require.NoError(t, err)
	assert.Equal(t, "00abc::xyz", s.Encode(id))
	assert.False(t, id.IsZero())

	text, err := id.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "00abc::xyz", string(text))

	_, err = s.Decode(12.0)
	assert.Error(t, err)
}

func TestOptional_String(t *testing.T) {
	assert.Equal(t, "None", None[int]().String())
	assert.Equal(t, "Some(Some(3))", Some(Some(3)).String())
}
