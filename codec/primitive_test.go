package codec

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/ledger-types/errors"
)

func roundTrip[T any](t *testing.T, s Serializable[T], raw any) T {
	t.Helper()
	v, err := s.Decode(raw)
	require.NoError(t, err)
	again, err := s.Decode(s.Encode(v))
	require.NoError(t, err)
	assert.Equal(t, v, again)
	return v
}

func TestScalars_RoundTrip(t *testing.T) {
	assert.Equal(t, Unit{}, roundTrip(t, UnitCodec, map[string]any{}))
	assert.True(t, roundTrip(t, BoolCodec, true))
	assert.Equal(t, Int("-42"), roundTrip(t, IntCodec, "-42"))
	assert.Equal(t, "hello", roundTrip(t, TextCodec, "hello"))
	assert.Equal(t, Numeric("1.5"), roundTrip(t, NumericCodec(2), "1.5"))
	assert.Equal(t, Decimal("100.0000000001"), roundTrip(t, DecimalCodec, "100.0000000001"))
	assert.Equal(t, Time("2024-03-01T10:15:00.123456Z"), roundTrip(t, TimeCodec, "2024-03-01T10:15:00.123456Z"))
	assert.Equal(t, Date("2024-02-30"), roundTrip(t, DateCodec, "2024-02-30"))
	assert.Equal(t, Party("Alice::1220abcd"), roundTrip(t, PartyCodec, "Alice::1220abcd"))
}

func TestScalars_EncodeShapes(t *testing.T) {
	assert.Equal(t, map[string]any{}, UnitCodec.Encode(Unit{}))
	assert.Equal(t, "7", IntCodec.Encode("7"))
	assert.Equal(t, false, BoolCodec.Encode(false))
	assert.Nil(t, NoKey().Encode(Unit{}))
}

func TestUnit_RejectsNonEmpty(t *testing.T) {
	for _, raw := range []any{nil, map[string]any{"a": 1.0}, []any{}, "{}"} {
		_, err := UnitCodec.Decode(raw)
		require.Error(t, err, "%#v", raw)
		assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindShapeMismatch})
	}
}

func TestBool_RejectsText(t *testing.T) {
	_, err := BoolCodec.Decode("true")
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindShapeMismatch})
}

func TestNumeric_Pattern(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"-0.5", true},
		{"0", true},
		{"123.456e-2", true},
		{"1E10", true},
		{"00.5", false},
		{"1.", false},
		{"abc", false},
		{"", false},
		{"+1", false},
		{" 1", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := DecimalCodec.Decode(tt.in)
			if !tt.ok {
				require.Error(t, err)
				var e *errors.Error
				require.ErrorAs(t, err, &e)
				assert.Equal(t, errors.KindPatternMismatch, e.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Numeric(tt.in), v)
		})
	}
}

func TestNumeric_NumberInput(t *testing.T) {
	v, err := DecimalCodec.Decode(json.Number("12.25"))
	require.NoError(t, err)
	assert.Equal(t, Numeric("12.25"), v)

	_, err = DecimalCodec.Decode(12.25)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindShapeMismatch})
}

func TestInt_Inputs(t *testing.T) {
	tests := []struct {
		raw  any
		want Int
		ok   bool
	}{
		{"123", "123", true},
		{"-9223372036854775809", "-9223372036854775809", true},
		{json.Number("99999999999999999999"), "99999999999999999999", true},
		{float64(3), "3", true},
		{int64(-8), "-8", true},
		{int(7), "7", true},
		{int8(-128), "-128", true},
		{int16(300), "300", true},
		{int32(-70000), "-70000", true},
		{uint(5), "5", true},
		{uint8(255), "255", true},
		{uint16(65535), "65535", true},
		{uint32(4294967295), "4294967295", true},
		{uint64(18446744073709551615), "18446744073709551615", true},
		{1.5, "", false},
		{float64(1 << 60), "", false},
		{"1.0", "", false},
		{"x", "", false},
		{true, "", false},
	}
	for _, tt := range tests {
		v, err := IntCodec.Decode(tt.raw)
		if !tt.ok {
			assert.Error(t, err, "%#v", tt.raw)
			continue
		}
		require.NoError(t, err, "%#v", tt.raw)
		assert.Equal(t, tt.want, v)
	}
}

func TestInt_Conversions(t *testing.T) {
	n, err := IntOf(-12).Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(-12), n)

	b, ok := Int("123456789012345678901234567890").Big()
	require.True(t, ok)
	assert.Equal(t, "123456789012345678901234567890", b.String())

	_, err = Int("123456789012345678901234567890").Int64()
	assert.Error(t, err)
}

func TestTimeDate_Patterns(t *testing.T) {
	for _, bad := range []string{"2024-03-01T10:15:00", "2024-03-01T10:15:00.1234567Z", "2024-03-01 10:15:00Z"} {
		_, err := TimeCodec.Decode(bad)
		assert.Error(t, err, bad)
	}
	for _, bad := range []string{"2024-3-1", "20240301", "2024-03-01T00:00:00Z"} {
		_, err := DateCodec.Decode(bad)
		assert.Error(t, err, bad)
	}
}

func TestTimeDate_Conversions(t *testing.T) {
	at := time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.FixedZone("X", 3600))
	ts := TimeOf(at)
	assert.Equal(t, Time("2024-05-06T06:08:09.123456Z"), ts)
	_, err := TimeCodec.Decode(string(ts))
	require.NoError(t, err)

	parsed, err := ts.Parse()
	require.NoError(t, err)
	assert.True(t, parsed.Equal(at.Truncate(time.Microsecond)))

	d := DateOf(at)
	assert.Equal(t, Date("2024-05-06"), d)
	day, err := d.Parse()
	require.NoError(t, err)
	assert.Equal(t, 6, day.Day())
}

func TestParty_Pattern(t *testing.T) {
	_, err := PartyCodec.Decode("Bank A")
	require.NoError(t, err)
	_, err = PartyCodec.Decode("bad/party")
	assert.Error(t, err)
	_, err = PartyCodec.Decode("")
	assert.Error(t, err)
}

func TestNoKey(t *testing.T) {
	v, err := NoKey().Decode(nil)
	require.NoError(t, err)
	assert.Equal(t, Unit{}, v)

	_, err = NoKey().Decode("k")
	assert.Error(t, err)
}
