package codec

import (
	"encoding/json"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"time"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/ledger-types/errors"
	"github.com/wippyai/ledger-types/schema"
)

// Unit is the ledger's unit value. It is encoded as an empty object.
type Unit struct{}

// Int is an arbitrary-precision integer carried as text.
type Int string

// Numeric is a fixed-point number carried as text.
type Numeric string

// Decimal is a Numeric with scale 10.
type Decimal = Numeric

// Time is a UTC timestamp of the form YYYY-MM-DDThh:mm:ss[.ssssss]Z.
type Time string

// Date is a calendar date of the form YYYY-MM-DD.
type Date string

// Party identifies a ledger participant.
type Party string

var (
	intPattern     = regexp.MustCompile(`^-?\d+$`)
	numericPattern = regexp.MustCompile(`^-?(0|[1-9]\d*)(\.\d+)?([eE][+-]?\d+)?$`)
	timePattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{1,6})?Z$`)
	datePattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	partyPattern   = regexp.MustCompile(`^[A-Za-z0-9:_\- ]+$`)
)

// maxExactFloat is the largest integer a float64 holds without rounding.
const maxExactFloat = 1 << 53

var (
	UnitCodec    Serializable[Unit]    = unitCodec{}
	BoolCodec    Serializable[bool]    = boolCodec{}
	IntCodec     Serializable[Int]     = intCodec{}
	TextCodec    Serializable[string]  = textCodec[string]{name: "text"}
	TimeCodec    Serializable[Time]    = textCodec[Time]{name: "time", pattern: timePattern}
	DateCodec    Serializable[Date]    = textCodec[Date]{name: "date", pattern: datePattern}
	PartyCodec   Serializable[Party]   = textCodec[Party]{name: "party", pattern: partyPattern}
	DecimalCodec Serializable[Decimal] = NumericCodec(10)
)

// NumericCodec returns the codec for Numeric values with the given scale.
// The scale is part of the type's description only; it is not enforced.
func NumericCodec(scale int) Serializable[Numeric] {
	return textCodec[Numeric]{
		name:          "numeric(" + strconv.Itoa(scale) + ")",
		pattern:       numericPattern,
		acceptsNumber: true,
	}
}

// NoKey is the key codec of templates without a contract key. It decodes
// only null.
func NoKey() Serializable[Unit] { return noKeyCodec{} }

type unitCodec struct{}

func (unitCodec) Decode(raw any) (Unit, error) {
	obj, ok := raw.(map[string]any)
	if !ok || len(obj) != 0 {
		return Unit{}, errors.ShapeMismatch(errors.PhaseDecode, "empty object", raw)
	}
	return Unit{}, nil
}

func (unitCodec) Encode(Unit) any { return map[string]any{} }

func (unitCodec) WitType() wit.Type { return schema.Alias("unit", schema.Tuple()) }

type noKeyCodec struct{}

func (noKeyCodec) Decode(raw any) (Unit, error) {
	if raw != nil {
		return Unit{}, errors.ShapeMismatch(errors.PhaseDecode, "null", raw)
	}
	return Unit{}, nil
}

func (noKeyCodec) Encode(Unit) any { return nil }

func (noKeyCodec) WitType() wit.Type { return schema.Alias("no-key", schema.Tuple()) }

type boolCodec struct{}

func (boolCodec) Decode(raw any) (bool, error) {
	b, ok := raw.(bool)
	if !ok {
		return false, errors.ShapeMismatch(errors.PhaseDecode, "boolean", raw)
	}
	return b, nil
}

func (boolCodec) Encode(v bool) any { return v }

func (boolCodec) WitType() wit.Type { return wit.Bool{} }

// intCodec accepts integral JSON numbers as well as text and always
// produces the canonical decimal text.
type intCodec struct{}

func (intCodec) Decode(raw any) (Int, error) {
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case json.Number:
		s = string(v)
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > maxExactFloat {
			return "", errors.New(errors.PhaseDecode, errors.KindPatternMismatch).
				Expected("int").
				Value(v).
				Detail("%v is not an exactly representable integer", v).
				Build()
		}
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	case int8:
		s = strconv.FormatInt(int64(v), 10)
	case int16:
		s = strconv.FormatInt(int64(v), 10)
	case int32:
		s = strconv.FormatInt(int64(v), 10)
	case int64:
		s = strconv.FormatInt(v, 10)
	case uint:
		s = strconv.FormatUint(uint64(v), 10)
	case uint8:
		s = strconv.FormatUint(uint64(v), 10)
	case uint16:
		s = strconv.FormatUint(uint64(v), 10)
	case uint32:
		s = strconv.FormatUint(uint64(v), 10)
	case uint64:
		s = strconv.FormatUint(v, 10)
	default:
		return "", errors.ShapeMismatch(errors.PhaseDecode, "int", raw)
	}
	if !intPattern.MatchString(s) {
		return "", errors.PatternMismatch(errors.PhaseDecode, "int", s)
	}
	return Int(s), nil
}

func (intCodec) Encode(v Int) any { return string(v) }

func (intCodec) WitType() wit.Type { return schema.Alias("int", wit.S64{}) }

// textCodec handles every text-carried type; pattern is optional.
type textCodec[T ~string] struct {
	pattern       *regexp.Regexp
	name          string
	acceptsNumber bool
}

func (c textCodec[T]) Decode(raw any) (T, error) {
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case json.Number:
		if !c.acceptsNumber {
			return "", errors.ShapeMismatch(errors.PhaseDecode, c.name, raw)
		}
		s = string(v)
	default:
		return "", errors.ShapeMismatch(errors.PhaseDecode, c.name, raw)
	}
	if c.pattern != nil && !c.pattern.MatchString(s) {
		return "", errors.PatternMismatch(errors.PhaseDecode, c.name, s)
	}
	return T(s), nil
}

func (c textCodec[T]) Encode(v T) any { return string(v) }

func (c textCodec[T]) WitType() wit.Type {
	if c.name == "text" {
		return wit.String{}
	}
	return schema.Alias(c.name, wit.String{})
}

// IntOf formats n as an Int.
func IntOf(n int64) Int { return Int(strconv.FormatInt(n, 10)) }

// Int64 parses i, failing when it does not fit in an int64.
func (i Int) Int64() (int64, error) { return strconv.ParseInt(string(i), 10, 64) }

// Big returns i as a big.Int.
func (i Int) Big() (*big.Int, bool) { return new(big.Int).SetString(string(i), 10) }

// Rat returns n as an exact rational.
func (n Numeric) Rat() (*big.Rat, bool) { return new(big.Rat).SetString(string(n)) }

// TimeOf formats t in UTC with microsecond precision.
func TimeOf(t time.Time) Time {
	return Time(t.UTC().Truncate(time.Microsecond).Format("2006-01-02T15:04:05.999999Z"))
}

// Parse converts t to a time.Time.
func (t Time) Parse() (time.Time, error) { return time.Parse(time.RFC3339Nano, string(t)) }

// DateOf formats the calendar date of t.
func DateOf(t time.Time) Date { return Date(t.Format(time.DateOnly)) }

// Parse converts d to a time.Time at midnight UTC.
func (d Date) Parse() (time.Time, error) { return time.Parse(time.DateOnly, string(d)) }
