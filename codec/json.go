package codec

import (
	"bytes"
	"encoding/json"

	"github.com/wippyai/ledger-types/errors"
)

// ParseJSON parses data into an untyped value. Numbers are kept as
// json.Number so large integers and decimals never pass through float64.
func ParseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindShapeMismatch).
			Expected("JSON").
			Cause(err).
			Build()
	}
	if dec.More() {
		return nil, errors.New(errors.PhaseDecode, errors.KindShapeMismatch).
			Expected("JSON").
			Detail("trailing data after value").
			Build()
	}
	return raw, nil
}

// DecodeJSON parses data and decodes it with s.
func DecodeJSON[T any](s Serializable[T], data []byte) (T, error) {
	raw, err := ParseJSON(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.Decode(raw)
}

// EncodeJSON encodes v with s and marshals the result.
func EncodeJSON[T any](s Serializable[T], v T) ([]byte, error) {
	return json.Marshal(s.Encode(v))
}
