package template

import (
	"context"

	"github.com/wippyai/ledger-types/codec"
	"github.com/wippyai/ledger-types/errors"
)

// Submitter sends a choice exercise to the ledger. arg is the encoded
// argument; the returned value is the raw exercise result.
type Submitter interface {
	Exercise(ctx context.Context, templateID, contractID, choice string, arg any) (any, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, templateID, contractID, choice string, arg any) (any, error)

func (f SubmitterFunc) Exercise(ctx context.Context, templateID, contractID, choice string, arg any) (any, error) {
	return f(ctx, templateID, contractID, choice, arg)
}

// Exercise runs choice c on contract cid through sub. The argument is
// encoded and decoded again before submission so a value that would not
// survive the round trip never reaches the ledger. Submitter failures are
// returned as rejected errors.
func Exercise[T, C, R, K any](ctx context.Context, sub Submitter, c *Choice[T, C, R, K], cid codec.ContractID[T], arg C) (R, error) {
	return exercise(ctx, sub, c, cid.String(), arg)
}

func exercise[T, C, R, K any](ctx context.Context, sub Submitter, c *Choice[T, C, R, K], contractID string, arg C) (R, error) {
	var zero R

	raw := c.argument.Encode(arg)
	if _, err := c.argument.Decode(raw); err != nil {
		return zero, encodeError(c.name, err)
	}

	res, err := sub.Exercise(ctx, c.TemplateID(), contractID, c.name, raw)
	if err != nil {
		return zero, errors.Rejected(c.name, err)
	}

	return c.result.Decode(res)
}

func encodeError(choice string, err error) *errors.Error {
	b := errors.New(errors.PhaseEncode, errors.KindShapeMismatch).
		Cause(err).
		Detail("argument of %s does not round trip", choice)
	if e, ok := err.(*errors.Error); ok {
		inner := e.Innermost()
		b = errors.New(errors.PhaseEncode, inner.Kind).
			Path(e.Path...).
			Expected(inner.Expected).
			Actual(inner.Actual).
			Cause(err).
			Detail("argument of %s does not round trip", choice)
	}
	return b.Build()
}
