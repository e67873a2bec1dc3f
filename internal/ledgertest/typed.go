package ledgertest

import (
	"context"

	"github.com/wippyai/ledger-types/codec"
	"github.com/wippyai/ledger-types/template"
)

// CreateContract stores payload as a contract of t, with the key and
// signatories the template derives from it, and returns its identifier.
func CreateContract[T, K any](l *Ledger, t *template.Template[T, K], payload T) codec.ContractID[T] {
	id := l.Create(t.ID(), t.Encode(payload), t.EncodeKey(payload), t.Signatories(payload)...)
	cid, err := codec.ContractIDOf[T](t).Decode(id)
	if err != nil {
		panic(err)
	}
	return cid
}

// Fetch decodes the payload of an active contract.
func Fetch[T, K any](l *Ledger, t *template.Template[T, K], cid codec.ContractID[T]) (T, error) {
	raw, err := l.Payload(t.ID(), cid.String())
	if err != nil {
		var zero T
		return zero, err
	}
	return t.Decode(raw)
}

// HandleChoice installs a typed handler for c. The payload and argument are
// decoded before fn runs and the result is encoded afterwards. The choice
// must already be attached to its template.
func HandleChoice[T, C, R, K any](l *Ledger, c *template.Choice[T, C, R, K], consuming bool,
	fn func(ctx context.Context, cid codec.ContractID[T], payload T, arg C) (R, error),
) {
	t := c.Template()
	cids := codec.ContractIDOf[T](t)
	l.Handle(t.ID(), c.Name(), consuming, func(ctx context.Context, contractID string, rawPayload, rawArg any) (any, error) {
		cid, err := cids.Decode(contractID)
		if err != nil {
			return nil, err
		}
		payload, err := t.Decode(rawPayload)
		if err != nil {
			return nil, err
		}
		arg, err := c.Argument().Decode(rawArg)
		if err != nil {
			return nil, err
		}
		res, err := fn(ctx, cid, payload, arg)
		if err != nil {
			return nil, err
		}
		return c.Result().Encode(res), nil
	})
}
