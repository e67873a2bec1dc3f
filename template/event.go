package template

import (
	"github.com/wippyai/ledger-types/codec"
	"github.com/wippyai/ledger-types/errors"
)

// CreateEvent is a decoded contract creation as reported by the ledger.
type CreateEvent[T, K any] struct {
	Key         K
	Payload     T
	ContractID  codec.ContractID[T]
	TemplateID  string
	Signatories []codec.Party
	Observers   []codec.Party
}

var partiesCodec = codec.OptionalOf(codec.ListOf(codec.PartyCodec))

// DecodeCreateEvent decodes a raw create event of the form
//
//	{"templateId": ..., "contractId": ..., "payload": ..., "key": ...,
//	 "signatories": [...], "observers": [...]}
//
// The key may be omitted for templates without one; the party lists may be
// omitted. The event must name t's identifier.
func DecodeCreateEvent[T, K any](t *Template[T, K], raw any) (CreateEvent[T, K], error) {
	var ev CreateEvent[T, K]

	obj, err := codec.Object(raw)
	if err != nil {
		return ev, err
	}

	tid, err := codec.Field(obj, "templateId", codec.TextCodec)
	if err != nil {
		return ev, err
	}
	if tid != t.ID() {
		return ev, errors.TemplateMismatch(errors.PhaseDecode, t.ID(), tid)
	}
	ev.TemplateID = tid

	if ev.ContractID, err = codec.Field(obj, "contractId", codec.ContractIDOf[T](t)); err != nil {
		return ev, err
	}
	if ev.Payload, err = codec.Field(obj, "payload", codec.Serializable[T](t)); err != nil {
		return ev, err
	}
	if ev.Key, err = codec.Field(obj, "key", t.Key()); err != nil {
		return ev, err
	}

	signatories, err := codec.Field(obj, "signatories", partiesCodec)
	if err != nil {
		return ev, err
	}
	ev.Signatories = signatories.OrElse(nil)

	observers, err := codec.Field(obj, "observers", partiesCodec)
	if err != nil {
		return ev, err
	}
	ev.Observers = observers.OrElse(nil)

	return ev, nil
}

// EncodeCreateEvent is the inverse of DecodeCreateEvent. Nil party lists
// are omitted so that they decode back to nil.
func EncodeCreateEvent[T, K any](t *Template[T, K], ev CreateEvent[T, K]) map[string]any {
	out := map[string]any{
		"templateId": t.ID(),
		"contractId": ev.ContractID.String(),
		"payload":    t.Encode(ev.Payload),
	}
	if k := t.Key().Encode(ev.Key); k != nil {
		out["key"] = k
	}
	if ev.Signatories != nil {
		out["signatories"] = partiesCodec.Encode(codec.Some(ev.Signatories))
	}
	if ev.Observers != nil {
		out["observers"] = partiesCodec.Encode(codec.Some(ev.Observers))
	}
	return out
}
