package template

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/ledger-types/codec"
	"github.com/wippyai/ledger-types/errors"
	"github.com/wippyai/ledger-types/schema"
)

// Descriptor is the type-erased view of a Template held by a Registry.
type Descriptor interface {
	ID() string
	DecodePayload(raw any) (any, error)
	DecodeKey(raw any) (any, error)
	// DecodeCreateEvent decodes a create event of this template; the result
	// is a CreateEvent of the template's payload and key types.
	DecodeCreateEvent(raw any) (any, error)
	PayloadType() wit.Type
	KeyType() wit.Type
	ChoiceNames() []string
	LookupChoice(name string) (ChoiceDescriptor, error)
}

// Option configures a template during New.
type Option[T, K any] interface {
	apply(t *Template[T, K])
}

// WithChoice attaches c to the template being built. A choice can belong to
// one template only.
func WithChoice[T, C, R, K any](c *Choice[T, C, R, K]) Option[T, K] {
	return c
}

type keyOption[T, K any] func(T) K

func (f keyOption[T, K]) apply(t *Template[T, K]) { t.keyOf = f }

// WithKey sets the function deriving the contract key from a payload.
// Without it, EncodeKey returns nil.
func WithKey[T, K any](fn func(T) K) Option[T, K] {
	return keyOption[T, K](fn)
}

type signatoriesOption[T, K any] func(T) []codec.Party

func (f signatoriesOption[T, K]) apply(t *Template[T, K]) { t.signatoriesOf = f }

// WithSignatories sets the function naming the signatories of a payload.
func WithSignatories[T, K any](fn func(T) []codec.Party) Option[T, K] {
	return signatoriesOption[T, K](fn)
}

// Template describes a contract type: payload T, contract key K and choices.
// A Template is itself the payload codec.
type Template[T, K any] struct {
	payload       codec.Serializable[T]
	key           codec.Serializable[K]
	keyOf         func(T) K
	signatoriesOf func(T) []codec.Party
	archive       *Choice[T, codec.Unit, codec.Unit, K]
	choices       map[string]ChoiceDescriptor
	resolve       []func()
	id            string
	order         []string
}

// New builds a template and attaches its choices. Choice back-references are
// resolved only after every option has been applied. New panics when two
// choices share a name, including a user choice named Archive.
func New[T, K any](id string, payload codec.Serializable[T], key codec.Serializable[K], opts ...Option[T, K]) *Template[T, K] {
	t := &Template[T, K]{
		id:      id,
		payload: payload,
		key:     key,
		choices: make(map[string]ChoiceDescriptor),
	}
	t.archive = NewChoice[T, codec.Unit, codec.Unit, K](ArchiveChoice, codec.UnitCodec, codec.UnitCodec)
	t.archive.apply(t)
	for _, opt := range opts {
		opt.apply(t)
	}
	for _, fn := range t.resolve {
		fn()
	}
	t.resolve = nil
	return t
}

func (t *Template[T, K]) addChoice(name string, c ChoiceDescriptor) {
	if _, dup := t.choices[name]; dup {
		panic("template: " + t.id + " declares choice " + name + " twice")
	}
	t.choices[name] = c
	t.order = append(t.order, name)
}

// ID returns the template identifier.
func (t *Template[T, K]) ID() string { return t.id }

// Decode decodes a contract payload.
func (t *Template[T, K]) Decode(raw any) (T, error) { return t.payload.Decode(raw) }

// Encode encodes a contract payload.
func (t *Template[T, K]) Encode(v T) any { return t.payload.Encode(v) }

// Key returns the contract key codec.
func (t *Template[T, K]) Key() codec.Serializable[K] { return t.key }

// EncodeKey returns the encoded contract key of payload v, or nil when the
// template has no key function.
func (t *Template[T, K]) EncodeKey(v T) any {
	if t.keyOf == nil {
		return nil
	}
	return t.key.Encode(t.keyOf(v))
}

// Signatories returns the signatories of payload v, or nil when the template
// has no signatories function.
func (t *Template[T, K]) Signatories(v T) []codec.Party {
	if t.signatoriesOf == nil {
		return nil
	}
	return t.signatoriesOf(v)
}

// Archive returns the archive choice.
func (t *Template[T, K]) Archive() *Choice[T, codec.Unit, codec.Unit, K] { return t.archive }

// ChoiceNames returns the choice names in declaration order, Archive first.
func (t *Template[T, K]) ChoiceNames() []string {
	return append([]string(nil), t.order...)
}

// LookupChoice returns the named choice.
func (t *Template[T, K]) LookupChoice(name string) (ChoiceDescriptor, error) {
	c, ok := t.choices[name]
	if !ok {
		return nil, errors.ChoiceNotFound(t.id, name)
	}
	return c, nil
}

func (t *Template[T, K]) DecodePayload(raw any) (any, error) { return t.payload.Decode(raw) }
func (t *Template[T, K]) DecodeKey(raw any) (any, error)     { return t.key.Decode(raw) }

func (t *Template[T, K]) DecodeCreateEvent(raw any) (any, error) {
	return DecodeCreateEvent(t, raw)
}

func (t *Template[T, K]) PayloadType() wit.Type { return schema.Describe(t.payload) }
func (t *Template[T, K]) KeyType() wit.Type     { return schema.Describe(t.key) }

// WitType describes the payload, so a template can be used where a codec is
// expected.
func (t *Template[T, K]) WitType() wit.Type { return t.PayloadType() }

var (
	_ codec.Serializable[codec.Unit] = (*Template[codec.Unit, codec.Unit])(nil)
	_ Descriptor                     = (*Template[codec.Unit, codec.Unit])(nil)
)
