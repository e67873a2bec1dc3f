package template

import (
	"context"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/ledger-types/codec"
	"github.com/wippyai/ledger-types/memo"
	"github.com/wippyai/ledger-types/schema"
)

// ArchiveChoice is the name of the choice present on every template.
const ArchiveChoice = "Archive"

// ChoiceDescriptor is the type-erased view of a Choice.
type ChoiceDescriptor interface {
	Name() string
	TemplateID() string
	DecodeArgument(raw any) (any, error)
	DecodeResult(raw any) (any, error)
	ArgumentType() wit.Type
	ResultType() wit.Type
	// ExerciseRaw decodes rawArg with the argument codec and exercises the
	// choice on contractID, returning the decoded result.
	ExerciseRaw(ctx context.Context, sub Submitter, contractID string, rawArg any) (any, error)
}

// Choice describes an action on contracts of template T taking an argument
// of type C and producing R. K is the template's key type.
type Choice[T, C, R, K any] struct {
	argument codec.Serializable[C]
	result   codec.Serializable[R]
	owner    *memo.Cell[*Template[T, K]]
	name     string
}

// NewChoice creates a choice that is not yet attached to a template. It is
// attached by passing it to New through WithChoice.
func NewChoice[T, C, R, K any](name string, argument codec.Serializable[C], result codec.Serializable[R]) *Choice[T, C, R, K] {
	return &Choice[T, C, R, K]{
		name:     name,
		argument: argument,
		result:   result,
		owner:    memo.NewCell[*Template[T, K]]("template of choice " + name),
	}
}

// Name returns the choice name.
func (c *Choice[T, C, R, K]) Name() string { return c.name }

// Argument returns the argument codec.
func (c *Choice[T, C, R, K]) Argument() codec.Serializable[C] { return c.argument }

// Result returns the result codec.
func (c *Choice[T, C, R, K]) Result() codec.Serializable[R] { return c.result }

// Template returns the owning template. It panics with a not_initialized
// error when the choice has not been attached yet.
func (c *Choice[T, C, R, K]) Template() *Template[T, K] { return c.owner.MustGet() }

// TemplateID returns the identifier of the owning template.
func (c *Choice[T, C, R, K]) TemplateID() string { return c.Template().ID() }

func (c *Choice[T, C, R, K]) DecodeArgument(raw any) (any, error) { return c.argument.Decode(raw) }
func (c *Choice[T, C, R, K]) DecodeResult(raw any) (any, error)   { return c.result.Decode(raw) }
func (c *Choice[T, C, R, K]) ArgumentType() wit.Type              { return schema.Describe(c.argument) }
func (c *Choice[T, C, R, K]) ResultType() wit.Type                { return schema.Describe(c.result) }

func (c *Choice[T, C, R, K]) ExerciseRaw(ctx context.Context, sub Submitter, contractID string, rawArg any) (any, error) {
	arg, err := c.argument.Decode(rawArg)
	if err != nil {
		return nil, err
	}
	return exercise(ctx, sub, c, contractID, arg)
}

func (c *Choice[T, C, R, K]) apply(t *Template[T, K]) {
	t.addChoice(c.name, c)
	t.resolve = append(t.resolve, func() {
		if !c.owner.Set(t) {
			panic("template: choice " + c.name + " is already attached to " + c.Template().ID())
		}
	})
}

var _ ChoiceDescriptor = (*Choice[codec.Unit, codec.Unit, codec.Unit, codec.Unit])(nil)
