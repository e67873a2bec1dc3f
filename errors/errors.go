package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode   Phase = "decode"   // untyped value to Go
	PhaseEncode   Phase = "encode"   // Go to untyped value
	PhaseRegistry Phase = "registry" // template registration and lookup
	PhaseSubmit   Phase = "submit"   // choice exercise through a submitter
)

// Kind categorizes the error
type Kind string

const (
	KindShapeMismatch    Kind = "shape_mismatch"
	KindPatternMismatch  Kind = "pattern_mismatch"
	KindElement          Kind = "element"
	KindFieldMissing     Kind = "field_missing"
	KindUnknownVariant   Kind = "unknown_variant"
	KindTemplateNotFound Kind = "template_not_found"
	KindTemplateMismatch Kind = "template_mismatch"
	KindChoiceNotFound   Kind = "choice_not_found"
	KindNotInitialized   Kind = "not_initialized"
	KindRejected         Kind = "rejected"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Expected string
	Actual   string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Expected != "" || e.Actual != "" {
		b.WriteString(": ")
		if e.Expected != "" && e.Actual != "" {
			b.WriteString("expected ")
			b.WriteString(e.Expected)
			b.WriteString(", got ")
			b.WriteString(e.Actual)
		} else if e.Expected != "" {
			b.WriteString("expected ")
			b.WriteString(e.Expected)
		} else {
			b.WriteString("got ")
			b.WriteString(e.Actual)
		}
	}

	if e.Detail != "" {
		if e.Expected != "" || e.Actual != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Innermost follows the Cause chain through element wrappers and returns the
// deepest *Error. The outermost error carries the full path; the innermost
// carries the actual mismatch.
func (e *Error) Innermost() *Error {
	cur := e
	for {
		next, ok := cur.Cause.(*Error)
		if !ok {
			return cur
		}
		cur = next
	}
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the path from the root value
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Expected sets the expected shape or type name
func (b *Builder) Expected(t string) *Builder {
	b.err.Expected = t
	return b
}

// Actual sets the shape or type name that was found
func (b *Builder) Actual(t string) *Builder {
	b.err.Actual = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ShapeMismatch creates an error for input of the wrong structural kind
func ShapeMismatch(phase Phase, expected string, value any) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindShapeMismatch,
		Expected: expected,
		Actual:   ShapeOf(value),
		Value:    value,
	}
}

// PatternMismatch creates an error for text that failed its validation pattern
func PatternMismatch(phase Phase, expected string, value string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindPatternMismatch,
		Expected: expected,
		Detail:   fmt.Sprintf("%q does not match", value),
		Value:    value,
	}
}

// Element wraps the error of a nested value. The segment (list index, map
// key or record field) is prepended to the cause's path so the outer error
// always carries the full path from the root.
func Element(phase Phase, segment string, cause error) *Error {
	path := []string{segment}
	if inner, ok := cause.(*Error); ok {
		path = append(path, inner.Path...)
	}
	return &Error{
		Phase: phase,
		Kind:  KindElement,
		Path:  path,
		Cause: cause,
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   []string{fieldName},
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// UnknownVariant creates an error for an unrecognised enum constructor or variant tag
func UnknownVariant(phase Phase, typeName string, tag any) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindUnknownVariant,
		Expected: typeName,
		Detail:   fmt.Sprintf("unknown constructor %v", tag),
		Value:    tag,
	}
}

// TemplateNotFound creates a lookup error for an unregistered template
func TemplateNotFound(templateID string) *Error {
	return &Error{
		Phase:  PhaseRegistry,
		Kind:   KindTemplateNotFound,
		Detail: fmt.Sprintf("template %q not found", templateID),
		Value:  templateID,
	}
}

// TemplateMismatch creates an error for a value tagged with another template
func TemplateMismatch(phase Phase, expected, actual string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTemplateMismatch,
		Expected: expected,
		Actual:   actual,
	}
}

// ChoiceNotFound creates an error for a choice name unknown to a template
func ChoiceNotFound(templateID, choice string) *Error {
	return &Error{
		Phase:  PhaseRegistry,
		Kind:   KindChoiceNotFound,
		Detail: fmt.Sprintf("template %q has no choice %q", templateID, choice),
		Value:  choice,
	}
}

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", what),
	}
}

// Rejected wraps a failure reported by a submitter
func Rejected(choice string, cause error) *Error {
	return &Error{
		Phase:  PhaseSubmit,
		Kind:   KindRejected,
		Detail: fmt.Sprintf("exercise %s", choice),
		Cause:  cause,
	}
}

// ShapeOf names the structural kind of an untyped value for error messages.
func ShapeOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "text"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case float32, float64, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return "number"
	case json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
