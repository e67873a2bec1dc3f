package schema

import (
	"fmt"
	"strings"

	"go.bytecodealliance.org/wit"
)

// Describer is implemented by codecs that can report their WIT shape.
type Describer interface {
	WitType() wit.Type
}

// Describe returns the WIT description of v, or string when v does not
// implement Describer.
func Describe(v any) wit.Type {
	if d, ok := v.(Describer); ok {
		if t := d.WitType(); t != nil {
			return t
		}
	}
	return wit.String{}
}

// Alias returns a named alias of an underlying type.
func Alias(name string, underlying wit.Type) *wit.TypeDef {
	return &wit.TypeDef{Name: &name, Kind: underlying}
}

// List returns list<elem>.
func List(elem wit.Type) *wit.TypeDef {
	return &wit.TypeDef{Kind: &wit.List{Type: elem}}
}

// Option returns option<elem>.
func Option(elem wit.Type) *wit.TypeDef {
	return &wit.TypeDef{Kind: &wit.Option{Type: elem}}
}

// Tuple returns tuple<types...>.
func Tuple(types ...wit.Type) *wit.TypeDef {
	return &wit.TypeDef{Kind: &wit.Tuple{Types: types}}
}

// Enum returns a named enum with the given cases.
func Enum(name string, cases ...string) *wit.TypeDef {
	ec := make([]wit.EnumCase, len(cases))
	for i, c := range cases {
		ec[i] = wit.EnumCase{Name: c}
	}
	return &wit.TypeDef{Name: &name, Kind: &wit.Enum{Cases: ec}}
}

// Ref returns a reference to the named record, used where a record type
// mentions itself.
func Ref(name string) *wit.TypeDef {
	return &wit.TypeDef{Name: &name, Kind: &wit.Record{}}
}

// Field pairs a record field name with the codec that decodes it.
type Field struct {
	Name  string
	Codec any
}

// Record returns a named record whose field types are described from codecs.
func Record(name string, fields ...Field) *wit.TypeDef {
	wf := make([]wit.Field, len(fields))
	for i, f := range fields {
		wf[i] = wit.Field{Name: f.Name, Type: Describe(f.Codec)}
	}
	return &wit.TypeDef{Name: &name, Kind: &wit.Record{Fields: wf}}
}

// Format renders t as a compact one-line signature. Named types print their
// name, except at the top level where records and enums are expanded.
func Format(t wit.Type) string {
	var b strings.Builder
	format(&b, t, true)
	return b.String()
}

func format(b *strings.Builder, t wit.Type, expand bool) {
	switch v := t.(type) {
	case wit.Bool:
		b.WriteString("bool")
	case wit.S64:
		b.WriteString("s64")
	case wit.U64:
		b.WriteString("u64")
	case wit.S32:
		b.WriteString("s32")
	case wit.U32:
		b.WriteString("u32")
	case wit.F64:
		b.WriteString("f64")
	case wit.Char:
		b.WriteString("char")
	case wit.String:
		b.WriteString("string")
	case *wit.TypeDef:
		formatTypeDef(b, v, expand)
	default:
		fmt.Fprintf(b, "%T", t)
	}
}

func formatTypeDef(b *strings.Builder, td *wit.TypeDef, expand bool) {
	if td.Name != nil {
		switch td.Kind.(type) {
		case *wit.Record, *wit.Enum:
			if !expand {
				b.WriteString(*td.Name)
				return
			}
		default:
			b.WriteString(*td.Name)
			return
		}
	}

	switch k := td.Kind.(type) {
	case *wit.List:
		b.WriteString("list<")
		format(b, k.Type, false)
		b.WriteByte('>')
	case *wit.Option:
		b.WriteString("option<")
		format(b, k.Type, false)
		b.WriteByte('>')
	case *wit.Tuple:
		b.WriteString("tuple<")
		for i, e := range k.Types {
			if i > 0 {
				b.WriteString(", ")
			}
			format(b, e, false)
		}
		b.WriteByte('>')
	case *wit.Record:
		b.WriteString("record ")
		writeName(b, td)
		b.WriteString("{ ")
		for i, f := range k.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			format(b, f.Type, false)
		}
		b.WriteString(" }")
	case *wit.Enum:
		b.WriteString("enum ")
		writeName(b, td)
		b.WriteString("{ ")
		for i, c := range k.Cases {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(c.Name)
		}
		b.WriteString(" }")
	case wit.Type:
		format(b, k, expand)
	default:
		fmt.Fprintf(b, "%T", td.Kind)
	}
}

func writeName(b *strings.Builder, td *wit.TypeDef) {
	if td.Name != nil {
		b.WriteString(*td.Name)
		b.WriteByte(' ')
	}
}
