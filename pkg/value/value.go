package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the closed set of value variants a configuration
// assignment can carry. There is no automatic coercion between kinds.
type Kind string

const (
	// KindAny requests kind inference from the raw text alone.
	KindAny Kind = ""

	KindQuantity Kind = "quantity"
	KindBool     Kind = "bool"
	KindString   Kind = "string"
	KindDocRef   Kind = "docref"
	KindExpr     Kind = "expression"
	KindArray    Kind = "array"
	KindObject   Kind = "object"
)

// Quantity is a number normalized to the canonical unit of its
// dimension. A plain unsuffixed number has DimNone and an empty Unit.
type Quantity struct {
	Value float64   // Magnitude in the canonical unit
	Dim   Dimension // Physical dimension
	Unit  string    // Canonical unit symbol, "" when dimensionless
}

// In converts the quantity into the given unit.
func (q Quantity) In(symbol string) (float64, error) {
	def, ok := units[symbol]
	if !ok {
		return 0, &UnknownUnitError{Unit: symbol}
	}
	if def.dim != q.Dim {
		return 0, &UnitMismatchError{Unit: symbol, Got: def.dim, Want: q.Dim}
	}
	return fromCanonical(q.Value, def), nil
}

// String renders the quantity with its canonical unit.
func (q Quantity) String() string {
	s := strconv.FormatFloat(q.Value, 'g', -1, 64)
	if q.Unit == "" {
		return s
	}
	return s + " " + q.Unit
}

// DocFormat names the parser a referenced document goes through.
type DocFormat string

const (
	DocXML DocFormat = "xml"
	DocCSV DocFormat = "csv"
)

// DocumentRef is the parsed form of an xmldoc("...") or csvdoc("...")
// marker. It carries the reference only; the document itself is loaded
// through the resource cache when the host first asks for it.
type DocumentRef struct {
	Format DocFormat
	Path   string
}

// String renders the reference in marker form.
func (r DocumentRef) String() string {
	return fmt.Sprintf("%sdoc(%q)", string(r.Format), r.Path)
}

// Field is one key of an object value. Declaration order is preserved.
type Field struct {
	Name  string
	Value Value
}

// Value is the tagged variant produced by parsing a raw assignment.
// Exactly the field selected by Kind is meaningful; the rest are zero.
// Values are immutable after parsing and safe to share across
// goroutines.
type Value struct {
	Kind Kind
	Raw  string // The trimmed source text

	Quantity Quantity    // KindQuantity
	Bool     bool        // KindBool
	Str      string      // KindString
	Ref      DocumentRef // KindDocRef
	Expr     *Expression // KindExpr
	Items    []Value     // KindArray
	Fields   []Field     // KindObject
}

// Field returns the named object field.
func (v Value) Field(name string) (Value, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// String renders the value in source form.
func (v Value) String() string {
	switch v.Kind {
	case KindQuantity:
		return v.Quantity.String()
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindString:
		return strconv.Quote(v.Str)
	case KindDocRef:
		return v.Ref.String()
	case KindExpr:
		return v.Expr.String()
	case KindArray:
		parts := make([]string, len(v.Items))
		for i, item := range v.Items {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindObject:
		parts := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			parts[i] = f.Name + ": " + f.Value.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return v.Raw
}
