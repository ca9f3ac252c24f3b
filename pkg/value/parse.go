package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses raw text, inferring the kind from the text itself.
func Parse(raw string) (Value, error) {
	return ParseAs(raw, KindAny, DimNone)
}

// ParseAs parses raw text expecting the given kind. For quantities, dim
// is the dimension an unsuffixed number adopts; an explicit unit of a
// different dimension is a UnitMismatchError. Pass KindAny and DimNone
// to infer both.
func ParseAs(raw string, kind Kind, dim Dimension) (Value, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Value{}, &ParseError{Raw: raw, Expected: kind, Message: "empty value"}
	}

	p := &parser{src: trimmed, kind: kind, dim: dim}
	v, err := p.parseTop()
	if err != nil {
		return Value{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return Value{}, p.errorf("trailing text %q", p.src[p.pos:])
	}
	v.Raw = trimmed
	return v, nil
}

type parser struct {
	src  string
	pos  int
	kind Kind      // expected kind at the top level
	dim  Dimension // dimension unsuffixed numbers adopt
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Raw: p.src, Expected: p.kind, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) parseTop() (Value, error) {
	switch p.kind {
	case KindAny:
		return p.parseAny(true)
	case KindQuantity:
		return p.parseQuantity()
	case KindBool:
		return p.parseBool()
	case KindString:
		return p.parseStringTop()
	case KindDocRef, KindExpr:
		return p.parseMarker(p.kind)
	case KindArray:
		if p.src[p.pos] != '[' {
			return Value{}, p.errorf("want an array")
		}
		return p.parseArray()
	case KindObject:
		if p.src[p.pos] != '{' {
			return Value{}, p.errorf("want an object")
		}
		return p.parseObject()
	default:
		return Value{}, p.errorf("unknown kind %q", string(p.kind))
	}
}

// parseAny dispatches on the leading character. At the top level an
// unquoted word (and anything after it) is taken verbatim as a string;
// inside arrays and objects a bare word ends at the next delimiter.
func (p *parser) parseAny(top bool) (Value, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return Value{}, p.errorf("unexpected end of value")
	}
	c := p.src[p.pos]
	switch {
	case c == '"':
		return p.parseQuoted()
	case c == '[':
		return p.parseArray()
	case c == '{':
		return p.parseObject()
	case c == '+' || c == '-' || c == '.' || isDigit(c):
		return p.parseQuantity()
	case isIdentStart(c):
		return p.parseWord(top)
	default:
		return Value{}, p.errorf("unexpected character %q", string(c))
	}
}

func (p *parser) parseWord(top bool) (Value, error) {
	start := p.pos
	name := p.scanIdent()
	if strings.EqualFold(name, "true") {
		return Value{Kind: KindBool, Bool: true}, nil
	}
	if strings.EqualFold(name, "false") {
		return Value{Kind: KindBool, Bool: false}, nil
	}

	save := p.pos
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '(' {
		switch {
		case name == "xmldoc" || name == "csvdoc":
			return p.parseDocRef(name)
		case IsExprFunc(name):
			return p.parseExpr(name)
		default:
			return Value{}, p.errorf("unknown function %q", name)
		}
	}
	p.pos = save

	if top {
		s := p.src[start:]
		p.pos = len(p.src)
		return Value{Kind: KindString, Str: s}, nil
	}
	return Value{Kind: KindString, Str: name}, nil
}

func (p *parser) parseBool() (Value, error) {
	name := p.scanIdent()
	if strings.EqualFold(name, "true") {
		return Value{Kind: KindBool, Bool: true}, nil
	}
	if strings.EqualFold(name, "false") {
		return Value{Kind: KindBool, Bool: false}, nil
	}
	return Value{}, p.errorf("want true or false")
}

func (p *parser) parseStringTop() (Value, error) {
	if p.src[p.pos] == '"' {
		return p.parseQuoted()
	}
	s := p.src[p.pos:]
	p.pos = len(p.src)
	return Value{Kind: KindString, Str: s}, nil
}

func (p *parser) parseMarker(want Kind) (Value, error) {
	name := p.scanIdent()
	p.skipSpace()
	if name == "" || p.pos >= len(p.src) || p.src[p.pos] != '(' {
		if want == KindDocRef {
			return Value{}, p.errorf("want xmldoc(...) or csvdoc(...)")
		}
		return Value{}, p.errorf("want a distribution call")
	}
	if want == KindDocRef {
		if name != "xmldoc" && name != "csvdoc" {
			return Value{}, p.errorf("unknown document marker %q", name)
		}
		return p.parseDocRef(name)
	}
	if !IsExprFunc(name) {
		return Value{}, p.errorf("unknown function %q", name)
	}
	return p.parseExpr(name)
}

func (p *parser) parseQuantity() (Value, error) {
	q, err := p.scanQuantity()
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: KindQuantity, Quantity: q}, nil
}

// scanQuantity reads a signed decimal number and an optional unit
// suffix, normalizing into the canonical unit of the suffix's
// dimension. Whitespace may separate number and suffix.
func (p *parser) scanQuantity() (Quantity, error) {
	p.skipSpace()
	start := p.pos
	if p.pos < len(p.src) && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
		p.pos++
	}
	digits := 0
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
		digits++
	}
	if p.pos < len(p.src) && p.src[p.pos] == '.' {
		p.pos++
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
			digits++
		}
	}
	if digits == 0 {
		return Quantity{}, p.errorf("want a number")
	}
	if p.pos < len(p.src) && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') {
		save := p.pos
		p.pos++
		if p.pos < len(p.src) && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
			p.pos++
		}
		expDigits := 0
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
			expDigits++
		}
		if expDigits == 0 {
			p.pos = save
		}
	}
	num, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return Quantity{}, p.errorf("bad number %q", p.src[start:p.pos])
	}

	save := p.pos
	p.skipSpace()
	unitStart := p.pos
	for p.pos < len(p.src) && isLetter(p.src[p.pos]) {
		p.pos++
	}
	symbol := p.src[unitStart:p.pos]
	if symbol == "" {
		p.pos = save
		if p.dim == DimNone {
			return Quantity{Value: num}, nil
		}
		return Quantity{Value: num, Dim: p.dim, Unit: CanonicalUnit(p.dim)}, nil
	}

	def, ok := units[symbol]
	if !ok {
		return Quantity{}, &UnknownUnitError{Unit: symbol}
	}
	if p.dim != DimNone && def.dim != p.dim {
		return Quantity{}, &UnitMismatchError{Unit: symbol, Got: def.dim, Want: p.dim}
	}
	return Quantity{
		Value: toCanonical(num, def),
		Dim:   def.dim,
		Unit:  CanonicalUnit(def.dim),
	}, nil
}

func (p *parser) parseQuoted() (Value, error) {
	s, err := p.scanQuoted()
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: KindString, Str: s}, nil
}

func (p *parser) scanQuoted() (string, error) {
	p.pos++ // opening quote
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case '"':
			p.pos++
			return b.String(), nil
		case '\\':
			p.pos++
			if p.pos >= len(p.src) {
				return "", p.errorf("unterminated string")
			}
			switch p.src[p.pos] {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				return "", p.errorf("unsupported escape \\%s", string(p.src[p.pos]))
			}
			p.pos++
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", p.errorf("unterminated string")
}

func (p *parser) parseDocRef(name string) (Value, error) {
	p.pos++ // opening paren
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '"' {
		return Value{}, p.errorf("%s wants a quoted path", name)
	}
	path, err := p.scanQuoted()
	if err != nil {
		return Value{}, err
	}
	if path == "" {
		return Value{}, p.errorf("%s path is empty", name)
	}
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != ')' {
		return Value{}, p.errorf("missing ) after %s path", name)
	}
	p.pos++

	format := DocXML
	if name == "csvdoc" {
		format = DocCSV
	}
	return Value{Kind: KindDocRef, Ref: DocumentRef{Format: format, Path: path}}, nil
}

func (p *parser) parseExpr(name string) (Value, error) {
	p.pos++ // opening paren
	var args []Quantity
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == ')' {
		p.pos++
	} else {
		for {
			q, err := p.scanQuantity()
			if err != nil {
				return Value{}, err
			}
			args = append(args, q)
			p.skipSpace()
			if p.pos >= len(p.src) {
				return Value{}, p.errorf("missing ) after %s arguments", name)
			}
			if p.src[p.pos] == ',' {
				p.pos++
				continue
			}
			if p.src[p.pos] == ')' {
				p.pos++
				break
			}
			return Value{}, p.errorf("unexpected %q in %s arguments", string(p.src[p.pos]), name)
		}
	}

	expr, err := newExpression(name, args, p.src)
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: KindExpr, Expr: expr}, nil
}

func (p *parser) parseArray() (Value, error) {
	p.pos++ // opening bracket
	items := []Value{}
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == ']' {
		p.pos++
		return Value{Kind: KindArray, Items: items}, nil
	}
	for {
		item, err := p.parseAny(false)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
		p.skipSpace()
		if p.pos >= len(p.src) {
			return Value{}, p.errorf("missing ] after array items")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return Value{Kind: KindArray, Items: items}, nil
		default:
			return Value{}, p.errorf("unexpected %q in array", string(p.src[p.pos]))
		}
	}
}

func (p *parser) parseObject() (Value, error) {
	p.pos++ // opening brace
	fields := []Field{}
	seen := map[string]bool{}
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '}' {
		p.pos++
		return Value{Kind: KindObject, Fields: fields}, nil
	}
	for {
		p.skipSpace()
		var key string
		if p.pos < len(p.src) && p.src[p.pos] == '"' {
			k, err := p.scanQuoted()
			if err != nil {
				return Value{}, err
			}
			key = k
		} else {
			key = p.scanIdent()
			if key == "" {
				return Value{}, p.errorf("want an object key")
			}
		}
		if seen[key] {
			return Value{}, p.errorf("duplicate object key %q", key)
		}
		seen[key] = true

		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ':' {
			return Value{}, p.errorf("missing : after object key %q", key)
		}
		p.pos++

		val, err := p.parseAny(false)
		if err != nil {
			return Value{}, err
		}
		fields = append(fields, Field{Name: key, Value: val})

		p.skipSpace()
		if p.pos >= len(p.src) {
			return Value{}, p.errorf("missing } after object fields")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return Value{Kind: KindObject, Fields: fields}, nil
		default:
			return Value{}, p.errorf("unexpected %q in object", string(p.src[p.pos]))
		}
	}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) scanIdent() string {
	start := p.pos
	if p.pos < len(p.src) && isIdentStart(p.src[p.pos]) {
		p.pos++
		for p.pos < len(p.src) && isIdentPart(p.src[p.pos]) {
			p.pos++
		}
	}
	return p.src[start:p.pos]
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

func isIdentStart(c byte) bool { return isLetter(c) || c == '_' }
func isIdentPart(c byte) bool  { return isLetter(c) || isDigit(c) || c == '_' || c == '-' }
