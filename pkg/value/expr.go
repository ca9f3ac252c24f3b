package value

import (
	"fmt"
	"math/rand"
	"strings"
)

// ExprFunc names a seeded-random distribution function.
type ExprFunc string

const (
	ExprUniform     ExprFunc = "uniform"
	ExprNormal      ExprFunc = "normal"
	ExprExponential ExprFunc = "exponential"
	ExprIntUniform  ExprFunc = "intuniform"
)

var exprArity = map[ExprFunc]int{
	ExprUniform:     2,
	ExprNormal:      2,
	ExprExponential: 1,
	ExprIntUniform:  2,
}

// IsExprFunc reports whether name is a known distribution function.
func IsExprFunc(name string) bool {
	_, ok := exprArity[ExprFunc(name)]
	return ok
}

// Expression is a distribution the host samples against a mapped RNG
// stream. Arguments are normalized quantities sharing one dimension;
// samples carry that same dimension.
type Expression struct {
	Func ExprFunc
	Args []Quantity
	Dim  Dimension
}

// newExpression validates arity and argument dimensions.
func newExpression(name string, args []Quantity, raw string) (*Expression, error) {
	fn := ExprFunc(name)
	arity, ok := exprArity[fn]
	if !ok {
		return nil, &ParseError{Raw: raw, Message: fmt.Sprintf("unknown function %q", name)}
	}
	if len(args) != arity {
		return nil, &ParseError{
			Raw:     raw,
			Message: fmt.Sprintf("%s takes %d arguments, got %d", name, arity, len(args)),
		}
	}

	dim := DimNone
	for _, arg := range args {
		if arg.Dim == DimNone {
			continue
		}
		if dim == DimNone {
			dim = arg.Dim
			continue
		}
		if arg.Dim != dim {
			return nil, &ParseError{
				Raw:     raw,
				Message: fmt.Sprintf("%s arguments mix %s and %s", name, dim, arg.Dim),
			}
		}
	}

	return &Expression{Func: fn, Args: args, Dim: dim}, nil
}

// Sample draws one value from the distribution. The caller supplies the
// generator for the module's mapped stream, so a fixed seed reproduces
// the same draw sequence.
func (e *Expression) Sample(r *rand.Rand) Quantity {
	q := Quantity{Dim: e.Dim, Unit: CanonicalUnit(e.Dim)}
	switch e.Func {
	case ExprUniform:
		a, b := e.Args[0].Value, e.Args[1].Value
		q.Value = a + r.Float64()*(b-a)
	case ExprNormal:
		mean, stddev := e.Args[0].Value, e.Args[1].Value
		q.Value = mean + stddev*r.NormFloat64()
	case ExprExponential:
		q.Value = e.Args[0].Value * r.ExpFloat64()
	case ExprIntUniform:
		a, b := int64(e.Args[0].Value), int64(e.Args[1].Value)
		q.Value = float64(a + r.Int63n(b-a+1))
	}
	return q
}

// String renders the expression in source form.
func (e *Expression) String() string {
	parts := make([]string, len(e.Args))
	for i, arg := range e.Args {
		parts[i] = arg.String()
	}
	return string(e.Func) + "(" + strings.Join(parts, ", ") + ")"
}
