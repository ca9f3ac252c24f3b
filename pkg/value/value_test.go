package value

import (
	"errors"
	"math"
	"testing"
)

func closeTo(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	return diff <= scale*1e-12
}

func TestParseQuantities(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		dim      Dimension
		want     float64
		wantDim  Dimension
		wantUnit string
	}{
		{"milliwatts", "47.9 mW", DimNone, 0.0479, DimPower, "W"},
		{"watts", "0.0479 W", DimNone, 0.0479, DimPower, "W"},
		{"attached suffix", "126mW", DimNone, 0.126, DimPower, "W"},
		{"gigahertz", "5.9 GHz", DimNone, 5.9e9, DimFrequency, "Hz"},
		{"negative", "-3.5", DimNone, -3.5, DimNone, ""},
		{"leading dot", ".5", DimNone, 0.5, DimNone, ""},
		{"explicit sign", "+2", DimNone, 2, DimNone, ""},
		{"kilometres", "1.2 km", DimNone, 1200, DimLength, "m"},
		{"speed", "36 kmph", DimNone, 10, DimSpeed, "mps"},
		{"minutes", "5 min", DimNone, 300, DimTime, "s"},
		{"milliseconds", "20 ms", DimNone, 0.02, DimTime, "s"},
		{"data rate", "6 Mbps", DimNone, 6e6, DimDataRate, "bps"},
		{"decibel milliwatts", "10 dBm", DimNone, 0.01, DimPower, "W"},
		{"decibel watts", "0 dBW", DimNone, 1, DimPower, "W"},
		{"level stays in dB", "10 dB", DimNone, 10, DimLevel, "dB"},
		{"bare number adopts hint", "300", DimLength, 300, DimLength, "m"},
		{"exponent", "2e3", DimNone, 2000, DimNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseAs(tt.raw, KindQuantity, tt.dim)
			if err != nil {
				t.Fatalf("ParseAs(%q) error: %v", tt.raw, err)
			}
			if v.Kind != KindQuantity {
				t.Fatalf("kind = %s, want quantity", v.Kind)
			}
			q := v.Quantity
			if !closeTo(q.Value, tt.want) {
				t.Errorf("value = %v, want %v", q.Value, tt.want)
			}
			if q.Dim != tt.wantDim {
				t.Errorf("dim = %s, want %s", q.Dim, tt.wantDim)
			}
			if q.Unit != tt.wantUnit {
				t.Errorf("unit = %q, want %q", q.Unit, tt.wantUnit)
			}
		})
	}
}

func TestParseQuantityEquivalence(t *testing.T) {
	a, err := Parse("47.9 mW")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse("0.0479 W")
	if err != nil {
		t.Fatal(err)
	}
	if !closeTo(a.Quantity.Value, b.Quantity.Value) {
		t.Errorf("47.9 mW = %v, 0.0479 W = %v", a.Quantity.Value, b.Quantity.Value)
	}
	if a.Quantity.Dim != b.Quantity.Dim || a.Quantity.Unit != b.Quantity.Unit {
		t.Errorf("canonical forms differ: %v vs %v", a.Quantity, b.Quantity)
	}
}

func TestParseUnitMismatch(t *testing.T) {
	_, err := ParseAs("10dB", KindQuantity, DimLength)
	if err == nil {
		t.Fatal("expected unit mismatch, got nil")
	}
	var mismatch *UnitMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("error is %T, want *UnitMismatchError", err)
	}
	if mismatch.Unit != "dB" || mismatch.Got != DimLevel || mismatch.Want != DimLength {
		t.Errorf("mismatch = %+v", mismatch)
	}
}

func TestParseUnknownUnit(t *testing.T) {
	_, err := Parse("3 parsecs")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var unknown *UnknownUnitError
	if !errors.As(err, &unknown) {
		t.Fatalf("error is %T, want *UnknownUnitError", err)
	}
	if unknown.Unit != "parsecs" {
		t.Errorf("Unit = %q, want parsecs", unknown.Unit)
	}
}

func TestParseBools(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"true", true},
		{"TRUE", true},
		{"False", false},
		{"false", false},
	}

	for _, tt := range tests {
		v, err := Parse(tt.raw)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.raw, err)
		}
		if v.Kind != KindBool || v.Bool != tt.want {
			t.Errorf("Parse(%q) = %v %v, want bool %v", tt.raw, v.Kind, v.Bool, tt.want)
		}
	}

	if _, err := ParseAs("yes", KindBool, DimNone); err == nil {
		t.Error("ParseAs(yes, bool) did not fail")
	}
}

func TestParseStrings(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind Kind
		want string
	}{
		{"quoted", `"TraCIDemo11p"`, KindAny, "TraCIDemo11p"},
		{"escaped quote", `"a\"b"`, KindAny, `a"b`},
		{"escaped backslash", `"a\\b"`, KindAny, `a\b`},
		{"newline escape", `"line\nbreak"`, KindAny, "line\nbreak"},
		{"tab escape", `"col\tcol"`, KindAny, "col\tcol"},
		{"bare word", "LinearMobility", KindAny, "LinearMobility"},
		{"bare words with space", "hello world", KindAny, "hello world"},
		{"hinted bare text", "output/results", KindString, "output/results"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseAs(tt.raw, tt.kind, DimNone)
			if err != nil {
				t.Fatalf("ParseAs(%q) error: %v", tt.raw, err)
			}
			if v.Kind != KindString || v.Str != tt.want {
				t.Errorf("got %s %q, want string %q", v.Kind, v.Str, tt.want)
			}
		})
	}
}

func TestParseStringErrors(t *testing.T) {
	for _, raw := range []string{`"unterminated`, `"bad \q escape"`} {
		if _, err := Parse(raw); err == nil {
			t.Errorf("Parse(%q) did not fail", raw)
		}
	}
}

func TestParseDocRefs(t *testing.T) {
	tests := []struct {
		raw        string
		wantFormat DocFormat
		wantPath   string
	}{
		{`xmldoc("vehicles.xml")`, DocXML, "vehicles.xml"},
		{`csvdoc("trace.csv")`, DocCSV, "trace.csv"},
		{`xmldoc( "spaced.xml" )`, DocXML, "spaced.xml"},
	}

	for _, tt := range tests {
		v, err := Parse(tt.raw)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.raw, err)
		}
		if v.Kind != KindDocRef {
			t.Fatalf("Parse(%q) kind = %s, want docref", tt.raw, v.Kind)
		}
		if v.Ref.Format != tt.wantFormat || v.Ref.Path != tt.wantPath {
			t.Errorf("Parse(%q) = %+v", tt.raw, v.Ref)
		}
	}

	bad := []string{
		`xmldoc(vehicles.xml)`,
		`xmldoc("")`,
		`xmldoc("a.xml"`,
		`jsondoc("a.json")`,
	}
	for _, raw := range bad {
		if _, err := Parse(raw); err == nil {
			t.Errorf("Parse(%q) did not fail", raw)
		}
	}
}

func TestParseExpressions(t *testing.T) {
	v, err := Parse("uniform(0s, 5s)")
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != KindExpr {
		t.Fatalf("kind = %s, want expression", v.Kind)
	}
	expr := v.Expr
	if expr.Func != ExprUniform || expr.Dim != DimTime || len(expr.Args) != 2 {
		t.Errorf("expr = %+v", expr)
	}
	if !closeTo(expr.Args[1].Value, 5) {
		t.Errorf("arg[1] = %v, want 5", expr.Args[1].Value)
	}

	bad := []struct {
		raw string
	}{
		{"uniform(1s)"},
		{"exponential(1, 2)"},
		{"uniform(1s, 2m)"},
		{"uniform(1s, 2s"},
		{"triang(1, 2, 3)"},
	}
	for _, tt := range bad {
		if _, err := Parse(tt.raw); err == nil {
			t.Errorf("Parse(%q) did not fail", tt.raw)
		}
	}
}

func TestParseArrays(t *testing.T) {
	v, err := Parse(`[1, 2.5 s, "x", true]`)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != KindArray || len(v.Items) != 4 {
		t.Fatalf("got %s with %d items", v.Kind, len(v.Items))
	}
	if v.Items[1].Quantity.Dim != DimTime {
		t.Errorf("item 1 dim = %s, want time", v.Items[1].Quantity.Dim)
	}
	if v.Items[2].Str != "x" || v.Items[3].Bool != true {
		t.Errorf("items = %+v", v.Items)
	}

	empty, err := Parse("[]")
	if err != nil {
		t.Fatal(err)
	}
	if empty.Kind != KindArray || len(empty.Items) != 0 {
		t.Errorf("empty array = %+v", empty)
	}

	for _, raw := range []string{"[1, 2", "[1 2]", "[,]"} {
		if _, err := Parse(raw); err == nil {
			t.Errorf("Parse(%q) did not fail", raw)
		}
	}
}

func TestParseObjects(t *testing.T) {
	v, err := Parse(`{x: 100m, label: "rsu", nested: [1, 2]}`)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != KindObject || len(v.Fields) != 3 {
		t.Fatalf("got %s with %d fields", v.Kind, len(v.Fields))
	}

	x, ok := v.Field("x")
	if !ok || x.Quantity.Dim != DimLength || !closeTo(x.Quantity.Value, 100) {
		t.Errorf("field x = %+v", x)
	}
	if _, ok := v.Field("missing"); ok {
		t.Error("lookup of missing field reported ok")
	}

	for _, raw := range []string{"{a 1}", "{a: 1,}", `{a: 1, a: 2}`, "{a: 1"} {
		if _, err := Parse(raw); err == nil {
			t.Errorf("Parse(%q) did not fail", raw)
		}
	}
}

func TestParseKindHints(t *testing.T) {
	tests := []struct {
		raw  string
		kind Kind
	}{
		{"true", KindQuantity},
		{"42", KindBool},
		{`"text"`, KindQuantity},
		{"1", KindArray},
		{"1", KindObject},
		{"hello", KindDocRef},
		{"hello", KindExpr},
		{`xmldoc("a.xml")`, KindExpr},
		{"uniform(0, 1)", KindDocRef},
	}

	for _, tt := range tests {
		if _, err := ParseAs(tt.raw, tt.kind, DimNone); err == nil {
			t.Errorf("ParseAs(%q, %s) did not fail", tt.raw, tt.kind)
		}
	}
}

func TestParseEmptyAndTrailing(t *testing.T) {
	for _, raw := range []string{"", "   ", "1 2", `"a" "b"`, "true false"} {
		if _, err := Parse(raw); err == nil {
			t.Errorf("Parse(%q) did not fail", raw)
		}
	}
}

func TestParseRejectsUnsubstitutedVariable(t *testing.T) {
	if _, err := Parse("${seed=4}"); err == nil {
		t.Error("unsubstituted reference did not fail")
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"true", "true"},
		{`"a"`, `"a"`},
		{"[1, 2]", "[1, 2]"},
		{`xmldoc("v.xml")`, `xmldoc("v.xml")`},
	}

	for _, tt := range tests {
		v, err := Parse(tt.raw)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.raw, err)
		}
		if got := v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
