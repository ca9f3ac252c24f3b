package value

import (
	"fmt"
	"strings"
)

// Substitute expands ${name} and ${name=default} references in raw
// text before kind parsing. A run parameter override wins over the
// default. A comma-separated default is a per-repetition list and the
// run index selects one element; a plain default is used verbatim. A
// reference with neither an override nor a default fails.
//
// Text without references passes through unchanged, including bare $
// characters.
func Substitute(raw string, params map[string]string, runIndex int) (string, error) {
	if !strings.Contains(raw, "${") {
		return raw, nil
	}

	var b strings.Builder
	rest := raw
	for {
		i := strings.Index(rest, "${")
		if i < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		b.WriteString(rest[:i])
		rest = rest[i+2:]

		j := strings.IndexByte(rest, '}')
		if j < 0 {
			return "", &ParseError{Raw: raw, Message: "unterminated variable reference"}
		}
		ref := rest[:j]
		rest = rest[j+1:]

		name, def, hasDef := strings.Cut(ref, "=")
		name = strings.TrimSpace(name)
		if !isVariableName(name) {
			return "", &ParseError{Raw: raw, Message: fmt.Sprintf("bad variable name %q", name)}
		}

		expanded, err := expandVariable(raw, name, def, hasDef, params, runIndex)
		if err != nil {
			return "", err
		}
		b.WriteString(expanded)
	}
}

func expandVariable(raw, name, def string, hasDef bool, params map[string]string, runIndex int) (string, error) {
	if v, ok := params[name]; ok {
		return v, nil
	}
	if !hasDef {
		return "", &ParseError{Raw: raw, Message: fmt.Sprintf("variable %q is not bound and has no default", name)}
	}

	// A quoted default is never a list, commas inside are literal.
	if strings.Contains(def, ",") && !strings.Contains(def, `"`) {
		items := strings.Split(def, ",")
		if runIndex < 0 || runIndex >= len(items) {
			return "", &ParseError{
				Raw:     raw,
				Message: fmt.Sprintf("run index %d out of range for variable %q with %d values", runIndex, name, len(items)),
			}
		}
		return strings.TrimSpace(items[runIndex]), nil
	}
	return def, nil
}

func isVariableName(name string) bool {
	if name == "" || !isIdentStart(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isIdentPart(name[i]) {
			return false
		}
	}
	return true
}
