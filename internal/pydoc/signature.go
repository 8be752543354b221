package pydoc

import (
	"strings"
)

// Parsed is the best-effort structure recovered from a signature string.
type Parsed struct {
	Params  []Param
	Returns *Returns
	// Diagnostic explains why nothing, or less than expected, was recovered.
	Diagnostic string
}

// ParseSignature recovers parameters and the return annotation from a
// signature such as "(self, amount: int, mint: Pubkey = None) -> Signature".
// The parameter list runs from the first "(" to the last ")"; anything after
// a trailing "->" is the return type, up to a "#" comment. It never fails;
// malformed input yields fewer params and a diagnostic.
func ParseSignature(sig string) Parsed {
	sig = strings.TrimSpace(sig)
	if sig == "" {
		return Parsed{Diagnostic: "empty signature"}
	}

	open := strings.Index(sig, "(")
	if open < 0 {
		return Parsed{Diagnostic: "no parameter list"}
	}
	closeIdx := strings.LastIndex(sig, ")")
	if closeIdx <= open {
		return Parsed{Diagnostic: "unterminated parameter list"}
	}

	var out Parsed
	inner := sig[open+1 : closeIdx]
	if !balanced(inner) {
		out.Diagnostic = "unbalanced brackets in parameter list"
	}
	for _, raw := range splitTopLevel(inner, ',') {
		if p, ok := parseParam(raw); ok {
			out.Params = append(out.Params, p)
		}
	}

	rest := sig[closeIdx+1:]
	if i := strings.Index(rest, "->"); i >= 0 {
		typ, _, _ := strings.Cut(rest[i+2:], "#")
		if typ = strings.TrimSpace(typ); typ != "" {
			out.Returns = &Returns{Type: typ}
		}
	}
	return out
}

func parseParam(raw string) (Param, bool) {
	raw = strings.TrimSpace(raw)
	namePart, typePart, hasType := strings.Cut(raw, ":")

	var p Param
	if hasType {
		p.Name = strings.TrimSpace(namePart)
		typ, def, hasDefault := cutTopLevel(typePart, '=')
		p.Type = strings.TrimSpace(typ)
		if hasDefault {
			p.Default = strings.TrimSpace(def)
		}
	} else {
		name, def, hasDefault := strings.Cut(namePart, "=")
		p.Name = strings.TrimSpace(name)
		if hasDefault {
			p.Default = strings.TrimSpace(def)
		}
	}

	switch p.Name {
	case "", "self", "*", "/":
		return Param{}, false
	}
	return p, true
}

// bracketScanner tracks bracket depth across a string, skipping quoted
// literals so a default such as ")" does not close anything.
type bracketScanner struct {
	depth    int
	quote    byte
	escaped  bool
	negative bool
}

// step consumes c and reports whether it sits outside every bracket and
// quote without being one itself.
func (b *bracketScanner) step(c byte) bool {
	if b.quote != 0 {
		switch {
		case b.escaped:
			b.escaped = false
		case c == '\\':
			b.escaped = true
		case c == b.quote:
			b.quote = 0
		}
		return false
	}
	switch c {
	case '"', '\'':
		b.quote = c
		return false
	case '(', '[', '{':
		b.depth++
		return false
	case ')', ']', '}':
		b.depth--
		if b.depth < 0 {
			b.negative = true
		}
		return false
	}
	return b.depth == 0
}

func balanced(s string) bool {
	var b bracketScanner
	for i := 0; i < len(s); i++ {
		b.step(s[i])
	}
	return b.depth == 0 && !b.negative && b.quote == 0
}

// splitTopLevel splits s on sep outside of any bracket pair or quote.
func splitTopLevel(s string, sep byte) []string {
	var (
		parts []string
		b     bracketScanner
		start int
	)
	for i := 0; i < len(s); i++ {
		if b.step(s[i]) && s[i] == sep {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])

	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// cutTopLevel is strings.Cut that ignores separators nested in brackets or
// quotes.
func cutTopLevel(s string, sep byte) (before, after string, found bool) {
	var b bracketScanner
	for i := 0; i < len(s); i++ {
		if b.step(s[i]) && s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}
