package slot

import (
	"fmt"
	"strings"
)

// UnknownPlaceholderError reports a {name} marker whose name is not one of
// the recognized placeholders.
type UnknownPlaceholderError struct {
	Name   string
	Offset int
}

func (e *UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("unknown placeholder {%s} at offset %d", e.Name, e.Offset)
}

type token struct {
	literal string
	name    Name // empty for literal tokens
}

// Pattern is template text parsed into literal and placeholder tokens.
// The zero value renders as the empty string.
type Pattern struct {
	raw    string
	tokens []token
}

// Parse tokenizes text. A placeholder is '{' followed by an identifier and
// '}'; any other brace is literal text, so JSON documents need no escaping.
// Identifiers outside the recognized set fail with *UnknownPlaceholderError.
func Parse(text string) (Pattern, error) {
	p := Pattern{raw: text}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			p.tokens = append(p.tokens, token{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(text); {
		if text[i] == '{' {
			if end, ok := scanIdent(text, i+1); ok && end < len(text) && text[end] == '}' {
				ident := text[i+1 : end]
				if !Known(ident) {
					return Pattern{}, &UnknownPlaceholderError{Name: ident, Offset: i}
				}
				flush()
				p.tokens = append(p.tokens, token{name: Name(ident)})
				i = end + 1
				continue
			}
		}
		lit.WriteByte(text[i])
		i++
	}
	flush()
	return p, nil
}

// MustParse is like Parse but panics on error. Intended for literals in tests.
func MustParse(text string) Pattern {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

// scanIdent returns the end offset of an identifier starting at start.
func scanIdent(s string, start int) (int, bool) {
	i := start
	for i < len(s) {
		c := s[i]
		isLetter := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isDigit := c >= '0' && c <= '9'
		if !isLetter && !(isDigit && i > start) {
			break
		}
		i++
	}
	return i, i > start
}

// Render substitutes b into the pattern. A placeholder absent from b is
// rendered as its literal marker.
func (p Pattern) Render(b Binding) string {
	var out strings.Builder
	out.Grow(len(p.raw))
	for _, t := range p.tokens {
		if t.name == "" {
			out.WriteString(t.literal)
			continue
		}
		if v, ok := b[t.name]; ok {
			out.WriteString(v)
		} else {
			out.WriteString(t.name.Marker())
		}
	}
	return out.String()
}

// Placeholders returns the distinct placeholder names in order of first use.
func (p Pattern) Placeholders() []Name {
	var names []Name
	seen := make(map[Name]bool)
	for _, t := range p.tokens {
		if t.name != "" && !seen[t.name] {
			seen[t.name] = true
			names = append(names, t.name)
		}
	}
	return names
}

// String returns the source text the pattern was parsed from.
func (p Pattern) String() string {
	return p.raw
}

// IsZero reports whether the pattern has no source text.
func (p Pattern) IsZero() bool {
	return p.raw == ""
}
