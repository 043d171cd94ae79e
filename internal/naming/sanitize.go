// Package naming turns arbitrary design-node names into identifiers:
// CSS class names, React component names and camelCase keys.
//
// All three forms share one normalization: characters that are illegal in a
// class selector become distinct word tokens, separators and case changes
// split words, non-Latin words are translated through an injected
// Vocabulary, and anything left outside ASCII is spelled as a code point.
package naming

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	// FallbackClass is returned for names that sanitize to nothing.
	FallbackClass = "element"

	// DigitPrefix guards identifiers that would otherwise start with a digit.
	DigitPrefix = "n"
)

// illegalTokens maps characters that cannot appear in a class selector to
// the word that replaces them. Every character maps to a different word.
var illegalTokens = map[rune]string{
	'.':  "dot",
	'\\': "backslash",
	':':  "colon",
	'*':  "star",
	'+':  "plus",
	'[':  "lbracket",
	']':  "rbracket",
	'(':  "lparen",
	')':  "rparen",
	'>':  "gt",
	'<':  "lt",
	'&':  "amp",
	',':  "comma",
	'\'': "apos",
	'"':  "quot",
	'!':  "bang",
	'?':  "question",
	'=':  "eq",
	'|':  "pipe",
	';':  "semi",
	'@':  "at",
	'$':  "dollar",
	'#':  "hash",
	'%':  "percent",
	'^':  "caret",
	'~':  "tilde",
}

// Sanitizer converts names to identifiers using an immutable Vocabulary.
type Sanitizer struct {
	vocab Vocabulary
}

// NewSanitizer returns a Sanitizer that translates non-Latin words with vocab.
func NewSanitizer(vocab Vocabulary) *Sanitizer {
	return &Sanitizer{vocab: vocab}
}

// Sanitize converts name into a lower-case, hyphenated, ASCII class name.
// It is deterministic but not injective: different names may collide.
func (s *Sanitizer) Sanitize(name string) string {
	words := s.words(name)
	if len(words) == 0 {
		return FallbackClass
	}
	out := strings.Join(words, "-")
	if out[0] >= '0' && out[0] <= '9' {
		out = DigitPrefix + out
	}
	return out
}

// PascalCase converts name into a component identifier, e.g.
// "Login Modal" → "LoginModal", "2pm" → "N2pm".
func (s *Sanitizer) PascalCase(name string) string {
	var b strings.Builder
	for _, w := range strings.Split(s.Sanitize(name), "-") {
		if w == "" {
			continue
		}
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(w[1:])
	}
	return b.String()
}

// reservedComponentNames are bindings every generated module imports.
var reservedComponentNames = map[string]bool{"React": true}

// ComponentName is PascalCase with a "Component" suffix on names that
// would redeclare an imported binding, e.g. "react" → "ReactComponent".
func (s *Sanitizer) ComponentName(name string) string {
	p := s.PascalCase(name)
	if reservedComponentNames[p] {
		return p + "Component"
	}
	return p
}

// CamelCase converts name into a lower camelCase identifier.
func (s *Sanitizer) CamelCase(name string) string {
	p := s.PascalCase(name)
	if p == "" {
		return p
	}
	return strings.ToLower(p[:1]) + p[1:]
}

// words splits name into lower-case ASCII words.
func (s *Sanitizer) words(name string) []string {
	var (
		words  []string
		ascii  []rune
		native []rune
	)

	flushASCII := func() {
		if len(ascii) > 0 {
			words = append(words, splitCamel(ascii)...)
			ascii = ascii[:0]
		}
	}
	flushNative := func() {
		if len(native) > 0 {
			words = append(words, s.translate(native)...)
			native = native[:0]
		}
	}

	for _, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			flushNative()
			ascii = append(ascii, r)
		case illegalTokens[r] != "":
			flushASCII()
			flushNative()
			words = append(words, illegalTokens[r])
		case r < unicode.MaxASCII || unicode.IsSpace(r):
			// separators: whitespace, '/', '_', '-' and remaining ASCII punctuation
			flushASCII()
			flushNative()
		default:
			flushASCII()
			native = append(native, r)
		}
	}
	flushASCII()
	flushNative()
	return words
}

// translate segments a run of non-ASCII runes by greedy longest match against
// the vocabulary. Unmatched runes become "u<hex>" words.
func (s *Sanitizer) translate(run []rune) []string {
	var words []string
	for i := 0; i < len(run); {
		matched := false
		for n := min(s.vocab.maxLen, len(run)-i); n > 0; n-- {
			if w, ok := s.vocab.Lookup(string(run[i : i+n])); ok {
				words = append(words, asciiWords(w)...)
				i += n
				matched = true
				break
			}
		}
		if !matched {
			words = append(words, fmt.Sprintf("u%x", run[i]))
			i++
		}
	}
	return words
}

// asciiWords splits a vocabulary value on anything that is not an ASCII
// letter or digit, then at case boundaries.
func asciiWords(s string) []string {
	var words []string
	for _, chunk := range strings.FieldsFunc(s, func(r rune) bool {
		return r >= unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r))
	}) {
		words = append(words, splitCamel([]rune(chunk))...)
	}
	return words
}

// splitCamel splits an ASCII run at case boundaries and lower-cases it:
// "CardHeader" → [card header], "HTMLButton" → [html button], "h1Title" → [h1 title].
func splitCamel(run []rune) []string {
	var (
		words []string
		start int
	)
	for i := 1; i < len(run); i++ {
		prev, cur := run[i-1], run[i]
		if !unicode.IsUpper(cur) {
			continue
		}
		nextLower := i+1 < len(run) && unicode.IsLower(run[i+1])
		if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
			words = append(words, strings.ToLower(string(run[start:i])))
			start = i
		}
	}
	words = append(words, strings.ToLower(string(run[start:])))
	return words
}
