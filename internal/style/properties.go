// Package style turns a design node's visual attributes into CSS
// properties. Properties keep insertion order so generated stylesheets and
// inline styles are stable from run to run.
package style

import (
	"strings"

	"github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Properties is an ordered CSS property → value mapping.
type Properties struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewProperties returns an empty mapping.
func NewProperties() *Properties {
	return &Properties{m: orderedmap.New[string, string]()}
}

// Set adds or replaces a property. A replaced property keeps its position.
func (p *Properties) Set(prop, value string) {
	p.m.Set(prop, value)
}

// Get returns the value of prop.
func (p *Properties) Get(prop string) (string, bool) {
	return p.m.Get(prop)
}

// Has reports whether prop is set.
func (p *Properties) Has(prop string) bool {
	_, ok := p.m.Get(prop)
	return ok
}

// Delete removes the given properties.
func (p *Properties) Delete(props ...string) {
	for _, prop := range props {
		p.m.Delete(prop)
	}
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	return p.m.Len()
}

// Keys returns property names in order.
func (p *Properties) Keys() []string {
	keys := make([]string, 0, p.m.Len())
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every property in order.
func (p *Properties) Each(fn func(prop, value string)) {
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Merge copies every property of other into p; other wins on collision.
func (p *Properties) Merge(other *Properties) {
	if other == nil {
		return
	}
	other.Each(p.Set)
}

// Clone returns an independent copy.
func (p *Properties) Clone() *Properties {
	c := NewProperties()
	c.Merge(p)
	return c
}

// Equal reports whether both mappings hold the same properties in the same order.
func (p *Properties) Equal(other *Properties) bool {
	if p.Len() != other.Len() {
		return false
	}
	a, b := p.m.Oldest(), other.m.Oldest()
	for ; a != nil; a, b = a.Next(), b.Next() {
		if a.Key != b.Key || a.Value != b.Value {
			return false
		}
	}
	return true
}

// Diff returns the properties of p whose value is absent or different in base.
func (p *Properties) Diff(base *Properties) *Properties {
	out := NewProperties()
	p.Each(func(prop, value string) {
		if v, ok := base.Get(prop); !ok || v != value {
			out.Set(prop, value)
		}
	})
	return out
}

// WithoutDefaults returns a copy with every implicit-default value removed.
func (p *Properties) WithoutDefaults(d Defaults) *Properties {
	out := NewProperties()
	p.Each(func(prop, value string) {
		if !d.IsDefault(prop, value) {
			out.Set(prop, value)
		}
	})
	return out
}

// CSS renders the declarations one per line, each prefixed by indent.
func (p *Properties) CSS(indent string) string {
	var b strings.Builder
	p.Each(func(prop, value string) {
		b.WriteString(indent)
		b.WriteString(prop)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString(";\n")
	})
	return b.String()
}

// JSX renders a React inline style object literal with camelCased keys,
// e.g. {"display":"flex","flexDirection":"row"}.
func (p *Properties) JSX() (string, error) {
	m := orderedmap.New[string, string]()
	p.Each(func(prop, value string) {
		m.Set(CamelProperty(prop), value)
	})
	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// CamelProperty converts a CSS property name into its React style key:
// "background-color" → "backgroundColor", "-webkit-box-shadow" → "WebkitBoxShadow".
func CamelProperty(prop string) string {
	var b strings.Builder
	upper := false
	for _, r := range prop {
		if r == '-' {
			upper = true
			continue
		}
		if upper && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		upper = false
		b.WriteRune(r)
	}
	return b.String()
}
