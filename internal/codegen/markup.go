package codegen

import (
	"fmt"
	"html"
	"strings"

	"github.com/barun-bash/figma-to-react/internal/errors"
	"github.com/barun-bash/figma-to-react/internal/figma"
	"github.com/barun-bash/figma-to-react/internal/naming"
	"github.com/barun-bash/figma-to-react/internal/style"
)

// MarkupRenderer turns a node tree into JSX.
type MarkupRenderer struct {
	sanitizer *naming.Sanitizer
	extractor *style.Extractor
	maxDepth  int
	indent    string // prefix for the root line
}

// NewMarkupRenderer returns a renderer. maxDepth <= 0 selects
// figma.DefaultMaxDepth.
func NewMarkupRenderer(s *naming.Sanitizer, e *style.Extractor, maxDepth int) *MarkupRenderer {
	if maxDepth <= 0 {
		maxDepth = figma.DefaultMaxDepth
	}
	return &MarkupRenderer{sanitizer: s, extractor: e, maxDepth: maxDepth}
}

// WithIndent returns a copy whose root line starts with indent.
func (m *MarkupRenderer) WithIndent(indent string) *MarkupRenderer {
	c := *m
	c.indent = indent
	return &c
}

// Render emits JSX for root and records every emitted class in reg. An
// invisible root renders as the empty string. Missing required fields and
// trees deeper than the limit fail with a structural decode error; the
// caller must discard reg in that case.
func (m *MarkupRenderer) Render(root *figma.Node, reg *Registry) (string, error) {
	if root == nil {
		return "", errors.Decodef("no node to render")
	}
	reg.Index(root)

	var b strings.Builder
	if err := m.render(&b, root, nil, reg, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (m *MarkupRenderer) render(b *strings.Builder, n, parent *figma.Node, reg *Registry, depth int) error {
	if depth > m.maxDepth {
		return errors.Decodef("node tree exceeds maximum depth %d at %s", m.maxDepth, n.ID)
	}
	if !n.Visible {
		return nil
	}

	c := Classify(n, m.sanitizer)
	if c.Role == RoleTextLeaf && n.Text == nil {
		return errors.Decodef("text node %s (%q) has no text content", n.ID, n.Name)
	}

	props := m.extractor.ExtractIn(n, parent)
	inline := ""
	if props.Len() > 0 {
		jsx, err := props.JSX()
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "serializing style of %s", n.ID), errors.ErrStructuralDecode)
		}
		inline = " style={" + jsx + "}"
	}

	name := n.Name
	if c.Role == RoleContainer {
		name = classPrefix(n.Kind) + name
	}
	class := reg.Register(m.sanitizer.Sanitize(name), n, parent, c.Role)

	pad := m.indent + strings.Repeat("  ", depth)
	open := fmt.Sprintf("%s<%s className=%q%s", pad, c.Tag, class, inline)

	switch c.Role {
	case RoleContainer:
		if len(n.Children) == 0 {
			fmt.Fprintf(b, "%s></%s>\n", open, c.Tag)
			return nil
		}
		fmt.Fprintf(b, "%s>\n", open)
		for _, child := range n.Children {
			if child == nil {
				return errors.Decodef("node %s (%q) has a missing child", n.ID, n.Name)
			}
			if err := m.render(b, child, n, reg, depth+1); err != nil {
				return err
			}
		}
		fmt.Fprintf(b, "%s</%s>\n", pad, c.Tag)
	case RoleTextLeaf:
		fmt.Fprintf(b, "%s>%s</%s>\n", open, escapeText(n.Text.Characters), c.Tag)
	default:
		if c.Tag == "img" {
			open += ` alt="` + html.EscapeString(n.Name) + `"`
		}
		fmt.Fprintf(b, "%s />\n", open)
	}
	return nil
}

// escapeText makes literal text safe inside JSX: markup characters and
// braces are entity-encoded and newlines become <br />.
func escapeText(s string) string {
	s = html.EscapeString(s)
	s = strings.NewReplacer("{", "&#123;", "}", "&#125;").Replace(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "<br />")
}
