// Package codegen renders a decoded Figma node tree as a React component:
// JSX markup with inline styles plus a matching stylesheet. Both renderers
// share one used-class Registry per component so the stylesheet holds a
// rule for exactly the classes the markup emitted.
package codegen

import (
	"strings"

	"github.com/barun-bash/figma-to-react/internal/figma"
	"github.com/barun-bash/figma-to-react/internal/naming"
)

// Role is how a node participates in the markup tree.
type Role int

const (
	RoleContainer Role = iota // wraps its children
	RoleTextLeaf              // carries literal text
	RoleShapeLeaf             // self-closing, no children
)

func (r Role) String() string {
	switch r {
	case RoleContainer:
		return "container"
	case RoleTextLeaf:
		return "text"
	case RoleShapeLeaf:
		return "shape"
	}
	return "unknown"
}

// Classification is the output tag and role chosen for a node.
type Classification struct {
	Tag  string
	Role Role
}

// Classify picks the tag and role for n. Container kinds whose sanitized
// name mentions "button" become buttons.
func Classify(n *figma.Node, s *naming.Sanitizer) Classification {
	switch n.Kind {
	case figma.KindText:
		return Classification{Tag: headingTag(n), Role: RoleTextLeaf}
	case figma.KindVector, figma.KindBooleanOperation:
		return Classification{Tag: "svg", Role: RoleShapeLeaf}
	case figma.KindRectangle, figma.KindEllipse:
		return Classification{Tag: "div", Role: RoleShapeLeaf}
	case figma.KindLine:
		return Classification{Tag: "hr", Role: RoleShapeLeaf}
	case figma.KindImage:
		return Classification{Tag: "img", Role: RoleShapeLeaf}
	}

	tag := "div"
	if strings.Contains(s.Sanitize(n.Name), "button") {
		tag = "button"
	}
	role := RoleShapeLeaf
	if len(n.Children) > 0 || n.Kind.IsContainer() {
		role = RoleContainer
	}
	return Classification{Tag: tag, Role: role}
}

// headingTag maps font size and weight onto h1/h2/h3/p.
func headingTag(n *figma.Node) string {
	if n.Text == nil {
		return "p"
	}
	size, weight := n.Text.Style.FontSize, n.Text.Style.FontWeight
	bold := weight >= 600
	switch {
	case size >= 24 || (size >= 20 && bold):
		return "h1"
	case size >= 20 || (size >= 16 && bold):
		return "h2"
	case size >= 16 || (size >= 14 && bold):
		return "h3"
	}
	return "p"
}

// classPrefix is prepended to a container's name before sanitizing.
func classPrefix(k figma.Kind) string {
	switch k {
	case figma.KindFrame:
		return "frame-"
	case figma.KindGroup:
		return "group-"
	case figma.KindInstance:
		return "component-"
	}
	return ""
}
