package codegen

import (
	"fmt"
	"strings"

	"github.com/barun-bash/figma-to-react/internal/style"
)

// Breakpoint is one responsive override tier. Empty values leave the
// property unchanged; a tier with nothing to change emits no block.
type Breakpoint struct {
	MaxWidth int
	FontSize string // applied to classes of text nodes
	Padding  string // applied to container classes
}

// DefaultBreakpoints returns the mobile, tablet and desktop tiers.
func DefaultBreakpoints() []Breakpoint {
	return []Breakpoint{
		{MaxWidth: 480, FontSize: "14px", Padding: "10px"},
		{MaxWidth: 768, FontSize: "16px", Padding: "15px"},
		{MaxWidth: 1024},
		{MaxWidth: 1200},
	}
}

// StyleRenderer emits the stylesheet for a filled Registry.
type StyleRenderer struct {
	extractor   *style.Extractor
	defaults    style.Defaults
	breakpoints []Breakpoint
}

// NewStyleRenderer returns a renderer omitting values found in defaults.
func NewStyleRenderer(e *style.Extractor, defaults style.Defaults, breakpoints []Breakpoint) *StyleRenderer {
	return &StyleRenderer{extractor: e, defaults: defaults, breakpoints: breakpoints}
}

// Render writes one rule per distinct class whose style differs from the
// implicit defaults, a :hover rule where a reaction points at a node with
// a different style, then the responsive blocks.
func (s *StyleRenderer) Render(reg *Registry) string {
	var rules []string
	classes := reg.Distinct()

	for _, rc := range classes {
		props := s.extractor.ExtractIn(rc.Node, rc.Parent)
		if base := props.WithoutDefaults(s.defaults); base.Len() > 0 {
			rules = append(rules, rule("."+rc.ClassName, base, ""))
		}
		if hover := s.hover(rc, props, reg); hover != nil {
			rules = append(rules, rule("."+rc.ClassName+":hover", hover, ""))
		}
	}

	for _, bp := range s.breakpoints {
		if block := s.media(bp, classes); block != "" {
			rules = append(rules, block)
		}
	}

	if len(rules) == 0 {
		return ""
	}
	return strings.Join(rules, "\n")
}

// hover diffs the first reaction destination found in the registry index
// against the source style. Placement is not part of the diff.
func (s *StyleRenderer) hover(rc RenderedClass, props *style.Properties, reg *Registry) *style.Properties {
	for _, r := range rc.Node.Reactions {
		dest, ok := reg.Lookup(r.DestinationID)
		if !ok || dest == rc.Node {
			continue
		}
		src := props.Clone()
		src.Delete(style.PlacementKeys...)
		dst := s.extractor.ExtractIn(dest, rc.Parent)
		dst.Delete(style.PlacementKeys...)
		if diff := dst.Diff(src); diff.Len() > 0 {
			return diff
		}
		return nil
	}
	return nil
}

func (s *StyleRenderer) media(bp Breakpoint, classes []RenderedClass) string {
	var b strings.Builder
	for _, rc := range classes {
		p := style.NewProperties()
		switch {
		case rc.Role == RoleTextLeaf && bp.FontSize != "":
			p.Set("font-size", bp.FontSize)
		case rc.Role == RoleContainer && bp.Padding != "":
			p.Set("padding", bp.Padding)
		default:
			continue
		}
		b.WriteString(rule("."+rc.ClassName, p, "  "))
	}
	if b.Len() == 0 {
		return ""
	}
	return fmt.Sprintf("@media (max-width: %dpx) {\n%s}\n", bp.MaxWidth, b.String())
}

func rule(selector string, p *style.Properties, indent string) string {
	return fmt.Sprintf("%s%s {\n%s%s}\n", indent, selector, p.CSS(indent+"  "), indent)
}
