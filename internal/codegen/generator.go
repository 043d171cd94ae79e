package codegen

import (
	"fmt"
	"path"
	"strings"

	"github.com/barun-bash/figma-to-react/internal/errors"
	"github.com/barun-bash/figma-to-react/internal/figma"
	"github.com/barun-bash/figma-to-react/internal/naming"
	"github.com/barun-bash/figma-to-react/internal/style"
)

// Artifact is the generated source for one component.
type Artifact struct {
	MarkupSource          string // the .jsx module
	StyleSource           string // the stylesheet it imports
	SuggestedFileBaseName string // PascalCase component name, no extension
	StyleFile             string // stylesheet path relative to the markup file
}

// MarkupFile is the suggested markup file name.
func (a Artifact) MarkupFile() string {
	return a.SuggestedFileBaseName + ".jsx"
}

// FallbackFunc produces a generic artifact for a component that could not
// be rendered from its node tree.
type FallbackFunc func(c figma.ComponentRef) Artifact

// Options configures a Generator.
type Options struct {
	MaxDepth    int
	Collision   CollisionPolicy
	ImageURLs   map[string]string // image fill ref → URL
	Defaults    style.Defaults    // nil selects style.StandardDefaults
	Breakpoints []Breakpoint      // nil selects DefaultBreakpoints
	StylesDir   string            // stylesheet directory relative to the markup, default "styles"
}

// Generator renders components. It is safe for concurrent use: every call
// to Generate builds its own Registry.
type Generator struct {
	sanitizer *naming.Sanitizer
	markup    *MarkupRenderer
	styles    *StyleRenderer
	collision CollisionPolicy
	stylesDir string
	fallback  FallbackFunc
}

// NewGenerator wires the renderers. fallback must not be nil.
func NewGenerator(s *naming.Sanitizer, fallback FallbackFunc, opts Options) *Generator {
	if opts.Defaults == nil {
		opts.Defaults = style.StandardDefaults()
	}
	if opts.Breakpoints == nil {
		opts.Breakpoints = DefaultBreakpoints()
	}
	if opts.StylesDir == "" {
		opts.StylesDir = "styles"
	}
	e := style.NewExtractor(opts.ImageURLs)
	return &Generator{
		sanitizer: s,
		markup:    NewMarkupRenderer(s, e, opts.MaxDepth).WithIndent("    "),
		styles:    NewStyleRenderer(e, opts.Defaults, opts.Breakpoints),
		collision: opts.Collision,
		stylesDir: opts.StylesDir,
		fallback:  fallback,
	}
}

// Generate renders node as component c. When node is nil or cannot be
// rendered it returns the fallback artifact for c unchanged together with
// the cause; no partial output survives.
func (g *Generator) Generate(c figma.ComponentRef, node *figma.Node) (Artifact, error) {
	a, err := g.render(c, node)
	if err != nil {
		return g.fallback(c), err
	}
	return a, nil
}

func (g *Generator) render(c figma.ComponentRef, node *figma.Node) (Artifact, error) {
	if node == nil {
		return Artifact{}, errors.Decodef("component %s (%q) has no node data", c.ID, c.Name)
	}

	reg := NewRegistry(g.collision)
	jsx, err := g.markup.Render(node, reg)
	if err != nil {
		return Artifact{}, err
	}
	if strings.TrimSpace(jsx) == "" || reg.Len() == 0 {
		return Artifact{}, errors.Decodef("component %s (%q) rendered no markup", c.ID, c.Name)
	}

	base := g.sanitizer.ComponentName(c.Name)
	styleFile := "./" + path.Join(g.stylesDir, base+".css")
	return Artifact{
		MarkupSource:          componentModule(base, c.Description, styleFile, jsx),
		StyleSource:           g.styles.Render(reg),
		SuggestedFileBaseName: base,
		StyleFile:             styleFile,
	}, nil
}

// componentModule wraps rendered JSX in a React function component.
func componentModule(name, description, styleFile, jsx string) string {
	if description == "" {
		description = name + " component"
	}
	description = strings.ReplaceAll(description, "*/", "* /")

	var b strings.Builder
	b.WriteString("import React from 'react';\n")
	fmt.Fprintf(&b, "import '%s';\n\n", styleFile)
	b.WriteString("/**\n")
	for _, line := range strings.Split(strings.TrimSpace(description), "\n") {
		fmt.Fprintf(&b, " * %s\n", strings.TrimRight(line, " \t\r"))
	}
	b.WriteString(" */\n")
	fmt.Fprintf(&b, "const %s = () => {\n", name)
	b.WriteString("  return (\n")
	b.WriteString(jsx)
	b.WriteString("  );\n")
	b.WriteString("};\n\n")
	fmt.Fprintf(&b, "export default %s;\n", name)
	return b.String()
}
