package style

import (
	"fmt"
	"strings"

	"github.com/barun-bash/figma-to-react/internal/figma"
)

// PlacementKeys are the properties owned by absolute positioning. They never
// appear on a node with auto-layout.
var PlacementKeys = []string{"position", "top", "left", "right", "bottom"}

// Extractor maps nodes to CSS properties. It holds no per-node state and
// is safe for concurrent use once constructed.
type Extractor struct {
	imageURLs map[string]string // image ref → download URL
}

// NewExtractor returns an Extractor resolving image fills through
// imageURLs; nil is allowed.
func NewExtractor(imageURLs map[string]string) *Extractor {
	return &Extractor{imageURLs: imageURLs}
}

// Extract returns the style of n treated as a root node.
func (e *Extractor) Extract(n *figma.Node) *Properties {
	return e.ExtractIn(n, nil)
}

// ExtractIn returns the style of n placed inside parent (nil for a root).
// Rules merge in order base visual, auto-layout, position; later wins.
func (e *Extractor) ExtractIn(n, parent *figma.Node) *Properties {
	out := NewProperties()
	if n == nil {
		return out
	}

	out.Merge(e.base(n))
	if n.Layout != nil {
		out.Merge(autoLayout(n.Layout))
		// Auto-layout governs placement; this is an override, not a merge.
		out.Delete(PlacementKeys...)
		return out
	}

	set, drop := position(n, parent)
	out.Delete(drop...)
	out.Merge(set)
	return out
}

func (e *Extractor) base(n *figma.Node) *Properties {
	p := NewProperties()

	if b := n.Box; b != nil {
		if b.Width > 0 {
			p.Set("width", figma.Px(b.Width))
		}
		if b.Height > 0 {
			p.Set("height", figma.Px(b.Height))
		}
	}

	if fill := firstVisible(n.Fills); fill != nil && n.Kind != figma.KindText {
		e.fill(p, fill)
	}

	// A zero-weight stroke draws nothing.
	if stroke := firstVisible(n.Strokes); stroke != nil && n.StrokeWeight > 0 {
		p.Set("border", fmt.Sprintf("%s solid %s", figma.Px(n.StrokeWeight), solidColor(stroke)))
		if len(n.DashPattern) > 0 {
			p.Set("border-style", "dashed")
		}
		switch n.StrokeAlign {
		case figma.StrokeInside:
			p.Set("box-sizing", "border-box")
		case figma.StrokeOutside:
			p.Set("box-sizing", "content-box")
		}
	}

	if r := n.CornerRadius; r != nil {
		if r.Corners != nil {
			c := r.Corners
			p.Set("border-radius", fmt.Sprintf("%s %s %s %s",
				figma.Px(c[0]), figma.Px(c[1]), figma.Px(c[2]), figma.Px(c[3])))
		} else if r.Uniform > 0 {
			p.Set("border-radius", figma.Px(r.Uniform))
		}
	}
	if n.Kind == figma.KindEllipse {
		p.Set("border-radius", "50%")
	}

	effects(p, n.Effects)

	if o := n.Opacity; o != nil && *o < 1 {
		p.Set("opacity", figma.FormatNumber(max(*o, 0)))
	}

	if n.Kind == figma.KindText && n.Text != nil {
		text(p, n)
	}
	return p
}

func (e *Extractor) fill(p *Properties, fill *figma.Paint) {
	switch fill.Kind {
	case figma.PaintSolid:
		p.Set("background-color", fill.Color.CSS(fill.Opacity))
	case figma.PaintLinearGradient, figma.PaintRadialGradient:
		p.Set("background", Gradient(fill))
	case figma.PaintImage:
		url, ok := e.imageURLs[fill.ImageRef]
		if !ok {
			url = fmt.Sprintf(ImagePlaceholder, fill.ImageRef)
		}
		p.Set("background-image", fmt.Sprintf("url(%q)", url))
		p.Set("background-size", imageSize(fill.ScaleMode))
		p.Set("background-position", "center")
		if fill.ScaleMode == "TILE" {
			p.Set("background-repeat", "repeat")
		} else {
			p.Set("background-repeat", "no-repeat")
		}
	}
}

func effects(p *Properties, list []figma.Effect) {
	var shadows []string
	var blur, backdrop string
	for _, fx := range list {
		if !fx.Visible {
			continue
		}
		switch fx.Kind {
		case figma.EffectDropShadow, figma.EffectInnerShadow:
			s := fmt.Sprintf("%s %s %s", figma.Px(fx.Offset.X), figma.Px(fx.Offset.Y), figma.Px(fx.Radius))
			if fx.Spread != 0 {
				s += " " + figma.Px(fx.Spread)
			}
			s += " " + fx.Color.CSS(1)
			if fx.Kind == figma.EffectInnerShadow {
				s = "inset " + s
			}
			shadows = append(shadows, s)
		case figma.EffectLayerBlur:
			if blur == "" {
				blur = fmt.Sprintf("blur(%s)", figma.Px(fx.Radius))
			}
		case figma.EffectBackgroundBlur:
			if backdrop == "" {
				backdrop = fmt.Sprintf("blur(%s)", figma.Px(fx.Radius))
			}
		}
	}
	if len(shadows) > 0 {
		p.Set("box-shadow", strings.Join(shadows, ", "))
	}
	if blur != "" {
		p.Set("filter", blur)
	}
	if backdrop != "" {
		p.Set("backdrop-filter", backdrop)
	}
}

func text(p *Properties, n *figma.Node) {
	ts := n.Text.Style
	if ts.FontSize > 0 {
		p.Set("font-size", figma.Px(ts.FontSize))
	}
	if ts.FontWeight > 0 {
		p.Set("font-weight", figma.FormatNumber(ts.FontWeight))
	}
	if ts.FontFamily != "" {
		p.Set("font-family", fmt.Sprintf("'%s', sans-serif", strings.ReplaceAll(ts.FontFamily, "'", "")))
	}
	if ts.LetterSpacing != 0 {
		p.Set("letter-spacing", figma.Px(ts.LetterSpacing))
	}
	if ts.LineHeight > 0 {
		p.Set("line-height", figma.Px(ts.LineHeight))
	}
	if ts.HorizontalAlign != "" {
		align := strings.ToLower(ts.HorizontalAlign)
		if align == "justified" {
			align = "justify"
		}
		p.Set("text-align", align)
	}
	if fill := firstVisible(n.Fills); fill != nil {
		p.Set("color", solidColor(fill))
	}
}

// flexAlign maps Figma axis alignment onto flex-box keywords.
func flexAlign(v string) string {
	switch v {
	case "CENTER":
		return "center"
	case "MAX":
		return "flex-end"
	case "SPACE_BETWEEN":
		return "space-between"
	}
	return "flex-start"
}

func autoLayout(l *figma.AutoLayout) *Properties {
	p := NewProperties()
	p.Set("display", "flex")
	if l.Direction == figma.Vertical {
		p.Set("flex-direction", "column")
	} else {
		p.Set("flex-direction", "row")
	}
	p.Set("justify-content", flexAlign(l.PrimaryAlign))
	p.Set("align-items", flexAlign(l.CounterAlign))
	if l.ItemSpacing > 0 {
		p.Set("gap", figma.Px(l.ItemSpacing))
	}
	for _, side := range []struct {
		name string
		v    float64
	}{
		{"padding-top", l.Padding.Top},
		{"padding-right", l.Padding.Right},
		{"padding-bottom", l.Padding.Bottom},
		{"padding-left", l.Padding.Left},
	} {
		if side.v > 0 {
			p.Set(side.name, figma.Px(side.v))
		}
	}
	if l.Grow {
		p.Set("flex-grow", "1")
	}
	if l.Align == "STRETCH" {
		p.Set("align-self", "stretch")
	}
	return p
}

// position computes placement for a node without auto-layout. It returns
// properties to set and base properties the placement replaces.
func position(n, parent *figma.Node) (set *Properties, drop []string) {
	set = NewProperties()
	if parent == nil {
		set.Set("position", "relative")
		return set, nil
	}
	if parent.Layout != nil {
		// Flex items are placed by their parent.
		return set, nil
	}

	set.Set("position", "absolute")

	var x, y float64
	if n.Box != nil {
		x, y = n.Box.X, n.Box.Y
		if parent.Box != nil {
			x -= parent.Box.X
			y -= parent.Box.Y
		}
	}

	h, v := "LEFT", "TOP"
	if c := n.Constraints; c != nil {
		h, v = c.Horizontal, c.Vertical
	}

	var translateX, translateY bool
	switch h {
	case "LEFT_RIGHT":
		set.Set("left", "0")
		set.Set("right", "0")
		drop = append(drop, "width")
	case "CENTER":
		set.Set("left", "50%")
		translateX = true
	case "RIGHT":
		set.Set("right", "0")
	default: // LEFT, SCALE
		if n.Box != nil {
			set.Set("left", figma.Px(x))
		}
	}

	switch v {
	case "TOP_BOTTOM":
		set.Set("top", "0")
		set.Set("bottom", "0")
		drop = append(drop, "height")
	case "CENTER":
		set.Set("top", "50%")
		translateY = true
	case "BOTTOM":
		set.Set("bottom", "0")
	default: // TOP, SCALE
		if n.Box != nil {
			set.Set("top", figma.Px(y))
		}
	}

	switch {
	case translateX && translateY:
		set.Set("transform", "translate(-50%, -50%)")
	case translateX:
		set.Set("transform", "translateX(-50%)")
	case translateY:
		set.Set("transform", "translateY(-50%)")
	}
	return set, drop
}
