package figma

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/barun-bash/figma-to-react/internal/errors"
)

// DefaultMaxDepth bounds how deep a node tree may nest before decoding fails.
const DefaultMaxDepth = 64

// ── Figma API Response Types ──

type apiNodeEntry struct {
	Document *apiNode `json:"document"`
}

type apiNode struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Children    []*apiNode `json:"children"`
	Characters  *string    `json:"characters"`
	Visible     *bool      `json:"visible"` // nil = visible
	Description string     `json:"description"`

	// Layout
	LayoutMode            string  `json:"layoutMode"`
	PrimaryAxisAlignItems string  `json:"primaryAxisAlignItems"`
	CounterAxisAlignItems string  `json:"counterAxisAlignItems"`
	ItemSpacing           float64 `json:"itemSpacing"`
	PaddingLeft           float64 `json:"paddingLeft"`
	PaddingRight          float64 `json:"paddingRight"`
	PaddingTop            float64 `json:"paddingTop"`
	PaddingBottom         float64 `json:"paddingBottom"`
	LayoutGrow            float64 `json:"layoutGrow"`
	LayoutAlign           string  `json:"layoutAlign"`

	Constraints *apiConstraints `json:"constraints"`

	// Visual
	Fills                []apiPaint  `json:"fills"`
	Strokes              []apiPaint  `json:"strokes"`
	StrokeWeight         float64     `json:"strokeWeight"`
	StrokeAlign          string      `json:"strokeAlign"`
	StrokeDashes         []float64   `json:"strokeDashes"`
	Effects              []apiEffect `json:"effects"`
	CornerRadius         float64     `json:"cornerRadius"`
	RectangleCornerRadii []float64   `json:"rectangleCornerRadii"`
	Opacity              *float64    `json:"opacity"`

	// Text
	Style *apiTextStyle `json:"style"`

	// Size
	AbsoluteBoundingBox *apiRect `json:"absoluteBoundingBox"`

	// Prototype
	Reactions []apiReaction `json:"reactions"`
}

type apiConstraints struct {
	Vertical   string `json:"vertical"`
	Horizontal string `json:"horizontal"`
}

type apiPaint struct {
	Type                    string            `json:"type"`
	Color                   *apiColor         `json:"color"`
	Visible                 *bool             `json:"visible"`
	Opacity                 *float64          `json:"opacity"`
	GradientStops           []apiGradientStop `json:"gradientStops"`
	GradientHandlePositions []apiVector       `json:"gradientHandlePositions"`
	ImageRef                string            `json:"imageRef"`
	ScaleMode               string            `json:"scaleMode"`
}

type apiGradientStop struct {
	Color    apiColor `json:"color"`
	Position float64  `json:"position"`
}

type apiColor struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

type apiEffect struct {
	Type    string     `json:"type"`
	Visible *bool      `json:"visible"`
	Radius  float64    `json:"radius"`
	Spread  float64    `json:"spread"`
	Color   *apiColor  `json:"color"`
	Offset  *apiVector `json:"offset"`
}

type apiVector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type apiTextStyle struct {
	FontFamily          string  `json:"fontFamily"`
	FontSize            float64 `json:"fontSize"`
	FontWeight          float64 `json:"fontWeight"`
	LineHeightPx        float64 `json:"lineHeightPx"`
	LineHeightUnit      string  `json:"lineHeightUnit"`
	LetterSpacing       float64 `json:"letterSpacing"`
	TextAlignHorizontal string  `json:"textAlignHorizontal"`
}

type apiRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type apiAction struct {
	Type          string `json:"type"`
	DestinationID string `json:"destinationId"`
}

type apiReaction struct {
	Trigger *struct {
		Type string `json:"type"`
	} `json:"trigger"`
	Action  *apiAction  `json:"action"`
	Actions []apiAction `json:"actions"`
}

// ── Decoding ──

// DecodeNode parses a single node's API JSON and validates it into a Node.
// maxDepth <= 0 selects DefaultMaxDepth. All failures are structural
// decode failures.
func DecodeNode(data []byte, maxDepth int) (*Node, error) {
	var raw apiNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parsing node JSON"), errors.ErrStructuralDecode)
	}
	return decodeRoot(&raw, maxDepth)
}

// DecodePayload accepts a bare node, a file response ({"document": ...}) or
// a nodes response ({"nodes": {id: {"document": ...}}}) and returns its
// first node. It lets locally saved API responses be rendered directly.
func DecodePayload(data []byte, maxDepth int) (*Node, error) {
	var probe struct {
		Document *apiNode                `json:"document"`
		Nodes    map[string]apiNodeEntry `json:"nodes"`
		Type     string                  `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parsing node JSON"), errors.ErrStructuralDecode)
	}

	switch {
	case probe.Type != "":
		return DecodeNode(data, maxDepth)
	case probe.Document != nil:
		return decodeRoot(probe.Document, maxDepth)
	case len(probe.Nodes) > 0:
		// A nodes response is keyed by id; pick the smallest key so the
		// choice does not depend on map order.
		var first string
		for id := range probe.Nodes {
			if first == "" || id < first {
				first = id
			}
		}
		return decodeRoot(probe.Nodes[first].Document, maxDepth)
	}
	return nil, errors.Decodef("payload contains no node")
}

func decodeRoot(raw *apiNode, maxDepth int) (*Node, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if raw == nil {
		return nil, errors.Decodef("node is missing")
	}
	if !isVisible(raw.Visible) {
		return nil, errors.Decodef("node %s (%q) is hidden", raw.ID, raw.Name)
	}
	n, err := decodeNode(raw, 0, maxDepth)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, errors.Decodef("node %s (%q) has no renderable kind", raw.ID, raw.Name)
	}
	return n, nil
}

// decodeNode returns nil without error for nodes that are dropped: hidden
// nodes and slices.
func decodeNode(raw *apiNode, depth, maxDepth int) (*Node, error) {
	if depth > maxDepth {
		return nil, errors.Decodef("node tree exceeds maximum depth %d at %s", maxDepth, raw.ID)
	}
	if !isVisible(raw.Visible) {
		return nil, nil
	}
	if raw.ID == "" {
		return nil, errors.Decodef("node %q has no id", raw.Name)
	}

	kind, keep, err := kindFor(raw.Type)
	if err != nil {
		return nil, err
	}
	if !keep {
		return nil, nil
	}

	n := &Node{
		ID:           raw.ID,
		Name:         raw.Name,
		Kind:         kind,
		Visible:      true,
		Description:  raw.Description,
		StrokeWeight: raw.StrokeWeight,
		StrokeAlign:  strokeAlign(raw.StrokeAlign),
		DashPattern:  raw.StrokeDashes,
		Fills:        convertPaints(raw.Fills),
		Strokes:      convertPaints(raw.Strokes),
		Effects:      convertEffects(raw.Effects),
		Reactions:    convertReactions(raw.Reactions),
	}
	if raw.Opacity != nil {
		o := *raw.Opacity
		n.Opacity = &o
	}
	if b := raw.AbsoluteBoundingBox; b != nil {
		n.Box = &Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
	}
	n.CornerRadius = convertRadius(raw.CornerRadius, raw.RectangleCornerRadii)

	if kind == KindText {
		if raw.Style == nil {
			return nil, errors.Decodef("text node %s (%q) has no style", raw.ID, raw.Name)
		}
		n.Text = &TextContent{Style: convertTextStyle(raw.Style)}
		if raw.Characters != nil {
			n.Text.Characters = *raw.Characters
		}
	}

	if kind.IsContainer() && (raw.LayoutMode == "HORIZONTAL" || raw.LayoutMode == "VERTICAL") {
		n.Layout = convertLayout(raw)
	}
	if n.Layout == nil && raw.Constraints != nil {
		n.Constraints = &Constraints{
			Horizontal: raw.Constraints.Horizontal,
			Vertical:   raw.Constraints.Vertical,
		}
	}

	if len(raw.Children) > 0 {
		if !kind.CanHaveChildren() {
			return nil, errors.Decodef("%s node %s (%q) cannot have children", kind, raw.ID, raw.Name)
		}
		for _, c := range raw.Children {
			if c == nil {
				return nil, errors.Decodef("node %s (%q) has a null child", raw.ID, raw.Name)
			}
			child, err := decodeNode(c, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			if child != nil {
				n.Children = append(n.Children, child)
			}
		}
	}

	return n, nil
}

// kindFor maps an API type onto a Kind. keep is false for types that are
// silently dropped.
func kindFor(apiType string) (kind Kind, keep bool, err error) {
	switch apiType {
	case "TEXT":
		return KindText, true, nil
	case "RECTANGLE":
		return KindRectangle, true, nil
	case "ELLIPSE":
		return KindEllipse, true, nil
	case "VECTOR", "STAR", "POLYGON", "REGULAR_POLYGON":
		return KindVector, true, nil
	case "FRAME", "SECTION":
		return KindFrame, true, nil
	case "GROUP":
		return KindGroup, true, nil
	case "INSTANCE":
		return KindInstance, true, nil
	case "COMPONENT":
		return KindComponent, true, nil
	case "COMPONENT_SET":
		return KindComponentSet, true, nil
	case "LINE":
		return KindLine, true, nil
	case "IMAGE":
		return KindImage, true, nil
	case "BOOLEAN_OPERATION":
		return KindBooleanOperation, true, nil
	case "SLICE":
		return 0, false, nil
	case "":
		return 0, false, errors.Decodef("node has no type")
	}
	return 0, false, errors.Decodef("unknown node type %q", apiType)
}

func isVisible(v *bool) bool {
	return v == nil || *v
}

func strokeAlign(s string) StrokeAlign {
	switch s {
	case "INSIDE":
		return StrokeInside
	case "OUTSIDE":
		return StrokeOutside
	}
	return StrokeCenter
}

func convertColor(c *apiColor) Color {
	if c == nil {
		return Color{A: 1}
	}
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func convertPaints(in []apiPaint) []Paint {
	var out []Paint
	for _, p := range in {
		var kind PaintKind
		switch p.Type {
		case "SOLID":
			kind = PaintSolid
		case "GRADIENT_LINEAR":
			kind = PaintLinearGradient
		case "GRADIENT_RADIAL", "GRADIENT_ANGULAR", "GRADIENT_DIAMOND":
			kind = PaintRadialGradient
		case "IMAGE":
			kind = PaintImage
		default:
			continue
		}
		paint := Paint{
			Kind:      kind,
			Color:     convertColor(p.Color),
			Opacity:   1,
			Visible:   isVisible(p.Visible),
			ImageRef:  p.ImageRef,
			ScaleMode: p.ScaleMode,
		}
		if p.Opacity != nil {
			paint.Opacity = *p.Opacity
		}
		for _, s := range p.GradientStops {
			c := s.Color
			paint.Stops = append(paint.Stops, GradientStop{Color: convertColor(&c), Position: s.Position})
		}
		for _, h := range p.GradientHandlePositions {
			paint.Handles = append(paint.Handles, Vector{X: h.X, Y: h.Y})
		}
		out = append(out, paint)
	}
	return out
}

func convertEffects(in []apiEffect) []Effect {
	var out []Effect
	for _, e := range in {
		var kind EffectKind
		switch e.Type {
		case "DROP_SHADOW":
			kind = EffectDropShadow
		case "INNER_SHADOW":
			kind = EffectInnerShadow
		case "LAYER_BLUR":
			kind = EffectLayerBlur
		case "BACKGROUND_BLUR":
			kind = EffectBackgroundBlur
		default:
			continue
		}
		eff := Effect{
			Kind:    kind,
			Visible: isVisible(e.Visible),
			Radius:  e.Radius,
			Spread:  e.Spread,
			Color:   convertColor(e.Color),
		}
		if e.Offset != nil {
			eff.Offset = Vector{X: e.Offset.X, Y: e.Offset.Y}
		}
		out = append(out, eff)
	}
	return out
}

func convertRadius(uniform float64, corners []float64) *Radius {
	if len(corners) == 4 {
		if corners[0] == corners[1] && corners[1] == corners[2] && corners[2] == corners[3] {
			uniform = corners[0]
		} else {
			var c [4]float64
			copy(c[:], corners)
			return &Radius{Corners: &c}
		}
	}
	if uniform > 0 {
		return &Radius{Uniform: uniform}
	}
	return nil
}

func convertTextStyle(s *apiTextStyle) TextStyle {
	ts := TextStyle{
		FontFamily:      s.FontFamily,
		FontSize:        s.FontSize,
		FontWeight:      s.FontWeight,
		LetterSpacing:   s.LetterSpacing,
		LineHeight:      s.LineHeightPx,
		HorizontalAlign: s.TextAlignHorizontal,
	}
	if strings.HasPrefix(s.LineHeightUnit, "INTRINSIC") {
		ts.LineHeight = 0
	}
	return ts
}

func convertLayout(raw *apiNode) *AutoLayout {
	l := &AutoLayout{
		Direction:    Horizontal,
		PrimaryAlign: raw.PrimaryAxisAlignItems,
		CounterAlign: raw.CounterAxisAlignItems,
		ItemSpacing:  raw.ItemSpacing,
		Padding: Padding{
			Top:    raw.PaddingTop,
			Right:  raw.PaddingRight,
			Bottom: raw.PaddingBottom,
			Left:   raw.PaddingLeft,
		},
		Grow:  raw.LayoutGrow > 0,
		Align: raw.LayoutAlign,
	}
	if raw.LayoutMode == "VERTICAL" {
		l.Direction = Vertical
	}
	return l
}

func convertReactions(in []apiReaction) []Reaction {
	var out []Reaction
	for _, r := range in {
		trigger := ""
		if r.Trigger != nil {
			trigger = r.Trigger.Type
		}
		actions := r.Actions
		if r.Action != nil {
			actions = append([]apiAction{*r.Action}, actions...)
		}
		for _, a := range actions {
			if a.DestinationID == "" {
				continue
			}
			out = append(out, Reaction{Trigger: trigger, DestinationID: a.DestinationID})
		}
	}
	return out
}
