// Package figma models the Figma document tree and talks to the Figma REST
// API. Raw API JSON is validated once, in DecodeNode, into a Node whose
// kind-specific fields are only set when legal for that kind; everything
// downstream reads Nodes without re-checking.
package figma

// Kind is the closed set of node kinds the generator understands.
type Kind int

const (
	KindText Kind = iota
	KindRectangle
	KindEllipse
	KindVector
	KindFrame
	KindGroup
	KindInstance
	KindComponent
	KindComponentSet
	KindLine
	KindImage
	KindBooleanOperation
)

// String returns the Figma API spelling of the kind.
func (k Kind) String() string {
	names := [...]string{
		"TEXT", "RECTANGLE", "ELLIPSE", "VECTOR", "FRAME", "GROUP",
		"INSTANCE", "COMPONENT", "COMPONENT_SET", "LINE", "IMAGE", "BOOLEAN_OPERATION",
	}
	if int(k) >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "UNKNOWN"
}

// IsContainer reports whether nodes of this kind always render as containers.
func (k Kind) IsContainer() bool {
	switch k {
	case KindFrame, KindGroup, KindInstance, KindComponent, KindComponentSet:
		return true
	}
	return false
}

// CanHaveChildren reports whether the API may attach children to this kind.
func (k Kind) CanHaveChildren() bool {
	return k.IsContainer() || k == KindBooleanOperation
}

// Node is one validated element of a design tree.
type Node struct {
	ID          string
	Name        string
	Kind        Kind
	Children    []*Node
	Visible     bool
	Description string

	Box *Rect // absolute bounding box, nil when the API omitted it

	Fills        []Paint
	Strokes      []Paint
	StrokeWeight float64
	StrokeAlign  StrokeAlign
	DashPattern  []float64
	CornerRadius *Radius
	Opacity      *float64 // 0..1; nil when the API omitted it, meaning opaque
	Effects      []Effect

	Layout      *AutoLayout  // only on container kinds
	Constraints *Constraints // nil whenever Layout is set
	Text        *TextContent // only on KindText

	Reactions []Reaction
}

// Rect is an axis-aligned box in absolute canvas coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// PaintKind identifies a fill or stroke type.
type PaintKind int

const (
	PaintSolid PaintKind = iota
	PaintLinearGradient
	PaintRadialGradient
	PaintImage
)

// Paint is a fill or stroke.
type Paint struct {
	Kind    PaintKind
	Color   Color
	Opacity float64 // 1 when unset
	Visible bool

	Stops   []GradientStop // gradients only
	Handles []Vector       // gradient handle positions, normalized to the node box

	ImageRef  string // image fills only
	ScaleMode string // FILL, FIT, TILE, STRETCH
}

// GradientStop is one color stop; Position is 0..1.
type GradientStop struct {
	Color    Color
	Position float64
}

// Color represents an RGBA color with Figma's 0-1 float range.
type Color struct {
	R, G, B, A float64
}

// Vector is a 2D point or offset.
type Vector struct {
	X, Y float64
}

// StrokeAlign says where a stroke sits relative to the node edge.
type StrokeAlign int

const (
	StrokeCenter StrokeAlign = iota
	StrokeInside
	StrokeOutside
)

// Radius is either a uniform corner radius or four per-corner values.
type Radius struct {
	Uniform float64
	Corners *[4]float64 // top-left, top-right, bottom-right, bottom-left
}

// EffectKind identifies a visual effect.
type EffectKind int

const (
	EffectDropShadow EffectKind = iota
	EffectInnerShadow
	EffectLayerBlur
	EffectBackgroundBlur
)

// Effect represents a shadow or blur.
type Effect struct {
	Kind    EffectKind
	Visible bool
	Offset  Vector
	Radius  float64
	Spread  float64
	Color   Color
}

// Direction is the auto-layout main axis.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

// AutoLayout is a flex-box-like child arrangement.
type AutoLayout struct {
	Direction    Direction
	PrimaryAlign string // MIN, CENTER, MAX, SPACE_BETWEEN
	CounterAlign string // MIN, CENTER, MAX
	ItemSpacing  float64
	Padding      Padding
	Grow         bool
	Align        string // STRETCH, INHERIT, ...
}

// Padding holds per-side padding in px.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// Constraints anchor a node inside its parent when no auto-layout applies.
// Values use the API spelling: LEFT, RIGHT, CENTER, LEFT_RIGHT, SCALE for
// horizontal; TOP, BOTTOM, CENTER, TOP_BOTTOM, SCALE for vertical.
type Constraints struct {
	Horizontal string
	Vertical   string
}

// TextContent is the text payload of a KindText node.
type TextContent struct {
	Characters string
	Style      TextStyle
}

// TextStyle holds typography properties for text nodes.
type TextStyle struct {
	FontFamily      string
	FontSize        float64
	FontWeight      float64
	LetterSpacing   float64
	LineHeight      float64 // px; 0 when the API reports none
	HorizontalAlign string  // LEFT, CENTER, RIGHT, JUSTIFIED
}

// Reaction is a prototype interaction pointing at another node.
type Reaction struct {
	Trigger       string // ON_HOVER, ON_CLICK, ...
	DestinationID string
}

// ComponentRef is a component listed in a file, before its tree is fetched.
type ComponentRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"` // rendered preview, empty if unavailable
}

// Walk visits n and every descendant depth-first in document order.
func Walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		Walk(c, fn)
	}
}
