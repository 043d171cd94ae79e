package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barun-bash/figma-to-react/internal/figma"
)

func get(t *testing.T, p *Properties, prop string) string {
	t.Helper()
	v, ok := p.Get(prop)
	require.True(t, ok, "property %s missing; have %v", prop, p.Keys())
	return v
}

func opacity(v float64) *float64 { return &v }

func solid(r, g, b float64) figma.Paint {
	return figma.Paint{Kind: figma.PaintSolid, Color: figma.Color{R: r, G: g, B: b, A: 1}, Opacity: 1, Visible: true}
}

func TestPropertiesOrderAndSerialization(t *testing.T) {
	p := NewProperties()
	p.Set("display", "flex")
	p.Set("background-color", "#ffffff")
	p.Set("display", "block") // keeps position

	assert.Equal(t, []string{"display", "background-color"}, p.Keys())
	assert.Equal(t, "  display: block;\n  background-color: #ffffff;\n", p.CSS("  "))

	jsx, err := p.JSX()
	require.NoError(t, err)
	assert.Equal(t, `{"display":"block","backgroundColor":"#ffffff"}`, jsx)

	c := p.Clone()
	assert.True(t, p.Equal(c))
	c.Set("color", "red")
	assert.False(t, p.Equal(c))
	assert.Equal(t, []string{"color"}, c.Diff(p).Keys())

	p.Delete("display", "missing")
	assert.Equal(t, 1, p.Len())
}

func TestCamelProperty(t *testing.T) {
	assert.Equal(t, "backgroundColor", CamelProperty("background-color"))
	assert.Equal(t, "borderTopLeftRadius", CamelProperty("border-top-left-radius"))
	assert.Equal(t, "WebkitBoxShadow", CamelProperty("-webkit-box-shadow"))
	assert.Equal(t, "gap", CamelProperty("gap"))
}

func TestDefaults(t *testing.T) {
	d := StandardDefaults()
	assert.True(t, d.IsDefault("margin", "0px"))
	assert.True(t, d.IsDefault("color", "#000000"))
	assert.True(t, d.IsDefault("background-color", "TRANSPARENT"))
	assert.True(t, d.IsDefault("font-weight", "400"))
	assert.False(t, d.IsDefault("flex-direction", "row"))
	assert.False(t, d.IsDefault("font-size", "14px"))
	assert.False(t, d.IsDefault("width", "0"))

	p := NewProperties()
	p.Set("display", "block")
	p.Set("width", "10px")
	p.Set("opacity", "1")
	assert.Equal(t, []string{"width"}, p.WithoutDefaults(d).Keys())
}

func TestExtractIdempotent(t *testing.T) {
	n := &figma.Node{
		ID: "1", Kind: figma.KindRectangle, Visible: true, Opacity: opacity(0.8),
		Box:          &figma.Rect{X: 10, Y: 20, Width: 100, Height: 40},
		Fills:        []figma.Paint{solid(1, 0, 0)},
		CornerRadius: &figma.Radius{Uniform: 4},
	}
	e := NewExtractor(nil)
	a := e.Extract(n)
	b := e.Extract(n)
	assert.True(t, a.Equal(b))
	assert.Equal(t, "0.8", get(t, a, "opacity"))
	assert.Equal(t, "4px", get(t, a, "border-radius"))
	assert.Equal(t, "relative", get(t, a, "position"), "roots are positioned relative")
}

func TestExtractAutoLayoutExcludesPlacement(t *testing.T) {
	parent := &figma.Node{ID: "p", Kind: figma.KindFrame, Box: &figma.Rect{Width: 500, Height: 500}}
	layouts := []*figma.AutoLayout{
		{Direction: figma.Horizontal, ItemSpacing: 8},
		{Direction: figma.Vertical, PrimaryAlign: "CENTER", CounterAlign: "MAX", Grow: true, Align: "STRETCH",
			Padding: figma.Padding{Top: 4, Right: 8, Bottom: 4, Left: 8}},
	}
	for _, l := range layouts {
		n := &figma.Node{
			ID: "1", Kind: figma.KindFrame, Layout: l,
			Box: &figma.Rect{X: 30, Y: 40, Width: 200, Height: 100},
		}
		for _, par := range []*figma.Node{nil, parent} {
			p := NewExtractor(nil).ExtractIn(n, par)
			for _, k := range PlacementKeys {
				assert.False(t, p.Has(k), "auto-layout node must not carry %s", k)
			}
			assert.Equal(t, "flex", get(t, p, "display"))
		}
	}

	p := NewExtractor(nil).Extract(&figma.Node{Kind: figma.KindFrame, Layout: layouts[1]})
	assert.Equal(t, "column", get(t, p, "flex-direction"))
	assert.Equal(t, "center", get(t, p, "justify-content"))
	assert.Equal(t, "flex-end", get(t, p, "align-items"))
	assert.Equal(t, "8px", get(t, p, "padding-right"))
	assert.Equal(t, "1", get(t, p, "flex-grow"))
	assert.Equal(t, "stretch", get(t, p, "align-self"))
	assert.False(t, p.Has("gap"))

	p = NewExtractor(nil).Extract(&figma.Node{Kind: figma.KindFrame, Layout: &figma.AutoLayout{PrimaryAlign: "SPACE_BETWEEN", CounterAlign: "BASELINE"}})
	assert.Equal(t, "space-between", get(t, p, "justify-content"))
	assert.Equal(t, "flex-start", get(t, p, "align-items"))
}

func TestExtractConstraints(t *testing.T) {
	parent := &figma.Node{ID: "p", Kind: figma.KindFrame, Box: &figma.Rect{X: 100, Y: 100, Width: 400, Height: 300}}
	box := &figma.Rect{X: 120, Y: 150, Width: 50, Height: 20}

	tests := []struct {
		name    string
		c       *figma.Constraints
		want    map[string]string
		missing []string
	}{
		{
			name: "default pins to parent-relative coordinates",
			want: map[string]string{"position": "absolute", "left": "20px", "top": "50px", "width": "50px"},
		},
		{
			name:    "stretch horizontally",
			c:       &figma.Constraints{Horizontal: "LEFT_RIGHT", Vertical: "TOP"},
			want:    map[string]string{"left": "0", "right": "0", "top": "50px"},
			missing: []string{"width"},
		},
		{
			name: "center horizontally",
			c:    &figma.Constraints{Horizontal: "CENTER", Vertical: "TOP"},
			want: map[string]string{"left": "50%", "transform": "translateX(-50%)"},
		},
		{
			name:    "right and bottom",
			c:       &figma.Constraints{Horizontal: "RIGHT", Vertical: "BOTTOM"},
			want:    map[string]string{"right": "0", "bottom": "0"},
			missing: []string{"left", "top"},
		},
		{
			name:    "stretch vertically and center both",
			c:       &figma.Constraints{Horizontal: "CENTER", Vertical: "TOP_BOTTOM"},
			want:    map[string]string{"top": "0", "bottom": "0", "transform": "translateX(-50%)"},
			missing: []string{"height"},
		},
		{
			name: "center both",
			c:    &figma.Constraints{Horizontal: "CENTER", Vertical: "CENTER"},
			want: map[string]string{"top": "50%", "left": "50%", "transform": "translate(-50%, -50%)"},
		},
		{
			name: "scale acts as pinned start",
			c:    &figma.Constraints{Horizontal: "SCALE", Vertical: "SCALE"},
			want: map[string]string{"left": "20px", "top": "50px"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &figma.Node{ID: "1", Kind: figma.KindRectangle, Box: box, Constraints: tt.c}
			p := NewExtractor(nil).ExtractIn(n, parent)
			for k, v := range tt.want {
				assert.Equal(t, v, get(t, p, k), k)
			}
			for _, k := range tt.missing {
				assert.False(t, p.Has(k), k)
			}
		})
	}
}

func TestExtractFlexItemHasNoPlacement(t *testing.T) {
	parent := &figma.Node{ID: "p", Kind: figma.KindFrame, Layout: &figma.AutoLayout{}}
	n := &figma.Node{ID: "1", Kind: figma.KindRectangle, Box: &figma.Rect{X: 5, Y: 5, Width: 10, Height: 10}}
	p := NewExtractor(nil).ExtractIn(n, parent)
	for _, k := range PlacementKeys {
		assert.False(t, p.Has(k))
	}
	assert.Equal(t, "10px", get(t, p, "width"))
}

func TestExtractFillsAndStrokes(t *testing.T) {
	hidden := solid(0, 1, 0)
	hidden.Visible = false
	translucent := solid(0, 0, 1)
	translucent.Opacity = 0.5

	n := &figma.Node{
		Kind:         figma.KindRectangle,
		Fills:        []figma.Paint{hidden, translucent, solid(1, 0, 0)},
		Strokes:      []figma.Paint{solid(0, 0, 0)},
		StrokeWeight: 2,
		StrokeAlign:  figma.StrokeInside,
		DashPattern:  []float64{4, 4},
		CornerRadius: &figma.Radius{Corners: &[4]float64{1, 2, 3, 4}},
	}
	p := NewExtractor(nil).Extract(n)
	assert.Equal(t, "rgba(0, 0, 255, 0.5)", get(t, p, "background-color"), "first visible fill only")
	assert.Equal(t, "2px solid #000000", get(t, p, "border"))
	assert.Equal(t, "dashed", get(t, p, "border-style"))
	assert.Equal(t, "border-box", get(t, p, "box-sizing"))
	assert.Equal(t, "1px 2px 3px 4px", get(t, p, "border-radius"))

	n.StrokeAlign = figma.StrokeOutside
	n.DashPattern = nil
	p = NewExtractor(nil).Extract(n)
	assert.Equal(t, "content-box", get(t, p, "box-sizing"))
	assert.False(t, p.Has("border-style"))
}

func TestExtractGradientsAndImages(t *testing.T) {
	red := figma.Color{R: 1, A: 1}
	blue := figma.Color{B: 1, A: 1}
	linear := figma.Paint{
		Kind: figma.PaintLinearGradient, Visible: true, Opacity: 1,
		Stops:   []figma.GradientStop{{Color: red, Position: 0}, {Color: blue, Position: 1}},
		Handles: []figma.Vector{{X: 0, Y: 0.5}, {X: 1, Y: 0.5}},
	}
	p := NewExtractor(nil).Extract(&figma.Node{Kind: figma.KindRectangle, Fills: []figma.Paint{linear}})
	assert.Equal(t, "linear-gradient(90deg, #ff0000 0%, #0000ff 100%)", get(t, p, "background"))

	linear.Handles = []figma.Vector{{X: 0.5, Y: 0}, {X: 0.5, Y: 1}}
	assert.Equal(t, "linear-gradient(180deg, #ff0000 0%, #0000ff 100%)", Gradient(&linear))

	radial := linear
	radial.Kind = figma.PaintRadialGradient
	assert.Equal(t, "radial-gradient(circle, #ff0000 0%, #0000ff 100%)", Gradient(&radial))

	img := figma.Paint{Kind: figma.PaintImage, Visible: true, Opacity: 1, ImageRef: "abc", ScaleMode: "FIT"}
	p = NewExtractor(map[string]string{"abc": "https://cdn/abc.png"}).Extract(&figma.Node{Kind: figma.KindRectangle, Fills: []figma.Paint{img}})
	assert.Equal(t, `url("https://cdn/abc.png")`, get(t, p, "background-image"))
	assert.Equal(t, "contain", get(t, p, "background-size"))

	img.ScaleMode = "FILL"
	p = NewExtractor(nil).Extract(&figma.Node{Kind: figma.KindRectangle, Fills: []figma.Paint{img}})
	assert.Equal(t, `url("/images/abc.png")`, get(t, p, "background-image"))
	assert.Equal(t, "cover", get(t, p, "background-size"))
}

func TestExtractEffects(t *testing.T) {
	shadow := figma.Color{A: 0.25}
	n := &figma.Node{
		Kind: figma.KindFrame,
		Effects: []figma.Effect{
			{Kind: figma.EffectDropShadow, Visible: true, Offset: figma.Vector{Y: 2}, Radius: 4, Color: shadow},
			{Kind: figma.EffectInnerShadow, Visible: true, Offset: figma.Vector{X: 1, Y: 1}, Radius: 2, Spread: 1, Color: shadow},
			{Kind: figma.EffectDropShadow, Visible: false, Radius: 10, Color: shadow},
			{Kind: figma.EffectLayerBlur, Visible: true, Radius: 3},
			{Kind: figma.EffectBackgroundBlur, Visible: true, Radius: 6},
		},
	}
	p := NewExtractor(nil).Extract(n)
	assert.Equal(t, "0 2px 4px rgba(0, 0, 0, 0.25), inset 1px 1px 2px 1px rgba(0, 0, 0, 0.25)", get(t, p, "box-shadow"))
	assert.Equal(t, "blur(3px)", get(t, p, "filter"))
	assert.Equal(t, "blur(6px)", get(t, p, "backdrop-filter"))
}

func TestExtractText(t *testing.T) {
	n := &figma.Node{
		Kind:  figma.KindText,
		Fills: []figma.Paint{solid(0.2, 0.2, 0.2)},
		Text: &figma.TextContent{
			Characters: "Hello",
			Style: figma.TextStyle{
				FontFamily: "Noto Sans KR", FontSize: 18, FontWeight: 700,
				LetterSpacing: 0.5, LineHeight: 24, HorizontalAlign: "JUSTIFIED",
			},
		},
	}
	p := NewExtractor(nil).Extract(n)
	assert.Equal(t, "18px", get(t, p, "font-size"))
	assert.Equal(t, "700", get(t, p, "font-weight"))
	assert.Equal(t, "'Noto Sans KR', sans-serif", get(t, p, "font-family"))
	assert.Equal(t, "0.5px", get(t, p, "letter-spacing"))
	assert.Equal(t, "24px", get(t, p, "line-height"))
	assert.Equal(t, "justify", get(t, p, "text-align"))
	assert.Equal(t, "#333333", get(t, p, "color"))
	assert.False(t, p.Has("background-color"), "text fills color the glyphs")
}

func TestExtractEllipse(t *testing.T) {
	p := NewExtractor(nil).Extract(&figma.Node{Kind: figma.KindEllipse, CornerRadius: &figma.Radius{Uniform: 3}})
	assert.Equal(t, "50%", get(t, p, "border-radius"))
}

func TestExtractOpacity(t *testing.T) {
	parent := &figma.Node{ID: "p", Kind: figma.KindFrame, Box: &figma.Rect{Width: 100, Height: 100}}
	tests := []struct {
		name    string
		opacity *float64
		want    string
	}{
		{"unset", nil, ""},
		{"opaque", opacity(1), ""},
		{"translucent", opacity(0.25), "0.25"},
		{"transparent", opacity(0), "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &figma.Node{ID: "1", Kind: figma.KindRectangle, Visible: true, Opacity: tt.opacity}
			p := NewExtractor(nil).ExtractIn(n, parent)
			v, ok := p.Get("opacity")
			assert.Equal(t, tt.want != "", ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestExtractDecodedTransparentNode(t *testing.T) {
	n, err := figma.DecodeNode([]byte(`{"id":"1","name":"Ghost","type":"RECTANGLE","opacity":0}`), 0)
	require.NoError(t, err)
	assert.Equal(t, "0", get(t, NewExtractor(nil).Extract(n), "opacity"))
}

func TestExtractZeroWeightStroke(t *testing.T) {
	n := &figma.Node{
		Kind:        figma.KindRectangle,
		Strokes:     []figma.Paint{solid(0, 0, 0)},
		StrokeAlign: figma.StrokeInside,
		DashPattern: []float64{4, 4},
	}
	p := NewExtractor(nil).Extract(n)
	for _, k := range []string{"border", "border-style", "box-sizing"} {
		assert.False(t, p.Has(k), "zero-weight stroke must not emit %s", k)
	}

	n.StrokeWeight = 1
	assert.Equal(t, "1px solid #000000", get(t, NewExtractor(nil).Extract(n), "border"))
}
