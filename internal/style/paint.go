package style

import (
	"fmt"
	"math"
	"strings"

	"github.com/barun-bash/figma-to-react/internal/figma"
)

// firstVisible returns the first visible paint, or nil.
func firstVisible(paints []figma.Paint) *figma.Paint {
	for i := range paints {
		if paints[i].Visible {
			return &paints[i]
		}
	}
	return nil
}

// solidColor renders the paint's color; gradients and images fall back to
// their first stop so text can still be colored.
func solidColor(p *figma.Paint) string {
	if p.Kind != figma.PaintSolid && len(p.Stops) > 0 {
		return p.Stops[0].Color.CSS(p.Opacity)
	}
	return p.Color.CSS(p.Opacity)
}

// gradientAngle converts gradient handles (normalized, y pointing down)
// into a CSS angle where 0deg points up and 90deg points right.
func gradientAngle(handles []figma.Vector) float64 {
	if len(handles) < 2 {
		return 180
	}
	dx := handles[1].X - handles[0].X
	dy := handles[1].Y - handles[0].Y
	if dx == 0 && dy == 0 {
		return 180
	}
	deg := math.Atan2(dx, -dy) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return math.Round(deg*100) / 100
}

func gradientStops(p *figma.Paint) string {
	parts := make([]string, 0, len(p.Stops))
	for _, s := range p.Stops {
		parts = append(parts, fmt.Sprintf("%s %s%%", s.Color.CSS(p.Opacity), figma.FormatNumber(s.Position*100)))
	}
	return strings.Join(parts, ", ")
}

// Gradient renders a linear or radial gradient paint as a CSS image value.
func Gradient(p *figma.Paint) string {
	if p.Kind == figma.PaintRadialGradient {
		return fmt.Sprintf("radial-gradient(circle, %s)", gradientStops(p))
	}
	return fmt.Sprintf("linear-gradient(%sdeg, %s)", figma.FormatNumber(gradientAngle(p.Handles)), gradientStops(p))
}

// imageSize maps a Figma scale mode onto background-size.
func imageSize(scaleMode string) string {
	switch scaleMode {
	case "FIT":
		return "contain"
	case "STRETCH":
		return "100% 100%"
	case "TILE":
		return "auto"
	}
	return "cover"
}

// ImagePlaceholder is the URL used for image fills whose download URL is
// unknown; %s is the image ref.
const ImagePlaceholder = "/images/%s.png"
