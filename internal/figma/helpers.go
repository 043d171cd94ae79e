package figma

import (
	"fmt"
	"math"
	"strconv"
)

// ToHex converts a Figma Color (0-1 float range) to a hex string like "#rrggbb".
// Alpha is ignored.
func (c Color) ToHex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

// CSS renders the color with an extra opacity multiplier: hex when the
// effective alpha is 1, rgba() otherwise.
func (c Color) CSS(opacity float64) string {
	a := c.A * opacity
	if a >= 0.999 {
		return c.ToHex()
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", channel(c.R), channel(c.G), channel(c.B), FormatNumber(a))
}

func channel(v float64) int {
	n := int(math.Round(v * 255))
	return max(0, min(255, n))
}

// FormatNumber prints v with at most two decimals and no trailing zeros.
func FormatNumber(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Px formats v as a CSS pixel length.
func Px(v float64) string {
	if math.Round(v*100) == 0 {
		return "0"
	}
	return FormatNumber(v) + "px"
}

// Depth returns the number of levels in the tree rooted at n.
func Depth(n *Node) int {
	if n == nil {
		return 0
	}
	d := 0
	for _, c := range n.Children {
		d = max(d, Depth(c))
	}
	return d + 1
}

// Index maps every node id in the tree to its node.
func Index(root *Node) map[string]*Node {
	idx := make(map[string]*Node)
	Walk(root, func(n *Node) { idx[n.ID] = n })
	return idx
}
