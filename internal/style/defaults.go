package style

import "strings"

// Defaults maps a CSS property to the value a browser applies when the
// property is absent. Stylesheet rules omit such values; inline styles keep
// them.
type Defaults map[string]string

// StandardDefaults returns the implicit-default table used for stylesheet
// emission.
func StandardDefaults() Defaults {
	return Defaults{
		"margin":           "0",
		"padding":          "0",
		"padding-top":      "0",
		"padding-right":    "0",
		"padding-bottom":   "0",
		"padding-left":     "0",
		"display":          "block",
		"position":         "static",
		"border":           "none",
		"background-color": "transparent",
		"opacity":          "1",
		"font-weight":      "400",
		"font-size":        "16px",
		"line-height":      "normal",
		"color":            "#000000",
		"letter-spacing":   "normal",
	}
}

// IsDefault reports whether value equals the implicit default for prop.
// Comparison ignores case and treats "0px" as "0".
func (d Defaults) IsDefault(prop, value string) bool {
	def, ok := d[prop]
	if !ok {
		return false
	}
	return normalize(def) == normalize(value)
}

func normalize(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "0px" {
		return "0"
	}
	return v
}
