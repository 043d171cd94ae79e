// Package cli renders figma-to-react's terminal output with pterm:
// status lines, spinners, component tables, warning lists and the
// interactive component picker.
package cli

import (
	"io"
	"os"

	"github.com/pterm/pterm"
)

// ColorEnabled reports whether styled output is on. It starts true when
// stdout is a terminal and NO_COLOR is unset.
var ColorEnabled = os.Getenv("NO_COLOR") == "" && IsTerminal(os.Stdout)

// Setup routes pterm output to out and applies the color preference.
func Setup(out io.Writer, color bool) {
	pterm.SetDefaultOutput(out)
	ColorEnabled = color
	if color {
		pterm.EnableColor()
	} else {
		pterm.DisableColor()
	}
}

func init() {
	if !ColorEnabled {
		pterm.DisableColor()
	}
}

// Success formats a message with a check prefix.
func Success(msg string) string {
	return pterm.Green("✓ " + msg)
}

// Error formats a message with a cross prefix.
func Error(msg string) string {
	return pterm.Red("✗ " + msg)
}

// Warn formats a message with a warning prefix.
func Warn(msg string) string {
	return pterm.Yellow("⚠ " + msg)
}

// Info formats a message in the info color.
func Info(msg string) string {
	return pterm.Cyan(msg)
}

// Muted formats secondary text.
func Muted(msg string) string {
	return pterm.Gray(msg)
}
