package cli

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/barun-bash/figma-to-react/internal/errors"
	"github.com/barun-bash/figma-to-react/internal/figma"
)

// ComponentTable renders components as a name, kind, id table in the given
// order.
func ComponentTable(refs []figma.ComponentRef) (string, error) {
	data := pterm.TableData{{"#", "Name", "Kind", "ID"}}
	for i, r := range refs {
		data = append(data, []string{fmt.Sprint(i + 1), r.Name, r.Kind, r.ID})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// PrintWarnings writes each diagnostic on its own line. Hints carry their
// suggestion on an indented second line.
func PrintWarnings(out io.Writer, ws *errors.Warnings) {
	if ws == nil {
		return
	}
	for _, w := range ws.All() {
		switch w.Severity {
		case errors.SeverityHint:
			pterm.Fprintln(out, Info("ℹ "+w.Format()))
			if w.Suggestion != "" {
				pterm.Fprintln(out, Muted("    "+w.Suggestion))
			}
		default:
			pterm.Fprintln(out, Warn(w.Format()))
			for _, hint := range errors.GetAllHints(w.Cause) {
				pterm.Fprintln(out, Muted("    "+hint))
			}
		}
	}
}

// PrintError writes err and any hints attached to it.
func PrintError(out io.Writer, err error) {
	pterm.Fprintln(out, Error(err.Error()))
	for _, hint := range errors.GetAllHints(err) {
		pterm.Fprintln(out, Muted("  hint: "+hint))
	}
}

// Summary is the closing line of a generate run.
func Summary(generated, fallbacks int, dir string) string {
	msg := fmt.Sprintf("Generated %d component(s) in %s", generated, dir)
	if fallbacks > 0 {
		msg += fmt.Sprintf(" (%d from templates)", fallbacks)
	}
	return msg
}
