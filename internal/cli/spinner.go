package cli

import (
	"io"

	"github.com/pterm/pterm"
)

// Spinner shows progress for one step. On a terminal it animates; on any
// other writer it prints one line per state change.
type Spinner struct {
	sp  *pterm.SpinnerPrinter
	out io.Writer
}

// StartSpinner starts a spinner with msg, writing to out.
func StartSpinner(out io.Writer, msg string) *Spinner {
	s := &Spinner{out: out}
	if IsTerminal(out) {
		sp, err := pterm.DefaultSpinner.WithWriter(out).WithRemoveWhenDone(false).Start(msg)
		if err == nil {
			s.sp = sp
			return s
		}
	}
	pterm.Fprintln(out, Muted("… "+msg))
	return s
}

// Update replaces the message of a running spinner.
func (s *Spinner) Update(msg string) {
	if s.sp != nil {
		s.sp.UpdateText(msg)
	}
}

// Success stops the spinner with a success line.
func (s *Spinner) Success(msg string) {
	if s.sp != nil {
		s.sp.Success(msg)
		return
	}
	pterm.Fprintln(s.out, Success(msg))
}

// Warn stops the spinner with a warning line.
func (s *Spinner) Warn(msg string) {
	if s.sp != nil {
		s.sp.Warning(msg)
		return
	}
	pterm.Fprintln(s.out, Warn(msg))
}

// Fail stops the spinner with an error line.
func (s *Spinner) Fail(msg string) {
	if s.sp != nil {
		s.sp.Fail(msg)
		return
	}
	pterm.Fprintln(s.out, Error(msg))
}
