package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// SetupSignalHandler returns a context that is cancelled on the first
// Ctrl+C or SIGTERM. A second signal exits the process.
func SetupSignalHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
			signal.Stop(sigCh)
			return
		}
		cancel()
		<-sigCh
		os.Exit(1)
	}()

	return ctx, cancel
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Cancelled prints a cancellation notice.
func Cancelled() {
	pterm.Warning.Println("Cancelled.")
}
