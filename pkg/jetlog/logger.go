package jetlog

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

var outLogger *logger

// Logger returns the process wide printer for user facing output. Diagnostic
// output goes through logrus instead.
func Logger(ctx context.Context) *logger {
	if outLogger == nil {
		outLogger = newLogger(os.Stdout, isatty.IsTerminal(os.Stdout.Fd()))
	}
	return outLogger
}

// SetOutput redirects user facing output, for example to a buffer in tests.
// Spinners are disabled since w is not a terminal.
func SetOutput(w io.Writer) {
	outLogger = newLogger(w, false)
}

func newLogger(w io.Writer, interactive bool) *logger {
	s := spinner.New(spinner.CharSets[26], 250*time.Millisecond, spinner.WithWriter(w))
	return &logger{writer: w, spinner: s, interactive: interactive}
}
