package jetlog

import (
	"fmt"
	"io"
	"log"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/pkg/errors"
)

type logger struct {
	writer      io.Writer
	spinner     *spinner.Spinner
	interactive bool
}

func (l *logger) Write(p []byte) (n int, err error) {
	n, err = l.writer.Write(p)
	return n, errors.WithStack(err)
}

func (l *logger) HeaderPrintf(msg string, a ...any) {
	l.stopSpinner()
	msg = "# " + msg + "\n"
	print(l.writer, color.New(color.FgHiCyan, color.Bold).Sprintf(msg, a...))
}

func (l *logger) IndentedPrintf(msg string, a ...any) {
	msg = "\t" + msg
	print(l.writer, fmt.Sprintf(msg, a...))
}

func (l *logger) IndentedPrintln(msg string, a ...any) {
	msg = "\t" + msg + "\n"
	print(l.writer, fmt.Sprintf(msg, a...))
}

func (l *logger) WarningPrintf(msg string, a ...any) {
	l.stopSpinner()
	msg = "WARNING: " + msg + "\n"
	print(l.writer, color.New(color.FgHiYellow, color.Bold).Sprintf(msg, a...))
}

// WithSpinnerFuncPrint prints out a message and starts a spinner. closure() will then be
// executed, and the spinner stopped after it's done. Without a terminal the
// message is printed once closure() succeeds.
func (l *logger) WithSpinnerFuncPrint(closure func() error, msg string) error {
	if !l.interactive {
		if err := closure(); err != nil {
			return err
		}
		print(l.writer, "✔ "+msg+"\n")
		return nil
	}

	l.stopSpinner()
	l.spinner.Prefix = msg
	l.spinner.FinalMSG = "✔ " + msg + "\n"
	l.spinner.Start()

	err := closure()
	if err != nil {
		l.spinner.FinalMSG = "✘ " + msg + "\n"
	}
	l.spinner.Stop()
	return err
}

func (l *logger) Println(a ...any) {
	println(l.writer, a...)
}

func (l *logger) Print(msg string) {
	print(l.writer, msg)
}

func (l *logger) Printf(msg string, a ...any) {
	printf(l.writer, msg, a...)
}

func (l *logger) stopSpinner() {
	if l.spinner.Active() {
		l.spinner.Stop()
	}
}

func println(w io.Writer, lines ...any) {
	// mimic the functionality of fmt.Println()
	for i, line := range lines {
		if i > 0 {
			print(w, " ")
		}
		print(w, fmt.Sprintf("%v", line))
	}
	print(w, "\n")
}

func print(w io.Writer, msg string) {
	_, err := w.Write([]byte(msg))
	if err != nil {
		log.Println(err)
	}
}

func printf(w io.Writer, msg string, a ...any) {
	print(w, fmt.Sprintf(msg, a...))
}
