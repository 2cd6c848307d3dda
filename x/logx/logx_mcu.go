//go:build tinygo

package logx

import (
	"io"

	"github.com/go-logr/logr"
)

// New returns a logger printing "Info:" and "Error:" lines to the console,
// mirrored to opts.Out when set.
func New(opts Options) logr.Logger {
	verbosity := 0
	if opts.Verbose {
		verbosity = 1
	}
	mirror := opts.Out
	return newConsole(func(line string) {
		println(line)
		if mirror != nil {
			writeLine(mirror, line)
		}
	}, verbosity)
}

func writeLine(w io.Writer, line string) {
	_, _ = w.Write([]byte(line))
	_, _ = w.Write([]byte("\r\n"))
}
