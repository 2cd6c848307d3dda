// Package logx builds the logr.Logger every service logs through.
// Host builds log via zerolog; TinyGo builds print to the console and an
// optional serial mirror.
package logx

import "io"

// Options tune the logger. All fields are optional.
type Options struct {
	// Verbose enables V(1) lines (per-step HTTP and bus chatter).
	Verbose bool
	// File, when set on host builds, sends JSON lines to a rotating file.
	File string
	// Out overrides the destination: stderr on host, a mirror (e.g. a UART)
	// next to the console on MCU.
	Out io.Writer
}
