//go:build !tinygo && !unix

package platform

import "thermometer-go/errcode"

// reexec is unsupported here; the service manager restarts on exit.
func reexec() error {
	return &errcode.E{C: errcode.Error, Op: "restart", Msg: "exec not supported"}
}
