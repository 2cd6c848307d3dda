//go:build !tinygo && unix

package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

// reexec replaces the running process with a fresh copy of itself.
func reexec() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	return unix.Exec(exe, os.Args, os.Environ())
}
