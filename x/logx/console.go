package logx

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// console is a funcr sink that tags each line with the call that made it,
// so an Info whose values mention "error" stays an Info line.
type console struct {
	funcr.Formatter
	write func(line string)
}

func newConsole(write func(line string), verbosity int) logr.Logger {
	return logr.New(&console{
		Formatter: funcr.NewFormatter(funcr.Options{Verbosity: verbosity}),
		write:     write,
	})
}

func (l console) WithName(name string) logr.LogSink {
	l.AddName(name)
	return &l
}

func (l console) WithValues(kvList ...any) logr.LogSink {
	l.AddValues(kvList)
	return &l
}

func (l console) WithCallDepth(depth int) logr.LogSink {
	l.AddCallDepth(depth)
	return &l
}

func (l console) Info(level int, msg string, kvList ...any) {
	prefix, args := l.FormatInfo(level, msg, kvList)
	l.write(consoleLine("Info: ", prefix, args))
}

func (l console) Error(err error, msg string, kvList ...any) {
	prefix, args := l.FormatError(err, msg, kvList)
	l.write(consoleLine("Error: ", prefix, args))
}

func consoleLine(level, prefix, args string) string {
	if prefix == "" {
		return level + args
	}
	return level + prefix + " " + args
}
