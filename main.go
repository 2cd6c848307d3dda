//go:build rp2040 || rp2350

package main

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"thermometer-go/platform"
	"thermometer-go/services/config"
	"thermometer-go/services/poller"
	"thermometer-go/x/logx"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	opts := logx.Options{}
	if u, err := platform.Console(); err == nil {
		opts.Out = u
	} else {
		println("uart console:", err.Error())
	}
	log := logx.New(opts)

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		fatal(log, err, "invalid build configuration")
	}

	sys, err := platform.Open(cfg, log)
	if err != nil {
		fatal(log, err, "board bring-up failed")
	}

	svc := poller.New(poller.Config{Interval: cfg.PollInterval}, sys.Deps(log.WithName("poller")))
	svc.Discover()
	err = svc.Run(context.Background())
	fatal(log, err, "poll loop stopped")
}

// fatal logs, gives the console time to drain, then resets the board.
func fatal(log logr.Logger, err error, msg string) {
	log.Error(err, msg)
	time.Sleep(5 * time.Second)
	platform.Reset()
}
