// Package platform assembles the poller's collaborators for one build
// target: TinyGo on RP2040/RP2350 boards, or a Linux host.
package platform

import (
	"errors"
	"io"

	"github.com/go-logr/logr"
	"tinygo.org/x/drivers/netlink"

	"thermometer-go/services/config"
	"thermometer-go/services/heartbeat"
	"thermometer-go/services/poller"
	"thermometer-go/services/report"
	"thermometer-go/services/sensors"
)

// System is every collaborator the poll loop needs on one target.
type System struct {
	Bus      sensors.Bus
	Reporter report.Reporter
	Link     poller.Link
	LED      *heartbeat.Blinker
	Restart  poller.Restarter

	closers []io.Closer
}

// Deps hands the system to poller.New.
func (s *System) Deps(log logr.Logger) poller.Deps {
	d := poller.Deps{
		Bus:      s.Bus,
		Reporter: s.Reporter,
		Link:     s.Link,
		Restart:  s.Restart,
		Log:      log,
	}
	if s.LED != nil {
		d.LED = s.LED
	}
	return d
}

// Close releases the reporter and any bus handles, newest first.
func (s *System) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

func (s *System) onClose(c io.Closer) { s.closers = append(s.closers, c) }

// RestartFunc adapts a function to poller.Restarter.
type RestartFunc func() error

func (f RestartFunc) Restart() error { return f() }

func blinkerConfig(c config.Config) heartbeat.Config {
	return heartbeat.Config{
		ActiveLow: c.LEDActiveLow,
		On:        c.BlinkOn,
		Off:       c.BlinkOff,
		Interval:  c.BlinkInterval,
	}
}

func connectParams(c config.Config) *netlink.ConnectParams {
	p := &netlink.ConnectParams{
		Ssid:           c.SSID,
		Passphrase:     c.Passphrase,
		ConnectTimeout: c.ConnectTimeout,
	}
	if c.Passphrase == "" {
		p.AuthType = netlink.AuthTypeOpen
	}
	return p
}
