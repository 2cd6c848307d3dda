// Package poller runs the thermometer loop: check the link, convert, blink,
// then read and report every discovered sensor.
package poller

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"thermometer-go/errcode"
	"thermometer-go/services/report"
	"thermometer-go/services/sensors"
	"thermometer-go/types"
)

// -----------------------------------------------------------------------------
// Collaborators
// -----------------------------------------------------------------------------

// Link answers whether the network is still associated.
type Link interface {
	Up() bool
}

// Restarter restarts the whole process. On the MCU it does not return.
type Restarter interface {
	Restart() error
}

// Indicator is the status LED.
type Indicator interface {
	Blink()
}

// Deps are the collaborators a Service drives. Link, LED and Restart may be
// nil; a nil Link is always up.
type Deps struct {
	Bus      sensors.Bus
	Reporter report.Reporter
	Link     Link
	LED      Indicator
	Restart  Restarter
	Log      logr.Logger

	// Wait sleeps between cycles. Defaults to a context-aware timer.
	Wait func(ctx context.Context, d time.Duration) error
}

// Config holds the loop timing.
type Config struct {
	Interval time.Duration
}

// Stats counts what one cycle did.
type Stats struct {
	Devices    int
	Ghosts     int
	ReadErrors int
	Sent       int
	Failed     int
}

// -----------------------------------------------------------------------------
// Service
// -----------------------------------------------------------------------------

type Service struct {
	cfg  Config
	deps Deps
	log  logr.Logger

	count     int
	restarted bool
}

func New(cfg Config, deps Deps) *Service {
	if deps.Wait == nil {
		deps.Wait = wait
	}
	return &Service{cfg: cfg, deps: deps, log: deps.Log}
}

// Count is the number of devices found by the last Discover.
func (s *Service) Count() int { return s.count }

// Discover enumerates the bus once and logs what it finds.
func (s *Service) Discover() int {
	n, err := s.deps.Bus.Enumerate()
	if err != nil {
		s.log.Error(err, "bus search incomplete", "found", n)
	}
	s.count = n
	s.log.Info("found devices", "count", n)

	for i := 0; i < n; i++ {
		addr, err := s.deps.Bus.AddressOf(i)
		if err != nil {
			s.log.Error(err, "found ghost device, could not detect address", "device", i)
			continue
		}
		s.log.Info("found device", "device", i, "address", addr.String())
	}
	return n
}

// Cycle polls every discovered device once. No failure stops it. Ghosts are
// skipped; an unreadable device is posted as sensors.DisconnectedC.
func (s *Service) Cycle(ctx context.Context) Stats {
	st := Stats{Devices: s.count}

	if err := s.deps.Bus.RequestConversion(); err != nil {
		s.log.Error(err, "temperature conversion failed")
	}
	if s.deps.LED != nil {
		s.deps.LED.Blink()
	}

	for i := 0; i < s.count; i++ {
		addr, err := s.deps.Bus.AddressOf(i)
		if err != nil {
			st.Ghosts++
			s.log.Error(err, "ghost device, skipping", "device", i)
			continue
		}
		c, err := s.deps.Bus.TemperatureCelsius(addr)
		if err != nil {
			st.ReadErrors++
			c = sensors.DisconnectedC
			s.log.Error(err, "temperature read failed, posting disconnected value",
				"device", i, "address", addr.String(), "code", errcode.Of(err))
		}
		if s.post(ctx, types.Reading{Index: i, Addr: addr, Celsius: c}) {
			st.Sent++
		} else {
			st.Failed++
		}
	}
	return st
}

func (s *Service) post(ctx context.Context, r types.Reading) bool {
	addr := r.Addr.String()
	f := r.Fahrenheit()
	s.log.Info("temperature", "device", r.Index, "address", addr, "celsius", r.Celsius, "fahrenheit", f)

	body := report.BuildPayload(r.Index, addr, f)
	s.log.V(1).Info("[HTTP] begin...", "payload", body)

	code, err := s.deps.Reporter.Post(ctx, body)
	if err == nil && code <= 0 {
		err = &errcode.E{C: errcode.PostFailed, Op: "post", Msg: "no status"}
	}
	if err != nil {
		s.log.Error(err, "[HTTP] POST... failed", "device", r.Index, "code", code)
		return false
	}
	s.log.Info("posted", "device", r.Index, "code", code)
	return true
}

// Run loops until the context ends or the link drops. A dropped link
// triggers exactly one restart and returns errcode.LinkDown.
func (s *Service) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.restarted {
			return errcode.LinkDown
		}
		if s.deps.Link != nil && !s.deps.Link.Up() {
			s.restart()
			return errcode.LinkDown
		}

		st := s.Cycle(ctx)
		s.log.V(1).Info("cycle done", "devices", st.Devices, "sent", st.Sent, "failed", st.Failed,
			"ghosts", st.Ghosts, "read_errors", st.ReadErrors)

		if err := s.deps.Wait(ctx, s.cfg.Interval); err != nil {
			return err
		}
	}
}

func (s *Service) restart() {
	s.restarted = true
	s.log.Error(errcode.LinkDown, "network association lost, restarting")
	if s.deps.Restart == nil {
		return
	}
	if err := s.deps.Restart.Restart(); err != nil {
		s.log.Error(err, "restart failed")
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
