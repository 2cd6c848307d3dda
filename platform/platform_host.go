//go:build !tinygo

package platform

import (
	"github.com/go-logr/logr"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/onewire/onewirereg"
	"periph.io/x/host/v3"

	"thermometer-go/errcode"
	"thermometer-go/services/config"
	"thermometer-go/services/heartbeat"
	"thermometer-go/services/link"
	"thermometer-go/services/report"
	"thermometer-go/services/sensors"
)

// HostOptions select host-only behaviour.
type HostOptions struct {
	// Sim, when positive, replaces the 1-Wire bus with that many simulated
	// sensors and skips hardware initialisation.
	Sim int
	// SkipLink treats the network as always associated.
	SkipLink bool
}

// simDrift makes simulated temperatures creep between cycles.
const simDrift = 0.0625

// OpenHost wires the Linux host: periph.io 1-Wire and GPIO, the named
// network interface and a resty reporter. On error the partially opened
// system is returned so the caller can Close it.
func OpenHost(cfg config.Config, log logr.Logger, opts HostOptions) (*System, error) {
	s := &System{Restart: RestartFunc(reexec)}

	if opts.Sim == 0 || cfg.LEDEnabled() {
		if _, err := host.Init(); err != nil {
			return s, errcode.Wrap(errcode.NoBus, "periph init", err)
		}
	}

	if opts.Sim > 0 {
		sim := sensors.NewSim(opts.Sim)
		sim.Drift = simDrift
		s.Bus = sim
	} else {
		bus, err := onewirereg.Open(cfg.Bus)
		if err != nil {
			return s, &errcode.E{C: errcode.NoBus, Op: "open", Msg: cfg.Bus, Err: err}
		}
		s.onClose(bus)
		s.Bus = sensors.NewPeriph(bus, cfg.Resolution)
		log.Info("opened 1-wire bus", "bus", bus.String())
	}

	if cfg.LEDEnabled() {
		p := gpioreg.ByName(cfg.LED)
		if p == nil {
			return s, &errcode.E{C: errcode.InvalidConfig, Op: "led", Msg: "unknown gpio " + cfg.LED}
		}
		s.LED = heartbeat.New(hostPin{p: p, log: log}, blinkerConfig(cfg))
	}

	if !opts.SkipLink && cfg.Interface != "" {
		mon := link.NewMonitor(link.NewInterface(cfg.Interface), log.WithName("link"))
		if err := mon.Connect(connectParams(cfg)); err != nil {
			return s, err
		}
		s.Link = mon
	}

	rep := report.NewResty(report.Options{
		URL:     cfg.Endpoint(),
		Timeout: cfg.HTTPTimeout,
		Log:     log.WithName("report"),
	})
	s.Reporter = rep
	s.onClose(rep)
	return s, nil
}

type hostPin struct {
	p   gpio.PinOut
	log logr.Logger
}

func (h hostPin) Set(high bool) {
	if err := h.p.Out(gpio.Level(high)); err != nil {
		h.log.V(1).Info("led write failed", "pin", h.p.Name(), "error", err.Error())
	}
}
