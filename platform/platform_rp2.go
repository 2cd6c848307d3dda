//go:build rp2040 || rp2350

package platform

import (
	"machine"
	"strconv"

	"github.com/go-logr/logr"
	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/netlink/probe"
	"tinygo.org/x/drivers/onewire"

	"thermometer-go/errcode"
	"thermometer-go/services/config"
	"thermometer-go/services/heartbeat"
	"thermometer-go/services/link"
	"thermometer-go/services/report"
	"thermometer-go/services/sensors"
)

// ConsoleBaud is the serial log mirror speed.
const ConsoleBaud = 115200

// Console configures UART0 on its default pins for the log mirror.
func Console() (*uartx.UART, error) {
	u := uartx.UART0
	if err := u.Configure(uartx.UARTConfig{
		BaudRate: ConsoleBaud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	}); err != nil {
		return nil, err
	}
	return u, nil
}

// Open brings up the board: 1-Wire bus, WiFi association, LED and reporter.
// The WiFi part comes from netlink/probe, so the build needs a probe tag
// (challenger_rp2040, or ninafw for NINA co-processors).
func Open(cfg config.Config, log logr.Logger) (*System, error) {
	s := &System{
		Restart: RestartFunc(func() error {
			Reset()
			return nil
		}),
	}

	ow := onewire.New(machine.Pin(cfg.OneWirePin))
	s.Bus = sensors.NewDS18B20(ow, cfg.Resolution)

	nl, _ := probe.Probe()
	mon := link.NewMonitor(nl, log.WithName("link"))
	if err := mon.Connect(connectParams(cfg)); err != nil {
		return s, err
	}
	s.Link = mon

	if cfg.LEDEnabled() {
		n, err := strconv.Atoi(cfg.LED)
		if err != nil {
			return s, &errcode.E{C: errcode.InvalidConfig, Op: "led", Msg: cfg.LED, Err: err}
		}
		p := machine.Pin(n)
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		s.LED = heartbeat.New(mcuPin{p}, blinkerConfig(cfg))
	}

	rep := report.NewHTTP(report.Options{
		URL:     cfg.Endpoint(),
		Timeout: cfg.HTTPTimeout,
		Log:     log.WithName("report"),
	})
	s.Reporter = rep
	s.onClose(rep)
	return s, nil
}

// Reset performs a hard reset of the chip. It does not return.
func Reset() {
	machine.CPUReset()
}

type mcuPin struct{ p machine.Pin }

func (m mcuPin) Set(high bool) { m.p.Set(high) }
