//go:build !tinygo

package platform

import (
	"errors"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"tinygo.org/x/drivers/netlink"

	"thermometer-go/errcode"
	"thermometer-go/services/config"
	"thermometer-go/services/report"
	"thermometer-go/services/sensors"
)

func simConfig() config.Config {
	cfg := config.Default()
	cfg.LED = ""
	cfg.BlinkOn = time.Millisecond
	cfg.BlinkOff = time.Millisecond
	return cfg
}

func TestOpenHost_Sim(t *testing.T) {
	s, err := OpenHost(simConfig(), logr.Discard(), HostOptions{Sim: 3, SkipLink: true})
	require.NoError(t, err)
	defer s.Close()

	sim, ok := s.Bus.(*sensors.Sim)
	require.True(t, ok, "bus is %T", s.Bus)
	require.Len(t, sim.Devices, 3)
	require.IsType(t, &report.Resty{}, s.Reporter)
	require.Nil(t, s.Link)
	require.Nil(t, s.LED)

	d := s.Deps(logr.Discard())
	require.Equal(t, s.Bus, d.Bus)
	require.Nil(t, d.LED)
	require.NotNil(t, d.Restart)
}

func TestOpenHost_SimWithLED(t *testing.T) {
	pin := &gpiotest.Pin{N: "THERMO_TEST_LED", Num: 1234}
	require.NoError(t, gpioreg.Register(pin))
	defer gpioreg.Unregister(pin.N)

	cfg := simConfig()
	cfg.LED = pin.N
	cfg.LEDActiveLow = true
	s, err := OpenHost(cfg, logr.Discard(), HostOptions{Sim: 1, SkipLink: true})
	require.NoError(t, err)
	defer s.Close()

	require.NotNil(t, s.LED)
	require.Equal(t, gpio.High, pin.Read(), "active-low LED starts off")
	s.LED.Blink()
	require.Equal(t, gpio.High, pin.Read())
	require.Equal(t, 1, s.LED.Count())
}

func TestOpenHost_UnknownLED(t *testing.T) {
	cfg := simConfig()
	cfg.LED = "NO_SUCH_GPIO_FOR_TESTS"
	s, err := OpenHost(cfg, logr.Discard(), HostOptions{Sim: 1, SkipLink: true})
	require.Error(t, err)
	require.Equal(t, errcode.InvalidConfig, errcode.Of(err))
	require.NoError(t, s.Close())
}

type closer struct {
	name  string
	order *[]string
	err   error
}

func (c closer) Close() error {
	*c.order = append(*c.order, c.name)
	return c.err
}

func TestSystem_CloseNewestFirst(t *testing.T) {
	var order []string
	boom := errors.New("boom")
	s := &System{}
	s.onClose(closer{"bus", &order, nil})
	s.onClose(closer{"reporter", &order, boom})

	err := s.Close()
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"reporter", "bus"}, order)
	require.NoError(t, s.Close())
}

func TestRestartFunc(t *testing.T) {
	n := 0
	var r RestartFunc = func() error { n++; return nil }
	require.NoError(t, r.Restart())
	require.Equal(t, 1, n)
}

func TestConnectParams(t *testing.T) {
	cfg := config.Default()
	cfg.SSID = "greenhouse"
	cfg.Passphrase = ""
	p := connectParams(cfg)
	require.Equal(t, "greenhouse", p.Ssid)
	require.Equal(t, netlink.AuthType(netlink.AuthTypeOpen), p.AuthType)
	require.Equal(t, cfg.ConnectTimeout, p.ConnectTimeout)

	cfg.Passphrase = "hunter22"
	require.Equal(t, netlink.AuthType(netlink.AuthTypeWPA2), connectParams(cfg).AuthType)
}

func TestBlinkerConfig(t *testing.T) {
	cfg := config.Default()
	bc := blinkerConfig(cfg)
	require.Equal(t, cfg.LEDActiveLow, bc.ActiveLow)
	require.Equal(t, 100*time.Millisecond, bc.On)
	require.Equal(t, time.Second, bc.Interval)
}
