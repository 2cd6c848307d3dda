//go:build !tinygo

package link

import (
	"errors"
	"net/netip"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"tinygo.org/x/drivers/netlink"
)

type scripted struct {
	states []State
	n      int
}

func (s *scripted) lookup(string) (State, error) {
	if len(s.states) == 0 {
		return State{}, errors.New("no such interface")
	}
	st := s.states[min(s.n, len(s.states)-1)]
	s.n++
	return st, nil
}

func testIface(s *scripted) *Interface {
	i := NewInterface("wlan0")
	i.lookup = s.lookup
	i.sleep = func(time.Duration) {}
	return i
}

var (
	down = State{Up: true}
	up   = State{Up: true, IP: netip.MustParseAddr("192.168.1.40")}
)

func TestInterface_NetConnectWaitsForAddress(t *testing.T) {
	s := &scripted{states: []State{down, down, down, up}}
	i := testIface(s)
	if err := i.NetConnect(&netlink.ConnectParams{Retries: 1, ConnectTimeout: time.Minute}); err != nil {
		t.Fatalf("NetConnect() = %v", err)
	}
	if s.n != 4 {
		t.Fatalf("lookups = %d, want 4", s.n)
	}
}

func TestInterface_NetConnectTimesOut(t *testing.T) {
	i := testIface(&scripted{states: []State{down}})
	err := i.NetConnect(&netlink.ConnectParams{Retries: 2, ConnectTimeout: 2 * time.Second})
	if !errors.Is(err, netlink.ErrConnectTimeout) {
		t.Fatalf("NetConnect() = %v, want ErrConnectTimeout", err)
	}
}

func TestInterface_MissingInterface(t *testing.T) {
	i := testIface(&scripted{})
	if i.LinkUp() {
		t.Fatal("LinkUp() = true for a missing interface")
	}
	if _, err := i.GetHardwareAddr(); err == nil {
		t.Fatal("GetHardwareAddr() = nil error for a missing interface")
	}
}

func TestInterface_MonitorSeesDrop(t *testing.T) {
	// NetConnect, GetHardwareAddr and Addr each sample once during Connect.
	s := &scripted{states: []State{up, up, up, up, down}}
	m := NewMonitor(testIface(s), logr.Discard())
	if err := m.Connect(&netlink.ConnectParams{Retries: 1}); err != nil {
		t.Fatalf("Connect() = %v", err)
	}
	if !m.Up() {
		t.Fatal("Up() = false while associated")
	}
	if m.Up() {
		t.Fatal("Up() = true after the address went away")
	}
}
