//go:build !tinygo

package link

import (
	"net"
	"net/netip"
	"sync"
	"time"

	"tinygo.org/x/drivers/netlink"
)

// State is a snapshot of a host network interface.
type State struct {
	Up bool
	IP netip.Addr // first global unicast address, zero if none
	HW net.HardwareAddr
}

// Associated reports an up interface holding a routable address.
func (s State) Associated() bool { return s.Up && s.IP.IsValid() }

// Interface adapts a host network interface (wlan0, eth0) to
// netlink.Netlinker. The OS owns association; NetConnect only waits for it.
type Interface struct {
	Name string
	// Retry is the polling period while waiting in NetConnect. Default 500 ms.
	Retry time.Duration

	lookup func(name string) (State, error)
	sleep  func(time.Duration)

	mu   sync.Mutex
	cb   func(netlink.Event)
	last bool
}

func NewInterface(name string) *Interface {
	return &Interface{
		Name:   name,
		Retry:  500 * time.Millisecond,
		lookup: sysLookup,
		sleep:  time.Sleep,
	}
}

// NetConnect waits until the interface is associated. Each attempt lasts
// ConnectTimeout (default 10 s); Retries of zero waits forever.
func (i *Interface) NetConnect(p *netlink.ConnectParams) error {
	timeout := p.ConnectTimeout
	if timeout <= 0 {
		timeout = netlink.DefaultConnectTimeout
	}
	for attempt := 1; ; attempt++ {
		for waited := time.Duration(0); waited < timeout; waited += i.Retry {
			if i.LinkUp() {
				return nil
			}
			i.sleep(i.Retry)
		}
		if p.Retries > 0 && attempt >= p.Retries {
			return netlink.ErrConnectTimeout
		}
	}
}

func (i *Interface) NetDisconnect() {}

func (i *Interface) NetNotify(cb func(netlink.Event)) {
	i.mu.Lock()
	i.cb = cb
	i.mu.Unlock()
}

func (i *Interface) GetHardwareAddr() (net.HardwareAddr, error) {
	st, err := i.lookup(i.Name)
	if err != nil {
		return nil, err
	}
	return st.HW, nil
}

func (i *Interface) Addr() (netip.Addr, error) {
	st, err := i.lookup(i.Name)
	if err != nil {
		return netip.Addr{}, err
	}
	return st.IP, nil
}

// LinkUp samples the interface and fires NetNotify on transitions.
func (i *Interface) LinkUp() bool {
	st, err := i.lookup(i.Name)
	up := err == nil && st.Associated()

	i.mu.Lock()
	changed := up != i.last
	i.last = up
	cb := i.cb
	i.mu.Unlock()

	if changed && cb != nil {
		if up {
			cb(netlink.EventNetUp)
		} else {
			cb(netlink.EventNetDown)
		}
	}
	return up
}

func sysLookup(name string) (State, error) {
	ifi, err := net.InterfaceByName(name)
	if err != nil {
		return State{}, err
	}
	st := State{Up: ifi.Flags&net.FlagUp != 0, HW: ifi.HardwareAddr}
	addrs, err := ifi.Addrs()
	if err != nil {
		return st, err
	}
	for _, a := range addrs {
		ipn, ok := a.(*net.IPNet)
		if !ok || !ipn.IP.IsGlobalUnicast() {
			continue
		}
		if ip, ok := netip.AddrFromSlice(ipn.IP); ok {
			st.IP = ip.Unmap()
			break
		}
	}
	return st, nil
}

var _ netlink.Netlinker = (*Interface)(nil)
var _ Prober = (*Interface)(nil)
