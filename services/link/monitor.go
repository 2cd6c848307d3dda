// Package link tracks WiFi/network association through a TinyGo netlink.
package link

import (
	"net/netip"
	"sync/atomic"

	"github.com/go-logr/logr"
	"tinygo.org/x/drivers/netlink"

	"thermometer-go/errcode"
)

// Prober is implemented by links that can answer "associated?" on demand.
// Without it the monitor relies on NetNotify events.
type Prober interface {
	LinkUp() bool
}

// addresser matches netdev.Netdever's Addr, which WiFi drivers implement on
// the same value as their netlink.
type addresser interface {
	Addr() (netip.Addr, error)
}

// Monitor remembers whether the device is associated with its network.
type Monitor struct {
	nl  netlink.Netlinker
	log logr.Logger
	up  atomic.Bool
}

func NewMonitor(nl netlink.Netlinker, log logr.Logger) *Monitor {
	return &Monitor{nl: nl, log: log}
}

// Connect associates and starts tracking link events.
func (m *Monitor) Connect(params *netlink.ConnectParams) error {
	m.nl.NetNotify(m.notify)

	m.log.Info("connecting", "ssid", params.Ssid)
	if err := m.nl.NetConnect(params); err != nil {
		return &errcode.E{C: errcode.LinkDown, Op: "connect", Err: err}
	}
	m.up.Store(true)

	kv := make([]any, 0, 4)
	if hw, err := m.nl.GetHardwareAddr(); err == nil {
		kv = append(kv, "mac", hw.String())
	}
	if a, ok := m.nl.(addresser); ok {
		if ip, err := a.Addr(); err == nil {
			kv = append(kv, "ip", ip.String())
		}
	}
	m.log.Info("connected", kv...)
	return nil
}

// Up reports whether the link is currently associated.
func (m *Monitor) Up() bool {
	if p, ok := m.nl.(Prober); ok {
		up := p.LinkUp()
		m.up.Store(up)
		return up
	}
	return m.up.Load()
}

func (m *Monitor) notify(e netlink.Event) {
	switch e {
	case netlink.EventNetUp:
		m.up.Store(true)
	case netlink.EventNetDown:
		m.up.Store(false)
		m.log.Info("network association lost")
	}
}
