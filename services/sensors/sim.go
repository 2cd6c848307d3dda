//go:build !tinygo

package sensors

import (
	"periph.io/x/conn/v3/onewire"

	"thermometer-go/errcode"
	"thermometer-go/types"
)

// SimDevice is one simulated thermometer.
type SimDevice struct {
	Addr    types.Address
	Celsius float64
	ReadErr error
}

// Sim is an in-memory bus. Devices with a corrupt ROM code show up as
// ghosts, exactly as on a noisy wire.
type Sim struct {
	Devices    []SimDevice
	SearchErr  error
	ConvertErr error
	// Drift is added to every device's temperature on each conversion.
	Drift float64

	Conversions int
	Reads       int
	found       int
}

// SimAddress builds a valid ROM code from a family and a 48-bit serial.
func SimAddress(family byte, serial uint64) types.Address {
	var a types.Address
	a[0] = family
	for i := 1; i < types.AddressLen-1; i++ {
		a[i] = byte(serial)
		serial >>= 8
	}
	a[types.AddressLen-1] = onewire.CalcCRC(a[:types.AddressLen-1])
	return a
}

// NewSim returns a bus with n DS18B20 devices at 20.0, 20.5, 21.0 ... °C.
func NewSim(n int) *Sim {
	s := &Sim{Devices: make([]SimDevice, n)}
	for i := range s.Devices {
		s.Devices[i] = SimDevice{
			Addr:    SimAddress(types.FamilyDS18B20, uint64(0x0316A2790C00+i)),
			Celsius: 20 + float64(i)/2,
		}
	}
	return s
}

func (s *Sim) Enumerate() (int, error) {
	if s.SearchErr != nil {
		s.found = 0
		return 0, errcode.Wrap(errcode.NoBus, "search", s.SearchErr)
	}
	s.found = len(s.Devices)
	return s.found, nil
}

func (s *Sim) AddressOf(index int) (types.Address, error) {
	if err := outOfRange("address", index, s.found); err != nil {
		return types.Address{}, err
	}
	return checkAddress("address", s.Devices[index].Addr[:], onewire.CheckCRC)
}

func (s *Sim) RequestConversion() error {
	s.Conversions++
	if s.ConvertErr != nil {
		return errcode.Wrap(errcode.Conversion, "convert", s.ConvertErr)
	}
	for i := range s.Devices {
		s.Devices[i].Celsius += s.Drift
	}
	return nil
}

func (s *Sim) TemperatureCelsius(addr types.Address) (float64, error) {
	s.Reads++
	for _, d := range s.Devices {
		if d.Addr != addr {
			continue
		}
		if d.ReadErr != nil {
			return 0, errcode.Wrap(errcode.ReadFailed, "scratchpad", d.ReadErr)
		}
		return d.Celsius, nil
	}
	return 0, &errcode.E{C: errcode.ReadFailed, Op: "scratchpad", Msg: "no such device"}
}
