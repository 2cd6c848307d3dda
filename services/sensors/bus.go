// Package sensors adapts 1-Wire thermometer buses to the small surface the
// poller drives:
//
//	n, err := bus.Enumerate()          // once, at startup
//	_ = bus.RequestConversion()         // every cycle, all sensors at once
//	addr, err := bus.AddressOf(i)       // errcode.NoAddress for ghosts
//	c, err := bus.TemperatureCelsius(addr)
//
// Three implementations exist: DS18B20 over the TinyGo driver (MCU),
// Periph over a periph.io onewire.Bus (Linux w1 netlink master) and Sim.
package sensors

import (
	"time"

	"thermometer-go/errcode"
	"thermometer-go/types"
	"thermometer-go/x/mathx"
)

// Bus is a 1-Wire bus carrying zero or more DS18x20 thermometers.
type Bus interface {
	// Enumerate searches the bus and returns the number of devices found.
	// A partial result may come with a non-nil error.
	Enumerate() (int, error)
	// AddressOf returns the ROM code of the index-th enumerated device.
	AddressOf(index int) (types.Address, error)
	// RequestConversion starts a conversion on every device and waits for it.
	RequestConversion() error
	// TemperatureCelsius reads the last conversion of one device.
	TemperatureCelsius(addr types.Address) (float64, error)
}

// ROM commands shared by the adapters.
const (
	cmdSearchROM  = 0xF0
	cmdSkipROM    = 0xCC
	cmdConvert    = 0x44
	cmdWriteSpad  = 0x4E
	cmdReadSpad   = 0xBE
	scratchpadLen = 9
)

// DisconnectedC is reported for a device whose scratchpad cannot be read.
const DisconnectedC = -127.0

// Resolution limits in bits.
const (
	MinResolution = 9
	MaxResolution = 12
)

// ConversionTime is the worst case conversion time for a resolution:
// 750 ms at 12 bits, halving for every bit less.
func ConversionTime(bits int) time.Duration {
	bits = mathx.Clamp(bits, MinResolution, MaxResolution)
	return 750 * time.Millisecond >> uint(MaxResolution-bits)
}

// configByte is the scratchpad configuration register for a resolution.
func configByte(bits int) byte {
	bits = mathx.Clamp(bits, MinResolution, MaxResolution)
	return byte(bits-MinResolution)<<5 | 0x1F
}

// Thermometer reports whether a family code belongs to a DS18x20 part.
func Thermometer(family byte) bool {
	switch family {
	case types.FamilyDS18B20, types.FamilyDS18S20, types.FamilyDS1822:
		return true
	}
	return false
}

// checkAddress turns a ROM code into an address or a ghost error. crcOK is
// the caller's CRC check over all eight bytes.
func checkAddress(op string, rom []byte, crcOK func([]byte) bool) (types.Address, error) {
	a, ok := types.AddressFromBytes(rom)
	switch {
	case !ok:
		return a, &errcode.E{C: errcode.NoAddress, Op: op, Msg: "short rom code"}
	case a.IsZero() || !crcOK(a[:]):
		return a, &errcode.E{C: errcode.NoAddress, Op: op, Msg: "crc mismatch"}
	case !Thermometer(a.Family()):
		return a, &errcode.E{C: errcode.NoAddress, Op: op, Msg: "not a thermometer"}
	}
	return a, nil
}

// celsius decodes the two temperature bytes of a scratchpad. DS18S20 parts
// report half degrees, the others sixteenths.
func celsius(family byte, lsb, msb byte) float64 {
	raw := int16(uint16(lsb) | uint16(msb)<<8)
	if family == types.FamilyDS18S20 {
		return float64(raw) / 2
	}
	return float64(raw) / 16
}

// resolutionOrDefault maps anything outside 9..12 bits to 12.
func resolutionOrDefault(bits int) int {
	if !mathx.Between(bits, MinResolution, MaxResolution) {
		return MaxResolution
	}
	return bits
}

func outOfRange(op string, index, n int) error {
	if index >= 0 && index < n {
		return nil
	}
	return &errcode.E{C: errcode.NoAddress, Op: op, Msg: "index out of range"}
}
