package types

import "thermometer-go/x/conv"

// ------------------------
// 1-Wire sensor identity
// ------------------------

// AddressLen is the size of a 1-Wire ROM code.
const AddressLen = 8

// Address is a 1-Wire ROM code in bus order: byte 0 is the family code,
// bytes 1..6 the serial number, byte 7 the CRC.
type Address [AddressLen]byte

// Family codes of the thermometers the poller understands.
const (
	FamilyDS18S20 byte = 0x10
	FamilyDS1822  byte = 0x22
	FamilyDS18B20 byte = 0x28
)

// String renders the address as 16 lowercase hex digits, byte 7 first.
func (a Address) String() string {
	var buf [2 * AddressLen]byte
	return string(conv.HexReversed(buf[:], a[:]))
}

// Family returns the family code (byte 0).
func (a Address) Family() byte { return a[0] }

// IsZero reports whether every byte is zero.
func (a Address) IsZero() bool { return a == Address{} }

// Uint64 packs the address little-endian, byte 0 in the low bits.
func (a Address) Uint64() uint64 {
	var v uint64
	for i := AddressLen - 1; i >= 0; i-- {
		v = v<<8 | uint64(a[i])
	}
	return v
}

// AddressFromUint64 is the inverse of Uint64.
func AddressFromUint64(v uint64) Address {
	var a Address
	for i := 0; i < AddressLen; i++ {
		a[i] = byte(v)
		v >>= 8
	}
	return a
}

// AddressFromBytes copies a ROM code from a driver slice.
// ok is false unless b holds exactly AddressLen bytes.
func AddressFromBytes(b []byte) (a Address, ok bool) {
	if len(b) != AddressLen {
		return a, false
	}
	copy(a[:], b)
	return a, true
}

// ------------------------
// Readings
// ------------------------

// Reading is one sensor sample taken during a poll cycle.
type Reading struct {
	Index   int
	Addr    Address
	Celsius float64
}

// Fahrenheit converts the reading's temperature.
func (r Reading) Fahrenheit() float64 { return ToFahrenheit(r.Celsius) }

// ToFahrenheit converts °C to °F. NaN and ±Inf propagate.
func ToFahrenheit(c float64) float64 { return c*9/5 + 32 }
