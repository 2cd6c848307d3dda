//go:build !tinygo

package sensors

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/onewire"

	"thermometer-go/errcode"
	"thermometer-go/types"
)

func TestSimAddress(t *testing.T) {
	a := SimAddress(types.FamilyDS18B20, 0x0316A2790C00)
	if !onewire.CheckCRC(a[:]) {
		t.Fatalf("SimAddress %v has a bad CRC", a)
	}
	if a.Family() != types.FamilyDS18B20 {
		t.Fatalf("Family() = %#x, want 0x28", a.Family())
	}
	if got := a.String()[2:]; got != "0316a2790c0028" {
		t.Fatalf("String()[2:] = %q, want %q", got, "0316a2790c0028")
	}
}

func TestSim_GhostAndReadError(t *testing.T) {
	s := NewSim(3)
	s.Devices[1].Addr[7] ^= 0xFF
	s.Devices[2].ReadErr = errors.New("timeout")

	if n, err := s.Enumerate(); n != 3 || err != nil {
		t.Fatalf("Enumerate() = %d, %v", n, err)
	}
	if _, err := s.AddressOf(1); !errors.Is(err, errcode.NoAddress) {
		t.Fatalf("AddressOf(1) err = %v, want ghost", err)
	}
	a, err := s.AddressOf(2)
	if err != nil {
		t.Fatalf("AddressOf(2): %v", err)
	}
	if _, err := s.TemperatureCelsius(a); errcode.Of(err) != errcode.ReadFailed {
		t.Fatalf("TemperatureCelsius err = %v, want %q", err, errcode.ReadFailed)
	}
}

func TestSim_Drift(t *testing.T) {
	s := NewSim(2)
	s.Drift = 0.25
	if _, err := s.Enumerate(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		if err := s.RequestConversion(); err != nil {
			t.Fatal(err)
		}
	}
	a, _ := s.AddressOf(1)
	c, err := s.TemperatureCelsius(a)
	if err != nil || c != 21.5 {
		t.Fatalf("TemperatureCelsius = %v, %v, want 21.5", c, err)
	}
	if s.Conversions != 4 || s.Reads != 1 {
		t.Fatalf("Conversions, Reads = %d, %d, want 4, 1", s.Conversions, s.Reads)
	}
}

func TestSim_SearchError(t *testing.T) {
	s := NewSim(2)
	s.SearchErr = errors.New("no presence")
	if n, err := s.Enumerate(); n != 0 || errcode.Of(err) != errcode.NoBus {
		t.Fatalf("Enumerate() = %d, %v", n, err)
	}
	if _, err := s.AddressOf(0); !errors.Is(err, errcode.NoAddress) {
		t.Fatalf("AddressOf(0) err = %v", err)
	}
}
