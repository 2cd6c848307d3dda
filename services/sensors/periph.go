//go:build !tinygo

package sensors

import (
	"time"

	"periph.io/x/conn/v3/onewire"

	"thermometer-go/errcode"
	"thermometer-go/types"
)

// Periph drives thermometers on a periph.io 1-Wire bus.
type Periph struct {
	bus   onewire.Bus
	res   int
	addrs []onewire.Address
	sleep func(time.Duration)
}

// NewPeriph wraps an open bus. resolution is in bits (9..12); anything
// else means 12.
func NewPeriph(bus onewire.Bus, resolution int) *Periph {
	return &Periph{bus: bus, res: resolutionOrDefault(resolution), sleep: time.Sleep}
}

func (p *Periph) String() string { return p.bus.String() }

func (p *Periph) Enumerate() (int, error) {
	addrs, err := p.bus.Search(false)
	p.addrs = addrs
	for _, a := range addrs {
		if types.AddressFromUint64(uint64(a)).Family() == types.FamilyDS18S20 {
			continue
		}
		d := onewire.Dev{Bus: p.bus, Addr: a}
		if werr := d.Tx([]byte{cmdWriteSpad, 0xFF, 0x00, configByte(p.res)}, nil); werr != nil && err == nil {
			err = werr
		}
	}
	if err != nil {
		return len(addrs), errcode.Wrap(errcode.NoBus, "search", err)
	}
	return len(addrs), nil
}

func (p *Periph) AddressOf(index int) (types.Address, error) {
	if err := outOfRange("address", index, len(p.addrs)); err != nil {
		return types.Address{}, err
	}
	a := types.AddressFromUint64(uint64(p.addrs[index]))
	return checkAddress("address", a[:], onewire.CheckCRC)
}

// RequestConversion holds a strong pull-up so parasite powered parts can
// convert.
func (p *Periph) RequestConversion() error {
	if err := p.bus.Tx([]byte{cmdSkipROM, cmdConvert}, nil, onewire.StrongPullup); err != nil {
		return errcode.Wrap(errcode.Conversion, "convert", err)
	}
	p.sleep(ConversionTime(p.res))
	return nil
}

func (p *Periph) TemperatureCelsius(addr types.Address) (float64, error) {
	d := onewire.Dev{Bus: p.bus, Addr: onewire.Address(addr.Uint64())}
	var spad [scratchpadLen]byte
	if err := d.Tx([]byte{cmdReadSpad}, spad[:]); err != nil {
		return 0, errcode.Wrap(errcode.ReadFailed, "scratchpad", err)
	}
	if !onewire.CheckCRC(spad[:]) {
		return 0, &errcode.E{C: errcode.ReadFailed, Op: "scratchpad", Msg: "crc mismatch"}
	}
	return celsius(addr.Family(), spad[0], spad[1]), nil
}
