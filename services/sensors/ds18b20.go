package sensors

import (
	"time"

	"tinygo.org/x/drivers/ds18b20"

	"thermometer-go/errcode"
	"thermometer-go/types"
)

// Searcher enumerates ROM codes; tinygo's onewire.Device implements it.
type Searcher interface {
	Search(cmd uint8) ([][]uint8, error)
}

// Wire is the 1-Wire master the DS18B20 adapter needs.
type Wire interface {
	ds18b20.OneWireDevice
	Searcher
}

// DS18B20 drives thermometers through the TinyGo ds18b20 driver.
type DS18B20 struct {
	wire  Wire
	dev   ds18b20.Device
	res   int
	roms  [][]uint8
	sleep func(time.Duration)
}

// NewDS18B20 wraps a configured 1-Wire master. resolution is in bits
// (9..12); anything else means 12.
func NewDS18B20(w Wire, resolution int) *DS18B20 {
	return &DS18B20{
		wire:  w,
		dev:   ds18b20.New(w),
		res:   resolutionOrDefault(resolution),
		sleep: time.Sleep,
	}
}

func (d *DS18B20) Enumerate() (int, error) {
	roms, err := d.wire.Search(cmdSearchROM)
	d.roms = roms
	for _, rom := range roms {
		if len(rom) == types.AddressLen && rom[0] != types.FamilyDS18S20 {
			d.dev.ThermometerResolution(rom, uint8(d.res))
		}
	}
	if err != nil {
		return len(roms), errcode.Wrap(errcode.NoBus, "search", err)
	}
	return len(roms), nil
}

func (d *DS18B20) AddressOf(index int) (types.Address, error) {
	if err := outOfRange("address", index, len(d.roms)); err != nil {
		return types.Address{}, err
	}
	return checkAddress("address", d.roms[index], d.crcOK)
}

// RequestConversion addresses every device with skip ROM.
func (d *DS18B20) RequestConversion() error {
	d.dev.RequestTemperature(nil)
	d.sleep(ConversionTime(d.res))
	return nil
}

// TemperatureCelsius decodes the raw scratchpad so sixteenths of a degree
// survive; the driver's milli-degree helper truncates them.
func (d *DS18B20) TemperatureCelsius(addr types.Address) (float64, error) {
	raw, err := d.dev.ReadTemperatureRaw(addr[:])
	if err != nil {
		return 0, errcode.Wrap(errcode.ReadFailed, "scratchpad", err)
	}
	return celsius(addr.Family(), raw[0], raw[1]), nil
}

// crcOK runs the Dallas CRC over a whole ROM code; zero means intact.
func (d *DS18B20) crcOK(b []byte) bool {
	return d.wire.Сrc8(b) == 0
}
