package report

import (
	"strconv"

	"thermometer-go/x/conv"
)

// Line-protocol pieces of a temperature record.
const (
	Measurement   = "temperature"
	TagDeviceID   = "device_id"
	TagDeviceAddr = "device_address"
	FieldValue    = "value"

	maxPayload = 256
)

// BuildPayload formats one record:
//
//	temperature,device_id=<index>,device_address=0x<addr> value=<fahrenheit>
//
// addr is the 16-digit hex address and needs no escaping; the value uses Go's
// shortest float rendering.
func BuildPayload(index int, addr string, fahrenheit float64) string {
	b := make([]byte, 0, maxPayload)
	b = append(b, Measurement...)
	b = append(b, ',')
	b = append(b, TagDeviceID...)
	b = append(b, '=')
	b = conv.AppendInt(b, int64(index))
	b = append(b, ',')
	b = append(b, TagDeviceAddr...)
	b = append(b, "=0x"...)
	b = append(b, addr...)
	b = append(b, ' ')
	b = append(b, FieldValue...)
	b = append(b, '=')
	b = strconv.AppendFloat(b, fahrenheit, 'g', -1, 64)
	return string(b)
}
