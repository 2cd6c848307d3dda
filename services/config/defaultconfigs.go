package config

// -----------------------------------------------------------------------------
// Build-time configuration
//
// Override at link time, e.g.
//
//	tinygo flash -target=pico -ldflags="-X 'thermometer-go/services/config.SSID=home' \
//	    -X 'thermometer-go/services/config.Passphrase=secret' \
//	    -X 'thermometer-go/services/config.Server=carbon.local:8086'" .
//
// Only string variables can be set this way; numeric values are parsed by
// Default().
// -----------------------------------------------------------------------------

var (
	SSID       = ""
	Passphrase = ""
	Interface  = "wlan0"

	Server   = "carbon.local:8086"
	Database = "thermometer"

	PollInterval = "5s"
	HTTPTimeout  = "10s"

	OneWirePin = "4"
	LEDPin     = "2"
	LEDActive  = "low"
	Resolution = "12"
)
