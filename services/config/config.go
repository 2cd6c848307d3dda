package config

import (
	"strconv"
	"strings"
	"time"

	"thermometer-go/errcode"
	"thermometer-go/x/mathx"
)

const (
	// WritePath is the InfluxDB 1.x line-protocol ingestion path.
	WritePath = "/write"

	defaultBlinkPulse    = 100 * time.Millisecond
	defaultBlinkInterval = 1 * time.Second
	defaultConnect       = 30 * time.Second
)

// Config is owned by the top-level loop and passed down explicitly.
type Config struct {
	// Network association.
	SSID           string        `mapstructure:"ssid"`
	Passphrase     string        `mapstructure:"passphrase"`
	Interface      string        `mapstructure:"iface"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`

	// Time-series database.
	Server      string        `mapstructure:"server"`
	Database    string        `mapstructure:"database"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`

	// Poll loop.
	PollInterval time.Duration `mapstructure:"interval"`

	// 1-Wire bus. OneWirePin is the MCU data pin; Bus names a host bus
	// (empty selects the first one registered).
	OneWirePin int    `mapstructure:"onewire_pin"`
	Bus        string `mapstructure:"bus"`
	Resolution int    `mapstructure:"resolution"`

	// Status LED. LED is a pin number on MCU and a GPIO name on host;
	// "" or "-1" disables it.
	LED           string        `mapstructure:"led"`
	LEDActiveLow  bool          `mapstructure:"led_active_low"`
	BlinkOn       time.Duration `mapstructure:"blink_on"`
	BlinkOff      time.Duration `mapstructure:"blink_off"`
	BlinkInterval time.Duration `mapstructure:"blink_interval"`
}

// Default returns the configuration baked in at link time. Values that fail
// to parse fall back to the stock defaults.
func Default() Config {
	return Config{
		SSID:           SSID,
		Passphrase:     Passphrase,
		Interface:      Interface,
		ConnectTimeout: defaultConnect,

		Server:      Server,
		Database:    Database,
		HTTPTimeout: parseDuration(HTTPTimeout, 10*time.Second),

		PollInterval: parseDuration(PollInterval, 5*time.Second),

		OneWirePin: parseInt(OneWirePin, 4),
		Resolution: parseInt(Resolution, 12),

		LED:           LEDPin,
		LEDActiveLow:  !strings.EqualFold(LEDActive, "high"),
		BlinkOn:       defaultBlinkPulse,
		BlinkOff:      defaultBlinkPulse,
		BlinkInterval: defaultBlinkInterval,
	}
}

// Endpoint is the URL every payload is POSTed to.
func (c Config) Endpoint() string {
	return "http://" + c.Server + WritePath + "?db=" + c.Database
}

// LEDEnabled reports whether a status LED is configured.
func (c Config) LEDEnabled() bool {
	return c.LED != "" && c.LED != "-1"
}

// Validate reports the first unusable field.
func (c Config) Validate() error {
	switch {
	case c.Server == "":
		return invalid("server is empty")
	case strings.ContainsAny(c.Server, "/?# "):
		return invalid("server must be host:port, got " + strconv.Quote(c.Server))
	case c.Database == "":
		return invalid("database is empty")
	case c.PollInterval <= 0:
		return invalid("interval must be positive")
	case !mathx.Between(c.Resolution, 9, 12):
		return invalid("resolution must be 9..12 bits")
	case c.HTTPTimeout < 0:
		return invalid("http_timeout must not be negative")
	}
	return nil
}

func invalid(msg string) error {
	return &errcode.E{C: errcode.InvalidConfig, Op: "config", Msg: msg}
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
