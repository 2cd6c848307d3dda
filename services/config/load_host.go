//go:build !tinygo

package config

import (
	"strings"

	"github.com/spf13/viper"

	"thermometer-go/errcode"
)

// EnvPrefix namespaces environment overrides (THERMO_SERVER, ...).
const EnvPrefix = "THERMO"

// Load layers, lowest first: link-time defaults, the optional config file,
// THERMO_* environment variables and flags already bound to v.
func Load(v *viper.Viper, file string) (Config, error) {
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, &errcode.E{C: errcode.InvalidConfig, Op: "config", Msg: "read " + file, Err: err}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, &errcode.E{C: errcode.InvalidConfig, Op: "config", Msg: "decode", Err: err}
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("ssid", d.SSID)
	v.SetDefault("passphrase", d.Passphrase)
	v.SetDefault("iface", d.Interface)
	v.SetDefault("connect_timeout", d.ConnectTimeout)
	v.SetDefault("server", d.Server)
	v.SetDefault("database", d.Database)
	v.SetDefault("http_timeout", d.HTTPTimeout)
	v.SetDefault("interval", d.PollInterval)
	v.SetDefault("onewire_pin", d.OneWirePin)
	v.SetDefault("bus", d.Bus)
	v.SetDefault("resolution", d.Resolution)
	// Host boards have no fixed LED; the CLI flag or config file picks a GPIO.
	v.SetDefault("led", "")
	v.SetDefault("led_active_low", d.LEDActiveLow)
	v.SetDefault("blink_on", d.BlinkOn)
	v.SetDefault("blink_off", d.BlinkOff)
	v.SetDefault("blink_interval", d.BlinkInterval)
}
