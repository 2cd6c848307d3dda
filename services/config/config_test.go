package config

import (
	"errors"
	"testing"
	"time"

	"thermometer-go/errcode"
)

func TestDefault_MatchesFirmwareConstants(t *testing.T) {
	c := Default()
	if got, want := c.Endpoint(), "http://carbon.local:8086/write?db=thermometer"; got != want {
		t.Fatalf("Endpoint() = %q, want %q", got, want)
	}
	if c.PollInterval != 5*time.Second {
		t.Fatalf("PollInterval = %v, want 5s", c.PollInterval)
	}
	if c.OneWirePin != 4 {
		t.Fatalf("OneWirePin = %d, want 4", c.OneWirePin)
	}
	if !c.LEDActiveLow || !c.LEDEnabled() {
		t.Fatalf("LED = %q activeLow=%v, want enabled active-low", c.LED, c.LEDActiveLow)
	}
	if c.BlinkOn != 100*time.Millisecond || c.BlinkOff != 100*time.Millisecond || c.BlinkInterval != time.Second {
		t.Fatalf("blink timing = %v/%v/%v", c.BlinkOn, c.BlinkOff, c.BlinkInterval)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestDefault_LinkTimeOverrides(t *testing.T) {
	oldInterval, oldServer, oldActive, oldPin := PollInterval, Server, LEDActive, OneWirePin
	t.Cleanup(func() {
		PollInterval, Server, LEDActive, OneWirePin = oldInterval, oldServer, oldActive, oldPin
	})

	PollInterval = "30s"
	Server = "influx.lan:9999"
	LEDActive = "HIGH"
	OneWirePin = "not-a-number"

	c := Default()
	if c.PollInterval != 30*time.Second {
		t.Fatalf("PollInterval = %v, want 30s", c.PollInterval)
	}
	if got, want := c.Endpoint(), "http://influx.lan:9999/write?db=thermometer"; got != want {
		t.Fatalf("Endpoint() = %q, want %q", got, want)
	}
	if c.LEDActiveLow {
		t.Fatal("LEDActiveLow = true, want false for \"HIGH\"")
	}
	if c.OneWirePin != 4 {
		t.Fatalf("OneWirePin = %d, want fallback 4", c.OneWirePin)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"empty server":   func(c *Config) { c.Server = "" },
		"url as server":  func(c *Config) { c.Server = "http://x/write" },
		"empty database": func(c *Config) { c.Database = "" },
		"zero interval":  func(c *Config) { c.PollInterval = 0 },
		"resolution 8":   func(c *Config) { c.Resolution = 8 },
		"resolution 13":  func(c *Config) { c.Resolution = 13 },
		"neg timeout":    func(c *Config) { c.HTTPTimeout = -time.Second },
	}
	for name, mutate := range cases {
		c := Default()
		mutate(&c)
		err := c.Validate()
		if err == nil {
			t.Fatalf("%s: Validate() = nil, want error", name)
		}
		if !errors.Is(err, errcode.InvalidConfig) {
			t.Fatalf("%s: Validate() = %v, want invalid_config", name, err)
		}
	}
}

func TestLEDEnabled(t *testing.T) {
	for led, want := range map[string]bool{"": false, "-1": false, "2": true, "GPIO17": true} {
		c := Config{LED: led}
		if got := c.LEDEnabled(); got != want {
			t.Fatalf("LEDEnabled(%q) = %v, want %v", led, got, want)
		}
	}
}
