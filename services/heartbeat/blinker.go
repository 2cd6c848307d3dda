package heartbeat

import "time"

// Pin is the LED output line.
type Pin interface {
	Set(high bool)
}

// Config controls LED polarity and timing. Zero durations take defaults.
type Config struct {
	ActiveLow bool
	// On and Off are the pulse widths of one blink. Default 100 ms each.
	On, Off time.Duration
	// Interval is the minimum spacing enforced by Update. Default 1 s.
	Interval time.Duration
	// Sleep blocks for the pulse widths; defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Blinker is the status indicator. It is cosmetic: a nil pin blinks nothing
// but still keeps time.
type Blinker struct {
	pin  Pin
	cfg  Config
	last time.Time
	n    int
}

func New(pin Pin, cfg Config) *Blinker {
	if cfg.On <= 0 {
		cfg.On = 100 * time.Millisecond
	}
	if cfg.Off <= 0 {
		cfg.Off = 100 * time.Millisecond
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}
	b := &Blinker{pin: pin, cfg: cfg}
	b.set(false)
	return b
}

// Blink pulses the LED once: on for On, then off for Off.
func (b *Blinker) Blink() {
	b.set(true)
	b.cfg.Sleep(b.cfg.On)
	b.set(false)
	b.cfg.Sleep(b.cfg.Off)
	b.n++
}

// Update blinks when at least Interval has passed since the previous
// Update-driven blink, and reports whether it did.
func (b *Blinker) Update(now time.Time) bool {
	if !b.last.IsZero() && now.Sub(b.last) < b.cfg.Interval {
		return false
	}
	b.Blink()
	b.last = now
	return true
}

// Count returns the number of blinks so far.
func (b *Blinker) Count() int { return b.n }

func (b *Blinker) set(on bool) {
	if b.pin == nil {
		return
	}
	b.pin.Set(on != b.cfg.ActiveLow)
}
