// Package baseline learns per-channel rest values online.
// A calibrator observes the first K ticks of a signal, converges on its
// resting level, then freezes. Downstream consumers read the frozen value
// for the rest of the session.
package baseline

import (
	"errors"
	"sync"
)

// Sentinel errors for the baseline package.
var (
	// ErrWindow indicates a non-positive calibration window.
	ErrWindow = errors.New("baseline: calibration window must be >= 1")

	// ErrSmoothing indicates a smoothing factor outside (0,1).
	ErrSmoothing = errors.New("baseline: smoothing factor must be in (0,1)")
)

// Style selects how the baseline converges during calibration.
type Style int

const (
	// RunningAverage seeds with the first value, then updates with a
	// front-loaded weight of 1/(n+1). After K ticks the baseline is the
	// plain mean of the window.
	RunningAverage Style = iota

	// Exponential seeds with the first value, then blends each new value
	// with a fixed smoothing factor. Converges toward recent values
	// faster than the running average.
	Exponential
)

// Config holds the calibrator parameters.
type Config struct {
	// Style is the smoothing style used during the window.
	Style Style

	// Window is the number of calibration ticks before the value freezes.
	Window int

	// Smoothing is the weight kept by the previous value under the
	// Exponential style. Ignored by RunningAverage.
	Smoothing float64
}

// DefaultConfig returns the facial rest-value calibration settings.
func DefaultConfig() Config {
	return Config{
		Style:  RunningAverage,
		Window: 10, // ~1/3 s at 30 ticks/s
	}
}

// ShoulderConfig returns the shoulder-height calibration settings.
func ShoulderConfig() Config {
	return Config{
		Style:     Exponential,
		Window:    30, // one full second of settling
		Smoothing: 0.9,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Window < 1 {
		return ErrWindow
	}
	if c.Style == Exponential && (c.Smoothing <= 0 || c.Smoothing >= 1) {
		return ErrSmoothing
	}
	return nil
}

// Calibrator learns one channel's rest value over an initial window of
// ticks, then returns it unchanged forever after. Safe for concurrent use.
type Calibrator struct {
	mu    sync.Mutex
	cfg   Config
	value float64
	ticks int
}

// New creates a calibrator, validating the configuration first.
func New(cfg Config) (*Calibrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Calibrator{cfg: cfg}, nil
}

// Observe feeds one raw sample and returns the current baseline.
// During the calibration window the baseline tracks the input; afterwards
// the frozen value is returned and the input is ignored.
func (c *Calibrator) Observe(raw float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ticks >= c.cfg.Window {
		return c.value
	}

	if c.ticks == 0 {
		c.value = raw
	} else {
		switch c.cfg.Style {
		case Exponential:
			c.value = c.cfg.Smoothing*c.value + (1-c.cfg.Smoothing)*raw
		default:
			alpha := 1.0 / float64(c.ticks+1)
			c.value = (1-alpha)*c.value + alpha*raw
		}
	}
	c.ticks++

	return c.value
}

// Value returns the current baseline without observing a sample.
func (c *Calibrator) Value() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// IsCalibrated reports whether the calibration window has completed.
func (c *Calibrator) IsCalibrated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks >= c.cfg.Window
}

// Ticks returns how many calibration samples have been observed.
func (c *Calibrator) Ticks() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

// Reset clears the learned value and the tick count together, returning
// the calibrator to its initial state.
func (c *Calibrator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = 0
	c.ticks = 0
}
