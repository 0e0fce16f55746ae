// Package microexpr detects short activation bursts ("micro-events") on
// monitored channels. Each channel keeps a small ring; the detection
// threshold adapts to the channel's own recent baseline, excluding the
// newest samples so a spike cannot raise the bar it is measured against.
// A burst is reported once, when it completes, with its full duration.
package microexpr

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/huihuibuhui227-svg/JingXin/pkg/history"
)

// Sentinel errors for the microexpr package.
var (
	// ErrConfig indicates an unusable detector configuration.
	ErrConfig = errors.New("microexpr: invalid config")
)

// Config holds the detector parameters.
type Config struct {
	// WindowSize is the per-channel ring capacity.
	WindowSize int

	// CalibrationTicks is how many samples must arrive before any
	// detection happens on a channel.
	CalibrationTicks int

	// GuardSamples is how many of the newest samples are excluded from
	// the baseline window.
	GuardSamples int

	// BurstWindow is how many recent samples are scanned when counting a
	// burst's duration.
	BurstWindow int

	// SigmaMultiplier scales the baseline deviation into the threshold.
	SigmaMultiplier float64

	// MinSigma floors the baseline deviation so a perfectly flat channel
	// still has a non-zero threshold margin.
	MinSigma float64

	// MinActivation is an absolute floor; samples below it never start
	// or extend a burst regardless of the adaptive threshold.
	MinActivation float64

	// MinDuration and MaxDuration bound the burst length, in ticks, that
	// counts as a micro-event. Longer bursts are sustained expressions.
	MinDuration int
	MaxDuration int

	// Channels are the monitored channel names.
	Channels []string
}

// DefaultConfig returns the standard detector settings.
func DefaultConfig() Config {
	return Config{
		WindowSize:       15,
		CalibrationTicks: 10,
		GuardSamples:     5,
		BurstWindow:      8,
		SigmaMultiplier:  1.5,
		MinSigma:         0.01,
		MinActivation:    0.1,
		MinDuration:      2,
		MaxDuration:      8,
		Channels:         []string{"frown", "eye_squeeze", "mouth_down"},
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch {
	case c.WindowSize < 2:
		return fmt.Errorf("%w: window size %d", ErrConfig, c.WindowSize)
	case c.CalibrationTicks < 1 || c.CalibrationTicks > c.WindowSize:
		return fmt.Errorf("%w: calibration ticks %d", ErrConfig, c.CalibrationTicks)
	case c.GuardSamples < 1 || c.GuardSamples >= c.CalibrationTicks:
		return fmt.Errorf("%w: guard samples %d", ErrConfig, c.GuardSamples)
	case c.BurstWindow < 1:
		return fmt.Errorf("%w: burst window %d", ErrConfig, c.BurstWindow)
	case c.SigmaMultiplier <= 0:
		return fmt.Errorf("%w: sigma multiplier %v", ErrConfig, c.SigmaMultiplier)
	case c.MinSigma <= 0:
		return fmt.Errorf("%w: min sigma %v", ErrConfig, c.MinSigma)
	case c.MinDuration < 1 || c.MaxDuration < c.MinDuration:
		return fmt.Errorf("%w: duration bounds %d..%d", ErrConfig, c.MinDuration, c.MaxDuration)
	case len(c.Channels) == 0:
		return fmt.Errorf("%w: no monitored channels", ErrConfig)
	}
	return nil
}

// Event is one detected micro-event. It exists only for the tick that
// completes the burst.
type Event struct {
	Channel        string  `json:"channel"`
	Intensity      float64 `json:"intensity"`
	DurationFrames int     `json:"duration_frames"`
	OnsetFrame     int     `json:"onset_frame"`
}

// burst tracks an in-progress above-threshold run on one channel.
type burst struct {
	active bool
	length int
	peak   float64
}

// Detector watches the configured channels for micro-events.
type Detector struct {
	cfg    Config
	rings  map[string]*history.Ring
	bursts map[string]*burst
}

// New creates a detector, validating the configuration first.
func New(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Detector{
		cfg:    cfg,
		rings:  make(map[string]*history.Ring, len(cfg.Channels)),
		bursts: make(map[string]*burst, len(cfg.Channels)),
	}
	for _, ch := range cfg.Channels {
		ring, err := history.NewRing(cfg.WindowSize)
		if err != nil {
			return nil, err
		}
		d.rings[ch] = ring
		d.bursts[ch] = &burst{}
	}
	return d, nil
}

// Monitored returns the channel names this detector watches.
func (d *Detector) Monitored() []string {
	out := make([]string, len(d.cfg.Channels))
	copy(out, d.cfg.Channels)
	return out
}

// Observe feeds one sample for a monitored channel. It returns an event
// exactly once per burst: on the first tick the channel falls back under
// its threshold after a run of 2..MaxDuration above it. Samples for
// channels the detector does not monitor are ignored.
func (d *Detector) Observe(channel string, value float64) (Event, bool) {
	ring, ok := d.rings[channel]
	if !ok {
		return Event{}, false
	}

	ring.Push(value)
	n := ring.Len()
	if n < d.cfg.CalibrationTicks {
		return Event{}, false
	}

	values := ring.Values()
	base := values[:n-d.cfg.GuardSamples]
	mean, err := stats.Mean(base)
	if err != nil {
		return Event{}, false
	}
	sigma, err := stats.StandardDeviation(base)
	if err != nil {
		return Event{}, false
	}
	if sigma < d.cfg.MinSigma {
		sigma = d.cfg.MinSigma
	}
	threshold := mean + d.cfg.SigmaMultiplier*sigma

	b := d.bursts[channel]
	if value > threshold && value > d.cfg.MinActivation {
		if !b.active {
			b.active = true
			b.length = 0
			b.peak = value
		}
		b.length++
		if value > b.peak {
			b.peak = value
		}
		return Event{}, false
	}

	if !b.active {
		return Event{}, false
	}

	// Burst just ended. Report it if it was short enough to be a
	// micro-event rather than a sustained expression.
	length := b.length
	peak := b.peak
	b.active = false
	b.length = 0
	b.peak = 0

	if length < d.cfg.MinDuration || length > d.cfg.MaxDuration {
		return Event{}, false
	}
	return Event{
		Channel:        channel,
		Intensity:      peak,
		DurationFrames: length,
		OnsetFrame:     n - length,
	}, true
}

// Reset clears every channel's ring and burst state together.
func (d *Detector) Reset() {
	for _, ring := range d.rings {
		ring.Reset()
	}
	for _, b := range d.bursts {
		*b = burst{}
	}
}
