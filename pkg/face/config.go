package face

import (
	"fmt"

	"github.com/huihuibuhui227-svg/JingXin/pkg/affect"
	"github.com/huihuibuhui227-svg/JingXin/pkg/baseline"
	"github.com/huihuibuhui227-svg/JingXin/pkg/microexpr"
	"github.com/huihuibuhui227-svg/JingXin/pkg/tension"
)

// Config holds the face analyzer's own knobs plus the configs of the
// components it owns.
type Config struct {
	// TickRate is the expected frames per second. It sizes the history
	// rings and converts tick counts into seconds.
	TickRate float64

	// WindowSeconds is the temporal-statistics span per channel.
	WindowSeconds float64

	// EARWindowSeconds is the blink-tracking span.
	EARWindowSeconds float64

	// BlinkEAR is the eye aspect ratio whose falling-edge crossing
	// counts as a blink. ClosedEAR, slightly lower, is the threshold
	// under which the eyes count as continuously closed.
	BlinkEAR  float64
	ClosedEAR float64

	// CalmBlinkRate is the blinks-per-minute ceiling for high focus.
	CalmBlinkRate float64

	// YawFocusTight and YawFocusLoose bound the head-yaw focus bands:
	// within tight is attentive, beyond loose is turned away.
	YawFocusTight float64
	YawFocusLoose float64

	// FocusHigh, FocusMid and FocusLow are the 0..1 focus levels of the
	// three bands.
	FocusHigh float64
	FocusMid  float64
	FocusLow  float64

	// Baseline configures the per-channel rest calibration.
	Baseline baseline.Config

	// Micro, Affect and Tension configure the owned scorers.
	Micro   microexpr.Config
	Affect  affect.Config
	Tension tension.Config
}

// DefaultConfig returns the stock face tuning at 30 ticks per second.
func DefaultConfig() Config {
	return Config{
		TickRate:         30,
		WindowSeconds:    3,
		EARWindowSeconds: 5,

		BlinkEAR:  0.21,
		ClosedEAR: 0.18,

		CalmBlinkRate: 30,

		YawFocusTight: 0.03,
		YawFocusLoose: 0.08,
		FocusHigh:     0.8,
		FocusMid:      0.5,
		FocusLow:      0.3,

		Baseline: baseline.DefaultConfig(),
		Micro:    microexpr.DefaultConfig(),
		Affect:   affect.DefaultConfig(),
		Tension:  tension.DefaultConfig(),
	}
}

// Validate checks the analyzer's own fields; component configs are
// validated by their own constructors.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: TickRate %v must be positive", ErrConfig, c.TickRate)
	}
	if c.WindowSeconds <= 0 || c.EARWindowSeconds <= 0 {
		return fmt.Errorf("%w: window spans %v/%v must be positive",
			ErrConfig, c.WindowSeconds, c.EARWindowSeconds)
	}
	if c.ClosedEAR <= 0 || c.BlinkEAR <= c.ClosedEAR {
		return fmt.Errorf("%w: EAR thresholds %v/%v must satisfy 0 < closed < blink",
			ErrConfig, c.ClosedEAR, c.BlinkEAR)
	}
	if c.CalmBlinkRate <= 0 {
		return fmt.Errorf("%w: CalmBlinkRate %v must be positive", ErrConfig, c.CalmBlinkRate)
	}
	if c.YawFocusTight <= 0 || c.YawFocusLoose <= c.YawFocusTight {
		return fmt.Errorf("%w: yaw focus bands %v/%v must satisfy 0 < tight < loose",
			ErrConfig, c.YawFocusTight, c.YawFocusLoose)
	}
	if !(0 <= c.FocusLow && c.FocusLow < c.FocusMid && c.FocusMid < c.FocusHigh && c.FocusHigh <= 1) {
		return fmt.Errorf("%w: focus levels %v/%v/%v must be ordered within [0, 1]",
			ErrConfig, c.FocusLow, c.FocusMid, c.FocusHigh)
	}
	return nil
}
