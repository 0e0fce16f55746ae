package voice

import (
	"fmt"
	"math"
)

// Config holds the scoring anchors, quality boundaries and weights of
// the voice scorer. All values are tuning policy.
type Config struct {
	// PitchBaseStd is the pitch variation (Hz) that scores exactly
	// PitchAnchor; variation below it also reads as "flat".
	// PitchSlope is score gained per Hz of variation above the base.
	PitchBaseStd float64
	PitchAnchor  float64
	PitchSlope   float64

	// PitchRichStd is the variation above which the pitch reads "rich".
	PitchRichStd float64

	// EnergyLight and EnergyLoud bound the "moderate" energy band.
	EnergyLight float64
	EnergyLoud  float64

	// FluentRatio and MostlyFluentRatio bound the fluency labels.
	FluentRatio       float64
	MostlyFluentRatio float64

	// ModeratePausesPerMinute and FrequentPausesPerMinute bound the
	// pause-rate labels.
	ModeratePausesPerMinute float64
	FrequentPausesPerMinute float64

	// PitchWeight, EnergyWeight and FluencyWeight combine the sub-scores
	// into the overall score. They must sum to 1.
	PitchWeight   float64
	EnergyWeight  float64
	FluencyWeight float64

	// HistorySize bounds the kept per-utterance assessments.
	HistorySize int
}

// DefaultConfig returns the stock voice tuning.
func DefaultConfig() Config {
	return Config{
		PitchBaseStd: 20,
		PitchAnchor:  50,
		PitchSlope:   2.5,
		PitchRichStd: 40,

		EnergyLight: 0.5,
		EnergyLoud:  0.8,

		FluentRatio:       0.6,
		MostlyFluentRatio: 0.3,

		ModeratePausesPerMinute: 5,
		FrequentPausesPerMinute: 10,

		PitchWeight:   0.3,
		EnergyWeight:  0.3,
		FluencyWeight: 0.4,

		HistorySize: 20,
	}
}

// Validate checks weight and band soundness.
func (c Config) Validate() error {
	if c.PitchWeight < 0 || c.EnergyWeight < 0 || c.FluencyWeight < 0 {
		return fmt.Errorf("%w: negative sub-score weight", ErrConfig)
	}
	if sum := c.PitchWeight + c.EnergyWeight + c.FluencyWeight; math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("%w: sub-score weights sum to %v, want 1", ErrConfig, sum)
	}
	if c.PitchSlope <= 0 {
		return fmt.Errorf("%w: PitchSlope %v must be positive", ErrConfig, c.PitchSlope)
	}
	if c.PitchRichStd <= c.PitchBaseStd {
		return fmt.Errorf("%w: PitchRichStd %v must exceed PitchBaseStd %v",
			ErrConfig, c.PitchRichStd, c.PitchBaseStd)
	}
	if c.EnergyLoud <= c.EnergyLight {
		return fmt.Errorf("%w: EnergyLoud %v must exceed EnergyLight %v",
			ErrConfig, c.EnergyLoud, c.EnergyLight)
	}
	if c.FluentRatio <= c.MostlyFluentRatio {
		return fmt.Errorf("%w: FluentRatio %v must exceed MostlyFluentRatio %v",
			ErrConfig, c.FluentRatio, c.MostlyFluentRatio)
	}
	if c.FrequentPausesPerMinute <= c.ModeratePausesPerMinute {
		return fmt.Errorf("%w: FrequentPausesPerMinute %v must exceed ModeratePausesPerMinute %v",
			ErrConfig, c.FrequentPausesPerMinute, c.ModeratePausesPerMinute)
	}
	if c.HistorySize < 1 {
		return fmt.Errorf("%w: HistorySize %d below 1", ErrConfig, c.HistorySize)
	}
	return nil
}
