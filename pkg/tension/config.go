package tension

import (
	"fmt"
	"math"
)

// Config holds the linear weights and band boundaries of the scorer.
// The five term weights must sum to 1 so the unboosted score stays a
// convex combination of its inputs.
type Config struct {
	// FrownWeight scales the brow furrow term.
	FrownWeight float64

	// CompressionWeight scales the lip compression term.
	CompressionWeight float64

	// ClosureWeight scales the normalized eye closure term.
	ClosureWeight float64

	// VolatilityWeight scales the instability term.
	VolatilityWeight float64

	// AsymmetryWeight scales the facial asymmetry term.
	AsymmetryWeight float64

	// BoostWeight scales the strongest negative-affect category into the
	// emotional influence term.
	BoostWeight float64

	// ClosureFullSeconds is the eye closure duration that saturates the
	// closure term.
	ClosureFullSeconds float64

	// MediumBand and HighBand are the closed-lower level boundaries:
	// scores below MediumBand are low, below HighBand medium, else high.
	MediumBand float64
	HighBand   float64
}

// DefaultConfig returns the stock weights.
func DefaultConfig() Config {
	return Config{
		FrownWeight:        0.30,
		CompressionWeight:  0.25,
		ClosureWeight:      0.20,
		VolatilityWeight:   0.15,
		AsymmetryWeight:    0.10,
		BoostWeight:        0.3,
		ClosureFullSeconds: 2.0,
		MediumBand:         0.3,
		HighBand:           0.6,
	}
}

// Validate checks the weights and band layout.
func (c Config) Validate() error {
	weights := map[string]float64{
		"FrownWeight":       c.FrownWeight,
		"CompressionWeight": c.CompressionWeight,
		"ClosureWeight":     c.ClosureWeight,
		"VolatilityWeight":  c.VolatilityWeight,
		"AsymmetryWeight":   c.AsymmetryWeight,
	}
	sum := 0.0
	for name, w := range weights {
		if w < 0 {
			return fmt.Errorf("%w: %s %v is negative", ErrConfig, name, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("%w: term weights sum to %v, want 1", ErrConfig, sum)
	}
	if c.BoostWeight < 0 {
		return fmt.Errorf("%w: BoostWeight %v is negative", ErrConfig, c.BoostWeight)
	}
	if c.ClosureFullSeconds <= 0 {
		return fmt.Errorf("%w: ClosureFullSeconds %v must be positive", ErrConfig, c.ClosureFullSeconds)
	}
	if c.MediumBand <= 0 || c.HighBand <= c.MediumBand || c.HighBand > 1 {
		return fmt.Errorf("%w: bands %v/%v must satisfy 0 < medium < high <= 1",
			ErrConfig, c.MediumBand, c.HighBand)
	}
	return nil
}
