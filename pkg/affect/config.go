package affect

import "fmt"

// Config holds the per-rule thresholds and weights of the scorer. All
// values are tuning policy, not physiological constants; override them
// freely. Zero is a valid gate, so construct from DefaultConfig and
// adjust rather than filling in a bare struct.
type Config struct {
	// SmileGate is the smile floor shared by the whole smile family
	// (happy, polite_smile, forced_smile, contempt).
	SmileGate float64

	// CheekRaiseGate separates a genuine smile from a polite one.
	CheekRaiseGate float64

	// PoliteSmileWeight scales the smile level into the polite_smile score.
	PoliteSmileWeight float64

	// SurpriseBrowGate and SurpriseJawGate gate the surprise rule. Either
	// brow clearing the gate is enough.
	SurpriseBrowGate float64
	SurpriseJawGate  float64

	// DisgustNoseGate and DisgustLipGate gate plain disgust.
	DisgustNoseGate float64
	DisgustLipGate  float64

	// AngerFrownGate and AngerEyeGate gate anger.
	AngerFrownGate float64
	AngerEyeGate   float64

	// SadnessFrownGate and SadnessMouthGate gate sadness.
	SadnessFrownGate float64
	SadnessMouthGate float64

	// DistressWeight scales a fired sadness score into distress.
	DistressWeight float64

	// FearBrowGate, FearJawGate and FearYawGate gate fear. The jaw gate
	// sits well above the surprise one.
	FearBrowGate float64
	FearJawGate  float64
	FearYawGate  float64

	// FatigueEARGate is the eye-aspect-ratio ceiling below which the
	// eyes read as drooping.
	FatigueEARGate float64

	// ForcedStretchGate is the lip stretch floor of forced_smile.
	ForcedStretchGate float64

	// LipCompressionGate is shared by forced_smile and the anxiety
	// compression term.
	LipCompressionGate float64

	// StartleTrendGate is the per-tick slope both inner brow and frown
	// must exceed for startled_anxiety. StartleScore is the flat raw
	// score the rule emits.
	StartleTrendGate float64
	StartleScore     float64

	// CognitiveFrownGate, CognitiveEyeGate and CognitiveYawGate gate
	// cognitive_load. The yaw gate is negative: the head must be turned
	// away past it.
	CognitiveFrownGate float64
	CognitiveEyeGate   float64
	CognitiveYawGate   float64

	// MoralNoseGate, MoralLipGate and MoralFrownGate gate moral_disgust.
	MoralNoseGate  float64
	MoralLipGate   float64
	MoralFrownGate float64

	// ContemptSymmetryGate is the facial symmetry ceiling below which a
	// smile reads as one-sided.
	ContemptSymmetryGate float64

	// Anxiety is additive: each term that holds adds its contribution,
	// and the sum is capped at 1.
	AnxietyFrownGate         float64
	AnxietyFrownWeight       float64
	AnxietyCompressionWeight float64
	AnxietyYawGate           float64
	AnxietyYawBoost          float64

	// CompositeFloor is the normalized score above which a non-basic
	// category is reported as an active composite signal.
	CompositeFloor float64
}

// DefaultConfig returns the stock rule thresholds.
func DefaultConfig() Config {
	return Config{
		SmileGate:         0.1,
		CheekRaiseGate:    0.1,
		PoliteSmileWeight: 0.7,

		SurpriseBrowGate: 0.1,
		SurpriseJawGate:  0.3,

		DisgustNoseGate: 0.2,
		DisgustLipGate:  0.1,

		AngerFrownGate: 0.3,
		AngerEyeGate:   0.3,

		SadnessFrownGate: 0.2,
		SadnessMouthGate: 0.05,
		DistressWeight:   0.8,

		FearBrowGate: 0.15,
		FearJawGate:  0.5,
		FearYawGate:  0.1,

		FatigueEARGate: 0.15,

		ForcedStretchGate:  0.1,
		LipCompressionGate: 0.2,

		StartleTrendGate: 0.01,
		StartleScore:     0.7,

		CognitiveFrownGate: 0.2,
		CognitiveEyeGate:   0.3,
		CognitiveYawGate:   -0.1,

		MoralNoseGate:  0.3,
		MoralLipGate:   0.2,
		MoralFrownGate: 0.3,

		ContemptSymmetryGate: 0.7,

		AnxietyFrownGate:         0.1,
		AnxietyFrownWeight:       0.5,
		AnxietyCompressionWeight: 1.5,
		AnxietyYawGate:           -0.05,
		AnxietyYawBoost:          0.2,

		CompositeFloor: 0.3,
	}
}

// Validate checks the parts of the config that would make the scorer
// numerically meaningless.
func (c Config) Validate() error {
	gates := map[string]float64{
		"SmileGate":          c.SmileGate,
		"CheekRaiseGate":     c.CheekRaiseGate,
		"SurpriseBrowGate":   c.SurpriseBrowGate,
		"SurpriseJawGate":    c.SurpriseJawGate,
		"DisgustNoseGate":    c.DisgustNoseGate,
		"DisgustLipGate":     c.DisgustLipGate,
		"AngerFrownGate":     c.AngerFrownGate,
		"AngerEyeGate":       c.AngerEyeGate,
		"SadnessFrownGate":   c.SadnessFrownGate,
		"SadnessMouthGate":   c.SadnessMouthGate,
		"FearBrowGate":       c.FearBrowGate,
		"FearJawGate":        c.FearJawGate,
		"FatigueEARGate":     c.FatigueEARGate,
		"ForcedStretchGate":  c.ForcedStretchGate,
		"LipCompressionGate": c.LipCompressionGate,
		"AnxietyFrownGate":   c.AnxietyFrownGate,
	}
	for name, v := range gates {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s %v outside [0, 1]", ErrConfig, name, v)
		}
	}

	weights := map[string]float64{
		"PoliteSmileWeight":        c.PoliteSmileWeight,
		"DistressWeight":           c.DistressWeight,
		"AnxietyFrownWeight":       c.AnxietyFrownWeight,
		"AnxietyCompressionWeight": c.AnxietyCompressionWeight,
		"AnxietyYawBoost":          c.AnxietyYawBoost,
		"StartleScore":             c.StartleScore,
	}
	for name, v := range weights {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrConfig, name, v)
		}
	}

	if c.ContemptSymmetryGate <= 0 || c.ContemptSymmetryGate > 1 {
		return fmt.Errorf("%w: ContemptSymmetryGate %v outside (0, 1]", ErrConfig, c.ContemptSymmetryGate)
	}
	if c.CompositeFloor <= 0 || c.CompositeFloor >= 1 {
		return fmt.Errorf("%w: CompositeFloor %v outside (0, 1)", ErrConfig, c.CompositeFloor)
	}
	return nil
}
