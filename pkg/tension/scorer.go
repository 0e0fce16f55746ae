// Package tension condenses a handful of strain-related channels into a
// single [0,1] tension scalar with a coarse level label.
//
// The score is a fixed-weight linear combination, optionally boosted by
// the strongest negative category from the affect simplex. Every
// weighted sub-term is reported so a reading can be audited after the
// fact.
package tension

import (
	"math"

	"github.com/huihuibuhui227-svg/JingXin/pkg/affect"
)

// Level is the coarse tension band.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Inputs carries one tick's tension evidence. Frown, LipCompression,
// Volatility and Asymmetry are expected in [0,1]; the caller clamps.
// Missing channels are passed as zero, which simply contributes nothing
// to the score.
type Inputs struct {
	Frown          float64
	LipCompression float64

	// EyeClosureSeconds is the current continuous eyes-closed streak in
	// seconds. It is normalized against Config.ClosureFullSeconds.
	EyeClosureSeconds float64

	// Volatility is an instability statistic, conventionally the smile
	// channel's short-window standard deviation.
	Volatility float64

	// Asymmetry is the gaze or expression asymmetry channel.
	Asymmetry float64

	// Categories is the current normalized affect simplex, or nil when
	// no affect scoring ran this tick.
	Categories map[affect.Category]float64
}

// Terms breaks the score into its weighted contributions.
type Terms struct {
	BrowFurrow         float64 `json:"brow_furrow"`
	LipCompression     float64 `json:"lip_compression"`
	EyeClosure         float64 `json:"eye_closure"`
	Instability        float64 `json:"instability"`
	EmotionalInfluence float64 `json:"emotional_influence"`
	Asymmetry          float64 `json:"asymmetry"`
}

// Result is one tick's tension reading.
type Result struct {
	Score float64 `json:"score"`
	Level Level   `json:"level"`
	Terms Terms   `json:"terms"`
}

// Scorer computes tension readings. It is stateless and safe for
// concurrent use.
type Scorer struct {
	cfg Config
}

// New builds a scorer from cfg.
func New(cfg Config) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{cfg: cfg}, nil
}

// boostCategories are the affect categories that can push tension up.
var boostCategories = []affect.Category{
	affect.Anxiety,
	affect.Anger,
	affect.Fear,
	affect.MoralDisgust,
}

// Score combines the inputs into a tension reading.
func (s *Scorer) Score(in Inputs) Result {
	cfg := s.cfg

	closure := math.Min(in.EyeClosureSeconds/cfg.ClosureFullSeconds, 1)

	terms := Terms{
		BrowFurrow:     cfg.FrownWeight * in.Frown,
		LipCompression: cfg.CompressionWeight * in.LipCompression,
		EyeClosure:     cfg.ClosureWeight * closure,
		Instability:    cfg.VolatilityWeight * in.Volatility,
		Asymmetry:      cfg.AsymmetryWeight * in.Asymmetry,
	}
	base := terms.BrowFurrow + terms.LipCompression + terms.EyeClosure +
		terms.Instability + terms.Asymmetry

	if len(in.Categories) > 0 {
		boost := 0.0
		for _, c := range boostCategories {
			if v := in.Categories[c]; v > boost {
				boost = v
			}
		}
		terms.EmotionalInfluence = cfg.BoostWeight * boost
		base = math.Min(base+terms.EmotionalInfluence, 1)
	}

	score := math.Min(base, 1)
	return Result{Score: score, Level: s.level(score), Terms: terms}
}

func (s *Scorer) level(score float64) Level {
	switch {
	case score < s.cfg.MediumBand:
		return LevelLow
	case score < s.cfg.HighBand:
		return LevelMedium
	default:
		return LevelHigh
	}
}
