// Package fusion combines per-modality readiness scores into one
// overall estimate that degrades gracefully as modalities drop out.
//
// Each modality carries a configured weight. On every fuse, only the
// modalities that are currently valid participate, and the weights
// renormalize over that subset, so a lost camera or a silent
// microphone shifts influence to whatever is still tracked instead of
// dragging the estimate down.
package fusion

import "fmt"

// Modality names one input stream of the fusion engine.
type Modality string

const (
	ModalityFace      Modality = "face"
	ModalityHand      Modality = "hand"
	ModalityShoulder  Modality = "shoulder"
	ModalityArm       Modality = "arm"
	ModalityUpperBody Modality = "upper_body"
	ModalityVoice     Modality = "voice"
)

// Modalities enumerates the known modalities in reporting order.
var Modalities = []Modality{
	ModalityFace,
	ModalityHand,
	ModalityShoulder,
	ModalityArm,
	ModalityUpperBody,
	ModalityVoice,
}

// Sample is one modality's current 0..100 score and validity.
type Sample struct {
	Score float64 `json:"score"`
	Valid bool    `json:"valid"`
}

// Label is the coarse readiness band of a fused score.
type Label string

const (
	LabelVeryRelaxed     Label = "very relaxed"
	LabelRelaxed         Label = "relaxed"
	LabelNeutral         Label = "neutral"
	LabelSlightlyNervous Label = "slightly nervous"
	LabelNervous         Label = "nervous"
	LabelHighAnxiety     Label = "high anxiety"
)

// neutralScore stands in when no modality is valid.
const neutralScore = 50

var feedback = map[Label]string{
	LabelVeryRelaxed:     "You look very relaxed and in control. Keep it up.",
	LabelRelaxed:         "You come across calm and collected.",
	LabelNeutral:         "Steady overall. A little more expressiveness would help.",
	LabelSlightlyNervous: "Some nervousness is showing. Slow your breathing and loosen your shoulders.",
	LabelNervous:         "Clear signs of nervousness. Take a pause and reset your posture.",
	LabelHighAnxiety:     "Anxiety is dominating the picture. Stop, breathe, and restart when ready.",
}

// Result is one fused reading.
type Result struct {
	// Overall is the weighted score over the valid modalities, or 50
	// when none were valid.
	Overall float64 `json:"overall"`

	// Valid reports whether at least one modality contributed.
	Valid bool `json:"valid"`

	Label    Label  `json:"label"`
	Feedback string `json:"feedback"`

	// Contributing lists the modalities that entered the average, in
	// reporting order.
	Contributing []Modality `json:"contributing,omitempty"`
}

// Engine fuses modality samples under a fixed weight map and label
// bands. It is stateless after construction and safe for concurrent
// use.
type Engine struct {
	weights map[Modality]float64
	bands   Bands
}

// New builds an engine. The weight map must be non-empty, free of
// negative weights, and have a positive total. A zero cfg.Bands falls
// back to DefaultBands; anything else must strictly descend.
func New(cfg Config) (*Engine, error) {
	if len(cfg.Weights) == 0 {
		return nil, ErrNoWeights
	}
	total := 0.0
	for m, w := range cfg.Weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: %s = %v", ErrBadWeight, m, w)
		}
		total += w
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: weights sum to %v", ErrBadWeight, total)
	}

	bands := cfg.Bands
	if bands == (Bands{}) {
		bands = DefaultBands()
	}
	if !bands.descending() {
		return nil, fmt.Errorf("%w: %+v", ErrBadBands, bands)
	}

	own := make(map[Modality]float64, len(cfg.Weights))
	for m, w := range cfg.Weights {
		own[m] = w
	}
	return &Engine{weights: own, bands: bands}, nil
}

// GestureWeights is the stock weight set for the gesture-only fuse of
// hands and shoulders.
func GestureWeights() map[Modality]float64 {
	return map[Modality]float64{
		ModalityHand:     0.6,
		ModalityShoulder: 0.4,
	}
}

// SessionWeights is the stock weight set for the full per-tick fuse.
func SessionWeights() map[Modality]float64 {
	return map[Modality]float64{
		ModalityFace:     0.3,
		ModalityHand:     0.4,
		ModalityShoulder: 0.3,
	}
}

// Fuse combines the valid samples into one reading. Weighted modalities
// missing from samples, and samples marked invalid, simply do not
// participate.
func (e *Engine) Fuse(samples map[Modality]Sample) Result {
	weighted := 0.0
	total := 0.0
	var contributing []Modality

	for _, m := range Modalities {
		w, ok := e.weights[m]
		if !ok || w == 0 {
			continue
		}
		sample, ok := samples[m]
		if !ok || !sample.Valid {
			continue
		}
		weighted += w * sample.Score
		total += w
		contributing = append(contributing, m)
	}

	if total == 0 {
		label := e.bands.Label(neutralScore)
		return Result{
			Overall:  neutralScore,
			Valid:    false,
			Label:    label,
			Feedback: feedback[label],
		}
	}

	overall := weighted / total
	label := e.bands.Label(overall)
	return Result{
		Overall:      overall,
		Valid:        true,
		Label:        label,
		Feedback:     feedback[label],
		Contributing: contributing,
	}
}
