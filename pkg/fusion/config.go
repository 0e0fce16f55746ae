package fusion

// Config tunes one engine: which modalities participate, at what
// weight, and where the label boundaries sit.
type Config struct {
	// Weights selects and weights the fused modalities. Modalities
	// missing from the map, or mapped to zero, never contribute.
	Weights map[Modality]float64

	// Bands sets the label boundaries. The zero value means
	// DefaultBands.
	Bands Bands
}

// DefaultConfig fuses face, hand and shoulder under the stock weights
// and the stock label bands.
func DefaultConfig() Config {
	return Config{
		Weights: SessionWeights(),
		Bands:   DefaultBands(),
	}
}

// Bands holds the lower score bound of each label above high anxiety.
// A score maps to the first band whose bound it reaches, checked high
// to low; anything below Nervous reads as high anxiety. Bounds must
// strictly descend.
type Bands struct {
	VeryRelaxed     float64
	Relaxed         float64
	Neutral         float64
	SlightlyNervous float64
	Nervous         float64
}

// DefaultBands returns the stock label boundaries.
func DefaultBands() Bands {
	return Bands{
		VeryRelaxed:     80,
		Relaxed:         65,
		Neutral:         50,
		SlightlyNervous: 35,
		Nervous:         20,
	}
}

// Label maps a score to its band, evaluated high to low.
func (b Bands) Label(score float64) Label {
	switch {
	case score >= b.VeryRelaxed:
		return LabelVeryRelaxed
	case score >= b.Relaxed:
		return LabelRelaxed
	case score >= b.Neutral:
		return LabelNeutral
	case score >= b.SlightlyNervous:
		return LabelSlightlyNervous
	case score >= b.Nervous:
		return LabelNervous
	default:
		return LabelHighAnxiety
	}
}

func (b Bands) descending() bool {
	return b.VeryRelaxed > b.Relaxed &&
		b.Relaxed > b.Neutral &&
		b.Neutral > b.SlightlyNervous &&
		b.SlightlyNervous > b.Nervous
}
