package affect

import (
	"math"

	"github.com/huihuibuhui227-svg/JingXin/pkg/history"
	"github.com/huihuibuhui227-svg/JingXin/pkg/signal"
)

// Inputs carries everything one scoring pass may look at.
type Inputs struct {
	// Activations is this tick's channel map. A channel missing from the
	// map never satisfies a rule gate; there is no implicit zero.
	Activations signal.Activations

	// Stats holds per-channel temporal statistics where enough history
	// has accumulated. Only trend-gated rules consult it.
	Stats map[signal.Channel]history.TemporalStats
}

// Result is one tick's scoring outcome.
type Result struct {
	// Scores is the normalized category simplex. Values sum to 1, or the
	// map is exactly {neutral: 1} when no rule fired.
	Scores map[Category]float64 `json:"scores"`

	// Dominant is the highest-scoring category, ties broken by canonical
	// enumeration order.
	Dominant Category `json:"dominant"`

	// Confidence is the dominant category's share of the simplex.
	Confidence float64 `json:"confidence"`

	// Composites lists non-basic categories whose normalized score
	// cleared the composite floor, in canonical order.
	Composites []Category `json:"composites,omitempty"`
}

// Scorer evaluates the rule table. It holds no per-tick state: Score is
// a pure function of its inputs and may be called from any goroutine.
type Scorer struct {
	cfg Config
}

// New builds a scorer, rejecting configs that would make the rule table
// meaningless.
func New(cfg Config) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{cfg: cfg}, nil
}

// Score runs every rule against the inputs and normalizes the outcome.
// Rules are independent: any number of them may fire on one tick.
func (s *Scorer) Score(in Inputs) Result {
	cfg := s.cfg
	act := in.Activations

	smile, hasSmile := act.Get(signal.Smile)
	cheek, hasCheek := act.Get(signal.CheekRaise)
	innerBrow, hasInnerBrow := act.Get(signal.InnerBrowRaise)
	outerBrow, hasOuterBrow := act.Get(signal.OuterBrowRaise)
	jawDrop, hasJawDrop := act.Get(signal.JawDrop)
	nose, hasNose := act.Get(signal.NoseWrinkle)
	upperLip, hasUpperLip := act.Get(signal.UpperLipRaise)
	frown, hasFrown := act.Get(signal.Frown)
	eyeSqueeze, hasEyeSqueeze := act.Get(signal.EyeSqueeze)
	mouthDown, hasMouthDown := act.Get(signal.MouthDown)
	headYaw, hasHeadYaw := act.Get(signal.HeadYaw)
	avgEAR, hasAvgEAR := act.Get(signal.AvgEAR)
	lipStretch, hasLipStretch := act.Get(signal.LipStretch)
	lipComp, hasLipComp := act.Get(signal.LipCompression)
	symmetry, hasSymmetry := act.Get(signal.Symmetry)

	raw := make(map[Category]float64)

	// Smile family. A raised cheek makes the smile genuine; without it
	// the same smile reads as polite.
	if hasSmile && smile > cfg.SmileGate {
		if hasCheek && cheek > cfg.CheekRaiseGate {
			raw[Happy] = math.Min((smile+cheek)/2, 1)
		} else {
			raw[PoliteSmile] = smile * cfg.PoliteSmileWeight
		}
	}

	// Surprise: either brow up plus a dropped jaw. An absent brow
	// contributes nothing to the mean.
	browUp := (hasInnerBrow && innerBrow > cfg.SurpriseBrowGate) ||
		(hasOuterBrow && outerBrow > cfg.SurpriseBrowGate)
	if browUp && hasJawDrop && jawDrop > cfg.SurpriseJawGate {
		raw[Surprise] = math.Min((innerBrow+outerBrow+jawDrop)/3, 1)
	}

	if hasNose && nose > cfg.DisgustNoseGate && hasUpperLip && upperLip > cfg.DisgustLipGate {
		raw[Disgust] = math.Min((nose+upperLip)/2, 1)
	}

	if hasFrown && frown > cfg.AngerFrownGate && hasEyeSqueeze && eyeSqueeze > cfg.AngerEyeGate {
		raw[Anger] = (frown + eyeSqueeze) / 2
	}

	// Sadness, with distress shadowing it at reduced weight.
	if hasFrown && frown > cfg.SadnessFrownGate && hasMouthDown && mouthDown > cfg.SadnessMouthGate {
		sad := (frown + mouthDown) / 2
		raw[Sadness] = sad
		raw[Distress] = sad * cfg.DistressWeight
	}

	// Fear shares the surprise shape but needs a much wider jaw and the
	// head turning away.
	fearBrow := (hasInnerBrow && innerBrow > cfg.FearBrowGate) ||
		(hasOuterBrow && outerBrow > cfg.FearBrowGate)
	if fearBrow && hasJawDrop && jawDrop > cfg.FearJawGate && hasHeadYaw && headYaw > cfg.FearYawGate {
		raw[Fear] = math.Min((innerBrow+outerBrow+jawDrop)/3, 1)
	}

	// Fatigue is the one rule keyed on a low value: drooping lids push
	// the eye aspect ratio down.
	if hasAvgEAR && avgEAR < cfg.FatigueEARGate {
		raw[Fatigue] = math.Min(1-avgEAR, 1)
	}

	if hasSmile && smile > cfg.SmileGate &&
		hasLipStretch && lipStretch > cfg.ForcedStretchGate &&
		hasLipComp && lipComp > cfg.LipCompressionGate {
		raw[ForcedSmile] = math.Min((smile+lipStretch+lipComp)/3, 1)
	}

	// Startled anxiety watches slopes, not levels.
	if innerStats, ok := in.Stats[signal.InnerBrowRaise]; ok {
		if frownStats, ok := in.Stats[signal.Frown]; ok {
			if innerStats.Trend > cfg.StartleTrendGate && frownStats.Trend > cfg.StartleTrendGate {
				raw[StartledAnxiety] = cfg.StartleScore
			}
		}
	}

	if hasFrown && frown > cfg.CognitiveFrownGate &&
		hasEyeSqueeze && eyeSqueeze > cfg.CognitiveEyeGate &&
		hasHeadYaw && headYaw < cfg.CognitiveYawGate {
		raw[CognitiveLoad] = math.Min((frown+eyeSqueeze)/2, 1)
	}

	if hasNose && nose > cfg.MoralNoseGate &&
		hasUpperLip && upperLip > cfg.MoralLipGate &&
		hasFrown && frown > cfg.MoralFrownGate {
		raw[MoralDisgust] = math.Min((nose+upperLip+frown)/3, 1)
	}

	// Contempt: a smile on an asymmetric face. Lower symmetry means a
	// more one-sided smile and a higher score.
	if hasSmile && smile > cfg.SmileGate && hasSymmetry && symmetry < cfg.ContemptSymmetryGate {
		raw[Contempt] = math.Min(smile*(1-symmetry), 1)
	}

	// Anxiety accumulates evidence term by term.
	anxiety := 0.0
	if hasFrown && frown > cfg.AnxietyFrownGate {
		anxiety += frown * cfg.AnxietyFrownWeight
	}
	if hasLipComp && lipComp > cfg.LipCompressionGate {
		anxiety += (lipComp - cfg.LipCompressionGate) * cfg.AnxietyCompressionWeight
	}
	if hasHeadYaw && headYaw < cfg.AnxietyYawGate {
		anxiety += cfg.AnxietyYawBoost
	}
	if anxiety > 0 {
		raw[Anxiety] = math.Min(anxiety, 1)
	}

	return s.normalize(raw)
}

// normalize turns raw rule outputs into the simplex and derives the
// dominant category, confidence and composite listing.
func (s *Scorer) normalize(raw map[Category]float64) Result {
	total := 0.0
	for _, v := range raw {
		total += v
	}
	if total <= 0 {
		return Result{
			Scores:     map[Category]float64{Neutral: 1},
			Dominant:   Neutral,
			Confidence: 1,
		}
	}

	scores := make(map[Category]float64, len(raw))
	for c, v := range raw {
		scores[c] = v / total
	}

	dominant := Neutral
	best := 0.0
	var composites []Category
	for _, c := range Categories {
		v, ok := scores[c]
		if !ok {
			continue
		}
		if v > best {
			best = v
			dominant = c
		}
		if !IsBasic(c) && v > s.cfg.CompositeFloor {
			composites = append(composites, c)
		}
	}

	return Result{
		Scores:     scores,
		Dominant:   dominant,
		Confidence: best,
		Composites: composites,
	}
}
