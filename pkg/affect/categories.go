// Package affect scores a tick's activation channels against a fixed
// catalogue of affect categories.
//
// Each category has an independent threshold-gated rule. Rules are not
// mutually exclusive: every rule whose gate holds contributes a raw score,
// and the raw scores are then normalized into a relative-evidence simplex.
// The scores are not calibrated probabilities.
package affect

// Category identifies one entry of the affect catalogue.
type Category string

const (
	Happy    Category = "happy"
	Sadness  Category = "sadness"
	Anger    Category = "anger"
	Fear     Category = "fear"
	Surprise Category = "surprise"
	Disgust  Category = "disgust"
	Contempt Category = "contempt"
	Anxiety  Category = "anxiety"
	Fatigue  Category = "fatigue"

	// PoliteSmile is a smile without the cheek raise that marks genuine joy.
	PoliteSmile Category = "polite_smile"

	// Distress shadows sadness at reduced weight whenever sadness fires.
	Distress Category = "distress"

	// ForcedSmile is a smile held together with visible lip tension.
	ForcedSmile Category = "forced_smile"

	// StartledAnxiety fires on a simultaneous upward trend of inner brow
	// and frown rather than on instantaneous levels.
	StartledAnxiety Category = "startled_anxiety"

	// CognitiveLoad combines a working frown with eye squeeze and an
	// averted head.
	CognitiveLoad Category = "cognitive_load"

	// MoralDisgust is the disgust pattern with a strong frown on top.
	MoralDisgust Category = "moral_disgust"

	// Neutral is the degenerate fallback when no rule fires at all. It is
	// never produced alongside other categories.
	Neutral Category = "neutral"
)

// Categories enumerates every rule-backed category in canonical order.
// The order is load-bearing: dominant-category ties resolve to the
// earliest entry, and composite listings follow it.
var Categories = []Category{
	Happy,
	Sadness,
	Anger,
	Fear,
	Surprise,
	Disgust,
	Contempt,
	Anxiety,
	Fatigue,
	PoliteSmile,
	Distress,
	ForcedSmile,
	StartledAnxiety,
	CognitiveLoad,
	MoralDisgust,
}

// basicSix holds the classic six. Categories outside this set count as
// composite signals when they carry enough normalized weight.
var basicSix = map[Category]bool{
	Happy:    true,
	Sadness:  true,
	Anger:    true,
	Fear:     true,
	Surprise: true,
	Disgust:  true,
}

// IsBasic reports whether c is one of the six basic categories.
func IsBasic(c Category) bool {
	return basicSix[c]
}
