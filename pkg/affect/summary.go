package affect

import (
	"fmt"
	"strings"

	"github.com/huihuibuhui227-svg/JingXin/pkg/microexpr"
)

// Summary phrase thresholds. The dominant category is only worth naming
// when it owns more than half the evidence; the tension cutoffs mirror
// the tension scorer's medium and high bands.
const (
	summaryConfidenceGate = 0.5
	summaryTensionMedium  = 0.3
	summaryTensionHigh    = 0.6
)

// Summarize renders one tick's reading as a short phrase list. It folds
// in this tick's micro-events and the tension score, which are computed
// outside the rule table.
func Summarize(res Result, events []microexpr.Event, tension float64) string {
	parts := make([]string, 0, 4)

	if res.Dominant != Neutral && res.Confidence > summaryConfidenceGate {
		parts = append(parts, fmt.Sprintf("predominantly %s", res.Dominant))
	}

	if len(res.Composites) > 0 {
		names := make([]string, len(res.Composites))
		for i, c := range res.Composites {
			names[i] = string(c)
		}
		parts = append(parts, "signs of "+strings.Join(names, ", "))
	}

	switch {
	case len(events) == 1:
		parts = append(parts, fmt.Sprintf("micro-expression on %s", events[0].Channel))
	case len(events) > 1:
		parts = append(parts, fmt.Sprintf("%d micro-expressions", len(events)))
	}

	switch {
	case tension > summaryTensionHigh:
		parts = append(parts, "high tension")
	case tension > summaryTensionMedium:
		parts = append(parts, "moderate tension")
	}

	if len(parts) == 0 {
		return "neutral, relaxed"
	}
	return strings.Join(parts, "; ")
}
