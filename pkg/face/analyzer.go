// Package face runs the per-tick face pipeline of one session: rest
// baselines, temporal statistics, micro-expression detection, affect
// and tension scoring, and blink/focus tracking.
//
// The analyzer owns one of everything per session. It expects the
// activation map to be validated upstream and is not safe for
// concurrent use; callers serialize.
package face

import (
	"fmt"
	"math"

	"github.com/huihuibuhui227-svg/JingXin/pkg/affect"
	"github.com/huihuibuhui227-svg/JingXin/pkg/baseline"
	"github.com/huihuibuhui227-svg/JingXin/pkg/history"
	"github.com/huihuibuhui227-svg/JingXin/pkg/microexpr"
	"github.com/huihuibuhui227-svg/JingXin/pkg/signal"
	"github.com/huihuibuhui227-svg/JingXin/pkg/tension"
)

// baselineChannels are the mouth-geometry channels whose resting level
// is learned per session and published alongside the raw activations.
var baselineChannels = []signal.Channel{
	signal.Smile,
	signal.MouthDown,
	signal.LipStretch,
	signal.LipCompression,
	signal.MouthOpen,
	signal.JawDrop,
}

// State is the face portion of one tick's record.
type State struct {
	// Activations is this tick's validated channel snapshot.
	Activations signal.Activations `json:"activations,omitempty"`

	// Baselines holds the learned resting level per calibrated channel.
	Baselines map[signal.Channel]float64 `json:"baselines,omitempty"`

	// Stats carries temporal statistics for channels with enough
	// history, keyed like Activations.
	Stats map[signal.Channel]history.TemporalStats `json:"stats,omitempty"`

	// Events lists the micro-expressions that completed this tick.
	Events []microexpr.Event `json:"events,omitempty"`

	// Affect is the normalized category simplex with its derivations.
	Affect affect.Result `json:"affect"`

	// Tension is the strain reading with its audit terms.
	Tension tension.Result `json:"tension"`

	// Summary is the templated one-line reading of this tick.
	Summary string `json:"summary"`

	// BlinkRate is blinks per minute extrapolated from the EAR ring.
	BlinkRate float64 `json:"blink_rate"`

	// EyeClosedSeconds is the current continuous eyes-closed streak.
	EyeClosedSeconds float64 `json:"eye_closed_seconds"`

	// Focus is the 0..1 attentiveness estimate; focus times 100 is the
	// face's modality score.
	Focus float64 `json:"focus"`

	// Valid reports whether a face was analyzed this tick.
	Valid bool `json:"valid"`
}

// Analyzer is one session's face pipeline.
type Analyzer struct {
	cfg Config

	baselines     map[signal.Channel]*baseline.Calibrator
	window        *history.Window
	micro         *microexpr.Detector
	affectScorer  *affect.Scorer
	tensionScorer *tension.Scorer

	ear           *history.Ring
	closedSeconds float64

	state State
}

// New builds an analyzer and all the components it owns.
func New(cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	window, err := history.NewWindow(int(cfg.WindowSeconds * cfg.TickRate))
	if err != nil {
		return nil, fmt.Errorf("face: history window: %w", err)
	}
	micro, err := microexpr.New(cfg.Micro)
	if err != nil {
		return nil, err
	}
	affectScorer, err := affect.New(cfg.Affect)
	if err != nil {
		return nil, err
	}
	tensionScorer, err := tension.New(cfg.Tension)
	if err != nil {
		return nil, err
	}
	ear, err := history.NewRing(int(cfg.EARWindowSeconds * cfg.TickRate))
	if err != nil {
		return nil, fmt.Errorf("face: blink ring: %w", err)
	}

	bases := make(map[signal.Channel]*baseline.Calibrator, len(baselineChannels))
	for _, ch := range baselineChannels {
		cal, err := baseline.New(cfg.Baseline)
		if err != nil {
			return nil, err
		}
		bases[ch] = cal
	}

	return &Analyzer{
		cfg:           cfg,
		baselines:     bases,
		window:        window,
		micro:         micro,
		affectScorer:  affectScorer,
		tensionScorer: tensionScorer,
		ear:           ear,
	}, nil
}

// Update runs one tick. An empty activation map means no face was
// detected: the state is marked invalid and nothing else changes.
func (a *Analyzer) Update(act signal.Activations) State {
	if len(act) == 0 {
		a.state.Valid = false
		return a.state
	}

	for ch, v := range act {
		a.window.Push(string(ch), v)
		if cal, ok := a.baselines[ch]; ok {
			cal.Observe(v)
		}
	}

	var events []microexpr.Event
	for _, ch := range a.micro.Monitored() {
		v, ok := act.Get(signal.Channel(ch))
		if !ok {
			continue
		}
		if ev, fired := a.micro.Observe(ch, v); fired {
			events = append(events, ev)
		}
	}

	stats := make(map[signal.Channel]history.TemporalStats)
	for ch := range act {
		if st, ok := a.window.Stats(string(ch)); ok {
			stats[ch] = st
		}
	}

	if ear, ok := act.Get(signal.AvgEAR); ok {
		a.ear.Push(ear)
		if ear < a.cfg.ClosedEAR {
			a.closedSeconds += 1 / a.cfg.TickRate
		} else {
			a.closedSeconds = 0
		}
	}
	blinkRate := a.blinkRate()

	res := a.affectScorer.Score(affect.Inputs{Activations: act, Stats: stats})

	frown, _ := act.Get(signal.Frown)
	lipComp, _ := act.Get(signal.LipCompression)
	asym, _ := act.Get(signal.GazeAsymmetry)
	tens := a.tensionScorer.Score(tension.Inputs{
		Frown:             clamp01(frown),
		LipCompression:    clamp01(lipComp),
		EyeClosureSeconds: a.closedSeconds,
		Volatility:        clamp01(stats[signal.Smile].Volatility),
		Asymmetry:         clamp01(asym),
		Categories:        res.Scores,
	})

	yaw, _ := act.Get(signal.HeadYaw)

	bases := make(map[signal.Channel]float64, len(a.baselines))
	for ch, cal := range a.baselines {
		if cal.Ticks() > 0 {
			bases[ch] = cal.Value()
		}
	}

	a.state = State{
		Activations:      act.Clone(),
		Baselines:        bases,
		Stats:            stats,
		Events:           events,
		Affect:           res,
		Tension:          tens,
		Summary:          affect.Summarize(res, events, tens.Score),
		BlinkRate:        blinkRate,
		EyeClosedSeconds: a.closedSeconds,
		Focus:            a.focus(yaw, blinkRate),
		Valid:            true,
	}
	return a.state
}

// State returns the most recent tick's face portion.
func (a *Analyzer) State() State {
	return a.state
}

// ModalityScore is the face's contribution to fusion: focus scaled to
// 0..100, valid only when a face was analyzed this tick.
func (a *Analyzer) ModalityScore() (float64, bool) {
	return a.state.Focus * 100, a.state.Valid
}

// Reset clears history, baselines, blink tracking and the current
// state together.
func (a *Analyzer) Reset() {
	a.window.Reset()
	a.micro.Reset()
	a.ear.Reset()
	a.closedSeconds = 0
	for _, cal := range a.baselines {
		cal.Reset()
	}
	a.state = State{}
}

// blinkRate counts falling-edge crossings of the blink threshold over
// the EAR ring, extrapolated to blinks per minute.
func (a *Analyzer) blinkRate() float64 {
	values := a.ear.Values()
	if len(values) < 2 {
		return 0
	}
	blinks := 0
	for i := 1; i < len(values); i++ {
		if values[i-1] >= a.cfg.BlinkEAR && values[i] < a.cfg.BlinkEAR {
			blinks++
		}
	}
	span := float64(len(values)) / a.cfg.TickRate
	return float64(blinks) * 60 / span
}

// focus bands head yaw and blink rate into an attentiveness level.
func (a *Analyzer) focus(yaw, blinkRate float64) float64 {
	abs := math.Abs(yaw)
	switch {
	case abs < a.cfg.YawFocusTight && blinkRate < a.cfg.CalmBlinkRate:
		return a.cfg.FocusHigh
	case abs > a.cfg.YawFocusLoose:
		return a.cfg.FocusLow
	default:
		return a.cfg.FocusMid
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
