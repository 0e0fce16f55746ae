package face

import (
	"math"
	"strings"
	"testing"

	"github.com/huihuibuhui227-svg/JingXin/pkg/affect"
	"github.com/huihuibuhui227-svg/JingXin/pkg/signal"
	"github.com/huihuibuhui227-svg/JingXin/pkg/tension"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func feed(a *Analyzer, ticks int, act signal.Activations) State {
	var st State
	for i := 0; i < ticks; i++ {
		st = a.Update(act)
	}
	return st
}

func TestFocusHighWhenSteady(t *testing.T) {
	a := newTestAnalyzer(t)

	st := feed(a, 10, signal.Activations{signal.HeadYaw: 0.01, signal.AvgEAR: 0.3})
	if !st.Valid {
		t.Fatal("state should be valid")
	}
	if st.Focus != 0.8 {
		t.Fatalf("focus = %v, want 0.8", st.Focus)
	}
	score, ok := a.ModalityScore()
	if !ok || math.Abs(score-80) > 1e-9 {
		t.Fatalf("ModalityScore = %v, %v, want 80, true", score, ok)
	}
}

func TestFocusDropsWhenLookingAway(t *testing.T) {
	a := newTestAnalyzer(t)

	st := feed(a, 5, signal.Activations{signal.HeadYaw: 0.2})
	if st.Focus != 0.3 {
		t.Fatalf("focus = %v, want 0.3", st.Focus)
	}
}

func TestBlinkRateCountsFallingEdges(t *testing.T) {
	a := newTestAnalyzer(t)

	var st State
	for i := 0; i < 30; i++ {
		ear := 0.3
		if i == 10 || i == 20 {
			ear = 0.1
		}
		st = a.Update(signal.Activations{signal.AvgEAR: ear})
	}

	// Two threshold crossings over exactly one second of samples.
	if math.Abs(st.BlinkRate-120) > 1e-9 {
		t.Fatalf("blink rate = %v, want 120", st.BlinkRate)
	}
	if st.Focus != 0.5 {
		t.Fatalf("focus = %v, want 0.5 once blinking is elevated", st.Focus)
	}
}

func TestEyeClosureStreak(t *testing.T) {
	a := newTestAnalyzer(t)

	st := feed(a, 15, signal.Activations{signal.AvgEAR: 0.1})
	if math.Abs(st.EyeClosedSeconds-0.5) > 1e-9 {
		t.Fatalf("closed seconds = %v, want 0.5", st.EyeClosedSeconds)
	}
	if math.Abs(st.Tension.Terms.EyeClosure-0.05) > 1e-9 {
		t.Fatalf("eye closure term = %v, want 0.05", st.Tension.Terms.EyeClosure)
	}

	st = a.Update(signal.Activations{signal.AvgEAR: 0.3})
	if st.EyeClosedSeconds != 0 {
		t.Fatalf("closed seconds = %v after eyes reopen, want 0", st.EyeClosedSeconds)
	}
}

func TestNoFaceKeepsPriorState(t *testing.T) {
	a := newTestAnalyzer(t)

	prior := feed(a, 3, signal.Activations{signal.Frown: 0.3, signal.MouthDown: 0.2})
	if prior.Affect.Dominant != affect.Sadness {
		t.Fatalf("dominant = %s, want sadness", prior.Affect.Dominant)
	}

	st := a.Update(nil)
	if st.Valid {
		t.Fatal("state should be invalid with no face")
	}
	if st.Affect.Dominant != prior.Affect.Dominant {
		t.Fatalf("dominant changed to %s on an empty tick", st.Affect.Dominant)
	}
	if st.Summary != prior.Summary {
		t.Fatal("summary changed on an empty tick")
	}
	if _, ok := a.ModalityScore(); ok {
		t.Fatal("modality score should be invalid with no face")
	}

	st = a.Update(signal.Activations{signal.Frown: 0.3, signal.MouthDown: 0.2})
	if !st.Valid {
		t.Fatal("state should recover on the next face")
	}
}

func TestBaselinesPublishedForMouthChannels(t *testing.T) {
	a := newTestAnalyzer(t)

	st := feed(a, 5, signal.Activations{
		signal.Smile:     0.4,
		signal.MouthOpen: 0.2,
		signal.Frown:     0.1,
	})

	if got := st.Baselines[signal.Smile]; math.Abs(got-0.4) > 1e-9 {
		t.Fatalf("smile baseline = %v, want 0.4", got)
	}
	if got := st.Baselines[signal.MouthOpen]; math.Abs(got-0.2) > 1e-9 {
		t.Fatalf("mouth open baseline = %v, want 0.2", got)
	}
	if _, ok := st.Baselines[signal.Frown]; ok {
		t.Fatal("frown is not a calibrated channel")
	}
}

func TestMicroEventSurfacesOnCompletion(t *testing.T) {
	a := newTestAnalyzer(t)

	feed(a, 14, signal.Activations{signal.Frown: 0.2})
	st := feed(a, 3, signal.Activations{signal.Frown: 0.25})
	if len(st.Events) != 0 {
		t.Fatalf("got %d events mid-burst, want 0", len(st.Events))
	}

	st = a.Update(signal.Activations{signal.Frown: 0.2})
	if len(st.Events) != 1 {
		t.Fatalf("got %d events on completion, want 1", len(st.Events))
	}
	ev := st.Events[0]
	if ev.Channel != "frown" {
		t.Fatalf("event channel = %q, want frown", ev.Channel)
	}
	if ev.DurationFrames != 3 {
		t.Fatalf("event duration = %d, want 3", ev.DurationFrames)
	}
	if math.Abs(ev.Intensity-0.25) > 1e-9 {
		t.Fatalf("event intensity = %v, want 0.25", ev.Intensity)
	}

	st = a.Update(signal.Activations{signal.Frown: 0.2})
	if len(st.Events) != 0 {
		t.Fatalf("got %d events after completion, want 0", len(st.Events))
	}
}

// TestGradualOnsetNarrative drives ten ticks of a slowly building frown,
// lowered mouth corners and compressed lips, and checks that the reading
// shifts from relaxed to a tense, sad picture.
func TestGradualOnsetNarrative(t *testing.T) {
	a := newTestAnalyzer(t)

	states := make([]State, 0, 10)
	for i := 1; i <= 10; i++ {
		st := a.Update(signal.Activations{
			signal.Frown:          float64(i) * 0.05,
			signal.MouthDown:      float64(i) * 0.03,
			signal.LipCompression: float64(i) * 0.028,
		})
		states = append(states, st)
	}

	for i := 0; i < 2; i++ {
		if states[i].Tension.Level != tension.LevelLow {
			t.Fatalf("tick %d tension = %s, want low", i+1, states[i].Tension.Level)
		}
	}

	last := states[9]
	if !last.Valid {
		t.Fatal("final state should be valid")
	}
	if last.Affect.Dominant != affect.Sadness {
		t.Fatalf("dominant = %s, want sadness", last.Affect.Dominant)
	}
	if last.Affect.Confidence <= 0.3 {
		t.Fatalf("confidence = %v, want > 0.3", last.Affect.Confidence)
	}
	if last.Tension.Level != tension.LevelMedium {
		t.Fatalf("tension = %s, want medium", last.Tension.Level)
	}
	if last.Tension.Score <= states[0].Tension.Score {
		t.Fatal("tension should grow with the expression")
	}
	if !strings.Contains(last.Summary, "moderate tension") {
		t.Fatalf("summary = %q, want moderate tension mentioned", last.Summary)
	}
	if len(last.Events) != 0 {
		t.Fatalf("got %d micro-events during a slow ramp, want 0", len(last.Events))
	}
	score, ok := a.ModalityScore()
	if !ok || math.Abs(score-80) > 1e-9 {
		t.Fatalf("ModalityScore = %v, %v, want 80, true", score, ok)
	}
}

func TestResetClearsDerivedState(t *testing.T) {
	a := newTestAnalyzer(t)

	feed(a, 15, signal.Activations{signal.AvgEAR: 0.1, signal.Smile: 0.4})
	a.Reset()

	if st := a.State(); st.Valid || st.Summary != "" {
		t.Fatalf("state after reset = %+v, want zero", st)
	}

	st := a.Update(signal.Activations{signal.AvgEAR: 0.3, signal.Frown: 0.5})
	if st.EyeClosedSeconds != 0 {
		t.Fatalf("closed seconds = %v after reset, want 0", st.EyeClosedSeconds)
	}
	if st.BlinkRate != 0 {
		t.Fatalf("blink rate = %v after reset, want 0", st.BlinkRate)
	}
	if len(st.Baselines) != 0 {
		t.Fatalf("baselines = %v after reset, want none", st.Baselines)
	}
}

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tick rate", func(c *Config) { c.TickRate = 0 }},
		{"zero window", func(c *Config) { c.WindowSeconds = 0 }},
		{"closed above blink", func(c *Config) { c.ClosedEAR = 0.25 }},
		{"yaw bands inverted", func(c *Config) { c.YawFocusTight = 0.1 }},
		{"focus bands inverted", func(c *Config) { c.FocusMid = 0.9 }},
		{"zero calm blink rate", func(c *Config) { c.CalmBlinkRate = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if _, err := New(cfg); err == nil {
				t.Fatal("expected config error")
			}
		})
	}
}

func TestComponentConfigBubbles(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad detector", func(c *Config) { c.Micro.MinSigma = 0 }},
		{"bad affect", func(c *Config) { c.Affect.CompositeFloor = 2 }},
		{"bad tension", func(c *Config) { c.Tension.FrownWeight = 0.5 }},
		{"bad baseline", func(c *Config) { c.Baseline.Window = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if _, err := New(cfg); err == nil {
				t.Fatal("expected component config error")
			}
		})
	}
}
