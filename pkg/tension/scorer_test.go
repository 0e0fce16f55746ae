package tension

import (
	"math"
	"testing"

	"github.com/huihuibuhui227-svg/JingXin/pkg/affect"
)

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	s, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestFrownAloneScoresItsWeight(t *testing.T) {
	s := newTestScorer(t)

	res := s.Score(Inputs{Frown: 1})
	if math.Abs(res.Score-0.30) > 1e-9 {
		t.Errorf("score = %v, want 0.30", res.Score)
	}
	if math.Abs(res.Terms.BrowFurrow-0.30) > 1e-9 {
		t.Errorf("brow furrow term = %v, want 0.30", res.Terms.BrowFurrow)
	}
}

func TestTermsSumToScoreWithoutBoost(t *testing.T) {
	s := newTestScorer(t)

	res := s.Score(Inputs{
		Frown:             0.4,
		LipCompression:    0.6,
		EyeClosureSeconds: 1.0,
		Volatility:        0.2,
		Asymmetry:         0.1,
	})

	sum := res.Terms.BrowFurrow + res.Terms.LipCompression + res.Terms.EyeClosure +
		res.Terms.Instability + res.Terms.Asymmetry
	if math.Abs(sum-res.Score) > 1e-9 {
		t.Errorf("terms sum to %v, score is %v", sum, res.Score)
	}
	if res.Terms.EmotionalInfluence != 0 {
		t.Errorf("emotional influence = %v without categories", res.Terms.EmotionalInfluence)
	}
}

func TestClosureNormalization(t *testing.T) {
	s := newTestScorer(t)

	// One second is half the saturation window.
	res := s.Score(Inputs{EyeClosureSeconds: 1.0})
	if math.Abs(res.Terms.EyeClosure-0.10) > 1e-9 {
		t.Errorf("closure term at 1s = %v, want 0.10", res.Terms.EyeClosure)
	}

	// Far beyond saturation the term caps at its full weight.
	res = s.Score(Inputs{EyeClosureSeconds: 30.0})
	if math.Abs(res.Terms.EyeClosure-0.20) > 1e-9 {
		t.Errorf("closure term at 30s = %v, want 0.20", res.Terms.EyeClosure)
	}
}

func TestBoostUsesStrongestCategory(t *testing.T) {
	s := newTestScorer(t)

	res := s.Score(Inputs{
		Frown: 0.5,
		Categories: map[affect.Category]float64{
			affect.Anxiety: 0.2,
			affect.Anger:   0.9,
			affect.Happy:   1.0, // not a boost category
		},
	})

	want := 0.30*0.5 + 0.3*0.9
	if math.Abs(res.Score-want) > 1e-9 {
		t.Errorf("score = %v, want %v", res.Score, want)
	}
	if math.Abs(res.Terms.EmotionalInfluence-0.27) > 1e-9 {
		t.Errorf("emotional influence = %v, want 0.27", res.Terms.EmotionalInfluence)
	}
}

func TestScoreCapsAtOne(t *testing.T) {
	s := newTestScorer(t)

	res := s.Score(Inputs{
		Frown:             1,
		LipCompression:    1,
		EyeClosureSeconds: 10,
		Volatility:        1,
		Asymmetry:         1,
		Categories:        map[affect.Category]float64{affect.Fear: 1},
	})
	if res.Score > 1 {
		t.Errorf("score = %v, want <= 1", res.Score)
	}
	if res.Level != LevelHigh {
		t.Errorf("level = %q, want high", res.Level)
	}
}

func TestLevelBandsClosedLower(t *testing.T) {
	s := newTestScorer(t)

	cases := []struct {
		score float64
		want  Level
	}{
		{0.0, LevelLow},
		{0.29, LevelLow},
		{0.3, LevelMedium},
		{0.59, LevelMedium},
		{0.6, LevelHigh},
		{1.0, LevelHigh},
	}
	for _, tc := range cases {
		if got := s.level(tc.score); got != tc.want {
			t.Errorf("level(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"weights do not sum to one", func(c *Config) { c.FrownWeight = 0.5 }},
		{"negative weight", func(c *Config) { c.FrownWeight = -0.3; c.CompressionWeight = 0.85 }},
		{"negative boost", func(c *Config) { c.BoostWeight = -0.1 }},
		{"zero closure window", func(c *Config) { c.ClosureFullSeconds = 0 }},
		{"inverted bands", func(c *Config) { c.MediumBand = 0.7 }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		if _, err := New(cfg); err == nil {
			t.Errorf("%s: New accepted invalid config", tc.name)
		}
	}
}
