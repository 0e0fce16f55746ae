// Package voice scores prosody statistics of completed utterances.
//
// Unlike the per-tick scorers, voice runs once per utterance: upstream
// audio analysis hands over summary statistics (pitch, energy, speech
// ratio, pauses) and the scorer turns them into a 0..100 expressiveness
// score with coarse quality labels. The most recent assessment stands
// as the modality's current score between utterances.
//
// The scorer is not safe for concurrent use; callers serialize.
package voice

import (
	"math"
)

// Features are the per-utterance summary statistics from upstream
// prosody extraction.
type Features struct {
	// DurationSeconds is the utterance length. Non-positive durations
	// mark the whole utterance unusable.
	DurationSeconds float64 `json:"duration_seconds"`

	// PitchMean and PitchStd are the fundamental frequency mean and
	// standard deviation in Hz over voiced frames.
	PitchMean float64 `json:"pitch_mean"`
	PitchStd  float64 `json:"pitch_std"`

	// EnergyMean and EnergyStd summarize normalized 0..1 frame energy.
	EnergyMean float64 `json:"energy_mean"`
	EnergyStd  float64 `json:"energy_std"`

	// SpeechRatio is the voiced fraction of the utterance in 0..1.
	SpeechRatio float64 `json:"speech_ratio"`

	// PauseCount is the number of silent gaps detected upstream.
	PauseCount int `json:"pause_count"`
}

// Quality carries the coarse labels of one assessment.
type Quality struct {
	Pitch   string `json:"pitch"`
	Energy  string `json:"energy"`
	Fluency string `json:"fluency"`
	Pauses  string `json:"pauses"`
}

// Assessment is one utterance's scored outcome.
type Assessment struct {
	// Overall is the weighted 0..100 expressiveness score.
	Overall float64 `json:"overall"`

	// Pitch, Energy and Fluency are the 0..100 sub-scores.
	Pitch   float64 `json:"pitch"`
	Energy  float64 `json:"energy"`
	Fluency float64 `json:"fluency"`

	// Valid reports whether the features were usable.
	Valid bool `json:"valid"`

	Quality Quality `json:"quality"`
}

// Scorer scores utterances and keeps a bounded assessment history.
type Scorer struct {
	cfg     Config
	state   Assessment
	history []Assessment
}

// New builds a scorer from cfg.
func New(cfg Config) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{cfg: cfg}, nil
}

// Assess scores one completed utterance. Unusable features (non-positive
// duration, non-finite statistics) mark the modality invalid and leave
// the previous assessment and history untouched.
func (s *Scorer) Assess(f Features) Assessment {
	if !usable(f) {
		s.state.Valid = false
		return s.state
	}
	cfg := s.cfg

	pitch := clamp100(cfg.PitchAnchor + (f.PitchStd-cfg.PitchBaseStd)*cfg.PitchSlope)
	energy := clamp100(f.EnergyMean * 100)
	fluency := clamp100(f.SpeechRatio * 100)
	overall := cfg.PitchWeight*pitch + cfg.EnergyWeight*energy + cfg.FluencyWeight*fluency

	s.state = Assessment{
		Overall: overall,
		Pitch:   pitch,
		Energy:  energy,
		Fluency: fluency,
		Valid:   true,
		Quality: s.qualify(f),
	}

	s.history = append(s.history, s.state)
	if len(s.history) > cfg.HistorySize {
		s.history = s.history[1:]
	}
	return s.state
}

// State returns the most recent assessment.
func (s *Scorer) State() Assessment {
	return s.state
}

// History returns a copy of the kept assessments, oldest first.
func (s *Scorer) History() []Assessment {
	out := make([]Assessment, len(s.history))
	copy(out, s.history)
	return out
}

// Count returns how many utterances have been scored and kept.
func (s *Scorer) Count() int {
	return len(s.history)
}

// Reset clears the history and the current assessment.
func (s *Scorer) Reset() {
	s.history = nil
	s.state = Assessment{}
}

func (s *Scorer) qualify(f Features) Quality {
	cfg := s.cfg
	var q Quality

	switch {
	case f.PitchStd < cfg.PitchBaseStd:
		q.Pitch = "flat"
	case f.PitchStd > cfg.PitchRichStd:
		q.Pitch = "rich"
	default:
		q.Pitch = "moderate"
	}

	switch {
	case f.EnergyMean < cfg.EnergyLight:
		q.Energy = "light"
	case f.EnergyMean > cfg.EnergyLoud:
		q.Energy = "loud"
	default:
		q.Energy = "moderate"
	}

	switch {
	case f.SpeechRatio > cfg.FluentRatio:
		q.Fluency = "fluent"
	case f.SpeechRatio > cfg.MostlyFluentRatio:
		q.Fluency = "mostly fluent"
	default:
		q.Fluency = "hesitant"
	}

	perMinute := float64(f.PauseCount) / (f.DurationSeconds / 60)
	switch {
	case perMinute > cfg.FrequentPausesPerMinute:
		q.Pauses = "frequent"
	case perMinute > cfg.ModeratePausesPerMinute:
		q.Pauses = "moderate"
	default:
		q.Pauses = "few"
	}
	return q
}

func usable(f Features) bool {
	if f.DurationSeconds <= 0 || f.PauseCount < 0 {
		return false
	}
	for _, v := range []float64{
		f.DurationSeconds, f.PitchMean, f.PitchStd, f.EnergyMean, f.EnergyStd, f.SpeechRatio,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
