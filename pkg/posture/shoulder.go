package posture

import (
	"github.com/huihuibuhui227-svg/JingXin/pkg/baseline"
	"github.com/huihuibuhui227-svg/JingXin/pkg/signal"
)

// Pose landmark indices of the 33-point convention used here.
const (
	poseNose          = 0
	poseLeftEar       = 7
	poseRightEar      = 8
	poseLeftShoulder  = 11
	poseRightShoulder = 12
)

// ShoulderState is the shoulder pair's current reading.
type ShoulderState struct {
	// Score is the steadiness score in [0, 100].
	Score float64 `json:"score"`

	// Valid reports whether the last update carried usable landmarks.
	Valid bool `json:"valid"`

	// Shrug is the 0..1 rise above the calibrated resting height.
	Shrug float64 `json:"shrug"`

	// Jitter is the mean positional spread of both shoulders.
	Jitter float64 `json:"jitter"`

	// Calibrated reports whether the resting-height baseline is frozen.
	Calibrated bool `json:"calibrated"`
}

// Shoulder scores the shoulder pair: positional jitter plus a shrug
// penalty once the resting height has been learned.
type Shoulder struct {
	cfg      Config
	left     *pointRing
	right    *pointRing
	baseline *baseline.Calibrator
	state    ShoulderState
}

// NewShoulder builds a shoulder scorer.
func NewShoulder(cfg Config) (*Shoulder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	left, err := newPointRing(cfg.RingCapacity)
	if err != nil {
		return nil, err
	}
	right, err := newPointRing(cfg.RingCapacity)
	if err != nil {
		return nil, err
	}
	cal, err := baseline.New(baseline.ShoulderConfig())
	if err != nil {
		return nil, err
	}
	return &Shoulder{cfg: cfg, left: left, right: right, baseline: cal}, nil
}

// Update scores one tick of pose landmarks. A pose with fewer than the
// full 33 points marks the modality invalid and leaves ring and
// baseline state untouched.
func (s *Shoulder) Update(pose []signal.Point) ShoulderState {
	if len(pose) < signal.PoseLandmarks {
		s.state.Valid = false
		return s.state
	}

	l := pose[poseLeftShoulder]
	r := pose[poseRightShoulder]
	s.left.push(l)
	s.right.push(r)
	jitter := (s.left.jitter() + s.right.jitter()) / 2

	// Image coordinates grow downward, so a shrug shows up as the mean
	// shoulder y dropping below the learned resting value.
	height := (l.Y + r.Y) / 2
	s.baseline.Observe(height)

	shrug := 0.0
	if s.baseline.IsCalibrated() {
		if rise := s.baseline.Value() - height; rise > 0 {
			if rise > s.cfg.ShrugFullRise {
				rise = s.cfg.ShrugFullRise
			}
			shrug = rise / s.cfg.ShrugFullRise
		}
	}

	score := s.cfg.BaseScore - jitter*s.cfg.ShoulderJitterScale - shrug*s.cfg.ShrugPenalty

	s.state = ShoulderState{
		Score:      clampScore(score),
		Valid:      true,
		Shrug:      shrug,
		Jitter:     jitter,
		Calibrated: s.baseline.IsCalibrated(),
	}
	return s.state
}

// State returns the most recent reading.
func (s *Shoulder) State() ShoulderState {
	return s.state
}

// IsCalibrated reports whether the resting-height baseline is frozen.
func (s *Shoulder) IsCalibrated() bool {
	return s.baseline.IsCalibrated()
}

// Reset clears rings, baseline and the current reading.
func (s *Shoulder) Reset() {
	s.left.reset()
	s.right.reset()
	s.baseline.Reset()
	s.state = ShoulderState{}
}
