package posture

import (
	"math"

	"github.com/huihuibuhui227-svg/JingXin/pkg/signal"
)

// UpperBodyState is the head-and-torso reading.
type UpperBodyState struct {
	// Score is the modality score, the mean of head and torso scores.
	Score float64 `json:"score"`

	// Valid reports whether the last update carried usable landmarks.
	Valid bool `json:"valid"`

	// HeadScore and TorsoScore are the per-part scores in [0, 100].
	HeadScore  float64 `json:"head_score"`
	TorsoScore float64 `json:"torso_score"`

	// HeadTilt is the ear-line tilt off horizontal in degrees.
	HeadTilt float64 `json:"head_tilt"`
}

// UpperBody scores head and torso steadiness. The head is tracked at
// the nose, the torso at the shoulder midpoint, and the ear line adds a
// tilt penalty.
type UpperBody struct {
	cfg   Config
	head  *pointRing
	torso *pointRing
	state UpperBodyState
}

// NewUpperBody builds an upper-body scorer.
func NewUpperBody(cfg Config) (*UpperBody, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	head, err := newPointRing(cfg.RingCapacity)
	if err != nil {
		return nil, err
	}
	torso, err := newPointRing(cfg.RingCapacity)
	if err != nil {
		return nil, err
	}
	return &UpperBody{cfg: cfg, head: head, torso: torso}, nil
}

// Update scores one tick of pose landmarks. A pose with fewer than the
// full 33 points marks the modality invalid and leaves ring state
// untouched.
func (u *UpperBody) Update(pose []signal.Point) UpperBodyState {
	if len(pose) < signal.PoseLandmarks {
		u.state.Valid = false
		return u.state
	}

	u.head.push(pose[poseNose])

	l := pose[poseLeftShoulder]
	r := pose[poseRightShoulder]
	u.torso.push(signal.Point{X: (l.X + r.X) / 2, Y: (l.Y + r.Y) / 2, Z: (l.Z + r.Z) / 2})

	tilt := earLineTilt(pose[poseLeftEar], pose[poseRightEar])
	tiltPenalty := 0.0
	switch {
	case tilt <= u.cfg.TiltSoftLimit:
	case tilt <= u.cfg.TiltHardLimit:
		tiltPenalty = u.cfg.TiltSoftPenalty
	default:
		tiltPenalty = u.cfg.TiltHardPenalty
	}

	headJitter := u.head.jitter()
	headScore := clampScore(u.cfg.BaseScore - headJitter*u.cfg.BodyJitterScale - tiltPenalty)

	torsoJitter := u.torso.jitter()
	torsoStability := 1 - torsoJitter*u.cfg.BodyJitterScale/100
	if torsoStability < 0 {
		torsoStability = 0
	}
	torsoScore := clampScore(u.cfg.BaseScore - torsoJitter*u.cfg.BodyJitterScale + torsoStability*u.cfg.StabilityBonus)

	u.state = UpperBodyState{
		Score:      (headScore + torsoScore) / 2,
		Valid:      true,
		HeadScore:  headScore,
		TorsoScore: torsoScore,
		HeadTilt:   tilt,
	}
	return u.state
}

// State returns the most recent reading.
func (u *UpperBody) State() UpperBodyState {
	return u.state
}

// Reset clears ring state and the current reading.
func (u *UpperBody) Reset() {
	u.head.reset()
	u.torso.reset()
	u.state = UpperBodyState{}
}

// earLineTilt is the ear-to-ear line's tilt off horizontal in degrees,
// folded into [0, 90] so the ear ordering cannot flip the reading.
func earLineTilt(left, right signal.Point) float64 {
	angle := math.Abs(math.Atan2(right.Y-left.Y, right.X-left.X) * 180 / math.Pi)
	if angle > 90 {
		angle = 180 - angle
	}
	return angle
}
