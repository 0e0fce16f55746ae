package posture

import (
	"fmt"
	"math"

	"github.com/huihuibuhui227-svg/JingXin/pkg/signal"
)

// Side names an arm.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// ArmState is one arm's current reading.
type ArmState struct {
	// Score is the steadiness score in [0, 100].
	Score float64 `json:"score"`

	// Valid reports whether the last update carried usable landmarks.
	Valid bool `json:"valid"`

	// ElbowAngle is the turn between upper and lower arm in degrees.
	ElbowAngle float64 `json:"elbow_angle"`

	// Stability is 1 minus the scaled jitter, floored at 0.
	Stability float64 `json:"stability"`

	// Jitter is the mean positional spread across the three joints.
	Jitter float64 `json:"jitter"`
}

// Arm scores one arm from its shoulder, elbow and wrist landmarks.
// A comfortable elbow bend earns a bonus on top of steadiness.
type Arm struct {
	cfg  Config
	side Side

	wristIdx    int
	elbowIdx    int
	shoulderIdx int

	wrist    *pointRing
	elbow    *pointRing
	shoulder *pointRing

	state ArmState
}

// NewArm builds a scorer for the given side.
func NewArm(side Side, cfg Config) (*Arm, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Arm{cfg: cfg, side: side}
	switch side {
	case SideLeft:
		a.wristIdx, a.elbowIdx, a.shoulderIdx = 15, 13, 11
	case SideRight:
		a.wristIdx, a.elbowIdx, a.shoulderIdx = 16, 14, 12
	default:
		return nil, fmt.Errorf("%w: %q", ErrSide, side)
	}

	var err error
	if a.wrist, err = newPointRing(cfg.RingCapacity); err != nil {
		return nil, err
	}
	if a.elbow, err = newPointRing(cfg.RingCapacity); err != nil {
		return nil, err
	}
	if a.shoulder, err = newPointRing(cfg.RingCapacity); err != nil {
		return nil, err
	}
	return a, nil
}

// Side returns the arm this scorer tracks.
func (a *Arm) Side() Side {
	return a.side
}

// Update scores one tick of pose landmarks. A pose with fewer than the
// full 33 points marks the arm invalid and leaves ring state untouched.
func (a *Arm) Update(pose []signal.Point) ArmState {
	if len(pose) < signal.PoseLandmarks {
		a.state.Valid = false
		return a.state
	}

	wrist := pose[a.wristIdx]
	elbow := pose[a.elbowIdx]
	shoulder := pose[a.shoulderIdx]

	a.wrist.push(wrist)
	a.elbow.push(elbow)
	a.shoulder.push(shoulder)
	jitter := (a.wrist.jitter() + a.elbow.jitter() + a.shoulder.jitter()) / 3

	angle := elbowAngle(shoulder, elbow, wrist)

	bonus := 0.0
	switch {
	case angle >= a.cfg.IdealElbowLow && angle <= a.cfg.IdealElbowHigh:
		bonus = a.cfg.IdealElbowBonus
	case angle >= a.cfg.AcceptableElbowLow && angle <= a.cfg.AcceptableElbowHigh:
		bonus = a.cfg.AcceptableElbowBonus
	}

	stability := 1 - jitter*a.cfg.ArmJitterScale/100
	if stability < 0 {
		stability = 0
	}

	score := a.cfg.BaseScore - jitter*a.cfg.ArmJitterScale + bonus + stability*a.cfg.StabilityBonus

	a.state = ArmState{
		Score:      clampScore(score),
		Valid:      true,
		ElbowAngle: angle,
		Stability:  stability,
		Jitter:     jitter,
	}
	return a.state
}

// State returns the most recent reading.
func (a *Arm) State() ArmState {
	return a.state
}

// Reset clears ring state and the current reading.
func (a *Arm) Reset() {
	a.wrist.reset()
	a.elbow.reset()
	a.shoulder.reset()
	a.state = ArmState{}
}

// elbowAngle is the angle between the shoulder-to-elbow and
// elbow-to-wrist vectors in degrees. Degenerate joints read as 0.
func elbowAngle(shoulder, elbow, wrist signal.Point) float64 {
	ux := elbow.X - shoulder.X
	uy := elbow.Y - shoulder.Y
	uz := elbow.Z - shoulder.Z
	vx := wrist.X - elbow.X
	vy := wrist.Y - elbow.Y
	vz := wrist.Z - elbow.Z

	nu := math.Sqrt(ux*ux + uy*uy + uz*uz)
	nv := math.Sqrt(vx*vx + vy*vy + vz*vz)
	if nu == 0 || nv == 0 {
		return 0
	}

	cos := (ux*vx + uy*vy + uz*vz) / (nu * nv)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180 / math.Pi
}
