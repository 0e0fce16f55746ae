package posture

import (
	"errors"
	"math"
	"testing"

	"github.com/huihuibuhui227-svg/JingXin/pkg/signal"
)

// steadyHand is an open-but-not-spread hand: fingertips 0.2 from the
// palm (below the spread gate) and 0.1 from their DIP joints (above the
// fist gate), so the posture earns neither bonus nor penalty.
func steadyHand() []signal.Point {
	pts := make([]signal.Point, signal.HandLandmarks)
	set := func(i int, x, y, z float64) { pts[i] = signal.Point{X: x, Y: y, Z: z} }
	set(4, 0, 0, 0.2)
	set(8, 0.2, 0, 0)
	set(7, 0.1, 0, 0)
	set(12, 0, 0.2, 0)
	set(11, 0, 0.1, 0)
	set(16, -0.2, 0, 0)
	set(15, -0.1, 0, 0)
	set(20, 0, -0.2, 0)
	set(19, 0, -0.1, 0)
	return pts
}

// steadyPose is a level, still upper body: ears level, shoulders at
// y=0.5, left arm hanging straight, right arm bent 90 degrees.
func steadyPose() []signal.Point {
	pts := make([]signal.Point, signal.PoseLandmarks)
	set := func(i int, x, y float64) { pts[i] = signal.Point{X: x, Y: y} }
	set(poseNose, 0.5, 0.25)
	set(poseLeftEar, 0.4, 0.3)
	set(poseRightEar, 0.6, 0.3)
	set(poseLeftShoulder, 0.35, 0.5)
	set(poseRightShoulder, 0.65, 0.5)
	set(13, 0.35, 0.7) // left elbow
	set(15, 0.35, 0.9) // left wrist
	set(14, 0.65, 0.7) // right elbow
	set(16, 0.45, 0.7) // right wrist
	return pts
}

func TestHandSteadyScore(t *testing.T) {
	h, err := NewHand(0, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	var st HandState
	for i := 0; i < 15; i++ {
		st = h.Update(steadyHand())
	}
	if !st.Valid {
		t.Fatal("steady hand marked invalid")
	}
	if math.Abs(st.Score-70) > 1e-9 {
		t.Errorf("score = %v, want 70 for a still neutral hand", st.Score)
	}
	if st.Fist {
		t.Error("neutral hand read as fist")
	}
	if st.Jitter != 0 {
		t.Errorf("jitter = %v for identical frames, want 0", st.Jitter)
	}
}

func TestHandFistPenalty(t *testing.T) {
	h, err := NewHand(0, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	fist := steadyHand()
	// Collapse every fingertip onto its DIP joint.
	for i, tip := range handFingertips {
		fist[tip] = fist[handDIPJoints[i]]
	}
	fist[4] = signal.Point{X: 0, Y: 0, Z: 0.1}

	st := h.Update(fist)
	if !st.Fist {
		t.Fatal("collapsed hand not read as fist")
	}
	if math.Abs(st.Score-50) > 1e-9 {
		t.Errorf("score = %v, want 50 after fist penalty", st.Score)
	}
}

func TestHandSpreadBonus(t *testing.T) {
	h, err := NewHand(1, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	spread := make([]signal.Point, signal.HandLandmarks)
	set := func(i int, x, y, z float64) { spread[i] = signal.Point{X: x, Y: y, Z: z} }
	set(4, 0, 0, 0.5)
	set(8, 0.5, 0, 0)
	set(7, 0.4, 0, 0)
	set(12, 0, 0.5, 0)
	set(11, 0, 0.4, 0)
	set(16, -0.5, 0, 0)
	set(15, -0.4, 0, 0)
	set(20, 0, -0.5, 0)
	set(19, 0, -0.4, 0)

	st := h.Update(spread)
	if st.Fist {
		t.Fatal("spread hand read as fist")
	}
	if math.Abs(st.Spread-0.5) > 1e-9 {
		t.Errorf("spread = %v, want 0.5", st.Spread)
	}
	// (0.5 - 0.25) * 80 = 20 bonus on the base 70.
	if math.Abs(st.Score-90) > 1e-9 {
		t.Errorf("score = %v, want 90 with spread bonus", st.Score)
	}
}

func TestHandShortInputInvalidButHarmless(t *testing.T) {
	h, err := NewHand(0, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	h.Update(steadyHand())
	st := h.Update(steadyHand()[:20])
	if st.Valid {
		t.Fatal("short landmark set marked valid")
	}

	// Recovery: the ring was untouched, so the next good frame scores
	// as if the bad one never happened.
	st = h.Update(steadyHand())
	if !st.Valid || math.Abs(st.Score-70) > 1e-9 {
		t.Errorf("recovery state = %+v, want valid score 70", st)
	}
}

func TestHandSlotValidation(t *testing.T) {
	for _, slot := range []int{-1, 2, 99} {
		if _, err := NewHand(slot, DefaultConfig()); !errors.Is(err, ErrSlot) {
			t.Errorf("NewHand(%d) err = %v, want ErrSlot", slot, err)
		}
	}
}

func TestShoulderShrugZeroUntilCalibrated(t *testing.T) {
	s, err := NewShoulder(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	pose := steadyPose()
	for i := 0; i < 5; i++ {
		s.Update(pose)
	}

	// A clear rise during calibration must not register as a shrug.
	raised := steadyPose()
	raised[poseLeftShoulder].Y = 0.4
	raised[poseRightShoulder].Y = 0.4
	st := s.Update(raised)
	if st.Shrug != 0 {
		t.Errorf("shrug = %v during calibration, want 0", st.Shrug)
	}
	if st.Calibrated {
		t.Error("calibrated after 6 frames, want 30")
	}
}

func TestShoulderShrugAfterCalibration(t *testing.T) {
	s, err := NewShoulder(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	pose := steadyPose()
	var rest ShoulderState
	for i := 0; i < 30; i++ {
		rest = s.Update(pose)
	}
	if !rest.Calibrated || !s.IsCalibrated() {
		t.Fatal("not calibrated after 30 frames")
	}
	if rest.Shrug != 0 {
		t.Fatalf("shrug = %v at rest, want 0", rest.Shrug)
	}

	raised := steadyPose()
	raised[poseLeftShoulder].Y = 0.45
	raised[poseRightShoulder].Y = 0.45
	st := s.Update(raised)
	if math.Abs(st.Shrug-0.5) > 1e-9 {
		t.Errorf("shrug = %v, want 0.5 for a half shrug", st.Shrug)
	}
	if st.Score >= rest.Score {
		t.Errorf("score %v not below resting %v despite shrug", st.Score, rest.Score)
	}

	// A rise beyond the full-shrug distance saturates at 1.
	high := steadyPose()
	high[poseLeftShoulder].Y = 0.2
	high[poseRightShoulder].Y = 0.2
	if st := s.Update(high); math.Abs(st.Shrug-1.0) > 1e-9 {
		t.Errorf("shrug = %v, want saturation at 1", st.Shrug)
	}
}

func TestArmStraightAndBent(t *testing.T) {
	cfg := DefaultConfig()

	left, err := NewArm(SideLeft, cfg)
	if err != nil {
		t.Fatal(err)
	}
	st := left.Update(steadyPose())
	if !st.Valid {
		t.Fatal("left arm invalid on full pose")
	}
	if math.Abs(st.ElbowAngle) > 1e-9 {
		t.Errorf("straight arm angle = %v, want 0", st.ElbowAngle)
	}
	// 70 base, no angle bonus, stability 1 on a still frame.
	if math.Abs(st.Score-80) > 1e-9 {
		t.Errorf("straight arm score = %v, want 80", st.Score)
	}

	right, err := NewArm(SideRight, cfg)
	if err != nil {
		t.Fatal(err)
	}
	st = right.Update(steadyPose())
	if math.Abs(st.ElbowAngle-90) > 1e-9 {
		t.Errorf("bent arm angle = %v, want 90", st.ElbowAngle)
	}
	if math.Abs(st.Score-90) > 1e-9 {
		t.Errorf("bent arm score = %v, want 90 with ideal-angle bonus", st.Score)
	}
}

func TestElbowAngleDegenerate(t *testing.T) {
	p := signal.Point{X: 0.5, Y: 0.5}
	if got := elbowAngle(p, p, signal.Point{X: 0.7, Y: 0.5}); got != 0 {
		t.Errorf("angle with coincident shoulder/elbow = %v, want 0", got)
	}
	if got := elbowAngle(signal.Point{}, p, p); got != 0 {
		t.Errorf("angle with coincident elbow/wrist = %v, want 0", got)
	}
}

func TestArmSideValidation(t *testing.T) {
	if _, err := NewArm("up", DefaultConfig()); !errors.Is(err, ErrSide) {
		t.Errorf("NewArm(up) err = %v, want ErrSide", err)
	}
}

func TestUpperBodyLevelHead(t *testing.T) {
	u, err := NewUpperBody(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	st := u.Update(steadyPose())
	if !st.Valid {
		t.Fatal("upper body invalid on full pose")
	}
	if math.Abs(st.HeadTilt) > 1e-9 {
		t.Errorf("tilt = %v for level ears, want 0", st.HeadTilt)
	}
	if math.Abs(st.HeadScore-70) > 1e-9 {
		t.Errorf("head score = %v, want 70", st.HeadScore)
	}
	if math.Abs(st.TorsoScore-80) > 1e-9 {
		t.Errorf("torso score = %v, want 80", st.TorsoScore)
	}
	if math.Abs(st.Score-75) > 1e-9 {
		t.Errorf("score = %v, want 75", st.Score)
	}
}

func TestUpperBodyTiltPenaltyAndFold(t *testing.T) {
	tilted := steadyPose()
	tilted[poseLeftEar] = signal.Point{X: 0.4, Y: 0.25}
	tilted[poseRightEar] = signal.Point{X: 0.6, Y: 0.35}

	u1, err := NewUpperBody(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	st1 := u1.Update(tilted)
	// atan2(0.1, 0.2) is about 26.6 degrees, past the hard limit.
	if st1.HeadTilt <= 20 {
		t.Fatalf("tilt = %v, want > 20", st1.HeadTilt)
	}
	if math.Abs(st1.HeadScore-60) > 1e-9 {
		t.Errorf("head score = %v, want 60 with hard tilt penalty", st1.HeadScore)
	}

	// Swapping the ears flips the vector; the reading must not change.
	flipped := steadyPose()
	flipped[poseLeftEar] = tilted[poseRightEar]
	flipped[poseRightEar] = tilted[poseLeftEar]

	u2, err := NewUpperBody(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	st2 := u2.Update(flipped)
	if math.Abs(st1.HeadTilt-st2.HeadTilt) > 1e-9 {
		t.Errorf("tilt changed with ear order: %v vs %v", st1.HeadTilt, st2.HeadTilt)
	}
}

func TestPoseScorersRejectShortPose(t *testing.T) {
	cfg := DefaultConfig()
	short := steadyPose()[:signal.PoseLandmarks-1]

	s, _ := NewShoulder(cfg)
	if st := s.Update(short); st.Valid {
		t.Error("shoulder valid on short pose")
	}
	a, _ := NewArm(SideLeft, cfg)
	if st := a.Update(short); st.Valid {
		t.Error("arm valid on short pose")
	}
	u, _ := NewUpperBody(cfg)
	if st := u.Update(short); st.Valid {
		t.Error("upper body valid on short pose")
	}
}

func TestResetClearsState(t *testing.T) {
	h, err := NewHand(0, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	h.Update(steadyHand())
	h.Reset()
	if st := h.State(); st.Valid || st.Score != 0 {
		t.Errorf("state after reset = %+v, want zero value", st)
	}
}

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tiny ring", func(c *Config) { c.RingCapacity = 1 }},
		{"zero base score", func(c *Config) { c.BaseScore = 0 }},
		{"zero jitter scale", func(c *Config) { c.ArmJitterScale = 0 }},
		{"fist beyond spread", func(c *Config) { c.FistDistance = 0.3 }},
		{"zero shrug rise", func(c *Config) { c.ShrugFullRise = 0 }},
		{"elbow bands not nested", func(c *Config) { c.IdealElbowHigh = 160 }},
		{"inverted tilt limits", func(c *Config) { c.TiltHardLimit = 5 }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate accepted invalid config", tc.name)
		}
	}
}
