package signal

import (
	"errors"
	"math"
	"testing"
)

func goodHand() []Point {
	pts := make([]Point, HandLandmarks)
	for i := range pts {
		pts[i] = Point{X: 0.5, Y: 0.5}
	}
	return pts
}

func goodPose() []Point {
	pts := make([]Point, PoseLandmarks)
	for i := range pts {
		pts[i] = Point{X: 0.5, Y: 0.5}
	}
	return pts
}

func TestValidateAcceptsAbsentModalities(t *testing.T) {
	f := Frame{}
	if err := f.Validate(); err != nil {
		t.Fatalf("empty frame should validate, got %v", err)
	}
}

func TestValidateAcceptsFullFrame(t *testing.T) {
	f := Frame{
		Face:  Activations{Smile: 0.4, HeadYaw: -0.2},
		Hands: map[int][]Point{0: goodHand(), 1: goodHand()},
		Pose:  goodPose(),
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("full frame should validate, got %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	badPoint := goodHand()
	badPoint[3].Y = math.NaN()

	badPose := goodPose()
	badPose[30].X = math.Inf(1)

	cases := []struct {
		name  string
		frame Frame
		want  error
	}{
		{"unknown channel", Frame{Face: Activations{"bogus": 1}}, ErrUnknownChannel},
		{"nan activation", Frame{Face: Activations{Frown: math.NaN()}}, ErrBadValue},
		{"inf activation", Frame{Face: Activations{Smile: math.Inf(-1)}}, ErrBadValue},
		{"hand slot too high", Frame{Hands: map[int][]Point{2: goodHand()}}, ErrHandSlot},
		{"negative hand slot", Frame{Hands: map[int][]Point{-1: goodHand()}}, ErrHandSlot},
		{"non-finite hand point", Frame{Hands: map[int][]Point{0: badPoint}}, ErrBadPoint},
		{"non-finite pose point", Frame{Pose: badPose}, ErrBadPoint},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.frame.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestValidateRejectsShortLandmarkSets(t *testing.T) {
	f := Frame{Hands: map[int][]Point{0: goodHand()[:HandLandmarks-1]}}
	if err := f.Validate(); err == nil {
		t.Fatal("short hand should fail validation")
	}
	f = Frame{Pose: goodPose()[:PoseLandmarks-1]}
	if err := f.Validate(); err == nil {
		t.Fatal("short pose should fail validation")
	}
}

func TestActivationsGetDistinguishesAbsentFromZero(t *testing.T) {
	a := Activations{Smile: 0}
	if v, ok := a.Get(Smile); !ok || v != 0 {
		t.Fatalf("Get(Smile) = %v, %v; want 0, true", v, ok)
	}
	if _, ok := a.Get(Frown); ok {
		t.Fatal("absent channel should report not present")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := Activations{Smile: 0.4}
	b := a.Clone()
	b[Smile] = 0.9
	b[Frown] = 0.1
	if a[Smile] != 0.4 {
		t.Fatalf("original mutated: smile = %v", a[Smile])
	}
	if _, ok := a.Get(Frown); ok {
		t.Fatal("original gained a channel from the clone")
	}
	if Activations(nil).Clone() != nil {
		t.Fatal("nil clone should stay nil")
	}
}

func TestKnownCoversSchema(t *testing.T) {
	for _, ch := range Channels {
		if !Known(ch) {
			t.Fatalf("channel %q should be known", ch)
		}
	}
	if Known("sideways_glance") {
		t.Fatal("made-up channel should not be known")
	}
}
