package signal

import (
	"fmt"
	"math"
	"time"
)

// Landmark set sizes expected from perception.
const (
	HandLandmarks = 21
	PoseLandmarks = 33
)

// HandSlots is the number of tracked hand slots.
const HandSlots = 2

// Point is one landmark position in normalized image coordinates.
// Z is depth relative to the reference point and may be zero when the
// upstream model does not provide it.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

// Finite reports whether all coordinates are finite numbers.
func (p Point) Finite() bool {
	return finite(p.X) && finite(p.Y) && finite(p.Z)
}

// Activations maps channels to this tick's activation values.
// A channel missing from the map means "not measured this tick",
// which is different from an activation of zero.
type Activations map[Channel]float64

// Get returns the channel value and whether it is present.
func (a Activations) Get(ch Channel) (float64, bool) {
	v, ok := a[ch]
	return v, ok
}

// Validate checks every entry against the schema.
func (a Activations) Validate() error {
	for ch, v := range a {
		if !Known(ch) {
			return fmt.Errorf("%w: %q", ErrUnknownChannel, string(ch))
		}
		if !finite(v) {
			return fmt.Errorf("%w: %q = %v", ErrBadValue, string(ch), v)
		}
	}
	return nil
}

// Clone returns an independent copy of the activation map.
func (a Activations) Clone() Activations {
	if a == nil {
		return nil
	}
	out := make(Activations, len(a))
	for ch, v := range a {
		out[ch] = v
	}
	return out
}

// Frame is one tick of perception output for a tracked subject.
// Nil modality fields mean that modality was not detected this tick.
type Frame struct {
	// Tick is the caller's frame counter. Informational only; the engine
	// keeps its own per-session tick ordering.
	Tick int `json:"tick"`

	// Timestamp is when the frame was captured. Zero means "now".
	Timestamp time.Time `json:"timestamp,omitempty"`

	// Face holds the activation channels, nil when no face was detected.
	Face Activations `json:"face,omitempty"`

	// Hands maps hand slot (0 or 1) to its 21 landmark points.
	Hands map[int][]Point `json:"hands,omitempty"`

	// Pose holds the 33 body landmark points, nil when not detected.
	Pose []Point `json:"pose,omitempty"`
}

// Validate checks the frame against the schema without mutating anything.
// Absent modalities are fine; present ones must be structurally sound.
func (f *Frame) Validate() error {
	if f.Face != nil {
		if err := f.Face.Validate(); err != nil {
			return err
		}
	}
	for slot, points := range f.Hands {
		if slot < 0 || slot >= HandSlots {
			return fmt.Errorf("%w: got %d", ErrHandSlot, slot)
		}
		if err := validatePoints(points, HandLandmarks, "hand"); err != nil {
			return err
		}
	}
	if f.Pose != nil {
		if err := validatePoints(f.Pose, PoseLandmarks, "pose"); err != nil {
			return err
		}
	}
	return nil
}

func validatePoints(points []Point, want int, kind string) error {
	if len(points) < want {
		return fmt.Errorf("signal: %s landmarks need >=%d points, got %d", kind, want, len(points))
	}
	for i, p := range points {
		if !p.Finite() {
			return fmt.Errorf("%w: %s point %d", ErrBadPoint, kind, i)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
