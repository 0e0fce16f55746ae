package posture

import (
	"fmt"
	"math"

	"github.com/huihuibuhui227-svg/JingXin/pkg/signal"
)

// Hand landmark indices follow the 21-point convention: 0 is the wrist,
// 4/8/12/16/20 the fingertips, 7/11/15/19 the DIP joints.
const handIndexTip = 8

var (
	handFingertips = [4]int{8, 12, 16, 20}
	handDIPJoints  = [4]int{7, 11, 15, 19}
	handSpreadTips = [5]int{4, 8, 12, 16, 20}
)

// HandState is one hand's current reading.
type HandState struct {
	// Score is the steadiness score in [0, 100].
	Score float64 `json:"score"`

	// Valid reports whether the last update carried usable landmarks.
	Valid bool `json:"valid"`

	// Fist reports a closed-fist posture.
	Fist bool `json:"fist"`

	// Spread is the mean fingertip-to-palm distance.
	Spread float64 `json:"spread"`

	// Jitter is the index fingertip's positional spread.
	Jitter float64 `json:"jitter"`
}

// Hand scores one tracked hand slot. Steadiness is judged on the index
// fingertip; fist and open-palm postures adjust the score.
type Hand struct {
	cfg   Config
	slot  int
	tip   *pointRing
	state HandState
}

// NewHand builds a scorer for the given hand slot.
func NewHand(slot int, cfg Config) (*Hand, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if slot < 0 || slot >= signal.HandSlots {
		return nil, fmt.Errorf("%w: %d", ErrSlot, slot)
	}
	tip, err := newPointRing(cfg.RingCapacity)
	if err != nil {
		return nil, err
	}
	return &Hand{cfg: cfg, slot: slot, tip: tip}, nil
}

// Slot returns the hand slot this scorer tracks.
func (h *Hand) Slot() int {
	return h.slot
}

// Update scores one tick of landmarks. Fewer than the required 21
// points marks the hand invalid and leaves ring state untouched.
func (h *Hand) Update(points []signal.Point) HandState {
	if len(points) < signal.HandLandmarks {
		h.state.Valid = false
		return h.state
	}

	h.tip.push(points[handIndexTip])
	jitter := h.tip.jitter()

	fist := 0.0
	for i, tip := range handFingertips {
		fist += dist(points[tip], points[handDIPJoints[i]])
	}
	fist /= float64(len(handFingertips))
	isFist := fist < h.cfg.FistDistance

	spread := 0.0
	for _, tip := range handSpreadTips {
		spread += dist(points[tip], points[0])
	}
	spread /= float64(len(handSpreadTips))

	score := h.cfg.BaseScore - jitter*h.cfg.HandJitterScale
	if score < 0 {
		score = 0
	}
	if isFist {
		score -= h.cfg.FistPenalty
	}
	if spread > h.cfg.SpreadDistance {
		score += math.Min(h.cfg.SpreadBonusScale, (spread-h.cfg.SpreadDistance)*h.cfg.SpreadBonusScale)
	}

	h.state = HandState{
		Score:  clampScore(score),
		Valid:  true,
		Fist:   isFist,
		Spread: spread,
		Jitter: jitter,
	}
	return h.state
}

// State returns the most recent reading.
func (h *Hand) State() HandState {
	return h.state
}

// Reset clears ring state and the current reading.
func (h *Hand) Reset() {
	h.tip.reset()
	h.state = HandState{}
}

func dist(a, b signal.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
