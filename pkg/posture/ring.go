// Package posture scores the steadiness of tracked body landmarks, one
// scorer per modality (hands, shoulders, arms, upper body).
//
// Every scorer follows the same shape: recent landmark positions go
// into short rings, jitter is the mean per-axis spread over a ring, and
// the score starts from a common base with domain bonuses and penalties
// applied on top. Scores live in [0, 100]. A malformed or missing
// update marks the modality invalid but never disturbs accumulated ring
// state, so tracking recovers the moment landmarks come back.
//
// Scorers are not safe for concurrent use; callers serialize access.
package posture

import (
	"github.com/montanaflynn/stats"

	"github.com/huihuibuhui227-svg/JingXin/pkg/history"
	"github.com/huihuibuhui227-svg/JingXin/pkg/signal"
)

// pointRing keeps the recent positions of one landmark, one ring per
// horizontal and vertical axis.
type pointRing struct {
	xs *history.Ring
	ys *history.Ring

	// minSamples is the warm-up length below which jitter reads as 0.
	minSamples int
}

func newPointRing(capacity int) (*pointRing, error) {
	xs, err := history.NewRing(capacity)
	if err != nil {
		return nil, err
	}
	ys, err := history.NewRing(capacity)
	if err != nil {
		return nil, err
	}
	warm := capacity / 3
	if warm > 10 {
		warm = 10
	}
	return &pointRing{xs: xs, ys: ys, minSamples: warm}, nil
}

func (r *pointRing) push(p signal.Point) {
	r.xs.Push(p.X)
	r.ys.Push(p.Y)
}

func (r *pointRing) len() int {
	return r.xs.Len()
}

// jitter is the mean of the per-axis standard deviations, or 0 while
// the ring is still warming up.
func (r *pointRing) jitter() float64 {
	if r.xs.Len() < r.minSamples {
		return 0
	}
	sx, err := stats.StandardDeviation(r.xs.Values())
	if err != nil {
		return 0
	}
	sy, err := stats.StandardDeviation(r.ys.Values())
	if err != nil {
		return 0
	}
	return (sx + sy) / 2
}

func (r *pointRing) reset() {
	r.xs.Reset()
	r.ys.Reset()
}

// clampScore bounds a steadiness score to [0, 100].
func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
