// Package history provides bounded sliding windows over per-channel scalar
// streams and the temporal statistics derived from them. A statistic is
// reported as absent, never zero, while a window holds fewer than two
// samples.
package history

import "errors"

// ErrCapacity indicates a ring capacity that cannot hold a usable window.
var ErrCapacity = errors.New("history: capacity must be >= 2")

// DefaultCapacity covers ~3 seconds at 30 ticks/s.
const DefaultCapacity = 90

// Ring is a fixed-capacity buffer of float64 samples. Once full, each push
// evicts the oldest sample.
type Ring struct {
	data []float64
	pos  int
	full bool
}

// NewRing creates a ring holding up to capacity samples.
func NewRing(capacity int) (*Ring, error) {
	if capacity < 2 {
		return nil, ErrCapacity
	}
	return &Ring{data: make([]float64, capacity)}, nil
}

// Push appends a sample, evicting the oldest when full.
func (r *Ring) Push(v float64) {
	r.data[r.pos] = v
	r.pos++
	if r.pos == len(r.data) {
		r.pos = 0
		r.full = true
	}
}

// Len returns the number of samples currently held.
func (r *Ring) Len() int {
	if r.full {
		return len(r.data)
	}
	return r.pos
}

// Cap returns the ring capacity.
func (r *Ring) Cap() int {
	return len(r.data)
}

// Values returns the samples in insertion order, oldest first.
func (r *Ring) Values() []float64 {
	if !r.full {
		out := make([]float64, r.pos)
		copy(out, r.data[:r.pos])
		return out
	}
	out := make([]float64, len(r.data))
	n := copy(out, r.data[r.pos:])
	copy(out[n:], r.data[:r.pos])
	return out
}

// Last returns the most recent sample, if any.
func (r *Ring) Last() (float64, bool) {
	if r.Len() == 0 {
		return 0, false
	}
	idx := r.pos - 1
	if idx < 0 {
		idx = len(r.data) - 1
	}
	return r.data[idx], true
}

// Reset discards all samples.
func (r *Ring) Reset() {
	r.pos = 0
	r.full = false
}
