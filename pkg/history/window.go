package history

// Window tracks a sliding history per named channel. Rings are created
// lazily on first push, all with the same capacity.
type Window struct {
	capacity int
	rings    map[string]*Ring
}

// NewWindow creates a multi-channel window.
func NewWindow(capacity int) (*Window, error) {
	if capacity < 2 {
		return nil, ErrCapacity
	}
	return &Window{
		capacity: capacity,
		rings:    make(map[string]*Ring),
	}, nil
}

// Push appends a sample to the named channel's ring.
func (w *Window) Push(channel string, v float64) {
	ring, ok := w.rings[channel]
	if !ok {
		ring, _ = NewRing(w.capacity)
		w.rings[channel] = ring
	}
	ring.Push(v)
}

// Stats returns the named channel's statistics, false when the channel
// has fewer than two samples or was never pushed.
func (w *Window) Stats(channel string) (TemporalStats, bool) {
	ring, ok := w.rings[channel]
	if !ok {
		return TemporalStats{}, false
	}
	return ring.Stats()
}

// All computes statistics for every channel that has enough samples.
func (w *Window) All() map[string]TemporalStats {
	out := make(map[string]TemporalStats, len(w.rings))
	for name, ring := range w.rings {
		if s, ok := ring.Stats(); ok {
			out[name] = s
		}
	}
	return out
}

// Len returns the sample count for the named channel.
func (w *Window) Len(channel string) int {
	ring, ok := w.rings[channel]
	if !ok {
		return 0
	}
	return ring.Len()
}

// Reset discards every channel's samples.
func (w *Window) Reset() {
	for _, ring := range w.rings {
		ring.Reset()
	}
}
