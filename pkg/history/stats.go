package history

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// TemporalStats describes how a channel has been moving over its window.
type TemporalStats struct {
	// Trend is the least-squares slope of value against sample index,
	// in value units per tick.
	Trend float64 `json:"trend"`

	// Volatility is the population standard deviation over the window.
	Volatility float64 `json:"volatility"`

	// ChangeRate is the raw first difference: current minus previous.
	ChangeRate float64 `json:"change_rate"`
}

// Stats computes the window statistics. The second return is false while
// the ring holds fewer than two samples; callers must treat that as
// "no statistic", not as zero.
func (r *Ring) Stats() (TemporalStats, bool) {
	values := r.Values()
	n := len(values)
	if n < 2 {
		return TemporalStats{}, false
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	_, slope := stat.LinearRegression(xs, values, nil, false)

	volatility, err := stats.StandardDeviation(values)
	if err != nil {
		return TemporalStats{}, false
	}

	return TemporalStats{
		Trend:      slope,
		Volatility: volatility,
		ChangeRate: values[n-1] - values[n-2],
	}, true
}
