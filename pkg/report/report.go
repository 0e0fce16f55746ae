// Package report persists end-of-session summaries.
package report

import (
	"time"

	"github.com/huihuibuhui227-svg/JingXin/pkg/fusion"
)

// SessionReport is the aggregate a finished session leaves behind.
type SessionReport struct {
	// ID is the session id the report was finalized from.
	ID string `json:"id"`

	// StartedAt and EndedAt bound the session on the wall clock.
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`

	// Ticks is how many frames the session processed.
	Ticks int `json:"ticks"`

	// Score statistics over the ticks where fusion produced a valid
	// overall score. All zero when no tick did.
	MeanScore float64 `json:"mean_score"`
	MinScore  float64 `json:"min_score"`
	MaxScore  float64 `json:"max_score"`

	// FinalLabel is the fused label of the last processed tick.
	FinalLabel fusion.Label `json:"final_label"`

	// Utterances is how many voice assessments the session recorded.
	Utterances int `json:"utterances"`
}

// Duration is the wall-clock span of the session.
func (r SessionReport) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// Store defines the persistence operations for session reports.
type Store interface {
	// Save creates or replaces the report for its session id.
	Save(rep SessionReport) error

	// Get retrieves a report by session id.
	Get(id string) (SessionReport, error)

	// List returns all reports, newest first by end time.
	List() ([]SessionReport, error)

	// Delete removes a report by session id.
	Delete(id string) error

	// Count returns the number of stored reports.
	Count() int
}
