package session

import (
	"github.com/huihuibuhui227-svg/JingXin/pkg/face"
	"github.com/huihuibuhui227-svg/JingXin/pkg/fusion"
	"github.com/huihuibuhui227-svg/JingXin/pkg/posture"
	"github.com/huihuibuhui227-svg/JingXin/pkg/voice"
)

// Config wires the per-modality analyzer settings for one session.
type Config struct {
	// Face configures the face pipeline.
	Face face.Config

	// Posture configures the hand, arm, shoulder and upper-body scorers.
	Posture posture.Config

	// Voice configures the prosody scorer.
	Voice voice.Config

	// Fusion selects the fused modalities, their weights, and the label
	// bands. Validated by the fusion engine at construction.
	Fusion fusion.Config
}

// DefaultConfig returns the standard session settings with the
// face/hand/shoulder fusion weighting.
func DefaultConfig() Config {
	return Config{
		Face:    face.DefaultConfig(),
		Posture: posture.DefaultConfig(),
		Voice:   voice.DefaultConfig(),
		Fusion:  fusion.DefaultConfig(),
	}
}
