// Package signal defines the input data shapes the analysis engine consumes:
// named activation channels from face perception and landmark point sets
// from hand/pose perception. Frames are validated at this boundary so a
// missing or misspelled channel is caught here instead of silently reading
// as zero activation downstream.
package signal

// Channel is a named scalar activation signal produced by perception.
type Channel string

// Face activation channels. Values are normalized activations in [0,1]
// except HeadYaw (signed) and AvgEAR / Symmetry (ratios).
const (
	InnerBrowRaise Channel = "inner_brow_raise"
	OuterBrowRaise Channel = "outer_brow_raise"
	Frown          Channel = "frown"
	CheekRaise     Channel = "cheek_raise"
	EyeSqueeze     Channel = "eye_squeeze"
	NoseWrinkle    Channel = "nose_wrinkle"
	UpperLipRaise  Channel = "upper_lip_raise"
	Smile          Channel = "smile"
	Dimpler        Channel = "dimpler"
	MouthDown      Channel = "mouth_down"
	LipStretch     Channel = "lip_stretch"
	LipCompression Channel = "lip_compression"
	MouthOpen      Channel = "mouth_open"
	JawDrop        Channel = "jaw_drop"
	AvgEAR         Channel = "avg_ear"
	HeadYaw        Channel = "head_yaw"
	Symmetry       Channel = "symmetry"
	GazeAsymmetry  Channel = "gaze_asymmetry"
)

// Channels lists every known channel in canonical order.
var Channels = []Channel{
	InnerBrowRaise,
	OuterBrowRaise,
	Frown,
	CheekRaise,
	EyeSqueeze,
	NoseWrinkle,
	UpperLipRaise,
	Smile,
	Dimpler,
	MouthDown,
	LipStretch,
	LipCompression,
	MouthOpen,
	JawDrop,
	AvgEAR,
	HeadYaw,
	Symmetry,
	GazeAsymmetry,
}

var known = func() map[Channel]bool {
	m := make(map[Channel]bool, len(Channels))
	for _, ch := range Channels {
		m[ch] = true
	}
	return m
}()

// Known reports whether ch is part of the channel schema.
func Known(ch Channel) bool {
	return known[ch]
}
