package posture

import "fmt"

// Config holds the shared and per-modality tuning of the posture
// scorers. All values are policy; construct from DefaultConfig and
// override what you need.
type Config struct {
	// RingCapacity is the per-landmark position history length.
	RingCapacity int

	// BaseScore is where every modality starts before jitter, bonuses
	// and penalties.
	BaseScore float64

	// HandJitterScale converts hand jitter into score penalty.
	HandJitterScale float64

	// FistDistance is the mean fingertip-to-joint distance below which
	// the hand reads as a closed fist. FistPenalty is subtracted then.
	FistDistance float64
	FistPenalty  float64

	// SpreadDistance is the mean fingertip-to-palm distance above which
	// open-hand bonus accrues, scaled (and capped) by SpreadBonusScale.
	SpreadDistance   float64
	SpreadBonusScale float64

	// ShoulderJitterScale converts shoulder jitter into score penalty.
	ShoulderJitterScale float64

	// ShrugFullRise is the shoulder rise above baseline that counts as a
	// full shrug. ShrugPenalty is subtracted at full shrug.
	ShrugFullRise float64
	ShrugPenalty  float64

	// ArmJitterScale converts arm jitter into score penalty and feeds
	// the stability bonus.
	ArmJitterScale float64

	// Elbow angle bands, in degrees. The ideal band earns
	// IdealElbowBonus, the acceptable band AcceptableElbowBonus.
	IdealElbowLow        float64
	IdealElbowHigh       float64
	AcceptableElbowLow   float64
	AcceptableElbowHigh  float64
	IdealElbowBonus      float64
	AcceptableElbowBonus float64

	// StabilityBonus scales the 0..1 stability figure of arm and torso
	// into score.
	StabilityBonus float64

	// BodyJitterScale converts head and torso jitter into score penalty.
	BodyJitterScale float64

	// Head tilt bands, in degrees. Tilt within TiltSoftLimit is free,
	// within TiltHardLimit costs TiltSoftPenalty, beyond it
	// TiltHardPenalty.
	TiltSoftLimit   float64
	TiltHardLimit   float64
	TiltSoftPenalty float64
	TiltHardPenalty float64
}

// DefaultConfig returns the stock posture tuning.
func DefaultConfig() Config {
	return Config{
		RingCapacity: 30,
		BaseScore:    70,

		HandJitterScale:  1000,
		FistDistance:     0.08,
		FistPenalty:      20,
		SpreadDistance:   0.25,
		SpreadBonusScale: 80,

		ShoulderJitterScale: 2000,
		ShrugFullRise:       0.1,
		ShrugPenalty:        30,

		ArmJitterScale:       1000,
		IdealElbowLow:        70,
		IdealElbowHigh:       120,
		AcceptableElbowLow:   50,
		AcceptableElbowHigh:  150,
		IdealElbowBonus:      10,
		AcceptableElbowBonus: 5,
		StabilityBonus:       10,

		BodyJitterScale: 1000,
		TiltSoftLimit:   10,
		TiltHardLimit:   20,
		TiltSoftPenalty: 5,
		TiltHardPenalty: 10,
	}
}

// Validate checks structural soundness of the config.
func (c Config) Validate() error {
	if c.RingCapacity < 2 {
		return fmt.Errorf("%w: RingCapacity %d below 2", ErrConfig, c.RingCapacity)
	}
	if c.BaseScore <= 0 || c.BaseScore > 100 {
		return fmt.Errorf("%w: BaseScore %v outside (0, 100]", ErrConfig, c.BaseScore)
	}
	scales := map[string]float64{
		"HandJitterScale":     c.HandJitterScale,
		"ShoulderJitterScale": c.ShoulderJitterScale,
		"ArmJitterScale":      c.ArmJitterScale,
		"BodyJitterScale":     c.BodyJitterScale,
	}
	for name, v := range scales {
		if v <= 0 {
			return fmt.Errorf("%w: %s %v must be positive", ErrConfig, name, v)
		}
	}
	if c.FistDistance <= 0 || c.SpreadDistance <= c.FistDistance {
		return fmt.Errorf("%w: fist/spread distances %v/%v must satisfy 0 < fist < spread",
			ErrConfig, c.FistDistance, c.SpreadDistance)
	}
	if c.ShrugFullRise <= 0 {
		return fmt.Errorf("%w: ShrugFullRise %v must be positive", ErrConfig, c.ShrugFullRise)
	}
	if !(0 < c.AcceptableElbowLow && c.AcceptableElbowLow <= c.IdealElbowLow &&
		c.IdealElbowLow < c.IdealElbowHigh && c.IdealElbowHigh <= c.AcceptableElbowHigh &&
		c.AcceptableElbowHigh < 180) {
		return fmt.Errorf("%w: elbow bands %v..%v / %v..%v are not nested",
			ErrConfig, c.AcceptableElbowLow, c.AcceptableElbowHigh, c.IdealElbowLow, c.IdealElbowHigh)
	}
	if c.TiltSoftLimit <= 0 || c.TiltHardLimit <= c.TiltSoftLimit {
		return fmt.Errorf("%w: tilt limits %v/%v must satisfy 0 < soft < hard",
			ErrConfig, c.TiltSoftLimit, c.TiltHardLimit)
	}
	return nil
}
