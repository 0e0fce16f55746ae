// Package session drives all of one tracked subject's analyzers from a
// single frame stream and fuses their per-tick scores.
package session

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/huihuibuhui227-svg/JingXin/pkg/face"
	"github.com/huihuibuhui227-svg/JingXin/pkg/fusion"
	"github.com/huihuibuhui227-svg/JingXin/pkg/posture"
	"github.com/huihuibuhui227-svg/JingXin/pkg/report"
	"github.com/huihuibuhui227-svg/JingXin/pkg/signal"
	"github.com/huihuibuhui227-svg/JingXin/pkg/voice"
)

// TickRecord is the per-tick downstream record of one session.
type TickRecord struct {
	SessionID string    `json:"session_id"`
	Tick      int       `json:"tick"`
	Timestamp time.Time `json:"timestamp"`

	Face      face.State                          `json:"face"`
	Hands     [signal.HandSlots]posture.HandState `json:"hands"`
	ArmLeft   posture.ArmState                    `json:"arm_left"`
	ArmRight  posture.ArmState                    `json:"arm_right"`
	Shoulder  posture.ShoulderState               `json:"shoulder"`
	UpperBody posture.UpperBodyState              `json:"upper_body"`
	Voice     voice.Assessment                    `json:"voice"`

	// Scores holds the per-modality samples handed to fusion.
	Scores map[fusion.Modality]fusion.Sample `json:"scores"`

	// Fused is the weighted overall result.
	Fused fusion.Result `json:"fused"`
}

// Session owns the analyzers of one tracked subject. Methods are safe
// for concurrent use; frames are processed strictly in call order.
type Session struct {
	id        string
	startedAt time.Time

	mu       sync.Mutex
	face     *face.Analyzer
	hands    [signal.HandSlots]*posture.Hand
	armLeft  *posture.Arm
	armRight *posture.Arm
	shoulder *posture.Shoulder
	upper    *posture.UpperBody
	voice    *voice.Scorer
	engine   *fusion.Engine

	tick       int
	utterances int
	last       TickRecord
	onTick     func(TickRecord)

	scoreSum    float64
	scoreMin    float64
	scoreMax    float64
	scoredTicks int
}

// New builds a session with a fresh id, validating every component
// configuration up front.
func New(cfg Config) (*Session, error) {
	faceAnalyzer, err := face.New(cfg.Face)
	if err != nil {
		return nil, fmt.Errorf("session: face: %w", err)
	}
	armLeft, err := posture.NewArm(posture.SideLeft, cfg.Posture)
	if err != nil {
		return nil, fmt.Errorf("session: left arm: %w", err)
	}
	armRight, err := posture.NewArm(posture.SideRight, cfg.Posture)
	if err != nil {
		return nil, fmt.Errorf("session: right arm: %w", err)
	}
	shoulder, err := posture.NewShoulder(cfg.Posture)
	if err != nil {
		return nil, fmt.Errorf("session: shoulder: %w", err)
	}
	upper, err := posture.NewUpperBody(cfg.Posture)
	if err != nil {
		return nil, fmt.Errorf("session: upper body: %w", err)
	}
	voiceScorer, err := voice.New(cfg.Voice)
	if err != nil {
		return nil, fmt.Errorf("session: voice: %w", err)
	}
	engine, err := fusion.New(cfg.Fusion)
	if err != nil {
		return nil, fmt.Errorf("session: fusion: %w", err)
	}

	s := &Session{
		id:        uuid.New().String(),
		startedAt: time.Now(),
		face:      faceAnalyzer,
		armLeft:   armLeft,
		armRight:  armRight,
		shoulder:  shoulder,
		upper:     upper,
		voice:     voiceScorer,
		engine:    engine,
		scoreMin:  math.Inf(1),
		scoreMax:  math.Inf(-1),
	}
	for slot := range s.hands {
		hand, err := posture.NewHand(slot, cfg.Posture)
		if err != nil {
			return nil, fmt.Errorf("session: hand %d: %w", slot, err)
		}
		s.hands[slot] = hand
	}
	return s, nil
}

// ID returns the session's uuid.
func (s *Session) ID() string {
	return s.id
}

// StartedAt returns when the session was created.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// OnTick registers a callback fired after each processed frame, outside
// the session lock.
func (s *Session) OnTick(fn func(TickRecord)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTick = fn
}

// HandleFrame validates and processes one perception frame. A malformed
// frame errors without touching any analyzer; an absent modality only
// marks its portion invalid.
func (s *Session) HandleFrame(f signal.Frame) (TickRecord, error) {
	if err := f.Validate(); err != nil {
		return TickRecord{}, err
	}

	ts := f.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	s.mu.Lock()

	faceState := s.face.Update(f.Face)

	var hands [signal.HandSlots]posture.HandState
	for slot, hand := range s.hands {
		hands[slot] = hand.Update(f.Hands[slot])
	}

	armLeft := s.armLeft.Update(f.Pose)
	armRight := s.armRight.Update(f.Pose)
	shoulder := s.shoulder.Update(f.Pose)
	upper := s.upper.Update(f.Pose)
	voiceState := s.voice.State()

	faceScore, faceOK := s.face.ModalityScore()
	scores := map[fusion.Modality]fusion.Sample{
		fusion.ModalityFace:      {Score: faceScore, Valid: faceOK},
		fusion.ModalityHand:      pairSample(hands[0].Score, hands[0].Valid, hands[1].Score, hands[1].Valid),
		fusion.ModalityArm:       pairSample(armLeft.Score, armLeft.Valid, armRight.Score, armRight.Valid),
		fusion.ModalityShoulder:  {Score: shoulder.Score, Valid: shoulder.Valid},
		fusion.ModalityUpperBody: {Score: upper.Score, Valid: upper.Valid},
		fusion.ModalityVoice:     {Score: voiceState.Overall, Valid: voiceState.Valid},
	}
	fused := s.engine.Fuse(scores)

	s.tick++
	rec := TickRecord{
		SessionID: s.id,
		Tick:      s.tick,
		Timestamp: ts,
		Face:      faceState,
		Hands:     hands,
		ArmLeft:   armLeft,
		ArmRight:  armRight,
		Shoulder:  shoulder,
		UpperBody: upper,
		Voice:     voiceState,
		Scores:    scores,
		Fused:     fused,
	}
	s.last = rec
	if fused.Valid {
		s.scoreSum += fused.Overall
		s.scoredTicks++
		if fused.Overall < s.scoreMin {
			s.scoreMin = fused.Overall
		}
		if fused.Overall > s.scoreMax {
			s.scoreMax = fused.Overall
		}
	}
	cb := s.onTick
	s.mu.Unlock()

	if cb != nil {
		cb(rec)
	}
	return rec, nil
}

// HandleUtterance feeds one completed utterance to the voice scorer and
// returns the updated assessment. The voice modality stays valid for
// fusion from the first usable utterance on.
func (s *Session) HandleUtterance(f voice.Features) voice.Assessment {
	s.mu.Lock()
	defer s.mu.Unlock()

	assessment := s.voice.Assess(f)
	if assessment.Valid {
		s.utterances++
	}
	return assessment
}

// Snapshot returns the latest TickRecord.
func (s *Session) Snapshot() TickRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Ticks returns how many frames the session has processed.
func (s *Session) Ticks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// Reset returns every owned analyzer to its initial state together.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.face.Reset()
	for _, hand := range s.hands {
		hand.Reset()
	}
	s.armLeft.Reset()
	s.armRight.Reset()
	s.shoulder.Reset()
	s.upper.Reset()
	s.voice.Reset()

	s.tick = 0
	s.utterances = 0
	s.last = TickRecord{}
	s.scoreSum = 0
	s.scoredTicks = 0
	s.scoreMin = math.Inf(1)
	s.scoreMax = math.Inf(-1)
}

// Report summarizes the session so far.
func (s *Session) Report() report.SessionReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	rep := report.SessionReport{
		ID:         s.id,
		StartedAt:  s.startedAt,
		EndedAt:    time.Now(),
		Ticks:      s.tick,
		FinalLabel: s.last.Fused.Label,
		Utterances: s.utterances,
	}
	if s.scoredTicks > 0 {
		rep.MeanScore = s.scoreSum / float64(s.scoredTicks)
		rep.MinScore = s.scoreMin
		rep.MaxScore = s.scoreMax
	}
	return rep
}

// pairSample folds two sided scorers into one modality sample, averaging
// when both sides are valid.
func pairSample(a float64, aOK bool, b float64, bOK bool) fusion.Sample {
	switch {
	case aOK && bOK:
		return fusion.Sample{Score: (a + b) / 2, Valid: true}
	case aOK:
		return fusion.Sample{Score: a, Valid: true}
	case bOK:
		return fusion.Sample{Score: b, Valid: true}
	default:
		return fusion.Sample{}
	}
}
