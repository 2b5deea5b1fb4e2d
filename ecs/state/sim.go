// Package state holds the simulation-wide values that are not per entity:
// the clock, intent, chunk progress, player capabilities, live effects and
// the hunger/score/outcome trio. One Sim is owned by the step loop and
// handed by pointer to every system that reads or writes it.
package state

import "github.com/milk9111/hungrypig/prefabs"

// Intent is what the host asks the player to do this step.
type Intent struct {
	Horizontal float64
	Jump       bool
}

// Clamped returns the intent with Horizontal limited to [-1, 1].
func (i Intent) Clamped() Intent {
	switch {
	case i.Horizontal > 1:
		i.Horizontal = 1
	case i.Horizontal < -1:
		i.Horizontal = -1
	case i.Horizontal != i.Horizontal:
		i.Horizontal = 0
	}
	return i
}

// Progress tracks chunk advancement. Current never decreases; Next is the
// lowest index not yet generated.
type Progress struct {
	Current int
	Next    int
	// HoleRun is the count of consecutive missing ground tiles at the right
	// edge of the last generated chunk.
	HoleRun int
}

// Capabilities are the player values effects override.
type Capabilities struct {
	Speed     float64
	JumpPower float64
	HalfW     float64
	HalfH     float64
	Scale     float64
}

// BaselineCapabilities reads the unmodified player values from tuning.
func BaselineCapabilities(t *prefabs.Tuning) Capabilities {
	return Capabilities{
		Speed:     t.Player.Speed,
		JumpPower: t.Player.JumpPower,
		HalfW:     t.Player.HalfWidth,
		HalfH:     t.Player.HalfHeight,
		Scale:     t.Player.Scale,
	}
}

type Outcome int

const (
	OutcomePlaying Outcome = iota
	OutcomeLost
)

func (o Outcome) String() string {
	if o == OutcomeLost {
		return "lost"
	}
	return "playing"
}

type Sim struct {
	Tuning *prefabs.Tuning

	Now float64
	Dt  float64

	Intent   Intent
	Progress Progress

	Baseline     Capabilities
	Capabilities Capabilities
	// Effects maps each live kind to its absolute expiry.
	Effects map[EffectKind]float64

	Hunger     float64
	Score      int
	Outcome    Outcome
	LossReason string
}

func New(t *prefabs.Tuning) *Sim {
	s := &Sim{}
	s.Reset(t)
	return s
}

// Reset returns every value to its start-of-run state under t.
func (s *Sim) Reset(t *prefabs.Tuning) {
	if t == nil {
		t = prefabs.DefaultTuning()
	}
	base := BaselineCapabilities(t)
	*s = Sim{
		Tuning:       t,
		Progress:     Progress{Next: t.World.TutorialChunks},
		Baseline:     base,
		Capabilities: base,
		Effects:      make(map[EffectKind]float64),
		Hunger:       t.Hunger.Start,
	}
}

// Advance moves the clock forward by dt.
func (s *Sim) Advance(dt float64) {
	s.Dt = dt
	s.Now += dt
}

func (s *Sim) Playing() bool {
	return s != nil && s.Outcome == OutcomePlaying
}

// Lose ends the run. The first reason wins.
func (s *Sim) Lose(reason string) bool {
	if s.Outcome == OutcomeLost {
		return false
	}
	s.Outcome = OutcomeLost
	s.LossReason = reason
	return true
}
