package state

import (
	"fmt"
	"sort"
	"strings"
)

// EffectKind enumerates the timed modifiers. The declaration order is the
// tie-break order when two effects expire at the same instant.
type EffectKind int

const (
	EffectFaster EffectKind = iota
	EffectJumpPower
	EffectShrink
	EffectGrow
	EffectBird
)

// EffectKinds lists every kind in tie-break order.
var EffectKinds = []EffectKind{EffectFaster, EffectJumpPower, EffectShrink, EffectGrow, EffectBird}

var effectNames = map[EffectKind]string{
	EffectFaster:    "faster",
	EffectJumpPower: "jump_power",
	EffectShrink:    "shrink",
	EffectGrow:      "grow",
	EffectBird:      "bird",
}

func (k EffectKind) String() string {
	if name, ok := effectNames[k]; ok {
		return name
	}
	return fmt.Sprintf("effect(%d)", int(k))
}

func (k EffectKind) Valid() bool {
	_, ok := effectNames[k]
	return ok
}

func ParseEffectKind(s string) (EffectKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for kind, name := range effectNames {
		if name == s {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("state: unknown effect %q", s)
}

// ActiveEffect is one live effect instance.
type ActiveEffect struct {
	Kind   EffectKind
	Expiry float64
}

// ActiveEffects returns the live effects sorted by kind.
func (s *Sim) ActiveEffects() []ActiveEffect {
	if s == nil || len(s.Effects) == 0 {
		return nil
	}
	out := make([]ActiveEffect, 0, len(s.Effects))
	for kind, expiry := range s.Effects {
		out = append(out, ActiveEffect{Kind: kind, Expiry: expiry})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

func (s *Sim) EffectActive(kind EffectKind) bool {
	if s == nil {
		return false
	}
	_, ok := s.Effects[kind]
	return ok
}
