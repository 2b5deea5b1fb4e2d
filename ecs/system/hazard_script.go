package system

import (
	"fmt"
	"math"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/hungrypig/prefabs"
)

// steeringScript wraps a compiled tengo program that reads dx, dy, chasing
// and speed and writes vx, vy.
type steeringScript struct {
	path     string
	compiled *tengo.Compiled
}

func loadSteeringScript(path string) (*steeringScript, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("steering: load %s: %w", path, err)
	}

	script := tengo.NewScript(src)
	_ = script.Add("dx", 0.0)
	_ = script.Add("dy", 0.0)
	_ = script.Add("chasing", false)
	_ = script.Add("speed", 0.0)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("steering: compile %s: %w", path, err)
	}
	if !compiled.IsDefined("vx") || !compiled.IsDefined("vy") {
		return nil, fmt.Errorf("steering: %s must define vx and vy", path)
	}
	return &steeringScript{path: path, compiled: compiled}, nil
}

func (s *steeringScript) steer(dx, dy float64, chasing bool, speed float64) (float64, float64, error) {
	if err := s.compiled.Set("dx", dx); err != nil {
		return 0, 0, err
	}
	if err := s.compiled.Set("dy", dy); err != nil {
		return 0, 0, err
	}
	if err := s.compiled.Set("chasing", chasing); err != nil {
		return 0, 0, err
	}
	if err := s.compiled.Set("speed", speed); err != nil {
		return 0, 0, err
	}
	if err := s.compiled.Run(); err != nil {
		return 0, 0, fmt.Errorf("steering: run %s: %w", s.path, err)
	}
	return s.compiled.Get("vx").Float(), s.compiled.Get("vy").Float(), nil
}

// steerBird is the built-in steering used when no script is available: home
// in on the player while chasing, otherwise fly off up and to the right.
func steerBird(dx, dy float64, chasing bool, speed float64) (float64, float64) {
	if !chasing {
		return speed, speed
	}
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return 0, 0
	}
	return dx / dist * speed, dy / dist * speed
}
