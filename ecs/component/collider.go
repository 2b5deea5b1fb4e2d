package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/hungrypig/common"
)

// Collider is an axis-aligned box centered on the entity's Transform.
type Collider struct {
	HalfW float64
	HalfH float64
}

// AABB returns the collider placed at t.
func (c Collider) AABB(t *Transform) common.AABB {
	if t == nil {
		return common.NewAABB(cp.Vector{}, c.HalfW, c.HalfH)
	}
	return common.NewAABB(cp.Vector{X: t.X, Y: t.Y}, c.HalfW, c.HalfH)
}

var ColliderComponent = NewComponent[Collider]()
