package system

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hungrypig/common"
	"github.com/milk9111/hungrypig/ecs"
	"github.com/milk9111/hungrypig/ecs/component"
)

// solidRef is one solid collider returned by a broadphase query.
type solidRef struct {
	entity ecs.Entity
	box    common.AABB
}

// SolidIndex mirrors solid colliders into a chipmunk static BB tree so the
// resolver only tests geometry near a moving body. Code that spawns, moves
// or removes solids calls Invalidate; the index walks the world again only
// then.
type SolidIndex struct {
	space    *cp.Space
	shapes   map[ecs.Entity]*cp.Shape
	boxes    map[ecs.Entity]common.AABB
	entities map[*cp.Shape]ecs.Entity
	dirty    bool
}

func NewSolidIndex() *SolidIndex {
	idx := &SolidIndex{}
	idx.Reset()
	return idx
}

// Reset forgets every indexed solid.
func (idx *SolidIndex) Reset() {
	idx.space = cp.NewSpace()
	idx.shapes = make(map[ecs.Entity]*cp.Shape)
	idx.boxes = make(map[ecs.Entity]common.AABB)
	idx.entities = make(map[*cp.Shape]ecs.Entity)
	idx.dirty = true
}

// Invalidate marks the index stale. A nil index ignores the call.
func (idx *SolidIndex) Invalidate() {
	if idx != nil {
		idx.dirty = true
	}
}

// Refresh syncs the index if it was invalidated since the last sync.
func (idx *SolidIndex) Refresh(w *ecs.World) {
	if idx.dirty {
		idx.Sync(w)
	}
}

func (idx *SolidIndex) Len() int {
	return len(idx.shapes)
}

// Sync adds new or moved solids and drops the ones that died or lost
// FlagSolid since the last call.
func (idx *SolidIndex) Sync(w *ecs.World) {
	idx.dirty = false
	seen := make(map[ecs.Entity]struct{}, len(idx.shapes))
	ecs.ForEach3(w, component.TransformComponent.Kind(), component.ColliderComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, t *component.Transform, c *component.Collider, b *component.Body) {
		if !b.Solid() {
			return
		}
		seen[e] = struct{}{}
		box := c.AABB(t)
		if prev, ok := idx.boxes[e]; ok && prev == box {
			return
		}
		idx.remove(e)
		shape := idx.space.AddShape(cp.NewBox2(idx.space.StaticBody, box.BB(), 0))
		idx.shapes[e] = shape
		idx.boxes[e] = box
		idx.entities[shape] = e
	})

	for e := range idx.shapes {
		if _, ok := seen[e]; !ok {
			idx.remove(e)
		}
	}
}

func (idx *SolidIndex) remove(e ecs.Entity) {
	shape, ok := idx.shapes[e]
	if !ok {
		return
	}
	idx.space.RemoveShape(shape)
	delete(idx.entities, shape)
	delete(idx.shapes, e)
	delete(idx.boxes, e)
}

// query returns the solids whose boxes touch bb, ordered by entity handle.
func (idx *SolidIndex) query(bb cp.BB) []solidRef {
	var out []solidRef
	idx.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		e, ok := idx.entities[shape]
		if !ok {
			return
		}
		out = append(out, solidRef{entity: e, box: idx.boxes[e]})
	}, nil)
	sort.Slice(out, func(i, j int) bool { return out[i].entity < out[j].entity })
	return out
}

// Overlapping reports the solids box overlaps beyond common.Epsilon.
func (idx *SolidIndex) Overlapping(box common.AABB) []ecs.Entity {
	var out []ecs.Entity
	for _, ref := range idx.query(box.BB()) {
		if box.Overlaps(ref.box) {
			out = append(out, ref.entity)
		}
	}
	return out
}
