package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Epsilon is the overlap tolerance: boxes sharing an edge, or overlapping by
// less than this on either axis, do not collide.
const Epsilon = 1e-6

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// AABB is an axis-aligned rectangle stored as center plus half-extents.
type AABB struct {
	Center cp.Vector
	HalfW  float64
	HalfH  float64
}

func NewAABB(center cp.Vector, halfW, halfH float64) AABB {
	return AABB{Center: center, HalfW: halfW, HalfH: halfH}
}

func (a AABB) Left() float64   { return a.Center.X - a.HalfW }
func (a AABB) Right() float64  { return a.Center.X + a.HalfW }
func (a AABB) Bottom() float64 { return a.Center.Y - a.HalfH }
func (a AABB) Top() float64    { return a.Center.Y + a.HalfH }

// BB converts to a Chipmunk bounding box.
func (a AABB) BB() cp.BB {
	return cp.BB{L: a.Left(), B: a.Bottom(), R: a.Right(), T: a.Top()}
}

func (a AABB) Translate(d cp.Vector) AABB {
	a.Center = a.Center.Add(d)
	return a
}

// Intersection returns the shared rectangle and whether it exceeds Epsilon on
// both axes.
func (a AABB) Intersection(b AABB) (cp.BB, bool) {
	bb := cp.BB{
		L: math.Max(a.Left(), b.Left()),
		B: math.Max(a.Bottom(), b.Bottom()),
		R: math.Min(a.Right(), b.Right()),
		T: math.Min(a.Top(), b.Top()),
	}
	return bb, bb.R-bb.L > Epsilon && bb.T-bb.B > Epsilon
}

func (a AABB) Overlaps(b AABB) bool {
	_, ok := a.Intersection(b)
	return ok
}

// OverlapExtents returns the width and height of the intersection, or zeros
// when the boxes do not overlap.
func (a AABB) OverlapExtents(b AABB) (w, h float64) {
	bb, ok := a.Intersection(b)
	if !ok {
		return 0, 0
	}
	return bb.R - bb.L, bb.T - bb.B
}

// Penetration measures how far a has entered b along axis, seen from the side
// a is travelling from. dir is the sign of travel; zero means no travel and
// the shallower side is used.
func (a AABB) Penetration(b AABB, axis Axis, dir float64) float64 {
	var fwd, back float64
	if axis == AxisX {
		fwd = a.Right() - b.Left()
		back = b.Right() - a.Left()
	} else {
		fwd = a.Top() - b.Bottom()
		back = b.Top() - a.Bottom()
	}
	switch {
	case dir > 0:
		return fwd
	case dir < 0:
		return back
	}
	return math.Min(fwd, back)
}

// Union returns the smallest box containing both a and b.
func Union(a, b cp.BB) cp.BB {
	return cp.BB{
		L: math.Min(a.L, b.L),
		B: math.Min(a.B, b.B),
		R: math.Max(a.R, b.R),
		T: math.Max(a.T, b.T),
	}
}

// Grow pads bb by dx horizontally and dy vertically on each side.
func Grow(bb cp.BB, dx, dy float64) cp.BB {
	return cp.BB{L: bb.L - dx, B: bb.B - dy, R: bb.R + dx, T: bb.T + dy}
}
