// Package core provides the small shared types of the arena: screen cells,
// input frames, vectors and boxes. It has no external dependencies so the
// simulation packages stay pure and testable.
package core

import "math"

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Vec2 is a point or direction in world units. Y grows upward.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64  { return v.Sub(o).Len() }
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Normalized returns the unit vector in the same direction, or zero.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// FromAngle returns the unit vector for an angle in degrees,
// measured counter-clockwise from +X.
func FromAngle(deg float64) Vec2 {
	rad := deg * math.Pi / 180
	return Vec2{math.Cos(rad), math.Sin(rad)}
}

// Box is an axis-aligned box in world units, stored as center and half size.
type Box struct {
	Center Vec2
	Half   Vec2
}

// BoxAt builds a box from a center and a full size.
func BoxAt(center, size Vec2) Box {
	return Box{Center: center, Half: size.Scale(0.5)}
}

// Min returns the lower-left corner.
func (b Box) Min() Vec2 { return b.Center.Sub(b.Half) }

// Max returns the upper-right corner.
func (b Box) Max() Vec2 { return b.Center.Add(b.Half) }

// Overlaps reports whether two boxes intersect. Touching edges do not count.
func (b Box) Overlaps(o Box) bool {
	return math.Abs(b.Center.X-o.Center.X) < b.Half.X+o.Half.X &&
		math.Abs(b.Center.Y-o.Center.Y) < b.Half.Y+o.Half.Y
}

// Contains reports whether the point lies inside the box.
func (b Box) Contains(p Vec2) bool {
	return math.Abs(p.X-b.Center.X) <= b.Half.X && math.Abs(p.Y-b.Center.Y) <= b.Half.Y
}

// SegmentHit intersects the segment from->to with the box using the slab
// method. It returns the entry fraction t in [0,1] along the segment and
// the surface normal at the entry point. A segment starting inside the box
// hits at t=0 with the normal pointing against the direction of travel.
func (b Box) SegmentHit(from, to Vec2) (t float64, normal Vec2, ok bool) {
	d := to.Sub(from)
	lo, hi := b.Min(), b.Max()
	tmin, tmax := 0.0, 1.0

	axes := [2]struct {
		o, d, lo, hi float64
		n            Vec2
	}{
		{from.X, d.X, lo.X, hi.X, Vec2{X: 1}},
		{from.Y, d.Y, lo.Y, hi.Y, Vec2{Y: 1}},
	}

	for _, a := range axes {
		if a.d == 0 {
			if a.o < a.lo || a.o > a.hi {
				return 0, Vec2{}, false
			}
			continue
		}
		t1 := (a.lo - a.o) / a.d
		t2 := (a.hi - a.o) / a.d
		n := a.n.Scale(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			n = a.n
		}
		if t1 > tmin {
			tmin = t1
			normal = n
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, Vec2{}, false
		}
	}

	if normal == (Vec2{}) {
		normal = d.Normalized().Scale(-1)
	}
	return tmin, normal, true
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// MoveTowards moves current toward target by at most maxDelta.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// PingPong bounces t between 0 and length, producing a triangle wave.
func PingPong(t, length float64) float64 {
	if length <= 0 {
		return 0
	}
	period := 2 * length
	m := math.Mod(t, period)
	if m < 0 {
		m += period
	}
	return length - math.Abs(m-length)
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
