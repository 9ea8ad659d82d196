// Package gamemath holds the float32 helpers shared by collision and the
// character core. Products are wrapped in explicit float32 conversions so the
// compiler cannot fuse them into FMA instructions on arm64 and friends; fused
// and unfused results differ in the last bit and break replays.
package gamemath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec2 is the vector type of the simulation.
type Vec2 = mgl32.Vec2

// Dot returns the dot product of a and b.
func Dot(a, b Vec2) float32 {
	return float32(a[0]*b[0]) + float32(a[1]*b[1])
}

// Length returns the euclidean length of v.
func Length(v Vec2) float32 {
	return math32.Sqrt(Dot(v, v))
}

// Distance returns the distance between a and b.
func Distance(a, b Vec2) float32 {
	return Length(a.Sub(b))
}

// Normalize returns v scaled to unit length, or the zero vector if v has no
// length.
func Normalize(v Vec2) Vec2 {
	l := Length(v)
	if l == 0 {
		return Vec2{}
	}
	inv := 1 / l
	return Vec2{float32(v[0] * inv), float32(v[1] * inv)}
}

// Scale returns v multiplied by s.
func Scale(v Vec2, s float32) Vec2 {
	return Vec2{float32(v[0] * s), float32(v[1] * s)}
}

// Mix linearly interpolates between a and b.
func Mix(a, b Vec2, t float32) Vec2 {
	return Vec2{
		a[0] + float32((b[0]-a[0])*t),
		a[1] + float32((b[1]-a[1])*t),
	}
}

// ClosestPointOnLine projects p onto the segment from a to b. It reports false
// when the segment is degenerate.
func ClosestPointOnLine(a, b, p Vec2) (Vec2, bool) {
	ab := b.Sub(a)
	sq := Dot(ab, ab)
	if sq == 0 {
		return Vec2{}, false
	}
	t := Dot(p.Sub(a), ab) / sq
	t = mgl32.Clamp(t, 0, 1)
	return a.Add(Scale(ab, t)), true
}
