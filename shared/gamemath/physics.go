package gamemath

import "github.com/chewxy/math32"

// RoundToInt rounds to the nearest integer with ties away from zero. It is
// the single rounding rule of the wire format.
func RoundToInt(f float32) int32 {
	if f > 0 {
		return int32(f + 0.5)
	}
	return int32(f - 0.5)
}

// SaturatedAdd adds modifier to current without crossing the bound in the
// direction of the modifier. A value already beyond that bound is left alone.
func SaturatedAdd(min, max, current, modifier float32) float32 {
	if modifier < 0 {
		if current < min {
			return current
		}
		current += modifier
		if current < min {
			current = min
		}
		return current
	}
	if current > max {
		return current
	}
	current += modifier
	if current > max {
		current = max
	}
	return current
}

// VelocityRamp returns the horizontal speed factor for value (speed * 50).
// Below start it is 1; above it decays as 1/curvature^((value-start)/range).
func VelocityRamp(value, start, rng, curvature float32) float32 {
	if value < start {
		return 1
	}
	return 1 / math32.Pow(curvature, (value-start)/rng)
}
