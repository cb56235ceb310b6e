package runtime

import (
	"math"

	"github.com/aretw0/mazewalk/pkg/domain"
)

// signedAngle returns the angle between u and v in radians, in [-π, π].
// The sign follows the out-of-plane component of the cross product, so a
// neighbour on the right-hand side of the direction of travel is positive.
// A zero-length input yields π/2.
func signedAngle(u, v domain.Vec2) float64 {
	lu, lv := u.Len(), v.Len()
	if lu == 0 || lv == 0 {
		return math.Pi / 2
	}

	cos := max(-1, min(1, u.Dot(v)/(lu*lv)))
	angle := math.Acos(cos)
	if u.Y*v.X-u.X*v.Y < 0 {
		return -angle
	}
	return angle
}

// wrapAngle maps an angle onto (-π, π].
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// headingOf returns the yaw of a direction vector.
func headingOf(v domain.Vec2) float64 {
	return math.Atan2(v.Y, v.X)
}

// rotateTowards turns current towards target along the shorter arc by at
// most maxStep radians. The target is returned as is once it is within reach.
func rotateTowards(current, target, maxStep float64) float64 {
	diff := wrapAngle(target - current)
	if math.Abs(diff) <= maxStep {
		return target
	}
	return wrapAngle(current + math.Copysign(maxStep, diff))
}
