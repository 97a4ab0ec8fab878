package game

import (
	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

// Integrate advances the entity by one frame under the given gravity.
//
//	v' = clamp(v + g, -maxUp, maxFall)
//	y' = y + v'
//
// then clamps to the ground (landing zeroes velocity and sets Grounded)
// and to the ceiling (zeroes velocity).
func Integrate(e Entity, gravity float64, p config.FlapperPhysics, height float64) Entity {
	e.Velocity = core.ClampF(e.Velocity+gravity, -p.MaxUpSpeed, p.MaxFallSpeed)
	e.Y += e.Velocity

	if e.Y+height >= p.GroundLine {
		e.Y = p.GroundLine - height
		e.Velocity = 0
		e.Grounded = true
	} else {
		e.Grounded = false
	}

	if e.Y < p.CeilingLine {
		e.Y = p.CeilingLine
		e.Velocity = 0
	}
	return e
}

// Impulse applies a jump: velocity is replaced, not added to.
func Impulse(e Entity, p config.FlapperPhysics) Entity {
	e.Velocity = p.JumpImpulse
	return e
}
