package game

import (
	"math"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
)

// Hitbox returns the entity hitbox: a fixed column at HitboxX, inset from
// the sprite so that grazing contacts do not count.
func Hitbox(e Entity, p config.FlapperPlayer) core.Box {
	h := math.Max(p.HitboxMinHeight, p.Height-p.HitboxShrink)
	return core.NewBox(p.HitboxX, e.Y+p.HitboxInsetTop, p.HitboxWidth, h)
}

// FirstHit returns the index of the first obstacle overlapping the hitbox.
func FirstHit(hitbox core.Box, obstacles []Obstacle) (int, bool) {
	for i, o := range obstacles {
		if hitbox.Overlaps(o.Box()) {
			return i, true
		}
	}
	return -1, false
}

// OutOfBounds reports whether the entity left the top of the play area.
func OutOfBounds(e Entity, deathLine float64) bool {
	return e.Y <= deathLine
}

// Detect reports a terminal collision for the current state. It never
// checks anything while the countdown is running.
func Detect(s *State, cfg config.FlapperConfig) bool {
	if s.Phase == PhaseCountdown {
		return false
	}
	if _, hit := FirstHit(Hitbox(s.Entity, cfg.Player), s.Obstacles); hit {
		return true
	}
	return OutOfBounds(s.Entity, cfg.Physics.DeathLine)
}
