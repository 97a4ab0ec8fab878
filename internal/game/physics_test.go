package game

import (
	"math"
	"testing"

	"github.com/vovakirdan/flapper/internal/config"
)

func testPhysics() config.FlapperPhysics {
	return config.DefaultFlapperConfig().Physics
}

func TestIntegrateFormula(t *testing.T) {
	p := testPhysics()
	const height = 20.0

	tests := []struct {
		name    string
		y, v, g float64
		wantV   float64
	}{
		{"free fall", 40, 1, 0.15, 1.15},
		{"rising", 50, -6, 0.15, -5.85},
		{"fall clamped", 30, 7.95, 0.15, 8},
		{"rise clamped", 60, -9, 0.15, -8},
		{"zero gravity", 40, 2, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Integrate(Entity{Y: tt.y, Velocity: tt.v}, tt.g, p, height)
			if math.Abs(got.Velocity-tt.wantV) > 1e-9 {
				t.Errorf("velocity = %v, want %v", got.Velocity, tt.wantV)
			}
			if math.Abs(got.Y-(tt.y+tt.wantV)) > 1e-9 {
				t.Errorf("y = %v, want %v", got.Y, tt.y+tt.wantV)
			}
			if got.Grounded {
				t.Error("entity should be airborne")
			}
		})
	}
}

func TestIntegrateGroundIsIdempotent(t *testing.T) {
	p := testPhysics()
	const height = 20.0
	rest := p.GroundLine - height

	e := Entity{Y: rest, Grounded: true}
	for i := 0; i < 100; i++ {
		e = Integrate(e, p.Gravity, p, height)
		if e.Y != rest || e.Velocity != 0 || !e.Grounded {
			t.Fatalf("frame %d: got %+v, want resting at %v", i, e, rest)
		}
	}
}

func TestIntegrateLandsFromAbove(t *testing.T) {
	p := testPhysics()
	e := Integrate(Entity{Y: 64, Velocity: 3}, 0.15, p, 20)

	if e.Y != 65 || e.Velocity != 0 || !e.Grounded {
		t.Errorf("got %+v, want landed at 65", e)
	}
}

func TestIntegrateCeiling(t *testing.T) {
	p := testPhysics()
	e := Integrate(Entity{Y: 22, Velocity: -8}, 0.15, p, 20)

	if e.Y != p.CeilingLine {
		t.Errorf("y = %v, want ceiling %v", e.Y, p.CeilingLine)
	}
	if e.Velocity != 0 {
		t.Errorf("velocity = %v, want 0", e.Velocity)
	}
}

func TestImpulseReplacesVelocity(t *testing.T) {
	p := testPhysics()
	e := Impulse(Entity{Y: 50, Velocity: 5}, p)

	if e.Velocity != p.JumpImpulse {
		t.Errorf("velocity = %v, want %v", e.Velocity, p.JumpImpulse)
	}
	if e.Y != 50 {
		t.Errorf("impulse must not move the entity, y = %v", e.Y)
	}
}
