package glimmer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIntegrateLifetimeMonotonicity(t *testing.T) {
	cfg := testConfig(4)
	cfg.Gravity = 0
	cfg.Friction = 1.0
	pool := newTestPool(4, 1)
	pool.SetConfig(cfg)

	slot := pool.Emit(mgl32.Vec3{})
	life := pool.life[slot]

	for frame := 0; frame < int(life); frame++ {
		wasActive := pool.active[slot]
		integrate(pool, cfg)

		if !wasActive {
			t.Fatalf("Slot died earlier than its lifetime allowed, frame %d", frame)
		}
		if pool.active[slot] {
			if pool.life[slot] != life-int32(frame)-1 {
				t.Fatalf("Lifetime should decrease by exactly 1 per frame, got %d at frame %d", pool.life[slot], frame)
			}
		}
	}

	// life frames later the slot is gone, on the same frame it hit zero.
	if pool.active[slot] {
		t.Errorf("Slot should be inactive once its lifetime is spent")
	}
	if pool.pos[slot][2] != OffscreenDepth {
		t.Errorf("Expired slot should be parked at the sentinel, z=%v", pool.pos[slot][2])
	}

	// And it stays inactive.
	integrate(pool, cfg)
	if pool.active[slot] {
		t.Errorf("Expired slot must stay inactive until re-emitted")
	}
}

func TestIntegrateSingleParticleNoForces(t *testing.T) {
	// Friction 1.0, no gravity: one update moves the particle by exactly its
	// initial velocity and burns one frame of lifetime.
	cfg := testConfig(10)
	cfg.Gravity = 0
	cfg.Friction = 1.0
	pool := newTestPool(10, 7)
	pool.SetConfig(cfg)

	slot := pool.Emit(mgl32.Vec3{0, 0, 0})
	v0 := pool.vel[slot]

	integrate(pool, cfg)

	if pool.ActiveCount() != 1 {
		t.Errorf("Expected exactly 1 active slot, got %d", pool.ActiveCount())
	}
	if pool.pos[slot] != v0 {
		t.Errorf("Position should equal origin plus initial velocity, got %v want %v", pool.pos[slot], v0)
	}
	if pool.life[slot] != cfg.Lifetime-1 {
		t.Errorf("Lifetime should be configured lifetime minus 1, got %d", pool.life[slot])
	}
}

func TestIntegrateGravityAndFriction(t *testing.T) {
	cfg := testConfig(1)
	cfg.Gravity = -0.1
	cfg.Friction = 0.5
	pool := newTestPool(1, 2)
	pool.SetConfig(cfg)

	slot := pool.Emit(mgl32.Vec3{})
	pool.vel[slot] = mgl32.Vec3{1, 1, 1}
	pool.pos[slot] = mgl32.Vec3{}

	integrate(pool, cfg)

	want := mgl32.Vec3{0.5, 0.45, 0.5} // (1, 1-0.1, 1) * 0.5
	if pool.vel[slot] != want {
		t.Errorf("Velocity after gravity+friction should be %v, got %v", want, pool.vel[slot])
	}
	if pool.pos[slot] != want {
		t.Errorf("Position should integrate the damped velocity, got %v", pool.pos[slot])
	}
}

func TestIntegrateExpiryBeforeForces(t *testing.T) {
	// A particle on its last frame must not receive gravity before dying.
	cfg := testConfig(1)
	cfg.Gravity = -5
	pool := newTestPool(1, 3)
	pool.SetConfig(cfg)

	slot := pool.Emit(mgl32.Vec3{0, 1, 0})
	pool.life[slot] = 1
	pool.vel[slot] = mgl32.Vec3{}
	posBefore := pool.pos[slot]

	integrate(pool, cfg)

	if pool.active[slot] {
		t.Fatalf("Slot should deactivate the frame its lifetime reaches zero")
	}
	if pool.pos[slot][0] != posBefore[0] || pool.pos[slot][1] != posBefore[1] {
		t.Errorf("Expiring particle must not move, got %v", pool.pos[slot])
	}
	if pool.vel[slot] != (mgl32.Vec3{}) {
		t.Errorf("Expiring particle must not take a final impulse, got %v", pool.vel[slot])
	}
}

func TestIntegrateBounce(t *testing.T) {
	cfg := testConfig(1)
	cfg.Gravity = 0
	cfg.Friction = 1.0
	cfg.BounceStrength = 0.5
	cfg.Bounds = &Bounds{Min: mgl32.Vec2{-1, -1}, Max: mgl32.Vec2{1, 1}}
	pool := newTestPool(1, 4)
	pool.SetConfig(cfg)

	slot := pool.Emit(mgl32.Vec3{0, -0.95, 0})
	pool.vel[slot] = mgl32.Vec3{0, -0.2, 0}

	integrate(pool, cfg)

	if pool.pos[slot][1] != -1 {
		t.Errorf("Particle should be clamped to the floor, got y=%v", pool.pos[slot][1])
	}
	if pool.vel[slot][1] != 0.1 {
		t.Errorf("Velocity should reflect scaled by bounce strength, got vy=%v", pool.vel[slot][1])
	}
}

func TestIntegrateWithoutBoundsNeverBounces(t *testing.T) {
	cfg := testConfig(1)
	cfg.Gravity = 0
	cfg.Friction = 1.0
	cfg.Bounds = nil
	pool := newTestPool(1, 5)
	pool.SetConfig(cfg)

	slot := pool.Emit(mgl32.Vec3{0, -100, 0})
	pool.vel[slot] = mgl32.Vec3{0, -3, 0}

	integrate(pool, cfg)

	if pool.pos[slot][1] != -103 {
		t.Errorf("Unbounded particle should keep falling, got y=%v", pool.pos[slot][1])
	}
}
