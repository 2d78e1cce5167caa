package glimmer

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testConfig(count int) Config {
	cfg := DefaultConfig()
	cfg.Count = count
	cfg.MaxSpeed = 0.1
	cfg.Lifetime = 60
	cfg.Seed = 1
	return cfg
}

func newTestPool(count int, seed int64) *ParticlePool {
	return NewParticlePool(testConfig(count), rand.New(rand.NewSource(seed)))
}

func TestPoolEmitActivatesFirstFreeSlot(t *testing.T) {
	pool := newTestPool(4, 1)

	s0 := pool.Emit(mgl32.Vec3{1, 2, 0})
	if s0 != 0 {
		t.Errorf("First emit should take slot 0, got %d", s0)
	}
	s1 := pool.Emit(mgl32.Vec3{3, 4, 0})
	if s1 != 1 {
		t.Errorf("Second emit should take slot 1, got %d", s1)
	}

	if pool.ActiveCount() != 2 {
		t.Errorf("Expected 2 active slots, got %d", pool.ActiveCount())
	}
	if pool.pos[s0] != (mgl32.Vec3{1, 2, 0}) {
		t.Errorf("Slot 0 position not set, got %v", pool.pos[s0])
	}
	if pool.life[s0] != 60 {
		t.Errorf("Fresh particle should have configured lifetime, got %d", pool.life[s0])
	}
}

func TestPoolEmitAssignsPaletteColor(t *testing.T) {
	pool := newTestPool(8, 3)

	for i := 0; i < 8; i++ {
		slot := pool.Emit(mgl32.Vec3{})
		got := pool.col[slot]
		found := false
		for _, c := range pool.cfg.Colors {
			if c == got {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Emitted color %v is not in the palette", got)
		}
	}
}

func TestPoolEmitSpeedBounded(t *testing.T) {
	pool := newTestPool(64, 9)

	for i := 0; i < 64; i++ {
		slot := pool.Emit(mgl32.Vec3{})
		speed := pool.vel[slot].Len()
		if speed > pool.cfg.MaxSpeed {
			t.Errorf("Initial speed %v should stay below MaxSpeed %v", speed, pool.cfg.MaxSpeed)
		}
	}
}

func TestPoolCapacityInvariant(t *testing.T) {
	pool := newTestPool(10, 5)

	// Far more emissions than capacity, never more than N active.
	for i := 0; i < 200; i++ {
		pool.Emit(mgl32.Vec3{float32(i), 0, 0})
		if pool.ActiveCount() > pool.Capacity() {
			t.Fatalf("Active count %d exceeds capacity %d", pool.ActiveCount(), pool.Capacity())
		}
	}
	if pool.ActiveCount() != 10 {
		t.Errorf("Saturated pool should have all slots active, got %d", pool.ActiveCount())
	}
}

func TestPoolSaturationOverwritesRandomSlot(t *testing.T) {
	pool := newTestPool(1, 2)

	pool.Emit(mgl32.Vec3{1, 1, 0})
	slot := pool.Emit(mgl32.Vec3{9, 9, 0})

	if slot != 0 {
		t.Errorf("Capacity-1 pool must recycle slot 0, got %d", slot)
	}
	if pool.ActiveCount() != 1 {
		t.Errorf("Two emits into a capacity-1 pool must leave exactly 1 active slot, got %d", pool.ActiveCount())
	}
	if pool.pos[0] != (mgl32.Vec3{9, 9, 0}) {
		t.Errorf("Overwrite should take the newest position, got %v", pool.pos[0])
	}
}

func TestPoolSentinelInvariant(t *testing.T) {
	pool := newTestPool(6, 4)

	for i := 0; i < 6; i++ {
		pool.Emit(mgl32.Vec3{0, 0, 0.5})
	}
	pool.Deactivate(2)
	pool.Deactivate(5)

	for i := 0; i < pool.Capacity(); i++ {
		if pool.active[i] {
			continue
		}
		if pool.pos[i][2] != OffscreenDepth {
			t.Errorf("Inactive slot %d should sit at the offscreen sentinel, got z=%v", i, pool.pos[i][2])
		}
	}
}

func TestPoolReset(t *testing.T) {
	pool := newTestPool(16, 8)
	for i := 0; i < 16; i++ {
		pool.Emit(mgl32.Vec3{1, 1, 1})
	}

	pool.Reset()

	if pool.ActiveCount() != 0 {
		t.Errorf("Reset should deactivate every slot, got %d active", pool.ActiveCount())
	}
	for i := 0; i < pool.Capacity(); i++ {
		if pool.pos[i][2] != OffscreenDepth {
			t.Errorf("Slot %d should be parked offscreen after reset, z=%v", i, pool.pos[i][2])
		}
	}
}

func TestPoolFadeFactor(t *testing.T) {
	pool := newTestPool(1, 1)
	slot := pool.Emit(mgl32.Vec3{})

	pool.life[slot] = 60
	if got := pool.FadeFactor(slot); got != 1 {
		t.Errorf("Lifetime above 30 should not fade, got %v", got)
	}
	pool.life[slot] = 15
	if got := pool.FadeFactor(slot); got != 0.5 {
		t.Errorf("Lifetime 15 should fade to 0.5, got %v", got)
	}
	pool.life[slot] = 0
	if got := pool.FadeFactor(slot); got != 0 {
		t.Errorf("Expired particle should fade to 0, got %v", got)
	}
}

func TestPoolPackedBuffers(t *testing.T) {
	pool := newTestPool(3, 6)
	slot := pool.Emit(mgl32.Vec3{0.25, -0.5, 0})
	pool.packBuffers()

	posData := pool.PositionData()
	colData := pool.ColorData()
	if len(posData) != 9 || len(colData) != 9 {
		t.Fatalf("Buffers should be 3*N long, got %d and %d", len(posData), len(colData))
	}

	if posData[3*slot] != 0.25 || posData[3*slot+1] != -0.5 {
		t.Errorf("Packed position mismatch: %v", posData[3*slot:3*slot+3])
	}
	// Untouched slots stay at the sentinel depth.
	for i := 0; i < 3; i++ {
		if i == slot {
			continue
		}
		if posData[3*i+2] != OffscreenDepth {
			t.Errorf("Inactive slot %d should pack the sentinel depth, got %v", i, posData[3*i+2])
		}
	}
}
