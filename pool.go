package glimmer

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// OffscreenDepth is the sentinel z coordinate of an inactive slot. A renderer
// that ignores the active flags still draws nothing visible for such a slot.
const OffscreenDepth float32 = -1000

// ParticlePool is fixed-capacity, slot-indexed storage for every particle
// attribute, kept as parallel arrays. The pool exclusively owns and mutates
// them; renderers only ever see the packed float32 buffers. A slot index is
// stable only while the slot stays active — once deactivated it may be handed
// out again by any later Emit.
type ParticlePool struct {
	capacity int
	cfg      Config
	rng      *rand.Rand

	pos    []mgl32.Vec3
	vel    []mgl32.Vec3
	col    []mgl32.Vec3
	life   []int32
	active []bool

	activeCount int

	// Packed copies for the renderer, refreshed once per frame.
	posBuf []float32
	colBuf []float32
}

// NewParticlePool allocates all slots up front; nothing grows afterwards. The
// random source is shared with the rest of the simulation so a fixed seed
// reproduces frames exactly.
func NewParticlePool(cfg Config, rng *rand.Rand) *ParticlePool {
	n := cfg.Count
	p := &ParticlePool{
		capacity: n,
		cfg:      cfg,
		rng:      rng,
		pos:      make([]mgl32.Vec3, n),
		vel:      make([]mgl32.Vec3, n),
		col:      make([]mgl32.Vec3, n),
		life:     make([]int32, n),
		active:   make([]bool, n),
		posBuf:   make([]float32, 3*n),
		colBuf:   make([]float32, 3*n),
	}
	for i := range p.pos {
		p.pos[i][2] = OffscreenDepth
	}
	p.packBuffers()
	return p
}

func (p *ParticlePool) Capacity() int    { return p.capacity }
func (p *ParticlePool) ActiveCount() int { return p.activeCount }

// SetConfig swaps the emission parameters (speed, lifetime, palette). The
// capacity is fixed; a count change needs a new pool.
func (p *ParticlePool) SetConfig(cfg Config) {
	p.cfg = cfg
}

// Emit activates a slot at the given position and returns its index. The
// first inactive slot wins; when the pool is saturated a uniformly-random
// slot is overwritten instead. Under load the effect keeps producing motion
// at the cost of visibly truncating one random particle — saturation is a
// degradation, never an error.
func (p *ParticlePool) Emit(at mgl32.Vec3) int {
	slot := -1
	for i, a := range p.active {
		if !a {
			slot = i
			break
		}
	}
	if slot == -1 {
		slot = p.rng.Intn(p.capacity)
	} else {
		p.activeCount++
	}

	p.active[slot] = true
	p.pos[slot] = at
	p.vel[slot] = p.randomVelocity()
	p.life[slot] = p.cfg.Lifetime
	p.col[slot] = p.cfg.Colors[p.rng.Intn(len(p.cfg.Colors))]
	return slot
}

// Deactivate clears a slot and parks its position at the offscreen sentinel.
func (p *ParticlePool) Deactivate(i int) {
	if p.active[i] {
		p.active[i] = false
		p.activeCount--
	}
	p.pos[i][2] = OffscreenDepth
}

// Reset deactivates every slot unconditionally.
func (p *ParticlePool) Reset() {
	for i := range p.active {
		p.Deactivate(i)
	}
}

// FadeFactor is the render alpha derived from remaining lifetime: particles
// fade linearly over their final 30 frames. Computed on demand, never stored.
func (p *ParticlePool) FadeFactor(i int) float32 {
	life := p.life[i]
	if life <= 0 {
		return 0
	}
	if life >= 30 {
		return 1
	}
	return float32(life) / 30
}

// PositionData is the packed xyz buffer of length 3*Capacity. Inactive slots
// carry the offscreen sentinel on z. The returned slice is reused every
// frame; the renderer must treat it as read-only.
func (p *ParticlePool) PositionData() []float32 { return p.posBuf }

// ColorData is the packed normalized-RGB buffer of length 3*Capacity.
func (p *ParticlePool) ColorData() []float32 { return p.colBuf }

func (p *ParticlePool) packBuffers() {
	for i := 0; i < p.capacity; i++ {
		p.posBuf[3*i+0] = p.pos[i][0]
		p.posBuf[3*i+1] = p.pos[i][1]
		p.posBuf[3*i+2] = p.pos[i][2]
		p.colBuf[3*i+0] = p.col[i][0]
		p.colBuf[3*i+1] = p.col[i][1]
		p.colBuf[3*i+2] = p.col[i][2]
	}
}

// Uniform direction on the sphere times a speed in [0, MaxSpeed).
func (p *ParticlePool) randomVelocity() mgl32.Vec3 {
	cosTheta := 2*p.rng.Float32() - 1
	sinTheta := float32(math.Sqrt(float64(1 - cosTheta*cosTheta)))
	phi := 2 * float32(math.Pi) * p.rng.Float32()

	dir := mgl32.Vec3{
		sinTheta * float32(math.Cos(float64(phi))),
		sinTheta * float32(math.Sin(float64(phi))),
		cosTheta,
	}
	return dir.Mul(p.rng.Float32() * p.cfg.MaxSpeed)
}
