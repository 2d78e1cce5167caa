package glimmer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// integrate advances every active slot by one frame. Expiry is checked before
// any force is applied, so a particle never gets a final stray impulse on the
// frame it dies. Slots are visited in ascending index order; with a fixed
// seed the whole pass is reproducible.
func integrate(p *ParticlePool, cfg Config) {
	for i := 0; i < p.capacity; i++ {
		if !p.active[i] {
			continue
		}

		p.life[i]--
		if p.life[i] <= 0 {
			p.Deactivate(i)
			continue
		}

		v := p.vel[i]
		v[1] += cfg.Gravity
		v = v.Mul(cfg.Friction)

		pos := p.pos[i].Add(v)

		if cfg.Bounds != nil {
			pos, v = bounce(pos, v, cfg.Bounds, cfg.BounceStrength)
		}

		p.vel[i] = v
		p.pos[i] = pos
	}
}

// bounce reflects the offending velocity component at a planar boundary,
// scaled by the configured bounce strength, and clamps the position inside.
// z stays unbounded: depth is only used for the offscreen sentinel.
func bounce(pos, vel mgl32.Vec3, b *Bounds, strength float32) (mgl32.Vec3, mgl32.Vec3) {
	if pos[0] < b.Min.X() {
		pos[0] = b.Min.X()
		vel[0] = -vel[0] * strength
	} else if pos[0] > b.Max.X() {
		pos[0] = b.Max.X()
		vel[0] = -vel[0] * strength
	}
	if pos[1] < b.Min.Y() {
		pos[1] = b.Min.Y()
		vel[1] = -vel[1] * strength
	} else if pos[1] > b.Max.Y() {
		pos[1] = b.Max.Y()
		vel[1] = -vel[1] * strength
	}
	return pos, vel
}
