package glimmer

import (
	"math"
)

const (
	// Distances below this are treated as this, so the pull normalization
	// never divides by zero when a particle sits exactly on a tip.
	distanceEpsilon = 1e-5

	// Fraction of the hand's estimated velocity imparted to every particle a
	// tip touches, on x and y.
	handVelocityCoupling = 0.1

	// Per-contact push of the red channel toward full saturation.
	saturationPush = 0.1

	// Frames of life a particle gains per tip contact: fingers feed
	// particles, they don't just stir them.
	contactLifeBonus = 5
)

// applyInteraction couples every active particle to every extended finger tip
// within the interaction radius. Distance is planar; z is ignored. The pull
// falls off linearly from 0.5 at zero distance to zero at the radius, and the
// particle is drawn toward the tip. Contributions accumulate additively in a
// fixed order — slots ascending, hands in snapshot order, tips thumb to pinky
// — so identical snapshots yield identical frames.
func applyInteraction(p *ParticlePool, snap *HandSnapshot, cfg Config) {
	if snap == nil || len(snap.Hands) == 0 {
		return
	}

	radius := cfg.InteractionRadius

	for i := 0; i < p.capacity; i++ {
		if !p.active[i] {
			continue
		}

		px := p.pos[i][0]
		py := p.pos[i][1]

		for h := range snap.Hands {
			hand := &snap.Hands[h]
			for f := 0; f < FingerCount; f++ {
				if !hand.Extended[f] {
					continue
				}

				dx := hand.Tips[f][0] - px
				dy := hand.Tips[f][1] - py
				dist := float32(math.Hypot(float64(dx), float64(dy)))
				if dist >= radius {
					continue
				}
				if dist < distanceEpsilon {
					dist = distanceEpsilon
				}

				s := 0.5 * (1 - dist/radius)
				p.vel[i][0] += s*(dx/dist) + handVelocityCoupling*hand.Velocity.X()
				p.vel[i][1] += s*(dy/dist) + handVelocityCoupling*hand.Velocity.Y()

				p.col[i][0] += saturationPush
				if p.col[i][0] > 1 {
					p.col[i][0] = 1
				}

				p.life[i] += contactLifeBonus
			}
		}
	}
}
