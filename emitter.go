package glimmer

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// TransformComponent places an entity in scene space. Ambient emitters only
// need a position; anything fancier belongs to the host.
type TransformComponent struct {
	Position mgl32.Vec3
}

// EmitterComponent turns an entity into an ambient particle source: a
// fountain or torch the host pins into the scene, feeding the same pool as
// the finger tips. Rate is particles per frame and may be fractional; the
// remainder carries over between frames.
type EmitterComponent struct {
	Enabled bool
	Rate    float32

	spawnAcc float32
}

// fingerEmissionSystem spawns particles from extended finger tips. It runs on
// even frame counters only — halving the emission workload without materially
// changing visual density — and draws a per-tip count uniformly from
// [1, EmissionRate]. Curled fingers never emit.
func fingerEmissionSystem(sim *Simulation) {
	if sim.frame%2 != 0 {
		return
	}
	snap := sim.snapshot
	if snap == nil {
		return
	}

	for h := range snap.Hands {
		hand := &snap.Hands[h]
		for f := 0; f < FingerCount; f++ {
			if !hand.Extended[f] {
				continue
			}
			count := sim.rng.Intn(sim.cfg.EmissionRate) + 1
			at := mgl32.Vec3{hand.Tips[f][0], hand.Tips[f][1], 0}
			for n := 0; n < count; n++ {
				sim.pool.Emit(at)
			}
		}
	}
}

// ambientEmissionSystem services scene-placed emitters every frame. Entities
// are visited in id order, not map order, so a seeded run stays reproducible.
func ambientEmissionSystem(sim *Simulation, cmd *Commands) {
	type source struct {
		eid EntityId
		at  mgl32.Vec3
		em  *EmitterComponent
	}
	var sources []source

	MakeQuery2[TransformComponent, EmitterComponent](cmd).Map(func(eid EntityId, tr *TransformComponent, em *EmitterComponent) bool {
		if em.Enabled {
			sources = append(sources, source{eid: eid, at: tr.Position, em: em})
		}
		return true
	})

	slices.SortFunc(sources, func(a, b source) int {
		return cmp.Compare(a.eid, b.eid)
	})

	for _, src := range sources {
		src.em.spawnAcc += src.em.Rate
		count := int(src.em.spawnAcc)
		src.em.spawnAcc -= float32(count)

		for n := 0; n < count; n++ {
			sim.pool.Emit(src.at)
		}
	}
}
