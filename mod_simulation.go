package glimmer

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Simulation bundles the particle pool with its configuration, random source
// and the hand snapshot latched for the current frame. All of it is mutated
// only from inside Step; the only concurrent entry point is ApplyConfig,
// which stages a pending config for the next frame boundary.
type Simulation struct {
	session string
	cfg     Config
	pool    *ParticlePool
	rng     *rand.Rand

	frame    uint64
	snapshot *HandSnapshot

	pendingMu sync.Mutex
	pending   *Config
}

func NewSimulation(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	return &Simulation{
		session: uuid.NewString(),
		cfg:     cfg,
		pool:    NewParticlePool(cfg, rng),
		rng:     rng,
	}, nil
}

// Session identifies this simulation instance in status records and logs.
func (s *Simulation) Session() string { return s.session }

// Config returns the configuration the current frame is running with.
func (s *Simulation) Config() Config { return s.cfg }

// Pool exposes the particle pool for direct hosts and tests. Renderers
// should stick to PositionData/ColorData.
func (s *Simulation) Pool() *ParticlePool { return s.pool }

// PositionData is the packed position buffer of the last completed frame.
func (s *Simulation) PositionData() []float32 { return s.pool.PositionData() }

// ColorData is the packed color buffer of the last completed frame.
func (s *Simulation) ColorData() []float32 { return s.pool.ColorData() }

// ApplyConfig validates cfg and stages it for the next frame boundary; the
// frame in flight finishes under the old values. A changed Count rebuilds the
// pool, dropping all live particles. Safe to call from any goroutine.
func (s *Simulation) ApplyConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("apply rejected: %w", err)
	}

	s.pendingMu.Lock()
	s.pending = &cfg
	s.pendingMu.Unlock()
	return nil
}

func (s *Simulation) takePending() *Config {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	cfg := s.pending
	s.pending = nil
	return cfg
}

// simPreludeSystem runs before any simulation work in a frame: it applies a
// staged configuration, syncs the frame counter and latches the newest hand
// snapshot. The latched snapshot is used for the whole frame even if the
// detector publishes mid-frame.
func simPreludeSystem(sim *Simulation, clock *FrameClock, mailbox *SnapshotMailbox) {
	if cfg := sim.takePending(); cfg != nil {
		if cfg.Count != sim.cfg.Count {
			sim.pool = NewParticlePool(*cfg, sim.rng)
		} else {
			sim.pool.SetConfig(*cfg)
		}
		sim.cfg = *cfg
	}

	sim.frame = clock.Frame
	sim.snapshot = mailbox.Latest()
}

func integrateSystem(sim *Simulation) {
	integrate(sim.pool, sim.cfg)
}

func interactionSystem(sim *Simulation) {
	applyInteraction(sim.pool, sim.snapshot, sim.cfg)
}

func packBuffersSystem(sim *Simulation) {
	sim.pool.packBuffers()
}

// SimulationModule wires the whole per-frame pipeline: emission → integration
// → interaction → buffer packing → status. It expects ClockModule and
// HandPoseModule to be installed first.
type SimulationModule struct {
	Config Config
}

func (mod SimulationModule) Install(app *App, cmd *Commands) {
	sim, err := NewSimulation(mod.Config)
	if err != nil {
		panic(fmt.Sprintf("SimulationModule: %v", err))
	}

	cmd.AddResources(sim, NewStatusBoard())

	app.UseSystem(
		System(simPreludeSystem).InStage(Prelude),
	).UseSystem(
		System(fingerEmissionSystem).InStage(PreUpdate),
	).UseSystem(
		System(ambientEmissionSystem).InStage(PreUpdate),
	).UseSystem(
		System(integrateSystem).InStage(Update),
	).UseSystem(
		System(interactionSystem).InStage(PostUpdate),
	).UseSystem(
		System(packBuffersSystem).InStage(PreRender),
	).UseSystem(
		System(statusSystem).InStage(Finale),
	)
}
