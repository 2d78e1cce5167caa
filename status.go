package glimmer

import (
	"sync/atomic"
)

// StatusRecord is a coarse pool-usage observation, published on an interval
// rather than every frame to bound observation overhead.
type StatusRecord struct {
	Session         string
	Frame           uint64
	ActiveParticles int
	MaxParticles    int
	UsagePercentage float64
}

// StatusBoard holds the latest record behind an atomic pointer, so monitoring
// code on any goroutine can poll it without touching simulation state.
type StatusBoard struct {
	latest atomic.Pointer[StatusRecord]
}

func NewStatusBoard() *StatusBoard {
	return &StatusBoard{}
}

// Latest returns the most recent record, or nil before the first interval.
func (b *StatusBoard) Latest() *StatusRecord {
	return b.latest.Load()
}

func statusSystem(sim *Simulation, board *StatusBoard, cmd *Commands) {
	interval := sim.cfg.statusInterval()
	if sim.frame == 0 || sim.frame%interval != 0 {
		return
	}

	record := &StatusRecord{
		Session:         sim.session,
		Frame:           sim.frame,
		ActiveParticles: sim.pool.ActiveCount(),
		MaxParticles:    sim.pool.Capacity(),
	}
	record.UsagePercentage = 100 * float64(record.ActiveParticles) / float64(record.MaxParticles)

	board.latest.Store(record)
	cmd.app.Logger().Debugf("particles %d/%d (%.1f%%) session=%s frame=%d",
		record.ActiveParticles, record.MaxParticles, record.UsagePercentage,
		record.Session, record.Frame)
}
