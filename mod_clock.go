package glimmer

import (
	"time"
)

// FrameClock counts simulation frames. The frame counter is the unit of time
// for everything in the engine: particle lifetimes are frames, emission runs
// on even frames, status reporting on a frame interval. Wall-clock Dt is kept
// for hosts that want to display it, but no simulation math reads it.
type FrameClock struct {
	Frame uint64
	Now   time.Time
	Dt    time.Duration
}

type ClockModule struct{}

func (mod ClockModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&FrameClock{Now: time.Now()})
	app.UseSystem(System(clockSystem).InStage(Prelude))
}

func clockSystem(clock *FrameClock) {
	now := time.Now()

	clock.Frame++
	clock.Dt = now.Sub(clock.Now)
	clock.Now = now
}
