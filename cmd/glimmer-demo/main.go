// glimmer-demo drives the particle simulation with a synthetic hand and
// presents the packed buffers in an ebiten window. It stands in for the real
// collaborators: the gesture goroutine plays the hand-pose detector, the Draw
// method plays the renderer. The simulation core never sees either.
package main

import (
	"image/color"
	"log"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/glimmer3d/glimmer"
)

const (
	screenWidth  = 960
	screenHeight = 720

	// Scene space is centered at the origin; one scene unit maps to this many
	// pixels on screen.
	sceneScale = 300
)

type Game struct {
	app  *glimmer.App
	sim  *glimmer.Simulation
	size float32
}

func (g *Game) Update() error {
	g.app.Step()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	positions := g.sim.PositionData()
	colors := g.sim.ColorData()
	pool := g.sim.Pool()

	for i := 0; i < pool.Capacity(); i++ {
		z := positions[3*i+2]
		if z == glimmer.OffscreenDepth {
			continue
		}

		x := float32(screenWidth)/2 + positions[3*i]*sceneScale
		y := float32(screenHeight)/2 - positions[3*i+1]*sceneScale

		fade := pool.FadeFactor(i)
		clr := color.NRGBA{
			R: uint8(255 * colors[3*i]),
			G: uint8(255 * colors[3*i+1]),
			B: uint8(255 * colors[3*i+2]),
			A: uint8(255 * fade),
		}
		vector.DrawFilledCircle(screen, x, y, g.size, clr, false)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// syntheticHand publishes a circling two-finger hand at a detector-like
// cadence, slower than the frame rate, so the mailbox semantics get exercised
// the way a real detector would.
func syntheticHand(mailbox *glimmer.SnapshotMailbox) {
	start := time.Now()
	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	var prevX, prevY float32
	for range ticker.C {
		t := time.Since(start).Seconds()

		cx := float32(0.7 * math.Cos(t))
		cy := float32(0.5 * math.Sin(2*t))

		hand := glimmer.Hand{
			Velocity: mgl32.Vec2{(cx - prevX) * 4, (cy - prevY) * 4},
		}
		prevX, prevY = cx, cy

		// Index and middle finger extended, slightly apart.
		hand.Tips[glimmer.Index] = mgl32.Vec3{cx, cy, 0}
		hand.Extended[glimmer.Index] = true
		hand.Tips[glimmer.Middle] = mgl32.Vec3{cx + 0.08, cy + 0.04, 0}
		hand.Extended[glimmer.Middle] = true

		mailbox.Publish(&glimmer.HandSnapshot{Hands: []glimmer.Hand{hand}})
	}
}

func main() {
	cfg := glimmer.DefaultConfig()
	cfg.Bounds = &glimmer.Bounds{
		Min: mgl32.Vec2{-float32(screenWidth) / 2 / sceneScale, -float32(screenHeight) / 2 / sceneScale},
		Max: mgl32.Vec2{float32(screenWidth) / 2 / sceneScale, float32(screenHeight) / 2 / sceneScale},
	}

	app := glimmer.NewAppBuilder().
		UseModule(
			glimmer.LoggingModule{Prefix: "glimmer-demo", Debug: true},
			glimmer.ClockModule{},
			glimmer.HandPoseModule{},
			glimmer.SimulationModule{Config: cfg},
		).
		Build()

	sim := glimmer.ResourceFor[glimmer.Simulation](app)
	mailbox := glimmer.ResourceFor[glimmer.SnapshotMailbox](app)

	// An ambient fountain at the bottom of the scene.
	cmd := app.Commands()
	cmd.AddEntity(
		&glimmer.TransformComponent{Position: mgl32.Vec3{0, -1, 0}},
		&glimmer.EmitterComponent{Enabled: true, Rate: 0.8},
	)
	app.FlushCommands()

	go syntheticHand(mailbox)

	game := &Game{app: app, sim: sim, size: cfg.Size}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("glimmer")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
