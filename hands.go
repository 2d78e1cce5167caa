package glimmer

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// Finger indices in anatomical order. The interaction and emission passes
// always iterate tips in this order so identical snapshots produce identical
// frames.
type Finger int

const (
	Thumb Finger = iota
	Index
	Middle
	Ring
	Pinky

	FingerCount = 5
)

// Hand is one detected hand: five tip positions in scene space, a per-finger
// extension flag, and a planar velocity estimate for the whole hand. Tip
// coordinates share the particle coordinate space; the force field measures
// distances between them directly.
type Hand struct {
	Tips     [FingerCount]mgl32.Vec3
	Extended [FingerCount]bool
	Velocity mgl32.Vec2
}

// HandSnapshot is the full detector output for one sampling instant. It is
// immutable once published; a new detection replaces it wholesale.
type HandSnapshot struct {
	Hands []Hand
}

// SnapshotMailbox is a mailbox of one between the (typically slower) hand
// detector and the simulation. Publish swaps the whole snapshot atomically;
// Latest never blocks and returns nil until the first publish. The simulation
// latches Latest once per frame and keeps integrating with the last-known
// snapshot if the detector stalls.
type SnapshotMailbox struct {
	latest atomic.Pointer[HandSnapshot]
}

func NewSnapshotMailbox() *SnapshotMailbox {
	return &SnapshotMailbox{}
}

// Publish is safe to call from any goroutine. The caller must not mutate the
// snapshot after publishing.
func (m *SnapshotMailbox) Publish(snapshot *HandSnapshot) {
	m.latest.Store(snapshot)
}

func (m *SnapshotMailbox) Latest() *HandSnapshot {
	return m.latest.Load()
}

// HandPoseModule installs the snapshot mailbox. The host hands the mailbox to
// its detector; the simulation module latches from it every frame.
type HandPoseModule struct{}

func (mod HandPoseModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewSnapshotMailbox())
}
