package scene

import "github.com/trigrid/trigrid/pkg/math3d"

// CallbackKind tags when a Command fires: STARTUP callbacks run once,
// the tick the Display's frame counter is 0; CONTINUOUS callbacks run
// every tick.
type CallbackKind int

const (
	Startup CallbackKind = iota
	Continuous
)

// Command is a per-tick mutation applied to a Display's meshes. It
// replaces spec.md §4.7's raw "type tag plus argument vector" callback
// shape with an exhaustive Go type switch (Driver.runCommand), in the
// spirit of the small, enumerable per-tick state mutations the teacher
// applies directly to RotationState/ViewState each frame.
type Command interface {
	isCommand()
}

// Rotate rotates mesh Target by Angle radians about Axis, about the
// mesh's own centroid (MeshRel).
type Rotate struct {
	Target int
	Axis   math3d.Vec3
	Angle  float64
}

func (Rotate) isCommand() {}

// MoveToward translates mesh Target by up to Step units toward Dst.
type MoveToward struct {
	Target int
	Dst    math3d.Vec3
	Step   float64
}

func (MoveToward) isCommand() {}

// Scale scales mesh Target by Factor about its own centroid.
type Scale struct {
	Target int
	Factor math3d.Vec3
}

func (Scale) isCommand() {}

// Callback pairs a Command with the CallbackKind that decides when it
// fires.
type Callback struct {
	Kind    CallbackKind
	Command Command
}
