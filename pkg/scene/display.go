package scene

import (
	"github.com/trigrid/trigrid/pkg/math3d"
	"github.com/trigrid/trigrid/pkg/models"
	"github.com/trigrid/trigrid/pkg/render"
)

// Display owns every mesh and light rendered each frame, plus the
// camera, background color, and character-cell dimensions. Meshes and
// lights added to a Display transfer ownership: Reset releases them
// all. The frame's glyph/color/depth buffers are not part of Display —
// they are per-frame scratch owned by the renderer.
type Display struct {
	Meshes []*models.Mesh
	Lights []*Light
	Camera *render.Camera

	Background math3d.Vec3
	Width      int
	Height     int

	FrameCount uint64
	Running    bool
}

// NewDisplay creates a Display with the given character-cell
// dimensions and an opaque-black background. Width and height must be
// at least 1.
func NewDisplay(width, height int) *Display {
	return &Display{
		Camera:     render.NewCamera(),
		Background: math3d.V3(0, 0, 0),
		Width:      width,
		Height:     height,
		Running:    true,
	}
}

// AddMesh appends a mesh to the Display's owned mesh list.
func (d *Display) AddMesh(m *models.Mesh) {
	d.Meshes = append(d.Meshes, m)
}

// AddLight appends a light to the Display's owned light list.
func (d *Display) AddLight(l *Light) {
	d.Lights = append(d.Lights, l)
}

// Reset releases all owned meshes and lights and zeroes the frame
// counter. The Camera and Background are left untouched.
func (d *Display) Reset() {
	d.Meshes = nil
	d.Lights = nil
	d.FrameCount = 0
}
