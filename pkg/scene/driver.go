package scene

import (
	"fmt"

	"github.com/trigrid/trigrid/pkg/math3d"
	"github.com/trigrid/trigrid/pkg/models"
	"github.com/trigrid/trigrid/pkg/render"
)

// Driver holds the per-frame callback list attached to a Display and
// advances it one tick at a time, implementing spec.md §4.7.
type Driver struct {
	Callbacks []Callback

	BackfaceCull   bool
	BilinearFilter bool
}

// NewDriver creates a Driver with backface culling enabled.
func NewDriver() *Driver {
	return &Driver{BackfaceCull: true}
}

// Attach appends a callback to the driver's list.
func (d *Driver) Attach(kind CallbackKind, cmd Command) {
	d.Callbacks = append(d.Callbacks, Callback{Kind: kind, Command: cmd})
}

// Tick runs one frame: walks the callback list (STARTUP callbacks only
// fire when display.FrameCount == 0), runs the transform/clip and
// rasterize/shade stages over every mesh, increments FrameCount, and
// returns the resulting Frame.
func (d *Driver) Tick(display *Display) (*render.Frame, error) {
	for _, cb := range d.Callbacks {
		if cb.Kind == Startup && display.FrameCount != 0 {
			continue
		}
		if err := d.runCommand(display, cb.Command); err != nil {
			return nil, err
		}
	}

	pipeline := &render.Pipeline{
		Camera:         display.Camera,
		Lights:         display.Lights,
		Background:     display.Background,
		BackfaceCull:   d.BackfaceCull,
		BilinearFilter: d.BilinearFilter,
	}

	frame, err := pipeline.Render(display.Meshes, display.Width, display.Height)
	if err != nil {
		return nil, err
	}

	display.FrameCount++
	return frame, nil
}

func (d *Driver) runCommand(display *Display, cmd Command) error {
	switch c := cmd.(type) {
	case Rotate:
		mesh, err := meshAt(display, c.Target)
		if err != nil {
			return err
		}
		return MeshRel(mesh, math3d.Rotate(c.Axis, c.Angle))
	case MoveToward:
		mesh, err := meshAt(display, c.Target)
		if err != nil {
			return err
		}
		dir := c.Dst.Sub(MeshCenter(mesh))
		dist := dir.Len()
		if dist == 0 {
			return nil
		}
		step := c.Step
		if step > dist {
			step = dist
		}
		return MeshAbs(mesh, math3d.Translate(dir.Normalize().Scale(step)))
	case Scale:
		mesh, err := meshAt(display, c.Target)
		if err != nil {
			return err
		}
		return MeshRel(mesh, math3d.Scale(c.Factor))
	default:
		return fmt.Errorf("scene: unknown command type %T", cmd)
	}
}

func meshAt(display *Display, idx int) (*models.Mesh, error) {
	if idx < 0 || idx >= len(display.Meshes) {
		return nil, fmt.Errorf("scene: mesh index %d out of range", idx)
	}
	return display.Meshes[idx], nil
}
