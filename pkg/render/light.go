package render

import "github.com/trigrid/trigrid/pkg/math3d"

// Light is a point light: position, a color normalized into [0,1], a
// brightness scalar, and a radius beyond which it contributes
// nothing. It lives in pkg/render (rather than pkg/scene, which owns
// it) because the rasterizer shades directly against it and pkg/scene
// already imports pkg/render.
type Light struct {
	Position   math3d.Vec3
	Color      math3d.Vec3
	Brightness float64
	Radius     float64
}

// NewLight creates a light, normalizing color into [0,1] per-channel
// if any component exceeds 1.
func NewLight(position, color math3d.Vec3, brightness, radius float64) *Light {
	max := color.X
	if color.Y > max {
		max = color.Y
	}
	if color.Z > max {
		max = color.Z
	}
	if max > 1 {
		color = color.Scale(1 / max)
	}
	return &Light{
		Position:   position,
		Color:      color,
		Brightness: brightness,
		Radius:     radius,
	}
}
