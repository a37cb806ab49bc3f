// Package scene ties meshes, lights, and a camera together into a
// Display, and drives it one frame at a time via a tagged Command
// queue.
package scene

import "github.com/trigrid/trigrid/pkg/render"

// Light is a point light owned by a Display. The type itself lives in
// pkg/render (see light.go there) since the rasterizer shades directly
// against it; aliasing it here keeps scene's data model matching
// spec.md §3 without an import cycle (pkg/render cannot import
// pkg/scene, which already imports pkg/render).
type Light = render.Light

// NewLight creates a light, normalizing color into [0,1] per-channel
// if any component exceeds 1.
var NewLight = render.NewLight
