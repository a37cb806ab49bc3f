// Package render provides software rasterization: transform, clip,
// rasterize, and shade triangles into a frame buffer.
package render

import (
	"math"

	"github.com/trigrid/trigrid/pkg/math3d"
)

// Vertex represents a vertex with all attributes needed for rasterization.
type Vertex struct {
	Position math3d.Vec3 // World position
	Normal   math3d.Vec3 // Normal vector (for lighting)
	UV       math3d.Vec2 // Texture coordinates
	Color    Color       // Vertex color
}

// Triangle represents a triangle to be rasterized.
type Triangle struct {
	V [3]Vertex
}

// Rasterizer is the secondary Gouraud-shaded draw path behind
// cmd/trigrid's M-key render mode cycle: a flat depth-buffered
// rasterizer operating on Color/Texture rather than Pipeline's
// Blinn-Phong material model. Only the Gouraud entry points
// (DrawMeshGouraud, DrawMeshTexturedGouraud) and their dependencies
// are kept; the teacher's broader Draw* surface (flat shading, solid
// cubes, untextured/unlit meshes) has no caller in this viewer and
// was trimmed.
type Rasterizer struct {
	camera                 *Camera
	fb                     *Framebuffer
	zbuffer                []float64    // Depth buffer (1D array, row-major)
	frustum                Frustum      // Cached frustum planes
	frustumDirty           bool         // Whether frustum needs recalculation
	CullingStats           CullingStats // Statistics for debugging/benchmarking
	DisableBackfaceCulling bool         // If true, render both sides of triangles
}

// CullingStats tracks frustum culling performance.
type CullingStats struct {
	MeshesTested int // Total meshes tested for culling
	MeshesCulled int // Meshes culled (not rendered)
	MeshesDrawn  int // Meshes that passed culling
}

// NewRasterizer creates a new rasterizer.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{
		camera:       camera,
		fb:           fb,
		frustumDirty: true,
	}
	r.Resize()
	return r
}

// Resize resizes the rasterizer's buffer to match the framebuffer.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// ClearDepth clears the Z-buffer (call before each frame).
func (r *Rasterizer) ClearDepth() {
	// Use copy-doubling for faster clearing
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// InvalidateFrustum marks the frustum as needing recalculation.
// Call this when the camera moves or rotates.
func (r *Rasterizer) InvalidateFrustum() {
	r.frustumDirty = true
}

// UpdateFrustum recalculates the frustum planes from the camera.
func (r *Rasterizer) UpdateFrustum() {
	if r.frustumDirty {
		viewProj, err := r.camera.ViewProjectionMatrix()
		if err != nil {
			return
		}
		r.frustum = ExtractFrustum(viewProj)
		r.frustumDirty = false
	}
}

// GetFrustum returns the current frustum (updating if needed).
func (r *Rasterizer) GetFrustum() Frustum {
	r.UpdateFrustum()
	return r.frustum
}

// ResetCullingStats resets the culling statistics (call once per frame).
func (r *Rasterizer) ResetCullingStats() {
	r.CullingStats = CullingStats{}
}

// IsVisible tests if a world-space AABB is visible in the frustum.
func (r *Rasterizer) IsVisible(worldBounds AABB) bool {
	r.UpdateFrustum()
	return r.frustum.IntersectsFrustum(worldBounds)
}

// IsVisibleTransformed tests if a local-space AABB is visible after transformation.
func (r *Rasterizer) IsVisibleTransformed(localBounds AABB, transform math3d.Mat4) bool {
	worldBounds := TransformAABB(localBounds, transform)
	return r.IsVisible(worldBounds)
}

// getDepth returns the depth at (x, y).
func (r *Rasterizer) getDepth(x, y int) float64 {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return math.MaxFloat64
	}
	return r.zbuffer[y*r.Width()+x]
}

// setDepth sets the depth at (x, y).
func (r *Rasterizer) setDepth(x, y int, z float64) {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return
	}
	r.zbuffer[y*r.Width()+x] = z
}

// screenVertex holds a vertex transformed to screen space.
type screenVertex struct {
	X, Y   float64 // Screen coordinates
	Z      float64 // Depth (for Z-buffer)
	W      float64 // W coordinate (for perspective-correct interpolation)
	Color  Color
	Normal math3d.Vec3
	UV     math3d.Vec2
}

// barycentric calculates barycentric coordinates for point (px, py) in triangle.
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	v0x, v0y := x2-x0, y2-y0
	v1x, v1y := x1-x0, y1-y0
	v2x, v2y := px-x0, py-y0

	dot00 := v0x*v0x + v0y*v0y
	dot01 := v0x*v1x + v0y*v1y
	dot02 := v0x*v2x + v0y*v2y
	dot11 := v1x*v1x + v1y*v1y
	dot12 := v1x*v2x + v1y*v2y

	invDenom := 1.0 / (dot00*dot11 - dot01*dot01)
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	return math3d.V3(1-u-v, v, u)
}

// interpolateColor3 interpolates between 3 colors using barycentric coords.
func interpolateColor3(c0, c1, c2 Color, bc math3d.Vec3) Color {
	return RGB(
		uint8(float64(c0.R)*bc.X+float64(c1.R)*bc.Y+float64(c2.R)*bc.Z),
		uint8(float64(c0.G)*bc.X+float64(c1.G)*bc.Y+float64(c2.G)*bc.Z),
		uint8(float64(c0.B)*bc.X+float64(c1.B)*bc.Y+float64(c2.B)*bc.Z),
	)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

// DrawTriangleGouraud rasterizes a triangle with Gouraud shading (per-vertex lighting).
// Lighting is calculated at each vertex and interpolated across the triangle.
func (r *Rasterizer) DrawTriangleGouraud(tri Triangle, lightDir math3d.Vec3) {
	// Transform vertices to screen space
	var sv [3]screenVertex
	allBehind := true

	viewProj, vpErr := r.camera.ViewProjectionMatrix()
	if vpErr != nil {
		return
	}
	normLight := lightDir.Normalize()

	for i := range 3 {
		// Transform to clip space
		clipPos := viewProj.MulVec4(math3d.V4FromV3(tri.V[i].Position, 1))

		// Check if behind camera
		if clipPos.W > 0 {
			allBehind = false
		}

		// Perspective divide
		if clipPos.W != 0 {
			sv[i].X = clipPos.X / clipPos.W
			sv[i].Y = clipPos.Y / clipPos.W
			sv[i].Z = clipPos.Z / clipPos.W
		}
		sv[i].W = clipPos.W

		// NDC to screen coordinates
		sv[i].X = (sv[i].X + 1) * 0.5 * float64(r.Width())
		sv[i].Y = (1 - sv[i].Y) * 0.5 * float64(r.Height()) // Y flipped

		// Calculate per-vertex lighting intensity
		intensity := math.Max(0, tri.V[i].Normal.Dot(normLight))
		intensity = 0.3 + 0.7*intensity // Ambient + diffuse

		// Apply lighting to vertex color
		sv[i].Color = RGB(
			uint8(float64(tri.V[i].Color.R)*intensity),
			uint8(float64(tri.V[i].Color.G)*intensity),
			uint8(float64(tri.V[i].Color.B)*intensity),
		)
		sv[i].Normal = tri.V[i].Normal
		sv[i].UV = tri.V[i].UV
	}

	// Skip if entirely behind camera
	if allBehind {
		return
	}

	// Backface culling (using screen-space winding)
	edge1 := math3d.V2(sv[1].X-sv[0].X, sv[1].Y-sv[0].Y)
	edge2 := math3d.V2(sv[2].X-sv[0].X, sv[2].Y-sv[0].Y)
	cross := edge1.X*edge2.Y - edge1.Y*edge2.X
	if cross < 0 {
		return // Back-facing
	}

	// Find bounding box
	minX := int(math.Max(0, math.Floor(min3(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math.Min(float64(r.Width()-1), math.Ceil(max3(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math.Max(0, math.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math.Min(float64(r.Height()-1), math.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y))))

	// Rasterize using barycentric coordinates
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5

			// Calculate barycentric coordinates
			bc := barycentric(
				sv[0].X, sv[0].Y,
				sv[1].X, sv[1].Y,
				sv[2].X, sv[2].Y,
				px, py,
			)

			// Check if inside triangle
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			// Interpolate depth
			z := bc.X*sv[0].Z + bc.Y*sv[1].Z + bc.Z*sv[2].Z

			// Z-buffer test
			if z >= r.getDepth(x, y) {
				continue
			}

			// Interpolate lit vertex colors (Gouraud shading)
			color := interpolateColor3(sv[0].Color, sv[1].Color, sv[2].Color, bc)

			// Set pixel
			r.setDepth(x, y, z)
			r.fb.SetPixel(x, y, color)
		}
	}
}

// DrawTriangleTexturedGouraud rasterizes a textured triangle with Gouraud shading.
// Per-vertex lighting is calculated and interpolated, then modulated with texture.
func (r *Rasterizer) DrawTriangleTexturedGouraud(tri Triangle, tex *Texture, lightDir math3d.Vec3) {
	// Transform vertices to screen space
	var sv [3]screenVertex
	var vertexIntensity [3]float64 // Store lighting intensity per vertex
	allBehind := true

	viewProj, vpErr := r.camera.ViewProjectionMatrix()
	if vpErr != nil {
		return
	}
	normLight := lightDir.Normalize()

	for i := range 3 {
		// Transform to clip space
		clipPos := viewProj.MulVec4(math3d.V4FromV3(tri.V[i].Position, 1))

		// Check if behind camera
		if clipPos.W > 0 {
			allBehind = false
		}

		// Perspective divide
		if clipPos.W != 0 {
			sv[i].X = clipPos.X / clipPos.W
			sv[i].Y = clipPos.Y / clipPos.W
			sv[i].Z = clipPos.Z / clipPos.W
		}
		sv[i].W = clipPos.W

		// NDC to screen coordinates
		sv[i].X = (sv[i].X + 1) * 0.5 * float64(r.Width())
		sv[i].Y = (1 - sv[i].Y) * 0.5 * float64(r.Height()) // Y flipped

		// Calculate per-vertex lighting intensity
		intensity := math.Max(0, tri.V[i].Normal.Dot(normLight))
		vertexIntensity[i] = 0.3 + 0.7*intensity // Ambient + diffuse

		// Copy other attributes
		sv[i].Color = tri.V[i].Color
		sv[i].Normal = tri.V[i].Normal
		sv[i].UV = tri.V[i].UV
	}

	// Skip if entirely behind camera
	if allBehind {
		return
	}

	// Backface culling (using screen-space winding)
	edge1 := math3d.V2(sv[1].X-sv[0].X, sv[1].Y-sv[0].Y)
	edge2 := math3d.V2(sv[2].X-sv[0].X, sv[2].Y-sv[0].Y)
	cross := edge1.X*edge2.Y - edge1.Y*edge2.X
	if cross < 0 {
		return // Back-facing
	}

	// Find bounding box
	minX := int(math.Max(0, math.Floor(min3(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math.Min(float64(r.Width()-1), math.Ceil(max3(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math.Max(0, math.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math.Min(float64(r.Height()-1), math.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y))))

	// Precompute perspective-correct interpolation factors (1/w for each vertex)
	var invW [3]float64
	for i := range 3 {
		if sv[i].W != 0 {
			invW[i] = 1.0 / sv[i].W
		} else {
			invW[i] = 0
		}
	}

	// Rasterize using barycentric coordinates with perspective correction
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5

			// Calculate barycentric coordinates
			bc := barycentric(
				sv[0].X, sv[0].Y,
				sv[1].X, sv[1].Y,
				sv[2].X, sv[2].Y,
				px, py,
			)

			// Check if inside triangle
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			// Interpolate depth
			z := bc.X*sv[0].Z + bc.Y*sv[1].Z + bc.Z*sv[2].Z

			// Z-buffer test
			if z >= r.getDepth(x, y) {
				continue
			}

			// Perspective-correct interpolation
			w0, w1, w2 := bc.X*invW[0], bc.Y*invW[1], bc.Z*invW[2]
			oneOverW := w0 + w1 + w2
			if oneOverW == 0 {
				continue
			}

			// Perspective-correct UV interpolation
			u := (w0*sv[0].UV.X + w1*sv[1].UV.X + w2*sv[2].UV.X) / oneOverW
			v := (w0*sv[0].UV.Y + w1*sv[1].UV.Y + w2*sv[2].UV.Y) / oneOverW

			// Perspective-correct lighting intensity interpolation
			intensity := (w0*vertexIntensity[0] + w1*vertexIntensity[1] + w2*vertexIntensity[2]) / oneOverW

			// Sample texture
			texColor := tex.Sample(u, v)

			// Apply interpolated lighting (Gouraud)
			litColor := MultiplyColor(texColor, intensity)

			// Set pixel
			r.setDepth(x, y, z)
			r.fb.SetPixel(x, y, litColor)
		}
	}
}

// MeshRenderer is imported from models to avoid circular deps.
// This interface allows drawing meshes without importing the models package.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	GetFace(i int) [3]int
}

// BoundedMeshRenderer extends MeshRenderer with bounding box support for frustum culling.
type BoundedMeshRenderer interface {
	MeshRenderer
	GetBounds() (min, max math3d.Vec3)
}

// tryFrustumCull attempts to cull a mesh using its bounds if available.
// Returns true if the mesh should be culled (not visible).
func (r *Rasterizer) tryFrustumCull(mesh MeshRenderer, transform math3d.Mat4) bool {
	// Check if mesh supports bounds for frustum culling
	bounded, ok := mesh.(BoundedMeshRenderer)
	if !ok {
		// No bounds available, can't cull
		return false
	}

	r.CullingStats.MeshesTested++

	// Get local bounds and transform to world space
	minBounds, maxBounds := bounded.GetBounds()
	localBounds := AABB{Min: minBounds, Max: maxBounds}

	// Check if visible
	if !r.IsVisibleTransformed(localBounds, transform) {
		r.CullingStats.MeshesCulled++
		return true
	}

	r.CullingStats.MeshesDrawn++
	return false
}

// DrawMeshGouraud renders a mesh with Gouraud shading (per-vertex lighting).
// This produces smoother shading than flat shading by interpolating lighting across triangles.
// Automatically performs frustum culling if the mesh provides bounds.
func (r *Rasterizer) DrawMeshGouraud(mesh MeshRenderer, transform math3d.Mat4, color Color, lightDir math3d.Vec3) {
	// Frustum culling check
	if r.tryFrustumCull(mesh, transform) {
		return
	}

	for i := 0; i < mesh.TriangleCount(); i++ {
		face := mesh.GetFace(i)

		// Get vertices with all attributes
		p0, n0, _ := mesh.GetVertex(face[0])
		p1, n1, _ := mesh.GetVertex(face[1])
		p2, n2, _ := mesh.GetVertex(face[2])

		// Transform positions to world space
		v0 := transform.MulVec3(p0)
		v1 := transform.MulVec3(p1)
		v2 := transform.MulVec3(p2)

		// Transform normals
		wn0 := transform.MulVec3Dir(n0).Normalize()
		wn1 := transform.MulVec3Dir(n1).Normalize()
		wn2 := transform.MulVec3Dir(n2).Normalize()

		// Build triangle with per-vertex normals for Gouraud
		tri := Triangle{
			V: [3]Vertex{
				{Position: v0, Normal: wn0, Color: color},
				{Position: v1, Normal: wn1, Color: color},
				{Position: v2, Normal: wn2, Color: color},
			},
		}

		r.DrawTriangleGouraud(tri, lightDir)
	}
}

// DrawMeshTexturedGouraud renders a mesh with texture mapping and Gouraud shading.
// Combines perspective-correct texture mapping with smooth per-vertex lighting.
// Automatically performs frustum culling if the mesh provides bounds.
func (r *Rasterizer) DrawMeshTexturedGouraud(mesh MeshRenderer, transform math3d.Mat4, tex *Texture, lightDir math3d.Vec3) {
	// Frustum culling check
	if r.tryFrustumCull(mesh, transform) {
		return
	}

	for i := 0; i < mesh.TriangleCount(); i++ {
		face := mesh.GetFace(i)

		// Get vertices with all attributes
		p0, n0, uv0 := mesh.GetVertex(face[0])
		p1, n1, uv1 := mesh.GetVertex(face[1])
		p2, n2, uv2 := mesh.GetVertex(face[2])

		// Transform positions to world space
		v0 := transform.MulVec3(p0)
		v1 := transform.MulVec3(p1)
		v2 := transform.MulVec3(p2)

		// Transform normals
		wn0 := transform.MulVec3Dir(n0).Normalize()
		wn1 := transform.MulVec3Dir(n1).Normalize()
		wn2 := transform.MulVec3Dir(n2).Normalize()

		// Build triangle with all attributes
		tri := Triangle{
			V: [3]Vertex{
				{Position: v0, Normal: wn0, UV: uv0, Color: RGB(255, 255, 255)},
				{Position: v1, Normal: wn1, UV: uv1, Color: RGB(255, 255, 255)},
				{Position: v2, Normal: wn2, UV: uv2, Color: RGB(255, 255, 255)},
			},
		}

		r.DrawTriangleTexturedGouraud(tri, tex, lightDir)
	}
}
