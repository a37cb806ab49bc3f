package render

import (
	"math"

	"github.com/trigrid/trigrid/pkg/math3d"
	"github.com/trigrid/trigrid/pkg/models"
)

// depthBuffer is per-frame scratch: a width x height grid of NDC
// depths, initialized to +infinity.
type depthBuffer struct {
	width, height int
	z             []float64
}

func newDepthBuffer(width, height int) *depthBuffer {
	z := make([]float64, width*height)
	for i := range z {
		z[i] = math.Inf(1)
	}
	return &depthBuffer{width: width, height: height, z: z}
}

func (d *depthBuffer) test(x, y int, depth float64) bool {
	i := y*d.width + x
	if depth >= d.z[i] {
		return false
	}
	d.z[i] = depth
	return true
}

// Pipeline runs the transform/clip and rasterize/shade stages of
// spec.md §4.4/§4.5 over a set of meshes, lights, and a camera,
// writing the result into a freshly-allocated Frame.
type Pipeline struct {
	Camera         *Camera
	Lights         []*Light
	Background     math3d.Vec3
	BackfaceCull   bool
	BilinearFilter bool
}

// NewPipeline creates a Pipeline with backface culling enabled.
func NewPipeline(camera *Camera) *Pipeline {
	return &Pipeline{
		Camera:       camera,
		BackfaceCull: true,
	}
}

// Render draws every mesh into a new width x height Frame. Before the
// per-triangle clip/rasterize stage, each mesh's world-space bounding
// box is tested against the camera's view frustum (frustum.go) so a
// mesh entirely outside the view is skipped without visiting a single
// triangle.
func (p *Pipeline) Render(meshes []*models.Mesh, width, height int) (*Frame, error) {
	bg := toRGB8(p.Background)
	frame := NewFrame(width, height, bg)
	depth := newDepthBuffer(width, height)

	vp, err := p.Camera.ViewProjectionMatrix()
	if err != nil {
		return nil, err
	}
	frustum := NewFrustumFromMatrix(vp)

	for _, mesh := range meshes {
		box := AABB{Min: mesh.BoundsMin, Max: mesh.BoundsMax}
		if !frustum.IntersectAABB(box) {
			continue
		}
		p.renderMesh(mesh, vp, width, height, frame, depth)
	}
	return frame, nil
}

func (p *Pipeline) renderMesh(mesh *models.Mesh, vp math3d.Mat4, width, height int, frame *Frame, depth *depthBuffer) {
	for fi := range mesh.Faces {
		face := mesh.Faces[fi]
		mat := mesh.GetMaterial(mesh.GetFaceMaterial(fi))
		if mat == nil {
			def := models.DefaultMaterial()
			mat = &def
		}

		var clipTri [3]ClipVertex
		for i, vi := range face.V {
			v := mesh.Vertices[vi]
			clipTri[i] = ClipVertex{
				Clip:   vp.MulVec4(math3d.V4FromV3(v.Position, 1)),
				World:  v.Position,
				Normal: v.Normal,
				UV:     v.UV,
			}
		}

		poly := ClipNearPlane(clipTri)
		for _, tri := range TriangulatePolygon(poly) {
			p.renderTriangle(tri, mat, width, height, frame, depth)
		}
	}
}

func (p *Pipeline) renderTriangle(tri [3]ClipVertex, mat *models.Material, width, height int, frame *Frame, depth *depthBuffer) {
	if p.BackfaceCull && BackfaceCull(tri[0].World, tri[1].World, tri[2].World, p.Camera.Position) {
		return
	}

	var proj [3]ProjectedVertex
	for i := range tri {
		proj[i] = Project(tri[i])
	}
	if OutsideNDCBounds(proj) {
		return
	}

	p0x := (proj[0].NDC.X + 1) / 2 * float64(width)
	p0y := (1 - proj[0].NDC.Y) / 2 * float64(height)
	p1x := (proj[1].NDC.X + 1) / 2 * float64(width)
	p1y := (1 - proj[1].NDC.Y) / 2 * float64(height)
	p2x := (proj[2].NDC.X + 1) / 2 * float64(width)
	p2y := (1 - proj[2].NDC.Y) / 2 * float64(height)

	area := edgeFn(p0x, p0y, p1x, p1y, p2x, p2y)
	if area == 0 {
		return
	}

	minX := int(math.Floor(minOf3(p0x, p1x, p2x)))
	maxX := int(math.Ceil(maxOf3(p0x, p1x, p2x)))
	minY := int(math.Floor(minOf3(p0y, p1y, p2y)))
	maxY := int(math.Ceil(maxOf3(p0y, p1y, p2y)))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > width-1 {
		maxX = width - 1
	}
	if maxY > height-1 {
		maxY = height - 1
	}

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5

			w0 := edgeFn(p1x, p1y, p2x, p2y, px, py) / area
			w1 := edgeFn(p2x, p2y, p0x, p0y, px, py) / area
			w2 := edgeFn(p0x, p0y, p1x, p1y, px, py) / area

			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			d := w0/proj[0].W + w1/proj[1].W + w2/proj[2].W
			if d == 0 {
				continue
			}

			zNDC := (w0*proj[0].NDC.Z/proj[0].W + w1*proj[1].NDC.Z/proj[1].W + w2*proj[2].NDC.Z/proj[2].W) / d
			if !depth.test(x, y, zNDC) {
				continue
			}

			worldPos := interpVec3(proj, w0, w1, w2, d, func(v ProjectedVertex) math3d.Vec3 { return v.World })
			normal := interpVec3(proj, w0, w1, w2, d, func(v ProjectedVertex) math3d.Vec3 { return v.Normal }).Normalize()
			uv := interpVec2(proj, w0, w1, w2, d)

			color := p.shade(mat, worldPos, normal, uv)
			frame.Set(x, y, PXCHAR, toRGB8(color))
		}
	}
}

func interpVec3(proj [3]ProjectedVertex, w0, w1, w2, d float64, get func(ProjectedVertex) math3d.Vec3) math3d.Vec3 {
	a := get(proj[0])
	b := get(proj[1])
	c := get(proj[2])
	sum := a.Scale(w0 / proj[0].W).Add(b.Scale(w1 / proj[1].W)).Add(c.Scale(w2 / proj[2].W))
	return sum.Scale(1 / d)
}

func interpVec2(proj [3]ProjectedVertex, w0, w1, w2, d float64) math3d.Vec2 {
	sum := proj[0].UV.Scale(w0 / proj[0].W).Add(proj[1].UV.Scale(w1 / proj[1].W)).Add(proj[2].UV.Scale(w2 / proj[2].W))
	return sum.Scale(1 / d)
}

// shade implements spec.md §4.5.shading: Blinn-Phong accumulation
// across every light, diffuse texture sampling, and the transparency
// mix against the background.
func (p *Pipeline) shade(mat *models.Material, worldPos, normal math3d.Vec3, uv math3d.Vec2) math3d.Vec3 {
	ambient := clamp01Vec3(mat.Ambient)
	diffuse := math3d.Zero3()
	specular := math3d.Zero3()

	view := p.Camera.Position.Sub(worldPos).Normalize()

	for _, l := range p.Lights {
		toLight := l.Position.Sub(worldPos)
		dist := toLight.Len()
		if dist > l.Radius {
			continue
		}
		toLight = toLight.Normalize()

		ndotl := math.Max(0, normal.Dot(toLight))
		if ndotl <= 0 {
			continue
		}

		half := view.Add(toLight).Normalize()
		ndoth := math.Max(0, normal.Dot(half))
		specFactor := math.Pow(ndoth, mat.Shininess)

		attenuation := 1 / (1 + math.Pow(dist/l.Radius, 2))

		diffuse = diffuse.Add(mat.Diffuse.Mul(l.Color).Scale(l.Brightness * ndotl))
		specular = specular.Add(mat.Specular.Mul(l.Color).Scale(l.Brightness * specFactor * attenuation))
	}

	diffuse = clamp01Vec3(diffuse)
	specular = clamp01Vec3(specular)

	tex := mat.DiffuseTex.Sample(uv.X, uv.Y)
	if p.BilinearFilter {
		tex = mat.DiffuseTex.SampleBilinear(uv.X, uv.Y)
	}

	c := ambient.Add(diffuse).Mul(tex).Add(specular)
	c = p.Background.Lerp(c, mat.Transparency)
	return clamp01Vec3(c)
}

func clamp01Vec3(v math3d.Vec3) math3d.Vec3 {
	return math3d.V3(clamp01(v.X), clamp01(v.Y), clamp01(v.Z))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func toRGB8(c math3d.Vec3) [3]uint8 {
	return [3]uint8{
		uint8(math.Round(clamp01(c.X) * 255)),
		uint8(math.Round(clamp01(c.Y) * 255)),
		uint8(math.Round(clamp01(c.Z) * 255)),
	}
}

// edgeFn implements spec.md §4.5's edge(a,b,c) = (c.x-a.x)(b.y-a.y) -
// (b.x-a.x)(c.y-a.y), evaluated with c = (px, py).
func edgeFn(ax, ay, bx, by, px, py float64) float64 {
	return (px-ax)*(by-ay) - (bx-ax)*(py-ay)
}

func minOf3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxOf3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
