package scene

import (
	"github.com/trigrid/trigrid/pkg/math3d"
	"github.com/trigrid/trigrid/pkg/models"
)

// MeshAbs applies t to every vertex position, and t's upper-left 3x3
// inverse-transpose to every vertex normal (renormalized), which is
// the correct normal transform under non-uniform scale. Returns an
// error if t's linear part is singular.
func MeshAbs(m *models.Mesh, t math3d.Mat4) error {
	return m.Transform(t)
}

// MeshRel applies t about the mesh's own centroid: translate(-C) · t ·
// translate(+C), via three MeshAbs calls in order.
func MeshRel(m *models.Mesh, t math3d.Mat4) error {
	c := MeshCenter(m)
	if err := MeshAbs(m, math3d.Translate(c.Scale(-1))); err != nil {
		return err
	}
	if err := MeshAbs(m, t); err != nil {
		return err
	}
	return MeshAbs(m, math3d.Translate(c))
}

// MeshCenter returns the arithmetic mean of every triangle corner —
// not the mean of unique vertices. A vertex shared by several faces is
// weighted once per face that references it; this matches the
// upstream behavior being preserved rather than "fixed" to a true
// centroid.
func MeshCenter(m *models.Mesh) math3d.Vec3 {
	sum := math3d.Zero3()
	n := 0
	for _, f := range m.Faces {
		for _, vi := range f.V {
			sum = sum.Add(m.Vertices[vi].Position)
			n++
		}
	}
	if n == 0 {
		return math3d.Zero3()
	}
	return sum.Scale(1 / float64(n))
}
