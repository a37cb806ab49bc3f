// Package models provides asset loading (OBJ/MTL, glTF) and the mesh
// representation consumed by the render pipeline.
package models

import (
	"github.com/trigrid/trigrid/pkg/math3d"
)

// Mesh represents a 3D mesh with vertices, faces, and the materials its
// faces reference.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	// Smooth records the OBJ's "s on"/"s 1" state: when true, the
	// loader replaces per-face normals with the averaged result of
	// CalculateSmoothNormals.
	Smooth bool

	// Bounding box (calculated on load).
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face represents a triangle face with vertex indices and a material
// index into Mesh.Materials. Material is -1 when the face has no
// material assigned.
type Face struct {
	V        [3]int
	Material int
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Vertices:  make([]MeshVertex, 0),
		Faces:     make([]Face, 0),
		BoundsMin: math3d.V3(0, 0, 0),
		BoundsMax: math3d.V3(0, 0, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// MaterialCount returns the number of materials referenced by the mesh.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}

// GetFaceMaterial returns the material index for face i, or -1 if the
// face has no material.
func (m *Mesh) GetFaceMaterial(i int) int {
	return m.Faces[i].Material
}

// GetMaterial returns the material at idx, or nil if idx is out of
// range (including the -1 sentinel for "no material").
func (m *Mesh) GetMaterial(idx int) *Material {
	if idx < 0 || idx >= len(m.Materials) {
		return nil
	}
	return &m.Materials[idx]
}

// CalculateNormals computes face normals and assigns them to vertices.
// This is a simple flat-shading approach; for smooth shading, use
// CalculateSmoothNormals.
func (m *Mesh) CalculateNormals() {
	for i := range m.Faces {
		f := &m.Faces[i]
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		edge1 := v1.Sub(v0)
		edge2 := v2.Sub(v0)
		normal := edge1.Cross(edge2).Normalize()

		m.Vertices[f.V[0]].Normal = normal
		m.Vertices[f.V[1]].Normal = normal
		m.Vertices[f.V[2]].Normal = normal
	}
}

// CalculateSmoothNormals computes averaged normals for smooth shading,
// bucketing vertices by unique position (within a 1e-6 tolerance)
// rather than by raw index, so vertices that share a position but were
// emitted as distinct OBJ index triples still blend.
func (m *Mesh) CalculateSmoothNormals() {
	smoothNormals(m)
}

// Transform applies a transformation matrix to all vertex positions and
// the corresponding inverse-transpose to normals, which is required for
// correct results under non-uniform scale. Returns an error if the
// transform's linear part is singular.
func (m *Mesh) Transform(mat math3d.Mat4) error {
	normalMat, err := math3d.InverseTranspose3(math3d.FromMat4Upper(mat))
	if err != nil {
		return err
	}
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		m.Vertices[i].Normal = normalMat.MulVec3(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
	return nil
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]MeshVertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Materials: make([]Material, len(m.Materials)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	copy(clone.Materials, m.Materials)
	return clone
}

// GetVertex returns the position, normal, and UV for vertex i.
// Implements render.MeshRenderer.
func (m *Mesh) GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	v := m.Vertices[i]
	return v.Position, v.Normal, v.UV
}

// GetFace returns the vertex indices for face i.
// Implements render.MeshRenderer.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}

// GetBounds returns the axis-aligned bounding box.
// Implements render.BoundedMeshRenderer.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}
