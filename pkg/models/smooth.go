package models

import "github.com/trigrid/trigrid/pkg/math3d"

// positionTolerance is the distance under which two vertex positions
// are considered the same point for smooth-normal bucketing.
const positionTolerance = 1e-6

// quantKey is a spatial hash key for bucketing vertices by position
// within positionTolerance.
type quantKey struct{ x, y, z int64 }

func quantize(p math3d.Vec3) quantKey {
	const scale = 1.0 / positionTolerance
	return quantKey{
		x: int64(p.X * scale),
		y: int64(p.Y * scale),
		z: int64(p.Z * scale),
	}
}

// smoothNormals computes per-vertex normals by bucketing vertices with
// (near-)identical positions, accumulating the normalized face normal
// of every triangle touching a bucket (equal per-triangle weight,
// regardless of triangle area), then writing the renormalized result
// back to every vertex in that bucket. This differs from per-index
// accumulation: two OBJ index triples that happen to reference the
// same position are blended together even though they produced
// distinct Mesh.Vertices entries.
func smoothNormals(m *Mesh) {
	buckets := make(map[quantKey][]int, len(m.Vertices))
	for i, v := range m.Vertices {
		k := quantize(v.Position)
		buckets[k] = append(buckets[k], i)
	}

	accum := make([]math3d.Vec3, len(m.Vertices))
	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		faceNormal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()

		for _, vi := range f.V {
			k := quantize(m.Vertices[vi].Position)
			for _, bi := range buckets[k] {
				accum[bi] = accum[bi].Add(faceNormal)
			}
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = accum[i].Normalize()
	}
}
