package render

import "github.com/trigrid/trigrid/pkg/math3d"

// ClipVertex carries every attribute that must survive near-plane
// clipping in lockstep: clip-space position, world-space position and
// normal, and UV.
type ClipVertex struct {
	Clip   math3d.Vec4
	World  math3d.Vec3
	Normal math3d.Vec3
	UV     math3d.Vec2
}

func lerpClipVertex(a, b ClipVertex, t float64) ClipVertex {
	return ClipVertex{
		Clip:   a.Clip.Lerp(b.Clip, t),
		World:  a.World.Lerp(b.World, t),
		Normal: a.Normal.Lerp(b.Normal, t),
		UV:     a.UV.Lerp(b.UV, t),
	}
}

// insideNear reports whether a clip-space vertex is on the inside of
// the near plane: z + w >= 0.
func insideNear(v ClipVertex) bool {
	return v.Clip.Z+v.Clip.W >= 0
}

// ClipNearPlane runs Sutherland-Hodgman against the single near
// clipping plane. The input is a triangle (3 vertices); the output has
// 0, 3, or 4 vertices forming a convex polygon in the same winding
// order.
func ClipNearPlane(tri [3]ClipVertex) []ClipVertex {
	poly := tri[:]
	var out []ClipVertex

	for i := range poly {
		cur := poly[i]
		next := poly[(i+1)%len(poly)]

		curIn := insideNear(cur)
		nextIn := insideNear(next)

		switch {
		case curIn && nextIn:
			out = append(out, next)
		case curIn && !nextIn:
			out = append(out, intersectNear(cur, next))
		case !curIn && nextIn:
			out = append(out, intersectNear(cur, next), next)
		}
		// both outside: emit nothing
	}
	return out
}

func intersectNear(a, b ClipVertex) ClipVertex {
	ad := a.Clip.Z + a.Clip.W
	bd := b.Clip.Z + b.Clip.W
	t := ad / (ad - bd)
	return lerpClipVertex(a, b, t)
}

// TriangulatePolygon fan-triangulates a convex 3- or 4-vertex polygon
// produced by ClipNearPlane: (0,1,2) and, for a quad, (0,2,3).
func TriangulatePolygon(poly []ClipVertex) [][3]ClipVertex {
	if len(poly) < 3 {
		return nil
	}
	tris := make([][3]ClipVertex, 0, len(poly)-2)
	for i := 2; i < len(poly); i++ {
		tris = append(tris, [3]ClipVertex{poly[0], poly[i-1], poly[i]})
	}
	return tris
}

// BackfaceCull reports whether a world-space triangle should be culled
// given the camera position: cull when ((vy-vx) x (vz-vx)) . (vx -
// camPos) >= 0.
func BackfaceCull(v0, v1, v2, camPos math3d.Vec3) bool {
	normal := v1.Sub(v0).Cross(v2.Sub(v0))
	return normal.Dot(v0.Sub(camPos)) >= 0
}

// ProjectedVertex is a clip vertex after perspective projection:
// normalized device coordinates plus the clip-space w used for
// perspective-correct interpolation, alongside the attributes carried
// through from ClipVertex.
type ProjectedVertex struct {
	NDC    math3d.Vec3
	W      float64
	World  math3d.Vec3
	Normal math3d.Vec3
	UV     math3d.Vec2
}

// Project converts a clip-space vertex to NDC. The near-plane clip
// invariant guarantees w > 0 for every vertex reaching this call.
func Project(v ClipVertex) ProjectedVertex {
	ndc := v.Clip.PerspectiveDivide()
	return ProjectedVertex{
		NDC:    ndc,
		W:      v.Clip.W,
		World:  v.World,
		Normal: v.Normal,
		UV:     v.UV,
	}
}

// OutsideNDCBounds reports whether all three corners of a triangle lie
// strictly outside any single one of the six NDC bounds (x<-1, x>1,
// y<-1, y>1, z<-1, z>1), meaning the whole triangle can be rejected.
func OutsideNDCBounds(tri [3]ProjectedVertex) bool {
	allBelow := func(get func(math3d.Vec3) float64, bound float64) bool {
		return get(tri[0].NDC) < bound && get(tri[1].NDC) < bound && get(tri[2].NDC) < bound
	}
	allAbove := func(get func(math3d.Vec3) float64, bound float64) bool {
		return get(tri[0].NDC) > bound && get(tri[1].NDC) > bound && get(tri[2].NDC) > bound
	}
	getX := func(v math3d.Vec3) float64 { return v.X }
	getY := func(v math3d.Vec3) float64 { return v.Y }
	getZ := func(v math3d.Vec3) float64 { return v.Z }

	return allBelow(getX, -1) || allAbove(getX, 1) ||
		allBelow(getY, -1) || allAbove(getY, 1) ||
		allBelow(getZ, -1) || allAbove(getZ, 1)
}
