package scene

import (
	"math"
	"testing"

	"github.com/trigrid/trigrid/pkg/math3d"
	"github.com/trigrid/trigrid/pkg/models"
)

func triangleMesh() *models.Mesh {
	m := models.NewMesh("tri")
	m.Vertices = []models.MeshVertex{
		{Position: math3d.V3(0, 0, 0), Normal: math3d.V3(0, 0, 1)},
		{Position: math3d.V3(2, 0, 0), Normal: math3d.V3(0, 0, 1)},
		{Position: math3d.V3(0, 2, 0), Normal: math3d.V3(0, 0, 1)},
	}
	m.Faces = []models.Face{{V: [3]int{0, 1, 2}, Material: -1}}
	return m
}

func TestMeshCenterIsCornerWeightedMean(t *testing.T) {
	m := triangleMesh()
	c := MeshCenter(m)
	want := math3d.V3(2.0/3, 2.0/3, 0)
	if math.Abs(c.X-want.X) > 1e-9 || math.Abs(c.Y-want.Y) > 1e-9 {
		t.Errorf("expected center %v, got %v", want, c)
	}
}

func TestMeshAbsTranslates(t *testing.T) {
	m := triangleMesh()
	if err := MeshAbs(m, math3d.Translate(math3d.V3(1, 0, 0))); err != nil {
		t.Fatalf("MeshAbs: %v", err)
	}
	if m.Vertices[0].Position.X != 1 {
		t.Errorf("expected vertex 0 to shift to x=1, got %v", m.Vertices[0].Position)
	}
}

func TestMeshRelRotatesAboutCentroid(t *testing.T) {
	m := triangleMesh()
	before := MeshCenter(m)

	if err := MeshRel(m, math3d.RotateZ(math.Pi)); err != nil {
		t.Fatalf("MeshRel: %v", err)
	}

	after := MeshCenter(m)
	if math.Abs(before.X-after.X) > 1e-6 || math.Abs(before.Y-after.Y) > 1e-6 {
		t.Errorf("a rotation about the centroid should leave the centroid fixed: before=%v after=%v", before, after)
	}
}
