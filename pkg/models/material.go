package models

import "github.com/trigrid/trigrid/pkg/math3d"

// Material holds the Phong reflectance parameters and optional texture
// maps read from an MTL file (or defaulted when none is present). The
// rasterizer shades exclusively off the Ka/Kd/Ks/Ns/d/illum fields;
// BaseColor/Metallic/Roughness/HasTexture are PBR-style fields that no
// loader reads from a file: GLTFLoader does not read glTF materials and
// gives its meshes DefaultMaterial(), which sets only BaseColor and
// Roughness.
type Material struct {
	Name string

	Ambient  math3d.Vec3 // Ka
	Diffuse  math3d.Vec3 // Kd
	Specular math3d.Vec3 // Ks

	Shininess    float64 // Ns
	Transparency float64 // d (1 = fully opaque)
	Illum        int     // illum model index

	DiffuseTex  *Texture // map_Kd
	SpecularTex *Texture // map_Ks
	NormalTex   *Texture // map_Bump / map_bump

	// PBR-style fields; not filled from glTF material data by any loader.
	BaseColor  [4]float64
	Metallic   float64
	Roughness  float64
	HasTexture bool
}

// DefaultMaterial returns the material used when an OBJ has no MTL
// pairing: Ka=0.2, Kd=0.8, Ks=1, Ns=32, d=1, illum=2.
func DefaultMaterial() Material {
	return Material{
		Name:         "default",
		Ambient:      math3d.V3(0.2, 0.2, 0.2),
		Diffuse:      math3d.V3(0.8, 0.8, 0.8),
		Specular:     math3d.V3(1, 1, 1),
		Shininess:    32,
		Transparency: 1,
		Illum:        2,
		BaseColor:    [4]float64{0.8, 0.8, 0.8, 1},
		Roughness:    1,
	}
}
