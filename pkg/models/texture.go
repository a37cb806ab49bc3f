package models

import (
	"image"

	"github.com/trigrid/trigrid/pkg/math3d"
)

// Texture is a decoded RGB image, each channel held as a float64 in
// [0, 1]. Sampling a nil *Texture returns opaque white, matching the
// "absent texture" rule for materials with no map_Kd.
type Texture struct {
	Width, Height int
	Pixels        []math3d.Vec3
}

// NewTexture creates a Width x Height texture initialized to black.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]math3d.Vec3, width*height),
	}
}

// TextureFromImage copies a decoded image.Image into a Texture,
// converting each pixel from its native color model to linear [0, 1]
// RGB via RGBA(). Shared by the OBJ/MTL loader's diffuse/specular/
// normal map decoding and the glTF loader's embedded-texture path.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	tex := NewTexture(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			tex.SetPixel(x, y, math3d.V3(float64(r)/65535, float64(g)/65535, float64(b)/65535))
		}
	}
	return tex
}

// SetPixel sets the color at (x, y). Out-of-bounds writes are ignored.
func (t *Texture) SetPixel(x, y int, c math3d.Vec3) {
	if t == nil || x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// Sample returns the nearest-neighbor color at normalized (u, v)
// coordinates, wrapping (repeat) out-of-range values. A nil receiver
// yields opaque white.
func (t *Texture) Sample(u, v float64) math3d.Vec3 {
	if t == nil || t.Width == 0 || t.Height == 0 {
		return math3d.V3(1, 1, 1)
	}
	u -= floorTo(u)
	v -= floorTo(v)

	x := int(u * float64(t.Width))
	y := int((1 - v) * float64(t.Height))
	x = clampInt(x, 0, t.Width-1)
	y = clampInt(y, 0, t.Height-1)

	return t.Pixels[y*t.Width+x]
}

// SampleBilinear returns a bilinearly filtered sample at normalized
// (u, v) coordinates. A nil receiver yields opaque white.
func (t *Texture) SampleBilinear(u, v float64) math3d.Vec3 {
	if t == nil || t.Width == 0 || t.Height == 0 {
		return math3d.V3(1, 1, 1)
	}
	u -= floorTo(u)
	v -= floorTo(v)

	fx := u*float64(t.Width) - 0.5
	fy := (1-v)*float64(t.Height) - 0.5

	x0 := clampInt(int(floorTo(fx)), 0, t.Width-1)
	y0 := clampInt(int(floorTo(fy)), 0, t.Height-1)
	x1 := clampInt(x0+1, 0, t.Width-1)
	y1 := clampInt(y0+1, 0, t.Height-1)

	tx := fx - floorTo(fx)
	ty := fy - floorTo(fy)

	c00 := t.Pixels[y0*t.Width+x0]
	c10 := t.Pixels[y0*t.Width+x1]
	c01 := t.Pixels[y1*t.Width+x0]
	c11 := t.Pixels[y1*t.Width+x1]

	top := c00.Lerp(c10, tx)
	bottom := c01.Lerp(c11, tx)
	return top.Lerp(bottom, ty)
}

func floorTo(v float64) float64 {
	i := float64(int(v))
	if v < 0 && i != v {
		i--
	}
	return i
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
