package models

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ImageProvider decodes an image file into a models.Texture. Swapping
// the provider lets callers substitute a test double without touching
// the filesystem.
type ImageProvider interface {
	Decode(path string) (*Texture, error)
}

// stdImageProvider decodes PNG and JPEG files using the standard
// library's image package.
type stdImageProvider struct{}

// NewImageProvider returns the default ImageProvider, backed by
// image/png and image/jpeg.
func NewImageProvider() ImageProvider {
	return stdImageProvider{}
}

func (stdImageProvider) Decode(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &AssetError{Kind: AssetMissing, Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &AssetError{Kind: TextureDecodeFailed, Path: path, Err: err}
	}

	return TextureFromImage(img), nil
}

// LoadOptions controls mesh loading behavior.
type LoadOptions struct {
	// ForceSmooth unconditionally runs smooth-normal synthesis,
	// overriding the OBJ's own "s" directive.
	ForceSmooth bool
}

var objExt = map[string]bool{".obj": true}
var mtlExt = map[string]bool{".mtl": true}
var imgExt = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// LoadMeshDir scans dir (in file-name order) for an .obj, paired with
// an .mtl and, when the MTL names no map_Kd, a .png/.jpg as a fallback
// diffuse map, and returns the assembled mesh. Multiple OBJs or MTLs in
// the folder produce a warning and the last one seen wins; with several
// images the last one seen is used, without a warning. A folder with
// no OBJ fails.
func LoadMeshDir(dir string, images ImageProvider, opts LoadOptions) (*Mesh, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &AssetError{Kind: AssetMissing, Path: dir, Err: err}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var objPath, mtlPath, imgPath string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		full := filepath.Join(dir, e.Name())
		switch {
		case objExt[ext]:
			if objPath != "" {
				log.Printf("models: multiple OBJ files in %s, using %s", dir, e.Name())
			}
			objPath = full
		case mtlExt[ext]:
			if mtlPath != "" {
				log.Printf("models: multiple MTL files in %s, using %s", dir, e.Name())
			}
			mtlPath = full
		case imgExt[ext]:
			imgPath = full
		}
	}

	if objPath == "" {
		return nil, &AssetError{Kind: AssetMissing, Path: dir, Err: fmt.Errorf("no OBJ file found")}
	}

	f, err := os.Open(objPath)
	if err != nil {
		return nil, &AssetError{Kind: AssetMissing, Path: objPath, Err: err}
	}
	mesh, err := ParseOBJ(f, strings.TrimSuffix(filepath.Base(objPath), filepath.Ext(objPath)))
	f.Close()
	if err != nil {
		return nil, err
	}

	if opts.ForceSmooth {
		mesh.Smooth = true
		mesh.CalculateSmoothNormals()
	}

	var mat Material
	var texPaths MTLTexturePaths
	haveMat := false

	if mtlPath != "" {
		mf, err := os.Open(mtlPath)
		if err != nil {
			return nil, &AssetError{Kind: AssetMissing, Path: mtlPath, Err: err}
		}
		materials, paths, err := ParseMTL(mf, filepath.Base(mtlPath))
		mf.Close()
		if err != nil {
			return nil, err
		}
		if len(materials) > 0 {
			mat = materials[0]
			texPaths = paths[0]
			haveMat = true
		}
	}
	if !haveMat {
		mat = DefaultMaterial()
	}

	mtlDir := filepath.Dir(mtlPath)
	if mtlPath == "" {
		mtlDir = dir
	}

	if texPaths.Diffuse != "" {
		tex, err := images.Decode(filepath.Join(mtlDir, texPaths.Diffuse))
		if err != nil {
			log.Printf("models: loading diffuse map %s: %v", texPaths.Diffuse, err)
		} else {
			mat.DiffuseTex = tex
		}
	} else if imgPath != "" {
		tex, err := images.Decode(imgPath)
		if err != nil {
			log.Printf("models: loading fallback diffuse map %s: %v", imgPath, err)
		} else {
			mat.DiffuseTex = tex
		}
	}
	if texPaths.Specular != "" {
		tex, err := images.Decode(filepath.Join(mtlDir, texPaths.Specular))
		if err != nil {
			log.Printf("models: loading specular map %s: %v", texPaths.Specular, err)
		} else {
			mat.SpecularTex = tex
		}
	}
	if texPaths.Normal != "" {
		tex, err := images.Decode(filepath.Join(mtlDir, texPaths.Normal))
		if err != nil {
			log.Printf("models: loading normal map %s: %v", texPaths.Normal, err)
		} else {
			mat.NormalTex = tex
		}
	}

	mesh.Materials = []Material{mat}
	for i := range mesh.Faces {
		mesh.Faces[i].Material = 0
	}

	return mesh, nil
}
