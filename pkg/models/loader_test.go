package models

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// fakeImages is an ImageProvider test double that returns a blank
// texture for any path it's told exists, and an error otherwise.
type fakeImages struct {
	known map[string]bool
}

func (f fakeImages) Decode(path string) (*Texture, error) {
	if !f.known[path] {
		return nil, fmt.Errorf("fakeImages: no such texture %s", path)
	}
	return NewTexture(2, 2), nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

const triOBJ = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

func TestLoadMeshDirWithMTLAndTexture(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "model.obj", triOBJ)
	writeFile(t, dir, "model.mtl", "newmtl m\nKd 0.5 0.5 0.5\nmap_Kd tex.png\n")

	texPath := filepath.Join(dir, "tex.png")
	images := fakeImages{known: map[string]bool{texPath: true}}

	mesh, err := LoadMeshDir(dir, images, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadMeshDir: %v", err)
	}
	if len(mesh.Materials) != 1 {
		t.Fatalf("expected 1 material, got %d", len(mesh.Materials))
	}
	if mesh.Materials[0].DiffuseTex == nil {
		t.Error("expected the MTL's map_Kd texture to be resolved and attached")
	}
	for _, f := range mesh.Faces {
		if f.Material != 0 {
			t.Errorf("every face should point at material 0, got %d", f.Material)
		}
	}
}

func TestLoadMeshDirWithoutMTLUsesDefault(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "model.obj", triOBJ)

	mesh, err := LoadMeshDir(dir, fakeImages{}, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadMeshDir: %v", err)
	}
	if mesh.Materials[0].Name != DefaultMaterial().Name {
		t.Errorf("expected the default material when no MTL is present, got %q", mesh.Materials[0].Name)
	}
}

func TestLoadMeshDirFallsBackToLooseImage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "model.obj", triOBJ)
	writeFile(t, dir, "loose.png", "not a real png, provider is faked")

	imgPath := filepath.Join(dir, "loose.png")
	images := fakeImages{known: map[string]bool{imgPath: true}}

	mesh, err := LoadMeshDir(dir, images, LoadOptions{})
	if err != nil {
		t.Fatalf("LoadMeshDir: %v", err)
	}
	if mesh.Materials[0].DiffuseTex == nil {
		t.Error("expected the loose image file to be used as a fallback diffuse map")
	}
}

func TestLoadMeshDirNoOBJErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadMeshDir(dir, fakeImages{}, LoadOptions{}); err == nil {
		t.Error("expected an error for a directory with no OBJ file")
	}
}

func TestLoadMeshDirForceSmooth(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "model.obj", triOBJ)

	mesh, err := LoadMeshDir(dir, fakeImages{}, LoadOptions{ForceSmooth: true})
	if err != nil {
		t.Fatalf("LoadMeshDir: %v", err)
	}
	if !mesh.Smooth {
		t.Error("expected ForceSmooth to set mesh.Smooth regardless of the OBJ's own 's' directive")
	}
}
