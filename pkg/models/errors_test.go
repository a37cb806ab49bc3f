package models

import (
	"errors"
	"testing"
)

func TestAssetErrorUnwrapAndTag(t *testing.T) {
	inner := errors.New("boom")
	err := &AssetError{Kind: TextureDecodeFailed, Path: "tex.png", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to see through AssetError to the wrapped error")
	}

	var asErr *AssetError
	if !errors.As(err, &asErr) {
		t.Fatal("expected errors.As to recover the AssetError")
	}
	if asErr.Kind != TextureDecodeFailed {
		t.Errorf("expected Kind TextureDecodeFailed, got %v", asErr.Kind)
	}
	if got := err.Error(); got == "" {
		t.Error("expected a non-empty Error() string")
	}
}

func TestLoadMeshDirNoOBJErrorIsAssetMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadMeshDir(dir, fakeImages{}, LoadOptions{})
	if err == nil {
		t.Fatal("expected an error for a directory with no OBJ file")
	}
	var assetErr *AssetError
	if !errors.As(err, &assetErr) {
		t.Fatalf("expected an *AssetError, got %T: %v", err, err)
	}
	if assetErr.Kind != AssetMissing {
		t.Errorf("expected AssetMissing, got %v", assetErr.Kind)
	}
}
