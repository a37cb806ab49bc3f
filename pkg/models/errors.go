package models

import "fmt"

// AssetErrorKind tags the error taxonomy of spec.md §7: why an asset
// load failed.
type AssetErrorKind int

const (
	// AssetMissing: an OBJ/MTL/texture path could not be opened.
	AssetMissing AssetErrorKind = iota
	// ParseErr: an OBJ/MTL line was malformed. Individual malformed
	// lines are skipped and logged (see obj.go/mtl.go); AssetError
	// wraps this kind only when malformed input prevents producing a
	// usable asset at all (e.g. an OBJ with no faces after skipping).
	ParseErr
	// TextureDecodeFailed: the image decoder returned no usable data.
	TextureDecodeFailed
)

func (k AssetErrorKind) String() string {
	switch k {
	case AssetMissing:
		return "AssetMissing"
	case ParseErr:
		return "ParseError"
	case TextureDecodeFailed:
		return "TextureDecodeFailed"
	default:
		return "UnknownAssetError"
	}
}

// AssetError reports a failed asset load, tagged with the spec.md §7
// error kind and the path that triggered it. Callers that care about
// the taxonomy can type-assert or use errors.As; everyone else just
// sees a normal wrapped error from Error().
type AssetError struct {
	Kind AssetErrorKind
	Path string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("models: %s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *AssetError) Unwrap() error {
	return e.Err
}
