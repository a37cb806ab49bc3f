package models

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/trigrid/trigrid/pkg/math3d"
)

// ParseOBJ reads a Wavefront OBJ stream and returns the mesh it
// describes. Faces are fan-triangulated; material bindings (mtllib,
// usemtl) and group/object names (g, o) are recognized but ignored —
// the caller pairs the mesh with a single MTL file's materials (see
// LoadMeshDir). Every face is emitted with Material set to 0; callers
// that load a paired MTL assign it uniformly after parsing.
//
// A malformed line for a recognized directive (spec.md §7's
// ParseError) is skipped rather than aborting the parse; the first one
// encountered is logged, and no further per-line warnings follow for
// the rest of this file.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var positions []math3d.Vec3
	var uvs []math3d.Vec2
	var normals []math3d.Vec3

	mesh := NewMesh(name)
	lineNum := 0
	warned := false
	warn := func(err error) {
		if warned {
			return
		}
		warned = true
		log.Printf("models: %s: %v (skipping malformed lines)", name, err)
	}

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseVec3(fields, lineNum, "v")
			if err != nil {
				warn(err)
				continue
			}
			positions = append(positions, p)
		case "vt":
			if len(fields) < 3 {
				warn(fmt.Errorf("obj line %d: vt expects 2 components", lineNum))
				continue
			}
			u, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				warn(fmt.Errorf("obj line %d: bad vt u: %w", lineNum, err))
				continue
			}
			v, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				warn(fmt.Errorf("obj line %d: bad vt v: %w", lineNum, err))
				continue
			}
			uvs = append(uvs, math3d.V2(u, v))
		case "vn":
			n, err := parseVec3(fields, lineNum, "vn")
			if err != nil {
				warn(err)
				continue
			}
			normals = append(normals, n)
		case "s":
			if len(fields) < 2 {
				continue
			}
			switch strings.ToLower(fields[1]) {
			case "on", "1":
				mesh.Smooth = true
			case "off", "0":
				mesh.Smooth = false
			}
		case "f":
			if len(fields) < 4 {
				warn(fmt.Errorf("obj line %d: face needs at least 3 vertices", lineNum))
				continue
			}
			vertexMark := len(mesh.Vertices)
			corners := make([]int, 0, len(fields)-1)
			faceOK := true
			for _, tok := range fields[1:] {
				vi, err := appendFaceVertex(mesh, tok, positions, uvs, normals, lineNum)
				if err != nil {
					warn(err)
					faceOK = false
					break
				}
				corners = append(corners, vi)
			}
			if !faceOK {
				mesh.Vertices = mesh.Vertices[:vertexMark]
				continue
			}
			for i := 2; i < len(corners); i++ {
				mesh.Faces = append(mesh.Faces, Face{
					V:        [3]int{corners[0], corners[i-1], corners[i]},
					Material: 0,
				})
			}
		case "g", "o", "mtllib", "usemtl":
			// Groups, objects, and material bindings are recognized but
			// not parsed; folder-level pairing assigns materials.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("models: reading obj: %w", err)
	}

	if len(mesh.Faces) == 0 {
		return nil, &AssetError{Kind: ParseErr, Path: name, Err: fmt.Errorf("no faces")}
	}

	if mesh.Smooth {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()
	return mesh, nil
}

func parseVec3(fields []string, lineNum int, directive string) (math3d.Vec3, error) {
	if len(fields) < 4 {
		return math3d.Vec3{}, fmt.Errorf("obj line %d: %s expects 3 components", lineNum, directive)
	}
	var c [3]float64
	for i := range 3 {
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("obj line %d: bad %s component: %w", lineNum, directive, err)
		}
		c[i] = v
	}
	return math3d.V3(c[0], c[1], c[2]), nil
}

// appendFaceVertex parses a v, v/t, v//n, or v/t/n index triple,
// resolves 1-based (and negative, relative-to-end) indices, appends a
// new MeshVertex, and returns its index.
func appendFaceVertex(mesh *Mesh, tok string, positions []math3d.Vec3, uvs []math3d.Vec2, normals []math3d.Vec3, lineNum int) (int, error) {
	parts := strings.Split(tok, "/")

	pIdx, err := resolveIndex(parts[0], len(positions), lineNum, "v")
	if err != nil {
		return 0, err
	}
	pos := positions[pIdx]

	uv := math3d.V2(0, 0)
	if len(parts) >= 2 && parts[1] != "" {
		uIdx, err := resolveIndex(parts[1], len(uvs), lineNum, "vt")
		if err != nil {
			return 0, err
		}
		uv = uvs[uIdx]
	}

	normal := math3d.V3(0, 0, 0)
	if len(parts) >= 3 && parts[2] != "" {
		nIdx, err := resolveIndex(parts[2], len(normals), lineNum, "vn")
		if err != nil {
			return 0, err
		}
		normal = normals[nIdx]
	}

	mesh.Vertices = append(mesh.Vertices, MeshVertex{Position: pos, Normal: normal, UV: uv})
	return len(mesh.Vertices) - 1, nil
}

// resolveIndex converts an OBJ 1-based index (or a negative index
// counted back from the end of the list) into a 0-based slice index.
func resolveIndex(s string, count int, lineNum int, directive string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("obj line %d: bad %s index %q: %w", lineNum, directive, s, err)
	}
	switch {
	case n > 0:
		n--
	case n < 0:
		n = count + n
	default:
		return 0, fmt.Errorf("obj line %d: %s index 0 is invalid", lineNum, directive)
	}
	if n < 0 || n >= count {
		return 0, fmt.Errorf("obj line %d: %s index out of range", lineNum, directive)
	}
	return n, nil
}
