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

// MTLTexturePaths holds the raw (unresolved) texture filenames named by
// a material's map_Kd/map_Ks/map_Bump directives, keyed by material
// index in the slice ParseMTL returns alongside it.
type MTLTexturePaths struct {
	Diffuse  string
	Specular string
	Normal   string
}

// ParseMTL reads a Wavefront MTL stream and returns the materials it
// defines (in file order) along with the raw texture filenames each one
// names. Unrecognized directives are ignored. Texture paths are
// returned unresolved; the caller joins them against the MTL's
// directory.
//
// A malformed line for a recognized directive (spec.md §7's
// ParseError) is skipped rather than aborting the parse; the first one
// encountered is logged, and no further per-line warnings follow for
// the rest of this file.
func ParseMTL(r io.Reader, name string) ([]Material, []MTLTexturePaths, error) {
	scanner := bufio.NewScanner(r)
	var materials []Material
	var texPaths []MTLTexturePaths
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
		case "newmtl":
			if len(fields) < 2 {
				warn(fmt.Errorf("mtl line %d: newmtl missing name", lineNum))
				continue
			}
			m := DefaultMaterial()
			m.Name = fields[1]
			materials = append(materials, m)
			texPaths = append(texPaths, MTLTexturePaths{})
		case "Ka":
			if err := parseMtlColor3(materials, fields, lineNum, func(m *Material, c [3]float64) {
				m.Ambient = vec3From(c)
			}); err != nil {
				warn(err)
			}
		case "Kd":
			if err := parseMtlColor3(materials, fields, lineNum, func(m *Material, c [3]float64) {
				m.Diffuse = vec3From(c)
			}); err != nil {
				warn(err)
			}
		case "Ks":
			if err := parseMtlColor3(materials, fields, lineNum, func(m *Material, c [3]float64) {
				m.Specular = vec3From(c)
			}); err != nil {
				warn(err)
			}
		case "Ns":
			if err := parseMtlScalar(materials, fields, lineNum, func(m *Material, v float64) {
				m.Shininess = v
			}); err != nil {
				warn(err)
			}
		case "d":
			if err := parseMtlScalar(materials, fields, lineNum, func(m *Material, v float64) {
				m.Transparency = v
			}); err != nil {
				warn(err)
			}
		case "illum":
			if len(materials) == 0 {
				continue
			}
			if len(fields) < 2 {
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				warn(fmt.Errorf("mtl line %d: bad illum value: %w", lineNum, err))
				continue
			}
			materials[len(materials)-1].Illum = n
		case "map_Kd", "map_Ks", "map_Bump", "map_bump":
			if len(texPaths) == 0 || len(fields) < 2 {
				continue
			}
			path := fields[len(fields)-1]
			switch fields[0] {
			case "map_Kd":
				texPaths[len(texPaths)-1].Diffuse = path
			case "map_Ks":
				texPaths[len(texPaths)-1].Specular = path
			case "map_Bump", "map_bump":
				texPaths[len(texPaths)-1].Normal = path
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("models: reading mtl: %w", err)
	}
	return materials, texPaths, nil
}

func vec3From(c [3]float64) math3d.Vec3 {
	return math3d.V3(c[0], c[1], c[2])
}

func parseMtlColor3(materials []Material, fields []string, lineNum int, set func(*Material, [3]float64)) error {
	if len(materials) == 0 {
		return nil
	}
	if len(fields) < 4 {
		return fmt.Errorf("mtl line %d: %s expects 3 components", lineNum, fields[0])
	}
	var c [3]float64
	for i := range 3 {
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return fmt.Errorf("mtl line %d: bad %s component: %w", lineNum, fields[0], err)
		}
		c[i] = v
	}
	set(&materials[len(materials)-1], c)
	return nil
}

func parseMtlScalar(materials []Material, fields []string, lineNum int, set func(*Material, float64)) error {
	if len(materials) == 0 {
		return nil
	}
	if len(fields) < 2 {
		return fmt.Errorf("mtl line %d: %s expects a value", lineNum, fields[0])
	}
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return fmt.Errorf("mtl line %d: bad %s value: %w", lineNum, fields[0], err)
	}
	set(&materials[len(materials)-1], v)
	return nil
}
