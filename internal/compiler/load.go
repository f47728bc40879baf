package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/masonlang/mason/internal/ir"
)

// LoadStructures compiles the given CUE files and collects every structure
// declared under the top-level "structure" field, in file order then
// declaration order.
func LoadStructures(paths []string) ([]*ir.StructureDef, error) {
	ctx := cuecontext.New()

	var defs []*ir.StructureDef
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read spec file: %w", err)
		}

		v := ctx.CompileBytes(data, cue.Filename(path))
		if err := v.Err(); err != nil {
			return nil, formatCUEError(err)
		}

		root := v.LookupPath(cue.ParsePath("structure"))
		if !root.Exists() {
			return nil, fmt.Errorf("%s: no structure declarations found", path)
		}

		iter, err := root.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			def, err := CompileStructure(iter.Value())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			defs = append(defs, def)
		}
	}
	return defs, nil
}

// LoadDir loads every .cue file directly under dir, sorted by name.
func LoadDir(dir string) ([]*ir.StructureDef, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.cue"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob spec directory: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .cue files found in %s", dir)
	}
	sort.Strings(paths)
	return LoadStructures(paths)
}

// FindStructure returns the structure with the given name, or an error
// naming the structures that do exist.
func FindStructure(defs []*ir.StructureDef, name string) (*ir.StructureDef, error) {
	var names []string
	for _, def := range defs {
		if def.Name == name {
			return def, nil
		}
		names = append(names, def.Name)
	}
	return nil, fmt.Errorf("structure %q not found (have %v)", name, names)
}
