package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePath = "github.com/leapstack-labs/leapquery"

// coreImports returns the imports of every non-test file in pkg/core, by file name.
func coreImports(t *testing.T) map[string][]string {
	t.Helper()

	fset := token.NewFileSet()
	entries, err := os.ReadDir(".")
	if err != nil {
		t.Fatalf("Failed to read core directory: %v", err)
	}

	out := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") || strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		path := filepath.Join(".", entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}
		for _, imp := range f.Imports {
			out[entry.Name()] = append(out[entry.Name()], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return out
}

// TestCoreImportsOnly verifies pkg/core only imports allowed packages.
// The Golden Rule: pkg/core imports ONLY pkg/naming and stdlib.
func TestCoreImportsOnly(t *testing.T) {
	allowedExternal := map[string]bool{
		modulePath + "/pkg/naming": true,
	}

	for file, imports := range coreImports(t) {
		for _, importPath := range imports {
			// stdlib has no dots in the first path element
			if !strings.Contains(importPath, ".") {
				continue
			}
			if !allowedExternal[importPath] {
				t.Errorf("%s imports forbidden package: %s", file, importPath)
			}
		}
	}
}

// TestCoreDoesNotImportRenderers verifies the model never depends on the
// packages that consume it.
func TestCoreDoesNotImportRenderers(t *testing.T) {
	forbidden := []string{"/internal/", "/pkg/format", "/pkg/dialect", "/pkg/builder", "/pkg/adapter"}

	for file, imports := range coreImports(t) {
		for _, importPath := range imports {
			for _, f := range forbidden {
				if strings.Contains(importPath, f) {
					t.Errorf("%s imports %s (core must stay a leaf package)", file, importPath)
				}
			}
		}
	}
}
