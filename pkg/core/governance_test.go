//go:build governance

package core_test

import (
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// =============================================================================
// COHESION TEST - Core types must be shared by multiple packages
// =============================================================================

// TestGovernance_CoreCohesion verifies that types in pkg/core are genuinely
// shared across multiple packages. Single-use types should be moved to their
// sole consumer to maintain cohesion.
func TestGovernance_CoreCohesion(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports | packages.NeedTypes |
			packages.NeedTypesInfo | packages.NeedDeps,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	var corePkg *packages.Package
	for _, p := range pkgs {
		if p.PkgPath == modulePath+"/pkg/core" {
			corePkg = p
			break
		}
	}
	if corePkg == nil {
		t.Fatal("Could not find pkg/core")
	}

	// CoreTypeName -> set of importing packages
	usageMap := make(map[string]map[string]bool)
	scope := corePkg.Types.Scope()
	for _, name := range scope.Names() {
		if scope.Lookup(name).Exported() {
			usageMap[name] = make(map[string]bool)
		}
	}

	base := modulePath + "/"
	for _, p := range pkgs {
		if p.PkgPath == corePkg.PkgPath || strings.HasSuffix(p.PkgPath, "_test") || p.TypesInfo == nil {
			continue
		}
		for _, obj := range p.TypesInfo.Uses {
			if obj.Pkg() == nil || obj.Pkg().Path() != corePkg.PkgPath {
				continue
			}
			if _, tracked := usageMap[obj.Name()]; tracked {
				usageMap[obj.Name()][strings.TrimPrefix(p.PkgPath, base)] = true
			}
		}
	}

	for typeName, importers := range usageMap {
		if isCohesionAllowlisted(typeName) {
			continue
		}

		switch len(importers) {
		case 0:
			t.Logf("WARNING: Unused Core Type: %s (consider deleting)", typeName)
		case 1:
			var user string
			for k := range importers {
				user = k
			}
			t.Errorf("COHESION VIOLATION: 'core.%s' is used ONLY by '%s'.\n"+
				"   Fix: Move type from pkg/core to %s.",
				typeName, user, user)
		}
	}
}

// isCohesionAllowlisted returns true for names allowed to have single usage.
func isCohesionAllowlisted(name string) bool {
	allowlist := map[string]bool{
		"DialectConfig":    true, // Config struct for extension point
		"PaginationConfig": true,
		"NewQuery":         true, // constructor, only the builder creates queries
	}
	return allowlist[name]
}
