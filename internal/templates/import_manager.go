package templates

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/toyz/thinobj/internal/models"
)

// ImportManager handles import generation and deduplication
type ImportManager struct {
	standardImports map[string]bool
	packageImports  map[string]string // alias -> path
}

// NewImportManager creates a new import manager
func NewImportManager() *ImportManager {
	return &ImportManager{
		standardImports: make(map[string]bool),
		packageImports:  make(map[string]string),
	}
}

// AddImport adds an import referenced by its default name
func (im *ImportManager) AddImport(importPath string) {
	if importPath != "" {
		im.standardImports[importPath] = true
	}
}

// AddPackageImport adds an import referenced by alias. An alias equal to
// the last path element is recorded as a plain import.
func (im *ImportManager) AddPackageImport(alias, importPath string) {
	if importPath == "" {
		return
	}
	if alias == "" || alias == path.Base(importPath) {
		im.AddImport(importPath)
		return
	}
	im.packageImports[alias] = importPath
}

// Add records a source file import
func (im *ImportManager) Add(imp models.Import) {
	im.AddPackageImport(imp.Name, imp.Path)
}

// Imports returns the recorded imports, plain ones first
func (im *ImportManager) Imports() []models.Import {
	var out []models.Import
	for _, p := range sortedSet(im.standardImports) {
		out = append(out, models.Import{Path: p})
	}
	aliases := make([]string, 0, len(im.packageImports))
	for alias := range im.packageImports {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		out = append(out, models.Import{Name: alias, Path: im.packageImports[alias]})
	}
	return out
}

// GenerateImports generates the import section
func (im *ImportManager) GenerateImports() string {
	if im.isEmpty() {
		return ""
	}
	imports := im.Imports()

	if len(imports) == 1 {
		return fmt.Sprintf("import %s\n", imports[0].Spec())
	}

	var result strings.Builder
	result.WriteString("import (\n")
	for _, imp := range imports {
		result.WriteString(fmt.Sprintf("\t%s\n", imp.Spec()))
	}
	result.WriteString(")\n")

	return result.String()
}

// isEmpty checks if there are any imports to generate
func (im *ImportManager) isEmpty() bool {
	return len(im.standardImports) == 0 && len(im.packageImports) == 0
}

// Merge merges another import manager into this one
func (im *ImportManager) Merge(other *ImportManager) {
	for imp := range other.standardImports {
		im.standardImports[imp] = true
	}
	for alias, p := range other.packageImports {
		im.packageImports[alias] = p
	}
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
