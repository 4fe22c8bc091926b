package utils

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// GoModParser reads go.mod files and maps directories to import paths
type GoModParser struct {
	cache *FileCache[*modfile.File]
}

// NewGoModParser creates a go.mod parser that caches parsed files
func NewGoModParser() *GoModParser {
	return &GoModParser{cache: NewFileCache[*modfile.File]()}
}

// ParseModuleName extracts the module path from a go.mod file
func (p *GoModParser) ParseModuleName(goModPath string) (string, error) {
	cleanPath := filepath.Clean(goModPath)
	if filepath.Base(cleanPath) != "go.mod" {
		return "", fmt.Errorf("file is not a go.mod file: %s", goModPath)
	}

	mf, err := p.cache.Load(cleanPath, parseModFile)
	if err != nil {
		return "", err
	}
	if mf.Module == nil {
		return "", fmt.Errorf("no module declaration found in %s", cleanPath)
	}
	return mf.Module.Mod.Path, nil
}

func parseModFile(p string) (*modfile.File, error) {
	content, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read go.mod file: %w", err)
	}
	mf, err := modfile.Parse(p, content, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.mod file: %w", err)
	}
	return mf, nil
}

// FindGoModFile searches for go.mod starting from startDir and walking up
func (p *GoModParser) FindGoModFile(startDir string) (string, error) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(currentDir, "go.mod")
		if info, err := os.Stat(goModPath); err == nil && !info.IsDir() {
			return goModPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", fmt.Errorf("go.mod file not found above %s", startDir)
}

// ImportPath returns the import path of the package in dir. It fails when
// dir is not inside a module.
func (p *GoModParser) ImportPath(dir string) (string, error) {
	goModPath, err := p.FindGoModFile(dir)
	if err != nil {
		return "", err
	}
	module, err := p.ParseModuleName(goModPath)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(filepath.Dir(goModPath), abs)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return module, nil
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside module %s", dir, module)
	}
	return path.Join(module, filepath.ToSlash(rel)), nil
}
