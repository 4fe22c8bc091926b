package cli

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/toyz/thinobj/internal/errors"
	"github.com/toyz/thinobj/internal/utils"
)

// ModuleResolver maps package directories to import paths
type ModuleResolver struct {
	gomod *utils.GoModParser
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{gomod: utils.NewGoModParser()}
}

// ResolveModuleName returns customModule when set, otherwise the module of
// the go.mod above the working directory
func (r *ModuleResolver) ResolveModuleName(customModule string) (string, error) {
	if customModule != "" {
		return customModule, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapModuleError(".", err)
	}
	goMod, err := r.gomod.FindGoModFile(wd)
	if err != nil {
		return "", errors.WrapModuleError(wd, err)
	}
	name, err := r.gomod.ParseModuleName(goMod)
	if err != nil {
		return "", errors.WrapModuleError(wd, err)
	}
	return name, nil
}

// BuildPackagePath returns the import path of packageDir. With a custom
// module name the path is taken relative to the working directory.
func (r *ModuleResolver) BuildPackagePath(customModule, packageDir string) (string, error) {
	if customModule == "" {
		importPath, err := r.gomod.ImportPath(packageDir)
		if err != nil {
			return "", errors.WrapModuleError(packageDir, err)
		}
		return importPath, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapModuleError(packageDir, err)
	}
	abs, err := filepath.Abs(packageDir)
	if err != nil {
		return "", errors.WrapModuleError(packageDir, err)
	}
	rel, err := filepath.Rel(wd, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", errors.WrapModuleError(packageDir, errors.Newf(errors.ModuleErrorCode, "%s is outside the working directory", packageDir))
	}
	if rel == "." {
		return customModule, nil
	}
	return path.Join(customModule, filepath.ToSlash(rel)), nil
}
