package cli

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/toyz/thinobj/internal/errors"
	"github.com/toyz/thinobj/internal/generator"
	"github.com/toyz/thinobj/internal/models"
	"github.com/toyz/thinobj/internal/parser"
	"github.com/toyz/thinobj/internal/utils"
)

// Generator coordinates a generate run over a set of directories
type Generator struct {
	config         Config
	fileProcessor  *utils.FileProcessor
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	loader         generator.PackageLoader
	diagnostics    *utils.DiagnosticSystem
	summary        GenerationSummary
}

// NewGenerator creates a generator for config. A nil diagnostics system
// stays quiet.
func NewGenerator(config Config, diagnostics *utils.DiagnosticSystem) *Generator {
	if config.Suffix == "" {
		config.Suffix = generator.DefaultSuffix
	}
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticSilent)
	}
	fp := utils.NewFileProcessor(config.Suffix, generator.GeneratedHeader)
	return &Generator{
		config:         config,
		fileProcessor:  fp,
		scanner:        NewDirectoryScanner(fp),
		moduleResolver: NewModuleResolver(),
		loader:         generator.LoadPackage,
		diagnostics:    diagnostics,
	}
}

// SetPackageLoader replaces how packages of remote super interfaces are loaded
func (g *Generator) SetPackageLoader(loader generator.PackageLoader) {
	g.loader = loader
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run generates the companions of every package under the configured
// directories. A file whose interfaces fail keeps its previous companion;
// the other files are still written. All failures are returned together.
func (g *Generator) Run() error {
	start := time.Now()
	g.summary = GenerationSummary{}

	g.diagnostics.Verbose("starting generation at %s", start.Format("15:04:05"))
	g.diagnostics.Debug("directories: %v", g.config.Directories)

	dirs, err := g.scanner.ScanDirectories(g.config.Directories)
	if err != nil {
		return models.NewGeneratorError("", err)
	}
	if len(dirs) == 0 {
		g.diagnostics.Warn("no Go packages found in %v", g.config.Directories)
		return nil
	}

	g.diagnostics.PhaseHeader(fmt.Sprintf("scanning %d packages", len(dirs)))
	g.diagnostics.Indent()
	defer g.diagnostics.Unindent()

	var failures *errors.MultipleErrors
	for _, dir := range dirs {
		if err := g.processPackage(dir, &failures); err != nil {
			return err
		}
	}
	g.summary.Duration = time.Since(start)

	if err := failures.ErrOrNil(); err != nil {
		return err
	}
	if g.config.Check && len(g.summary.StaleFiles) > 0 {
		return errors.Newf(errors.GenerationErrorCode, "%d companion files are out of date", len(g.summary.StaleFiles)).
			WithContext("files", g.summary.StaleFiles).
			WithSuggestion("run thinobj generate and commit the result")
	}
	return nil
}

// processPackage generates the companions of one directory. Transform and
// file system failures are collected; a module resolution failure stops the
// run.
func (g *Generator) processPackage(dir string, failures **errors.MultipleErrors) error {
	g.diagnostics.Verbose("processing %s", dir)

	importPath, err := g.moduleResolver.BuildPackagePath(g.config.ModuleName, dir)
	if err != nil {
		return err
	}

	files, err := parser.NewParser().ParseDirectory(dir, g.fileProcessor.IsCompanionName)
	if err != nil {
		errors.AddToMultiple(failures, asThinError(err))
		return nil
	}
	for _, f := range files {
		f.ImportPath = importPath
	}
	g.summary.PackagesProcessed++

	pipeline := generator.NewPipeline(
		generator.Options{ExperimentalInheritance: g.config.ExperimentalInheritance},
		generator.NewPackageResolver(files, g.loader),
	)
	fg := generator.NewFileGenerator(pipeline, g.config.Suffix)

	for _, f := range files {
		out, err := fg.GenerateFile(f)
		if err != nil {
			addAll(failures, err)
			continue
		}
		if out == nil {
			if err := g.removeStale(fg.CompanionPath(f.Path)); err != nil {
				errors.AddToMultiple(failures, asThinError(err))
			}
			continue
		}

		for _, w := range out.Warnings {
			g.diagnostics.Warn("%s", w)
			g.summary.Warnings++
		}
		g.summary.InterfacesGenerated += len(out.Interfaces)
		if err := g.write(out); err != nil {
			errors.AddToMultiple(failures, asThinError(err))
		}
	}
	return nil
}

// write stores a companion unless it is unchanged. In check mode it only
// records the difference.
func (g *Generator) write(out *models.GeneratedFile) error {
	existing, err := os.ReadFile(out.Path)
	if err == nil && bytes.Equal(existing, out.Content) {
		g.summary.UnchangedFiles = append(g.summary.UnchangedFiles, out.Path)
		return nil
	}
	if g.config.Check {
		g.summary.StaleFiles = append(g.summary.StaleFiles, out.Path)
		g.diagnostics.Warn("%s is out of date", out.Path)
		return nil
	}

	g.diagnostics.Verbose("writing %s (%v)", filepath.Base(out.Path), out.Interfaces)
	if err := os.WriteFile(out.Path, out.Content, 0o644); err != nil {
		return errors.WrapFileSystemError("write", out.Path, err)
	}
	g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, out.Path)
	g.diagnostics.PhaseItem(out.Path)
	return nil
}

// removeStale deletes a companion whose source no longer has annotated
// interfaces
func (g *Generator) removeStale(path string) error {
	ok, err := g.fileProcessor.IsGenerated(path)
	if os.IsNotExist(err) || (err == nil && !ok) {
		return nil
	}
	if err != nil {
		return errors.WrapFileSystemError("read", path, err)
	}
	if g.config.Check {
		g.summary.StaleFiles = append(g.summary.StaleFiles, path)
		g.diagnostics.Warn("%s is no longer needed", path)
		return nil
	}
	if err := os.Remove(path); err != nil {
		return errors.WrapFileSystemError("remove", path, err)
	}
	g.diagnostics.Verbose("removed %s", path)
	g.summary.RemovedFiles = append(g.summary.RemovedFiles, path)
	return nil
}

func addAll(failures **errors.MultipleErrors, err error) {
	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) {
		for _, e := range multi.Errors {
			errors.AddToMultiple(failures, e)
		}
		return
	}
	errors.AddToMultiple(failures, asThinError(err))
}

func asThinError(err error) errors.ThinError {
	var te errors.ThinError
	if stderrors.As(err, &te) {
		return te
	}
	return errors.Wrap(errors.GenerationErrorCode, err.Error(), err)
}
