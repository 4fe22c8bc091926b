package generator

import (
	stderrors "errors"
	"path/filepath"
	"strings"

	"github.com/toyz/thinobj/internal/errors"
	"github.com/toyz/thinobj/internal/models"
	"github.com/toyz/thinobj/internal/templates"
	"github.com/toyz/thinobj/internal/utils"
)

// GeneratedHeader is the first line of every generated file
const GeneratedHeader = "// Code generated by thinobj. DO NOT EDIT."

// DefaultSuffix is appended to the source file name of a companion file
const DefaultSuffix = "_thin"

// CodeGenerator produces the companion file of a parsed source file
type CodeGenerator interface {
	GenerateFile(file *models.SourceFile) (*models.GeneratedFile, error)
}

// FileGenerator runs the pipeline over every annotated interface of a file
// and assembles the companion file
type FileGenerator struct {
	pipeline *Pipeline
	suffix   string
}

// NewFileGenerator creates a file generator. An empty suffix uses
// DefaultSuffix.
func NewFileGenerator(pipeline *Pipeline, suffix string) *FileGenerator {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return &FileGenerator{pipeline: pipeline, suffix: suffix}
}

// CompanionPath returns where the companion of a source file is written
func (g *FileGenerator) CompanionPath(sourcePath string) string {
	return strings.TrimSuffix(sourcePath, ".go") + g.suffix + ".go"
}

// GenerateFile transforms every annotated interface of file. It returns
// nil when the file has none. When any interface fails, no file is
// produced and every failure is reported.
func (g *FileGenerator) GenerateFile(file *models.SourceFile) (*models.GeneratedFile, error) {
	decls := file.Annotated()
	if len(decls) == 0 {
		return nil, nil
	}

	var (
		failures  *errors.MultipleErrors
		artifacts []*models.Artifacts
	)
	for _, decl := range decls {
		art, err := g.pipeline.Transform(file, decl)
		if err != nil {
			errors.AddToMultiple(&failures, asThinError(decl.Name, err))
			continue
		}
		artifacts = append(artifacts, art)
	}
	if err := failures.ErrOrNil(); err != nil {
		return nil, err
	}

	path := g.CompanionPath(file.Path)
	content, err := assemble(path, file.Package, artifacts)
	if err != nil {
		return nil, err
	}

	out := &models.GeneratedFile{
		SourcePath: file.Path,
		Path:       path,
		Package:    file.Package,
		Content:    content,
	}
	for _, art := range artifacts {
		out.Interfaces = append(out.Interfaces, art.Interface)
		out.Warnings = append(out.Warnings, art.Warnings...)
	}
	return out, nil
}

// assemble renders the companion file and formats it
func assemble(path, pkg string, artifacts []*models.Artifacts) ([]byte, error) {
	im := templates.NewImportManager()
	for _, art := range artifacts {
		for _, imp := range art.Imports {
			im.Add(imp)
		}
	}

	var sb strings.Builder
	sb.WriteString(GeneratedHeader)
	sb.WriteString("\n\npackage ")
	sb.WriteString(pkg)
	sb.WriteString("\n\n")
	sb.WriteString(im.GenerateImports())
	for _, art := range artifacts {
		for _, fragment := range art.Fragments() {
			sb.WriteString("\n")
			sb.WriteString(strings.TrimSpace(fragment))
			sb.WriteString("\n")
		}
	}

	content, err := utils.FormatSource(filepath.Base(path), []byte(sb.String()))
	if err != nil {
		return nil, errors.WrapGenerateError(path, err)
	}
	return content, nil
}

func asThinError(iface string, err error) errors.ThinError {
	var te errors.ThinError
	if stderrors.As(err, &te) {
		return te
	}
	return errors.WrapGenerateError(iface, err)
}
