package generator

import (
	"fmt"

	"github.com/toyz/thinobj/internal/errors"
	"github.com/toyz/thinobj/internal/models"
	"github.com/toyz/thinobj/internal/templates"
)

// Options are the capabilities the pipeline runs with
type Options struct {
	// ExperimentalInheritance enables the inheritance(...) option
	ExperimentalInheritance bool
}

// Pipeline transforms annotated interfaces into generated declarations
type Pipeline struct {
	opts       Options
	config     *ConfigResolver
	normalizer *Normalizer
	supers     SuperResolver
	templates  *templates.TemplateRegistry
}

// NewPipeline creates a pipeline. supers may be nil, in which case every
// extended interface is left unresolved.
func NewPipeline(opts Options, supers SuperResolver) *Pipeline {
	config := NewConfigResolver()
	return &Pipeline{
		opts:       opts,
		config:     config,
		normalizer: NewNormalizer(config),
		supers:     supers,
		templates:  templates.DefaultTemplateRegistry,
	}
}

// build carries one transformation through the stages
type build struct {
	ctx      *models.BuildContext
	names    models.Names
	dropped  []Bound
	warnings []models.Warning
	imports  *templates.ImportManager
	tmpl     *templates.TemplateRegistry
}

func (b *build) warn(loc errors.SourceLocation, msg string) {
	b.warnings = append(b.warnings, models.Warning{Loc: loc, Message: msg})
}

func (b *build) render(name string, data interface{}) (string, error) {
	out, err := b.tmpl.Render(name, data)
	if err != nil {
		return "", errors.WrapTemplateError(name, "render", err)
	}
	return out, nil
}

// Transform runs every stage on decl. The first error aborts the
// transformation and nothing is produced for decl.
func (p *Pipeline) Transform(file *models.SourceFile, decl *models.InterfaceDecl) (*models.Artifacts, error) {
	cfg, err := p.config.Resolve(decl)
	if err != nil {
		return nil, err
	}
	if err := checkDecorations(cfg); err != nil {
		return nil, err
	}

	methods, bounds, err := p.normalizer.Normalize(decl)
	if err != nil {
		return nil, err
	}

	names := models.DeriveNames(decl.Name, cfg)
	b := &build{
		ctx: &models.BuildContext{
			File:          file,
			Interface:     decl,
			Config:        cfg,
			InterfaceName: decl.Name,
			VtableName:    names.Vtable,
			ReprName:      names.Repr,
			HandleName:    names.Handle,
			Exported:      names.Exported,
		},
		names:   names,
		imports: templates.NewImportManager(),
		tmpl:    p.templates,
	}

	if bounds, err = p.resolveInheritance(b, bounds); err != nil {
		return nil, err
	}
	p.splitBounds(b, bounds)
	b.ctx.SetMethods(methods)
	p.collectImports(b, decl)

	art := &models.Artifacts{Interface: decl.Name}
	if art.Vtable, art.SchemaID, err = vtableStage(b); err != nil {
		return nil, err
	}
	if art.Repr, err = reprStage(b); err != nil {
		return nil, err
	}
	if art.Handle, art.Markers, err = handleStage(b); err != nil {
		return nil, err
	}
	if art.Extension, err = extensionStage(b); err != nil {
		return nil, err
	}

	art.Imports = b.imports.Imports()
	art.Warnings = b.warnings
	return art, nil
}

// splitBounds records markers and the lifetime constraint and warns about
// every bound that is neither
func (p *Pipeline) splitBounds(b *build, bounds []Bound) {
	ctx := b.ctx
	pred := DefaultMarkerPredicate(ctx.File)
	if ctx.Config.HasMarkerOverride() {
		pred = OverrideMarkerPredicate(ctx.File, ctx.Config.MarkerTraits)
	}

	markers, lifetimes, dropped := SplitBounds(ctx.File, bounds, pred)
	ctx.Markers = markers
	ctx.Static = len(lifetimes) > 0 || (ctx.Super != nil && ctx.Super.Static)
	ctx.NeedsLifetime = !ctx.Static
	b.dropped = dropped
	for _, d := range dropped {
		b.warn(d.Pos, fmt.Sprintf("%s embeds %s, which is not a marker; %s must implement its methods by hand",
			ctx.InterfaceName, d.Path(), ctx.HandleName))
	}
}

// collectImports gathers the packages the generated declarations refer to
func (p *Pipeline) collectImports(b *build, decl *models.InterfaceDecl) {
	im := b.imports
	im.AddImport("unsafe")
	im.AddPackageImport(runtimeName, RuntimeImportPath)

	for _, item := range decl.Items {
		for _, q := range item.Qualifiers {
			if imp, ok := b.ctx.File.ResolveQualifier(q); ok {
				im.Add(imp)
			}
		}
	}
	if super := b.ctx.Super; super != nil {
		if super.Qualifier != "" {
			im.Add(models.Import{Name: super.Qualifier, Path: super.ImportPath})
		}
		for _, imp := range super.Imports {
			im.Add(imp)
		}
	}
}
