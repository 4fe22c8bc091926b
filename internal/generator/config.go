package generator

import (
	"github.com/toyz/thinobj/internal/annotations"
	"github.com/toyz/thinobj/internal/errors"
	"github.com/toyz/thinobj/internal/models"
)

// ConfigResolver turns //thin::object directives into resolved configurations
type ConfigResolver struct {
	parser    *annotations.Parser
	validator *annotations.Validator
}

// NewConfigResolver creates a resolver backed by the default directive schemas
func NewConfigResolver() *ConfigResolver {
	return &ConfigResolver{
		parser:    annotations.DefaultParser(),
		validator: annotations.NewValidator(annotations.DefaultRegistry()),
	}
}

// Resolve parses, validates and converts the directive of an annotated
// interface
func (r *ConfigResolver) Resolve(decl *models.InterfaceDecl) (models.Config, error) {
	loc := decl.DirectivePos
	cfg := models.Config{Pos: loc}

	d, err := r.parse(decl.Directive, loc)
	if err != nil {
		return cfg, err
	}
	if d.DirectiveKind() != annotations.ObjectDirective {
		return cfg, errors.Syntax(loc, decl.Directive, errors.New(errors.SyntaxErrorCode, "expected a //thin::object directive"))
	}

	for _, w := range d.Options {
		at := annotations.Location(loc, w.Pos)
		switch w.Name() {
		case "vtable":
			cfg.Vtable = nameSpec(w, loc)
		case "trait_object":
			cfg.TraitObject = nameSpec(w, loc)
		case "inline_vtable":
			cfg.InlineVtable = flagValue(w)
		case "store_layout":
			cfg.StoreLayout = flagValue(w)
		case "drop_abi":
			cfg.DropABI = w.Value().Text()
		case "marker_traits":
			cfg.MarkerTraits = markerList(w)
		case "inheritance":
			cfg.Inheritance = inheritance(w, at)
		}
	}
	return cfg, nil
}

// Method parses and validates a //thin::method directive
func (r *ConfigResolver) Method(directive string, loc errors.SourceLocation) (*annotations.Directive, error) {
	d, err := r.parse(directive, loc)
	if err != nil {
		return nil, err
	}
	if d.DirectiveKind() != annotations.MethodDirective {
		return nil, errors.Syntax(loc, directive, errors.New(errors.SyntaxErrorCode, "expected a //thin::method directive"))
	}
	return d, nil
}

func (r *ConfigResolver) parse(directive string, loc errors.SourceLocation) (*annotations.Directive, error) {
	d, err := r.parser.Parse(directive, loc)
	if err != nil {
		return nil, err
	}
	if err := r.validator.Validate(d, loc); err != nil {
		return nil, err
	}
	return d, nil
}

// flagValue reads a boolean option; the bare form means true
func flagValue(w *annotations.Word) bool {
	if w.IsBare() {
		return true
	}
	b, _ := w.Value().Bool()
	return b
}

func nameSpec(w *annotations.Word, loc errors.SourceLocation) models.NameSpec {
	spec := models.NameSpec{Pos: annotations.Location(loc, w.Pos)}
	args := w.Args()
	if args == nil || len(args.Args) == 0 {
		return spec
	}
	arg := args.Args[0]
	for _, a := range arg.Attrs() {
		spec.Attrs = append(spec.Attrs, models.Attribute{
			Name: a.Name,
			Args: a.ArgStrings(),
			Pos:  annotations.Location(loc, a.Pos),
		})
	}
	for _, word := range arg.Words() {
		switch word.Name() {
		case "pub":
			spec.Visibility = models.VisibilityPublic
		case "priv":
			spec.Visibility = models.VisibilityPrivate
		default:
			spec.Name = word.Name()
		}
	}
	return spec
}

func markerList(w *annotations.Word) []models.MarkerTrait {
	markers := []models.MarkerTrait{}
	for _, arg := range w.Args().Args {
		words := arg.Words()
		unsafe := len(words) == 2
		markers = append(markers, models.NewMarkerTrait(words[len(words)-1].Name(), unsafe))
	}
	return markers
}

func inheritance(w *annotations.Word, at errors.SourceLocation) *models.InheritanceConfig {
	cfg := &models.InheritanceConfig{Pos: at}
	for _, arg := range w.Args().Args {
		nested := arg.Words()[0]
		switch nested.Name() {
		case "extends":
			if list := nested.Args(); list != nil && len(list.Args) == 1 {
				cfg.Extends = list.Args[0].Words()[0].Name()
			}
		case "possible_super_trait":
			cfg.PossibleSuperTrait = flagValue(nested)
		}
	}
	return cfg
}
