package generator

import (
	"fmt"
	"strings"

	"github.com/toyz/thinobj/internal/errors"
	"github.com/toyz/thinobj/internal/models"
)

// resolveInheritance applies the inheritance(...) option to the build. It
// decides the forwarding target and, for extensions, resolves the super
// interface and removes it from bounds.
func (p *Pipeline) resolveInheritance(b *build, bounds []Bound) ([]Bound, error) {
	ctx := b.ctx
	inh := ctx.Config.Inheritance
	ctx.Target = models.SpecificHandle{HandleName: b.names.Handle}
	if inh == nil {
		return bounds, nil
	}
	if !p.opts.ExperimentalInheritance {
		return nil, errors.InheritanceNotEnabled(inh.Pos, ctx.InterfaceName)
	}

	if inh.PossibleSuperTrait {
		if ctx.Config.Vtable.Customized() {
			return nil, errors.CustomVtableNameUnsupported(ctx.Config.Vtable.Pos, ctx.InterfaceName, ctx.Config.Vtable.Name)
		}
		ctx.Target = models.BlanketCapability{
			TraitName:    b.names.Capability,
			VtableMethod: b.names.VtableMethod,
		}
	}

	if inh.Extends == "" {
		return bounds, nil
	}

	super, err := p.superRef(ctx.File, inh)
	if err != nil {
		return nil, err
	}
	if p.supers != nil {
		if err := p.supers.ResolveSuper(ctx.File, super); err != nil {
			b.warn(inh.Pos, fmt.Sprintf("could not resolve super interface %s: %v", super.Path, err))
		}
	}

	switch {
	case !super.Resolved:
		b.warn(inh.Pos, fmt.Sprintf("super interface %s was not found; assuming it was generated with default names", super.Path))
	case !super.Annotated || !super.PossibleSuper:
		b.warn(inh.Pos, fmt.Sprintf("super interface %s is not declared with inheritance(possible_super_trait = true)", super.Path))
	case super.InlineVtable != ctx.Config.InlineVtable:
		return nil, errors.IncompatibleSuperLayout(inh.Pos, ctx.InterfaceName, super.Path)
	}
	ctx.Super = super

	kept := bounds[:0:0]
	found := false
	for _, bound := range bounds {
		if bound.Qualifier == super.Qualifier && bound.Name == super.Name {
			found = true
			continue
		}
		kept = append(kept, bound)
	}
	if !found {
		b.warn(inh.Pos, fmt.Sprintf("%s extends %s but does not embed it", ctx.InterfaceName, super.Path))
	}
	return kept, nil
}

// superRef splits the extends path and resolves its package qualifier
func (p *Pipeline) superRef(file *models.SourceFile, inh *models.InheritanceConfig) (*models.SuperRef, error) {
	ref := &models.SuperRef{Path: inh.Extends, Name: inh.Extends}
	i := strings.LastIndex(inh.Extends, ".")
	if i < 0 {
		return ref, nil
	}

	pkg, name := inh.Extends[:i], inh.Extends[i+1:]
	if pkg == "" || name == "" {
		return nil, errors.MalformedValue(inh.Pos, "extends", "an interface name or pkg.Name", inh.Extends)
	}
	ref.Name = name

	if strings.Contains(pkg, "/") {
		imp, ok := findImport(file, pkg)
		if !ok {
			return nil, errors.MalformedValue(inh.Pos, "extends", "a package imported by "+file.Path, pkg)
		}
		ref.Qualifier, ref.ImportPath = imp.LocalName(), imp.Path
		return ref, nil
	}
	imp, ok := file.ResolveQualifier(pkg)
	if !ok {
		return nil, errors.MalformedValue(inh.Pos, "extends", "a package imported by "+file.Path, pkg)
	}
	ref.Qualifier, ref.ImportPath = pkg, imp.Path
	return ref, nil
}
