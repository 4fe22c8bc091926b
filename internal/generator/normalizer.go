package generator

import (
	"strconv"

	"github.com/toyz/thinobj/internal/annotations"
	"github.com/toyz/thinobj/internal/errors"
	"github.com/toyz/thinobj/internal/models"
)

// Bound is an embedded element of an interface. Bounds are not methods:
// they name markers, the lifetime constraint or the extended interface.
type Bound struct {
	Qualifier string
	Name      string
	Pos       errors.SourceLocation
}

// Path renders the bound as written
func (b Bound) Path() string {
	if b.Qualifier == "" {
		return b.Name
	}
	return b.Qualifier + "." + b.Name
}

// reservedMethods are members of the generated handle or table that an
// interface method may not shadow
var reservedMethods = map[string]bool{
	"AsRaw":      true,
	"IntoRaw":    true,
	"Vtable":     true,
	"DataPtr":    true,
	"Drop":       true,
	"InvokeDrop": true,
	"Super":      true,
	"Size":       true,
	"Align":      true,
}

// reservedParams are identifiers the generated bodies rely on
var reservedParams = map[string]bool{
	"a":      true,
	"b":      true,
	"t":      true,
	"T":      true,
	"self":   true,
	"locate": true,
	"ptr":    true,
	"vt":     true,
	"thin":   true,
	"unsafe": true,
}

// Normalizer turns the raw elements of an interface into method descriptors
type Normalizer struct {
	config *ConfigResolver
}

// NewNormalizer creates a normalizer
func NewNormalizer(config *ConfigResolver) *Normalizer {
	return &Normalizer{config: config}
}

// Normalize returns the methods of decl in declaration order and its
// embedded bounds. The first unsupported element aborts normalization.
func (n *Normalizer) Normalize(decl *models.InterfaceDecl) ([]models.MethodDescriptor, []Bound, error) {
	if len(decl.TypeParams) > 0 {
		return nil, nil, errors.GenericsUnsupported(decl.Pos, decl.Name, "type parameters")
	}

	var (
		methods []models.MethodDescriptor
		bounds  []Bound
	)
	for _, item := range decl.Items {
		switch item.Kind {
		case models.ItemMethod:
			m, err := n.method(item)
			if err != nil {
				return nil, nil, err
			}
			methods = append(methods, m)
		case models.ItemEmbedded:
			bounds = append(bounds, Bound{Qualifier: item.Qualifier, Name: item.Name, Pos: item.Pos})
		case models.ItemCgo:
			return nil, nil, errors.MacroItemUnsupported(item.Pos, item.Text)
		case models.ItemTypeSet:
			return nil, nil, errors.UnsupportedItemKind(item.Pos, item.Text, "type set elements constrain types and have no dispatch slot")
		case models.ItemGenericEmbed:
			return nil, nil, errors.UnsupportedItemKind(item.Pos, item.Text, "embedded generic instantiations are not supported")
		default:
			return nil, nil, errors.UnsupportedItemKind(item.Pos, item.Text, "unrecognized interface element")
		}
	}
	return methods, bounds, nil
}

func (n *Normalizer) method(item models.RawItem) (models.MethodDescriptor, error) {
	m := models.MethodDescriptor{
		Name:     item.Name,
		Doc:      append([]string(nil), item.Doc...),
		Variadic: item.Variadic,
		Pos:      item.Pos,
	}
	if reservedMethods[item.Name] {
		return m, errors.UnsupportedItemKind(item.Pos, "method "+item.Name, "the name is taken by a member of the generated handle or table")
	}

	receiver := models.Param{Receiver: true, Kind: models.ReceiverRef}
	if item.Directive != "" {
		d, err := n.config.Method(item.Directive, item.DirectivePos)
		if err != nil {
			return m, err
		}
		for _, w := range d.Options {
			at := annotations.Location(item.DirectivePos, w.Pos)
			switch w.Name() {
			case "unsafe":
				m.Unsafe = true
			case "abi":
				m.ABI = w.Value().Text()
			case "receiver":
				kind, _ := models.ParseReceiverKind(w.Value().String())
				if kind == models.ReceiverValue || kind == models.ReceiverNone {
					return m, errors.MissingReceiver(at, item.Name, kind.String())
				}
				receiver.Kind = kind
			case "async":
				return m, errors.AsyncUnsupported(at, item.Name)
			case "lifetimes":
				for _, arg := range w.Args().Args {
					m.Lifetimes = append(m.Lifetimes, arg.Words()[0].Name())
				}
			case "where":
				return m, errors.GenericsUnsupported(at, item.Name, "where clauses")
			case "generic":
				return m, errors.GenericsUnsupported(at, item.Name, "type parameters")
			case "const":
				return m, errors.GenericsUnsupported(at, item.Name, "constant parameters")
			}
		}
	}

	m.Params = append([]models.Param{receiver}, renameParams(item.Params)...)
	m.Results = append([]models.Param(nil), item.Results...)
	return m, nil
}

// renameParams moves parameters off identifiers the generated code uses
func renameParams(params []models.Param) []models.Param {
	taken := make(map[string]bool, len(params))
	for _, p := range params {
		taken[p.Name] = true
	}
	out := make([]models.Param, len(params))
	for i, p := range params {
		out[i] = p
		if !reservedParams[p.Name] {
			continue
		}
		name := p.Name + "_"
		for k := 1; taken[name] || reservedParams[name]; k++ {
			name = p.Name + strconv.Itoa(k)
		}
		taken[name] = true
		out[i].Name = name
	}
	return out
}
