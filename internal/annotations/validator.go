package annotations

import (
	"slices"

	"github.com/toyz/thinobj/internal/errors"
)

// Validator checks parsed directives against their schemas
type Validator struct {
	registry SchemaRegistry
}

// NewValidator creates a validator backed by registry
func NewValidator(registry SchemaRegistry) *Validator {
	return &Validator{registry: registry}
}

// Validate checks every option of d. loc must be the location d was parsed
// with. The first problem found is returned.
func (v *Validator) Validate(d *Directive, loc errors.SourceLocation) error {
	schema, err := v.registry.GetSchema(d.DirectiveKind())
	if err != nil {
		return errors.Syntax(loc, d.Kind, err)
	}
	return v.validateWords(d.Options, schema.Options, loc)
}

func (v *Validator) validateWords(words []*Word, schemas map[string]OptionSchema, loc errors.SourceLocation) error {
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		at := Location(loc, w.Pos)
		if w.Call == nil {
			return errors.MalformedValue(at, "option", "an option name", w.String())
		}
		name := w.Name()
		spec, ok := schemas[name]
		if !ok {
			return errors.UnknownOption(at, name, sortedKeys(schemas))
		}
		if seen[name] {
			return errors.DuplicateOption(at, name)
		}
		seen[name] = true

		if err := v.validateWord(w, name, spec, loc); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateWord(w *Word, name string, spec OptionSchema, loc errors.SourceLocation) error {
	at := Location(loc, w.Pos)
	malformed := func() error {
		return errors.MalformedValue(at, name, spec.Type.String(), w.String())
	}

	switch spec.Type {
	case FlagOption:
		if !w.IsBare() {
			return errors.MalformedValue(at, name, "a bare flag", w.String())
		}

	case BoolOption:
		if w.IsBare() {
			return nil
		}
		val := w.Value()
		if val == nil {
			return malformed()
		}
		if _, ok := val.Bool(); !ok {
			return errors.MalformedValue(Location(loc, val.Pos), name, spec.Type.String(), val.String())
		}

	case StringOption:
		val := w.Value()
		if val == nil || val.Str == nil {
			return malformed()
		}

	case IdentOption:
		val := w.Value()
		if val == nil || val.Path == nil || !slices.Contains(spec.Allowed, val.Path.String()) {
			return errors.MalformedValue(at, name, "one of "+joinOr(spec.Allowed), w.String())
		}

	case NameSpecOption:
		args := w.Args()
		if args == nil || len(args.Args) > 1 {
			return malformed()
		}
		if len(args.Args) == 1 {
			if err := validateNameSpec(args.Args[0], name, loc); err != nil {
				return err
			}
		}

	case MarkerListOption:
		args := w.Args()
		if args == nil {
			return malformed()
		}
		for _, arg := range args.Args {
			if err := validateMarker(arg, name, loc); err != nil {
				return err
			}
		}

	case IdentListOption:
		args := w.Args()
		if args == nil {
			return malformed()
		}
		if len(args.Args) < spec.MinArgs {
			return errors.MalformedValue(at, name, "at least one path", w.String())
		}
		if spec.MaxArgs > 0 && len(args.Args) > spec.MaxArgs {
			return errors.MalformedValue(at, name, "at most one path", args.String())
		}
		for _, arg := range args.Args {
			words := arg.Words()
			if len(arg.Attrs()) > 0 || len(words) != 1 || !words[0].IsBare() {
				return errors.MalformedValue(Location(loc, arg.Pos), name, spec.Type.String(), arg.String())
			}
		}

	case NestedOption:
		args := w.Args()
		if args == nil {
			return malformed()
		}
		nested := make([]*Word, 0, len(args.Args))
		for _, arg := range args.Args {
			words := arg.Words()
			if len(arg.Attrs()) > 0 || len(words) != 1 {
				return errors.MalformedValue(Location(loc, arg.Pos), name, spec.Type.String(), arg.String())
			}
			nested = append(nested, words[0])
		}
		return v.validateWords(nested, spec.Nested, loc)

	case RejectedOption:
		// shape is irrelevant, the generator refuses it
	}
	return nil
}

// validateNameSpec accepts @attrs followed by an optional visibility and an
// optional name
func validateNameSpec(arg *Arg, option string, loc errors.SourceLocation) error {
	at := Location(loc, arg.Pos)
	words := arg.Words()
	for i, it := range arg.Items {
		if it.Attr != nil && i >= len(arg.Attrs()) {
			return errors.MalformedValue(at, option, "attributes before the visibility and name", arg.String())
		}
	}
	for _, w := range words {
		if !w.IsBare() || len(w.Call.Path.Parts) != 1 {
			return errors.MalformedValue(at, option, "a visibility and a plain identifier", arg.String())
		}
	}
	switch len(words) {
	case 0, 1:
		return nil
	case 2:
		if !IsVisibility(words[0].Name()) {
			return errors.MalformedValue(at, option, "pub or priv before the name", words[0].Name())
		}
		return nil
	default:
		return errors.MalformedValue(at, option, "a visibility and a plain identifier", arg.String())
	}
}

// validateMarker accepts an optional unsafe followed by a path
func validateMarker(arg *Arg, option string, loc errors.SourceLocation) error {
	at := Location(loc, arg.Pos)
	words := arg.Words()
	if len(arg.Attrs()) > 0 {
		return errors.MalformedValue(at, option, "a marker path", arg.String())
	}
	for _, w := range words {
		if !w.IsBare() {
			return errors.MalformedValue(at, option, "a marker path", arg.String())
		}
	}
	switch {
	case len(words) == 1 && words[0].Name() != "unsafe":
		return nil
	case len(words) == 2 && words[0].Name() == "unsafe":
		return nil
	default:
		return errors.MalformedValue(at, option, "[unsafe] Path", arg.String())
	}
}

// IsVisibility reports whether s is a visibility keyword
func IsVisibility(s string) bool {
	return s == "pub" || s == "priv"
}

func joinOr(values []string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	}
	out := ""
	for i, v := range values {
		switch {
		case i == 0:
			out = v
		case i == len(values)-1:
			out += " or " + v
		default:
			out += ", " + v
		}
	}
	return out
}
