package annotations

import (
	"fmt"
	"strings"
)

// DirectivePrefix starts every directive comment
const DirectivePrefix = "//thin::"

// DirectiveKind represents the kind of directive
type DirectiveKind int

const (
	ObjectDirective DirectiveKind = iota // on an interface type
	MethodDirective                      // on an interface method
)

// String returns the string representation of the directive kind
func (k DirectiveKind) String() string {
	switch k {
	case ObjectDirective:
		return "object"
	case MethodDirective:
		return "method"
	default:
		return "unknown"
	}
}

// ParseDirectiveKind converts string to DirectiveKind
func ParseDirectiveKind(s string) (DirectiveKind, error) {
	switch s {
	case "object":
		return ObjectDirective, nil
	case "method":
		return MethodDirective, nil
	default:
		return 0, fmt.Errorf("unknown directive kind: %s", s)
	}
}

// IsDirective reports whether a comment line is a thinobj directive
func IsDirective(comment string) bool {
	return strings.HasPrefix(strings.TrimSpace(comment), DirectivePrefix)
}

// HasKind reports whether a comment line is a directive of the given kind
func HasKind(comment string, kind DirectiveKind) bool {
	rest, ok := strings.CutPrefix(strings.TrimSpace(comment), DirectivePrefix)
	if !ok {
		return false
	}
	name := kind.String()
	if !strings.HasPrefix(rest, name) {
		return false
	}
	rest = rest[len(name):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '('
}

// OptionType describes the shape an option's value must have
type OptionType int

const (
	FlagOption     OptionType = iota // bare name, e.g. unsafe
	BoolOption                       // name = true|false
	StringOption                     // name = "text"
	IdentOption                      // name = word, from an allowed set
	NameSpecOption                   // name(@attr.. vis Name)
	MarkerListOption                 // name(unsafe A, B)
	IdentListOption                  // name(a, b)
	NestedOption                     // name(option, option = value)
	RejectedOption                   // accepted by the grammar, always refused downstream
)

func (t OptionType) String() string {
	switch t {
	case FlagOption:
		return "flag"
	case BoolOption:
		return "`true` or `false`"
	case StringOption:
		return "a string literal"
	case IdentOption:
		return "an identifier"
	case NameSpecOption:
		return "(attributes, visibility and name)"
	case MarkerListOption:
		return "a list of marker paths"
	case IdentListOption:
		return "a list of identifiers"
	case NestedOption:
		return "a list of nested options"
	case RejectedOption:
		return "nothing"
	default:
		return "unknown"
	}
}
