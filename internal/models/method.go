package models

import (
	"fmt"
	"strings"

	"github.com/toyz/thinobj/internal/errors"
)

// ReceiverKind describes how a method takes its receiver
type ReceiverKind int

const (
	ReceiverRef   ReceiverKind = iota // shared reference, the default
	ReceiverMut                       // exclusive reference
	ReceiverValue                     // by value, rejected
	ReceiverNone                      // no receiver at all, rejected
)

// String returns the directive spelling of the receiver kind
func (r ReceiverKind) String() string {
	switch r {
	case ReceiverRef:
		return "ref"
	case ReceiverMut:
		return "mut"
	case ReceiverValue:
		return "value"
	case ReceiverNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseReceiverKind converts a directive value to a ReceiverKind
func ParseReceiverKind(s string) (ReceiverKind, bool) {
	switch s {
	case "ref":
		return ReceiverRef, true
	case "mut":
		return ReceiverMut, true
	case "value":
		return ReceiverValue, true
	case "none":
		return ReceiverNone, true
	}
	return 0, false
}

// ErasedSelfType is the type of the receiver slot once erased
const ErasedSelfType = "unsafe.Pointer"

// Param is one parameter or result of a method
type Param struct {
	Name     string       // empty for unnamed results
	Type     string       // type expression as written in the package
	Receiver bool         // true only for the leading receiver parameter
	Kind     ReceiverKind // meaningful when Receiver is set
}

// MethodDescriptor is the normalized form of one interface method.
// Params always starts with the receiver.
type MethodDescriptor struct {
	Name      string
	Doc       []string
	Lifetimes []string
	Unsafe    bool
	ABI       string
	Params    []Param
	Variadic  bool
	Results   []Param
	Pos       errors.SourceLocation
}

// Receiver returns the receiver parameter
func (m MethodDescriptor) Receiver() Param {
	if len(m.Params) == 0 {
		return Param{}
	}
	return m.Params[0]
}

// Args returns the parameters that follow the receiver
func (m MethodDescriptor) Args() []Param {
	if len(m.Params) <= 1 {
		return nil
	}
	return m.Params[1:]
}

// PromoteUnsafe returns a copy of the method that is marked unsafe
func (m MethodDescriptor) PromoteUnsafe() MethodDescriptor {
	out := m.clone()
	out.Unsafe = true
	return out
}

// EraseReceiver returns a copy of the method whose receiver is an untyped
// pointer named self
func (m MethodDescriptor) EraseReceiver() MethodDescriptor {
	out := m.clone()
	if len(out.Params) > 0 {
		out.Params[0] = Param{Name: "self", Type: ErasedSelfType}
	}
	return out
}

// IsErased reports whether the receiver has been erased
func (m MethodDescriptor) IsErased() bool {
	return len(m.Params) > 0 && !m.Params[0].Receiver && m.Params[0].Type == ErasedSelfType
}

func (m MethodDescriptor) clone() MethodDescriptor {
	out := m
	out.Doc = append([]string(nil), m.Doc...)
	out.Lifetimes = append([]string(nil), m.Lifetimes...)
	out.Params = append([]Param(nil), m.Params...)
	out.Results = append([]Param(nil), m.Results...)
	return out
}

// ParamList renders the arguments after the receiver as a declaration list
func (m MethodDescriptor) ParamList() string {
	args := m.Args()
	parts := make([]string, len(args))
	for i, p := range args {
		typ := p.Type
		if m.Variadic && i == len(args)-1 {
			typ = "..." + strings.TrimPrefix(typ, "[]")
		}
		parts[i] = p.Name + " " + typ
	}
	return strings.Join(parts, ", ")
}

// CallArgs renders the arguments after the receiver as a call list
func (m MethodDescriptor) CallArgs() string {
	args := m.Args()
	parts := make([]string, len(args))
	for i, p := range args {
		parts[i] = p.Name
		if m.Variadic && i == len(args)-1 {
			parts[i] += "..."
		}
	}
	return strings.Join(parts, ", ")
}

// ResultList renders the result types, parenthesized when needed
func (m MethodDescriptor) ResultList() string {
	switch len(m.Results) {
	case 0:
		return ""
	case 1:
		return m.Results[0].Type
	}
	types := make([]string, len(m.Results))
	for i, r := range m.Results {
		types[i] = r.Type
	}
	return "(" + strings.Join(types, ", ") + ")"
}

// HasResults reports whether the method returns anything
func (m MethodDescriptor) HasResults() bool {
	return len(m.Results) > 0
}

// SlotType renders the function type stored in a dispatch table
func (m MethodDescriptor) SlotType() string {
	params := "self " + ErasedSelfType
	if list := m.ParamList(); list != "" {
		params += ", " + list
	}
	sig := fmt.Sprintf("func(%s)", params)
	if res := m.ResultList(); res != "" {
		sig += " " + res
	}
	return sig
}

// SlotCallArgs renders the call list of a slot invocation with the given self
func (m MethodDescriptor) SlotCallArgs(self string) string {
	if args := m.CallArgs(); args != "" {
		return self + ", " + args
	}
	return self
}

// Signature renders the method without parameter names, used for fingerprints
func (m MethodDescriptor) Signature() string {
	types := []string{ErasedSelfType}
	for i, p := range m.Args() {
		typ := p.Type
		if m.Variadic && i == len(m.Args())-1 {
			typ = "..." + strings.TrimPrefix(typ, "[]")
		}
		types = append(types, typ)
	}
	sig := fmt.Sprintf("%s func(%s)", m.Name, strings.Join(types, ", "))
	if res := m.ResultList(); res != "" {
		sig += " " + res
	}
	if m.Unsafe {
		sig += " unsafe"
	}
	if m.ABI != "" {
		sig += " abi=" + m.ABI
	}
	return sig
}

// Tag renders the struct tag carried by the method's table slot
func (m MethodDescriptor) Tag() string {
	var opts []string
	if m.ABI != "" {
		opts = append(opts, "abi="+m.ABI)
	}
	if m.Unsafe {
		opts = append(opts, "unsafe")
	}
	if len(opts) == 0 {
		return ""
	}
	return fmt.Sprintf("`thin:\"%s\"`", strings.Join(opts, ","))
}
