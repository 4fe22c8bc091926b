package errors

import (
	stderrors "errors"
	"fmt"
)

// Constructors for the transformation failures. Each one aborts the
// interface it was raised for.

// UnsupportedItemKind reports an interface element that cannot become a
// dispatch slot.
func UnsupportedItemKind(loc SourceLocation, item, reason string) *BaseError {
	return Newf(UnsupportedItemKindCode, "%s cannot be part of a thin object interface: %s", item, reason).
		WithLocation(loc).
		WithContext("item", item).
		WithSuggestion("move the element to a separate interface that is not annotated with //thin::object")
}

// MacroItemUnsupported reports an element that needs preprocessing the
// generator does not perform.
func MacroItemUnsupported(loc SourceLocation, item string) *BaseError {
	return Newf(MacroItemUnsupportedCode, "cannot expand %s: elements produced by cgo are not supported", item).
		WithLocation(loc).
		WithContext("item", item).
		WithSuggestion("declare the methods explicitly instead of embedding a cgo type")
}

// MissingReceiver reports a method that does not take its receiver by reference.
func MissingReceiver(loc SourceLocation, method, receiver string) *BaseError {
	var err *BaseError
	if receiver == "none" {
		err = Newf(MissingReceiverCode, "method %s has no receiver: interfaces with receiver-less functions cannot be made into thin objects", method)
	} else {
		err = Newf(MissingReceiverCode, "method %s takes its receiver by value: thin objects do not support pass-by-value", method)
	}
	return err.
		WithLocation(loc).
		WithContext("method", method).
		WithContext("receiver", receiver).
		WithSuggestion("use receiver = ref or receiver = mut, or drop the receiver option")
}

// AsyncUnsupported reports an asynchronous method.
func AsyncUnsupported(loc SourceLocation, method string) *BaseError {
	return Newf(AsyncUnsupportedCode, "method %s is async: async methods are not supported", method).
		WithLocation(loc).
		WithContext("method", method).
		WithSuggestion("return a channel or accept a callback instead")
}

// GenericsUnsupported reports type parameters or constraints on an
// interface or method.
func GenericsUnsupported(loc SourceLocation, owner, what string) *BaseError {
	return Newf(GenericsUnsupportedCode, "%s: %s are not object-safe", owner, what).
		WithLocation(loc).
		WithContext("owner", owner)
}

// Syntax reports a directive that does not match the grammar.
func Syntax(loc SourceLocation, directive string, cause error) *BaseError {
	return Wrapf(SyntaxErrorCode, cause, "malformed directive %q: %v", directive, cause).
		WithLocation(loc).
		WithContext("directive", directive).
		WithSuggestion("options are comma separated, e.g. //thin::object(inline_vtable = true, store_layout = true)")
}

// UnknownOption reports an unrecognized configuration key.
func UnknownOption(loc SourceLocation, option string, known []string) *BaseError {
	return Newf(UnknownOptionCode, "unknown option %q", option).
		WithLocation(loc).
		WithContext("option", option).
		WithContext("known_options", known).
		WithSuggestion(fmt.Sprintf("valid options are: %v", known))
}

// MalformedValue reports an option whose value has the wrong form.
func MalformedValue(loc SourceLocation, option, expected, actual string) *BaseError {
	return Newf(MalformedValueCode, "invalid value for %s: expected %s, got %s", option, expected, actual).
		WithLocation(loc).
		WithContext("option", option).
		WithContext("expected", expected).
		WithContext("actual", actual)
}

// DuplicateOption reports an option given twice.
func DuplicateOption(loc SourceLocation, option string) *BaseError {
	return Newf(DuplicateOptionCode, "option %q given more than once", option).
		WithLocation(loc).
		WithContext("option", option)
}

// CustomVtableNameUnsupported reports a renamed table on an extensible interface.
func CustomVtableNameUnsupported(loc SourceLocation, iface, name string) *BaseError {
	return Newf(CustomVtableNameUnsupportedCode,
		"when %s is a possible super interface its table cannot be renamed (got %s)", iface, name).
		WithLocation(loc).
		WithContext("interface", iface).
		WithContext("vtable_name", name).
		WithSuggestion(fmt.Sprintf("remove the name from vtable(...) so the table is called %sVtable", iface))
}

// IncompatibleSuperLayout reports an extension whose table placement differs
// from the interface it extends.
func IncompatibleSuperLayout(loc SourceLocation, iface, super string) *BaseError {
	return Newf(IncompatibleSuperLayoutCode,
		"%s extends %s but uses a different inline_vtable setting", iface, super).
		WithLocation(loc).
		WithContext("interface", iface).
		WithContext("super", super).
		WithSuggestion("give both interfaces the same inline_vtable value")
}

// InheritanceNotEnabled reports inheritance options used without the
// experimental capability.
func InheritanceNotEnabled(loc SourceLocation, iface string) *BaseError {
	return Newf(InheritanceNotEnabledCode, "%s uses inheritance(...), which is experimental and disabled", iface).
		WithLocation(loc).
		WithContext("interface", iface).
		WithSuggestion("pass --experimental-inheritance, set experimental.inheritance: true in .thinobj.yaml or THINOBJ_EXPERIMENTAL_INHERITANCE=1")
}

// DecorationRejected reports an attribute the handle generator owns.
func DecorationRejected(loc SourceLocation, attr, reason string) *BaseError {
	return Newf(DecorationRejectedCode, "@%s is not allowed on trait_object(...): %s", attr, reason).
		WithLocation(loc).
		WithContext("attribute", attr)
}

// CodeOf extracts the code of the first ThinError in err's chain.
func CodeOf(err error) ErrorCode {
	var te ThinError
	if stderrors.As(err, &te) {
		return te.ErrorCode()
	}
	return UnknownErrorCode
}

// LocationOf extracts the location of the first ThinError in err's chain.
func LocationOf(err error) SourceLocation {
	var te ThinError
	if stderrors.As(err, &te) {
		return te.Location()
	}
	return SourceLocation{}
}
