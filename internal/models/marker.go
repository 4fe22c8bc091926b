package models

import "strings"

// MarkerTrait is a capability the generated handle must advertise
type MarkerTrait struct {
	Path   string // as written, e.g. thin.Send or a fully qualified path
	Name   string // short name, e.g. Send
	Unsafe bool   // the implementer vouches for it
}

// MethodName is the marker method carried by implementations and handles
func (m MarkerTrait) MethodName() string {
	return "Mark" + m.Name
}

// NewMarkerTrait builds a marker from a path, deriving its short name
func NewMarkerTrait(path string, unsafe bool) MarkerTrait {
	name := path
	if i := strings.LastIndexAny(path, "./"); i >= 0 {
		name = path[i+1:]
	}
	return MarkerTrait{Path: path, Name: name, Unsafe: unsafe}
}
