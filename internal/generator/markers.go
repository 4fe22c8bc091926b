package generator

import (
	"strings"

	"github.com/toyz/thinobj/internal/models"
)

// RuntimeImportPath is the package generated code depends on
const RuntimeImportPath = "github.com/toyz/thinobj/pkg/thin"

// runtimeName is the identifier generated code refers to the runtime by
const runtimeName = "thin"

// StaticBound is the runtime interface constraining handles to data that
// lives for the whole program
const StaticBound = "Static"

// defaultMarkers is the marker table used when an interface does not list
// its own. It is built once and only read afterwards.
var defaultMarkers = buildDefaultMarkers()

func buildDefaultMarkers() map[string]models.MarkerTrait {
	table := make(map[string]models.MarkerTrait)
	for _, m := range []struct {
		name   string
		unsafe bool
	}{
		{"Send", true},
		{"Sync", true},
		{"Unpin", false},
		{"UnwindSafe", false},
		{"RefUnwindSafe", false},
	} {
		table[m.name] = models.MarkerTrait{Path: runtimeName + "." + m.name, Name: m.name, Unsafe: m.unsafe}
	}
	return table
}

// DefaultMarkers returns the default marker table sorted by name
func DefaultMarkers() []models.MarkerTrait {
	out := make([]models.MarkerTrait, 0, len(defaultMarkers))
	for _, name := range []string{"RefUnwindSafe", "Send", "Sync", "Unpin", "UnwindSafe"} {
		out = append(out, defaultMarkers[name])
	}
	return out
}

// MarkerPredicate reports whether a bound is a marker and which one
type MarkerPredicate func(b Bound) (models.MarkerTrait, bool)

// DefaultMarkerPredicate recognizes the default table by short name, by the
// runtime selector of file, or by full import path
func DefaultMarkerPredicate(file *models.SourceFile) MarkerPredicate {
	return func(b Bound) (models.MarkerTrait, bool) {
		m, ok := defaultMarkers[b.Name]
		if !ok || !isRuntimeBound(file, b) {
			return models.MarkerTrait{}, false
		}
		m.Path = b.Path()
		return m, true
	}
}

// OverrideMarkerPredicate recognizes only the listed markers
func OverrideMarkerPredicate(file *models.SourceFile, markers []models.MarkerTrait) MarkerPredicate {
	return func(b Bound) (models.MarkerTrait, bool) {
		for _, m := range markers {
			if matchPath(file, b, m.Path) {
				return m, true
			}
		}
		return models.MarkerTrait{}, false
	}
}

// IsStaticBound reports whether b is the lifetime constraint
func IsStaticBound(file *models.SourceFile, b Bound) bool {
	return b.Name == StaticBound && isRuntimeBound(file, b)
}

// SplitBounds partitions bounds into markers, lifetime constraints and the
// ones it does not recognize. Markers are deduplicated by name.
func SplitBounds(file *models.SourceFile, bounds []Bound, pred MarkerPredicate) (markers []models.MarkerTrait, lifetimes []string, dropped []Bound) {
	seen := make(map[string]bool)
	for _, b := range bounds {
		if IsStaticBound(file, b) {
			lifetimes = append(lifetimes, "static")
			continue
		}
		if m, ok := pred(b); ok {
			if !seen[m.Name] {
				seen[m.Name] = true
				markers = append(markers, m)
			}
			continue
		}
		dropped = append(dropped, b)
	}
	return markers, lifetimes, dropped
}

// isRuntimeBound accepts unqualified bounds and bounds qualified by an
// import of the runtime package
func isRuntimeBound(file *models.SourceFile, b Bound) bool {
	return b.Qualifier == "" || resolvesTo(file, b.Qualifier, RuntimeImportPath)
}

// matchPath reports whether bound b refers to the marker written as path.
// path is a short name, a selector or a full import path followed by the name.
func matchPath(file *models.SourceFile, b Bound, path string) bool {
	i := strings.LastIndex(path, ".")
	if i < 0 {
		return b.Name == path && isRuntimeBound(file, b)
	}
	pkg, name := path[:i], path[i+1:]
	if b.Name != name || b.Qualifier == "" {
		return false
	}
	switch {
	case strings.Contains(pkg, "/"):
		return resolvesTo(file, b.Qualifier, pkg)
	case pkg == runtimeName:
		return b.Qualifier == pkg || resolvesTo(file, b.Qualifier, RuntimeImportPath)
	default:
		return b.Qualifier == pkg
	}
}

func resolvesTo(file *models.SourceFile, qualifier, importPath string) bool {
	if file == nil {
		return false
	}
	imp, ok := file.ResolveQualifier(qualifier)
	return ok && imp.Path == importPath
}
