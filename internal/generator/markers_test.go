package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/thinobj/internal/models"
)

func TestSplitBounds(t *testing.T) {
	file := &models.SourceFile{Imports: []models.Import{
		{Path: RuntimeImportPath},
		{Name: "rt", Path: RuntimeImportPath},
		{Path: "io"},
	}}

	tests := []struct {
		name      string
		bounds    []Bound
		pred      MarkerPredicate
		markers   []string
		lifetimes int
		dropped   []string
	}{
		{
			name:    "short and qualified names",
			bounds:  []Bound{{Name: "Send"}, {Qualifier: "thin", Name: "Sync"}, {Qualifier: "rt", Name: "Unpin"}},
			pred:    DefaultMarkerPredicate(file),
			markers: []string{"Send", "Sync", "Unpin"},
		},
		{
			name:    "foreign packages are not markers",
			bounds:  []Bound{{Qualifier: "io", Name: "Send"}, {Qualifier: "io", Name: "Reader"}},
			pred:    DefaultMarkerPredicate(file),
			dropped: []string{"io.Send", "io.Reader"},
		},
		{
			name:      "static is a lifetime",
			bounds:    []Bound{{Qualifier: "thin", Name: "Static"}, {Name: "Static"}},
			pred:      DefaultMarkerPredicate(file),
			lifetimes: 2,
		},
		{
			name:    "duplicates collapse",
			bounds:  []Bound{{Name: "Send"}, {Qualifier: "thin", Name: "Send"}},
			pred:    DefaultMarkerPredicate(file),
			markers: []string{"Send"},
		},
		{
			name:   "override by full path",
			bounds: []Bound{{Qualifier: "rt", Name: "Sync"}, {Name: "Send"}},
			pred: OverrideMarkerPredicate(file, []models.MarkerTrait{
				models.NewMarkerTrait(RuntimeImportPath+".Sync", true),
			}),
			markers: []string{"Sync"},
			dropped: []string{"Send"},
		},
		{
			name:    "empty override drops everything",
			bounds:  []Bound{{Name: "Send"}},
			pred:    OverrideMarkerPredicate(file, []models.MarkerTrait{}),
			dropped: []string{"Send"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markers, lifetimes, dropped := SplitBounds(file, tt.bounds, tt.pred)

			var names []string
			for _, m := range markers {
				names = append(names, m.Name)
			}
			var paths []string
			for _, d := range dropped {
				paths = append(paths, d.Path())
			}
			assert.Equal(t, tt.markers, names)
			assert.Len(t, lifetimes, tt.lifetimes)
			assert.Equal(t, tt.dropped, paths)
		})
	}
}

func TestDefaultMarkers(t *testing.T) {
	markers := DefaultMarkers()
	assert.Len(t, markers, 5)
	for _, m := range markers {
		assert.Equal(t, m.Name == "Send" || m.Name == "Sync", m.Unsafe, m.Name)
		assert.Equal(t, "thin."+m.Name, m.Path)
	}
}
