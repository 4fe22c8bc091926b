package thin

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SchemaNamespace seeds table fingerprints.
var SchemaNamespace = uuid.MustParse("6f1c2d0e-5b7a-4c8e-9a51-3e2b7d4f0c19")

// Fingerprint derives a deterministic name-based UUID from a table layout
// description. Two sides compiled separately agree on a table layout exactly
// when their fingerprints match.
func Fingerprint(table string, fields ...string) uuid.UUID {
	return uuid.NewSHA1(SchemaNamespace, []byte(table+"{"+strings.Join(fields, ";")+"}"))
}

// SchemaMismatchError reports a table fingerprint that differs from the
// expected one.
type SchemaMismatchError struct {
	Table string
	Want  string
	Got   string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("thin: %s layout mismatch: want schema %s, got %s", e.Table, e.Want, e.Got)
}

// CheckSchema compares a fingerprint received from a foreign component with
// the one compiled into this binary.
func CheckSchema(table, want, got string) error {
	w, err := uuid.Parse(want)
	if err != nil {
		return fmt.Errorf("thin: invalid schema id %q for %s: %w", want, table, err)
	}
	g, err := uuid.Parse(got)
	if err != nil {
		return fmt.Errorf("thin: invalid schema id %q for %s: %w", got, table, err)
	}
	if w != g {
		return &SchemaMismatchError{Table: table, Want: want, Got: got}
	}
	return nil
}
