package annotations

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/thinobj/internal/errors"
)

var directiveLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Sep", Pattern: `::`},
	{Name: "Punct", Pattern: `[(),=@./\-]`},
	{Name: "Sym", Pattern: `[:+*&\[\]<>~|!]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Parser parses directive comments into a syntax tree
type Parser struct {
	parser *participle.Parser[Directive]
}

var (
	defaultParser     *Parser
	defaultParserOnce sync.Once
)

// NewParser builds a directive parser
func NewParser() *Parser {
	return &Parser{
		parser: participle.MustBuild[Directive](
			participle.Lexer(directiveLexer),
			participle.Elide("Whitespace"),
			participle.UseLookahead(2),
		),
	}
}

// DefaultParser returns the shared directive parser. The participle parser
// is immutable after construction and safe for concurrent use.
func DefaultParser() *Parser {
	defaultParserOnce.Do(func() {
		defaultParser = NewParser()
	})
	return defaultParser
}

// Parse parses a directive comment. loc is the position of the comment's
// leading slashes; error locations are reported relative to it.
func (p *Parser) Parse(comment string, loc errors.SourceLocation) (*Directive, error) {
	trimmed := strings.TrimLeft(comment, " \t")
	loc.Column += len(comment) - len(trimmed)

	body, ok := strings.CutPrefix(trimmed, "//")
	if !ok {
		return nil, errors.Syntax(loc, comment, fmt.Errorf("directive must start with //"))
	}

	d, err := p.parser.ParseString(loc.File, body)
	if err != nil {
		errLoc := loc
		if perr, ok := err.(participle.Error); ok {
			errLoc = offset(loc, perr.Position())
		}
		return nil, errors.Syntax(errLoc, strings.TrimSpace(comment), err)
	}

	if _, err := ParseDirectiveKind(d.Kind); err != nil {
		return nil, errors.Syntax(offset(loc, d.Pos), strings.TrimSpace(comment), err)
	}
	return d, nil
}

// Location converts a position inside a parsed directive back to a source
// location. loc is the location the directive was parsed with.
func Location(loc errors.SourceLocation, pos lexer.Position) errors.SourceLocation {
	return offset(loc, pos)
}

// offset maps a lexer position inside the body (after the leading //) to
// the source location of the comment.
func offset(loc errors.SourceLocation, pos lexer.Position) errors.SourceLocation {
	if pos.Column == 0 {
		return loc
	}
	out := loc
	out.Column = loc.Column + 2 + pos.Column - 1
	return out
}

// ParseDirective parses a directive with the default parser
func ParseDirective(comment string, loc errors.SourceLocation) (*Directive, error) {
	return DefaultParser().Parse(comment, loc)
}

// DirectiveKind returns the kind of a parsed directive
func (d *Directive) DirectiveKind() DirectiveKind {
	k, _ := ParseDirectiveKind(d.Kind)
	return k
}
