package annotations

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Directive is the root of a parsed //thin:: comment
//
//	Directive := "thin" "::" Kind ( "(" Options? ")" | Options )?
type Directive struct {
	Pos     lexer.Position
	Kind    string  `parser:"'thin' Sep @Ident"`
	Options []*Word `parser:"( '(' ( @@ ( ',' @@ )* ','? )? ')' | @@ ( ',' @@ )* ','? )?"`
}

// Word is a single option or argument term
type Word struct {
	Pos  lexer.Position
	Call *Call   `parser:"  @@"`
	Str  *string `parser:"| @String"`
	Num  *string `parser:"| @Number"`
	Sym  *string `parser:"| @Sym"`
}

// Call is a path optionally followed by a value or an argument list
type Call struct {
	Pos    lexer.Position
	Path   *Path   `parser:"@@"`
	Suffix *Suffix `parser:"@@?"`
}

// Suffix is either "= value" or "(args)"
type Suffix struct {
	Value *Value   `parser:"  '=' @@"`
	Args  *ArgList `parser:"| @@"`
}

// ArgList is a parenthesized, comma separated argument list
type ArgList struct {
	Args []*Arg `parser:"'(' ( @@ ( ',' @@ )* ','? )? ')'"`
}

// Arg is one comma separated argument made of space separated items
type Arg struct {
	Pos   lexer.Position
	Items []*Item `parser:"@@+"`
}

// Item is an attribute or a word
type Item struct {
	Attr *Attr `parser:"  @@"`
	Word *Word `parser:"| @@"`
}

// Attr is a decoration, written @name or @name(args)
type Attr struct {
	Pos  lexer.Position
	Name string   `parser:"'@' @Ident"`
	Args *ArgList `parser:"@@?"`
}

// Path is an identifier or a selector path such as pkg.Name or a full
// import path followed by .Name
type Path struct {
	Pos   lexer.Position
	Parts []string `parser:"@Ident ( @( '.' | '/' | '-' ) @Ident )*"`
}

// Value is the right-hand side of name = value
type Value struct {
	Pos  lexer.Position
	Str  *string `parser:"  @String"`
	Num  *string `parser:"| @Number"`
	Path *Path   `parser:"| @@"`
}

// String joins the path back together
func (p *Path) String() string {
	if p == nil {
		return ""
	}
	return strings.Join(p.Parts, "")
}

// Name returns the option or path name of a call word, or "" otherwise
func (w *Word) Name() string {
	if w == nil || w.Call == nil {
		return ""
	}
	return w.Call.Path.String()
}

// IsBare reports whether the word is a path with no value or arguments
func (w *Word) IsBare() bool {
	return w.Call != nil && w.Call.Suffix == nil
}

// Value returns the assigned value, if any
func (w *Word) Value() *Value {
	if w.Call == nil || w.Call.Suffix == nil {
		return nil
	}
	return w.Call.Suffix.Value
}

// Args returns the argument list, if any
func (w *Word) Args() *ArgList {
	if w.Call == nil || w.Call.Suffix == nil {
		return nil
	}
	return w.Call.Suffix.Args
}

// String renders the word roughly as written
func (w *Word) String() string {
	switch {
	case w == nil:
		return ""
	case w.Str != nil:
		return *w.Str
	case w.Num != nil:
		return *w.Num
	case w.Sym != nil:
		return *w.Sym
	}
	out := w.Call.Path.String()
	if v := w.Value(); v != nil {
		out += " = " + v.String()
	}
	if a := w.Args(); a != nil {
		out += a.String()
	}
	return out
}

// String renders the argument list roughly as written
func (l *ArgList) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, len(l.Args))
	for i, a := range l.Args {
		parts[i] = a.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// String renders the argument roughly as written
func (a *Arg) String() string {
	parts := make([]string, len(a.Items))
	for i, it := range a.Items {
		if it.Attr != nil {
			parts[i] = it.Attr.String()
		} else {
			parts[i] = it.Word.String()
		}
	}
	return strings.Join(parts, " ")
}

// Attrs returns the leading attributes of the argument
func (a *Arg) Attrs() []*Attr {
	var out []*Attr
	for _, it := range a.Items {
		if it.Attr != nil {
			out = append(out, it.Attr)
		}
	}
	return out
}

// Words returns the words of the argument
func (a *Arg) Words() []*Word {
	var out []*Word
	for _, it := range a.Items {
		if it.Word != nil {
			out = append(out, it.Word)
		}
	}
	return out
}

// String renders the attribute as written
func (a *Attr) String() string {
	return "@" + a.Name + a.Args.String()
}

// ArgStrings renders each attribute argument
func (a *Attr) ArgStrings() []string {
	if a.Args == nil {
		return nil
	}
	out := make([]string, len(a.Args.Args))
	for i, arg := range a.Args.Args {
		out[i] = arg.String()
	}
	return out
}

// String renders the value as written
func (v *Value) String() string {
	switch {
	case v == nil:
		return ""
	case v.Str != nil:
		return *v.Str
	case v.Num != nil:
		return *v.Num
	default:
		return v.Path.String()
	}
}

// Text returns the unquoted string value, or the raw text for other values
func (v *Value) Text() string {
	if v.Str != nil {
		if s, err := strconv.Unquote(*v.Str); err == nil {
			return s
		}
		return strings.Trim(*v.Str, `"`)
	}
	return v.String()
}

// Bool interprets the value as a boolean literal
func (v *Value) Bool() (bool, bool) {
	if v == nil || v.Path == nil {
		return false, false
	}
	switch v.Path.String() {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}
