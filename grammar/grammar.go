// Package grammar describes the sheet language and parses it into a typed
// parse tree. The tree mirrors the productions one to one:
//
//	Document    = [Declare] Body
//	Declare     = "DECLARE:" Declaration+
//	Declaration = Name ":=" Fragment
//	Body        = "BEGIN:" Entry+
//	Entry       = Fragment | Name
//	Fragment    = Block | Sound
//	Block       = "{" Entry* "}" [Repeater]
//	Repeater    = "*" Int | "*" "(" Int "-" Int ["base" Int] ")"
//	Sound       = Note | Rest
//	Note        = Label ["#" | "b"] Octave Duration [Decimal]   (one line)
//	Rest        = ["s"] Decimal
//
// Whitespace, blank lines and comments (from "//" or U+1D160 to the end of the
// line) may appear between any two tokens.
package grammar

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `(?://|\x{1D160})[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Header", Pattern: `(?:DECLARE|BEGIN):`},
		{Name: "Note", Pattern: notePattern},
		{Name: "Rest", Pattern: restPattern},
		{Name: "Assign", Pattern: `:=`},
		{Name: "RangeOpen", Pattern: `\*\s*\(`, Action: lexer.Push("Range")},
		{Name: "FixedRepeat", Pattern: `\*\s*\d+`},
		{Name: "Brace", Pattern: `[{}]`},
		{Name: "Name", Pattern: `[A-Za-z0-9_-][A-Za-z0-9 \t_-]*`},
	},
	"Range": {
		{Name: "Comment", Pattern: `(?://|\x{1D160})[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Base", Pattern: `base`},
		{Name: "Int", Pattern: `\d+`},
		{Name: "Dash", Pattern: `-`},
		{Name: "RangeClose", Pattern: `\)`, Action: lexer.Pop()},
	},
})

type Document struct {
	Pos lexer.Position

	Declare *Declare `@@?`
	Body    *Body    `@@`
}

type Declare struct {
	Pos lexer.Position

	Declarations []*Declaration `"DECLARE:" @@+`
}

type Declaration struct {
	Pos lexer.Position

	Name     string    `@Name ":="`
	Fragment *Fragment `@@`
}

type Body struct {
	Pos lexer.Position

	Entries []*Entry `"BEGIN:" @@+`
}

// Entry is a top-level or block-level item: an anonymous fragment or a bare
// reference to a declared name.
type Entry struct {
	Pos lexer.Position

	Fragment  *Fragment `  @@`
	Reference *string   `| @Name`
}

type Fragment struct {
	Pos lexer.Position

	Block *Block `  @@`
	Sound *Sound `| @@`
}

type Block struct {
	Pos lexer.Position

	Entries  []*Entry  `"{" @@* "}"`
	Repeater *Repeater `@@?`
}

type Repeater struct {
	Pos lexer.Position

	Fixed  *Count  `  @FixedRepeat`
	Random *Random `| @@`
}

type Random struct {
	Pos lexer.Position

	Min  int  `RangeOpen @Int "-"`
	Max  int  `@Int`
	Base *int `( "base" @Int )? ")"`
}

type Sound struct {
	Pos lexer.Position

	Note *Note `  @Note`
	Rest *Rest `| @Rest`
}

var parser = participle.MustBuild[Document](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace", "Comment"),
)

// Parse matches text against the grammar. Errors implement participle.Error
// and carry the position of the offending token.
func Parse(filename, text string) (*Document, error) {
	return parser.ParseString(filename, text)
}

// EBNF returns the grammar as derived from the parse tree types.
func EBNF() string {
	return parser.String()
}
