// Package sheet compiles sheet text into a tune: a root sequence of events,
// rests and nested sequences. Named fragments from the DECLARE: section are
// shared by pointer wherever the BEGIN: section references them.
package sheet

import (
	"errors"
	"io"
	"log/slog"

	"github.com/alecthomas/participle/v2"
	"github.com/jsphweid/tunesheet/grammar"
	"github.com/jsphweid/tunesheet/model"
)

// Sheet is a compiled document together with the declarations it was built
// from.
type Sheet struct {
	Root         *model.Sequence
	Declarations *Declarations
}

// Parser compiles sheets. It holds no per-document state and may be used from
// several goroutines.
type Parser struct {
	log *slog.Logger
}

// NewParser returns a Parser logging to logger, or nowhere if logger is nil.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Parser{log: logger.With(slog.String("component", "sheet"))}
}

var defaultParser = NewParser(nil)

// Parse compiles text and returns the root sequence.
func Parse(text string) (*model.Sequence, error) {
	s, err := defaultParser.Compile("", text)
	if err != nil {
		return nil, err
	}
	return s.Root, nil
}

// Compile parses text, named filename in error positions, and builds the tune.
// It fails with *SyntaxError, *UnresolvedReferenceError or *RangeError and
// never returns a partial result.
func (p *Parser) Compile(filename, text string) (*Sheet, error) {
	doc, err := grammar.Parse(filename, text)
	if err != nil {
		return nil, syntaxError(err)
	}

	b := &builder{decls: NewDeclarations(), log: p.log}
	root, err := b.document(doc)
	if err != nil {
		p.log.Debug("build failed", "file", filename, "err", err)
		return nil, err
	}
	p.log.Debug("compiled sheet", "file", filename, "entries", root.Len(), "declarations", b.decls.Len())
	return &Sheet{Root: root, Declarations: b.decls}, nil
}

func syntaxError(err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		return &SyntaxError{Pos: perr.Position(), Msg: perr.Message(), Err: err}
	}
	return &SyntaxError{Msg: err.Error(), Err: err}
}
