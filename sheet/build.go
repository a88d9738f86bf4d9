package sheet

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jsphweid/tunesheet/grammar"
	"github.com/jsphweid/tunesheet/model"
)

// builder turns a parse tree into the node graph. The only state it carries
// is the declaration table; everything else is passed by return value.
type builder struct {
	decls *Declarations
	log   *slog.Logger
}

func (b *builder) document(doc *grammar.Document) (*model.Sequence, error) {
	if doc.Declare != nil {
		for _, d := range doc.Declare.Declarations {
			if err := b.declaration(d); err != nil {
				return nil, err
			}
		}
	}

	root := model.NewSequence()
	for _, e := range doc.Body.Entries {
		n, err := b.entry(e)
		if err != nil {
			return nil, err
		}
		root.Append(n)
	}
	root.Freeze()
	return root, nil
}

func (b *builder) declaration(d *grammar.Declaration) error {
	n, err := b.fragment(d.Fragment)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(d.Name)
	if b.decls.Declare(name, n) {
		b.log.Warn("tune declared twice, keeping the latest", "name", name, "pos", d.Pos.String())
	}
	b.log.Debug("declared tune", "name", name, "kind", n.Kind().String())
	return nil
}

func (b *builder) entry(e *grammar.Entry) (model.Node, error) {
	if e.Reference != nil {
		name := strings.TrimSpace(*e.Reference)
		n, ok := b.decls.Lookup(name)
		if !ok {
			return nil, &UnresolvedReferenceError{Pos: e.Pos, Name: name}
		}
		return n, nil
	}
	return b.fragment(e.Fragment)
}

func (b *builder) fragment(f *grammar.Fragment) (model.Node, error) {
	if f.Block != nil {
		return b.block(f.Block)
	}
	return sound(f.Sound)
}

func (b *builder) block(blk *grammar.Block) (*model.Sequence, error) {
	seq := model.NewSequence()
	for _, e := range blk.Entries {
		n, err := b.entry(e)
		if err != nil {
			return nil, err
		}
		seq.Append(n)
	}
	if blk.Repeater != nil {
		m, err := repeatMode(blk.Repeater)
		if err != nil {
			return nil, err
		}
		seq.SetRepeat(m)
	}
	seq.Freeze()
	return seq, nil
}

func repeatMode(r *grammar.Repeater) (model.RepeatMode, error) {
	var m model.RepeatMode
	if r.Fixed != nil {
		m = model.Fixed(int(*r.Fixed))
	} else {
		base := 1
		if r.Random.Base != nil {
			base = *r.Random.Base
		}
		m = model.Random(r.Random.Min, r.Random.Max, base)
	}
	if err := m.Validate(); err != nil {
		return model.NoRepeat, &RangeError{Pos: r.Pos, Msg: err.Error()}
	}
	return m, nil
}

func sound(s *grammar.Sound) (model.Node, error) {
	if s.Rest != nil {
		r, err := rest(s, s.Rest.Length)
		if err != nil {
			return nil, err
		}
		seq := model.NewSequence(r)
		seq.Freeze()
		return seq, nil
	}

	p, err := pitch(s, s.Note)
	if err != nil {
		return nil, err
	}
	if s.Note.Duration < 1 {
		return nil, &RangeError{Pos: s.Pos, Msg: fmt.Sprintf("note duration must be at least 1, got %d", s.Note.Duration)}
	}
	ev := model.NewEvent(p, s.Note.Duration)
	if s.Note.Rest == nil {
		return ev, nil
	}

	r, err := rest(s, *s.Note.Rest)
	if err != nil {
		return nil, err
	}
	seq := model.NewSequence(ev, r)
	seq.Freeze()
	return seq, nil
}

func pitch(s *grammar.Sound, n *grammar.Note) (model.Pitch, error) {
	label, ok := model.ParseLabel(n.Label)
	if !ok {
		return model.Pitch{}, &SyntaxError{Pos: s.Pos, Msg: fmt.Sprintf("unknown pitch label %q", n.Label)}
	}
	acc, ok := model.ParseAccidental(n.Accidental)
	if !ok {
		return model.Pitch{}, &SyntaxError{Pos: s.Pos, Msg: fmt.Sprintf("unknown accidental %q", n.Accidental)}
	}
	return model.NewPitch(label, n.Octave, acc), nil
}

func rest(s *grammar.Sound, length float64) (*model.Rest, error) {
	if length <= 0 {
		return nil, &RangeError{Pos: s.Pos, Msg: fmt.Sprintf("rest length must be positive, got %v", length)}
	}
	return model.NewRest(length), nil
}
