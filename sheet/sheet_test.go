package sheet

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/jsphweid/tunesheet/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do4(duration int) *model.Event {
	return model.NewEvent(model.NewPitch(model.Do, 4, model.Natural), duration)
}

func TestSingleNote(t *testing.T) {
	root, err := Parse("BEGIN:\nDO4 4\n")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(1, root.Len())
	assert.True(root.Repeat().IsZero())
	assert.Equal(do4(4), root.At(0))
}

func TestNoteWithTrailingRestIsPaired(t *testing.T) {
	root, err := Parse("BEGIN:\nDO4 4 0.5\n")
	require.NoError(t, err)

	assert := assert.New(t)
	require.Equal(t, 1, root.Len())
	pair, ok := root.At(0).(*model.Sequence)
	require.True(t, ok)
	assert.Equal(2, pair.Len())
	assert.Equal(do4(4), pair.At(0))
	assert.Equal(model.NewRest(0.5), pair.At(1))
	assert.True(pair.Repeat().IsZero())
}

func TestStandaloneRestIsWrapped(t *testing.T) {
	root, err := Parse("BEGIN:\ns 0.75\n")
	require.NoError(t, err)

	seq, ok := root.At(0).(*model.Sequence)
	require.True(t, ok)
	assert.Equal(t, []model.Node{model.NewRest(0.75)}, seq.Children())
}

func TestFixedRepeatBlock(t *testing.T) {
	root, err := Parse("BEGIN:\n{ DO4 4\nRE4 4\n} * 3\n")
	require.NoError(t, err)

	assert := assert.New(t)
	require.Equal(t, 1, root.Len())
	block := root.At(0).(*model.Sequence)
	assert.Equal(model.Fixed(3), block.Repeat())
	assert.Equal(2, block.Len())
	assert.Equal(model.KindEvent, block.At(0).Kind())
	assert.Equal(model.NewPitch(model.Re, 4, model.Natural), block.At(1).(*model.Event).Pitch)
}

func TestRandomRepeatBlock(t *testing.T) {
	cases := []struct {
		src  string
		want model.RepeatMode
	}{
		{"BEGIN:\n{ DO4 4 } * (2-5 base 2)\n", model.Random(2, 5, 2)},
		{"BEGIN:\n{ DO4 4 } * (2-5)\n", model.Random(2, 5, 1)},
		{"BEGIN:\n{ DO4 4 }\n* ( 0 - 0 )\n", model.Random(0, 0, 1)},
	}
	for _, c := range cases {
		t.Run(c.want.String(), func(t *testing.T) {
			root, err := Parse(c.src)
			require.NoError(t, err)
			assert.Equal(t, c.want, root.At(0).(*model.Sequence).Repeat())
		})
	}
}

func TestChildCountMatchesTopLevelEntries(t *testing.T) {
	src := `BEGIN:
DO4 4
RE4 8 0.5
s 1.0
{ MI4 4 { FA4 4 } * 2 }
.5
`
	root, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, 5, root.Len())
}

func TestNestedBlocks(t *testing.T) {
	root, err := Parse("BEGIN:\n{ { { LA4 4 } * 2 } } * (1-2)\n")
	require.NoError(t, err)

	assert := assert.New(t)
	outer := root.At(0).(*model.Sequence)
	assert.Equal(model.Random(1, 2, 1), outer.Repeat())
	middle := outer.At(0).(*model.Sequence)
	assert.True(middle.Repeat().IsZero())
	inner := middle.At(0).(*model.Sequence)
	assert.Equal(model.Fixed(2), inner.Repeat())
	assert.Equal(model.La, inner.At(0).(*model.Event).Pitch.Label)
}

func TestLetterAndItalianLabelsBuildTheSamePitch(t *testing.T) {
	root, err := Parse("BEGIN:\nC#4 4\nDO#4 4\n")
	require.NoError(t, err)

	assert.Equal(t, root.At(0), root.At(1))
}

func TestUnusedDeclarationHasNoEffect(t *testing.T) {
	with, err := Parse("DECLARE:\nunused := { SI3 2 } * 4\nBEGIN:\nDO4 4 0.5\n")
	require.NoError(t, err)
	without, err := Parse("BEGIN:\nDO4 4 0.5\n")
	require.NoError(t, err)

	assert.Equal(t, without, with)
}

func TestReferencesShareTheDeclaredNode(t *testing.T) {
	src := `DECLARE:
Riff := { DO4 4
RE4 4 } * 2
BEGIN:
riff
{ DO4 2 }
RIFF
`
	root, err := Parse(src)
	require.NoError(t, err)

	assert := assert.New(t)
	require.Equal(t, 3, root.Len())
	assert.Same(root.At(0), root.At(2))
	assert.Equal(model.Fixed(2), root.At(0).(*model.Sequence).Repeat())
}

func TestSharedEventIsTheSameInstance(t *testing.T) {
	root, err := Parse("DECLARE:\nhit := E5 16\nBEGIN:\n{ hit\nhit\n} * 4\nhit\n")
	require.NoError(t, err)

	assert := assert.New(t)
	block := root.At(0).(*model.Sequence)
	assert.Same(block.At(0), block.At(1))
	assert.Same(block.At(0), root.At(1))
	assert.Equal(model.KindEvent, root.At(1).Kind())
}

func TestDeclarationsCanUseEarlierDeclarations(t *testing.T) {
	src := `DECLARE:
a := DO4 4
b := { a
a } * 2
BEGIN:
b
`
	root, err := Parse(src)
	require.NoError(t, err)

	b := root.At(0).(*model.Sequence)
	assert.Same(t, b.At(0), b.At(1))
}

func TestUnresolvedReferences(t *testing.T) {
	cases := map[string]struct {
		src  string
		name string
	}{
		"top level":         {"BEGIN:\nDO4 4\nmissing\n", "missing"},
		"inside block":      {"BEGIN:\n{ DO4 4\n{ ghost } }\n", "ghost"},
		"later declaration": {"DECLARE:\na := { b }\nb := DO4 4\nBEGIN:\na\n", "b"},
		"self reference":    {"DECLARE:\nloop := { loop }\nBEGIN:\nloop\n", "loop"},
		"lowercase pitch":   {"BEGIN:\ndo4 4\n", "do4 4"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			root, err := Parse(c.src)

			assert := assert.New(t)
			assert.Nil(root)
			var uerr *UnresolvedReferenceError
			require.True(t, errors.As(err, &uerr), "got %v", err)
			assert.Equal(c.name, uerr.Name)
			assert.Contains(err.Error(), c.name)
		})
	}
}

func TestSyntaxErrorCarriesPosition(t *testing.T) {
	_, err := NewParser(nil).Compile("song.sheet", "BEGIN:\nDO4 4\nRE4 4 }\n")

	var serr *SyntaxError
	require.True(t, errors.As(err, &serr), "got %v", err)
	assert := assert.New(t)
	assert.Equal("song.sheet", serr.Pos.Filename)
	assert.Equal(3, serr.Pos.Line)
	assert.Equal(7, serr.Pos.Column)
	assert.Contains(err.Error(), "syntax error")
}

func TestRangeErrors(t *testing.T) {
	cases := map[string]string{
		"zero count":     "BEGIN:\n{ DO4 4 } * 0\n",
		"inverted range": "BEGIN:\n{ DO4 4 } * (5-2)\n",
		"zero base":      "BEGIN:\n{ DO4 4 } * (1-2 base 0)\n",
		"zero duration":  "BEGIN:\nDO4 0\n",
		"zero rest":      "BEGIN:\ns 0.0\n",
		"zero fused":     "BEGIN:\nDO4 4 .0\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			root, err := Parse(src)
			assert.Nil(t, root)
			var rerr *RangeError
			assert.True(t, errors.As(err, &rerr), "got %v", err)
		})
	}
}

func TestCommentsDoNotChangeTheTree(t *testing.T) {
	plain := "DECLARE:\nx := { DO4 4 } * 2\nBEGIN:\nx\n{ RE4 8 0.5\n} * (1-3)\n"
	noisy := `// a tune

` + "\U0001D160 with a glyph comment" + `
DECLARE: // declarations
x := { DO4 4 } * 2 // riff


BEGIN:
// body
x    // reference
{ RE4 8 0.5 // fused rest

} * (1-3) // random
// end`

	want, err := Parse(plain)
	require.NoError(t, err)
	got, err := Parse(noisy)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestBuiltSequencesAreFrozen(t *testing.T) {
	root, err := Parse("BEGIN:\n{ DO4 4 0.5 }\n")
	require.NoError(t, err)

	model.Walk(root, func(n model.Node, depth int) bool {
		if s, ok := n.(*model.Sequence); ok {
			assert.True(t, s.Frozen())
		}
		return true
	})
}

func TestCompileKeepsDeclarationsAndLogsRedeclaration(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := NewParser(logger).Compile("", "DECLARE:\nBeat := DO4 4\nbeat := RE4 4\nfill := s 0.5\nBEGIN:\nbeat\n")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(2, s.Declarations.Len())
	assert.Equal([]string{"beat", "fill"}, s.Declarations.Names())
	n, ok := s.Declarations.Lookup("BEAT")
	assert.True(ok)
	assert.Same(n, s.Root.At(0))
	assert.Equal(model.Re, n.(*model.Event).Pitch.Label)
	assert.Contains(buf.String(), "tune declared twice")
}

func TestNamesIgnoreCaseAndSurroundingSpace(t *testing.T) {
	s, err := NewParser(nil).Compile("", "DECLARE:\nmain riff := DO4 4\nBass := RE4 4\nBEGIN:\nMAIN RIFF\n  Main Riff  \nbass\n")
	require.NoError(t, err)

	assert := assert.New(t)
	riff, ok := s.Declarations.Lookup("main riff")
	require.True(t, ok)
	assert.Same(riff, s.Root.At(0))
	assert.Same(riff, s.Root.At(1))
	bass, _ := s.Declarations.Lookup("BASS")
	assert.Same(bass, s.Root.At(2))
	assert.Equal([]string{"Bass", "main riff"}, s.Declarations.Names())
}
