package model

import "fmt"

type Label uint8

const (
	Do Label = iota
	Re
	Mi
	Fa
	Sol
	La
	Si
)

var labelNames = [...]string{"DO", "RE", "MI", "FA", "SOL", "LA", "SI"}

// Both spellings map onto the same canonical label.
var PitchLabels = map[string]Label{
	"DO": Do, "RE": Re, "MI": Mi, "FA": Fa, "SOL": Sol, "LA": La, "SI": Si,
	"C": Do, "D": Re, "E": Mi, "F": Fa, "G": Sol, "A": La, "B": Si,
}

func ParseLabel(s string) (Label, bool) {
	l, ok := PitchLabels[s]
	return l, ok
}

func (l Label) String() string {
	if int(l) < len(labelNames) {
		return labelNames[l]
	}
	return fmt.Sprintf("Label(%d)", uint8(l))
}

type Accidental uint8

const (
	Natural Accidental = iota
	Sharp
	Flat
)

func ParseAccidental(s string) (Accidental, bool) {
	switch s {
	case "":
		return Natural, true
	case "#":
		return Sharp, true
	case "b":
		return Flat, true
	}
	return Natural, false
}

func (a Accidental) String() string {
	switch a {
	case Sharp:
		return "sharp"
	case Flat:
		return "flat"
	default:
		return "natural"
	}
}

func (a Accidental) symbol() string {
	switch a {
	case Sharp:
		return "#"
	case Flat:
		return "b"
	default:
		return ""
	}
}

type Pitch struct {
	Label      Label
	Accidental Accidental
	Octave     int
}

func NewPitch(label Label, octave int, accidental Accidental) Pitch {
	return Pitch{Label: label, Accidental: accidental, Octave: octave}
}

func (p Pitch) String() string {
	return fmt.Sprintf("%v%s%d", p.Label, p.Accidental.symbol(), p.Octave)
}
