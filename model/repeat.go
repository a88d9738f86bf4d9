package model

import "fmt"

type RepeatKind uint8

const (
	RepeatNone RepeatKind = iota
	RepeatFixed
	RepeatRandom
)

func (k RepeatKind) String() string {
	switch k {
	case RepeatFixed:
		return "fixed"
	case RepeatRandom:
		return "random"
	default:
		return "none"
	}
}

// RepeatMode tells the player how many times a sequence is played. The zero
// value means play once.
type RepeatMode struct {
	kind  RepeatKind
	Count int
	Min   int
	Max   int
	Base  int
}

var NoRepeat = RepeatMode{}

func Fixed(count int) RepeatMode {
	return RepeatMode{kind: RepeatFixed, Count: count}
}

// Random plays the sequence base*k times, k drawn from [min, max].
func Random(min, max, base int) RepeatMode {
	return RepeatMode{kind: RepeatRandom, Min: min, Max: max, Base: base}
}

func (m RepeatMode) Kind() RepeatKind {
	return m.kind
}

func (m RepeatMode) IsZero() bool {
	return m.kind == RepeatNone
}

func (m RepeatMode) Validate() error {
	switch m.kind {
	case RepeatFixed:
		if m.Count < 1 {
			return fmt.Errorf("repeat count must be at least 1, got %d", m.Count)
		}
	case RepeatRandom:
		if m.Min < 0 {
			return fmt.Errorf("random repeat minimum must not be negative, got %d", m.Min)
		}
		if m.Min > m.Max {
			return fmt.Errorf("random repeat minimum %d is greater than maximum %d", m.Min, m.Max)
		}
		if m.Base < 1 {
			return fmt.Errorf("random repeat base must be at least 1, got %d", m.Base)
		}
	}
	return nil
}

func (m RepeatMode) String() string {
	switch m.kind {
	case RepeatFixed:
		return fmt.Sprintf("* %d", m.Count)
	case RepeatRandom:
		if m.Base == 1 {
			return fmt.Sprintf("* (%d-%d)", m.Min, m.Max)
		}
		return fmt.Sprintf("* (%d-%d base %d)", m.Min, m.Max, m.Base)
	}
	return ""
}
