package model

import "fmt"

// Kind discriminates the closed set of node shapes.
type Kind uint8

const (
	KindEvent Kind = iota + 1
	KindRest
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindEvent:
		return "event"
	case KindRest:
		return "rest"
	case KindSequence:
		return "sequence"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Node is implemented by *Event, *Rest and *Sequence only. Nodes are shared by
// pointer: a declared fragment referenced twice is the same Node in both places.
type Node interface {
	Kind() Kind
	tune()
}

// Event is a sounded note. Duration is the rhythmic denominator (4 = quarter).
type Event struct {
	Pitch    Pitch
	Duration int
}

func NewEvent(p Pitch, duration int) *Event {
	return &Event{Pitch: p, Duration: duration}
}

func (*Event) Kind() Kind { return KindEvent }
func (*Event) tune()      {}

func (e *Event) String() string {
	return fmt.Sprintf("%v/%d", e.Pitch, e.Duration)
}

// Rest is a silence of Length seconds.
type Rest struct {
	Length float64
}

func NewRest(length float64) *Rest {
	return &Rest{Length: length}
}

func (*Rest) Kind() Kind { return KindRest }
func (*Rest) tune()      {}

func (r *Rest) String() string {
	return fmt.Sprintf("rest %v", r.Length)
}

// Sequence is an ordered list of nodes with an optional repeat mode. It can be
// appended to until Freeze is called.
type Sequence struct {
	children []Node
	repeat   RepeatMode
	frozen   bool
}

func NewSequence(children ...Node) *Sequence {
	s := &Sequence{}
	for _, c := range children {
		s.Append(c)
	}
	return s
}

func (*Sequence) Kind() Kind { return KindSequence }
func (*Sequence) tune()      {}

func (s *Sequence) Append(n Node) {
	if s.frozen {
		panic("model: append to frozen sequence")
	}
	if n == nil {
		panic("model: append of nil node")
	}
	s.children = append(s.children, n)
}

// SetRepeat attaches m, replacing any earlier mode.
func (s *Sequence) SetRepeat(m RepeatMode) {
	if s.frozen {
		panic("model: set repeat on frozen sequence")
	}
	s.repeat = m
}

func (s *Sequence) Freeze() {
	s.frozen = true
}

func (s *Sequence) Frozen() bool {
	return s.frozen
}

// Children returns the nodes in order. The slice must not be modified.
func (s *Sequence) Children() []Node {
	return s.children
}

func (s *Sequence) Len() int {
	return len(s.children)
}

func (s *Sequence) At(i int) Node {
	return s.children[i]
}

func (s *Sequence) Repeat() RepeatMode {
	return s.repeat
}
