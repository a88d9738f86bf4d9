package model

import "encoding/json"

type pitchJSON struct {
	Label      string `json:"label"`
	Accidental string `json:"accidental"`
	Octave     int    `json:"octave"`
}

type repeatJSON struct {
	Mode  string `json:"mode"`
	Count int    `json:"count,omitempty"`
	Min   int    `json:"min,omitempty"`
	Max   int    `json:"max,omitempty"`
	Base  int    `json:"base,omitempty"`
}

func (p Pitch) MarshalJSON() ([]byte, error) {
	return json.Marshal(pitchJSON{
		Label:      p.Label.String(),
		Accidental: p.Accidental.String(),
		Octave:     p.Octave,
	})
}

func (e *Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     string `json:"kind"`
		Pitch    Pitch  `json:"pitch"`
		Duration int    `json:"duration"`
	}{KindEvent.String(), e.Pitch, e.Duration})
}

func (r *Rest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind   string  `json:"kind"`
		Length float64 `json:"length"`
	}{KindRest.String(), r.Length})
}

func (m RepeatMode) MarshalJSON() ([]byte, error) {
	rj := repeatJSON{Mode: m.kind.String()}
	switch m.kind {
	case RepeatFixed:
		rj.Count = m.Count
	case RepeatRandom:
		rj.Min, rj.Max, rj.Base = m.Min, m.Max, m.Base
	}
	return json.Marshal(rj)
}

func (s *Sequence) MarshalJSON() ([]byte, error) {
	var repeat *RepeatMode
	if !s.repeat.IsZero() {
		repeat = &s.repeat
	}
	children := s.children
	if children == nil {
		children = []Node{}
	}
	return json.Marshal(struct {
		Kind     string      `json:"kind"`
		Repeat   *RepeatMode `json:"repeat,omitempty"`
		Children []Node      `json:"children"`
	}{KindSequence.String(), repeat, children})
}
