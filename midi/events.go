package midi

import (
	"sort"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type ReducedEvent struct {
	Ticks     int64
	Micros    int64
	Channel   uint8
	Key       uint8
	Velocity  uint8
	IsNoteOff bool
}

// ReduceEvents flattens the note on/off messages of every track into one list
// ordered by time, note offs first when they coincide with note ons.
func ReduceEvents(s *smf.SMF) []ReducedEvent {
	var reducedEvents []ReducedEvent

	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			msg := gomidi.Message(event.Message)
			var channel, key, velocity uint8
			switch {
			case msg.GetNoteOn(&channel, &key, &velocity) && velocity > 0:
				reducedEvents = append(reducedEvents, ReducedEvent{
					Ticks:    absTicks,
					Micros:   s.TimeAt(absTicks),
					Channel:  channel,
					Key:      key,
					Velocity: velocity,
				})
			case msg.GetNoteOn(&channel, &key, &velocity),
				msg.GetNoteOff(&channel, &key, &velocity):
				reducedEvents = append(reducedEvents, ReducedEvent{
					Ticks:     absTicks,
					Micros:    s.TimeAt(absTicks),
					Channel:   channel,
					Key:       key,
					IsNoteOff: true,
				})
			}
		}
	}

	// prioritize smaller offset values then note off
	sort.SliceStable(reducedEvents, func(i, j int) bool {
		if reducedEvents[i].Ticks != reducedEvents[j].Ticks {
			return reducedEvents[i].Ticks < reducedEvents[j].Ticks
		}
		return reducedEvents[i].IsNoteOff && !reducedEvents[j].IsNoteOff
	})
	return reducedEvents
}
