package midi

import (
	"fmt"
	"math"

	"github.com/jsphweid/tunesheet/model"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type Options struct {
	BPM        float64
	Velocity   uint8
	Channel    uint8
	Resolution uint16
	Seed       int64

	// MaxNotes bounds the expanded length so deeply nested repeats fail
	// instead of exhausting memory. MaxSteps bounds every node visited and
	// every repeat pass, so repeats of rests or empty blocks fail as well.
	MaxNotes int
	MaxSteps int
}

func DefaultOptions() Options {
	return Options{
		BPM:        120,
		Velocity:   100,
		Channel:    0,
		Resolution: 960,
		MaxNotes:   1 << 20,
		MaxSteps:   1 << 24,
	}
}

// ErrTooLong is returned when a tune expands beyond Max of Unit, which is
// one of "notes", "steps" or "ticks".
type ErrTooLong struct {
	Max  uint64
	Unit string
}

func (e ErrTooLong) Error() string {
	return fmt.Sprintf("tune expands to more than %d %s", e.Max, e.Unit)
}

// maxDelta is the longest gap a track event can carry.
const maxDelta = math.MaxUint32

type renderer struct {
	opts     Options
	resolver *Resolver
	track    smf.Track
	pending  uint64
	notes    int
	steps    int
}

// Render plays root into a single track standard midi file. Every repeat mode
// is resolved once per time its sequence is reached.
func Render(root *model.Sequence, opts Options) (*smf.SMF, error) {
	def := DefaultOptions()
	if opts.BPM <= 0 {
		opts.BPM = def.BPM
	}
	if opts.Resolution == 0 {
		opts.Resolution = def.Resolution
	}
	if opts.MaxNotes <= 0 {
		opts.MaxNotes = def.MaxNotes
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = def.MaxSteps
	}
	if opts.Channel > 15 {
		return nil, fmt.Errorf("midi channel %d is out of range", opts.Channel)
	}

	r := &renderer{opts: opts, resolver: NewResolver(opts.Seed)}
	r.track.Add(0, smf.MetaTempo(opts.BPM))
	if err := r.node(root); err != nil {
		return nil, err
	}
	r.track.Close(uint32(r.pending))

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(opts.Resolution)
	if err := s.Add(r.track); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *renderer) step() error {
	if r.steps >= r.opts.MaxSteps {
		return ErrTooLong{Max: uint64(r.opts.MaxSteps), Unit: "steps"}
	}
	r.steps++
	return nil
}

func (r *renderer) node(n model.Node) error {
	if err := r.step(); err != nil {
		return err
	}
	switch v := n.(type) {
	case *model.Event:
		return r.event(v)
	case *model.Rest:
		return r.rest(v)
	case *model.Sequence:
		count := r.resolver.Count(v.Repeat())
		for i := 0; i < count; i++ {
			if err := r.step(); err != nil {
				return err
			}
			for _, c := range v.Children() {
				if err := r.node(c); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return fmt.Errorf("unknown node %T", n)
}

func (r *renderer) event(e *model.Event) error {
	if r.notes >= r.opts.MaxNotes {
		return ErrTooLong{Max: uint64(r.opts.MaxNotes), Unit: "notes"}
	}
	if e.Duration < 1 {
		return fmt.Errorf("note %v has no duration", e)
	}
	key, err := Key(e.Pitch)
	if err != nil {
		return err
	}
	r.track.Add(uint32(r.pending), gomidi.NoteOn(r.opts.Channel, key, r.opts.Velocity))
	r.track.Add(r.noteTicks(e.Duration), gomidi.NoteOff(r.opts.Channel, key))
	r.pending = 0
	r.notes++
	return nil
}

func (r *renderer) rest(rest *model.Rest) error {
	ticks, ok := r.restTicks(rest.Length)
	if !ok || r.pending+ticks > maxDelta {
		return ErrTooLong{Max: maxDelta, Unit: "ticks"}
	}
	r.pending += ticks
	return nil
}

// noteTicks is the length of a 1/duration note, never shorter than a tick.
func (r *renderer) noteTicks(duration int) uint32 {
	ticks := uint64(r.opts.Resolution) * 4 / uint64(duration)
	if ticks == 0 {
		return 1
	}
	return uint32(ticks)
}

// restTicks converts seconds to ticks at the configured tempo. It reports
// false when the result does not fit a single track delta.
func (r *renderer) restTicks(seconds float64) (uint64, bool) {
	ticks := math.Round(seconds * r.opts.BPM / 60 * float64(r.opts.Resolution))
	if math.IsNaN(ticks) || ticks < 0 || ticks > maxDelta {
		return 0, false
	}
	return uint64(ticks), true
}
