package midi

import (
	"context"
	"time"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Play sends the notes of s to out in real time. It returns when the last
// note has been sent or ctx is done, releasing any sounding notes.
func Play(ctx context.Context, out drivers.Out, s *smf.SMF) error {
	send, err := gomidi.SendTo(out)
	if err != nil {
		return errors.Wrapf(err, "could not open %v", out)
	}
	return PlayTo(ctx, send, s)
}

func PlayTo(ctx context.Context, send func(gomidi.Message) error, s *smf.SMF) error {
	sounding := make(map[[2]uint8]bool)
	release := func() {
		for k := range sounding {
			send(gomidi.NoteOff(k[0], k[1]))
		}
	}

	start := time.Now()
	for _, ev := range ReduceEvents(s) {
		wait := time.Duration(ev.Micros)*time.Microsecond - time.Since(start)
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				release()
				return ctx.Err()
			case <-timer.C:
			}
		}

		k := [2]uint8{ev.Channel, ev.Key}
		msg := gomidi.NoteOn(ev.Channel, ev.Key, ev.Velocity)
		if ev.IsNoteOff {
			msg = gomidi.NoteOff(ev.Channel, ev.Key)
			delete(sounding, k)
		} else {
			sounding[k] = true
		}
		if err := send(msg); err != nil {
			release()
			return errors.Wrap(err, "could not send midi message")
		}
	}
	return nil
}
