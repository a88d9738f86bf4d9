package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Excerpt copies mf keeping only the first n note on/off messages of each
// track. Other messages are kept but squeezed to at most one tick apart.
func Excerpt(mf *smf.SMF, n int) *smf.SMF {
	res := smf.New()
	res.TimeFormat = mf.TimeFormat

	for _, track := range mf.Tracks {
		var newTrack smf.Track
		var numNoteOnOff int
	TrackEventLoop:
		for _, evt := range track {
			msg := gomidi.Message(evt.Message)
			switch {
			case msg.Is(gomidi.NoteOnMsg), msg.Is(gomidi.NoteOffMsg):
				newTrack = append(newTrack, evt)
				numNoteOnOff += 1
				if numNoteOnOff >= n {
					break TrackEventLoop
				}
			case isEndOfTrack(evt.Message):
				// closed below
			default:
				if evt.Delta > 1 {
					evt.Delta = 1
				}
				newTrack = append(newTrack, evt)
			}
		}
		newTrack.Close(0)
		res.Tracks = append(res.Tracks, newTrack)
	}

	return res
}

func isEndOfTrack(msg smf.Message) bool {
	return len(msg) >= 2 && msg[0] == 0xFF && msg[1] == 0x2F
}
