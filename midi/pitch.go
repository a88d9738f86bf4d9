package midi

import (
	"fmt"
	"math"

	"github.com/jsphweid/tunesheet/model"
)

var semitones = map[model.Label]int{
	model.Do:  0,
	model.Re:  2,
	model.Mi:  4,
	model.Fa:  5,
	model.Sol: 7,
	model.La:  9,
	model.Si:  11,
}

// semitone counts half steps from DO0, so DO4 is 48 and LA4 is 57.
func semitone(p model.Pitch) int {
	n := 12*p.Octave + semitones[p.Label]
	switch p.Accidental {
	case model.Sharp:
		n++
	case model.Flat:
		n--
	}
	return n
}

// Key returns the MIDI key number of p, with DO4 as middle C (60).
func Key(p model.Pitch) (uint8, error) {
	k := semitone(p) + 12
	if k < 0 || k > 127 {
		return 0, fmt.Errorf("pitch %v is outside the midi key range", p)
	}
	return uint8(k), nil
}

// Frequency returns the equal temperament frequency of p in Hz, LA4 = 440.
func Frequency(p model.Pitch) float64 {
	return 440 * math.Pow(2, float64(semitone(p)-57)/12)
}
