package grammar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	labelPattern   = `DO|RE|MI|FA|SOL|LA|SI|[A-G]`
	decimalPattern = `\d*\.\d+`

	// A trailing rest is only fused to its note when it sits on the same line.
	notePattern = `(?:` + labelPattern + `)[#b]?\d+[ \t]+\d+(?:[ \t]*` + decimalPattern + `)?`
	restPattern = `s?[ \t]*` + decimalPattern
)

var (
	noteParts   = regexp.MustCompile(`^(` + labelPattern + `)([#b]?)(\d+)[ \t]+(\d+)(?:[ \t]*(` + decimalPattern + `))?$`)
	countDigits = regexp.MustCompile(`\d+$`)
)

// Note is a pitch with its duration and an optional trailing rest length, as
// written in a single Note token.
type Note struct {
	Label      string
	Accidental string
	Octave     int
	Duration   int
	Rest       *float64
}

func (n *Note) Capture(values []string) error {
	text := strings.Join(values, "")
	m := noteParts.FindStringSubmatch(text)
	if m == nil {
		return fmt.Errorf("malformed note %q", text)
	}
	var err error
	n.Label = m[1]
	n.Accidental = m[2]
	if n.Octave, err = strconv.Atoi(m[3]); err != nil {
		return fmt.Errorf("octave %q: %w", m[3], err)
	}
	if n.Duration, err = strconv.Atoi(m[4]); err != nil {
		return fmt.Errorf("duration %q: %w", m[4], err)
	}
	if m[5] != "" {
		length, err := strconv.ParseFloat(m[5], 64)
		if err != nil {
			return fmt.Errorf("rest length %q: %w", m[5], err)
		}
		n.Rest = &length
	}
	return nil
}

// Rest is a standalone silence, with or without the "s" marker.
type Rest struct {
	Length float64
}

func (r *Rest) Capture(values []string) error {
	text := strings.TrimLeft(strings.Join(values, ""), "s \t")
	length, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("rest length %q: %w", text, err)
	}
	r.Length = length
	return nil
}

// Count is the literal of a fixed repeater ("* 3").
type Count int

func (c *Count) Capture(values []string) error {
	text := strings.Join(values, "")
	digits := countDigits.FindString(text)
	n, err := strconv.Atoi(digits)
	if err != nil {
		return fmt.Errorf("repeat count %q: %w", text, err)
	}
	*c = Count(n)
	return nil
}
