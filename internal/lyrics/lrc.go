// Package lyrics parses time-tagged lyric text and reports which line
// is active for a given playback position.
package lyrics

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Line is a single lyric line with the position it becomes active at.
type Line struct {
	Time time.Duration
	Text string
}

// Timeline is the parsed lyrics for one track. It is rebuilt whenever
// the playing track changes and never reused across tracks.
type Timeline struct {
	lines  []Line
	synced bool
}

// Matches one leading timestamp like [01:23.45]. Fractional seconds are
// optional; sources use both centisecond and millisecond precision.
var timestampRe = regexp.MustCompile(`^\[(\d+):(\d{1,2}(?:\.\d+)?)\]`)

// ParseLRC builds a timeline from line-oriented LRC text. Lines without
// a timestamp are discarded, and file order is kept as-is: sources are
// assumed monotonic and are not re-sorted. If no line carries a
// timestamp the whole source is treated as plain lyrics: every
// non-blank line becomes an untimed, always-visible block.
func ParseLRC(r io.Reader) (*Timeline, error) {
	var timed []Line
	var plain []Line

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		plain = append(plain, Line{Text: raw})

		m := timestampRe.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		ts, err := parseTimestamp(m[1], m[2])
		if err != nil {
			continue
		}
		text := strings.TrimSpace(raw[len(m[0]):])
		if text == "" {
			continue
		}
		timed = append(timed, Line{Time: ts, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(timed) > 0 {
		return &Timeline{lines: timed, synced: true}, nil
	}
	return &Timeline{lines: plain}, nil
}

// NewPlainTimeline builds an unsynced timeline from plain text,
// one line per non-blank source line.
func NewPlainTimeline(text string) *Timeline {
	tl := &Timeline{}
	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSpace(raw)
		if raw != "" {
			tl.lines = append(tl.lines, Line{Text: raw})
		}
	}
	return tl
}

func parseTimestamp(minutes, seconds string) (time.Duration, error) {
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, err
	}
	s, err := strconv.ParseFloat(seconds, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(m)*time.Minute + time.Duration(s*float64(time.Second)), nil
}

// LineAt returns the index of the line with the greatest timestamp at
// or before pos, or -1 if pos precedes the first timestamp or the
// timeline is unsynced. Linear scan with early exit; timelines are at
// most a few hundred lines.
func (t *Timeline) LineAt(pos time.Duration) int {
	if !t.synced {
		return -1
	}
	idx := -1
	for i, line := range t.lines {
		if line.Time > pos {
			break
		}
		idx = i
	}
	return idx
}

// Lines returns all lines in display order.
func (t *Timeline) Lines() []Line {
	result := make([]Line, len(t.lines))
	copy(result, t.lines)
	return result
}

// Len returns the number of lines.
func (t *Timeline) Len() int {
	return len(t.lines)
}

// IsSynced reports whether the timeline carries timestamps.
func (t *Timeline) IsSynced() bool {
	return t.synced
}
