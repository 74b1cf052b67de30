// Package matchtime converts frame counters into match clock strings and
// wall-clock timestamps.
package matchtime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidClock is returned by Parse for strings that are not "M:SS".
var ErrInvalidClock = errors.New("invalid match clock")

// timestampLayout mirrors ISO-8601 with millisecond precision in UTC.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Seconds returns the whole seconds of play covered by frame at fps.
// A non-positive fps is treated as 1.
func Seconds(frame, fps int) int {
	if fps <= 0 {
		fps = 1
	}
	if frame < 0 {
		frame = 0
	}
	return frame / fps
}

// Format renders frame as "M:SS".
func Format(frame, fps int) string {
	s := Seconds(frame, fps)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// MaxSeconds bounds the clock: "M:SS" carries at most three minute digits.
const MaxSeconds = 1000 * 60

// Fits reports whether a match of duration frames at fps keeps its clock
// below MaxSeconds, the final frame included.
func Fits(duration, fps int) bool {
	return Seconds(duration, fps) < MaxSeconds
}

// Minutes returns the completed minutes of play at frame.
func Minutes(frame, fps int) int {
	return Seconds(frame, fps) / 60
}

// Parse splits an "M:SS" clock into minutes and seconds.
func Parse(s string) (minutes, seconds int, err error) {
	m, sec, ok := strings.Cut(s, ":")
	if !ok || len(sec) != 2 || m == "" || len(m) > 3 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minutes, err = strconv.Atoi(m)
	if err != nil || minutes < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	seconds, err = strconv.Atoi(sec)
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return minutes, seconds, nil
}

// Timestamp returns start advanced by frame*1000/fps milliseconds.
func Timestamp(start time.Time, frame, fps int) time.Time {
	if fps <= 0 {
		fps = 1
	}
	ms := int64(frame) * 1000 / int64(fps)
	return start.Add(time.Duration(ms) * time.Millisecond)
}

// FormatTimestamp renders t in UTC with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
