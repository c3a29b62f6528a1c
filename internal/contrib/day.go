// Package contrib turns the daily GitHub contribution counts served by the
// backend into the calendar grid shown on the activity page.
package contrib

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Level is GitHub's intensity bucket for a day, from LevelNone to
// LevelFourthQuartile. It is assigned upstream and never derived from counts.
type Level uint8

const (
	LevelNone Level = iota
	LevelFirstQuartile
	LevelSecondQuartile
	LevelThirdQuartile
	LevelFourthQuartile
)

// MaxLevel is the highest intensity bucket.
const MaxLevel = LevelFourthQuartile

var quartileNames = map[string]Level{
	"NONE":            LevelNone,
	"FIRST_QUARTILE":  LevelFirstQuartile,
	"SECOND_QUARTILE": LevelSecondQuartile,
	"THIRD_QUARTILE":  LevelThirdQuartile,
	"FOURTH_QUARTILE": LevelFourthQuartile,
}

// ParseLevel maps GitHub's contributionLevel names to a Level. Unknown names
// map to LevelNone.
func ParseLevel(name string) Level {
	return quartileNames[strings.ToUpper(strings.TrimSpace(name))]
}

// LevelOf clamps an integer to the valid range; anything outside 0..4 is
// LevelNone.
func LevelOf(n int) Level {
	if n < int(LevelNone) || n > int(MaxLevel) {
		return LevelNone
	}
	return Level(n)
}

// UnmarshalJSON accepts both the integer form used by the backend and the
// quartile names used by the GitHub GraphQL API.
func (l *Level) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*l = ParseLevel(name)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		*l = LevelNone
		return nil
	}
	*l = LevelOf(n)
	return nil
}

// Day is one cell of the contribution calendar. A padding day has an empty
// Date, a zero Count and LevelNone.
type Day struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level Level  `json:"level"`
}

// IsPadding reports whether d is a placeholder inserted to fill a week.
func (d Day) IsPadding() bool {
	return d.Date == ""
}

// dateLayout is the ISO calendar date used by the backend.
const dateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date, also accepting a full RFC 3339
// timestamp whose date part is used as is.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
