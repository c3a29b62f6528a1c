// Package duration converts between WakaTime-style human readable durations
// ("2 hrs 15 mins 30 secs") and whole seconds.
package duration

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	hoursRe   = regexp.MustCompile(`(\d+)\s*(hr|hrs)`)
	minutesRe = regexp.MustCompile(`(\d+)\s*(min|mins)`)
	secondsRe = regexp.MustCompile(`(\d+)\s*(sec|secs)`)
)

// Parse returns the number of seconds described by text. Each unit is
// looked up on its own, so the components may appear in any order.
// Text without a recognizable component yields 0.
func Parse(text string) int {
	if text == "" {
		return 0
	}
	return component(hoursRe, text)*3600 +
		component(minutesRe, text)*60 +
		component(secondsRe, text)
}

func component(re *regexp.Regexp, text string) int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// Format renders totalSeconds as "1 hr 2 mins 3 secs", leaving out zero
// components. With includeSeconds the result is never empty ("0 secs");
// without it a total under one minute renders as "0 mins".
func Format(totalSeconds int, includeSeconds bool) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60

	parts := make([]string, 0, 3)
	if h > 0 {
		parts = append(parts, unit(h, "hr"))
	}
	if m > 0 {
		parts = append(parts, unit(m, "min"))
	}

	if includeSeconds {
		if s > 0 || len(parts) == 0 {
			parts = append(parts, unit(s, "sec"))
		}
	} else if len(parts) == 0 {
		return "0 mins"
	}
	return strings.Join(parts, " ")
}

func unit(n int, label string) string {
	if n != 1 {
		label += "s"
	}
	return strconv.Itoa(n) + " " + label
}
