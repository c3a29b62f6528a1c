package contrib

import (
	"sort"
	"time"
)

// Week is a calendar column, Sunday at index 0 and Saturday at index 6.
// Slots without a real day hold padding.
type Week [7]Day

// BuildWeeks buckets chronologically ordered days into Sunday-start weeks.
// The first week is padded up to the weekday of the first day and the last
// week is padded after the final day. Days whose date does not parse are
// dropped. Repeated dates are merged into one slot: counts add up and the
// higher level wins.
func BuildWeeks(days []Day) []Week {
	var (
		weeks    []Week
		cur      Week
		curStart time.Time
		open     bool
	)
	for _, d := range days {
		t, ok := ParseDate(d.Date)
		if !ok {
			continue
		}
		wd := int(t.Weekday())
		start := t.AddDate(0, 0, -wd)
		// A week is closed by the first day of a later week, so a gap in
		// the input never writes into the wrong column.
		if open && !start.Equal(curStart) {
			weeks = append(weeks, cur)
			cur = Week{}
		}
		// Same week and weekday means the same calendar day.
		if prev := cur[wd]; open && !prev.IsPadding() {
			d.Count += prev.Count
			d.Level = max(d.Level, prev.Level)
		}
		cur[wd] = d
		curStart = start
		open = true
	}
	if open {
		weeks = append(weeks, cur)
	}
	return weeks
}

// FirstDay returns the first non-padding day of w.
func (w Week) FirstDay() (Day, bool) {
	for _, d := range w {
		if !d.IsPadding() {
			return d, true
		}
	}
	return Day{}, false
}

// Total sums the counts of the real days in w.
func (w Week) Total() int {
	total := 0
	for _, d := range w {
		if !d.IsPadding() {
			total += d.Count
		}
	}
	return total
}

// MonthLabels returns, for every week, the short month name when the week
// holds one of the first seven days of a month and "" otherwise.
func MonthLabels(weeks []Week) []string {
	labels := make([]string, len(weeks))
	for i, w := range weeks {
		d, ok := w.FirstDay()
		if !ok {
			continue
		}
		t, ok := ParseDate(d.Date)
		if !ok || t.Day() > 7 {
			continue
		}
		labels[i] = t.Month().String()[:3]
	}
	return labels
}

// YearContributions is the slice of the calendar belonging to one year.
type YearContributions struct {
	Year  int   `json:"year"`
	Total int   `json:"total"`
	Days  []Day `json:"days"`
}

// Weeks builds the calendar grid for the year.
func (y YearContributions) Weeks() []Week {
	return BuildWeeks(y.Days)
}

// GroupByYear splits days by calendar year. Days in each year are sorted
// ascending and years are returned newest first. Days with a missing or
// malformed date are ignored.
func GroupByYear(days []Day) []YearContributions {
	type dated struct {
		day Day
		at  time.Time
	}
	byYear := make(map[int][]dated)
	for _, d := range days {
		t, ok := ParseDate(d.Date)
		if !ok {
			continue
		}
		byYear[t.Year()] = append(byYear[t.Year()], dated{day: d, at: t})
	}

	years := make([]YearContributions, 0, len(byYear))
	for year, ds := range byYear {
		sort.SliceStable(ds, func(i, j int) bool { return ds[i].at.Before(ds[j].at) })
		yc := YearContributions{Year: year, Days: make([]Day, len(ds))}
		for i, d := range ds {
			yc.Days[i] = d.day
			yc.Total += d.day.Count
		}
		years = append(years, yc)
	}
	sort.Slice(years, func(i, j int) bool { return years[i].Year > years[j].Year })
	return years
}

// Select returns the entry for year, or the newest year when year is 0 or
// not present. ok is false only when years is empty.
func Select(years []YearContributions, year int) (YearContributions, bool) {
	if len(years) == 0 {
		return YearContributions{}, false
	}
	for _, y := range years {
		if y.Year == year {
			return y, true
		}
	}
	return years[0], true
}
