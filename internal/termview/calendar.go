package termview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/arslanca/portfolio-web/internal/contrib"
)

// levelGlyphs keep the intensity readable without color.
var levelGlyphs = [...]string{"·", "░", "▒", "▓", "█"}

var rowLabels = [7]string{"", "Mon", "", "Wed", "", "Fri", ""}

const (
	labelWidth = 4
	cellWidth  = 2
)

// Glyph returns the cell drawn for a day at level l.
func Glyph(l contrib.Level) string {
	if l > contrib.MaxLevel {
		l = contrib.LevelNone
	}
	return lipgloss.NewStyle().Foreground(levelColors[l]).Render(levelGlyphs[l])
}

// RenderCalendar draws one year as a week-per-column grid with Sunday on
// top, like the web page does.
func RenderCalendar(y contrib.YearContributions) string {
	weeks := y.Weeks()

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d", y.Year)))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %s contributions", humanize.Comma(int64(y.Total)))))
	b.WriteString("\n")

	if len(weeks) == 0 {
		b.WriteString(mutedStyle.Render("No contributions recorded."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(mutedStyle.Render(monthRow(weeks)))
	b.WriteString("\n")

	for wd := 0; wd < 7; wd++ {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%-*s", labelWidth, rowLabels[wd])))
		for _, w := range weeks {
			d := w[wd]
			if d.IsPadding() {
				b.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}
			b.WriteString(Glyph(d.Level) + " ")
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat(" ", labelWidth))
	b.WriteString(mutedStyle.Render("Less "))
	for l := contrib.LevelNone; l <= contrib.MaxLevel; l++ {
		b.WriteString(Glyph(l) + " ")
	}
	b.WriteString(mutedStyle.Render("More"))
	b.WriteString("\n")
	return b.String()
}

// monthRow lays the month labels out above their week columns. A label
// that would overlap the previous one is dropped.
func monthRow(weeks []contrib.Week) string {
	row := []rune(strings.Repeat(" ", labelWidth+cellWidth*len(weeks)+2))
	next := 0
	for i, label := range contrib.MonthLabels(weeks) {
		if label == "" {
			continue
		}
		pos := labelWidth + cellWidth*i
		if pos < next {
			continue
		}
		copy(row[pos:], []rune(label))
		next = pos + len(label) + 1
	}
	return strings.TrimRight(string(row), " ")
}

// RenderYears lists the available years with their totals, newest first.
func RenderYears(years []contrib.YearContributions, selected int) string {
	parts := make([]string, 0, len(years))
	for _, y := range years {
		s := fmt.Sprintf("%d (%s)", y.Year, humanize.Comma(int64(y.Total)))
		if y.Year == selected {
			parts = append(parts, accentStyle.Render(s))
		} else {
			parts = append(parts, mutedStyle.Render(s))
		}
	}
	return strings.Join(parts, "  ")
}
