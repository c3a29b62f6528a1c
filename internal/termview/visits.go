package termview

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/arslanca/portfolio-web/internal/visits"
)

// RenderVisits prints the visit log summary.
func RenderVisits(sum *visits.Summary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Visits"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total      %s\n", humanize.Comma(sum.TotalVisits))
	fmt.Fprintf(&b, "Unique     %s\n", humanize.Comma(sum.UniqueVisitors))
	fmt.Fprintf(&b, "Today      %s\n", humanize.Comma(sum.VisitsToday))
	fmt.Fprintf(&b, "This week  %s\n", humanize.Comma(sum.VisitsThisWeek))

	if len(sum.TopPaths) == 0 {
		return b.String()
	}
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Top pages"))
	b.WriteString("\n")
	for _, p := range sum.TopPaths {
		fmt.Fprintf(&b, "%8s  %s\n", humanize.Comma(p.Views), p.Path)
	}
	return b.String()
}

// RenderRecent lists the latest visits, newest first.
func RenderRecent(vs []visits.Visit) string {
	var b strings.Builder
	for _, v := range vs {
		fmt.Fprintf(&b, "%-14s %s  %s\n",
			humanize.Time(v.CreatedAt),
			mutedStyle.Render(v.Visitor),
			v.Path,
		)
	}
	return b.String()
}
