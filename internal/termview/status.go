package termview

import (
	"fmt"
	"strings"

	"github.com/arslanca/portfolio-web/internal/livestatus"
)

// RenderStatus draws the live coding badge.
func RenderStatus(v livestatus.View) string {
	if !v.Online {
		return mutedStyle.Render("○ Offline")
	}

	lines := []string{
		accentStyle.Render("● ") + titleStyle.Render(v.Project),
		fmt.Sprintf("Currently Editing  %s", v.File),
		fmt.Sprintf("IDE                %s", v.IDE),
		fmt.Sprintf("Session            %s", v.Session),
		fmt.Sprintf("Total (Today)      %s", v.Daily),
	}
	if v.LastActive != "" {
		lines = append(lines, mutedStyle.Render("Last active "+v.LastActive))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}
