package web

import (
	"html/template"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

var (
	Headline = "Software must breathe."
	Tagline  = "Like you, and me."

	AboutMe = `I breathe. I make it survive. I design resilient backend systems that
	handle scale, minimize latency, and maintain data integrity.`

	// TechStack is shown on the home page.
	TechStack = struct {
		Current  []string
		Learning []string
	}{
		Current:  []string{"Java", "Spring Boot", "Python", "Docker", "Git"},
		Learning: []string{"Kotlin", "AWS", "PostgreSQL", "MySQL"},
	}
)

// imageURL matches http(s) links to common image formats, query included.
var imageURL = regexp.MustCompile(`(?i)https?://[^\s]+?\.(?:png|jpg|jpeg|gif|webp|svg)(?:\?[^\s]*)?`)

// RenderContent turns a plain-text post into HTML: each line becomes a
// paragraph, blank lines become breaks and image links are inlined.
func RenderContent(text string) template.HTML {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			b.WriteString("<br>\n")
			continue
		}
		b.WriteString("<p>")
		last := 0
		for _, loc := range imageURL.FindAllStringIndex(line, -1) {
			b.WriteString(template.HTMLEscapeString(line[last:loc[0]]))
			src := template.HTMLEscapeString(line[loc[0]:loc[1]])
			b.WriteString(`<a href="` + src + `" target="_blank" rel="noopener"><img src="` + src + `" alt="Content" loading="lazy"></a>`)
			last = loc[1]
		}
		b.WriteString(template.HTMLEscapeString(line[last:]))
		b.WriteString("</p>\n")
	}
	return template.HTML(b.String())
}

// Excerpt returns the text of an HTML fragment cut to n runes.
func Excerpt(html template.HTML, n int) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	if err != nil {
		return ""
	}
	text := strings.Join(strings.Fields(doc.Text()), " ")
	if text == "" {
		return "No preview available"
	}
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n]) + "..."
}
