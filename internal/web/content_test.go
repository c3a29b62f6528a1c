package web

import (
	"strings"
	"testing"
)

func TestRenderContent(t *testing.T) {
	got := string(RenderContent("Hello <world>\n\nSee https://cdn.example.com/a.PNG?w=2 here"))

	if !strings.Contains(got, "<p>Hello &lt;world&gt;</p>") {
		t.Errorf("text not escaped into a paragraph: %s", got)
	}
	if !strings.Contains(got, "<br>") {
		t.Errorf("blank line not rendered as a break: %s", got)
	}
	if !strings.Contains(got, `<img src="https://cdn.example.com/a.PNG?w=2"`) {
		t.Errorf("image link not inlined: %s", got)
	}
	if !strings.Contains(got, "<p>See ") || !strings.Contains(got, " here</p>") {
		t.Errorf("surrounding text lost: %s", got)
	}
}

func TestRenderContentKeepsPlainLinks(t *testing.T) {
	got := string(RenderContent("docs at https://example.com/page.html"))
	if strings.Contains(got, "<img") {
		t.Errorf("non-image link inlined: %s", got)
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"", 10, "No preview available"},
		{"short", 10, "short"},
		{"Hello <world>\nsecond line", 8, "Hello <w..."},
		{"çok güzel bir yazı", 4, "çok ..."},
	}
	for _, tt := range tests {
		if got := Excerpt(RenderContent(tt.in), tt.n); got != tt.want {
			t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
