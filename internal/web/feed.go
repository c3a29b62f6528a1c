package web

import (
	"fmt"
	"time"

	"github.com/gorilla/feeds"

	"github.com/arslanca/portfolio-web/internal/api"
	"github.com/arslanca/portfolio-web/internal/contrib"
)

const feedExcerptLength = 280

// blogFeed builds the RSS feed for a page of posts.
func (s *Server) blogFeed(posts []api.BlogPost, now time.Time) (string, error) {
	feed := &feeds.Feed{
		Title:       s.site.Title + " - Blog",
		Link:        &feeds.Link{Href: s.site.BaseURL + "/blog"},
		Description: Headline + " " + Tagline,
		Created:     now,
	}
	if s.site.Author != "" {
		feed.Author = &feeds.Author{Name: s.site.Author, Email: s.site.Email}
	}

	for _, p := range posts {
		created := now
		if t, ok := contrib.ParseDate(p.CreatedDate); ok {
			created = t
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          fmt.Sprintf("%s/blog#post-%d", s.site.BaseURL, p.ID),
			Title:       p.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/blog#post-%d", s.site.BaseURL, p.ID)},
			Description: Excerpt(RenderContent(p.Content), feedExcerptLength),
			Created:     created,
		})
	}
	return feed.ToRss()
}
