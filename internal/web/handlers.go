package web

import (
	"errors"
	"html/template"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arslanca/portfolio-web/internal/api"
	"github.com/arslanca/portfolio-web/internal/contrib"
	"github.com/arslanca/portfolio-web/internal/livestatus"
	"github.com/arslanca/portfolio-web/internal/quiz"
)

const (
	projectsPageSize = 6
	blogPageSize     = 10
	excerptLength    = 150
	roleCookie       = "role"
	roleCookieMaxAge = 365 * 24 * 3600
)

var dayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func (s *Server) role(c *gin.Context) quiz.Role {
	v, err := c.Cookie(roleCookie)
	if err != nil {
		return quiz.RoleNone
	}
	return quiz.ParseRole(v)
}

func (s *Server) setRole(c *gin.Context, r quiz.Role) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(roleCookie, string(r), roleCookieMaxAge, "/", "", false, true)
}

// page fills the fields every layout needs.
func (s *Server) page(c *gin.Context, current quiz.Page, data gin.H) gin.H {
	role := s.role(c)
	data["site"] = s.site
	data["role"] = string(role)
	data["showQuiz"] = quiz.ShouldAsk(role, c.Request.URL.Path)
	if title, body, ok := quiz.Welcome(role, current); ok {
		data["welcome"] = gin.H{"title": title, "body": body}
	}
	return data
}

func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return def
	}
	return n
}

func (s *Server) home(c *gin.Context) {
	ctx := c.Request.Context()
	data := gin.H{
		"headline":  Headline,
		"tagline":   Tagline,
		"about":     AboutMe,
		"techStack": TechStack,
		"status":    livestatus.View{},
	}

	if stats, err := s.backend.CurrentStats(ctx); err != nil {
		s.log.Warn("fetching live status", "err", err)
	} else {
		data["status"] = livestatus.Snapshot(*stats)
	}

	if resp, err := s.backend.Contributions(ctx); err != nil {
		s.log.Warn("fetching contributions", "err", err)
	} else if y, ok := contrib.Select(contrib.GroupByYear(resp.Days), 0); ok {
		data["latestYear"] = y
	}

	c.HTML(http.StatusOK, "home.html", s.page(c, quiz.PageHome, data))
}

func (s *Server) status(c *gin.Context) {
	view := livestatus.View{}
	if stats, err := s.backend.CurrentStats(c.Request.Context()); err != nil {
		s.log.Warn("fetching live status", "err", err)
	} else {
		view = livestatus.Snapshot(*stats)
	}
	c.HTML(http.StatusOK, "status.html", gin.H{"status": view})
}

func (s *Server) projects(c *gin.Context) {
	ctx := c.Request.Context()
	pageNo := queryInt(c, "page", 1)
	data := gin.H{"page": pageNo}

	repos, err := s.backend.Projects(ctx, pageNo, projectsPageSize)
	if err != nil {
		s.log.Warn("fetching projects", "page", pageNo, "err", err)
		data["reposError"] = "Failed to fetch projects"
	} else {
		data["repos"] = repos
		// A short page means there is nothing after it.
		data["hasMore"] = len(repos) == projectsPageSize
	}

	pinned, err := s.backend.PinnedProjects(ctx)
	if err != nil {
		s.log.Warn("fetching pinned projects", "err", err)
	} else {
		data["pinned"] = pinned
	}

	c.HTML(http.StatusOK, "projects.html", s.page(c, "", data))
}

type postView struct {
	api.BlogPost
	Excerpt string
	Body    template.HTML
}

func (s *Server) blog(c *gin.Context) {
	pageNo := queryInt(c, "page", 1)
	order := c.DefaultQuery("sort", "newest")
	if order != "oldest" {
		order = "newest"
	}
	data := gin.H{"page": pageNo, "sort": order}

	page, err := s.backend.Blogs(c.Request.Context(), pageNo, blogPageSize)
	if err != nil {
		s.log.Warn("fetching blog posts", "page", pageNo, "err", err)
		data["error"] = "Failed to fetch blog posts"
		c.HTML(http.StatusOK, "blog.html", s.page(c, quiz.PageBlog, data))
		return
	}

	posts := make([]postView, 0, len(page.Content))
	for _, p := range page.Content {
		body := RenderContent(p.Content)
		posts = append(posts, postView{BlogPost: p, Excerpt: Excerpt(body, excerptLength), Body: body})
	}
	sortPosts(posts, order)

	data["posts"] = posts
	data["totalPages"] = page.TotalPages
	data["hasPrev"] = pageNo > 1
	data["hasNext"] = pageNo < page.TotalPages
	c.HTML(http.StatusOK, "blog.html", s.page(c, quiz.PageBlog, data))
}

// sortPosts orders posts by creation date. Posts with unparseable dates sort
// as the oldest.
func sortPosts(posts []postView, order string) {
	at := func(p postView) time.Time {
		t, _ := contrib.ParseDate(p.CreatedDate)
		return t
	}
	sort.SliceStable(posts, func(i, j int) bool {
		if order == "oldest" {
			return at(posts[i]).Before(at(posts[j]))
		}
		return at(posts[i]).After(at(posts[j]))
	})
}

func (s *Server) feed(c *gin.Context) {
	page, err := s.backend.Blogs(c.Request.Context(), 1, 20)
	if err != nil {
		s.log.Error("building feed", "err", err)
		c.String(http.StatusBadGateway, "feed unavailable")
		return
	}
	rss, err := s.blogFeed(page.Content, time.Now())
	if err != nil {
		s.log.Error("encoding feed", "err", err)
		c.String(http.StatusInternalServerError, "feed unavailable")
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

func (s *Server) activity(c *gin.Context) {
	data := gin.H{"dayNames": dayNames}

	resp, err := s.backend.Contributions(c.Request.Context())
	if err != nil {
		// The section is hidden when there is nothing to show.
		s.log.Warn("fetching contributions", "err", err)
		c.HTML(http.StatusOK, "activity.html", s.page(c, "", data))
		return
	}

	years := contrib.GroupByYear(resp.Days)
	if selected, ok := contrib.Select(years, queryInt(c, "year", 0)); ok {
		weeks := selected.Weeks()
		data["years"] = years
		data["selected"] = selected
		data["weeks"] = weeks
		data["monthLabels"] = contrib.MonthLabels(weeks)
	}
	c.HTML(http.StatusOK, "activity.html", s.page(c, "", data))
}

func (s *Server) quizPage(c *gin.Context) {
	scenario, err := s.backend.RandomScenario(c.Request.Context())
	if err != nil {
		// No scenario, no gate.
		s.log.Warn("fetching quiz scenario", "err", err)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.HTML(http.StatusOK, "quiz.html", s.page(c, "", gin.H{"scenario": scenario}))
}

func (s *Server) quizVerify(c *gin.Context) {
	req := api.VerifyRequest{
		ScenarioID:       c.PostForm("scenarioId"),
		SelectedOptionID: c.PostForm("optionId"),
	}

	outcome := quiz.Skipped
	res, err := s.backend.VerifyScenario(c.Request.Context(), req)
	if err != nil {
		s.log.Warn("verifying quiz answer", "scenario", req.ScenarioID, "err", err)
	} else {
		outcome = quiz.Classify(res.UserLevel)
	}

	s.setRole(c, outcome.Role)
	c.Redirect(http.StatusSeeOther, outcome.Page.Path())
}

func (s *Server) quizSkip(c *gin.Context) {
	s.setRole(c, quiz.Skipped.Role)
	c.Redirect(http.StatusSeeOther, quiz.Skipped.Page.Path())
}

// Handle contact form submission with HTMX
func (s *Server) contact(c *gin.Context) {
	req := api.MailRequest{
		SenderEmail: c.PostForm("email"),
		Subject:     c.PostForm("subject"),
		Message:     c.PostForm("message"),
	}

	err := s.backend.SendMessage(c.Request.Context(), req)
	if err != nil {
		var ve *api.ValidationError
		msg := "Sorry, there was an error sending your message. Please try again later."
		if errors.As(err, &ve) {
			msg = "Please check your message: " + ve.Error() + "."
		} else {
			s.log.Error("sending contact message", "err", err)
		}
		c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": msg})
		return
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}

func (s *Server) siteConfig(c *gin.Context) {
	cfg, err := s.backend.SiteConfig(c.Request.Context())
	if err != nil {
		s.log.Warn("fetching site config", "err", err)
		c.JSON(http.StatusOK, api.FallbackSiteConfig)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) visitSummary(c *gin.Context) {
	if s.visits == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "visit log disabled"})
		return
	}
	sum, err := s.visits.Summary(c.Request.Context())
	if err != nil {
		s.log.Error("loading visit summary", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, sum)
}
