// Package web serves the portfolio pages. Every page is rendered from data
// fetched from the backend API on each request.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/arslanca/portfolio-web/internal/api"
	"github.com/arslanca/portfolio-web/internal/config"
	"github.com/arslanca/portfolio-web/internal/contrib"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	readTimeout     = 5 * time.Second
	writeTimeout    = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Backend is the part of the API client the pages use.
type Backend interface {
	Contributions(ctx context.Context) (*api.ContributionsResponse, error)
	CurrentStats(ctx context.Context) (*api.StatsResponse, error)
	Projects(ctx context.Context, pageNo, pageSize int) ([]api.Repo, error)
	PinnedProjects(ctx context.Context) ([]api.PinnedProject, error)
	Blogs(ctx context.Context, pageNo, pageSize int) (*api.Page[api.BlogPost], error)
	RandomScenario(ctx context.Context) (*api.Scenario, error)
	VerifyScenario(ctx context.Context, req api.VerifyRequest) (*api.VerifyResult, error)
	SendMessage(ctx context.Context, req api.MailRequest) error
	SiteConfig(ctx context.Context) (*api.SiteConfig, error)
	VerifyAdmin(ctx context.Context, authHeader string) error
}

// Server is the portfolio front-end.
type Server struct {
	backend Backend
	visits  VisitLog
	site    config.SiteConfig
	log     *slog.Logger
	engine  *gin.Engine
}

// New builds the server and its routes. vl may be nil to disable the visit
// log.
func New(backend Backend, vl VisitLog, site config.SiteConfig, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{backend: backend, visits: vl, site: site, log: log}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static files: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))
	if vl != nil {
		r.Use(visitTracking(vl, log))
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(static))

	s.routes(r)
	s.engine = r
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/", s.home)
	r.GET("/projects", s.projects)
	r.GET("/blog", s.blog)
	r.GET("/feed.xml", s.feed)
	r.GET("/activity", s.activity)
	r.GET("/status", s.status)

	r.GET("/quiz", s.quizPage)
	r.POST("/quiz/verify", s.quizVerify)
	r.POST("/quiz/skip", s.quizSkip)

	// HTMX contact form, returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{"title": "Contact Me"})
	})
	r.POST("/contact", s.contact)

	r.GET("/api/config", s.siteConfig)
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", s.page(c, "", gin.H{"title": "Privacy Policy"}))
	})

	// Visit statistics are for the site owner only
	r.GET("/api/visits", s.requireAdmin(), s.visitSummary)
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.NoRoute(s.fallback)
}

// fallback forwards extension-less page paths to the home page so deep
// links keep working; everything else is a 404.
func (s *Server) fallback(c *gin.Context) {
	path := c.Request.URL.Path
	if c.Request.Method == http.MethodGet &&
		!strings.HasPrefix(path, "/api") &&
		!strings.Contains(path, ".") {
		s.home(c)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

var templateFuncs = template.FuncMap{
	"levelClass": func(l contrib.Level) string {
		return fmt.Sprintf("level-%d", l)
	},
	"comma": func(n int) string {
		return humanize.Comma(int64(n))
	},
	"ago": func(date string) string {
		t, ok := contrib.ParseDate(date)
		if !ok {
			return date
		}
		return humanize.Time(t)
	},
	"inc": func(n int) int { return n + 1 },
	"dec": func(n int) int { return n - 1 },
}
