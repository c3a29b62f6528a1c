package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arslanca/portfolio-web/internal/api"
	"github.com/arslanca/portfolio-web/internal/visits"
)

// VisitLog records page views. *visits.Store implements it.
type VisitLog interface {
	Record(ctx context.Context, ip, userAgent, path string) error
	Summary(ctx context.Context) (*visits.Summary, error)
}

const requestIDKey = "request_id"

// requestLogger tags each request with an id and logs it once served.
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)

		start := time.Now()
		c.Next()

		log.Info("request",
			"id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// untrackedPrefixes are never logged as page views.
var untrackedPrefixes = []string{"/static/", "/api/", "/healthz", "/favicon", "/feed.xml", "/status", "/privacy"}

// visitTracking logs successful page views of routed pages, honouring Do
// Not Track. Paths served by the fallback are not logged.
func visitTracking(vl VisitLog, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != http.MethodGet || c.Writer.Status() >= 400 || c.FullPath() == "" {
			return
		}
		path := c.Request.URL.Path
		for _, p := range untrackedPrefixes {
			if strings.HasPrefix(path, p) {
				return
			}
		}
		if c.GetHeader("DNT") == "1" {
			return
		}

		if err := vl.Record(c.Request.Context(), c.ClientIP(), c.GetHeader("User-Agent"), path); err != nil {
			log.Warn("recording visit", "path", path, "err", err)
		}
	}
}

// requireAdmin lets a request through only when the backend accepts its
// Authorization header.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := s.backend.VerifyAdmin(c.Request.Context(), c.GetHeader("Authorization"))
		if err == nil {
			c.Next()
			return
		}

		var se *api.StatusError
		if errors.As(err, &se) {
			s.log.Warn("admin access denied", "path", c.Request.URL.Path, "status", se.Code)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		s.log.Error("verifying admin credentials", "err", err)
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Cannot verify credentials"})
	}
}
