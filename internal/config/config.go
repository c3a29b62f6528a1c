// Package config loads the site configuration from an optional YAML file and
// the environment. Environment variables win over the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Visits  VisitsConfig  `yaml:"visits"`
	Site    SiteConfig    `yaml:"site"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`
	// Mode is the gin mode: debug, release or test.
	Mode string `yaml:"mode"`
}

// BackendConfig points at the portfolio API.
type BackendConfig struct {
	// BaseURL is the API root, e.g. "http://localhost:8081/api".
	BaseURL string `yaml:"base_url"`
	// Token is an optional bearer token sent with every request.
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// VisitsConfig controls the page-view log.
type VisitsConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
	// Salt is mixed into visitor hashes. A random salt is generated when empty,
	// in which case hashes are not stable across restarts.
	Salt            string `yaml:"salt"`
	RetentionMonths int    `yaml:"retention_months"`
}

// SiteConfig holds presentation settings.
type SiteConfig struct {
	Title   string `yaml:"title"`
	Author  string `yaml:"author"`
	Email   string `yaml:"email"`
	BaseURL string `yaml:"base_url"`
}

const (
	DefaultAddr            = ":8080"
	DefaultBackendURL      = "http://localhost:8081/api"
	DefaultBackendTimeout  = 10 * time.Second
	DefaultRetentionMonths = 12
	DefaultTitle           = "Developer Portfolio"
)

// Default returns a Config with every field set to its default.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr: DefaultAddr,
			Mode: "release",
		},
		Backend: BackendConfig{
			BaseURL: DefaultBackendURL,
			Timeout: DefaultBackendTimeout,
		},
		Visits: VisitsConfig{
			Enabled:         true,
			DBPath:          defaultDBPath(),
			RetentionMonths: DefaultRetentionMonths,
		},
		Site: SiteConfig{
			Title:   DefaultTitle,
			BaseURL: "http://localhost:8080",
		},
	}
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "visits.db"
	}
	return filepath.Join(dir, "portfolio-web", "visits.db")
}

// Load reads the YAML file at path, if any, then applies environment
// overrides. A missing file is not an error; an unreadable or malformed one
// is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(expandHome(path))
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		c.Server.Addr = ":" + strings.TrimPrefix(v, ":")
	}
	if v, ok := lookup("GIN_MODE"); ok && v != "" {
		c.Server.Mode = v
	}
	if v, ok := lookup("BACKEND_URL"); ok && v != "" {
		c.Backend.BaseURL = v
	}
	if v, ok := lookup("BACKEND_TOKEN"); ok {
		c.Backend.Token = v
	}
	if v, ok := lookup("BACKEND_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("BACKEND_TIMEOUT: %w", err)
		}
		c.Backend.Timeout = d
	}
	if v, ok := lookup("VISITS_ENABLED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("VISITS_ENABLED: %w", err)
		}
		c.Visits.Enabled = b
	}
	if v, ok := lookup("VISITS_DB"); ok && v != "" {
		c.Visits.DBPath = v
	}
	if v, ok := lookup("VISITS_SALT"); ok {
		c.Visits.Salt = v
	}
	if v, ok := lookup("SITE_BASE_URL"); ok && v != "" {
		c.Site.BaseURL = v
	}
	return nil
}

// fillDefaults restores defaults for fields a partial file left empty.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = def.Backend.BaseURL
	}
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = def.Backend.Timeout
	}
	if c.Visits.DBPath == "" {
		c.Visits.DBPath = def.Visits.DBPath
	}
	c.Visits.DBPath = expandHome(c.Visits.DBPath)
	if c.Visits.RetentionMonths <= 0 {
		c.Visits.RetentionMonths = def.Visits.RetentionMonths
	}
	if c.Site.Title == "" {
		c.Site.Title = def.Site.Title
	}
	c.Site.BaseURL = strings.TrimRight(c.Site.BaseURL, "/")
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return strings.Replace(path, "~", home, 1)
}
