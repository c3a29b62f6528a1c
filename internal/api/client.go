// Package api is a thin client for the portfolio backend. The backend owns
// persistence, authentication and quiz scoring; this package only issues
// requests and decodes responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// DefaultTimeout bounds a single backend request.
const DefaultTimeout = 10 * time.Second

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Client talks to the backend API rooted at a base URL such as
// "http://localhost:8081/api".
type Client struct {
	baseURL string
	// httpClient carries the service token, if any.
	httpClient *http.Client
	// adminClient is used for calls that forward the caller's own
	// Authorization header.
	adminClient *http.Client
}

// NewClient creates a client. A non-empty token is sent as a bearer token on
// every request that does not carry its own Authorization header.
func NewClient(ctx context.Context, baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	plain := &http.Client{Timeout: timeout}
	hc := plain
	if token != "" {
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
			TokenType:   "Bearer",
		}))
		hc.Timeout = timeout
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  hc,
		adminClient: plain,
	}
}

// BaseURL returns the backend root the client was created with.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) do(ctx context.Context, method, path string, query url.Values, authHeader string, in, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hc := c.httpClient
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
		hc = c.adminClient
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("backend %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func pageQuery(pageNo, pageSize int) url.Values {
	if pageNo < 1 {
		pageNo = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return url.Values{
		"pageNo":   {strconv.Itoa(pageNo)},
		"pageSize": {strconv.Itoa(pageSize)},
	}
}

// Contributions fetches the owner's GitHub contribution days.
func (c *Client) Contributions(ctx context.Context) (*ContributionsResponse, error) {
	var out ContributionsResponse
	if err := c.do(ctx, http.MethodGet, "/github/contributions", nil, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentStats fetches the live WakaTime status.
func (c *Client) CurrentStats(ctx context.Context) (*StatsResponse, error) {
	var out StatsResponse
	if err := c.do(ctx, http.MethodGet, "/stats/current", nil, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Projects fetches one page of GitHub repositories, most recently updated
// first. Pages are 1-based.
func (c *Client) Projects(ctx context.Context, pageNo, pageSize int) ([]Repo, error) {
	var out []Repo
	if err := c.do(ctx, http.MethodGet, "/projects", pageQuery(pageNo, pageSize), "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PinnedProjects fetches the curated project list.
func (c *Client) PinnedProjects(ctx context.Context) ([]PinnedProject, error) {
	var out []PinnedProject
	if err := c.do(ctx, http.MethodGet, "/pinned-projects", nil, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddPinnedProject creates a pinned project.
func (c *Client) AddPinnedProject(ctx context.Context, req PinnedProjectRequest, authHeader string) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/pinned-projects/admin/add", nil, authHeader, req, nil)
}

// UpdatePinnedProject replaces the fields of a pinned project.
func (c *Client) UpdatePinnedProject(ctx context.Context, id int64, req PinnedProjectRequest, authHeader string) error {
	path := "/pinned-projects/admin/update/" + strconv.FormatInt(id, 10)
	return c.do(ctx, http.MethodPut, path, nil, authHeader, req, nil)
}

// DeletePinnedProject removes a pinned project.
func (c *Client) DeletePinnedProject(ctx context.Context, id int64, authHeader string) error {
	path := "/pinned-projects/admin/delete/" + strconv.FormatInt(id, 10)
	return c.do(ctx, http.MethodDelete, path, nil, authHeader, nil, nil)
}

// Blogs fetches one page of posts. Pages are 1-based.
func (c *Client) Blogs(ctx context.Context, pageNo, pageSize int) (*Page[BlogPost], error) {
	var out Page[BlogPost]
	if err := c.do(ctx, http.MethodGet, "/blogs", pageQuery(pageNo, pageSize), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddBlog publishes a post.
func (c *Client) AddBlog(ctx context.Context, req BlogRequest, authHeader string) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/blogs", nil, authHeader, req, nil)
}

// UpdateBlog replaces a post's title and content.
func (c *Client) UpdateBlog(ctx context.Context, id int, req BlogRequest, authHeader string) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, "/blogs/"+strconv.Itoa(id), nil, authHeader, req, nil)
}

// DeleteBlog removes a post.
func (c *Client) DeleteBlog(ctx context.Context, id int, authHeader string) error {
	return c.do(ctx, http.MethodDelete, "/blogs/"+strconv.Itoa(id), nil, authHeader, nil, nil)
}

// RandomScenario fetches a quiz scenario.
func (c *Client) RandomScenario(ctx context.Context) (*Scenario, error) {
	var out Scenario
	if err := c.do(ctx, http.MethodGet, "/simulation/random", nil, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyScenario submits the chosen answer and returns the visitor's tier.
func (c *Client) VerifyScenario(ctx context.Context, req VerifyRequest) (*VerifyResult, error) {
	var out VerifyResult
	if err := c.do(ctx, http.MethodPost, "/simulation/verify", nil, "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMessage relays a contact form submission.
func (c *Client) SendMessage(ctx context.Context, req MailRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/contact", nil, "", req, nil)
}

// SiteConfig fetches the owner's GitHub identity.
func (c *Client) SiteConfig(ctx context.Context) (*SiteConfig, error) {
	var out SiteConfig
	if err := c.do(ctx, http.MethodGet, "/config", nil, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyAdmin checks an Authorization header value against the backend.
func (c *Client) VerifyAdmin(ctx context.Context, authHeader string) error {
	if authHeader == "" {
		return &StatusError{Method: http.MethodGet, Path: "/admin/verify", Code: http.StatusUnauthorized, Body: "missing credentials"}
	}
	return c.do(ctx, http.MethodGet, "/admin/verify", nil, authHeader, nil, nil)
}
