package api

import (
	"encoding/json"

	"github.com/arslanca/portfolio-web/internal/contrib"
)

// ContributionsResponse is the backend's view of the GitHub contribution
// calendar: a flat, chronologically ordered list of days.
type ContributionsResponse struct {
	TotalContributions int           `json:"totalContributions"`
	Days               []contrib.Day `json:"days"`
}

// StatsResponse is the WakaTime status of the site owner. Durations are
// human readable strings such as "3 hrs 12 mins".
type StatsResponse struct {
	IsCodingNow                bool   `json:"isCodingNow"`
	IDEName                    string `json:"ideName"`
	ProjectName                string `json:"projectName"`
	CurrentlyEditingFile       string `json:"currentlyEditingFile"`
	LastActiveTime             string `json:"lastActiveTime"`
	TotalSpentOnCurrentProject string `json:"totalSpentOnCurrentProject"`
	TotalSpentOnAllProjects    string `json:"totalSpentOnAllProjects"`
}

// Repo is a public GitHub repository of the site owner. The backend sends
// the star count either as a number or as a numeric string.
type Repo struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	URL         string      `json:"html_url"`
	Stars       json.Number `json:"stargazers_count"`
	Language    string      `json:"language"`
}

// PinnedProject is a manually curated project shown above the GitHub list.
type PinnedProject struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	GithubURL   string   `json:"githubUrl,omitempty"`
}

// PinnedProjectRequest creates or updates a pinned project.
type PinnedProjectRequest struct {
	Title       string   `json:"title" validate:"notblank"`
	Description string   `json:"description" validate:"notblank"`
	Tags        []string `json:"tags"`
	GithubURL   string   `json:"githubUrl,omitempty"`
}

// BlogPost is a single post. CreatedDate is an ISO calendar date.
type BlogPost struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	CreatedDate string `json:"createdDate"`
}

// BlogRequest creates or updates a post.
type BlogRequest struct {
	Title   string `json:"title" validate:"notblank,min=5,max=250"`
	Content string `json:"content" validate:"notblank,min=1,max=2000"`
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Content       []T  `json:"content"`
	TotalPages    int  `json:"totalPages"`
	TotalElements int  `json:"totalElements"`
	Size          int  `json:"size"`
	Number        int  `json:"number"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
	Empty         bool `json:"empty"`
}

// SystemState describes the incident the quiz scenario is about.
type SystemState struct {
	CPULoad     int `json:"cpuLoad"`
	Latency     int `json:"latency"`
	MemoryUsage int `json:"memoryUsage"`
}

// ScenarioOption is one answer to a quiz scenario.
type ScenarioOption struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Scenario is a quiz question.
type Scenario struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	SystemState SystemState      `json:"systemState"`
	Options     []ScenarioOption `json:"options"`
}

// VerifyRequest submits an answer.
type VerifyRequest struct {
	ScenarioID       string `json:"scenarioId"`
	SelectedOptionID string `json:"selectedOptionId"`
}

// VerifyResult is the backend's verdict. UserLevel is SENIOR, MID or JUNIOR.
type VerifyResult struct {
	Success      bool   `json:"success"`
	UserLevel    string `json:"userLevel"`
	Message      string `json:"message"`
	RedirectPath string `json:"redirectPath"`
}

// MailRequest is a contact form submission.
type MailRequest struct {
	SenderEmail string `json:"senderEmail" validate:"required,email"`
	Subject     string `json:"subject" validate:"notblank,min=5,max=100"`
	Message     string `json:"message" validate:"notblank,min=5,max=500"`
}

// SiteConfig carries the owner's GitHub identity.
type SiteConfig struct {
	GithubProfileURL string `json:"githubProfileUrl"`
	GithubUsername   string `json:"githubUsername"`
}

// FallbackSiteConfig is used when the backend cannot provide a config.
var FallbackSiteConfig = SiteConfig{
	GithubProfileURL: "https://github.com",
	GithubUsername:   "param-error",
}
