// Package quiz maps the backend's verdict on the diagnostic quiz to the
// role a visitor browses the site with.
package quiz

import "strings"

// Role is the visitor tier kept for the rest of the visit.
type Role string

const (
	RoleNone    Role = ""
	RoleMaster  Role = "master"
	RoleLearner Role = "learner"
	RoleVisitor Role = "visitor"
)

// Page is where a visitor lands after the quiz.
type Page string

const (
	PageHome Page = "home"
	PageBlog Page = "blog"
)

// Path returns the URL path of p.
func (p Page) Path() string {
	if p == PageBlog {
		return "/blog"
	}
	return "/"
}

// Outcome is the role assigned by the quiz and the page to go to next.
type Outcome struct {
	Role Role
	Page Page
}

// Skipped is the outcome for visitors who dismiss the quiz or whose answer
// could not be verified.
var Skipped = Outcome{Role: RoleVisitor, Page: PageHome}

// Classify maps a backend user level (SENIOR, MID, JUNIOR) to an outcome.
func Classify(userLevel string) Outcome {
	switch strings.ToUpper(strings.TrimSpace(userLevel)) {
	case "SENIOR":
		return Outcome{Role: RoleMaster, Page: PageHome}
	case "MID", "JUNIOR":
		return Outcome{Role: RoleLearner, Page: PageBlog}
	default:
		return Skipped
	}
}

// ParseRole validates a stored role; unknown values yield RoleNone.
func ParseRole(s string) Role {
	switch r := Role(s); r {
	case RoleMaster, RoleLearner, RoleVisitor:
		return r
	}
	return RoleNone
}

// ShouldAsk reports whether the quiz gate is shown on path for a visitor
// holding role. Admin pages are never gated.
func ShouldAsk(role Role, path string) bool {
	return role == RoleNone && !strings.HasPrefix(path, "/admin")
}

// Welcome returns the banner shown to role on page, if any.
func Welcome(role Role, page Page) (title, body string, ok bool) {
	switch {
	case role == RoleVisitor && page == PageHome:
		return "Welcome", "Enjoy the simplified view.", true
	case role == RoleLearner && page == PageBlog:
		return "Keep Going!", "Learning is a journey. Here are some resources for you.", true
	}
	return "", "", false
}
