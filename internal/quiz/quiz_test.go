package quiz

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		level string
		want  Outcome
	}{
		{"SENIOR", Outcome{RoleMaster, PageHome}},
		{"senior", Outcome{RoleMaster, PageHome}},
		{"MID", Outcome{RoleLearner, PageBlog}},
		{"JUNIOR", Outcome{RoleLearner, PageBlog}},
		{"", Skipped},
		{"INTERN", Skipped},
	}
	for _, tt := range tests {
		if got := Classify(tt.level); got != tt.want {
			t.Errorf("Classify(%q) = %+v, want %+v", tt.level, got, tt.want)
		}
	}
}

func TestShouldAsk(t *testing.T) {
	tests := []struct {
		role Role
		path string
		want bool
	}{
		{RoleNone, "/", true},
		{RoleNone, "/blog", true},
		{RoleNone, "/admin/login", false},
		{RoleVisitor, "/", false},
		{ParseRole("hacker"), "/", true},
	}
	for _, tt := range tests {
		if got := ShouldAsk(tt.role, tt.path); got != tt.want {
			t.Errorf("ShouldAsk(%q, %q) = %v, want %v", tt.role, tt.path, got, tt.want)
		}
	}
}

func TestWelcome(t *testing.T) {
	if _, body, ok := Welcome(RoleVisitor, PageHome); !ok || body != "Enjoy the simplified view." {
		t.Errorf("visitor home welcome = %q, %v", body, ok)
	}
	if title, _, ok := Welcome(RoleLearner, PageBlog); !ok || title != "Keep Going!" {
		t.Errorf("learner blog welcome = %q, %v", title, ok)
	}
	if _, _, ok := Welcome(RoleMaster, PageHome); ok {
		t.Error("master got a welcome banner")
	}
}

func TestPagePath(t *testing.T) {
	if PageBlog.Path() != "/blog" || PageHome.Path() != "/" {
		t.Errorf("paths = %q, %q", PageBlog.Path(), PageHome.Path())
	}
}
