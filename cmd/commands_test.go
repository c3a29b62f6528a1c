package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arslanca/portfolio-web/internal/api"
	"github.com/arslanca/portfolio-web/internal/visits"
)

func init() {
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// execute runs the root command with args and a config path that does not
// exist, so only defaults and the environment apply.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	err := rootCmd.Execute()
	return out.String(), err
}

// backend serves handler under /api and points BACKEND_URL at it.
func backend(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle("/api/", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	t.Setenv("BACKEND_URL", srv.URL+"/api")
	t.Setenv("BACKEND_TOKEN", "")
}

func TestActivityCommand(t *testing.T) {
	backend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/github/contributions" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, `{"totalContributions":1005,"days":[
			{"date":"2023-06-01","count":1000,"level":4},
			{"date":"2024-01-02","count":5,"level":"FIRST_QUARTILE"}]}`)
	})

	out, err := execute(t, "", "activity", "--year", "2023")
	if err != nil {
		t.Fatalf("activity: %v", err)
	}
	for _, want := range []string{"2023 (1,000)", "2024 (5)", "1,000 contributions", "Jun"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
}

func TestActivityCommandBackendError(t *testing.T) {
	backend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := execute(t, "", "activity", "--year", "0")
	var se *api.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusInternalServerError {
		t.Errorf("err = %v, want a 500 StatusError", err)
	}
}

func TestStatusCommand(t *testing.T) {
	backend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.StatsResponse{
			IsCodingNow:                true,
			ProjectName:                "folio",
			IDEName:                    "GoLand",
			CurrentlyEditingFile:       `C:\src\folio\main.go`,
			TotalSpentOnCurrentProject: "2 mins",
			TotalSpentOnAllProjects:    "1 hr",
		})
	})

	out, err := execute(t, "", "status", "--watch=false")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, want := range []string{"folio", "GoLand", "main.go", "1 hr"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
}

type countingStats struct {
	calls atomic.Int32
	fail  bool
}

func (c *countingStats) CurrentStats(context.Context) (*api.StatsResponse, error) {
	c.calls.Add(1)
	if c.fail {
		return nil, errors.New("unreachable")
	}
	return &api.StatsResponse{IsCodingNow: true, ProjectName: "folio", TotalSpentOnCurrentProject: "1 min"}, nil
}

func TestWatchStatus(t *testing.T) {
	src := &countingStats{}
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	if err := watchStatus(ctx, src, &out, 40*time.Millisecond, 10*time.Millisecond); err != nil {
		t.Fatalf("watchStatus: %v", err)
	}
	if n := src.calls.Load(); n < 2 {
		t.Errorf("fetched %d times, want at least 2", n)
	}
	if !strings.Contains(out.String(), "folio") {
		t.Errorf("output does not show the project:\n%s", out.String())
	}
}

func TestWatchStatusOffline(t *testing.T) {
	src := &countingStats{fail: true}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	if err := watchStatus(ctx, src, &out, time.Hour, 10*time.Millisecond); err != nil {
		t.Fatalf("watchStatus: %v", err)
	}
	if !strings.Contains(out.String(), "Offline") {
		t.Errorf("got\n%s", out.String())
	}
}

type fakeQuiz struct {
	level     string
	verifyErr error
	verified  []api.VerifyRequest
}

func (f *fakeQuiz) RandomScenario(context.Context) (*api.Scenario, error) {
	return &api.Scenario{
		ID:          "cache",
		Title:       "Cache stampede",
		SystemState: api.SystemState{CPULoad: 90, Latency: 800, MemoryUsage: 256},
		Options:     []api.ScenarioOption{{ID: "a", Title: "Add a lock"}},
	}, nil
}

func (f *fakeQuiz) VerifyScenario(_ context.Context, req api.VerifyRequest) (*api.VerifyResult, error) {
	f.verified = append(f.verified, req)
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return &api.VerifyResult{Success: true, UserLevel: f.level}, nil
}

func TestRunQuiz(t *testing.T) {
	pick := func(id string) chooser {
		return func(context.Context, *api.Scenario) (string, error) { return id, nil }
	}

	tests := []struct {
		name       string
		backend    *fakeQuiz
		choose     chooser
		want       string
		wantVerify int
	}{
		{"senior", &fakeQuiz{level: "SENIOR"}, pick("a"), "Role: master, continue at /", 1},
		{"junior", &fakeQuiz{level: "JUNIOR"}, pick("a"), "Role: learner, continue at /blog", 1},
		{"skip", &fakeQuiz{level: "SENIOR"}, pick(skipOption), "Role: visitor, continue at /", 0},
		{"verify fails", &fakeQuiz{verifyErr: errors.New("down")}, pick("a"), "Role: visitor, continue at /", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := runQuiz(context.Background(), tt.backend, &out, tt.choose); err != nil {
				t.Fatalf("runQuiz: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("got\n%s\nwant %q", out.String(), tt.want)
			}
			if !strings.Contains(out.String(), "Cache stampede") {
				t.Error("scenario title not shown")
			}
			if len(tt.backend.verified) != tt.wantVerify {
				t.Errorf("verify calls = %d, want %d", len(tt.backend.verified), tt.wantVerify)
			}
		})
	}
}

func TestVisitsCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "visits.db")
	t.Setenv("VISITS_ENABLED", "true")
	t.Setenv("VISITS_DB", dbPath)
	t.Setenv("VISITS_SALT", "pepper")

	store, err := visits.Open(dbPath, "pepper")
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"/", "/blog", "/blog"} {
		if err := store.Record(context.Background(), "198.51.100.4", "test", p); err != nil {
			t.Fatal(err)
		}
	}
	store.Close()

	out, err := execute(t, "", "visits", "--recent", "2", "--prune=false")
	if err != nil {
		t.Fatalf("visits: %v", err)
	}
	for _, want := range []string{"Total      3", "Unique     1", "/blog", "Top pages"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
}

func TestAdminBlogAdd(t *testing.T) {
	var gotAuth string
	var got api.BlogRequest
	backend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/blogs" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	})

	out, err := execute(t, "First line\nsecond line", "admin", "blog", "add", "--title", "Hello world", "--auth", "Basic abc")
	if err != nil {
		t.Fatalf("blog add: %v", err)
	}
	if gotAuth != "Basic abc" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if got.Title != "Hello world" || got.Content != "First line\nsecond line" {
		t.Errorf("request = %+v", got)
	}
	if !strings.Contains(out, `Published "Hello world"`) {
		t.Errorf("out = %q", out)
	}
}

func TestAdminPinDelete(t *testing.T) {
	var gotPath string
	backend(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
	})

	if _, err := execute(t, "", "admin", "pin", "delete", "42", "--auth", "Basic abc"); err != nil {
		t.Fatalf("pin delete: %v", err)
	}
	if gotPath != "DELETE /api/pinned-projects/admin/delete/42" {
		t.Errorf("request = %q", gotPath)
	}

	if _, err := execute(t, "", "admin", "pin", "delete", "x", "--auth", "Basic abc"); err == nil {
		t.Error("expected an error for a non-numeric id")
	}
}
