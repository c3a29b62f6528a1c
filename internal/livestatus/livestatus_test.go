package livestatus

import (
	"testing"
	"time"

	"github.com/arslanca/portfolio-web/internal/api"
)

var t0 = time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)

func codingStats() api.StatsResponse {
	return api.StatsResponse{
		IsCodingNow:                true,
		IDEName:                    "GoLand",
		ProjectName:                "portfolio-web",
		CurrentlyEditingFile:       "/home/dev/portfolio-web/internal/web/server.go",
		LastActiveTime:             "14:00:00",
		TotalSpentOnCurrentProject: "1 hr 59 mins 58 secs",
		TotalSpentOnAllProjects:    "3 hrs 10 mins",
	}
}

func TestTrackerTicks(t *testing.T) {
	var tr Tracker
	tr.Sync(codingStats(), t0)

	v := tr.At(t0)
	if !v.Online || v.Session != "1 hr 59 mins 58 secs" || v.Daily != "3 hrs 10 mins" {
		t.Fatalf("view at sync = %+v", v)
	}

	v = tr.At(t0.Add(2 * time.Second))
	if v.Session != "2 hrs" {
		t.Errorf("Session = %q, want %q", v.Session, "2 hrs")
	}
	if v.DailySeconds != 3*3600+10*60+2 {
		t.Errorf("DailySeconds = %d", v.DailySeconds)
	}

	// Clock going backwards never shrinks the counters.
	v = tr.At(t0.Add(-time.Minute))
	if v.SessionSeconds != 7198 {
		t.Errorf("SessionSeconds = %d, want 7198", v.SessionSeconds)
	}
}

func TestTrackerOffline(t *testing.T) {
	var tr Tracker
	if v := tr.At(t0); v.Online {
		t.Error("unsynced tracker reports online")
	}

	stats := codingStats()
	stats.IsCodingNow = false
	tr.Sync(stats, t0)
	if v := tr.At(t0.Add(time.Hour)); v.Online || v.Session != "" {
		t.Errorf("offline view = %+v", v)
	}
}

func TestTrackerReset(t *testing.T) {
	var tr Tracker
	tr.Sync(codingStats(), t0)
	tr.Reset()
	if v := tr.At(t0); v.Online {
		t.Error("reset tracker reports online")
	}
}

func TestSnapshotEmptyDurations(t *testing.T) {
	v := Snapshot(api.StatsResponse{IsCodingNow: true, ProjectName: "x"})
	if v.Session != "0 secs" || v.Daily != "0 mins" {
		t.Errorf("view = %+v", v)
	}
}

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"":                               "Unknown",
		"main.go":                        "main.go",
		"/srv/app/cmd/serve.go":          "serve.go",
		`C:\Users\dev\project\Main.java`: "Main.java",
	}
	for in, want := range tests {
		if got := FileName(in); got != want {
			t.Errorf("FileName(%q) = %q, want %q", in, got, want)
		}
	}
}
