// Package livestatus models the "currently coding" badge: a WakaTime
// snapshot whose counters keep running while the owner is active.
package livestatus

import (
	"path"
	"strings"
	"sync"
	"time"

	"github.com/arslanca/portfolio-web/internal/api"
	"github.com/arslanca/portfolio-web/internal/duration"
)

const (
	// ResyncInterval is how often a watcher refetches the snapshot.
	ResyncInterval = 5 * time.Minute
	// TickInterval is how often a watcher redraws the running counters.
	TickInterval = time.Second
)

// View is what the badge renders at a given instant.
type View struct {
	Online     bool
	Project    string
	IDE        string
	File       string
	LastActive string

	SessionSeconds int
	DailySeconds   int
	// Session includes seconds, Daily does not.
	Session string
	Daily   string
}

// Tracker holds the last synced snapshot. It is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	stats    api.StatsResponse
	synced   bool
	syncedAt time.Time
	session  int
	daily    int
}

// Sync replaces the snapshot with stats fetched at now.
func (t *Tracker) Sync(stats api.StatsResponse, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats = stats
	t.synced = true
	t.syncedAt = now
	t.session = duration.Parse(stats.TotalSpentOnCurrentProject)
	t.daily = duration.Parse(stats.TotalSpentOnAllProjects)
}

// Reset drops the snapshot, e.g. after a failed fetch.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats = api.StatsResponse{}
	t.synced = false
	t.syncedAt = time.Time{}
	t.session, t.daily = 0, 0
}

// At returns the view at now. While the owner is coding both counters grow
// by the whole seconds elapsed since the last sync.
func (t *Tracker) At(now time.Time) View {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.synced || !t.stats.IsCodingNow {
		return View{}
	}

	elapsed := 0
	if now.After(t.syncedAt) {
		elapsed = int(now.Sub(t.syncedAt) / time.Second)
	}
	session := t.session + elapsed
	daily := t.daily + elapsed

	return View{
		Online:         true,
		Project:        t.stats.ProjectName,
		IDE:            t.stats.IDEName,
		File:           FileName(t.stats.CurrentlyEditingFile),
		LastActive:     t.stats.LastActiveTime,
		SessionSeconds: session,
		DailySeconds:   daily,
		Session:        duration.Format(session, true),
		Daily:          duration.Format(daily, false),
	}
}

// Snapshot builds a view straight from a response, as of the moment it was
// fetched.
func Snapshot(stats api.StatsResponse) View {
	var t Tracker
	now := time.Now()
	t.Sync(stats, now)
	return t.At(now)
}

// FileName strips directories from an editor path, handling both slash
// styles.
func FileName(p string) string {
	if p == "" {
		return "Unknown"
	}
	return path.Base(strings.ReplaceAll(p, `\`, "/"))
}
