// Package visits keeps a privacy-conscious page-view log: visitors are
// stored as salted, truncated hashes and rows expire after a retention
// window.
package visits

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// timeLayout is how timestamps are stored; it sorts lexically.
const timeLayout = "2006-01-02T15:04:05Z"

// Visit is one recorded page view.
type Visit struct {
	ID        int64     `json:"id"`
	Visitor   string    `json:"visitor"`
	Path      string    `json:"path"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

// PathCount is the number of views of one path.
type PathCount struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

// Summary aggregates the log.
type Summary struct {
	TotalVisits    int64       `json:"total_visits"`
	UniqueVisitors int64       `json:"unique_visitors"`
	VisitsToday    int64       `json:"visits_today"`
	VisitsThisWeek int64       `json:"visits_this_week"`
	TopPaths       []PathCount `json:"top_paths"`
}

// Store is the SQLite-backed visit log.
type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

// Open opens (or creates) the database at dbPath. An empty salt is replaced
// by a random one.
func Open(dbPath, salt string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, p := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	if salt == "" {
		salt, err = randomSalt()
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &Store{db: db, salt: salt, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// OpenMemory opens an in-memory store for tests.
func OpenMemory(salt string) (*Store, error) {
	return Open(":memory:", salt)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func randomSalt() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= currentVersion {
		return nil
	}

	const ddl = `
	CREATE TABLE IF NOT EXISTS visits (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		visitor     TEXT NOT NULL,
		path        TEXT NOT NULL,
		user_agent  TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_visits_created ON visits(created_at);
	`
	if _, err := s.db.Exec(ddl); err != nil {
		return err
	}
	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

// HashVisitor returns the stored identity for an IP address: the first 16
// hex characters of SHA-256 over the address and the store's salt.
func (s *Store) HashVisitor(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Record logs a view of path by the client at ip.
func (s *Store) Record(ctx context.Context, ip, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visits (visitor, path, user_agent, created_at) VALUES (?, ?, ?, ?)`,
		s.HashVisitor(ip), path, userAgent, s.now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// Recent returns the latest visits, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, visitor, path, user_agent, created_at FROM visits ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	defer rows.Close()

	var out []Visit
	for rows.Next() {
		var v Visit
		var created string
		if err := rows.Scan(&v.ID, &v.Visitor, &v.Path, &v.UserAgent, &created); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		v.CreatedAt, _ = time.Parse(timeLayout, created)
		out = append(out, v)
	}
	return out, rows.Err()
}

// Summary aggregates the whole log. Day and week boundaries are UTC.
func (s *Store) Summary(ctx context.Context) (*Summary, error) {
	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.AddDate(0, 0, -7)

	sum := &Summary{}
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(DISTINCT visitor),
			COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0)
		FROM visits`,
		startOfDay.Format(timeLayout), weekAgo.Format(timeLayout),
	).Scan(&sum.TotalVisits, &sum.UniqueVisitors, &sum.VisitsToday, &sum.VisitsThisWeek)
	if err != nil {
		return nil, fmt.Errorf("summarize visits: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS views FROM visits
		GROUP BY path ORDER BY views DESC, path ASC LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("query top paths: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Views); err != nil {
			return nil, fmt.Errorf("scan top path: %w", err)
		}
		sum.TopPaths = append(sum.TopPaths, pc)
	}
	return sum, rows.Err()
}

// Prune deletes visits older than the given number of months and returns
// how many rows were removed.
func (s *Store) Prune(ctx context.Context, months int) (int64, error) {
	cutoff := s.now().UTC().AddDate(0, -months, 0)
	res, err := s.db.ExecContext(ctx, `DELETE FROM visits WHERE created_at < ?`, cutoff.Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("prune visits: %w", err)
	}
	return res.RowsAffected()
}
