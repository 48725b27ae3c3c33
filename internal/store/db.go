// Package store exports a built catalog: a SQLite snapshot keyed by build
// id, and a tidy one-row-per-entry CSV.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/cnucho/gptcatalog/internal/catalog"
)

//go:embed schema.sql
var schema string

// Config locates the snapshot database.
type Config struct {
	Path string
}

// Open opens (creating when needed) the SQLite database at cfg.Path and
// applies the schema.
func Open(cfg Config) (*sql.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps PRAGMAs applied to every statement.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma foreign_keys: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma journal_mode: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// NewBuildID returns a fresh identifier for one build run.
func NewBuildID() string { return uuid.NewString() }

// Meta describes the build being snapshotted.
type Meta struct {
	BuildID     string
	GeneratedAt time.Time
	CatalogDir  string
}

// Snapshot upserts every entry of c under meta.BuildID in one transaction.
// Rows are keyed by (language, id); rows of entries that left the catalog
// keep the build id of the last run that saw them.
func Snapshot(ctx context.Context, db *sql.DB, c *catalog.Corpus, meta Meta) (int, error) {
	if meta.BuildID == "" {
		meta.BuildID = NewBuildID()
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO builds (build_id, generated_at, catalog_dir, entries)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(build_id) DO UPDATE SET
		  generated_at = excluded.generated_at,
		  catalog_dir = excluded.catalog_dir,
		  entries = excluded.entries
	`, meta.BuildID, meta.GeneratedAt.UTC().Format(time.RFC3339), meta.CatalogDir, c.Len()); err != nil {
		return 0, fmt.Errorf("insert build: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (
		  language, id, gpt_id, name_en, name_ko, name_ko_policy, url,
		  one_line_en, one_line_ko, tags, limitations, visibility, show_url,
		  source_file, build_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(language, id) DO UPDATE SET
		  gpt_id = excluded.gpt_id,
		  name_en = excluded.name_en,
		  name_ko = excluded.name_ko,
		  name_ko_policy = excluded.name_ko_policy,
		  url = excluded.url,
		  one_line_en = excluded.one_line_en,
		  one_line_ko = excluded.one_line_ko,
		  tags = excluded.tags,
		  limitations = excluded.limitations,
		  visibility = excluded.visibility,
		  show_url = excluded.show_url,
		  source_file = excluded.source_file,
		  build_id = excluded.build_id
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, e := range c.All {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if _, err := stmt.ExecContext(ctx,
			string(e.Language), e.ID, e.GPTID, e.NameEN, e.NameKO, string(policyOf(e)), e.URL,
			e.OneLineEN, e.OneLineKO, joinList(e.Tags), joinList(e.Limitations),
			string(visibilityOf(e)), string(urlModeOf(e)), e.SourceFilename, meta.BuildID,
		); err != nil {
			return n, fmt.Errorf("upsert %s/%s: %w", e.Language, e.ID, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return n, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

// Row is one stored entry.
type Row struct {
	Language string
	ID       string
	GPTID    string
	NameEN   string
	NameKO   string
	Policy   string
	BuildID  string
}

// Rows returns the stored entries of buildID ordered by language and id.
// An empty buildID returns every row.
func Rows(ctx context.Context, db *sql.DB, buildID string) ([]Row, error) {
	q := `SELECT language, id, gpt_id, name_en, name_ko, name_ko_policy, build_id FROM entries`
	var args []any
	if buildID != "" {
		q += ` WHERE build_id = ?`
		args = append(args, buildID)
	}
	q += ` ORDER BY language, id`

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Language, &r.ID, &r.GPTID, &r.NameEN, &r.NameKO, &r.Policy, &r.BuildID); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func joinList(items []string) string { return strings.Join(items, "|") }

func policyOf(e *catalog.Entry) catalog.NamePolicy {
	if e.NamePolicyKO == "" {
		return catalog.PolicyNone
	}
	return e.NamePolicyKO
}

func visibilityOf(e *catalog.Entry) catalog.Visibility {
	if e.Visibility == "" {
		return catalog.VisibilityPublic
	}
	return e.Visibility
}

func urlModeOf(e *catalog.Entry) catalog.URLMode {
	if e.ShowURL == "" {
		return catalog.URLShow
	}
	return e.ShowURL
}
