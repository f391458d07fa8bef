package imagecache

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const indexFileName = "index.db"

// Entry maps a normalized search key to a downloaded image file.
type Entry struct {
	Key       string
	FilePath  string
	FetchedAt time.Time
}

// Index is the on-disk key-to-file mapping, persisted across runs in a
// small sqlite database inside the cache directory.
type Index struct {
	db *sql.DB
}

func OpenIndex(dir string) (*Index, error) {
	db, err := sql.Open("sqlite", filepath.Join(dir, indexFileName))
	if err != nil {
		return nil, fmt.Errorf("open cache index: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS cache_entry (
			key TEXT PRIMARY KEY,
			file_path TEXT NOT NULL,
			fetched_at INTEGER NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create cache schema: %w", err)
	}

	return &Index{db: db}, nil
}

func (ix *Index) Close() error {
	return ix.db.Close()
}

// Get returns the entry for key, or nil when the key is unknown.
func (ix *Index) Get(key string) (*Entry, error) {
	row := ix.db.QueryRow(
		`SELECT key, file_path, fetched_at FROM cache_entry WHERE key = ?`, key)

	var e Entry
	var fetchedAt int64
	if err := row.Scan(&e.Key, &e.FilePath, &fetchedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup cache entry: %w", err)
	}
	e.FetchedAt = time.Unix(fetchedAt, 0)

	return &e, nil
}

func (ix *Index) Put(key, filePath string, fetchedAt time.Time) error {
	_, err := ix.db.Exec(
		`INSERT OR REPLACE INTO cache_entry (key, file_path, fetched_at) VALUES (?, ?, ?)`,
		key, filePath, fetchedAt.Unix())
	if err != nil {
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}

func (ix *Index) Delete(key string) error {
	if _, err := ix.db.Exec(`DELETE FROM cache_entry WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

func (ix *Index) List() ([]Entry, error) {
	return ix.query(`SELECT key, file_path, fetched_at FROM cache_entry`)
}

// ListOlderThan returns entries fetched strictly before cutoff.
func (ix *Index) ListOlderThan(cutoff time.Time) ([]Entry, error) {
	return ix.query(
		`SELECT key, file_path, fetched_at FROM cache_entry WHERE fetched_at < ?`,
		cutoff.Unix())
}

func (ix *Index) query(q string, args ...any) ([]Entry, error) {
	rows, err := ix.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list cache entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var fetchedAt int64
		if err := rows.Scan(&e.Key, &e.FilePath, &fetchedAt); err != nil {
			return nil, fmt.Errorf("scan cache entry: %w", err)
		}
		e.FetchedAt = time.Unix(fetchedAt, 0)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
