package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SqliteCache stores cache entries in a local SQLite database, one row per
// cache key.
type SqliteCache struct {
	db *sql.DB
}

// NewSqliteCache opens (creating if necessary) the SQLite database at
// dbPath and ensures its schema exists.
func NewSqliteCache(dbPath string) (*SqliteCache, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite cache: %w", err)
	}

	c := &SqliteCache{db: db}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *SqliteCache) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS url_cache (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			cache_key TEXT UNIQUE NOT NULL,
			domain TEXT NOT NULL,
			providers TEXT NOT NULL,
			filters_hash TEXT NOT NULL,
			urls TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cache_key ON url_cache(cache_key)`,
		`CREATE INDEX IF NOT EXISTS idx_domain ON url_cache(domain)`,
		`CREATE INDEX IF NOT EXISTS idx_timestamp ON url_cache(timestamp)`,
	}
	for _, stmt := range stmts {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("initializing cache schema: %w", err)
		}
	}
	return nil
}

// Close releases the underlying database handle.
func (c *SqliteCache) Close() error {
	return c.db.Close()
}

func (c *SqliteCache) Get(ctx context.Context, key Key) (*Entry, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT urls, timestamp FROM url_cache WHERE cache_key = ?`, key.String())

	var urlsJSON, timestampStr string
	if err := row.Scan(&urlsJSON, &timestampStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cache entry: %w", err)
	}

	var urls []string
	if err := json.Unmarshal([]byte(urlsJSON), &urls); err != nil {
		return nil, fmt.Errorf("decoding cached urls: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, timestampStr)
	if err != nil {
		return nil, fmt.Errorf("decoding cache timestamp: %w", err)
	}

	return &Entry{URLs: urls, Timestamp: ts}, nil
}

func (c *SqliteCache) Set(ctx context.Context, key Key, entry Entry) error {
	providersJSON, err := json.Marshal(key.Providers)
	if err != nil {
		return fmt.Errorf("encoding providers: %w", err)
	}
	urlsJSON, err := json.Marshal(entry.URLs)
	if err != nil {
		return fmt.Errorf("encoding urls: %w", err)
	}

	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO url_cache
		 (cache_key, domain, providers, filters_hash, urls, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		key.String(), key.Domain, string(providersJSON), key.FiltersHash,
		string(urlsJSON), entry.Timestamp.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

func (c *SqliteCache) Delete(ctx context.Context, key Key) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM url_cache WHERE cache_key = ?`, key.String())
	if err != nil {
		return fmt.Errorf("deleting cache entry: %w", err)
	}
	return nil
}

func (c *SqliteCache) CleanupExpired(ctx context.Context, ttl time.Duration) error {
	cutoff := time.Now().Add(-ttl).Format(time.RFC3339)
	result, err := c.db.ExecContext(ctx, `DELETE FROM url_cache WHERE timestamp < ?`, cutoff)
	if err != nil {
		return fmt.Errorf("cleaning up expired cache entries: %w", err)
	}

	deleted, _ := result.RowsAffected()
	if deleted > 10 {
		if _, err := c.db.ExecContext(ctx, `VACUUM`); err != nil {
			return fmt.Errorf("vacuuming cache database: %w", err)
		}
	}
	return nil
}

func (c *SqliteCache) Exists(ctx context.Context, key Key) (bool, error) {
	var count int
	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM url_cache WHERE cache_key = ?`, key.String()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking cache entry: %w", err)
	}
	return count > 0, nil
}
