package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Cache keeps JSON-encoded dashboard results in an in-memory SQLite
// database, keyed by the parameter snapshot that produced them. Nothing is
// written to disk; the data disappears with the process.
//
// A nil *Cache is valid and caches nothing.
type Cache struct {
	db     *sql.DB
	hits   atomic.Int64
	misses atomic.Int64
}

// CacheStats summarizes cache usage
type CacheStats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// Open creates the named in-memory cache database.
func Open(name string) (*Cache, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// One long-lived connection keeps the in-memory database alive
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	resultTable := `
	CREATE TABLE IF NOT EXISTS results (
		key TEXT PRIMARY KEY,
		payload TEXT,
		created_at DATETIME
	);
	`
	if _, err := db.Exec(resultTable); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db}, nil
}

// Get decodes the result stored under key into dst. found is false on a miss.
func (c *Cache) Get(key string, dst interface{}) (found bool, err error) {
	if c == nil {
		return false, nil
	}

	var payload string
	err = c.db.QueryRow(`SELECT payload FROM results WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		c.misses.Add(1)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(payload), dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	c.hits.Add(1)
	return true, nil
}

// Put stores v under key, replacing any previous entry.
func (c *Cache) Put(key string, v interface{}) error {
	if c == nil {
		return nil
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = c.db.Exec(`INSERT OR REPLACE INTO results (key, payload, created_at) VALUES (?, ?, ?)`,
		key, string(payload), now)
	return err
}

// Stats returns the entry count and hit/miss counters.
func (c *Cache) Stats() (CacheStats, error) {
	if c == nil {
		return CacheStats{}, nil
	}

	var entries int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM results`).Scan(&entries); err != nil {
		return CacheStats{}, err
	}
	return CacheStats{
		Entries: entries,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}, nil
}

// Close releases the database; the cached data is gone afterwards.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}
