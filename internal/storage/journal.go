// Package storage keeps the lore journal of a running game in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The database lives in memory and is discarded when the game exits.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Journal records every lore entry merged during a session.
type Journal struct {
	db *sql.DB
}

// Entry is one journal record.
type Entry struct {
	ID           int64
	Tick         uint64
	IslandIndex  int
	Island       string
	TreasureID   string
	TreasureName string
	Category     string
	Title        string
	Content      string
	Fallback     bool // Stock fallback pair was shown
	Stale        bool // Arrived after its level had been replaced
	CreatedAt    time.Time
}

// OpenJournal creates an empty in-memory journal.
func OpenJournal() (*Journal, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open journal: %w", err)
	}

	// Every connection to :memory: is a separate database; pin to one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to journal: %w", err)
	}

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return j, nil
}

// migrate creates the journal schema.
func (j *Journal) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS lore (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tick INTEGER NOT NULL,
			island_index INTEGER NOT NULL,
			island TEXT NOT NULL,
			treasure_id TEXT NOT NULL,
			treasure_name TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			fallback INTEGER NOT NULL DEFAULT 0,
			stale INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_lore_category ON lore(category);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Close closes the database connection, discarding the journal.
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Record appends an entry and returns its ID.
func (j *Journal) Record(e Entry) (int64, error) {
	result, err := j.db.Exec(
		`INSERT INTO lore
		 (tick, island_index, island, treasure_id, treasure_name, category, title, content, fallback, stale)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		int64(e.Tick), e.IslandIndex, e.Island, e.TreasureID, e.TreasureName,
		e.Category, e.Title, e.Content, e.Fallback, e.Stale,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record lore: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Entries returns up to limit entries, newest first.
func (j *Journal) Entries(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := j.db.Query(
		`SELECT id, tick, island_index, island, treasure_id, treasure_name,
		        category, title, content, fallback, stale, created_at
		 FROM lore
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var tick int64
		var createdAt any
		if err := rows.Scan(
			&e.ID, &tick, &e.IslandIndex, &e.Island, &e.TreasureID, &e.TreasureName,
			&e.Category, &e.Title, &e.Content, &e.Fallback, &e.Stale, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Tick = uint64(tick)

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// Count returns the number of recorded entries.
func (j *Journal) Count() (int, error) {
	var n int
	if err := j.db.QueryRow("SELECT COUNT(*) FROM lore").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count journal: %w", err)
	}
	return n, nil
}

// CategoryCounts returns how many entries were recorded per treasure category.
func (j *Journal) CategoryCounts() (map[string]int, error) {
	rows, err := j.db.Query("SELECT category, COUNT(*) FROM lore GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count categories: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan category row: %w", err)
		}
		counts[category] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return counts, nil
}
