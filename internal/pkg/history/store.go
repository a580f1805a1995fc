// Package history persists search inputs and scan outcomes for audit
// purposes. The scanning engine never depends on it: callers log and
// ignore its failures.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS search_inputs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	data       TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS flight_prices (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	search_inputs_id INTEGER REFERENCES search_inputs(id),
	data             TEXT NOT NULL,
	created_at       TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS parsed_offers (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	search_inputs_id INTEGER REFERENCES search_inputs(id),
	data             TEXT NOT NULL,
	created_at       TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// SearchRecord is one stored search with its raw JSON criteria.
type SearchRecord struct {
	ID        int64
	Data      []byte
	CreatedAt time.Time
}

// Store writes search inputs, per-scan price rows and parsed-offer
// payloads as JSON rows in a local SQLite database.
type Store struct {
	db *sql.DB
}

// Open creates (or reuses) the database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()

		return nil, fmt.Errorf("create history tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordSearch stores the search criteria and returns the row id used to
// link price rows and offers to it.
func (s *Store) RecordSearch(ctx context.Context, criteria any) (int64, error) {
	return s.insert(ctx, "search_inputs", 0, criteria)
}

// RecordPrices stores the trend rows of one finished scan.
func (s *Store) RecordPrices(ctx context.Context, searchID int64, rows any) error {
	_, err := s.insert(ctx, "flight_prices", searchID, rows)

	return err
}

// RecordOffers stores the parsed offers that survived filtering.
func (s *Store) RecordOffers(ctx context.Context, searchID int64, offers any) error {
	_, err := s.insert(ctx, "parsed_offers", searchID, offers)

	return err
}

func (s *Store) insert(ctx context.Context, table string, searchID int64, payload any) (int64, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal %s payload: %w", table, err)
	}

	var result sql.Result

	if table == "search_inputs" {
		result, err = s.db.ExecContext(ctx,
			"INSERT INTO search_inputs (data) VALUES (?)", string(data))
	} else {
		result, err = s.db.ExecContext(ctx,
			fmt.Sprintf("INSERT INTO %s (search_inputs_id, data) VALUES (?, ?)", table),
			searchID, string(data))
	}

	if err != nil {
		return 0, fmt.Errorf("insert into %s: %w", table, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read %s insert id: %w", table, err)
	}

	return id, nil
}

// RecentSearches returns the newest stored searches, most recent first.
func (s *Store) RecentSearches(ctx context.Context, limit int) ([]SearchRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, data, created_at FROM search_inputs ORDER BY created_at DESC, id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("query recent searches: %w", err)
	}
	defer rows.Close()

	var records []SearchRecord

	for rows.Next() {
		var record SearchRecord
		if err := rows.Scan(&record.ID, &record.Data, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan search record: %w", err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search records: %w", err)
	}

	return records, nil
}
