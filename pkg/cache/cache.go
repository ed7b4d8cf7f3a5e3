// Package cache is the offline fallback: a local sqlite file holding one full
// snapshot blob per user, written through after every successful remote
// mutation and read wholesale when the remote store can't be reached.
package cache

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/matt-steen/lifequest/pkg/model"

	// use the sqlite db driver.
	_ "github.com/mattn/go-sqlite3"
)

//go:embed base.sql
var baseSQL string

// ErrNoSnapshot is returned when a user has never had a snapshot written.
var ErrNoSnapshot = errors.New("no cached snapshot for user")

// ErrNoSpreadsheet is returned when no spreadsheet id has been memoized for a user.
var ErrNoSpreadsheet = errors.New("no cached spreadsheet id for user")

// Snapshot is the full in-memory state persisted as one blob.
type Snapshot struct {
	Tasks         []*model.Task          `json:"tasks"`
	UserStats     model.UserStats        `json:"userStats"`
	ImportantInfo []*model.ImportantInfo `json:"importantInfo"`
	SpreadsheetID string                 `json:"spreadsheetId"`
}

// Cache manages the sqlite connection backing the snapshot and spreadsheet tables.
type Cache struct {
	conn *sql.DB
}

// New connects to the sqlite cache at the given filename and initializes the
// structure if not present.
func New(ctx context.Context, filename string) (*Cache, error) {
	conn, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("error connecting to sqlite db at %s: %w", filename, err)
	}

	// run idempotent setup sql to create empty tables if they don't exist
	if _, err := conn.ExecContext(ctx, baseSQL); err != nil {
		return nil, fmt.Errorf("error running base sql: %w", err)
	}

	return &Cache{conn: conn}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.conn.Close()
}

// SaveSnapshot overwrites the user's snapshot blob.
func (c *Cache) SaveSnapshot(ctx context.Context, userID string, snapshot *Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("error encoding snapshot for user %s: %w", userID, err)
	}

	_, err = c.conn.ExecContext(
		ctx,
		`INSERT INTO snapshot (user_id, payload, updated_datetime) VALUES ($1, $2, $3)
		     ON CONFLICT (user_id) DO UPDATE SET payload = excluded.payload, updated_datetime = excluded.updated_datetime`,
		userID, string(payload), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("error saving snapshot for user %s: %w", userID, err)
	}

	return nil
}

// LoadSnapshot returns the user's last written snapshot.
func (c *Cache) LoadSnapshot(ctx context.Context, userID string) (*Snapshot, error) {
	var payload string

	row := c.conn.QueryRowContext(ctx, `SELECT payload FROM snapshot WHERE user_id = $1`, userID)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSnapshot
		}

		return nil, fmt.Errorf("error loading snapshot for user %s: %w", userID, err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return nil, fmt.Errorf("error decoding snapshot for user %s: %w", userID, err)
	}

	return &snapshot, nil
}

// SaveSpreadsheetID memoizes the user's spreadsheet so later sessions can reuse
// it without decoding the full snapshot.
func (c *Cache) SaveSpreadsheetID(ctx context.Context, userID, spreadsheetID string) error {
	_, err := c.conn.ExecContext(
		ctx,
		`INSERT INTO spreadsheet (user_id, spreadsheet_id) VALUES ($1, $2)
		     ON CONFLICT (user_id) DO UPDATE SET spreadsheet_id = excluded.spreadsheet_id`,
		userID, spreadsheetID,
	)
	if err != nil {
		return fmt.Errorf("error saving spreadsheet id for user %s: %w", userID, err)
	}

	return nil
}

// SpreadsheetID returns the memoized spreadsheet id for the user.
func (c *Cache) SpreadsheetID(ctx context.Context, userID string) (string, error) {
	var spreadsheetID string

	row := c.conn.QueryRowContext(ctx, `SELECT spreadsheet_id FROM spreadsheet WHERE user_id = $1`, userID)
	if err := row.Scan(&spreadsheetID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoSpreadsheet
		}

		return "", fmt.Errorf("error loading spreadsheet id for user %s: %w", userID, err)
	}

	return spreadsheetID, nil
}
