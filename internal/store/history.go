package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stockroom/internal/model"
)

// recordHistory appends one ledger entry inside the caller's transaction.
// The ledger is append-only: nothing in the application ever updates or
// deletes a history row. An empty requester is stored as NULL.
func recordHistory(ctx context.Context, tx *sql.Tx, itemID, itemName, action string, quantity int, requester string, ts time.Time) error {
	var req any
	if requester != "" {
		req = requester
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO history (id, item_id, item_name, action, quantity, requester, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), itemID, itemName, action, quantity, req, ts.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("recording history: %w", err)
	}
	return nil
}

// ListHistory returns every history entry, newest first. Filtering is a
// client-side concern; the full ledger is always returned.
func ListHistory(ctx context.Context, db *sql.DB) ([]model.HistoryEntry, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, item_id, item_name, action, quantity, requester, timestamp
		 FROM history ORDER BY timestamp DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		var requester sql.NullString
		if err := rows.Scan(&e.ID, &e.ItemID, &e.ItemName, &e.Action, &e.Quantity, &requester, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		e.Requester = requester.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
