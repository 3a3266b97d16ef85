package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stockroom/internal/model"
)

// ErrNotFound is returned when an operation targets a non-existent item.
var ErrNotFound = errors.New("item not found")

// timeLayout is a fixed-width UTC format for DATETIME columns. Fixed
// width keeps text comparison chronological, so ORDER BY works at
// sub-second precision.
const timeLayout = "2006-01-02 15:04:05.000000000"

// CreateItem creates a new item and records an 'add' history entry for
// its initial quantity. Both writes share a single transaction so the
// catalog and the ledger cannot diverge.
func CreateItem(ctx context.Context, db *sql.DB, name, description string, quantity int, image string) (*model.Item, error) {
	if quantity < 0 {
		quantity = 0
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	now := time.Now().UTC()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO items (id, name, description, quantity, image, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, name, description, quantity, image, now.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	if err := recordHistory(ctx, tx, id, name, model.ActionAdd, quantity, "", now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item creation: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if it does not exist.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	item := &model.Item{}
	var description, image sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, description, quantity, image, created_at
		 FROM items WHERE id = ?`, id,
	).Scan(&item.ID, &item.Name, &description, &item.Quantity, &image, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.Description = description.String
	item.Image = image.String
	return item, nil
}

// ListItems returns all items, newest first.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, description, quantity, image, created_at
		 FROM items ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var description, image sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &description, &item.Quantity, &image, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.Description = description.String
		item.Image = image.String
		items = append(items, item)
	}
	return items, rows.Err()
}

// AdjustQuantity applies a signed delta to an item's quantity, clamping
// the result at zero, and records exactly one history entry. The entry's
// action follows the sign of the requested delta; its quantity is the
// magnitude of the applied change, which is smaller than requested when
// clamping occurred.
func AdjustQuantity(ctx context.Context, db *sql.DB, id string, delta int, requester string) (*model.Item, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var name string
	var current int
	err = tx.QueryRowContext(ctx,
		`SELECT name, quantity FROM items WHERE id = ?`, id,
	).Scan(&name, &current)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("checking current quantity: %w", err)
	}

	newQty := current + delta
	if newQty < 0 {
		newQty = 0
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE items SET quantity = ? WHERE id = ?`, newQty, id,
	)
	if err != nil {
		return nil, fmt.Errorf("adjusting quantity: %w", err)
	}

	action := model.ActionAdd
	if delta < 0 {
		action = model.ActionRemove
	}
	applied := newQty - current
	if applied < 0 {
		applied = -applied
	}
	now := time.Now().UTC()
	if err := recordHistory(ctx, tx, id, name, action, applied, requester, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing adjustment: %w", err)
	}

	return GetItem(ctx, db, id)
}

// UpdateItem replaces an item's mutable fields. If the quantity changed,
// exactly one history entry is recorded for the difference; metadata-only
// edits leave the ledger untouched.
func UpdateItem(ctx context.Context, db *sql.DB, id, name, description string, quantity int) (*model.Item, error) {
	if quantity < 0 {
		quantity = 0
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var oldName string
	var current int
	err = tx.QueryRowContext(ctx,
		`SELECT name, quantity FROM items WHERE id = ?`, id,
	).Scan(&oldName, &current)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("checking current quantity: %w", err)
	}

	if quantity != current {
		action := model.ActionAdd
		diff := quantity - current
		if diff < 0 {
			action = model.ActionRemove
			diff = -diff
		}
		// Snapshot the name the item had when the change happened.
		if err := recordHistory(ctx, tx, id, oldName, action, diff, "", time.Now().UTC()); err != nil {
			return nil, err
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, quantity = ? WHERE id = ?`,
		name, description, quantity, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing update: %w", err)
	}

	return GetItem(ctx, db, id)
}

// DeleteItem permanently removes an item, first recording a 'remove'
// history entry for its full remaining quantity. The entry outlives the
// item (history keeps only a weak reference).
func DeleteItem(ctx context.Context, db *sql.DB, id, requester string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var name string
	var quantity int
	err = tx.QueryRowContext(ctx,
		`SELECT name, quantity FROM items WHERE id = ?`, id,
	).Scan(&name, &quantity)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking item: %w", err)
	}

	if err := recordHistory(ctx, tx, id, name, model.ActionRemove, quantity, requester, time.Now().UTC()); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing deletion: %w", err)
	}
	return nil
}
