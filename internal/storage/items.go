package storage

import (
	"fmt"

	"recallpad/internal/domain"
)

// ListItems returns every item. Items are read-only in the UI; rows come
// from seeding or restore only.
func (db *DB) ListItems() ([]domain.Item, error) {
	rows, err := db.conn.Query(`SELECT id, name, description, created_at FROM items`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// InsertItem inserts an item. Used by restore; the web UI never writes items.
func (db *DB) InsertItem(name, description, createdAt string) (int64, error) {
	if createdAt == "" {
		createdAt = Now()
	}
	res, err := db.conn.Exec(`
		INSERT INTO items (name, description, created_at)
		VALUES (?, ?, ?)
	`, name, description, createdAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for item: %w", err)
	}
	return id, nil
}
