package database

import (
	"context"
	"database/sql"
	"fmt"

	"shareit/internal/models"
)

const itemColumns = `i.id, i.name, i.description, i.available, i.owner_id, i.request_id, u.name`

const itemFrom = ` FROM items i JOIN users u ON u.id = i.owner_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var (
		item      models.Item
		requestID sql.NullInt64
		ownerName string
	)
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Available,
		&item.OwnerID, &requestID, &ownerName)
	if err != nil {
		return nil, err
	}
	if requestID.Valid {
		id := requestID.Int64
		item.RequestID = &id
	}
	item.Owner = &models.UserSummary{ID: item.OwnerID, Name: ownerName}
	return &item, nil
}

func (db *DB) queryItems(ctx context.Context, query string, args ...any) ([]*models.Item, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []*models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (db *DB) CreateItem(ctx context.Context, item *models.Item) error {
	query := `INSERT INTO items (name, description, available, owner_id, request_id)
              VALUES (?, ?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		item.Name,
		item.Description,
		item.Available,
		item.OwnerID,
		nullableID(item.RequestID),
	)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = id
	return nil
}

func (db *DB) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	item, err := scanItem(db.QueryRowContext(ctx, `SELECT `+itemColumns+itemFrom+` WHERE i.id = ?`, id))
	if err != nil {
		return nil, notFoundOr(err, "failed to get item: %w")
	}
	return item, nil
}

func (db *DB) UpdateItem(ctx context.Context, item *models.Item) error {
	query := `UPDATE items SET name = ?, description = ?, available = ?, owner_id = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		item.Name,
		item.Description,
		item.Available,
		item.OwnerID,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) ListItemsByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.Item, error) {
	query := `SELECT ` + itemColumns + itemFrom + ` WHERE i.owner_id = ? ORDER BY i.id LIMIT ? OFFSET ?`
	return db.queryItems(ctx, query, ownerID, page.Limit, page.Offset)
}

func (db *DB) ListAvailableItems(ctx context.Context) ([]*models.Item, error) {
	return db.queryItems(ctx, `SELECT `+itemColumns+itemFrom+` WHERE i.available = 1 ORDER BY i.id`)
}

func (db *DB) ListItemsByRequest(ctx context.Context, requestID int64) ([]models.Item, error) {
	items, err := db.queryItems(ctx, `SELECT `+itemColumns+itemFrom+` WHERE i.request_id = ? ORDER BY i.id`, requestID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Item, 0, len(items))
	for _, item := range items {
		out = append(out, *item)
	}
	return out, nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
