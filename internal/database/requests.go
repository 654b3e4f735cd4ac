package database

import (
	"context"
	"fmt"

	"shareit/internal/models"
)

const requestColumns = `id, description, owner_id, created_at`

func scanRequest(row rowScanner) (*models.Request, error) {
	var (
		r       models.Request
		created int64
	)
	if err := row.Scan(&r.ID, &r.Description, &r.OwnerID, &created); err != nil {
		return nil, err
	}
	r.Created = fromMillis(created)
	return &r, nil
}

func (db *DB) CreateRequest(ctx context.Context, request *models.Request) error {
	query := `INSERT INTO requests (description, owner_id, created_at) VALUES (?, ?, ?)`
	result, err := db.ExecContext(ctx, query, request.Description, request.OwnerID, toMillis(request.Created))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	request.ID = id
	request.Created = normalizeTime(request.Created)
	return nil
}

func (db *DB) GetRequestByID(ctx context.Context, id int64) (*models.Request, error) {
	r, err := scanRequest(db.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = ?`, id))
	if err != nil {
		return nil, notFoundOr(err, "failed to get request: %w")
	}
	return r, nil
}

func (db *DB) ListRequestsByOwner(ctx context.Context, ownerID int64) ([]*models.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE owner_id = ? ORDER BY created_at, id`
	return db.queryRequests(ctx, query, ownerID)
}

func (db *DB) ListRequestsExcludingOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE owner_id != ?
              ORDER BY created_at, id LIMIT ? OFFSET ?`
	return db.queryRequests(ctx, query, ownerID, page.Limit, page.Offset)
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...any) ([]*models.Request, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	requests := []*models.Request{}
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}
