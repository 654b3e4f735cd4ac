package database

import (
	"context"
	"fmt"

	"shareit/internal/models"
)

func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `INSERT INTO comments (text, item_id, author_id, created_at) VALUES (?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		comment.Text,
		comment.ItemID,
		comment.AuthorID,
		toMillis(comment.Created),
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	comment.ID = id
	comment.Created = normalizeTime(comment.Created)
	return nil
}

func (db *DB) ListCommentsByItem(ctx context.Context, itemID int64) ([]models.Comment, error) {
	query := `SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created_at
              FROM comments c JOIN users u ON u.id = c.author_id
              WHERE c.item_id = ? ORDER BY c.created_at, c.id`
	rows, err := db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var (
			c       models.Comment
			created int64
		)
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &created); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.Created = fromMillis(created)
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
