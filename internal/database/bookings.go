package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shareit/internal/models"
)

const bookingColumns = `b.id, b.start_at, b.end_at, b.status, b.item_id, b.booker_id, u.name, i.name, i.owner_id`

const bookingFrom = ` FROM bookings b
              JOIN users u ON u.id = b.booker_id
              JOIN items i ON i.id = b.item_id`

func scanBooking(row rowScanner) (*models.Booking, error) {
	var (
		b          models.Booking
		start, end int64
		bookerName string
		itemName   string
		ownerID    int64
	)
	err := row.Scan(&b.ID, &start, &end, &b.Status, &b.ItemID, &b.BookerID, &bookerName, &itemName, &ownerID)
	if err != nil {
		return nil, err
	}
	b.Start = fromMillis(start)
	b.End = fromMillis(end)
	b.Booker = &models.UserSummary{ID: b.BookerID, Name: bookerName}
	b.Item = &models.ItemSummary{ID: b.ItemID, Name: itemName, OwnerID: ownerID}
	return &b, nil
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...any) ([]*models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (start_at, end_at, item_id, booker_id, status)
              VALUES (?, ?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		toMillis(booking.Start),
		toMillis(booking.End),
		booking.ItemID,
		booking.BookerID,
		booking.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.Start = normalizeTime(booking.Start)
	booking.End = normalizeTime(booking.End)
	return nil
}

func (db *DB) GetBookingByID(ctx context.Context, id int64) (*models.Booking, error) {
	b, err := scanBooking(db.QueryRowContext(ctx, `SELECT `+bookingColumns+bookingFrom+` WHERE b.id = ?`, id))
	if err != nil {
		return nil, notFoundOr(err, "failed to get booking: %w")
	}
	return b, nil
}

func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, from, to models.BookingStatus) error {
	query := `UPDATE bookings SET status = ? WHERE id = ? AND status = ?`
	result, err := db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrStaleStatus
	}
	return nil
}

func (db *DB) ListBookings(ctx context.Context, q models.BookingQuery) ([]*models.Booking, error) {
	var (
		conds []string
		args  []any
	)

	switch q.Party {
	case models.PartyOwner:
		conds = append(conds, "i.owner_id = ?")
	default:
		conds = append(conds, "b.booker_id = ?")
	}
	args = append(args, q.ActorID)

	if q.Status != nil {
		conds = append(conds, "b.status = ?")
		args = append(args, *q.Status)
	}
	addBound := func(cond string, t *time.Time) {
		if t != nil {
			conds = append(conds, cond)
			args = append(args, toMillis(*t))
		}
	}
	addBound("b.start_at > ?", q.StartAfter)
	addBound("b.start_at < ?", q.StartBefore)
	addBound("b.end_at > ?", q.EndAfter)
	addBound("b.end_at < ?", q.EndBefore)

	query := `SELECT ` + bookingColumns + bookingFrom +
		` WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY b.start_at DESC, b.id DESC LIMIT ? OFFSET ?`
	args = append(args, q.Page.Limit, q.Page.Offset)

	return db.queryBookings(ctx, query, args...)
}

func (db *DB) TopBookingsForOwner(ctx context.Context, itemID, ownerID int64) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingFrom +
		` WHERE b.item_id = ? AND i.owner_id = ? ORDER BY b.start_at ASC, b.id ASC LIMIT 2`
	return db.queryBookings(ctx, query, itemID, ownerID)
}

func (db *DB) HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE booker_id = ? AND item_id = ? AND end_at < ?)`
	var exists bool
	if err := db.QueryRowContext(ctx, query, bookerID, itemID, toMillis(now)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check finished booking: %w", err)
	}
	return exists, nil
}
