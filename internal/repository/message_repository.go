package repository

import (
	"context"
	"database/sql"

	"github.com/seatswap/seatswap/internal/model"
)

// MessageRepo persists direct messages and the per-message read flag.
type MessageRepo struct{ DB *sql.DB }

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{DB: db} }

const messageColumns = "id, sender_id, receiver_id, listing_id, message_text, is_read, created_at"

func scanMessage(rows *sql.Rows) (model.Message, error) {
	var m model.Message
	err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.ListingID,
		&m.MessageText, &m.IsRead, &m.CreatedAt)
	return m, err
}

// Create inserts a message, unread, and populates its generated ID and
// timestamp.
func (r *MessageRepo) Create(ctx context.Context, m *model.Message) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO messages (sender_id, receiver_id, listing_id, message_text, is_read)
		 VALUES (?,?,?,?,0)`,
		m.SenderID, m.ReceiverID, m.ListingID, m.MessageText)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	m.IsRead = false
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM messages WHERE id = ?", m.ID).Scan(&m.CreatedAt)
}

// GetByID loads one message; ErrMessageNotFound when absent.
func (r *MessageRepo) GetByID(ctx context.Context, id uint64) (*model.Message, error) {
	var m model.Message
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+messageColumns+" FROM messages WHERE id = ?", id).
		Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.ListingID,
			&m.MessageText, &m.IsRead, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListForUser returns the messages a user sent or received, newest first.
// With unreadOnly set, only unread messages addressed to the user are
// returned.
func (r *MessageRepo) ListForUser(ctx context.Context, userID uint64, unreadOnly bool, skip, limit int) ([]model.Message, error) {
	q := "SELECT " + messageColumns + " FROM messages WHERE "
	args := make([]interface{}, 0, 4)
	if unreadOnly {
		q += "receiver_id = ? AND is_read = 0"
		args = append(args, userID)
	} else {
		q += "(sender_id = ? OR receiver_id = ?)"
		args = append(args, userID, userID)
	}
	q += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, skip)

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListInvolving returns every message the user is party to, oldest first.
// The inbox projection consumes this to fold messages into per-contact
// conversation summaries.
func (r *MessageRepo) ListInvolving(ctx context.Context, userID uint64) ([]model.Message, error) {
	q := "SELECT " + messageColumns + ` FROM messages
	      WHERE sender_id = ? OR receiver_id = ?
	      ORDER BY created_at ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, q, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ConversationWith returns the message thread between two users in
// chronological order, after marking every message the other party sent
// to the viewer as read. The mark and the read happen in one transaction
// so the thread a viewer sees is never newer than their read state.
func (r *MessageRepo) ConversationWith(ctx context.Context, userID, otherID uint64) ([]model.Message, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE messages SET is_read = 1
		 WHERE sender_id = ? AND receiver_id = ? AND is_read = 0`,
		otherID, userID); err != nil {
		return nil, err
	}

	q := "SELECT " + messageColumns + ` FROM messages
	      WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
	      ORDER BY created_at ASC, id ASC`
	rows, err := tx.QueryContext(ctx, q, userID, otherID, otherID, userID)
	if err != nil {
		return nil, err
	}

	out := make([]model.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flips the read flag on. The update is idempotent: marking an
// already-read message changes nothing, and nothing ever flips it back.
func (r *MessageRepo) MarkRead(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE messages SET is_read = 1 WHERE id = ?", id)
	return err
}

// UnreadCount returns how many unread messages are addressed to the user.
func (r *MessageRepo) UnreadCount(ctx context.Context, userID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM messages WHERE receiver_id = ? AND is_read = 0", userID).
		Scan(&n)
	return n, err
}

// Delete removes a message. Party membership is checked by the caller.
func (r *MessageRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM messages WHERE id = ?", id)
	return err
}
