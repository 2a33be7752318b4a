package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/seatswap/seatswap/internal/model"
	"github.com/seatswap/seatswap/internal/utils"
)

// UserRepo provides persistence for users and the account lifecycle.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// PublicProfile is the joined user+profile view exposed on public
// endpoints. It never contains the email address.
type PublicProfile struct {
	ID                uint64    `json:"id"`
	Username          string    `json:"username"`
	Bio               *string   `json:"bio,omitempty"`
	ProfilePictureURL *string   `json:"profile_picture_url,omitempty"`
	TotalSales        int       `json:"total_sales"`
	AverageRating     float64   `json:"average_rating"`
	IsVerifiedSeller  bool      `json:"is_verified_seller"`
	CreatedAt         time.Time `json:"created_at"`
}

// Create inserts a user row and its empty profile in a single transaction,
// so no user is ever observable without a profile. Returns the new user's
// ID. Duplicate username or email surfaces as ErrUsernameExists or
// ErrEmailExists via the unique indexes.
func (r *UserRepo) Create(ctx context.Context, username, email, password string, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES (?,?,?)",
		username, email, hash)
	if err != nil {
		return 0, translateDuplicate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO user_profiles (user_id) VALUES (?)", id); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

const userColumns = "id, username, email, password_hash, is_verified, created_at, updated_at"

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID loads a user by primary key; ErrUserNotFound when absent.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id))
}

// GetByEmail loads a user by email (lower-cased); ErrUserNotFound when absent.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", email))
}

// GetPublicProfile loads the public user+profile view by user ID.
func (r *UserRepo) GetPublicProfile(ctx context.Context, id uint64) (*PublicProfile, error) {
	const q = `SELECT u.id, u.username, p.bio, p.profile_picture_url,
	                  p.total_sales, p.average_rating, p.is_verified_seller, u.created_at
	           FROM users u
	           JOIN user_profiles p ON p.user_id = u.id
	           WHERE u.id = ?`
	var p PublicProfile
	err := r.DB.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.Username, &p.Bio, &p.ProfilePictureURL,
		&p.TotalSales, &p.AverageRating, &p.IsVerifiedSeller, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Search returns public profiles whose username contains the query
// (case-insensitive), optionally restricted to verified sellers. Results
// are ordered by username.
func (r *UserRepo) Search(ctx context.Context, query string, verifiedOnly bool, skip, limit int) ([]PublicProfile, error) {
	q := `SELECT u.id, u.username, p.bio, p.profile_picture_url,
	             p.total_sales, p.average_rating, p.is_verified_seller, u.created_at
	      FROM users u
	      JOIN user_profiles p ON p.user_id = u.id
	      WHERE LOWER(u.username) LIKE ?`
	args := []interface{}{"%" + strings.ToLower(strings.TrimSpace(query)) + "%"}
	if verifiedOnly {
		q += " AND p.is_verified_seller = 1"
	}
	q += " ORDER BY u.username LIMIT ? OFFSET ?"
	args = append(args, limit, skip)

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PublicProfile, 0)
	for rows.Next() {
		var p PublicProfile
		if err := rows.Scan(&p.ID, &p.Username, &p.Bio, &p.ProfilePictureURL,
			&p.TotalSales, &p.AverageRating, &p.IsVerifiedSeller, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UsernamesByIDs resolves a set of user IDs to usernames in one query.
// Unknown IDs are simply absent from the result map.
func (r *UserRepo) UsernamesByIDs(ctx context.Context, ids []uint64) (map[uint64]string, error) {
	out := make(map[uint64]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	q := "SELECT id, username FROM users WHERE id IN (" + strings.Join(placeholders, ",") + ")"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uint64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[id] = name
	}
	return out, rows.Err()
}

// Delete removes a user and everything they own. The user's messages are
// deleted explicitly in the same transaction (the sender/receiver foreign
// keys do not cascade, so skipping this would strand dangling references);
// profile, listings, reviews, proof entries and refresh tokens go via
// ON DELETE CASCADE. ErrUserNotFound when the user does not exist.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM messages WHERE sender_id = ? OR receiver_id = ?", id, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return tx.Commit()
}
