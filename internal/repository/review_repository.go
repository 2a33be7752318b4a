package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/seatswap/seatswap/internal/model"
	"github.com/seatswap/seatswap/internal/reputation"
)

// ReviewRepo persists reviews and maintains the reviewed user's derived
// reputation. The review ledger is append-only: no update or delete
// statements exist here, and a reviewer may rate the same user repeatedly.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

// Create stores the review and recomputes the reviewed user's reputation,
// all in one transaction. The subject's profile row is locked FOR UPDATE
// for the duration, so two concurrent reviews of the same user serialize:
// each recomputation reads the complete review set including every
// previously committed row, and no update can be lost. Returns the
// updated profile. ErrUserNotFound when the reviewed user has no profile
// (the user does not exist).
func (r *ReviewRepo) Create(ctx context.Context, rev *model.Review) (*model.UserProfile, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var p model.UserProfile
	err = tx.QueryRowContext(ctx,
		`SELECT id, user_id, bio, profile_picture_url, total_sales,
		        average_rating, is_verified_seller, created_at, updated_at
		 FROM user_profiles WHERE user_id = ? FOR UPDATE`, rev.ReviewedUserID).
		Scan(&p.ID, &p.UserID, &p.Bio, &p.ProfilePictureURL, &p.TotalSales,
			&p.AverageRating, &p.IsVerifiedSeller, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO reviews (reviewer_id, reviewed_user_id, listing_id, rating, comment)
		 VALUES (?,?,?,?,?)`,
		rev.ReviewerID, rev.ReviewedUserID, rev.ListingID, rev.Rating, rev.Comment)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	rev.ID = uint64(id)
	if err := tx.QueryRowContext(ctx,
		"SELECT created_at FROM reviews WHERE id = ?", rev.ID).Scan(&rev.CreatedAt); err != nil {
		return nil, err
	}

	// Recompute from the full current rating set rather than adjusting the
	// stored average, so the value can never drift.
	rows, err := tx.QueryContext(ctx,
		"SELECT rating FROM reviews WHERE reviewed_user_id = ?", rev.ReviewedUserID)
	if err != nil {
		return nil, err
	}
	ratings := make([]int, 0)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return nil, err
		}
		ratings = append(ratings, v)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	reputation.Apply(&p, reputation.Summarize(ratings))
	p.UpdatedAt = time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		`UPDATE user_profiles SET average_rating = ?, is_verified_seller = ?, updated_at = NOW()
		 WHERE user_id = ?`,
		p.AverageRating, p.IsVerifiedSeller, rev.ReviewedUserID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ReviewWithAuthor is a review joined with its reviewer's username for
// display on a user's public review list.
type ReviewWithAuthor struct {
	ID               uint64    `json:"id"`
	ReviewerID       uint64    `json:"reviewer_id"`
	ReviewerUsername string    `json:"reviewer_username"`
	ListingID        *uint64   `json:"listing_id,omitempty"`
	Rating           int       `json:"rating"`
	Comment          *string   `json:"comment,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ListForUser returns the reviews received by a user, newest first.
// Callers verify the user exists beforehand.
func (r *ReviewRepo) ListForUser(ctx context.Context, userID uint64, skip, limit int) ([]ReviewWithAuthor, error) {
	const q = `SELECT r.id, r.reviewer_id, u.username, r.listing_id, r.rating, r.comment, r.created_at
	           FROM reviews r
	           JOIN users u ON u.id = r.reviewer_id
	           WHERE r.reviewed_user_id = ?
	           ORDER BY r.created_at DESC, r.id DESC
	           LIMIT ? OFFSET ?`
	rows, err := r.DB.QueryContext(ctx, q, userID, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ReviewWithAuthor, 0)
	for rows.Next() {
		var rv ReviewWithAuthor
		if err := rows.Scan(&rv.ID, &rv.ReviewerID, &rv.ReviewerUsername,
			&rv.ListingID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
