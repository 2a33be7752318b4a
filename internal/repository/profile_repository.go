package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/seatswap/seatswap/internal/model"
)

// ProfileRepo provides access to user_profiles rows. Reputation updates do
// not go through here; they happen inside ReviewRepo.Create so the
// aggregate and the review land in one transaction.
type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

const profileColumns = `id, user_id, bio, profile_picture_url,
	total_sales, average_rating, is_verified_seller, created_at, updated_at`

// GetByUserID loads the profile owned by the given user.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID uint64) (*model.UserProfile, error) {
	var p model.UserProfile
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM user_profiles WHERE user_id = ?", userID).
		Scan(&p.ID, &p.UserID, &p.Bio, &p.ProfilePictureURL,
			&p.TotalSales, &p.AverageRating, &p.IsVerifiedSeller, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateInfo applies the provided fields to the user's profile. Nil
// pointers leave the column untouched; passing both as nil is a no-op.
func (r *ProfileRepo) UpdateInfo(ctx context.Context, userID uint64, bio, pictureURL *string) error {
	sets := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)
	if bio != nil {
		sets = append(sets, "bio = ?")
		args = append(args, *bio)
	}
	if pictureURL != nil {
		sets = append(sets, "profile_picture_url = ?")
		args = append(args, *pictureURL)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, userID)
	q := "UPDATE user_profiles SET " + strings.Join(sets, ", ") + " WHERE user_id = ?"
	_, err := r.DB.ExecContext(ctx, q, args...)
	return err
}
