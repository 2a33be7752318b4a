package model

import "time"

// User represents an account row in the `users` table. Every user can act
// as both buyer and seller; there is no role distinction. Trust statistics
// live on the companion UserProfile row, which is created in the same
// transaction as the user so no user is ever observable without one.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique display name.
//  Email        – unique login email.
//  PasswordHash – bcrypt hashed password.
//  IsVerified   – whether the email address has been confirmed.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username (unique)
	Email        string    // users.email (unique)
	PasswordHash string    // users.password_hash
	IsVerified   bool      // users.is_verified
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// UserProfile carries the derived reputation state for one user. Exactly
// one profile exists per user. AverageRating is the arithmetic mean over
// all reviews received by the user (0 when none exist) and is recomputed
// inside the transaction that stores each new review. IsVerifiedSeller is
// a one-way latch: it is set when the user accumulates enough high
// ratings and is never cleared, even if the average later drops below the
// threshold.
type UserProfile struct {
	ID                uint64    // user_profiles.id
	UserID            uint64    // user_profiles.user_id (unique)
	Bio               *string   // user_profiles.bio (nullable)
	ProfilePictureURL *string   // user_profiles.profile_picture_url (nullable)
	TotalSales        int       // user_profiles.total_sales
	AverageRating     float64   // user_profiles.average_rating (derived)
	IsVerifiedSeller  bool      // user_profiles.is_verified_seller (derived, latched)
	CreatedAt         time.Time // user_profiles.created_at
	UpdatedAt         time.Time // user_profiles.updated_at
}
