// Package queue defines message payloads exchanged over the message broker.
package queue

// ReviewCreatedEvent is published after a review is stored and the
// reviewed user's reputation has been recomputed. It carries enough for
// downstream consumers to notify or feed analytics without querying the
// primary database.
type ReviewCreatedEvent struct {
	ReviewID         uint64  `json:"review_id"`
	ReviewerID       uint64  `json:"reviewer_id"`
	ReviewedUserID   uint64  `json:"reviewed_user_id"`
	ListingID        *uint64 `json:"listing_id,omitempty"`
	Rating           int     `json:"rating"`
	NewAverageRating float64 `json:"new_average_rating"`
	IsVerifiedSeller bool    `json:"is_verified_seller"`
	CreatedAt        string  `json:"created_at"`
}

// UserRegisteredEvent is published after a new account and its profile
// are committed. Consumers use it to send welcome or verification mail.
type UserRegisteredEvent struct {
	UserID       uint64 `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	RegisteredAt string `json:"registered_at"`
}
