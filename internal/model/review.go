package model

import "time"

// Review is a rating left by one user about another, usually after a
// ticket sale. Reviews are append-only: there is no update or delete
// endpoint, and the same reviewer may rate the same user more than once.
// Each stored review triggers a recomputation of the reviewed user's
// profile statistics.
//
// Fields:
//  ID             – primary key identifier.
//  ReviewerID     – user who wrote the review.
//  ReviewedUserID – user being rated; never equal to ReviewerID.
//  ListingID      – listing the transaction concerned (nullable).
//  Rating         – integer star rating in [1,5].
//  Comment        – optional free text.
//  CreatedAt      – creation timestamp.
type Review struct {
	ID             uint64    // reviews.id
	ReviewerID     uint64    // reviews.reviewer_id
	ReviewedUserID uint64    // reviews.reviewed_user_id
	ListingID      *uint64   // reviews.listing_id (nullable)
	Rating         int       // reviews.rating
	Comment        *string   // reviews.comment (nullable)
	CreatedAt      time.Time // reviews.created_at
}
