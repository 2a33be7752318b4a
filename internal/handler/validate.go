package handler

import (
	"strings"
	"time"
)

// validateRating reports whether a rating sits in the accepted 1..5 range.
func validateRating(r int) bool { return r >= 1 && r <= 5 }

// newListingInput carries the fields checked before a listing insert.
type newListingInput struct {
	ArtistName        string
	VenueName         string
	ConcertDate       time.Time
	Price             float64
	QuantityAvailable int
}

// validateNewListing returns an empty string when the input is acceptable,
// otherwise a message suitable for the 400 response. The concert date must
// be in the future: stale inventory is unsellable.
func validateNewListing(in newListingInput, now time.Time) string {
	if strings.TrimSpace(in.ArtistName) == "" {
		return "artist_name required"
	}
	if strings.TrimSpace(in.VenueName) == "" {
		return "venue_name required"
	}
	if in.ConcertDate.IsZero() {
		return "concert_date required"
	}
	if !in.ConcertDate.After(now) {
		return "concert_date must be in the future"
	}
	if in.Price <= 0 {
		return "price must be positive"
	}
	if in.QuantityAvailable < 1 {
		return "quantity_available must be at least 1"
	}
	return ""
}

// validateMessageText rejects empty or whitespace-only message bodies.
func validateMessageText(s string) bool { return strings.TrimSpace(s) != "" }
