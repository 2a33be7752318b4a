package model

import "time"

// Listing is a ticket offer in the `listings` table. A listing belongs to
// the seller who created it; only that seller may change or remove it.
// Deleting a listing removes its messages and reviews via foreign keys.
//
// Fields:
//  ID                – primary key identifier.
//  SellerID          – user ID of the seller.
//  ArtistName        – performing artist.
//  ConcertDate       – date of the concert (must be in the future on create).
//  VenueName         – venue where the concert takes place.
//  Section/RowLabel/SeatNumber – optional seat descriptors.
//  Price             – asking price in dollars, positive.
//  QuantityAvailable – number of tickets offered, positive on create.
//  Description       – optional free text.
//  IsAvailable       – whether the listing is currently for sale.
type Listing struct {
	ID                uint64    // listings.id
	SellerID          uint64    // listings.seller_id
	ArtistName        string    // listings.artist_name
	ConcertDate       time.Time // listings.concert_date (DATE)
	VenueName         string    // listings.venue_name
	Section           *string   // listings.section (nullable)
	RowLabel          *string   // listings.row_label (nullable)
	SeatNumber        *string   // listings.seat_number (nullable)
	Price             float64   // listings.price (DECIMAL 10,2)
	QuantityAvailable int       // listings.quantity_available
	Description       *string   // listings.description (nullable)
	IsAvailable       bool      // listings.is_available
	CreatedAt         time.Time // listings.created_at
	UpdatedAt         time.Time // listings.updated_at
}
