package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/seatswap/seatswap/internal/model"
)

// ListingRepo provides CRUD operations for ticket listings.
type ListingRepo struct{ DB *sql.DB }

func NewListingRepo(db *sql.DB) *ListingRepo { return &ListingRepo{DB: db} }

// SellerInfo is the seller summary embedded in listing responses.
type SellerInfo struct {
	ID               uint64  `json:"id"`
	Username         string  `json:"username"`
	TotalSales       int     `json:"total_sales"`
	AverageRating    float64 `json:"average_rating"`
	IsVerifiedSeller bool    `json:"is_verified_seller"`
}

// ListingDetail is a listing joined with its seller's public trust
// statistics, as shown on browse and detail endpoints.
type ListingDetail struct {
	ID                uint64     `json:"id"`
	ArtistName        string     `json:"artist_name"`
	ConcertDate       string     `json:"concert_date"`
	VenueName         string     `json:"venue_name"`
	Section           *string    `json:"section,omitempty"`
	RowLabel          *string    `json:"row,omitempty"`
	SeatNumber        *string    `json:"seat_number,omitempty"`
	Price             float64    `json:"price"`
	QuantityAvailable int        `json:"quantity_available"`
	Description       *string    `json:"description,omitempty"`
	IsAvailable       bool       `json:"is_available"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	Seller            SellerInfo `json:"seller"`
}

// ListingFilter holds the optional browse filters. Zero values mean
// "no constraint" except Available, which is always applied.
type ListingFilter struct {
	Artist             string
	Venue              string
	Section            string
	MinPrice           *float64
	MaxPrice           *float64
	DateFrom           *time.Time
	DateTo             *time.Time
	VerifiedSellerOnly bool
	Available          bool
	Skip               int
	Limit              int
}

// Create inserts a listing and populates its generated ID and timestamps.
func (r *ListingRepo) Create(ctx context.Context, l *model.Listing) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO listings
		 (seller_id, artist_name, concert_date, venue_name, section, row_label,
		  seat_number, price, quantity_available, description, is_available)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		l.SellerID, l.ArtistName, l.ConcertDate.Format("2006-01-02"), l.VenueName,
		l.Section, l.RowLabel, l.SeatNumber, l.Price, l.QuantityAvailable,
		l.Description, l.IsAvailable)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM listings WHERE id = ?", l.ID).
		Scan(&l.CreatedAt, &l.UpdatedAt)
}

// GetByID loads a bare listing row, used by the mutation paths before the
// ownership check. ErrListingNotFound when absent.
func (r *ListingRepo) GetByID(ctx context.Context, id uint64) (*model.Listing, error) {
	const q = `SELECT id, seller_id, artist_name, concert_date, venue_name, section,
	                  row_label, seat_number, price, quantity_available, description,
	                  is_available, created_at, updated_at
	           FROM listings WHERE id = ?`
	var l model.Listing
	err := r.DB.QueryRowContext(ctx, q, id).Scan(
		&l.ID, &l.SellerID, &l.ArtistName, &l.ConcertDate, &l.VenueName, &l.Section,
		&l.RowLabel, &l.SeatNumber, &l.Price, &l.QuantityAvailable, &l.Description,
		&l.IsAvailable, &l.CreatedAt, &l.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

const listingDetailSelect = `SELECT l.id, l.artist_name, l.concert_date, l.venue_name,
	       l.section, l.row_label, l.seat_number, l.price, l.quantity_available,
	       l.description, l.is_available, l.created_at, l.updated_at,
	       u.id, u.username, p.total_sales, p.average_rating, p.is_verified_seller
	FROM listings l
	JOIN users u ON u.id = l.seller_id
	JOIN user_profiles p ON p.user_id = u.id`

func scanListingDetail(rows *sql.Rows) (ListingDetail, error) {
	var d ListingDetail
	var concertDate time.Time
	err := rows.Scan(&d.ID, &d.ArtistName, &concertDate, &d.VenueName,
		&d.Section, &d.RowLabel, &d.SeatNumber, &d.Price, &d.QuantityAvailable,
		&d.Description, &d.IsAvailable, &d.CreatedAt, &d.UpdatedAt,
		&d.Seller.ID, &d.Seller.Username, &d.Seller.TotalSales,
		&d.Seller.AverageRating, &d.Seller.IsVerifiedSeller)
	d.ConcertDate = concertDate.Format("2006-01-02")
	return d, err
}

// GetDetail loads a listing joined with seller info for display.
func (r *ListingRepo) GetDetail(ctx context.Context, id uint64) (*ListingDetail, error) {
	rows, err := r.DB.QueryContext(ctx, listingDetailSelect+" WHERE l.id = ?", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrListingNotFound
	}
	d, err := scanListingDetail(rows)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// buildListWhere turns the filter into a WHERE clause and its arguments.
// Text matches are case-insensitive substring matches; price and date
// bounds are inclusive.
func buildListWhere(f ListingFilter) (string, []interface{}) {
	conds := []string{"l.is_available = ?"}
	args := []interface{}{f.Available}
	if f.Artist != "" {
		conds = append(conds, "LOWER(l.artist_name) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Artist)+"%")
	}
	if f.Venue != "" {
		conds = append(conds, "LOWER(l.venue_name) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Venue)+"%")
	}
	if f.Section != "" {
		conds = append(conds, "l.section = ?")
		args = append(args, f.Section)
	}
	if f.MinPrice != nil {
		conds = append(conds, "l.price >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conds = append(conds, "l.price <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.DateFrom != nil {
		conds = append(conds, "l.concert_date >= ?")
		args = append(args, f.DateFrom.Format("2006-01-02"))
	}
	if f.DateTo != nil {
		conds = append(conds, "l.concert_date <= ?")
		args = append(args, f.DateTo.Format("2006-01-02"))
	}
	if f.VerifiedSellerOnly {
		conds = append(conds, "p.is_verified_seller = 1")
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns listings matching the filter, soonest concert first.
func (r *ListingRepo) List(ctx context.Context, f ListingFilter) ([]ListingDetail, error) {
	where, args := buildListWhere(f)
	q := listingDetailSelect + where + " ORDER BY l.concert_date ASC, l.id ASC LIMIT ? OFFSET ?"
	args = append(args, f.Limit, f.Skip)
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ListingDetail, 0)
	for rows.Next() {
		d, err := scanListingDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListBySeller returns a seller's available listings, soonest concert
// first. Callers verify the seller exists beforehand.
func (r *ListingRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]ListingDetail, error) {
	q := listingDetailSelect + " WHERE l.seller_id = ? AND l.is_available = 1 ORDER BY l.concert_date ASC, l.id ASC"
	rows, err := r.DB.QueryContext(ctx, q, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ListingDetail, 0)
	for rows.Next() {
		d, err := scanListingDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListingUpdate holds the mutable listing fields; nil pointers leave the
// column untouched.
type ListingUpdate struct {
	Price             *float64
	QuantityAvailable *int
	Description       *string
	IsAvailable       *bool
}

// Update applies the provided fields. Ownership is checked by the caller
// before this runs.
func (r *ListingRepo) Update(ctx context.Context, id uint64, u ListingUpdate) error {
	sets := make([]string, 0, 5)
	args := make([]interface{}, 0, 5)
	if u.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *u.Price)
	}
	if u.QuantityAvailable != nil {
		sets = append(sets, "quantity_available = ?")
		args = append(args, *u.QuantityAvailable)
	}
	if u.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *u.Description)
	}
	if u.IsAvailable != nil {
		sets = append(sets, "is_available = ?")
		args = append(args, *u.IsAvailable)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	q := "UPDATE listings SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	_, err := r.DB.ExecContext(ctx, q, args...)
	return err
}

// Delete removes a listing. Its messages and reviews go with it via
// ON DELETE CASCADE. Ownership is checked by the caller.
func (r *ListingRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM listings WHERE id = ?", id)
	return err
}
