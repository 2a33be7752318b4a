package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/seatswap/seatswap/internal/guard"
	"github.com/seatswap/seatswap/internal/model"
	"github.com/seatswap/seatswap/internal/repository"
)

// ListingHandler bundles dependencies for the listing endpoints.
type ListingHandler struct {
	Listings *repository.ListingRepo
}

func NewListingHandler(l *repository.ListingRepo) *ListingHandler {
	return &ListingHandler{Listings: l}
}

type createListingReq struct {
	ArtistName        string  `json:"artist_name"`
	ConcertDate       string  `json:"concert_date"` // YYYY-MM-DD
	VenueName         string  `json:"venue_name"`
	Section           *string `json:"section"`
	RowLabel          *string `json:"row"`
	SeatNumber        *string `json:"seat_number"`
	Price             float64 `json:"price"`
	QuantityAvailable int     `json:"quantity_available"`
	Description       *string `json:"description"`
}

// Create adds a listing owned by the caller.
func (h *ListingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createListingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	concertDate, err := time.Parse("2006-01-02", strings.TrimSpace(req.ConcertDate))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "concert_date must be YYYY-MM-DD"})
	}
	if msg := validateNewListing(newListingInput{
		ArtistName:        req.ArtistName,
		VenueName:         req.VenueName,
		ConcertDate:       concertDate,
		Price:             req.Price,
		QuantityAvailable: req.QuantityAvailable,
	}, time.Now().UTC()); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l := &model.Listing{
		SellerID:          uid,
		ArtistName:        strings.TrimSpace(req.ArtistName),
		ConcertDate:       concertDate,
		VenueName:         strings.TrimSpace(req.VenueName),
		Section:           req.Section,
		RowLabel:          req.RowLabel,
		SeatNumber:        req.SeatNumber,
		Price:             req.Price,
		QuantityAvailable: req.QuantityAvailable,
		Description:       req.Description,
		IsAvailable:       true,
	}
	if err := h.Listings.Create(ctx, l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create listing failed"})
	}

	ctx2, cancel2 := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel2()
	detail, err := h.Listings.GetDetail(ctx2, l.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusCreated, detail)
}

// parseListingFilter reads the browse query parameters.
func parseListingFilter(c echo.Context) repository.ListingFilter {
	f := repository.ListingFilter{Available: true}
	f.Artist = strings.TrimSpace(c.QueryParam("artist"))
	f.Venue = strings.TrimSpace(c.QueryParam("venue"))
	f.Section = strings.TrimSpace(c.QueryParam("section"))
	if v, err := strconv.ParseFloat(c.QueryParam("min_price"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("max_price"), 64); err == nil {
		f.MaxPrice = &v
	}
	if t, err := time.Parse("2006-01-02", c.QueryParam("date_from")); err == nil {
		f.DateFrom = &t
	}
	if t, err := time.Parse("2006-01-02", c.QueryParam("date_to")); err == nil {
		f.DateTo = &t
	}
	f.VerifiedSellerOnly = c.QueryParam("verified_seller_only") == "true"
	f.Skip, f.Limit = pageParams(c, 20, 100)
	return f
}

// List is the public browse endpoint: available listings filtered by
// artist, venue, section, price range, date range and seller trust.
func (h *ListingHandler) List(c echo.Context) error {
	f := parseListingFilter(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Listings.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one listing with seller info.
func (h *ListingHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Listings.GetDetail(ctx, id)
	if err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, d)
}

type updateListingReq struct {
	Price             *float64 `json:"price"`
	QuantityAvailable *int     `json:"quantity_available"`
	Description       *string  `json:"description"`
	IsAvailable       *bool    `json:"is_available"`
}

// loadOwned fetches a listing and enforces that the caller is its seller.
// Existence is checked before ownership so probing IDs cannot distinguish
// "absent" from "someone else's".
func (h *ListingHandler) loadOwned(ctx context.Context, c echo.Context, uid uint64) (*model.Listing, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
		return nil, false
	}
	l, err := h.Listings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrListingNotFound {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		return nil, false
	}
	if !guard.CanMutateListing(uid, l) {
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": "not your listing"})
		return nil, false
	}
	return l, true
}

// Update edits the caller's own listing.
func (h *ListingHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateListingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Price != nil && *req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be positive"})
	}
	if req.QuantityAvailable != nil && *req.QuantityAvailable < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity_available must not be negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, ok := h.loadOwned(ctx, c, uid)
	if !ok {
		return nil
	}
	if err := h.Listings.Update(ctx, l.ID, repository.ListingUpdate{
		Price:             req.Price,
		QuantityAvailable: req.QuantityAvailable,
		Description:       req.Description,
		IsAvailable:       req.IsAvailable,
	}); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	d, err := h.Listings.GetDetail(ctx, l.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, d)
}

// Delete removes the caller's own listing.
func (h *ListingHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, ok := h.loadOwned(ctx, c, uid)
	if !ok {
		return nil
	}
	if err := h.Listings.Delete(ctx, l.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
