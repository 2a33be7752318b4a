package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/seatswap/seatswap/internal/guard"
	"github.com/seatswap/seatswap/internal/model"
	"github.com/seatswap/seatswap/internal/queue"
	"github.com/seatswap/seatswap/internal/repository"
	queuepub "github.com/seatswap/seatswap/internal/service"
)

// UserHandler bundles dependencies for the profile, review and proof
// endpoints.
type UserHandler struct {
	Users    *repository.UserRepo
	Profiles *repository.ProfileRepo
	Reviews  *repository.ReviewRepo
	Proofs   *repository.ProofRepo
	Listings *repository.ListingRepo
}

func NewUserHandler(u *repository.UserRepo, p *repository.ProfileRepo, rv *repository.ReviewRepo, pr *repository.ProofRepo, l *repository.ListingRepo) *UserHandler {
	return &UserHandler{Users: u, Profiles: p, Reviews: rv, Proofs: pr, Listings: l}
}

// GetProfile returns a user's public profile. The email never appears
// here.
func (h *UserHandler) GetProfile(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Users.GetPublicProfile(ctx, id)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// MyProfile returns the caller's own profile including private fields.
func (h *UserHandler) MyProfile(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	p, err := h.Profiles.GetByUserID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":                  u.ID,
		"username":            u.Username,
		"email":               u.Email,
		"bio":                 p.Bio,
		"profile_picture_url": p.ProfilePictureURL,
		"total_sales":         p.TotalSales,
		"average_rating":      p.AverageRating,
		"is_verified_seller":  p.IsVerifiedSeller,
		"created_at":          u.CreatedAt,
	})
}

type updateProfileReq struct {
	Bio               *string `json:"bio"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

// UpdateMyProfile applies partial edits to the caller's profile. Omitted
// fields are left untouched.
func (h *UserHandler) UpdateMyProfile(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Profiles.UpdateInfo(ctx, uid, req.Bio, req.ProfilePictureURL); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	p, err := h.Profiles.GetByUserID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"bio":                 p.Bio,
		"profile_picture_url": p.ProfilePictureURL,
		"total_sales":         p.TotalSales,
		"average_rating":      p.AverageRating,
		"is_verified_seller":  p.IsVerifiedSeller,
	})
}

// SearchUsers finds public profiles by username substring; verified_only=true
// restricts the result to verified sellers.
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	verifiedOnly := c.QueryParam("verified_only") == "true"
	skip, limit := pageParams(c, 20, 100)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Users.Search(ctx, query, verifiedOnly, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteMe removes the caller's account, their listings, reviews, proof
// entries, tokens and messages.
func (h *UserHandler) DeleteMe(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Delete(ctx, uid); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

type createReviewReq struct {
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment"`
	ListingID *uint64 `json:"listing_id"`
}

// CreateReview records a review of the target user and returns the
// review together with the subject's refreshed reputation. Checks run in
// a fixed order: target existence, self-review, rating range, listing
// existence.
func (h *UserHandler) CreateReview(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	targetID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, targetID); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if guard.IsSelfAction(uid, targetID) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot review yourself"})
	}
	if !validateRating(req.Rating) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}
	if req.ListingID != nil {
		if _, err := h.Listings.GetByID(ctx, *req.ListingID); err != nil {
			if err == repository.ErrListingNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
	}

	rev := &model.Review{
		ReviewerID:     uid,
		ReviewedUserID: targetID,
		ListingID:      req.ListingID,
		Rating:         req.Rating,
		Comment:        req.Comment,
	}
	profile, err := h.Reviews.Create(ctx, rev)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}

	// Best effort; the review and aggregate already committed.
	_ = queuepub.PublishReviewCreated(c.Request().Context(), queue.ReviewCreatedEvent{
		ReviewID:         rev.ID,
		ReviewerID:       rev.ReviewerID,
		ReviewedUserID:   rev.ReviewedUserID,
		ListingID:        rev.ListingID,
		Rating:           rev.Rating,
		NewAverageRating: profile.AverageRating,
		IsVerifiedSeller: profile.IsVerifiedSeller,
		CreatedAt:        rev.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"id":                 rev.ID,
		"reviewer_id":        rev.ReviewerID,
		"reviewed_user_id":   rev.ReviewedUserID,
		"listing_id":         rev.ListingID,
		"rating":             rev.Rating,
		"comment":            rev.Comment,
		"created_at":         rev.CreatedAt,
		"average_rating":     profile.AverageRating,
		"is_verified_seller": profile.IsVerifiedSeller,
	})
}

// ListReviews returns the reviews received by a user, newest first.
func (h *UserHandler) ListReviews(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	skip, limit := pageParams(c, 20, 100)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, id); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out, err := h.Reviews.ListForUser(ctx, id, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}

type uploadProofReq struct {
	ProofImageURL string  `json:"proof_image_url"`
	Description   *string `json:"description"`
}

// UploadProof attaches a sale-evidence entry to the caller's own account.
func (h *UserHandler) UploadProof(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req uploadProofReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.ProofImageURL) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "proof_image_url required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := &model.SellerProof{
		SellerID:      uid,
		ProofImageURL: strings.TrimSpace(req.ProofImageURL),
		Description:   req.Description,
	}
	if err := h.Proofs.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create proof failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":              p.ID,
		"seller_id":       p.SellerID,
		"proof_image_url": p.ProofImageURL,
		"description":     p.Description,
		"created_at":      p.CreatedAt,
	})
}

// ListProof returns a user's proof entries, newest first.
func (h *UserHandler) ListProof(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, id); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	entries, err := h.Proofs.ListBySeller(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]echo.Map, 0, len(entries))
	for _, p := range entries {
		out = append(out, echo.Map{
			"id":              p.ID,
			"seller_id":       p.SellerID,
			"proof_image_url": p.ProofImageURL,
			"description":     p.Description,
			"created_at":      p.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// ListingsBySeller returns a user's available listings.
func (h *UserHandler) ListingsBySeller(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, id); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out, err := h.Listings.ListBySeller(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}
