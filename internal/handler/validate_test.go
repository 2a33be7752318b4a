package handler

import (
	"testing"
	"time"
)

func TestValidateRating(t *testing.T) {
	t.Parallel()

	for _, r := range []int{1, 2, 3, 4, 5} {
		if !validateRating(r) {
			t.Errorf("rating %d rejected", r)
		}
	}
	for _, r := range []int{0, -1, 6, 100} {
		if validateRating(r) {
			t.Errorf("rating %d accepted", r)
		}
	}
}

func TestValidateNewListing(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ok := newListingInput{
		ArtistName:        "The National",
		VenueName:         "Red Rocks",
		ConcertDate:       now.AddDate(0, 1, 0),
		Price:             120.50,
		QuantityAvailable: 2,
	}
	if msg := validateNewListing(ok, now); msg != "" {
		t.Fatalf("valid input rejected: %s", msg)
	}

	cases := []struct {
		name   string
		mutate func(*newListingInput)
	}{
		{"blank artist", func(in *newListingInput) { in.ArtistName = "  " }},
		{"blank venue", func(in *newListingInput) { in.VenueName = "" }},
		{"zero date", func(in *newListingInput) { in.ConcertDate = time.Time{} }},
		{"past date", func(in *newListingInput) { in.ConcertDate = now.AddDate(0, -1, 0) }},
		{"same-instant date", func(in *newListingInput) { in.ConcertDate = now }},
		{"zero price", func(in *newListingInput) { in.Price = 0 }},
		{"negative price", func(in *newListingInput) { in.Price = -5 }},
		{"zero quantity", func(in *newListingInput) { in.QuantityAvailable = 0 }},
	}
	for _, c := range cases {
		in := ok
		c.mutate(&in)
		if msg := validateNewListing(in, now); msg == "" {
			t.Errorf("%s: accepted", c.name)
		}
	}
}

func TestValidateMessageText(t *testing.T) {
	t.Parallel()

	if validateMessageText("   ") || validateMessageText("") {
		t.Error("blank text accepted")
	}
	if !validateMessageText("is this still available?") {
		t.Error("normal text rejected")
	}
}
