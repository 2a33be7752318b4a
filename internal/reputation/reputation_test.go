package reputation

import (
	"testing"

	"github.com/seatswap/seatswap/internal/model"
)

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()

	s := Summarize(nil)
	if s.Count != 0 || s.Average != 0 {
		t.Errorf("empty rating set should summarize to zero, got %+v", s)
	}
}

func TestSummarizeMean(t *testing.T) {
	t.Parallel()

	cases := []struct {
		ratings []int
		want    float64
	}{
		{[]int{5}, 5},
		{[]int{1, 5}, 3},
		{[]int{5, 5, 5, 5, 5}, 5},
		{[]int{5, 5, 5, 5, 5, 1}, 26.0 / 6.0},
		{[]int{4, 4, 5}, 13.0 / 3.0},
	}
	for _, c := range cases {
		s := Summarize(c.ratings)
		if s.Count != len(c.ratings) {
			t.Errorf("Summarize(%v) count = %d, want %d", c.ratings, s.Count, len(c.ratings))
		}
		if s.Average != c.want {
			t.Errorf("Summarize(%v) average = %v, want %v", c.ratings, s.Average, c.want)
		}
	}
}

func TestQualifiesThreshold(t *testing.T) {
	t.Parallel()

	cases := []struct {
		s    Summary
		want bool
	}{
		{Summary{Count: 4, Average: 5}, false},   // not enough reviews
		{Summary{Count: 5, Average: 5}, true},    // exactly at both thresholds
		{Summary{Count: 5, Average: 4.5}, true},  // boundary average counts
		{Summary{Count: 5, Average: 4.49}, false},
		{Summary{Count: 100, Average: 4.4}, false},
		{Summary{Count: 6, Average: 26.0 / 6.0}, false},
	}
	for _, c := range cases {
		if got := Qualifies(c.s); got != c.want {
			t.Errorf("Qualifies(%+v) = %v, want %v", c.s, got, c.want)
		}
	}
}

// A fresh seller collects five 5-star reviews and becomes verified; a later
// 1-star review drops the average but the verification latch holds.
func TestApplyLatch(t *testing.T) {
	t.Parallel()

	p := &model.UserProfile{UserID: 1}
	if p.AverageRating != 0 || p.IsVerifiedSeller {
		t.Fatal("new profile should start unrated and unverified")
	}

	ratings := []int{}
	for i := 0; i < 5; i++ {
		ratings = append(ratings, 5)
		Apply(p, Summarize(ratings))
	}
	if p.AverageRating != 5 {
		t.Errorf("average after five 5-star reviews = %v, want 5", p.AverageRating)
	}
	if !p.IsVerifiedSeller {
		t.Error("seller should be verified after five 5-star reviews")
	}

	ratings = append(ratings, 1)
	Apply(p, Summarize(ratings))
	if want := 26.0 / 6.0; p.AverageRating != want {
		t.Errorf("average after the 1-star review = %v, want %v", p.AverageRating, want)
	}
	if !p.IsVerifiedSeller {
		t.Error("verification must not be revoked once granted")
	}
}

func TestApplyDoesNotVerifyEarly(t *testing.T) {
	t.Parallel()

	p := &model.UserProfile{UserID: 2}
	Apply(p, Summarize([]int{5, 5, 5, 5}))
	if p.IsVerifiedSeller {
		t.Error("four reviews must not verify the seller regardless of average")
	}
	Apply(p, Summarize([]int{3, 3, 3, 3, 3, 3}))
	if p.IsVerifiedSeller {
		t.Error("low average must not verify the seller regardless of count")
	}
}
