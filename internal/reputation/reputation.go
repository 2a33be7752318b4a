// Package reputation derives a seller's trust statistics from their full
// review history. The repository layer calls it while holding the subject's
// profile row locked, so the summary it writes is always consistent with
// the review set read in the same transaction.
package reputation

import "github.com/seatswap/seatswap/internal/model"

// Auto-verification threshold: a seller becomes verified once they have at
// least VerifyMinReviews reviews averaging VerifyMinAverage or better.
const (
	VerifyMinReviews = 5
	VerifyMinAverage = 4.5
)

// Summary is the aggregate over one user's received ratings.
type Summary struct {
	Count   int
	Average float64
}

// Summarize computes the arithmetic mean over the complete rating set.
// The mean is always rederived from every stored rating rather than
// adjusted incrementally, so it cannot drift. An empty set yields a zero
// average.
func Summarize(ratings []int) Summary {
	s := Summary{Count: len(ratings)}
	if s.Count == 0 {
		return s
	}
	total := 0
	for _, r := range ratings {
		total += r
	}
	s.Average = float64(total) / float64(s.Count)
	return s
}

// Qualifies reports whether the summary meets the auto-verification
// threshold.
func Qualifies(s Summary) bool {
	return s.Count >= VerifyMinReviews && s.Average >= VerifyMinAverage
}

// Apply writes the summary onto the profile. The verified-seller flag is a
// one-way latch: Apply can set it but never clears it, even when the
// average has fallen back below the threshold.
func Apply(p *model.UserProfile, s Summary) {
	p.AverageRating = s.Average
	if Qualifies(s) {
		p.IsVerifiedSeller = true
	}
}
