// Package guard holds the authorization predicates evaluated before any
// mutation of a listing, message or review. Handlers resolve the target
// resource first, so a missing resource is reported as not found before
// ownership is ever examined, and then consult these predicates to decide
// between proceeding and a forbidden response. Self-targeting checks are
// separate because reviewing or messaging yourself is a malformed request
// rather than an authorization failure.
package guard

import "github.com/seatswap/seatswap/internal/model"

// CanMutateListing reports whether the actor may update or delete the
// listing. Only the seller who created it may.
func CanMutateListing(actorID uint64, l *model.Listing) bool {
	return l.SellerID == actorID
}

// IsMessageParty reports whether the actor is the sender or the receiver
// of the message. Either party may view or delete it.
func IsMessageParty(actorID uint64, m *model.Message) bool {
	return m.SenderID == actorID || m.ReceiverID == actorID
}

// CanMarkRead reports whether the actor may transition the message to
// read. Only the receiver may; a sender viewing their own message is a
// pure read with no state change.
func CanMarkRead(actorID uint64, m *model.Message) bool {
	return m.ReceiverID == actorID
}

// IsSelfAction reports whether the actor is targeting themselves, which
// is rejected for review creation and message sending.
func IsSelfAction(actorID, targetID uint64) bool {
	return actorID == targetID
}
