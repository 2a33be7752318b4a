package guard

import (
	"testing"

	"github.com/seatswap/seatswap/internal/model"
)

func TestCanMutateListing(t *testing.T) {
	t.Parallel()

	l := &model.Listing{ID: 10, SellerID: 7}
	if !CanMutateListing(7, l) {
		t.Error("seller should be allowed to mutate their own listing")
	}
	if CanMutateListing(8, l) {
		t.Error("non-seller must not be allowed to mutate the listing")
	}
}

func TestMessagePredicates(t *testing.T) {
	t.Parallel()

	m := &model.Message{ID: 1, SenderID: 2, ReceiverID: 3}

	if !IsMessageParty(2, m) || !IsMessageParty(3, m) {
		t.Error("both sender and receiver are parties to the message")
	}
	if IsMessageParty(4, m) {
		t.Error("third user is not a party to the message")
	}

	if CanMarkRead(2, m) {
		t.Error("sender must not be able to mark the message read")
	}
	if !CanMarkRead(3, m) {
		t.Error("receiver should be able to mark the message read")
	}
	if CanMarkRead(4, m) {
		t.Error("third user must not be able to mark the message read")
	}
}

func TestIsSelfAction(t *testing.T) {
	t.Parallel()

	if !IsSelfAction(5, 5) {
		t.Error("same actor and target is a self action")
	}
	if IsSelfAction(5, 6) {
		t.Error("distinct actor and target is not a self action")
	}
}
