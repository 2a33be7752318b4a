// Package conversation builds the per-counterparty inbox projection from a
// user's message history. The projection is recomputed in full on every
// request; nothing is persisted or cached. That is acceptable because the
// input is one user's messages, which stays small; callers needing this at
// scale should cache externally.
package conversation

import (
	"sort"
	"time"

	"github.com/seatswap/seatswap/internal/model"
)

// Summary describes the state of one conversation: the counterparty, the
// most recent message between the two users and how many of their messages
// the inbox owner has not read yet. Username is filled in by the caller
// after the projection is built.
type Summary struct {
	UserID          uint64    `json:"user_id"`
	Username        string    `json:"username"`
	LastMessage     string    `json:"last_message"`
	LastMessageTime time.Time `json:"last_message_time"`
	UnreadCount     int       `json:"unread_count"`
}

// BuildInbox derives one Summary per distinct counterparty appearing in
// msgs, which must be the messages sent or received by userID. A
// counterparty appears only when at least one message with them exists, so
// the inbox can never contain empty conversations. The result is ordered
// by last-message time, newest first.
func BuildInbox(userID uint64, msgs []model.Message) []Summary {
	index := make(map[uint64]int)
	out := make([]Summary, 0)
	for _, m := range msgs {
		other := m.SenderID
		if other == userID {
			other = m.ReceiverID
		}
		i, ok := index[other]
		if !ok {
			i = len(out)
			index[other] = i
			out = append(out, Summary{UserID: other})
		}
		s := &out[i]
		if m.CreatedAt.After(s.LastMessageTime) {
			s.LastMessage = m.MessageText
			s.LastMessageTime = m.CreatedAt
		}
		if m.SenderID == other && m.ReceiverID == userID && !m.IsRead {
			s.UnreadCount++
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageTime.After(out[j].LastMessageTime)
	})
	return out
}
