package conversation

import (
	"testing"
	"time"

	"github.com/seatswap/seatswap/internal/model"
)

func at(sec int) time.Time {
	return time.Date(2025, 6, 1, 12, 0, sec, 0, time.UTC)
}

func TestBuildInboxEmpty(t *testing.T) {
	t.Parallel()

	if got := BuildInbox(1, nil); len(got) != 0 {
		t.Errorf("no messages should produce no conversations, got %d", len(got))
	}
}

func TestBuildInboxSingleCounterparty(t *testing.T) {
	t.Parallel()

	// B (id 2) messages C (id 3) three times; C reads nothing yet.
	msgs := []model.Message{
		{ID: 1, SenderID: 2, ReceiverID: 3, MessageText: "still available?", CreatedAt: at(1)},
		{ID: 2, SenderID: 2, ReceiverID: 3, MessageText: "can do $140", CreatedAt: at(2)},
		{ID: 3, SenderID: 2, ReceiverID: 3, MessageText: "hello?", CreatedAt: at(3)},
	}

	inbox := BuildInbox(3, msgs)
	if len(inbox) != 1 {
		t.Fatalf("expected one conversation, got %d", len(inbox))
	}
	s := inbox[0]
	if s.UserID != 2 {
		t.Errorf("counterparty = %d, want 2", s.UserID)
	}
	if s.UnreadCount != 3 {
		t.Errorf("unread count = %d, want 3", s.UnreadCount)
	}
	if s.LastMessage != "hello?" || !s.LastMessageTime.Equal(at(3)) {
		t.Errorf("last message = %q at %v, want the newest message", s.LastMessage, s.LastMessageTime)
	}

	// After C fetches the conversation every message is read; rebuilding
	// the projection drops the unread count to zero and changes nothing
	// else. A second rebuild is identical.
	for i := range msgs {
		msgs[i].IsRead = true
	}
	for run := 0; run < 2; run++ {
		inbox = BuildInbox(3, msgs)
		if len(inbox) != 1 || inbox[0].UnreadCount != 0 {
			t.Fatalf("run %d: unread count after read = %d, want 0", run, inbox[0].UnreadCount)
		}
		if inbox[0].LastMessage != "hello?" {
			t.Errorf("run %d: last message changed to %q", run, inbox[0].LastMessage)
		}
	}
}

func TestBuildInboxOrderingAndCounts(t *testing.T) {
	t.Parallel()

	// User 1 talks with 2 and 3. The conversation with 3 has the newest
	// message and must come first. Messages user 1 sent never count as
	// unread, and read flags only matter on the receiving side.
	msgs := []model.Message{
		{ID: 1, SenderID: 2, ReceiverID: 1, MessageText: "a", CreatedAt: at(1)},
		{ID: 2, SenderID: 1, ReceiverID: 2, MessageText: "b", IsRead: false, CreatedAt: at(2)},
		{ID: 3, SenderID: 3, ReceiverID: 1, MessageText: "c", IsRead: true, CreatedAt: at(3)},
		{ID: 4, SenderID: 3, ReceiverID: 1, MessageText: "d", CreatedAt: at(4)},
	}

	inbox := BuildInbox(1, msgs)
	if len(inbox) != 2 {
		t.Fatalf("expected two conversations, got %d", len(inbox))
	}
	if inbox[0].UserID != 3 || inbox[1].UserID != 2 {
		t.Fatalf("conversations out of order: %d then %d, want 3 then 2", inbox[0].UserID, inbox[1].UserID)
	}
	if inbox[0].LastMessage != "d" {
		t.Errorf("conversation with 3: last message = %q, want \"d\"", inbox[0].LastMessage)
	}
	if inbox[0].UnreadCount != 1 {
		t.Errorf("conversation with 3: unread = %d, want 1 (message 3 already read)", inbox[0].UnreadCount)
	}
	if inbox[1].UnreadCount != 1 {
		t.Errorf("conversation with 2: unread = %d, want 1 (own sent message is not unread)", inbox[1].UnreadCount)
	}
}

func TestBuildInboxNoGhostConversations(t *testing.T) {
	t.Parallel()

	// Only counterparties with at least one message may appear; user 9 has
	// never exchanged a message with user 1.
	msgs := []model.Message{
		{ID: 1, SenderID: 1, ReceiverID: 2, MessageText: "hi", CreatedAt: at(1)},
	}
	inbox := BuildInbox(1, msgs)
	if len(inbox) != 1 || inbox[0].UserID != 2 {
		t.Fatalf("inbox should contain exactly the one real counterparty, got %+v", inbox)
	}
}
