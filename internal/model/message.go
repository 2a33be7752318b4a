package model

import "time"

// Message is a directed message between two users, optionally tied to a
// listing. Messages are immutable except for the read flag, which only
// ever transitions from unread to read (when the receiver views the
// message) and never back.
//
// Fields:
//  ID          – primary key identifier.
//  SenderID    – user who wrote the message.
//  ReceiverID  – user the message is addressed to.
//  ListingID   – listing the conversation is about (nullable).
//  MessageText – body text.
//  IsRead      – read flag, false until the receiver views the message.
//  CreatedAt   – creation timestamp.
type Message struct {
	ID          uint64    // messages.id
	SenderID    uint64    // messages.sender_id
	ReceiverID  uint64    // messages.receiver_id
	ListingID   *uint64   // messages.listing_id (nullable)
	MessageText string    // messages.message_text
	IsRead      bool      // messages.is_read
	CreatedAt   time.Time // messages.created_at
}
