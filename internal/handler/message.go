package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/seatswap/seatswap/internal/conversation"
	"github.com/seatswap/seatswap/internal/guard"
	"github.com/seatswap/seatswap/internal/model"
	"github.com/seatswap/seatswap/internal/repository"
)

// MessageHandler bundles dependencies for the messaging endpoints.
type MessageHandler struct {
	Messages *repository.MessageRepo
	Users    *repository.UserRepo
	Listings *repository.ListingRepo
}

func NewMessageHandler(m *repository.MessageRepo, u *repository.UserRepo, l *repository.ListingRepo) *MessageHandler {
	return &MessageHandler{Messages: m, Users: u, Listings: l}
}

func messageJSON(m *model.Message) echo.Map {
	return echo.Map{
		"id":           m.ID,
		"sender_id":    m.SenderID,
		"receiver_id":  m.ReceiverID,
		"listing_id":   m.ListingID,
		"message_text": m.MessageText,
		"is_read":      m.IsRead,
		"created_at":   m.CreatedAt,
	}
}

func messagesJSON(msgs []model.Message) []echo.Map {
	out := make([]echo.Map, 0, len(msgs))
	for i := range msgs {
		out = append(out, messageJSON(&msgs[i]))
	}
	return out
}

type sendMessageReq struct {
	ReceiverID  uint64  `json:"receiver_id"`
	ListingID   *uint64 `json:"listing_id"`
	MessageText string  `json:"message_text"`
}

// Send delivers a message to another user. Checks run in a fixed order:
// receiver existence, self-send, empty text, listing existence.
func (h *MessageHandler) Send(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req sendMessageReq
	if err := c.Bind(&req); err != nil || req.ReceiverID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "receiver_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, req.ReceiverID); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "receiver not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if guard.IsSelfAction(uid, req.ReceiverID) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot message yourself"})
	}
	if !validateMessageText(req.MessageText) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message_text required"})
	}
	if req.ListingID != nil {
		if _, err := h.Listings.GetByID(ctx, *req.ListingID); err != nil {
			if err == repository.ErrListingNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
	}

	m := &model.Message{
		SenderID:    uid,
		ReceiverID:  req.ReceiverID,
		ListingID:   req.ListingID,
		MessageText: strings.TrimSpace(req.MessageText),
	}
	if err := h.Messages.Create(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "send failed"})
	}
	return c.JSON(http.StatusCreated, messageJSON(m))
}

// ListMine returns the caller's messages, newest first. unread_only=true
// restricts to unread messages addressed to the caller.
func (h *MessageHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	unreadOnly := c.QueryParam("unread_only") == "true"
	skip, limit := pageParams(c, 50, 200)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	msgs, err := h.Messages.ListForUser(ctx, uid, unreadOnly, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, messagesJSON(msgs))
}

// Conversation returns the thread with another user in chronological
// order. Everything they sent the caller is marked read in the same
// transaction, so viewing a thread always clears its unread count.
func (h *MessageHandler) Conversation(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	otherID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, otherID); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	msgs, err := h.Messages.ConversationWith(ctx, uid, otherID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, messagesJSON(msgs))
}

// GetOne returns a single message to one of its parties. When the
// receiver fetches it, the message is marked read as a side effect.
func (h *MessageHandler) GetOne(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid message id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Messages.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrMessageNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "message not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !guard.IsMessageParty(uid, m) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your message"})
	}
	if guard.CanMarkRead(uid, m) && !m.IsRead {
		if err := h.Messages.MarkRead(ctx, m.ID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "mark read failed"})
		}
		m.IsRead = true
	}
	return c.JSON(http.StatusOK, messageJSON(m))
}

// MarkRead flips the read flag on one message. Only the receiver may do
// this; repeating it is a no-op.
func (h *MessageHandler) MarkRead(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid message id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Messages.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrMessageNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "message not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !guard.CanMarkRead(uid, m) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only the receiver may mark a message read"})
	}
	if !m.IsRead {
		if err := h.Messages.MarkRead(ctx, m.ID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "mark read failed"})
		}
		m.IsRead = true
	}
	return c.JSON(http.StatusOK, messageJSON(m))
}

// Delete removes a message; either party may do so.
func (h *MessageHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid message id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Messages.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrMessageNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "message not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !guard.IsMessageParty(uid, m) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your message"})
	}
	if err := h.Messages.Delete(ctx, m.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// UnreadCount returns how many unread messages the caller has.
func (h *MessageHandler) UnreadCount(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Messages.UnreadCount(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": n})
}

// Conversations returns the caller's inbox: one entry per counterparty
// with the latest message and unread count, newest conversation first.
// The projection is recomputed from the message history on every call.
func (h *MessageHandler) Conversations(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	msgs, err := h.Messages.ListInvolving(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	inbox := conversation.BuildInbox(uid, msgs)

	ids := make([]uint64, 0, len(inbox))
	for _, s := range inbox {
		ids = append(ids, s.UserID)
	}
	names, err := h.Users.UsernamesByIDs(ctx, ids)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	for i := range inbox {
		inbox[i].Username = names[inbox[i].UserID]
	}
	return c.JSON(http.StatusOK, inbox)
}
