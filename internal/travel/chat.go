package travel

import (
	"fmt"
	"sort"

	"github.com/wayfarer-app/wayfarer/pkg/types"
)

// Conversation is a chat thread summary from one user's point of view.
type Conversation struct {
	OtherUserID string
	LastMessage *types.ChatMessage
	UnreadCount int
}

// SendMessage stores a direct message, unread.
func SendMessage(s types.Store, id, senderID, receiverID, content string) error {
	err := s.ExecuteWrite(
		"INSERT INTO chat_messages (id, sender_id, receiver_id, content, read, created_at) VALUES (?, ?, ?, ?, ?, datetime('now'))",
		[]any{id, senderID, receiverID, content, 0})
	if err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	return nil
}

// MessagesBetween returns the full thread between two users oldest first,
// regardless of direction.
func MessagesBetween(s types.Store, userA, userB string) ([]types.ChatMessage, error) {
	rows, err := s.QueryAll(
		"SELECT * FROM chat_messages WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?) ORDER BY created_at ASC",
		[]any{userA, userB, userB, userA})
	if err != nil {
		return nil, err
	}
	messages := make([]types.ChatMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, *messageFromRecord(row))
	}
	return messages, nil
}

// MarkMessagesRead flags everything sent from senderID to receiverID as
// read. The trailing read = 0 keeps the write to rows that need it.
func MarkMessagesRead(s types.Store, senderID, receiverID string) error {
	err := s.ExecuteWrite(
		"UPDATE chat_messages SET read = ? WHERE sender_id = ? AND receiver_id = ? AND read = 0",
		[]any{1, senderID, receiverID})
	if err != nil {
		return fmt.Errorf("marking messages read: %w", err)
	}
	return nil
}

// Conversations groups the user's messages by the other participant and
// summarizes each thread: the latest message and how many incoming
// messages are unread. Threads come back most recently active first.
func Conversations(s types.Store, userID string) ([]Conversation, error) {
	rows, err := s.QueryAll(
		"SELECT * FROM chat_messages WHERE sender_id = ? OR receiver_id = ? ORDER BY created_at ASC",
		[]any{userID, userID})
	if err != nil {
		return nil, err
	}

	byOther := make(map[string]*Conversation)
	var order []string
	for _, row := range rows {
		msg := messageFromRecord(row)
		other := msg.ReceiverID
		if other == userID {
			other = msg.SenderID
		}

		conv, ok := byOther[other]
		if !ok {
			conv = &Conversation{OtherUserID: other}
			byOther[other] = conv
			order = append(order, other)
		}
		conv.LastMessage = msg
		if msg.ReceiverID == userID && !msg.Read {
			conv.UnreadCount++
		}
	}

	out := make([]Conversation, 0, len(order))
	for _, other := range order {
		out = append(out, *byOther[other])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessage.CreatedAt > out[j].LastMessage.CreatedAt
	})
	return out, nil
}

// UnreadCount returns how many messages addressed to the user are unread
// across all threads.
func UnreadCount(s types.Store, userID string) (int, error) {
	rows, err := s.QueryAll(
		"SELECT * FROM chat_messages WHERE receiver_id = ? AND read = 0", []any{userID})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func messageFromRecord(r types.Record) *types.ChatMessage {
	return &types.ChatMessage{
		ID:         types.StringField(r, "id"),
		SenderID:   types.StringField(r, "sender_id"),
		ReceiverID: types.StringField(r, "receiver_id"),
		Content:    types.StringField(r, "content"),
		Read:       types.BoolField(r, "read"),
		CreatedAt:  types.StringField(r, "created_at"),
	}
}
