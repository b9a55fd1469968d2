package service

import (
	"time"

	"gochat/internal/dbmysql"
)

// ActionNewMessage prefixes live pushes so clients can tell them apart from
// catch-up replay frames.
const ActionNewMessage = "new_message"

// WireMessage is the outbound frame schema.
type WireMessage struct {
	Action      string  `json:"action,omitempty"`
	MessageID   uint64  `json:"message_id"`
	SenderID    uint64  `json:"sender_id"`
	ReceiverID  *uint64 `json:"receiver_id"`
	ChatID      *uint64 `json:"chat_id"`
	Content     string  `json:"content"`
	ContentType string  `json:"content_type"`
	Timestamp   string  `json:"timestamp"`
	FileURL     *string `json:"file_url"`
}

// NewWireMessage serializes a message for the wire. live marks the frame as a
// push for a newly sent message rather than a replay.
func NewWireMessage(msg *dbmysql.Message, live bool) *WireMessage {
	frame := &WireMessage{
		MessageID:   msg.ID,
		SenderID:    msg.SenderID,
		ReceiverID:  msg.ReceiverID,
		ChatID:      msg.ChatID,
		Content:     msg.Content,
		ContentType: msg.ContentType.String(),
		Timestamp:   msg.Timestamp.UTC().Format(time.RFC3339),
		FileURL:     msg.FileURL,
	}
	if live {
		frame.Action = ActionNewMessage
	}
	return frame
}
