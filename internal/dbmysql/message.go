package dbmysql

import (
	"time"

	"gochat/internal/common"
)

// Message is immutable once created except for Status, which only moves
// forward (sent -> delivered -> read). A chat message is never "delivered to
// the chat": fan-out materializes one row per participant, each with its own
// status, with chat_id retained for history queries.
type Message struct {
	ID          uint64               `gorm:"primaryKey;autoIncrement" json:"message_id"`
	SenderID    uint64               `gorm:"index;not null" json:"sender_id"`
	ReceiverID  *uint64              `gorm:"index" json:"receiver_id"`
	ChatID      *uint64              `gorm:"index" json:"chat_id"`
	Content     string               `gorm:"type:text" json:"content"`
	ContentType common.ContentType   `gorm:"size:10;not null" json:"content_type"`
	FileURL     *string              `gorm:"size:512" json:"file_url"`
	Timestamp   time.Time            `gorm:"index" json:"timestamp"`
	Status      common.MessageStatus `gorm:"size:10;default:'sent'" json:"status"`
}

type addressKind int

const (
	addressNone addressKind = iota
	addressDirect
	addressGroup
	addressFanout
)

// Address is the tagged destination of a draft: a receiver or a chat, never
// both from a client. The zero value is invalid, which keeps the "exactly
// one" rule out of runtime nil-checks.
type Address struct {
	kind       addressKind
	receiverID uint64
	chatID     uint64
}

func DirectAddress(receiverID uint64) Address {
	return Address{kind: addressDirect, receiverID: receiverID}
}

func GroupAddress(chatID uint64) Address {
	return Address{kind: addressGroup, chatID: chatID}
}

// FanoutAddress targets one chat participant while retaining the chat
// reference for history queries. Only the fan-out resolver builds these.
func FanoutAddress(receiverID, chatID uint64) Address {
	return Address{kind: addressFanout, receiverID: receiverID, chatID: chatID}
}

func (a Address) IsGroup() bool     { return a.kind == addressGroup }
func (a Address) IsValid() bool     { return a.kind != addressNone }
func (a Address) HasReceiver() bool { return a.kind == addressDirect || a.kind == addressFanout }

func (a Address) ReceiverID() uint64 { return a.receiverID }
func (a Address) ChatID() uint64     { return a.chatID }

// MessageDraft is what the session layer hands to persistence; the repository
// assigns id, timestamp and the initial sent status.
type MessageDraft struct {
	SenderID    uint64
	To          Address
	Content     string
	ContentType common.ContentType
	FileURL     *string
}
